package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_AddsRequestAndUserIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	defer Init("test")

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-42")
	CtxInfo(ctx, "blog liked", "blog_id", "b-1")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"user_id":"user-42"`)
	assert.Contains(t, out, `"blog_id":"b-1"`)
}

func TestTestEnvSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test", &buf)
	defer Init("test")

	Info("not shown")
	Warn("shown")

	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "shown")
}
