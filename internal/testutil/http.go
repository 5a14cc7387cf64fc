package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope - общий конверт ответа API.
type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination json.RawMessage   `json:"pagination"`
	Error      string            `json:"error"`
	Errors     map[string]string `json:"errors"`
}

// SendRequest выполняет JSON-запрос к handler. body == nil - запрос без тела.
func SendRequest(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "ошибка кодирования JSON для запроса")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// SendMultipart отправляет multipart/form-data с полями и файлами.
func SendMultipart(t *testing.T, h http.Handler, method, path, token string, fields map[string][]string, files ...Upload) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := MultipartBody(t, fields, files...)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// DecodeEnvelope разбирает конверт ответа. Если out != nil, в него декодируется data.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "тело ответа: %s", rec.Body.String())
	if out != nil {
		require.NotEmpty(t, env.Data, "в ответе нет data: %s", rec.Body.String())
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}
