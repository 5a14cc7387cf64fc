package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"triveni_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st, err := NewStorage(config.StorageConfig{Type: "local", BasePath: t.TempDir(), BaseURL: "/uploads/"})
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, "resumes/a.pdf", strings.NewReader("%PDF-1.4"), "application/pdf"))

	ok, err := st.Exists(ctx, "resumes/a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := st.Get(ctx, "resumes/a.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.4", string(body))

	url, err := st.GetURL(ctx, "resumes/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/resumes/a.pdf", url)

	require.NoError(t, st.Delete(ctx, "resumes/a.pdf"))
	require.NoError(t, st.Delete(ctx, "resumes/a.pdf"), "повторное удаление не ошибка")

	_, err = st.Get(ctx, "resumes/a.pdf")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalStorage_PathStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	st, err := NewLocalStorage(config.StorageConfig{BasePath: base})
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, "../../escape.txt", strings.NewReader("x"), "text/plain"))
	ok, err := st.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
