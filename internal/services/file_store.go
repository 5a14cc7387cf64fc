package services

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"triveni_backend/internal/config"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/metrics"
	"triveni_backend/internal/storage"
	"triveni_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
)

// storedFile - результат сохранения загруженного файла.
type storedFile struct {
	Filename     string
	OriginalName string
	Path         string
	Size         int64
	MimeType     string
}

// fileStore проверяет и сохраняет загрузки одного вида (резюме, картинки блога).
// Тип файла определяется по содержимому, расширение проверяется отдельно.
type fileStore struct {
	storage    storage.Storage
	rule       config.FileRule
	namePrefix string
	now        func() time.Time
}

func newFileStore(st storage.Storage, rule config.FileRule, namePrefix string) *fileStore {
	return &fileStore{storage: st, rule: rule, namePrefix: namePrefix, now: time.Now}
}

func (f *fileStore) validate(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", apperrors.ErrFileRequired
	}
	if f.rule.MaxSize > 0 && fh.Size > f.rule.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	for _, allowed := range f.rule.Extensions {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", apperrors.ErrInvalidFileType
}

// detect определяет MIME по первым байтам и проверяет его по списку разрешенных,
// поднимаясь по иерархии mimetype (docx -> zip).
func (f *fileStore) detect(src io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperrors.InternalError(err)
	}

	for m := mtype; m != nil; m = m.Parent() {
		for _, allowed := range f.rule.AllowedTypes {
			if m.Is(allowed) {
				return mtype.String(), nil
			}
		}
	}
	return "", apperrors.ErrInvalidFileType
}

func (f *fileStore) save(ctx context.Context, fh *multipart.FileHeader) (*storedFile, error) {
	ext, err := f.validate(fh)
	if err != nil {
		metrics.Upload(f.namePrefix, "rejected")
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	mimeType, err := f.detect(src)
	if err != nil {
		metrics.Upload(f.namePrefix, "rejected")
		return nil, err
	}

	filename := fmt.Sprintf("%s-%d-%d%s", f.namePrefix, f.now().UnixMilli(), rand.Int63n(1e9), ext)
	path := f.rule.Prefix + "/" + filename

	if err := f.storage.Save(ctx, path, src, mimeType); err != nil {
		return nil, apperrors.ErrStorage(err)
	}
	metrics.Upload(f.namePrefix, "stored")

	return &storedFile{
		Filename:     filename,
		OriginalName: filepath.Base(fh.Filename),
		Path:         path,
		Size:         fh.Size,
		MimeType:     mimeType,
	}, nil
}

// remove - удаление без ошибки для вызывающего: файл-сирота не повод проваливать запрос.
func (f *fileStore) remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := f.storage.Delete(ctx, path); err != nil {
		logger.CtxWithError(ctx, "Failed to delete stored file", err, "path", path)
	}
}

func (f *fileStore) url(ctx context.Context, path string) (string, error) {
	return f.storage.GetURL(ctx, path)
}

func (f *fileStore) open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f.storage.Get(ctx, path)
}
