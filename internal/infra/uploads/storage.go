package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// fileNameLength длина генерируемого имени файла
	fileNameLength = 16

	// maxExtLength защита от мусорных "расширений" в имени файла
	maxExtLength = 10
)

var (
	// ErrCreateDir возвращается, когда не удалось создать директорию загрузок
	ErrCreateDir = errors.New("uploads: failed to create uploads directory")

	// ErrSaveFile возвращается при ошибке записи файла
	ErrSaveFile = errors.New("uploads: failed to save file")
)

// Storage локальное дисковое хранилище загружаемых файлов.
// Файлы получают случайные nanoid имена, наружу отдается публичный URL
// вида <publicURL>/<name><ext>.
type Storage struct {
	dir       string
	publicURL string
}

// NewStorage создает хранилище и директорию загрузок, если её нет
func NewStorage(dir, publicURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}

	return &Storage{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Dir возвращает директорию хранилища (для статической раздачи)
func (s *Storage) Dir() string {
	return s.dir
}

// Save записывает содержимое под случайным именем, сохраняя расширение
// исходного файла, и возвращает публичный URL
func (s *Storage) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := gonanoid.New(fileNameLength)
	if err != nil {
		return "", fmt.Errorf("%w: generate name: %v", ErrSaveFile, err)
	}

	fileName := name + sanitizeExt(originalName)
	fullPath := filepath.Join(s.dir, fileName)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveFile, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: %v", ErrSaveFile, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: %v", ErrSaveFile, err)
	}

	return s.publicURL + "/" + fileName, nil
}

// sanitizeExt возвращает безопасное расширение исходного имени файла
func sanitizeExt(originalName string) string {
	ext := strings.ToLower(path.Ext(path.Base(originalName)))
	if ext == "." || len(ext) > maxExtLength {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
