package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore 本地磁盘 blob 存储：store(bytes, ext) -> URL
type LocalStore struct {
	Dir     string // 磁盘目录
	BaseURL string // 对外 URL 前缀，如 /uploads
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Store 以随机文件名落盘，返回可访问 URL
func (s *LocalStore) Store(data []byte, suggestedExt string) (string, error) {
	ext := suggestedExt
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.BaseURL + "/" + name, nil
}
