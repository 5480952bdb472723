package tts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileCache keeps audio as files in a directory.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read cached audio: %w", err)
	}
	return data, nil
}

// Set writes through a temp file so readers never see a partial file.
func (c *FileCache) Set(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cached audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cached audio: %w", err)
	}

	return os.Rename(tmp.Name(), c.path(key))
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+"."+audioFormat)
}
