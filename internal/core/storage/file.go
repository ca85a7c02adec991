package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// FileStore 以單一 JSON 檔案實現 Store
type FileStore struct {
	path string
}

// NewFileStore 創建檔案儲存
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load 讀取檔案內容；檔案不存在時返回 nil
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read favourites file: %w", err)
	}
	return data, nil
}

// Save 寫入檔案，先寫暫存檔再改名，避免寫到一半的檔案被讀到
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write favourites file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace favourites file: %w", err)
	}

	common.LogDebug("收藏清單已寫入檔案",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)),
	)

	return nil
}
