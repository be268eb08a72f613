// Package inventory 使用者庫存：單一保存位置的讀寫與變更通知
package inventory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-redis/redis/v8"
)

// ErrSlotEmpty 保存位置尚無資料
var ErrSlotEmpty = errors.New("inventory slot is empty")

// Slot 庫存保存位置，整份庫存以一個 JSON 區塊讀寫
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// FileSlot 以本機檔案保存
type FileSlot struct {
	path string
}

// NewFileSlot 創建檔案保存位置
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Read 讀取檔案，不存在時回傳 ErrSlotEmpty
func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}
	return data, nil
}

// Write 先寫入暫存檔再改名，避免寫到一半的檔案
func (s *FileSlot) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".inventory-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace inventory file: %w", err)
	}
	return nil
}

// RedisSlot 以單一 Redis 鍵保存
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot 創建 Redis 保存位置
func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

// Read 讀取鍵值
func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read inventory from redis: %w", err)
	}
	return data, nil
}

// Write 寫入鍵值，不設定過期
func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write inventory to redis: %w", err)
	}
	return nil
}

// MemorySlot 記憶體保存位置，重啟後資料消失
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
	err  error
}

// NewMemorySlot 創建記憶體保存位置，data 為初始內容
func NewMemorySlot(data []byte) *MemorySlot {
	return &MemorySlot{data: data}
}

// Read 讀取內容
func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

// Write 寫入內容；FailWrites 設定錯誤時直接回傳該錯誤
func (s *MemorySlot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.data = append([]byte(nil), data...)
	return nil
}

// FailWrites 之後的寫入都回傳 err，傳入 nil 恢復
func (s *MemorySlot) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
