package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore 以 Redis 單一鍵實現 Store
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 創建 Redis 儲存並測試連接
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Load 讀取固定鍵的內容；鍵不存在時返回 nil
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, FavouritesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load favourites: %w", err)
	}
	return data, nil
}

// Save 覆寫固定鍵的內容（收藏清單不設過期時間）
func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, FavouritesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save favourites: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
