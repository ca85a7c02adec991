// Package storage 提供收藏清單的持久化儲存。
// 對應瀏覽器端 localStorage 的單一鍵值契約：一個固定鍵、一份 JSON 資料。
package storage

import "context"

// FavouritesKey 收藏清單使用的固定鍵
const FavouritesKey = "recipes:favourites"

// Store 持久化儲存介面
type Store interface {
	// Load 讀取收藏清單的序列化內容；不存在時返回 nil 且不報錯
	Load(ctx context.Context) ([]byte, error)
	// Save 覆寫收藏清單的序列化內容
	Save(ctx context.Context, data []byte) error
}
