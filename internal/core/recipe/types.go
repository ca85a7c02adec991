// Package recipe 定義標準化的食譜實體與其狀態倉儲。
// 無論上游響應或本地收藏紀錄，進入系統後一律轉為 Recipe。
package recipe

// Recipe 標準化的食譜實體
type Recipe struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Image        string        `json:"image"`
	Description  string        `json:"description"`
	Servings     int           `json:"servings"` // 0 表示未提供
	Time         int           `json:"time"`     // 準備時間（分鐘），0 表示未提供
	Instructions []Instruction `json:"instructions"`
	Ingredients  []Ingredient  `json:"ingredients"` // 尚未補齊食材時為空
	Source       string        `json:"source"`
}

// Instruction 單一料理步驟（依步驟編號遞增排序）
type Instruction struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Ingredient 單一食材
type Ingredient struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Name     string  `json:"name"`
}

// FavouriteRecord 持久化的收藏紀錄。欄位與 Recipe 完全相同，
// 但型別分開，讓「已清理過、不再重新清理」的約定在建構路徑上顯式可見。
type FavouriteRecord Recipe

// Record 將食譜轉為持久化紀錄
func (r Recipe) Record() FavouriteRecord {
	return FavouriteRecord(r)
}
