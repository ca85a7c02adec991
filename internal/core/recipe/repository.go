package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/core/storage"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// SearchClient 上游食譜 API 的抽象，便於測試時替換
type SearchClient interface {
	ComplexSearch(ctx context.Context, query string, number, offset int) ([]spoonacular.SearchResult, error)
	IngredientWidget(ctx context.Context, id int) ([]spoonacular.WidgetIngredient, error)
}

// Repository 食譜狀態倉儲。
// 持有三份集合：搜尋結果、收藏清單、目前選中的食譜。
// 收藏清單在每次變動後寫入 store；搜尋結果整批替換；
// 併發的搜尋之間不保證順序，最後寫入者獲勝，不做取消。
// 共享集合的讀寫一律在鎖內；需要呼叫上游的補齊
// 在鎖外對私有副本進行，完成後才寫回。
type Repository struct {
	mu     sync.RWMutex
	client SearchClient
	store  storage.Store

	results    []Recipe
	favourites []Recipe
	active     *Recipe

	// 收藏清單變動時通知 UI 協作方重新渲染
	onFavouritesChanged func()
}

// NewRepository 創建倉儲並從 store 還原收藏清單
func NewRepository(client SearchClient, store storage.Store) *Repository {
	r := &Repository{
		client: client,
		store:  store,
	}
	r.loadFavourites(context.Background())
	return r
}

// OnFavouritesChanged 註冊收藏清單變動的通知回調
func (r *Repository) OnFavouritesChanged(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFavouritesChanged = fn
}

// Search 以關鍵字搜尋並整批替換搜尋結果。
// 單次嘗試、不重試；失敗時記錄並返回錯誤，原有結果保持不變。
func (r *Repository) Search(ctx context.Context, query string, number, offset int) error {
	payloads, err := r.client.ComplexSearch(ctx, query, number, offset)
	if err != nil {
		common.LogError("食譜搜尋失敗",
			zap.Error(err),
			zap.String("query", query),
		)
		return fmt.Errorf("search failed: %w", err)
	}

	results := make([]Recipe, 0, len(payloads))
	for _, payload := range payloads {
		results = append(results, Normalize(payload.ID, payload))
	}

	r.mu.Lock()
	r.results = results
	r.mu.Unlock()

	common.LogInfo("搜尋結果已更新",
		zap.String("query", query),
		zap.Int("count", len(results)),
	)

	return nil
}

// FetchIngredients 補齊食譜的食材清單。
// 已有食材時不再呼叫上游（冪等）；上游失敗時記錄後原樣返回，
// 呼叫方應把空清單視為「未知」而非「沒有食材」。
// 只改動傳入的食譜本身，傳入共享集合的元素前應先取副本。
func (r *Repository) FetchIngredients(ctx context.Context, rec *Recipe) *Recipe {
	if len(rec.Ingredients) > 0 {
		return rec
	}

	payload, err := r.client.IngredientWidget(ctx, rec.ID)
	if err != nil {
		common.LogError("取得食材失敗",
			zap.Error(err),
			zap.Int("recipe_id", rec.ID),
		)
		return rec
	}

	for _, ing := range payload {
		rec.Ingredients = append(rec.Ingredients, Ingredient{
			Quantity: math.Round(ing.Amount.Metric.Value*100) / 100,
			Unit:     singularizeUnit(ing.Amount.Metric.Unit),
			Name:     ing.Name,
		})
	}

	return rec
}

// singularizeUnit 單位轉小寫並去除複數字尾
func singularizeUnit(unit string) string {
	return strings.TrimSuffix(strings.ToLower(unit), "s")
}

// SetActive 選中一份食譜作為詳細頁面的顯示對象。
// 從收藏選取時不需補齊食材（收藏在加入時已補齊）；
// 從搜尋結果選取時先補齊食材。找不到 id 時返回 ErrRecipeNotFound。
// 補齊在鎖外對私有副本進行，完成後才在鎖內寫回，
// 共享的集合元素不會在鎖外被改動。
func (r *Repository) SetActive(ctx context.Context, id int, fromFavourites bool) error {
	r.mu.RLock()
	var target Recipe
	found := false
	if fromFavourites {
		if idx := indexByID(r.favourites, id); idx >= 0 {
			target = r.favourites[idx]
			found = true
		}
	} else {
		if idx := indexByID(r.results, id); idx >= 0 {
			target = r.results[idx]
			found = true
		}
	}
	r.mu.RUnlock()

	if !found {
		common.LogWarn("選取的食譜不存在",
			zap.Int("recipe_id", id),
			zap.Bool("from_favourites", fromFavourites),
		)
		return common.ErrRecipeNotFound
	}

	if !fromFavourites {
		r.FetchIngredients(ctx, &target)
	}

	r.mu.Lock()
	// 補齊結果寫回搜尋結果，之後加入收藏時不需再呼叫上游
	if !fromFavourites {
		if idx := indexByID(r.results, id); idx >= 0 {
			r.results[idx] = target
		}
	}
	r.active = &target
	r.mu.Unlock()

	return nil
}

// AddFavourite 將搜尋結果中的食譜加入收藏。
// 已在收藏中時不做任何事；加入前先補齊食材，成功後立即持久化。
// 與 SetActive 相同，補齊在鎖外對私有副本進行，完成後在鎖內寫回。
func (r *Repository) AddFavourite(ctx context.Context, id int) error {
	r.mu.RLock()
	if indexByID(r.favourites, id) >= 0 {
		r.mu.RUnlock()
		common.LogDebug("食譜已在收藏中", zap.Int("recipe_id", id))
		return nil
	}

	idx := indexByID(r.results, id)
	if idx < 0 {
		r.mu.RUnlock()
		return common.ErrRecipeNotFound
	}
	target := r.results[idx]
	r.mu.RUnlock()

	r.FetchIngredients(ctx, &target)

	r.mu.Lock()
	// 補齊期間可能有併發請求搶先加入，維持唯一性
	if indexByID(r.favourites, id) >= 0 {
		r.mu.Unlock()
		return nil
	}
	if idx := indexByID(r.results, id); idx >= 0 {
		r.results[idx] = target
	}
	r.favourites = append(r.favourites, target)
	r.mu.Unlock()

	if err := r.SaveFavourites(ctx); err != nil {
		common.LogError("收藏清單持久化失敗", zap.Error(err))
	}
	r.notifyFavouritesChanged()

	return nil
}

// RemoveFavourite 從收藏移除指定食譜（最多一筆），並持久化與通知重新渲染
func (r *Repository) RemoveFavourite(ctx context.Context, id int) {
	r.mu.Lock()
	idx := indexByID(r.favourites, id)
	if idx >= 0 {
		r.favourites = append(r.favourites[:idx], r.favourites[idx+1:]...)
	}
	r.mu.Unlock()

	if idx < 0 {
		return
	}

	if err := r.SaveFavourites(ctx); err != nil {
		common.LogError("收藏清單持久化失敗", zap.Error(err))
	}
	r.notifyFavouritesChanged()
}

// SaveFavourites 將收藏清單序列化後寫入 store
func (r *Repository) SaveFavourites(ctx context.Context) error {
	r.mu.RLock()
	records := make([]FavouriteRecord, 0, len(r.favourites))
	for _, fav := range r.favourites {
		records = append(records, fav.Record())
	}
	r.mu.RUnlock()

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal favourites: %w", err)
	}

	return r.store.Save(ctx, data)
}

// loadFavourites 從 store 還原收藏清單。
// 內容不存在或無法解析時以空清單開始，不報錯。
// 還原一律走 ImportFromRecord，不重新清理。
func (r *Repository) loadFavourites(ctx context.Context) {
	data, err := r.store.Load(ctx)
	if err != nil {
		common.LogWarn("讀取收藏清單失敗，以空清單開始", zap.Error(err))
		return
	}
	if len(data) == 0 {
		return
	}

	var records []FavouriteRecord
	if err := common.ParseJSONBytes(data, &records); err != nil {
		common.LogWarn("收藏清單格式無效，以空清單開始", zap.Error(err))
		return
	}

	favourites := make([]Recipe, 0, len(records))
	for _, record := range records {
		favourites = append(favourites, ImportFromRecord(record))
	}

	r.mu.Lock()
	r.favourites = favourites
	r.mu.Unlock()

	common.LogInfo("收藏清單已還原", zap.Int("count", len(favourites)))
}

// Results 返回目前搜尋結果的副本
func (r *Repository) Results() []Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Recipe, len(r.results))
	copy(out, r.results)
	return out
}

// Favourites 返回目前收藏清單的副本
func (r *Repository) Favourites() []Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Recipe, len(r.favourites))
	copy(out, r.favourites)
	return out
}

// Active 返回目前選中的食譜；尚未選取時第二個返回值為 false
func (r *Repository) Active() (Recipe, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == nil {
		return Recipe{}, false
	}
	return *r.active, true
}

// indexByID 在集合中尋找指定 id 的索引，找不到返回 -1
func indexByID(recipes []Recipe, id int) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// notifyFavouritesChanged 觸發收藏清單變動通知
func (r *Repository) notifyFavouritesChanged() {
	r.mu.RLock()
	fn := r.onFavouritesChanged
	r.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
