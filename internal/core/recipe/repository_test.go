package recipe

import (
	"context"
	"errors"
	"testing"

	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/core/storage"
	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient 測試用的上游客戶端替身
type fakeClient struct {
	searchCalls int
	widgetCalls int

	results     []spoonacular.SearchResult
	searchErr   error
	ingredients map[int][]spoonacular.WidgetIngredient
	widgetErr   error
	widgetBlock chan struct{} // 非 nil 時，食材請求會等到通道關閉才返回
}

func (f *fakeClient) ComplexSearch(ctx context.Context, query string, number, offset int) ([]spoonacular.SearchResult, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeClient) IngredientWidget(ctx context.Context, id int) ([]spoonacular.WidgetIngredient, error) {
	f.widgetCalls++
	if f.widgetBlock != nil {
		<-f.widgetBlock
	}
	if f.widgetErr != nil {
		return nil, f.widgetErr
	}
	return f.ingredients[id], nil
}

func widgetIngredient(name string, value float64, unit string) spoonacular.WidgetIngredient {
	var ing spoonacular.WidgetIngredient
	ing.Name = name
	ing.Amount.Metric.Value = value
	ing.Amount.Metric.Unit = unit
	return ing
}

func TestSearchReplacesResultsInOrder(t *testing.T) {
	client := &fakeClient{results: []spoonacular.SearchResult{
		{ID: 10, Title: strPtr("First")},
		{ID: 20, Title: strPtr("Second")},
	}}
	repo := NewRepository(client, storage.NewMemoryStore())

	require.NoError(t, repo.Search(context.Background(), "pasta", 9, 0))

	results := repo.Results()
	require.Len(t, results, 2)
	assert.Equal(t, 10, results[0].ID)
	assert.Equal(t, 20, results[1].ID)
	assert.Equal(t, 1, client.searchCalls)

	// 第二次搜尋整批替換
	client.results = []spoonacular.SearchResult{{ID: 30, Title: strPtr("Third")}}
	require.NoError(t, repo.Search(context.Background(), "soup", 9, 0))

	results = repo.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 30, results[0].ID)
}

func TestSearchErrorLeavesResultsUntouched(t *testing.T) {
	client := &fakeClient{results: []spoonacular.SearchResult{{ID: 1, Title: strPtr("Keep me")}}}
	repo := NewRepository(client, storage.NewMemoryStore())
	require.NoError(t, repo.Search(context.Background(), "pasta", 9, 0))

	client.searchErr = errors.New("upstream down")
	err := repo.Search(context.Background(), "soup", 9, 0)

	assert.Error(t, err)
	// 不重試，只嘗試一次
	assert.Equal(t, 2, client.searchCalls)
	results := repo.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].ID)
}

func TestFetchIngredientsMapsAndRounds(t *testing.T) {
	client := &fakeClient{ingredients: map[int][]spoonacular.WidgetIngredient{
		5: {
			widgetIngredient("flour", 2.345, "Tbsps"),
			widgetIngredient("water", 0.5, "l"),
		},
	}}
	repo := NewRepository(client, storage.NewMemoryStore())

	rec := &Recipe{ID: 5}
	repo.FetchIngredients(context.Background(), rec)

	require.Len(t, rec.Ingredients, 2)
	assert.Equal(t, Ingredient{Quantity: 2.35, Unit: "tbsp", Name: "flour"}, rec.Ingredients[0])
	assert.Equal(t, Ingredient{Quantity: 0.5, Unit: "l", Name: "water"}, rec.Ingredients[1])
}

func TestFetchIngredientsIsIdempotent(t *testing.T) {
	client := &fakeClient{ingredients: map[int][]spoonacular.WidgetIngredient{
		5: {widgetIngredient("flour", 1, "g")},
	}}
	repo := NewRepository(client, storage.NewMemoryStore())

	rec := &Recipe{ID: 5}
	repo.FetchIngredients(context.Background(), rec)
	repo.FetchIngredients(context.Background(), rec)

	assert.Equal(t, 1, client.widgetCalls)
	assert.Len(t, rec.Ingredients, 1)
}

func TestFetchIngredientsErrorLeavesEmpty(t *testing.T) {
	client := &fakeClient{widgetErr: errors.New("timeout")}
	repo := NewRepository(client, storage.NewMemoryStore())

	rec := &Recipe{ID: 5}
	out := repo.FetchIngredients(context.Background(), rec)

	assert.Same(t, rec, out)
	assert.Empty(t, rec.Ingredients)
	assert.Equal(t, 1, client.widgetCalls)
}

func TestSetActiveFromResultsEnriches(t *testing.T) {
	client := &fakeClient{
		results: []spoonacular.SearchResult{
			{ID: 10, Title: strPtr("First")},
			{ID: 20, Title: strPtr("Second")},
		},
		ingredients: map[int][]spoonacular.WidgetIngredient{
			20: {widgetIngredient("salt", 1, "tsp")},
		},
	}
	repo := NewRepository(client, storage.NewMemoryStore())
	require.NoError(t, repo.Search(context.Background(), "pasta", 9, 0))

	require.NoError(t, repo.SetActive(context.Background(), 20, false))

	active, ok := repo.Active()
	require.True(t, ok)
	assert.Equal(t, 20, active.ID)
	assert.Len(t, active.Ingredients, 1)
	// 選取搜尋結果不影響收藏清單
	assert.Empty(t, repo.Favourites())
}

func TestSetActiveFromFavouritesSkipsEnrichment(t *testing.T) {
	store := storage.NewMemoryStore()
	client := &fakeClient{
		results: []spoonacular.SearchResult{{ID: 7, Title: strPtr("Dish")}},
		ingredients: map[int][]spoonacular.WidgetIngredient{
			7: {widgetIngredient("egg", 2, "")},
		},
	}
	repo := NewRepository(client, store)
	require.NoError(t, repo.Search(context.Background(), "dish", 9, 0))
	require.NoError(t, repo.AddFavourite(context.Background(), 7))
	widgetCallsAfterAdd := client.widgetCalls

	require.NoError(t, repo.SetActive(context.Background(), 7, true))

	// 收藏在加入時已補齊，選取時不再呼叫上游
	assert.Equal(t, widgetCallsAfterAdd, client.widgetCalls)
	active, ok := repo.Active()
	require.True(t, ok)
	assert.Equal(t, 7, active.ID)
}

func TestSetActiveUnknownIDReturnsNotFound(t *testing.T) {
	repo := NewRepository(&fakeClient{}, storage.NewMemoryStore())

	err := repo.SetActive(context.Background(), 999, false)

	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
	_, ok := repo.Active()
	assert.False(t, ok)
}

func TestAddFavouriteIsUniqueAndPersists(t *testing.T) {
	store := storage.NewMemoryStore()
	client := &fakeClient{results: []spoonacular.SearchResult{{ID: 7, Title: strPtr("Dish")}}}
	repo := NewRepository(client, store)
	require.NoError(t, repo.Search(context.Background(), "dish", 9, 0))

	notified := 0
	repo.OnFavouritesChanged(func() { notified++ })

	require.NoError(t, repo.AddFavourite(context.Background(), 7))
	require.NoError(t, repo.AddFavourite(context.Background(), 7))

	assert.Len(t, repo.Favourites(), 1)
	// 重複加入不觸發通知
	assert.Equal(t, 1, notified)

	data, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestAddFavouriteUnknownIDReturnsNotFound(t *testing.T) {
	repo := NewRepository(&fakeClient{}, storage.NewMemoryStore())

	err := repo.AddFavourite(context.Background(), 42)

	assert.ErrorIs(t, err, common.ErrRecipeNotFound)
	assert.Empty(t, repo.Favourites())
}

func TestRemoveFavouritePersistsAndNotifies(t *testing.T) {
	store := storage.NewMemoryStore()
	client := &fakeClient{results: []spoonacular.SearchResult{
		{ID: 1, Title: strPtr("A")},
		{ID: 2, Title: strPtr("B")},
	}}
	repo := NewRepository(client, store)
	require.NoError(t, repo.Search(context.Background(), "x", 9, 0))
	require.NoError(t, repo.AddFavourite(context.Background(), 1))
	require.NoError(t, repo.AddFavourite(context.Background(), 2))

	notified := 0
	repo.OnFavouritesChanged(func() { notified++ })

	repo.RemoveFavourite(context.Background(), 1)

	favourites := repo.Favourites()
	require.Len(t, favourites, 1)
	assert.Equal(t, 2, favourites[0].ID)
	assert.Equal(t, 1, notified)

	// 移除不存在的 id 不通知也不寫入
	repo.RemoveFavourite(context.Background(), 999)
	assert.Equal(t, 1, notified)
}

func TestFavouritesRoundTripThroughStore(t *testing.T) {
	store := storage.NewMemoryStore()
	client := &fakeClient{
		results: []spoonacular.SearchResult{{
			ID:      7,
			Title:   strPtr("Dish"),
			Summary: strPtr("<b>Dish</b> is tasty. Long tail."),
		}},
		ingredients: map[int][]spoonacular.WidgetIngredient{
			7: {widgetIngredient("water", 0.5, "liters")},
		},
	}
	repo := NewRepository(client, store)
	require.NoError(t, repo.Search(context.Background(), "dish", 9, 0))
	require.NoError(t, repo.AddFavourite(context.Background(), 7))

	// 以同一個 store 重建倉儲，模擬重新載入頁面
	restored := NewRepository(&fakeClient{}, store)

	favourites := restored.Favourites()
	require.Len(t, favourites, 1)
	assert.Equal(t, 7, favourites[0].ID)
	assert.Equal(t, "Dish", favourites[0].Name)
	// 還原不重新清理，描述與食材原樣保留
	assert.Equal(t, "Dish is tasty.", favourites[0].Description)
	require.Len(t, favourites[0].Ingredients, 1)
	assert.Equal(t, Ingredient{Quantity: 0.5, Unit: "liter", Name: "water"}, favourites[0].Ingredients[0])
}

func TestEnrichmentDoesNotMutateSharedResults(t *testing.T) {
	block := make(chan struct{})
	client := &fakeClient{
		results: []spoonacular.SearchResult{{ID: 1, Title: strPtr("Dish")}},
		ingredients: map[int][]spoonacular.WidgetIngredient{
			1: {widgetIngredient("salt", 1, "tsp")},
		},
		widgetBlock: block,
	}
	repo := NewRepository(client, storage.NewMemoryStore())
	require.NoError(t, repo.Search(context.Background(), "dish", 9, 0))

	done := make(chan error, 1)
	go func() {
		done <- repo.SetActive(context.Background(), 1, false)
	}()

	// 補齊仍在進行時，併發讀取到的必須是未被改動的集合
	// （補齊只能作用在私有副本上，寫回前共享元素不得變動）
	for i := 0; i < 200; i++ {
		results := repo.Results()
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Ingredients)
	}

	close(block)
	require.NoError(t, <-done)

	// 寫回後，搜尋結果與選中的食譜都帶有補齊的食材
	results := repo.Results()
	require.Len(t, results, 1)
	assert.Len(t, results[0].Ingredients, 1)

	active, ok := repo.Active()
	require.True(t, ok)
	assert.Len(t, active.Ingredients, 1)

	// 搜尋結果已補齊，加入收藏不需再呼叫上游
	require.NoError(t, repo.AddFavourite(context.Background(), 1))
	assert.Equal(t, 1, client.widgetCalls)
}

func TestLoadFavouritesMalformedStartsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), []byte("not json")))

	repo := NewRepository(&fakeClient{}, store)

	assert.Empty(t, repo.Favourites())
}
