package recipe

import (
	"strconv"

	"recipe-finder/internal/pkg/textutil"
)

// ResultCardView 搜尋結果卡片所需的資料
type ResultCardView struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Image           string `json:"image"`
	Description     string `json:"description"`
	TimeDisplay     string `json:"time_display"`
	TimeLabel       string `json:"time_label"`
	ServingsDisplay string `json:"servings_display"`
	ServingsLabel   string `json:"servings_label"`
}

// FavouriteCardView 收藏側欄卡片所需的資料
type FavouriteCardView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ActiveDetailView 詳細頁面所需的資料
type ActiveDetailView struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	Image           string        `json:"image"`
	Description     string        `json:"description"`
	TimeDisplay     string        `json:"time_display"`
	TimeLabel       string        `json:"time_label"`
	ServingsDisplay string        `json:"servings_display"`
	ServingsLabel   string        `json:"servings_label"`
	Instructions    []Instruction `json:"instructions"`
	Ingredients     []Ingredient  `json:"ingredients"`
	Source          string        `json:"source"`
}

// displayCount 0 代表未提供，顯示 "??"
func displayCount(v int) string {
	if v == 0 {
		return "??"
	}
	return strconv.Itoa(v)
}

// ResultCard 產生搜尋結果卡片資料
func (r Recipe) ResultCard() ResultCardView {
	return ResultCardView{
		ID:              r.ID,
		Name:            r.Name,
		Image:           r.Image,
		Description:     r.Description,
		TimeDisplay:     displayCount(r.Time),
		TimeLabel:       "minute" + textutil.Pluralize(float64(r.Time)),
		ServingsDisplay: displayCount(r.Servings),
		ServingsLabel:   "serving" + textutil.Pluralize(float64(r.Servings)),
	}
}

// FavouriteCard 產生收藏卡片資料
func (r Recipe) FavouriteCard() FavouriteCardView {
	return FavouriteCardView{
		ID:    r.ID,
		Name:  r.Name,
		Image: r.Image,
	}
}

// ActiveDetail 產生詳細頁面資料
func (r Recipe) ActiveDetail() ActiveDetailView {
	return ActiveDetailView{
		ID:              r.ID,
		Name:            r.Name,
		Image:           r.Image,
		Description:     r.Description,
		TimeDisplay:     displayCount(r.Time),
		TimeLabel:       "minute" + textutil.Pluralize(float64(r.Time)),
		ServingsDisplay: displayCount(r.Servings),
		ServingsLabel:   "serving" + textutil.Pluralize(float64(r.Servings)),
		Instructions:    r.Instructions,
		Ingredients:     r.Ingredients,
		Source:          r.Source,
	}
}
