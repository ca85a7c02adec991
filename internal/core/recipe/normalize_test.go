package recipe

import (
	"testing"

	"recipe-finder/internal/core/spoonacular"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestNormalizeFullPayload(t *testing.T) {
	payload := spoonacular.SearchResult{
		ID:             716429,
		Title:          strPtr("Pasta with Garlic"),
		Image:          strPtr("https://img.example.com/716429.jpg"),
		Summary:        strPtr("<b>Pasta with Garlic</b> is a main course. It costs little."),
		Servings:       intPtr(2),
		ReadyInMinutes: intPtr(45),
		SourceName:     strPtr("Full Belly Sisters"),
		AnalyzedInstructions: []spoonacular.InstructionsBlock{
			{Steps: []spoonacular.InstructionStep{
				{Number: 2, Step: "Add the pasta & stir"},
				{Number: 1, Step: "1. Boil water 2"},
			}},
		},
	}

	r := Normalize(payload.ID, payload)

	assert.Equal(t, 716429, r.ID)
	assert.Equal(t, "Pasta with Garlic", r.Name)
	assert.Equal(t, "https://img.example.com/716429.jpg", r.Image)
	// 描述只留第一句並去除粗體標籤
	assert.Equal(t, "Pasta with Garlic is a main course.", r.Description)
	assert.Equal(t, 2, r.Servings)
	assert.Equal(t, 45, r.Time)
	assert.Equal(t, "Full Belly Sisters", r.Source)

	// 步驟依編號遞增排序且逐條清理
	assert.Len(t, r.Instructions, 2)
	assert.Equal(t, 1, r.Instructions[0].Number)
	assert.Equal(t, "Boil water.", r.Instructions[0].Text)
	assert.Equal(t, 2, r.Instructions[1].Number)
	assert.Equal(t, "Add the pasta and stir.", r.Instructions[1].Text)

	// 食材在補齊之前為空
	assert.Empty(t, r.Ingredients)
}

func TestNormalizeMissingFieldsKeepDefaults(t *testing.T) {
	r := Normalize(42, spoonacular.SearchResult{ID: 42})

	assert.Equal(t, 42, r.ID)
	assert.Equal(t, "", r.Name)
	assert.Equal(t, "", r.Image)
	assert.Equal(t, "", r.Description)
	assert.Equal(t, 0, r.Servings)
	assert.Equal(t, 0, r.Time)
	assert.Equal(t, "", r.Source)
	assert.Empty(t, r.Instructions)
	assert.Empty(t, r.Ingredients)
}

func TestNormalizeMultipleInstructionBlocks(t *testing.T) {
	payload := spoonacular.SearchResult{
		ID: 7,
		AnalyzedInstructions: []spoonacular.InstructionsBlock{
			{Steps: []spoonacular.InstructionStep{{Number: 3, Step: "Serve"}}},
			{Steps: []spoonacular.InstructionStep{{Number: 1, Step: "Chop"}, {Number: 2, Step: "Fry"}}},
		},
	}

	r := Normalize(payload.ID, payload)

	assert.Len(t, r.Instructions, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{r.Instructions[0].Number, r.Instructions[1].Number, r.Instructions[2].Number})
}

func TestImportFromRecordCopiesVerbatim(t *testing.T) {
	// 紀錄在儲存時已清理過；還原時不得再清理或映射
	record := FavouriteRecord{
		ID:          10,
		Name:        "Saved Dish",
		Description: "Already sanitized text without a trailing period",
		Servings:    4,
		Time:        20,
		Ingredients: []Ingredient{{Quantity: 0.5, Unit: "l", Name: "water"}},
		Source:      "somewhere",
	}

	r := ImportFromRecord(record)

	assert.Equal(t, Recipe(record), r)
}
