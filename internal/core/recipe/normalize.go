package recipe

import (
	"sort"

	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/pkg/textutil"
)

// Normalize 將上游搜尋結果轉為標準化食譜。
// 欄位只在上游有提供時才覆蓋，缺漏欄位保持零值；
// 描述文字會截斷到第一句並去除粗體標籤，步驟文字逐條清理後依編號排序。
// 部分欄位缺漏不構成錯誤。
func Normalize(id int, payload spoonacular.SearchResult) Recipe {
	r := Recipe{ID: id}

	if payload.Title != nil {
		r.Name = *payload.Title
	}
	if payload.Image != nil {
		r.Image = *payload.Image
	}
	if payload.Summary != nil {
		r.Description = textutil.StripBoldTags(textutil.TruncateToFirstSentence(*payload.Summary))
	}
	if payload.Servings != nil {
		r.Servings = *payload.Servings
	}
	if payload.ReadyInMinutes != nil {
		r.Time = *payload.ReadyInMinutes
	}
	if payload.SourceName != nil {
		r.Source = *payload.SourceName
	}

	for _, block := range payload.AnalyzedInstructions {
		for _, step := range block.Steps {
			r.Instructions = append(r.Instructions, Instruction{
				Number: step.Number,
				Text:   textutil.SanitizeInstructionStep(step.Step),
			})
		}
	}
	sort.SliceStable(r.Instructions, func(i, j int) bool {
		return r.Instructions[i].Number < r.Instructions[j].Number
	})

	return r
}

// ImportFromRecord 從持久化紀錄還原食譜。
// 紀錄在寫入時已經過清理，這裡逐欄位照搬，不重新清理、不重新映射。
func ImportFromRecord(record FavouriteRecord) Recipe {
	return Recipe(record)
}
