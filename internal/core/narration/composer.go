// Package narration 將食譜內容組成朗讀文字並交由語音合成播放
package narration

import (
	"fmt"
	"strconv"
	"strings"

	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"
	"recipe-finder/internal/pkg/textutil"
)

// Target 朗讀目標：卡片摘要、料理步驟或食材清單
type Target string

const (
	TargetSummary      Target = "summary"
	TargetInstructions Target = "instructions"
	TargetIngredients  Target = "ingredients"
)

// ParseTarget 解析朗讀目標字串
func ParseTarget(s string) (Target, error) {
	switch Target(strings.ToLower(s)) {
	case TargetSummary:
		return TargetSummary, nil
	case TargetInstructions:
		return TargetInstructions, nil
	case TargetIngredients:
		return TargetIngredients, nil
	}
	return "", common.NewError(common.ErrInvalidNarrationTarget.Code, fmt.Sprintf("unknown narration target: %q", s), common.ErrInvalidNarrationTarget.Status, nil)
}

// Compose 依朗讀目標產生要朗讀的文字
func Compose(r recipe.Recipe, target Target) (string, error) {
	switch target {
	case TargetSummary:
		return composeSummary(r), nil
	case TargetInstructions:
		return composeInstructions(r), nil
	case TargetIngredients:
		return composeIngredients(r), nil
	}
	return "", common.NewError(common.ErrInvalidNarrationTarget.Code, fmt.Sprintf("unknown narration target: %q", target), common.ErrInvalidNarrationTarget.Status, nil)
}

// composeSummary 組出卡片摘要：名稱、份數、準備時間與描述。
// 份數或時間為 0 時讀作 "an unspecified number of"。
func composeSummary(r recipe.Recipe) string {
	return fmt.Sprintf("%s serves %s %s and takes %s minute%s to prepare. %s",
		r.Name,
		spokenCount(r.Servings),
		personWord(r.Servings),
		spokenCount(r.Time),
		textutil.Pluralize(float64(r.Time)),
		r.Description,
	)
}

// composeInstructions 依序組出每個步驟，去除最後的換行
func composeInstructions(r recipe.Recipe) string {
	var sb strings.Builder
	for _, step := range r.Instructions {
		sb.WriteString(fmt.Sprintf("Step %d; %s \n", step.Number, step.Text))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// composeIngredients 逐項組出食材，單位轉為完整讀法，去除最後的換行
func composeIngredients(r recipe.Recipe) string {
	var sb strings.Builder
	for _, ing := range r.Ingredients {
		unitPart := textutil.Articulate(ing.Unit)
		if ing.Unit != "" {
			unitPart += textutil.Pluralize(ing.Quantity)
		}
		sb.WriteString(fmt.Sprintf("%s %s; %s. \n",
			strconv.FormatFloat(ing.Quantity, 'f', -1, 64),
			unitPart,
			ing.Name,
		))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// spokenCount 0 代表未提供，讀作 "an unspecified number of"
func spokenCount(v int) string {
	if v == 0 {
		return "an unspecified number of"
	}
	return strconv.Itoa(v)
}

// personWord 份數的單複數讀法（0 視為單數，沿用原始行為）
func personWord(servings int) string {
	if servings > 1 {
		return "people"
	}
	return "person"
}
