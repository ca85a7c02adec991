// Package spoonacular 封裝上游食譜搜尋 API 的客戶端
package spoonacular

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SearchResult 上游搜尋結果的原始欄位。
// 欄位皆為指標，缺漏欄位保持 nil，由 normalizer 決定預設值。
type SearchResult struct {
	ID                   int                 `json:"id"`
	Title                *string             `json:"title"`
	Image                *string             `json:"image"`
	Summary              *string             `json:"summary"`
	Servings             *int                `json:"servings"`
	ReadyInMinutes       *int                `json:"readyInMinutes"`
	SourceName           *string             `json:"sourceName"`
	AnalyzedInstructions []InstructionsBlock `json:"analyzedInstructions"`
}

// InstructionsBlock 上游的步驟區塊
type InstructionsBlock struct {
	Steps []InstructionStep `json:"steps"`
}

// InstructionStep 上游的單一步驟
type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// searchResponse 搜尋端點的完整響應
type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// WidgetIngredient 上游食材端點的原始欄位
type WidgetIngredient struct {
	Name   string `json:"name"`
	Amount struct {
		Metric struct {
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
		} `json:"metric"`
	} `json:"amount"`
}

// ingredientResponse 食材端點的完整響應
type ingredientResponse struct {
	Ingredients []WidgetIngredient `json:"ingredients"`
}

// Client 食譜搜尋 API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建食譜搜尋 API 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Spoonacular.BaseURL).
		SetHeader("x-api-key", cfg.Spoonacular.APIKey).
		SetTimeout(cfg.Spoonacular.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// ComplexSearch 以關鍵字搜尋食譜，回傳上游結果（保持響應順序）
func (c *Client) ComplexSearch(ctx context.Context, query string, number, offset int) ([]SearchResult, error) {
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":                query,
			"addRecipeInformation": "true",
			"number":               strconv.Itoa(number),
			"offset":               strconv.Itoa(offset),
		}).
		Get("/recipes/complexSearch")

	common.LogUpstreamCall("/recipes/complexSearch", time.Since(start), err, "")

	if err != nil {
		return nil, fmt.Errorf("failed to send search request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("搜尋端點返回錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	common.LogDebug("搜尋完成",
		zap.String("query", query),
		zap.Int("result_count", len(result.Results)),
	)

	return result.Results, nil
}

// IngredientWidget 取得指定食譜的食材清單
func (c *Client) IngredientWidget(ctx context.Context, id int) ([]WidgetIngredient, error) {
	start := time.Now()
	endpoint := fmt.Sprintf("/recipes/%d/ingredientWidget.json", id)

	resp, err := c.client.R().
		SetContext(ctx).
		Get(endpoint)

	common.LogUpstreamCall(endpoint, time.Since(start), err, "")

	if err != nil {
		return nil, fmt.Errorf("failed to send ingredient request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("食材端點返回錯誤狀態",
			zap.Int("status_code", resp.StatusCode()),
			zap.Int("recipe_id", id),
		)
		return nil, fmt.Errorf("ingredient API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result ingredientResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse ingredient response: %w", err)
	}

	return result.Ingredients, nil
}
