// Package recipe 提供搜尋、收藏與選取食譜的 HTTP 處理程序
package recipe

import (
	"errors"
	"net/http"
	"strconv"

	recipeCore "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	repo   *recipeCore.Repository
	config *config.Config
}

// NewHandler 創建食譜處理程序
func NewHandler(repo *recipeCore.Repository, cfg *config.Config) *Handler {
	return &Handler{
		repo:   repo,
		config: cfg,
	}
}

// requestID 取得或生成請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
}

// HandleSearch 以關鍵字搜尋食譜並返回卡片資料
func (h *Handler) HandleSearch(c *gin.Context) {
	reqID := requestID(c)

	query := c.Query("query")
	if query == "" {
		common.LogWarn("搜尋關鍵字為空", zap.String("request_id", reqID))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query parameter is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	number := h.config.Spoonacular.SearchLimit
	if raw := c.Query("number"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			number = v
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	common.LogInfo("開始處理搜尋請求",
		zap.String("request_id", reqID),
		zap.String("query", query),
		zap.Int("number", number),
		zap.Int("offset", offset),
	)

	if err := h.repo.Search(c.Request.Context(), query, number, offset); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "search failed",
			"code":  common.ErrUpstreamError.Code,
		})
		return
	}

	results := h.repo.Results()
	cards := make([]recipeCore.ResultCardView, 0, len(results))
	for _, r := range results {
		cards = append(cards, r.ResultCard())
	}

	c.JSON(http.StatusOK, gin.H{
		"results": cards,
		"count":   len(cards),
	})
}

// HandleSetActive 選取一份食譜作為詳細頁面的顯示對象
func (h *Handler) HandleSetActive(c *gin.Context) {
	reqID := requestID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid recipe id",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	fromFavourites := c.Query("from_favourites") == "true"

	if err := h.repo.SetActive(c.Request.Context(), id, fromFavourites); err != nil {
		if errors.Is(err, common.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "recipe not found",
				"code":  common.ErrRecipeNotFound.Code,
			})
			return
		}
		common.LogError("選取食譜失敗",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.Int("recipe_id", id),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to set active recipe",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	active, _ := h.repo.Active()
	c.JSON(http.StatusOK, active.ActiveDetail())
}

// HandleGetActive 返回目前選中的食譜
func (h *Handler) HandleGetActive(c *gin.Context) {
	active, ok := h.repo.Active()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no active recipe",
			"code":  common.ErrNoActiveRecipe.Code,
		})
		return
	}
	c.JSON(http.StatusOK, active.ActiveDetail())
}

// HandleListFavourites 返回收藏清單的卡片資料
func (h *Handler) HandleListFavourites(c *gin.Context) {
	favourites := h.repo.Favourites()
	cards := make([]recipeCore.FavouriteCardView, 0, len(favourites))
	for _, r := range favourites {
		cards = append(cards, r.FavouriteCard())
	}
	c.JSON(http.StatusOK, gin.H{
		"favourites": cards,
		"count":      len(cards),
	})
}

// HandleAddFavourite 將搜尋結果中的食譜加入收藏
func (h *Handler) HandleAddFavourite(c *gin.Context) {
	reqID := requestID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid recipe id",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	common.LogInfo("加入收藏",
		zap.String("request_id", reqID),
		zap.Int("recipe_id", id),
	)

	if err := h.repo.AddFavourite(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "recipe not found in search results",
				"code":  common.ErrRecipeNotFound.Code,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to add favourite",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(h.repo.Favourites()),
	})
}

// HandleRemoveFavourite 從收藏清單移除食譜
func (h *Handler) HandleRemoveFavourite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid recipe id",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	h.repo.RemoveFavourite(c.Request.Context(), id)

	c.JSON(http.StatusOK, gin.H{
		"count": len(h.repo.Favourites()),
	})
}
