// Package narration 提供朗讀食譜內容的 HTTP 處理程序
package narration

import (
	"context"
	"net/http"

	narrationCore "recipe-finder/internal/core/narration"
	recipeCore "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NarrateRequest 朗讀請求
type NarrateRequest struct {
	Target string `json:"target" binding:"required"` // summary、instructions 或 ingredients
}

// Handler 朗讀處理程序
type Handler struct {
	repo   *recipeCore.Repository
	player *narrationCore.Player
}

// NewHandler 創建朗讀處理程序
func NewHandler(repo *recipeCore.Repository, player *narrationCore.Player) *Handler {
	return &Handler{
		repo:   repo,
		player: player,
	}
}

// HandleNarrate 將目前選中食譜的指定內容轉為語音播放。
// 播放在背景進行，響應立即返回組好的朗讀文字。
func (h *Handler) HandleNarrate(c *gin.Context) {
	var req NarrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	target, err := narrationCore.ParseTarget(req.Target)
	if err != nil {
		common.LogError("無效的朗讀目標",
			zap.Error(err),
			zap.String("target", req.Target),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  common.ErrInvalidNarrationTarget.Code,
		})
		return
	}

	active, ok := h.repo.Active()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no active recipe to narrate",
			"code":  common.ErrNoActiveRecipe.Code,
		})
		return
	}

	text, err := narrationCore.Compose(active, target)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  common.ErrInvalidNarrationTarget.Code,
		})
		return
	}

	// 播放的生命週期比請求長，使用獨立的 context
	go h.player.Read(context.Background(), text)

	common.LogInfo("開始朗讀",
		zap.Int("recipe_id", active.ID),
		zap.String("target", string(target)),
		zap.Int("text_length", len(text)),
	)

	c.JSON(http.StatusOK, gin.H{
		"recipe_id": active.ID,
		"target":    target,
		"text":      text,
	})
}
