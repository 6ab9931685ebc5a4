package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/iqtest-api/internal/service/quizengine"
)

// LevelHandler lists the configured quiz levels for the presentation layer.
type LevelHandler struct {
	levels *quizengine.LevelTable
	bank   *quizengine.Bank
}

// NewLevelHandler creates a new level handler.
func NewLevelHandler(levels *quizengine.LevelTable, bank *quizengine.Bank) *LevelHandler {
	return &LevelHandler{levels: levels, bank: bank}
}

// ListLevels returns every configured level with its catalog size.
func (h *LevelHandler) ListLevels(c *gin.Context) {
	levels := h.levels.List()
	out := make([]gin.H, 0, len(levels))
	for _, level := range levels {
		out = append(out, gin.H{
			"level":          level,
			"question_count": h.bank.CountByLevel(level.ID),
		})
	}
	c.JSON(http.StatusOK, gin.H{"levels": out})
}
