package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
	"github.com/yourusername/iqtest-api/internal/service"
)

// RankingHandler serves composite rankings, leaderboards and their exports.
type RankingHandler struct {
	rankingService *service.RankingService
	exportService  *service.ExportService
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(rankingService *service.RankingService, exportService *service.ExportService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
		exportService:  exportService,
	}
}

// GetLeaderboard returns the ranked board for a timeframe.
func (h *RankingHandler) GetLeaderboard(c *gin.Context) {
	timeframe, ok := h.timeframe(c)
	if !ok {
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	entries, err := h.rankingService.Leaderboard(timeframe, limit)
	if err != nil {
		log.Printf("[RankingHandler] Failed to build leaderboard for %s: %v", timeframe, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timeframe": timeframe,
		"entries":   entries,
	})
}

// GetUserRanking returns one user's composite score for a timeframe.
// An ineligible user (too few results) maps to 409, not an error page.
func (h *RankingHandler) GetUserRanking(c *gin.Context) {
	timeframe, ok := h.timeframe(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	score, err := h.rankingService.Calculate(userID, timeframe)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientHistory):
			c.JSON(http.StatusConflict, gin.H{
				"error":      "Not enough results in this timeframe yet",
				"error_type": "insufficient_history",
			})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[RankingHandler] Failed to rank user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute ranking"})
		}
		return
	}

	c.JSON(http.StatusOK, score)
}

// ExportLeaderboard downloads the leaderboard as xlsx (default) or csv.
func (h *RankingHandler) ExportLeaderboard(c *gin.Context) {
	timeframe, ok := h.timeframe(c)
	if !ok {
		return
	}

	entries, err := h.rankingService.Leaderboard(timeframe, 1000)
	if err != nil {
		log.Printf("[RankingHandler] Failed to build leaderboard for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build leaderboard"})
		return
	}

	filename := fmt.Sprintf("ranking_%s_%s", timeframe, time.Now().UTC().Format("2006-01-02"))
	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		h.exportCSV(c, entries, filename)
	default:
		h.exportXLSX(c, timeframe, entries, filename)
	}
}

func (h *RankingHandler) exportCSV(c *gin.Context, entries []service.LeaderboardEntry, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel renders UTF-8 correctly.
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	for _, row := range h.exportService.LeaderboardCSVRows(entries) {
		if err := writer.Write(row); err != nil {
			log.Printf("[RankingHandler] Failed to write CSV row: %v", err)
			return
		}
	}
}

func (h *RankingHandler) exportXLSX(c *gin.Context, timeframe entity.Timeframe, entries []service.LeaderboardEntry, filename string) {
	f, err := h.exportService.BuildLeaderboardXLSX(timeframe, entries)
	if err != nil {
		log.Printf("[RankingHandler] Failed to build Excel export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[RankingHandler] Failed to write Excel response: %v", err)
	}
}

func (h *RankingHandler) timeframe(c *gin.Context) (entity.Timeframe, bool) {
	timeframe := entity.Timeframe(c.Param("timeframe"))
	if !timeframe.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Timeframe must be monthly, quarterly or yearly"})
		return "", false
	}
	return timeframe, true
}

func (h *RankingHandler) userID(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(parsed), true
}
