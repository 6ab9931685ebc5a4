package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/iqtest-api/internal/handler/dto"
	"github.com/yourusername/iqtest-api/internal/service"
)

// UserHandler serves per-user result history and the fraud review surface.
type UserHandler struct {
	resultService *service.ResultService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(resultService *service.ResultService) *UserHandler {
	return &UserHandler{resultService: resultService}
}

// GetResults returns one page of the user's results, newest first.
func (h *UserHandler) GetResults(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	results, total, err := h.resultService.GetUserResults(userID, page, pageSize)
	if err != nil {
		log.Printf("[UserHandler] Failed to load results for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   dto.NewResultResponseList(results),
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetFraudAnalysis recomputes and returns the user's fraud analysis. Review
// surface: the analysis is derived on demand, never persisted.
func (h *UserHandler) GetFraudAnalysis(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	analysis, err := h.resultService.AnalyzeUserFraud(userID)
	if err != nil {
		log.Printf("[UserHandler] Failed to analyze user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze user"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *UserHandler) userID(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(parsed), true
}
