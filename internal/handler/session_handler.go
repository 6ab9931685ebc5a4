package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	"github.com/yourusername/iqtest-api/internal/handler/dto"
	"github.com/yourusername/iqtest-api/internal/middleware"
	apperrors "github.com/yourusername/iqtest-api/internal/pkg/errors"
	"github.com/yourusername/iqtest-api/internal/service"
	"github.com/yourusername/iqtest-api/internal/service/quizengine"
)

// SessionHandler serves the quiz session lifecycle.
type SessionHandler struct {
	manager       *quizengine.SessionManager
	resultService *service.ResultService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(manager *quizengine.SessionManager, resultService *service.ResultService) *SessionHandler {
	return &SessionHandler{
		manager:       manager,
		resultService: resultService,
	}
}

// StartSessionRequest starts an attempt at one level.
type StartSessionRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	LevelID string `json:"level_id" binding:"required"`
}

// StartSession creates a session and returns it with the first question.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.Start(req.UserID, req.LevelID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSessionResponse(session))
}

// GetQuestion returns the question at the session's current index.
func (h *SessionHandler) GetQuestion(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	question, ok := session.CurrentQuestion()
	if !ok {
		// Past the end: the caller should finish now.
		c.JSON(http.StatusOK, gin.H{
			"done":     true,
			"progress": dto.NewProgressResponse(session.Progress()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"done":     false,
		"question": dto.NewQuestionResponse(question),
		"progress": dto.NewProgressResponse(session.Progress()),
	})
}

// GetProgress returns the progress snapshot.
func (h *SessionHandler) GetProgress(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewProgressResponse(session.Progress()))
}

// SubmitAnswerRequest carries one answer for the current question. Kind
// selects which value field is meaningful.
type SubmitAnswerRequest struct {
	Kind   string  `json:"kind" binding:"required,oneof=multiple_choice true_false numerical"`
	Option int     `json:"option"`
	Bool   bool    `json:"bool"`
	Value  float64 `json:"value"`
}

// SubmitAnswer records the answer at the current index without advancing.
// Submitting twice overwrites the earlier answer.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var answer entity.Answer
	switch entity.QuestionKind(req.Kind) {
	case entity.KindMultipleChoice:
		answer = entity.OptionAnswer(req.Option)
	case entity.KindTrueFalse:
		answer = entity.BoolAnswer(req.Bool)
	case entity.KindNumerical:
		answer = entity.ValueAnswer(req.Value)
	}

	if err := session.SubmitAnswer(answer); err != nil {
		h.handleSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": dto.NewProgressResponse(session.Progress())})
}

// Next advances to the following question. advanced=false means the session
// is at the last question and the caller should finish.
func (h *SessionHandler) Next(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	advanced, err := session.Next()
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	resp := gin.H{
		"advanced": advanced,
		"progress": dto.NewProgressResponse(session.Progress()),
	}
	if q, found := session.CurrentQuestion(); found {
		resp["question"] = dto.NewQuestionResponse(q)
	}
	c.JSON(http.StatusOK, resp)
}

// Previous steps back to revisit an earlier question.
func (h *SessionHandler) Previous(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	moved, err := session.Previous()
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	resp := gin.H{
		"moved":    moved,
		"progress": dto.NewProgressResponse(session.Progress()),
	}
	if q, found := session.CurrentQuestion(); found {
		resp["question"] = dto.NewQuestionResponse(q)
	}
	c.JSON(http.StatusOK, resp)
}

// Finish completes the session, persists the result and returns the report.
// If a countdown already completed the session, the stored report is reused
// instead of failing the request.
func (h *SessionHandler) Finish(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	report, err := session.Finish()
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) || session.Report() == nil {
			h.handleSessionError(c, err)
			return
		}
		report = session.Report()
	}

	result, err := h.resultService.RecordResult(session, middleware.ClientIP(c), middleware.ClientUserAgent(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Result already recorded for this session"})
			return
		}
		log.Printf("[SessionHandler] Failed to record result for session %s: %v", session.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record result"})
		return
	}

	h.manager.Remove(session.ID)

	c.JSON(http.StatusOK, gin.H{
		"report": dto.NewReportResponse(session, report),
		"result": dto.NewResultResponse(result),
	})
}

// Abandon discards an in-progress session without recording a result.
func (h *SessionHandler) Abandon(c *gin.Context) {
	sessionID := c.Param("id")
	if err := h.manager.Abandon(sessionID); err != nil {
		h.handleSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session abandoned"})
}

func (h *SessionHandler) session(c *gin.Context) (*quizengine.Session, bool) {
	session, err := h.manager.Get(c.Param("id"))
	if err != nil {
		h.handleSessionError(c, err)
		return nil, false
	}
	return session, true
}

// handleSessionError maps engine errors onto HTTP statuses.
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, apperrors.ErrUnknownLevel):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown quiz level"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientQuestions):
		log.Printf("[SessionHandler] Catalog misconfiguration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Level catalog misconfigured"})
	default:
		log.Printf("[SessionHandler] Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
