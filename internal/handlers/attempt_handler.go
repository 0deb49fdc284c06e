package handlers

import (
	"context"
	"net/http"

	"learnify-api/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

type submitRequest struct {
	QuizSessionID string                `json:"quiz_session_id"`
	Answers       []service.AnswerInput `json:"answers" binding:"required,min=1"`
}

// SubmitQuiz grades a submission against the caller's active session.
func (h *AttemptHandler) SubmitQuiz(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No answers submitted"})
		return
	}

	result, err := h.Service.Submit(context.Background(), uid, quizID, req.QuizSessionID, req.Answers)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Quiz submitted successfully",
		"attempt_id":   result.AttemptID,
		"score":        result.Score,
		"total_points": result.TotalPoints,
		"passed":       result.Passed,
		"status":       result.Status,
	})
}

// GetAttempt returns one graded attempt with full question and option detail.
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	attemptID, ok := pathID(c, "attemptId")
	if !ok {
		return
	}

	view, err := h.Service.GetAttempt(context.Background(), uid, attemptID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "attempt": view})
}

// ListMyAttempts returns the caller's attempt history.
func (h *AttemptHandler) ListMyAttempts(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	attempts, err := h.Service.ListAttempts(context.Background(), uid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "attempts": attempts})
}
