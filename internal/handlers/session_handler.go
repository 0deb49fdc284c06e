package handlers

import (
	"context"
	"net/http"

	"learnify-api/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartSession starts a timed attempt or resumes the caller's existing one.
// Resuming returns 200 with the original start time; a fresh session is 201.
func (h *SessionHandler) StartSession(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}

	result, err := h.Service.Start(context.Background(), uid, quizID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	status := http.StatusCreated
	message := "Quiz session started successfully"
	switch {
	case result.Untimed:
		status = http.StatusOK
		message = "Quiz is untimed, no session required"
	case result.Resumed:
		status = http.StatusOK
		message = "Quiz session resumed"
	}
	c.JSON(status, gin.H{"success": true, "message": message, "quiz_session": result})
}
