package handlers

import (
	"context"
	"net/http"

	"learnify-api/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	Service *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: s}
}

// GetCourseProgress returns the course, its lectures and the caller's
// per-lecture progress.
func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	view, err := h.Service.Get(context.Background(), uid, courseID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": view})
}

// MarkLectureViewed records a lecture view and recomputes course completion.
func (h *ProgressHandler) MarkLectureViewed(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	lectureID, ok := pathID(c, "lectureId")
	if !ok {
		return
	}

	if err := h.Service.MarkLectureViewed(context.Background(), uid, courseID, lectureID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lecture progress updated successfully"})
}

// MarkCompleted flags every lecture viewed and the course completed.
func (h *ProgressHandler) MarkCompleted(c *gin.Context) {
	h.setCompleted(c, true, "Course marked as completed")
}

// MarkIncompleted resets the viewed flags and the completed flag.
func (h *ProgressHandler) MarkIncompleted(c *gin.Context) {
	h.setCompleted(c, false, "Course marked as incompleted")
}

func (h *ProgressHandler) setCompleted(c *gin.Context, completed bool, message string) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}

	if err := h.Service.SetCompleted(context.Background(), uid, courseID, completed); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
