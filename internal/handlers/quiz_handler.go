package handlers

import (
	"context"
	"net/http"

	"learnify-api/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{Service: s}
}

// CreateQuiz creates a quiz with its full question and option set.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var in service.QuizInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	quiz, err := h.Service.Create(context.Background(), uid, &in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Quiz created successfully",
		"quiz_id": quiz.ID.Hex(),
	})
}

// UpdateQuiz replaces the quiz metadata and question set wholesale.
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	var in service.QuizInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	quiz, err := h.Service.Update(context.Background(), quizID, &in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quiz updated successfully",
		"quiz_id": quiz.ID.Hex(),
	})
}

// DeleteQuiz removes the quiz and all dependent records.
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}

	err := h.Service.Delete(context.Background(), uid, c.GetHeader("X-User-Role"), quizID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quiz and all associated data deleted successfully"})
}

// GetQuiz returns the author view, correctness flags included.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	view, err := h.Service.Get(context.Background(), quizID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quiz": view.Quiz, "questions": view.Questions})
}

// GetQuizByLecture returns the author view looked up by the owning lecture.
func (h *QuizHandler) GetQuizByLecture(c *gin.Context) {
	lectureID, ok := pathID(c, "lectureId")
	if !ok {
		return
	}
	view, err := h.Service.GetByLecture(context.Background(), lectureID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quiz": view.Quiz, "questions": view.Questions})
}

// GetQuizForStudent returns the sanitized taking view.
func (h *QuizHandler) GetQuizForStudent(c *gin.Context) {
	quizID, ok := pathID(c, "quizId")
	if !ok {
		return
	}
	view, err := h.Service.GetForStudent(context.Background(), quizID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quiz": view.Quiz, "questions": view.Questions})
}
