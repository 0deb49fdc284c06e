package handlers

import (
	"context"
	"net/http"

	"learnify-api/internal/service"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	Service *service.CourseService
}

func NewCourseHandler(s *service.CourseService) *CourseHandler {
	return &CourseHandler{Service: s}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var in service.CourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Course title and category are required"})
		return
	}

	course, err := h.Service.Create(context.Background(), uid, &in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Course created", "course": course})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	view, err := h.Service.Get(context.Background(), courseID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "course": view.Course, "lectures": view.Lectures})
}

func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	courses, err := h.Service.ListByCreator(context.Background(), uid)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "courses": courses})
}

func (h *CourseHandler) CreateLecture(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return
	}
	var in service.LectureInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Lecture title is required"})
		return
	}

	lecture, err := h.Service.AddLecture(context.Background(), courseID, &in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Lecture created", "lecture": lecture})
}
