package handlers

import (
	"errors"
	"log"
	"net/http"

	"learnify-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// abortWithError translates service errors into the HTTP taxonomy: validation
// 400, not-found 404, conflict 409, time-expired 408 (with a code the client
// branches on), authorization 403, anything else 500 with the detail kept
// server-side.
func abortWithError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrLectureNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrProgressNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrQuizExists),
		errors.Is(err, service.ErrSessionConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrTimeExpired):
		c.JSON(http.StatusRequestTimeout, gin.H{
			"success": false,
			"message": err.Error(),
			"code":    "TIME_EXPIRED",
			"status":  "timed_out",
		})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

// userID resolves the authenticated identity set by the auth layer. The auth
// middleware already rejected requests without the header; this guards the id
// format.
func userID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetHeader("X-User-ID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses an ObjectID path parameter, answering 400 on bad input.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid " + name + " format"})
		return primitive.NilObjectID, false
	}
	return id, true
}
