package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"learnify-api/internal/db"
	"learnify-api/internal/event"
	"learnify-api/internal/handlers"
	"learnify-api/internal/middleware"
	"learnify-api/internal/repository"
	"learnify-api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "learnify"
	}
	database := db.Client.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Redis-backed rate limiting, optional
	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	} else {
		log.Println("Redis not configured, rate limiting disabled")
	}

	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	quizRepo := repository.NewQuizRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	optionRepo := repository.NewOptionRepository(database)
	sessionRepo := repository.NewSessionRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	progressRepo := repository.NewProgressRepository(database)
	courseRepo := repository.NewCourseRepository(database)
	lectureRepo := repository.NewLectureRepository(database)

	// Services
	progressService := service.NewProgressService(progressRepo, courseRepo, lectureRepo)
	quizService := service.NewQuizService(quizRepo, questionRepo, optionRepo, sessionRepo, attemptRepo, lectureRepo, progressRepo)
	sessionService := service.NewSessionService(sessionRepo, quizRepo)
	attemptService := service.NewAttemptService(attemptRepo, sessionRepo, quizRepo, questionRepo, optionRepo, progressService)
	courseService := service.NewCourseService(courseRepo, lectureRepo)

	// Handlers
	quizHandler := handlers.NewQuizHandler(quizService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	progressHandler := handlers.NewProgressHandler(progressService)
	courseHandler := handlers.NewCourseHandler(courseService)

	authRequired := func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
				"code":    "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	}

	quizzes := r.Group("/api/v1/quizzes", authRequired)
	{
		quizzes.POST("/", func(c *gin.Context) {
			quizHandler.CreateQuiz(c)
			if c.Writer.Status() == http.StatusCreated {
				publisher.Publish(event.QuizCreated, gin.H{"user_id": c.GetHeader("X-User-ID")})
			}
		})
		quizzes.PUT("/:quizId", func(c *gin.Context) {
			quizHandler.UpdateQuiz(c)
			if c.Writer.Status() == http.StatusOK {
				publisher.Publish(event.QuizUpdated, gin.H{"quiz_id": c.Param("quizId")})
			}
		})
		quizzes.DELETE("/:quizId", func(c *gin.Context) {
			quizHandler.DeleteQuiz(c)
			if c.Writer.Status() == http.StatusOK {
				publisher.Publish(event.QuizDeleted, gin.H{"quiz_id": c.Param("quizId")})
			}
		})
		quizzes.GET("/:quizId", quizHandler.GetQuiz)
		quizzes.GET("/lectures/:lectureId", quizHandler.GetQuizByLecture)
		quizzes.GET("/student/:quizId", quizHandler.GetQuizForStudent)

		quizzes.POST("/:quizId/start",
			middleware.RateLimit(redisClient, "session-start", 10, time.Minute),
			func(c *gin.Context) {
				sessionHandler.StartSession(c)
				if c.Writer.Status() < http.StatusBadRequest {
					publisher.Publish(event.SessionStarted, gin.H{
						"quiz_id": c.Param("quizId"),
						"user_id": c.GetHeader("X-User-ID"),
					})
				}
			})
		quizzes.POST("/:quizId/submit", func(c *gin.Context) {
			attemptHandler.SubmitQuiz(c)
			if c.Writer.Status() == http.StatusOK {
				publisher.Publish(event.AttemptSubmitted, gin.H{
					"quiz_id": c.Param("quizId"),
					"user_id": c.GetHeader("X-User-ID"),
				})
			}
		})

		quizzes.GET("/attempts/:attemptId", attemptHandler.GetAttempt)
		quizzes.GET("/me/attempts", attemptHandler.ListMyAttempts)
	}

	progress := r.Group("/api/v1/progress", authRequired)
	{
		progress.GET("/:courseId", progressHandler.GetCourseProgress)
		progress.POST("/:courseId/lectures/:lectureId/view", func(c *gin.Context) {
			progressHandler.MarkLectureViewed(c)
			if c.Writer.Status() == http.StatusOK {
				publisher.Publish(event.LectureViewed, gin.H{
					"course_id":  c.Param("courseId"),
					"lecture_id": c.Param("lectureId"),
					"user_id":    c.GetHeader("X-User-ID"),
				})
			}
		})
		progress.POST("/:courseId/complete", progressHandler.MarkCompleted)
		progress.POST("/:courseId/incomplete", progressHandler.MarkIncompleted)
	}

	courses := r.Group("/api/v1/courses", authRequired)
	{
		courses.POST("/", courseHandler.CreateCourse)
		courses.GET("/", courseHandler.ListMyCourses)
		courses.GET("/:courseId", courseHandler.GetCourse)
		courses.POST("/:courseId/lectures", courseHandler.CreateLecture)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
