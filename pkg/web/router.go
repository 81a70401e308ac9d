// Package web exposes the HTTP API over gin. Handlers stay thin: bind,
// call the service package, translate errors.
package web

import (
	"github.com/doduclong204/vietvibe/pkg/db"
	"github.com/doduclong204/vietvibe/pkg/notify"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NewRouter wires all routes. The notifier may be nil.
func NewRouter(notifier *notify.Notifier) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handleRegister)
		authGroup.POST("/login", handleLogin)
		authGroup.POST("/refresh", handleRefresh)
		authGroup.POST("/logout", requireAuth(), handleLogout)
	}

	games := r.Group("/games")
	{
		games.GET("", handleListGames)
		games.GET("/:id", handleGetGame)
		games.POST("", requireAuth(), handleCreateGame)
		games.PUT("/:id", requireAuth(), handleUpdateGame)
		games.DELETE("/:id", requireAuth(), handleDeleteGame)
		games.POST("/:id/session", requireAuth(), handleStartSession)
		games.POST("/:id/play", requireAuth(), handlePlayQuestion)
		games.POST("/:id/submit", requireAuth(), submitScoreHandler(notifier))
	}

	points := r.Group("/points")
	{
		points.GET("", handleListPoints)
		points.GET("/search", handleSearchPoints)
		points.GET("/range", handlePointsByScoreRange)
		points.GET("/max", handleMaxScore)
		points.GET("/min", handleMinScore)
		points.GET("/user/:userId/stats", handleUserStats)
		points.GET("/user/:userId/history", handleUserHistory)
		points.GET("/game/:gameId/stats", handleGameStats)
		points.PUT("/:id", requireAuth(), handleUpdatePoint)
		points.DELETE("/:id", requireAuth(), handleDeletePoint)
		points.DELETE("/user/:userId", requireAuth(), handleResetUserPoints)
		points.DELETE("/game/:gameId", requireAuth(), handleResetGamePoints)
	}

	progress := r.Group("/progress", requireAuth())
	{
		progress.POST("/save", handleSaveProgress)
		progress.GET("/completed/count", handleCompletedCount)
		progress.GET("/:lessonId", handleGetProgress)
	}

	lessons := r.Group("/lessons")
	{
		lessons.GET("", optionalAuth(), handleListLessons)
		lessons.GET("/:id", handleGetLesson)
		lessons.POST("", requireAuth(), handleCreateLesson)
		lessons.PUT("/:id", requireAuth(), handleUpdateLesson)
		lessons.DELETE("/:id", requireAuth(), handleDeleteLesson)
		lessons.GET("/:id/vocabulary", handleListVocabulary)
		lessons.POST("/:id/vocabulary", requireAuth(), handleAddVocabulary)
	}

	vocab := r.Group("/vocabulary", requireAuth())
	{
		vocab.PUT("/:id", handleUpdateVocabulary)
		vocab.DELETE("/:id", handleDeleteVocabulary)
	}

	users := r.Group("/users", requireAuth())
	{
		users.GET("", handleListUsers)
		users.GET("/:id", handleGetUser)
		users.PUT("/:id", handleUpdateUser)
		users.DELETE("/:id", handleDeleteUser)
	}

	return r
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("gametype", func(fl validator.FieldLevel) bool {
			return db.GameType(fl.Field().String()).Valid()
		})
	}
}
