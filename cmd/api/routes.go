package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// simple logger middleware that uses zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	})

	r.Use(app.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", app.Handler.SignUp)
		authGroup.POST("/signin", app.Handler.SignIn)
		authGroup.POST("/reset-password", app.Handler.ResetPassword)
	}

	sessions := r.Group("/api/sessions")
	sessions.Use(app.AuthMiddleware())
	{
		sessions.POST("", app.Handler.CreateSession)
		sessions.GET("", app.Handler.ListSessions)
		sessions.GET("/:id", app.Handler.GetSession)
		sessions.GET("/:id/questions", app.Handler.ListQuestions)
	}

	answers := r.Group("/api/answers")
	answers.Use(app.AuthMiddleware())
	{
		answers.POST("", app.Handler.SubmitAnswer)
		answers.GET("/evaluation/:sessionId", app.Handler.GetEvaluations)
	}

	return r
}
