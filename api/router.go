// Package api serves the task REST endpoints under /api.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task-manager/models"
	"task-manager/store"
)

// Options configures NewRouter.
type Options struct {
	Store  store.Store
	Logger *slog.Logger
	// ClientOrigin is the only origin CORS lets through.
	ClientOrigin string
}

// Handler holds the dependencies shared by every route.
type Handler struct {
	store store.Store
	log   *slog.Logger
}

// NewHandler wraps st; log may be nil.
func NewHandler(st store.Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: st, log: log}
}

// NewRouter builds the gin engine with middleware and routes registered.
func NewRouter(opts Options) *gin.Engine {
	h := NewHandler(opts.Store, opts.Logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(h.log))
	r.Use(cors.New(corsConfig(opts.ClientOrigin)))

	api := r.Group("/api")
	{
		api.GET("/tasks", h.listTasks)
		api.POST("/tasks", h.createTask)
		api.DELETE("/tasks/:id", h.deleteTask)
		api.GET("/working", h.working)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.Envelope{Success: false, Message: "Route not found"})
	})

	return r
}

func corsConfig(origin string) cors.Config {
	return cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
