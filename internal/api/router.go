package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/likhanovw/redTripwireBot/internal/store"
)

// NewRouter creates and configures the administrative Gin router. The API is
// a thin CRUD surface over the record store: statistics, user listing and
// identifier-keyed hard deletion.
func NewRouter(st store.UserRecordStore, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	handler := NewAdminHandler(st, log)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/stats", handler.GetStats)

		users := v1.Group("/users")
		{
			users.GET("", handler.ListUsers)
			users.DELETE("/:id", handler.DeleteUser)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "red-tripwire-bot",
	})
}

// AdminHandler handles the administrative endpoints.
type AdminHandler struct {
	store store.UserRecordStore
	log   zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(st store.UserRecordStore, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		store: st,
		log:   log.With().Str("handler", "admin").Logger(),
	}
}

// GetStats handles GET /v1/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	if _, err := h.store.ReloadIfChanged(); err != nil {
		h.log.Warn().Err(err).Msg("Store reload failed, serving in-memory stats")
	}
	c.JSON(http.StatusOK, h.store.Stats())
}

// ListUsers handles GET /v1/users, returning stored user IDs only.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	if _, err := h.store.ReloadIfChanged(); err != nil {
		h.log.Warn().Err(err).Msg("Store reload failed, serving in-memory list")
	}
	ids := h.store.AllIDs()
	c.JSON(http.StatusOK, gin.H{
		"user_ids": ids,
		"count":    len(ids),
	})
}

// DeleteUser handles DELETE /v1/users/:id, an identifier-keyed hard removal.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be numeric"})
		return
	}

	deleted, err := h.store.Delete(id)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", id).Msg("Delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist deletion"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	h.log.Info().Int64("user_id", id).Msg("User deleted via admin API")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
