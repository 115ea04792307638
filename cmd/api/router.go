package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))

	c.AuthorHandler.RegisterRoutes(router)
	c.PostHandler.RegisterRoutes(router)

	// Any unmatched path, whatever the method.
	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Not found")
	})

	return router
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := c.Store.Ping(pingCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
