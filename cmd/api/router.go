package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blcktgr73/StudyBlog/internal/shared/middleware"
	"github.com/blcktgr73/StudyBlog/pkg/container"
)

// SetupRouter wires every route against the handlers in the container.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	v1.GET("/health", healthHandler(c))

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}

	users := v1.Group("/users")
	users.Use(middleware.RequireAuth(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetMe)
		users.PUT("/me", c.UserHandler.UpdateMe)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:slug", c.CategoryHandler.GetBySlug)
	}

	tags := v1.Group("/tags")
	{
		tags.GET("", c.TagHandler.List)
		tags.GET("/:slug", c.TagHandler.GetBySlug)
	}

	posts := v1.Group("/posts")
	{
		// Reads resolve the caller when a token is present so authors
		// can see their own drafts.
		posts.GET("", middleware.OptionalAuth(c.JWTManager), c.PostHandler.List)
		posts.GET("/:slug", middleware.OptionalAuth(c.JWTManager), c.PostHandler.GetBySlug)

		posts.POST("", middleware.RequireAuth(c.JWTManager), c.PostHandler.Create)
		posts.PATCH("/:id", middleware.RequireAuth(c.JWTManager), c.PostHandler.Update)
		posts.DELETE("/:id", middleware.RequireAuth(c.JWTManager), c.PostHandler.Delete)
	}

	// Uploads are only routable when object storage came up.
	if c.UploadHandler != nil {
		v1.POST("/upload", middleware.RequireAuth(c.JWTManager), c.UploadHandler.Upload)
	}

	return router
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "degraded"
			health["database"] = "down"
		} else {
			health["database"] = "up"
		}

		if c.Cache != nil {
			if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
				health["cache"] = "down"
			} else {
				health["cache"] = "up"
			}
		} else {
			health["cache"] = "disabled"
		}

		ctx.JSON(status, health)
	}
}
