package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogHandler "reviewhub-backend/internal/domains/catalog/handler"
	"reviewhub-backend/internal/shared/authz"
	"reviewhub-backend/internal/shared/middleware"
	"reviewhub-backend/internal/shared/response"
	"reviewhub-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupTitleRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(rg *gin.RouterGroup, c *container.Container) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", c.AuthHandler.Signup)
		auth.POST("/token", c.AuthHandler.Token)
	}
}

func setupUserRoutes(rg *gin.RouterGroup, c *container.Container) {
	users := rg.Group("/users", middleware.Auth(c.JWTManager))
	{
		// /users/me is every authenticated user's own profile. It must be
		// registered alongside the :username routes; gin prefers the
		// static segment.
		me := users.Group("/me", middleware.Authorize(authz.ActionSelfProfile))
		{
			me.GET("", c.UserHandler.GetMe)
			me.PATCH("", c.UserHandler.UpdateMe)
		}

		admin := users.Group("", middleware.Authorize(authz.ActionAdministerAccounts))
		{
			admin.GET("", c.UserHandler.List)
			admin.POST("", c.UserHandler.Create)
			admin.GET("/:username", c.UserHandler.Get)
			admin.PATCH("/:username", c.UserHandler.Update)
			admin.DELETE("/:username", c.UserHandler.Delete)
		}
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, c *container.Container) {
	groups := []struct {
		path    string
		handler *catalogHandler.CatalogHandler
	}{
		{"/categories", c.CategoryHandler},
		{"/genres", c.GenreHandler},
	}

	for _, g := range groups {
		group := rg.Group(g.path)
		{
			group.GET("", g.handler.List)

			mutate := group.Group("", middleware.Auth(c.JWTManager), middleware.Authorize(authz.ActionMutateCatalog))
			{
				mutate.POST("", g.handler.Create)
				mutate.DELETE("/:slug", g.handler.Delete)
			}
		}
	}
}

func setupTitleRoutes(rg *gin.RouterGroup, c *container.Container) {
	// Reads are public; OptionalAuth lets an authenticated reader carry
	// an identity without requiring one.
	titles := rg.Group("/titles", middleware.OptionalAuth(c.JWTManager))
	{
		titles.GET("", c.TitleHandler.List)
		titles.GET("/:title_id", c.TitleHandler.Get)

		adminOnly := titles.Group("", middleware.Auth(c.JWTManager), middleware.Authorize(authz.ActionMutateCatalog))
		{
			adminOnly.POST("", c.TitleHandler.Create)
			adminOnly.PATCH("/:title_id", c.TitleHandler.Update)
			adminOnly.DELETE("/:title_id", c.TitleHandler.Delete)
		}

		reviews := titles.Group("/:title_id/reviews")
		{
			reviews.GET("", c.ReviewHandler.List)
			reviews.GET("/:review_id", c.ReviewHandler.Get)

			authed := reviews.Group("", middleware.Auth(c.JWTManager))
			{
				authed.POST("", middleware.Authorize(authz.ActionCreateContent), c.ReviewHandler.Create)
				// Ownership is checked in the service: authors, moderators
				// and admins may mutate.
				authed.PATCH("/:review_id", c.ReviewHandler.Update)
				authed.DELETE("/:review_id", c.ReviewHandler.Delete)
			}

			comments := reviews.Group("/:review_id/comments")
			{
				comments.GET("", c.CommentHandler.List)
				comments.GET("/:comment_id", c.CommentHandler.Get)

				authedComments := comments.Group("", middleware.Auth(c.JWTManager))
				{
					authedComments.POST("", middleware.Authorize(authz.ActionCreateContent), c.CommentHandler.Create)
					authedComments.PATCH("/:comment_id", c.CommentHandler.Update)
					authedComments.DELETE("/:comment_id", c.CommentHandler.Delete)
				}
			}
		}
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := "UP"
		code := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = "DOWN"
			code = http.StatusServiceUnavailable
		}

		response.Success(ctx, code, gin.H{
			"status":      status,
			"service":     c.Config.App.Name,
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
		})
	}
}
