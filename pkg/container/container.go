// Package container builds the application dependency graph in order:
// config, infrastructure, repositories, services, handlers. A failure
// at any step aborts startup.
package container

import (
	"context"
	"fmt"

	"reviewhub-backend/internal/config"
	"reviewhub-backend/internal/domains/catalog"
	catalogHandler "reviewhub-backend/internal/domains/catalog/handler"
	catalogRepo "reviewhub-backend/internal/domains/catalog/repository"
	catalogService "reviewhub-backend/internal/domains/catalog/service"
	"reviewhub-backend/internal/domains/review"
	reviewHandler "reviewhub-backend/internal/domains/review/handler"
	reviewRepo "reviewhub-backend/internal/domains/review/repository"
	reviewService "reviewhub-backend/internal/domains/review/service"
	"reviewhub-backend/internal/domains/title"
	titleHandler "reviewhub-backend/internal/domains/title/handler"
	titleRepo "reviewhub-backend/internal/domains/title/repository"
	titleService "reviewhub-backend/internal/domains/title/service"
	"reviewhub-backend/internal/domains/user"
	userHandler "reviewhub-backend/internal/domains/user/handler"
	userRepo "reviewhub-backend/internal/domains/user/repository"
	userService "reviewhub-backend/internal/domains/user/service"
	"reviewhub-backend/internal/domains/user/token"
	infraCache "reviewhub-backend/internal/infrastructure/cache"
	"reviewhub-backend/internal/infrastructure/database"
	"reviewhub-backend/internal/infrastructure/email"
	"reviewhub-backend/pkg/cache"
	"reviewhub-backend/pkg/jwt"
	"reviewhub-backend/pkg/logger"
)

type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Codes      *token.Generator
	Email      email.EmailService

	UserRepo     user.Repository
	CategoryRepo catalog.Repository
	GenreRepo    catalog.Repository
	TitleRepo    title.Repository
	ReviewRepo   review.Repository

	UserService     user.Service
	CategoryService catalog.Service
	GenreService    catalog.Service
	TitleService    title.Service
	ReviewService   review.Service

	AuthHandler     *userHandler.AuthHandler
	UserHandler     *userHandler.UserHandler
	CategoryHandler *catalogHandler.CatalogHandler
	GenreHandler    *catalogHandler.CatalogHandler
	TitleHandler    *titleHandler.TitleHandler
	ReviewHandler   *reviewHandler.ReviewHandler
	CommentHandler  *reviewHandler.CommentHandler

	redis *infraCache.RedisCache
}

func NewContainer() (*Container, error) {
	c := &Container{}
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c.redis = infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redis.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = c.redis

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWTExpiry())
	c.Codes = token.NewGenerator(cfg.Token.Secret, cfg.TokenWindow())
	c.Email = email.NewSMTPEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)

	pool := c.DB.Pool
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CategoryRepo = catalogRepo.NewPostgresRepository(pool, catalog.KindCategory)
	c.GenreRepo = catalogRepo.NewPostgresRepository(pool, catalog.KindGenre)
	c.TitleRepo = titleRepo.NewTitleRepository(pool)
	c.ReviewRepo = reviewRepo.NewReviewRepository(pool)

	c.UserService = userService.NewUserService(c.UserRepo, c.Codes, c.Email, c.JWTManager)
	c.CategoryService = catalogService.NewCatalogService(c.CategoryRepo)
	c.GenreService = catalogService.NewCatalogService(c.GenreRepo)
	c.TitleService = titleService.NewTitleService(c.TitleRepo, c.CategoryRepo, c.GenreRepo, c.Cache)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.TitleRepo, c.Cache)

	c.AuthHandler = userHandler.NewAuthHandler(c.UserService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = catalogHandler.NewCatalogHandler(c.CategoryService)
	c.GenreHandler = catalogHandler.NewCatalogHandler(c.GenreService)
	c.TitleHandler = titleHandler.NewTitleHandler(c.TitleService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.CommentHandler = reviewHandler.NewCommentHandler(c.ReviewService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// Cleanup releases infrastructure connections on shutdown.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
