package container

import (
	"context"
	"fmt"
	"time"

	"github.com/blcktgr73/StudyBlog/internal/config"
	infraCache "github.com/blcktgr73/StudyBlog/internal/infrastructure/cache"
	"github.com/blcktgr73/StudyBlog/internal/infrastructure/database"
	"github.com/blcktgr73/StudyBlog/internal/infrastructure/storage"
	"github.com/blcktgr73/StudyBlog/pkg/cache"
	"github.com/blcktgr73/StudyBlog/pkg/jwt"
	"github.com/blcktgr73/StudyBlog/pkg/logger"

	"github.com/blcktgr73/StudyBlog/internal/domains/category"
	categoryHandler "github.com/blcktgr73/StudyBlog/internal/domains/category/handler"
	categoryRepo "github.com/blcktgr73/StudyBlog/internal/domains/category/repository"
	categoryService "github.com/blcktgr73/StudyBlog/internal/domains/category/service"
	"github.com/blcktgr73/StudyBlog/internal/domains/post"
	postHandler "github.com/blcktgr73/StudyBlog/internal/domains/post/handler"
	postRepo "github.com/blcktgr73/StudyBlog/internal/domains/post/repository"
	postService "github.com/blcktgr73/StudyBlog/internal/domains/post/service"
	"github.com/blcktgr73/StudyBlog/internal/domains/tag"
	tagHandler "github.com/blcktgr73/StudyBlog/internal/domains/tag/handler"
	tagRepo "github.com/blcktgr73/StudyBlog/internal/domains/tag/repository"
	tagService "github.com/blcktgr73/StudyBlog/internal/domains/tag/service"
	uploadHandler "github.com/blcktgr73/StudyBlog/internal/domains/upload/handler"
	"github.com/blcktgr73/StudyBlog/internal/domains/user"
	userHandler "github.com/blcktgr73/StudyBlog/internal/domains/user/handler"
	userRepo "github.com/blcktgr73/StudyBlog/internal/domains/user/repository"
	userService "github.com/blcktgr73/StudyBlog/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton wired once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    storage.ObjectStorage
	JWTManager *jwt.Manager

	UserRepo     user.Repository
	PostRepo     post.Repository
	CategoryRepo category.Repository
	TagRepo      tag.Repository

	UserService     user.Service
	PostService     post.Service
	CategoryService category.Service
	TagService      tag.Service

	UserHandler     *userHandler.UserHandler
	PostHandler     *postHandler.PostHandler
	CategoryHandler *categoryHandler.CategoryHandler
	TagHandler      *tagHandler.TagHandler
	UploadHandler   *uploadHandler.UploadHandler
}

// NewContainer builds the whole graph in dependency order: config,
// infrastructure, repositories, services, handlers. The database is
// required; Redis and MinIO degrade gracefully when unreachable.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()
	if err := c.initStorage(); err != nil {
		return nil, err
	}

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	logger.Info("database connected", nil)
	return nil
}

// initCache leaves c.Cache nil when Redis is unreachable. Cached reads
// then fall through to the database.
func (c *Container) initCache() {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, caching disabled", err)
		return
	}

	c.Cache = redisCache
	logger.Info("redis connected", nil)
}

// initStorage requires object storage in production. Elsewhere it
// leaves c.Storage nil when MinIO is unreachable; the upload route is
// then not registered.
func (c *Container) initStorage() error {
	st, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to object storage: %w", err)
		}
		logger.Warn("object storage unavailable, uploads disabled", err)
		return nil
	}

	c.Storage = st
	logger.Info("object storage ready", map[string]interface{}{
		"bucket": c.Config.MinIO.Bucket,
	})
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.PostService = postService.NewPostService(c.PostRepo)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache)
	c.TagService = tagService.NewTagService(c.TagRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	if c.Storage != nil {
		c.UploadHandler = uploadHandler.NewUploadHandler(c.Storage, c.Config.Upload)
	}
}

// Cleanup releases held connections. Called during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close redis connection", err)
		}
	}

	logger.Info("container resources released", nil)
}
