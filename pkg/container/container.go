package container

import (
	"context"
	"fmt"
	"log"

	"blog-backend/internal/config"
	"blog-backend/internal/infrastructure/database"
	infraLock "blog-backend/internal/infrastructure/lock"
	"blog-backend/pkg/lock"

	"blog-backend/internal/domains/author"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"

	postHandler "blog-backend/internal/domains/post/handler"
	postRepo "blog-backend/internal/domains/post/repository"
	postService "blog-backend/internal/domains/post/service"
)

// Store is the data store lifecycle, Mongo or in-memory.
type Store interface {
	Connect(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. It also implements
// server.Store, so the lifecycle connects and closes everything it owns.
type Container struct {
	// Infrastructure
	Config *config.Config
	Store  Store
	Locker lock.Locker

	redisLocker *infraLock.RedisLocker

	// Repositories
	AuthorRepo author.Repository
	PostRepo   postRepo.RepositoryInterface

	// Services
	AuthorService author.Service
	PostService   postService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	PostHandler   *postHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the whole graph without opening any connection.
// Order matters: infrastructure → repositories → services → handlers.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to init infrastructure: %w", err)
	}

	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// initInfrastructure picks the store driver and lock backend and builds
// the repositories that depend on them.
func (c *Container) initInfrastructure() error {
	switch c.Config.Store.Driver {
	case config.StoreDriverMemory:
		c.Store = database.NewMemory()
		c.AuthorRepo = authorRepo.NewMemoryRepository()
		c.PostRepo = postRepo.NewMemoryRepository()

	case config.StoreDriverMongo:
		mongoCfg, err := config.LoadMongoConfig()
		if err != nil {
			return fmt.Errorf("failed to load mongo config: %w", err)
		}
		db := database.NewMongoDB(mongoCfg)
		c.Store = db
		c.AuthorRepo = authorRepo.NewMongoRepository(db)
		c.PostRepo = postRepo.NewMongoRepository(db)

	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}

	switch c.Config.Lock.Driver {
	case config.LockDriverRedis:
		c.redisLocker = infraLock.NewRedisLocker(
			c.Config.Redis.Host,
			c.Config.Redis.Password,
			c.Config.Redis.DB,
			c.Config.Lock.TTL,
		)
		c.Locker = c.redisLocker
	default:
		c.Locker = lock.Nop{}
	}

	return nil
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.PostRepo, c.Locker)
	c.PostService = postService.NewPostService(c.PostRepo, c.AuthorRepo, c.Locker)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.PostHandler = postHandler.NewHandler(c.PostService)
}

// ========================================
// LIFECYCLE
// ========================================

// Connect opens the store, then the lock backend. A lock backend failure
// closes the store again.
func (c *Container) Connect(ctx context.Context) error {
	if err := c.Store.Connect(ctx); err != nil {
		return err
	}

	if c.redisLocker != nil {
		if err := c.redisLocker.Connect(ctx); err != nil {
			_ = c.Store.Close(context.WithoutCancel(ctx))
			return err
		}
	}
	return nil
}

// Close closes the store, then the lock backend.
func (c *Container) Close(ctx context.Context) error {
	err := c.Store.Close(ctx)

	if c.redisLocker != nil {
		if lockErr := c.redisLocker.Close(); lockErr != nil && err == nil {
			err = lockErr
		}
	}
	return err
}
