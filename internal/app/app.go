package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"beautyshop/internal/config"
	"beautyshop/internal/database"
	"beautyshop/internal/handlers"
	"beautyshop/internal/middleware"
	"beautyshop/internal/repositories"
	"beautyshop/internal/services"
	"beautyshop/internal/validation"
	"beautyshop/pkg/clock"
	"beautyshop/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// App is the assembled catalog service.
type App struct {
	Fiber       *fiber.App
	AuthService *services.AuthService

	cfg        config.Config
	mq         *rabbitmq.Client
	closeStore func(context.Context) error
}

type stores struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
	close    func(context.Context) error
}

// New connects to the configured store and event bus and builds the HTTP app.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		publisher services.EventPublisher
		mq        *rabbitmq.Client
	)
	if cfg.RabbitMQEnabled {
		mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			_ = st.close(ctx)
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		publisher = mq
	}

	validate := validation.New()
	productService := services.NewProductService(st.products, publisher, clock.NewRealClock(), cfg.MaxPageSize)
	authService := services.NewAuthService(st.users, cfg.JWTSecret, cfg.JWTTTL)

	productHandler := handlers.NewProductHandler(productService, validate)
	authHandler := handlers.NewAuthHandler(authService, validate)

	app := fiber.New(fiber.Config{
		AppName:      "beautyshop-catalog",
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.DBDriver,
			"events": cfg.RabbitMQEnabled,
		})
	})

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protectedRoutes)

	return &App{
		Fiber:       app,
		AuthService: authService,
		cfg:         cfg,
		mq:          mq,
		closeStore:  st.close,
	}, nil
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Println("Using in-memory store; data is lost on restart")
		return stores{
			products: repositories.NewMemoryProductRepository(),
			users:    repositories.NewMemoryUserRepository(),
			close:    func(context.Context) error { return nil },
		}, nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.OpenGORM(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			products: repositories.NewGORMProductRepository(db),
			users:    repositories.NewGORMUserRepository(db),
			close:    func(context.Context) error { return database.CloseGORM(db) },
		}, nil

	case config.DriverMongo:
		client, err := database.ConnectMongo(ctx, database.MongoConfig{
			URI:     cfg.MongoURI,
			DBName:  cfg.MongoDBName,
			Timeout: cfg.MongoTimeout,
		})
		if err != nil {
			return stores{}, err
		}
		db := client.Database(cfg.MongoDBName)
		productRepo := repositories.NewMongoProductRepository(db)
		userRepo := repositories.NewMongoUserRepository(db)
		if err := errors.Join(productRepo.EnsureIndexes(ctx), userRepo.EnsureIndexes(ctx)); err != nil {
			_ = client.Disconnect(ctx)
			return stores{}, err
		}
		return stores{
			products: productRepo,
			users:    userRepo,
			close:    client.Disconnect,
		}, nil

	default:
		return stores{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// StartEventConsumer starts logging product events when the event bus is
// enabled. It is a no-op otherwise.
func (a *App) StartEventConsumer() error {
	if a.mq == nil {
		return nil
	}
	log.Println("Starting RabbitMQ consumer for product events...")
	return a.mq.ConsumeProductEvents(rabbitmq.LogProductEvent)
}

// Listen serves HTTP on the configured port until Shutdown.
func (a *App) Listen() error {
	log.Printf("Starting server on port %s", a.cfg.AppPort)
	return a.Fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the HTTP server and releases the event bus and store.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("rabbitmq close: %w", err))
		}
	}
	if err := a.closeStore(ctx); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}
	return errors.Join(errs...)
}
