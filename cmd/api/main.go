package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/oceanoetiquetas/oceano-backend/api/routes"
	"github.com/oceanoetiquetas/oceano-backend/internal/admins"
	"github.com/oceanoetiquetas/oceano-backend/internal/auth"
	"github.com/oceanoetiquetas/oceano-backend/internal/catalog"
	"github.com/oceanoetiquetas/oceano-backend/internal/chat"
	"github.com/oceanoetiquetas/oceano-backend/internal/clients"
	"github.com/oceanoetiquetas/oceano-backend/internal/navigation"
	"github.com/oceanoetiquetas/oceano-backend/internal/orders"
	"github.com/oceanoetiquetas/oceano-backend/internal/products"
	"github.com/oceanoetiquetas/oceano-backend/internal/quotes"
	"github.com/oceanoetiquetas/oceano-backend/internal/web"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
	"github.com/oceanoetiquetas/oceano-backend/pkg/metrics"
	"github.com/oceanoetiquetas/oceano-backend/pkg/migrate"
	"github.com/oceanoetiquetas/oceano-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis only backs the login rate limiter; the API runs without it.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, login rate limiting disabled")
	}

	conn := dbClient.DB()

	authService, err := auth.NewService(conn, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	productService, err := products.NewService(conn)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}
	clientService, err := clients.NewService(conn)
	if err != nil {
		logg.Error(context.Background(), "failed to create client service", err)
		os.Exit(1)
	}
	adminService, err := admins.NewService(conn, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}
	quoteService, err := quotes.NewService(conn, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(conn, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	nav := navigation.NewBuilder(conn, logg)

	var model chat.ModelClient
	if cfg.OpenAI.Enabled() {
		model = openai.NewClient(cfg.OpenAI.APIKey)
	} else {
		logg.Warn(context.Background(), "openai not configured, chat will answer with the fallback message")
	}
	chatService, err := chat.NewService(model, cfg.OpenAI, conn, nav, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logg.Error(context.Background(), "failed to parse page templates", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Metrics:  metrics.NewHTTPMetrics(),
			Renderer: renderer,
			Nav:      nav,
			Auth:     authService,
			Catalog:  catalogService,
			Products: productService,
			Clients:  clientService,
			Admins:   adminService,
			Quotes:   quoteService,
			Orders:   orderService,
			Chat:     chatService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
