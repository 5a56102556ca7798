package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"glosskeep/internal/config"
	"glosskeep/internal/handlers"
	"glosskeep/internal/middleware"
	"glosskeep/internal/repository"
	"glosskeep/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Temporary logger until the configured one is built.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	cfg, err := config.Load("configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// Store backend selection. The memory store is the development default;
	// postgres is for deployments that outgrow the JSON files.
	var store repository.Store
	switch strings.ToLower(cfg.Storage.Driver) {
	case "", "memory":
		memStore := repository.NewMemoryStore(cfg.Data.Dir, cfg.Data.Persist, logger)
		if err := memStore.Load(); err != nil {
			slog.Error("Error loading data files", slog.Any("error", err))
			os.Exit(1)
		}
		if cfg.Data.Watch {
			watcher, err := repository.NewWatcher(memStore, logger)
			if err != nil {
				slog.Error("Error starting data file watcher", slog.Any("error", err))
				os.Exit(1)
			}
			defer watcher.Close()
		}
		store = memStore
	case "postgres":
		db, err := repository.NewDB(cfg.Storage.URL, logger)
		if err != nil {
			slog.Error("Error initializing database", slog.Any("error", err))
			os.Exit(1)
		}
		sqlDB, err := db.DB()
		if err != nil {
			slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Error closing database connection", slog.Any("error", err))
			} else {
				slog.Info("Database connection closed.")
			}
		}()
		store = repository.NewGormStore(db)
	default:
		slog.Error("Unknown storage driver", slog.String("driver", cfg.Storage.Driver))
		os.Exit(1)
	}

	learningPaths, err := repository.LoadLearningPaths(cfg.Data.Dir, logger)
	if err != nil {
		slog.Error("Error loading learning paths", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency injection.
	termService := service.NewTermService(store)
	categoryService := service.NewCategoryService(store)
	queryService := service.NewQueryService(store, learningPaths)
	authService := service.NewAuthService(store, cfg)

	if err := authService.EnsureAdminUser(context.Background()); err != nil {
		slog.Error("Error ensuring admin user", slog.Any("error", err))
		os.Exit(1)
	}

	termHandler := handlers.NewTermHandler(termService, queryService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, queryService, logger)
	authHandler := handlers.NewAuthHandler(authService, cfg, logger)

	// Router setup.
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		// Public read surface.
		r.Get("/terms", termHandler.ListTerms)
		r.Get("/terms/resolve", termHandler.ResolveTerm)
		r.Get("/terms/{id}", termHandler.GetTerm)
		r.Get("/terms/{id}/neighbors", termHandler.GetNeighbors)
		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/learning-paths", categoryHandler.ListLearningPaths)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionAuthMiddleware(cfg))
				r.Get("/me", authHandler.Me)
			})
		})

		// Mutations require an authenticated session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuthMiddleware(cfg))
			r.Post("/terms", termHandler.CreateTerm)
			r.Put("/terms/{id}", termHandler.UpdateTerm)
			r.Delete("/terms/{id}", termHandler.DeleteTerm)
			r.Post("/categories", categoryHandler.CreateCategory)
			r.Put("/categories/{id}", categoryHandler.UpdateCategory)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}
	slog.Info("Server exiting")
}
