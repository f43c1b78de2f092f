package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/auth"
	"github.com/LucasDG1/vraag-en-aanbod/config"
	"github.com/LucasDG1/vraag-en-aanbod/handlers"
	"github.com/LucasDG1/vraag-en-aanbod/logging"
	"github.com/LucasDG1/vraag-en-aanbod/middleware"
	"github.com/LucasDG1/vraag-en-aanbod/repositories"
	"github.com/LucasDG1/vraag-en-aanbod/services"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logging.InitLogger(cfg.LogFile)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		projectRepo services.ProjectRepository
		adminRepo   services.AdminRepository
		catalogRepo services.CatalogRepository
		pinger      func(context.Context) error
	)

	if cfg.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
		}
		defer client.Disconnect(context.TODO())

		if err := client.Ping(ctx, nil); err != nil {
			logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
		}
		logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s", cfg.MongoURI)

		db := client.Database(cfg.MongoDB)
		projects := repositories.NewProjectRepo(db.Collection("projects"))
		if err := projects.EnsureIndexes(ctx); err != nil {
			logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Failed to create project indexes: %v", err)
		}
		projectRepo = projects
		adminRepo = repositories.NewAdminRepo(db.Collection("admin_requests"), db.Collection("admin_users"))
		catalogRepo = repositories.NewCatalogRepo(db.Collection("catalog"))
		pinger = func(ctx context.Context) error { return client.Ping(ctx, nil) }
	} else {
		logging.Logger.Warn("Event ID: DB_MEMORY_MODE, Description: MONGO_URI not set, running with the in-memory store")
		projectRepo = repositories.NewMemoryProjectRepo()
		adminRepo = repositories.NewMemoryAdminRepo()
		catalogRepo = repositories.NewMemoryCatalogRepo()
	}

	var provider auth.Provider
	switch cfg.AuthMode {
	case config.AuthModeRemote:
		provider = auth.NewClient(cfg.AuthBaseURL, cfg.AuthJWTSecret, &http.Client{Timeout: 10 * time.Second})
	default:
		provider = auth.NewLocalProvider(cfg.AuthJWTSecret)
	}

	projectService := services.NewProjectService(projectRepo)
	adminService := services.NewAdminService(adminRepo, provider)
	catalogService := services.NewCatalogService(catalogRepo)

	if err := catalogService.SeedDefaults(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: CATALOG_SEED_FAILED, Description: Failed to seed catalog: %v", err)
	}
	if err := adminService.EnsureSeedAdmin(ctx, cfg.SeedAdminEmail, cfg.SeedAdminName, cfg.SeedAdminPassword); err != nil {
		logging.Logger.Fatalf("Event ID: ADMIN_SEED_FAILED, Description: Failed to seed bootstrap admin: %v", err)
	}

	requestLimiter := middleware.NewRateLimiter(cfg.RequestRatePerSecond, cfg.RequestBurst)
	router := handlers.NewRouter(
		handlers.NewProjectHandler(projectService),
		handlers.NewAdminHandler(adminService),
		handlers.NewCatalogHandler(catalogService),
		&handlers.HealthHandler{Pinger: pinger},
		provider,
		adminService,
		requestLimiter,
	)
	corsRouter := enableCORS(router, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.SweepInterval > 0 {
		go runSweep(sweepCtx, projectService, cfg.SweepInterval)
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Event ID: SERVER_SHUTDOWN, Description: Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: Graceful shutdown failed: %v", err)
	}
}

// runSweep periodically removes projects whose deadline has passed.
func runSweep(ctx context.Context, projectService *services.ProjectService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if _, err := projectService.SweepExpired(sweepCtx, time.Now().UTC()); err != nil {
				logging.Logger.Errorf("Event ID: PROJECT_SWEEP_FAILED, Description: Scheduled deadline sweep failed: %v", err)
			}
			cancel()
		}
	}
}

// enableCORS allows the web client to call the API from another origin.
func enableCORS(next http.Handler, origin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
