package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"algorithm_guessr/internal/api"
	"algorithm_guessr/internal/app/service"
	"algorithm_guessr/internal/app/worker"
	"algorithm_guessr/internal/common/security"
	"algorithm_guessr/internal/domain/repository"
	"algorithm_guessr/internal/platform/cache"
	"algorithm_guessr/internal/platform/config"
	"algorithm_guessr/internal/platform/database"
	"algorithm_guessr/internal/platform/problemsource"
)

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig
	fmt.Println("Configuration loaded.")

	// 2. Token service
	tokens := security.NewTokenService(cfg.JWTKey, cfg.JWTExp)

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize cache
	var store cache.Store
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		log.Println("WARN: Using in-process cache; verification marks and locks are not shared between instances")
		store = cache.NewMemoryStore()
	default:
		cache.ConnectRedis()
		defer cache.CloseRedis()
		store = cache.NewRedisStore(cache.RDB)
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	attemptRepo := repository.NewPgAttemptRepository(database.DB)
	settingRepo := repository.NewPgSettingRepository(database.DB)
	transactor := repository.NewTransactor(database.DB)

	// 6. Initialize Services
	source := problemsource.NewClient(cfg.CodeforcesBaseURL, cfg.VJudgeBaseURL, cfg.UpstreamTimeout)
	settingsService := service.NewSettingsService(settingRepo)
	authService := service.NewAuthService(userRepo, settingsService, tokens)
	adminService := service.NewAdminService(userRepo, settingsService)
	extensionService := service.NewExtensionService(store, cfg.ExtensionTTL)
	problemService := service.NewProblemService(source, store, service.ProblemCacheConfig{
		ProblemTTL:       cfg.ProblemTTL,
		CatalogTTL:       cfg.CatalogTTL,
		CatalogRetention: cfg.CatalogRetention,
	})
	quizService := service.NewQuizService(userRepo, attemptRepo, transactor, problemService, extensionService)

	// 7. Catalog refresher (as a goroutine)
	catalogWorker := worker.NewCatalogWorker(problemService, store, cfg.CatalogRefreshInterval, cfg.CatalogLockKey, cfg.CatalogLockTTL)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go catalogWorker.Start(workerCtx)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(api.Services{
		Tokens:               tokens,
		Auth:                 authService,
		Settings:             settingsService,
		Admin:                adminService,
		Extensions:           extensionService,
		Problems:             problemService,
		Quiz:                 quizService,
		DefaultMinDifficulty: cfg.DefaultMinDifficulty,
		DefaultMaxDifficulty: cfg.DefaultMaxDifficulty,
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
