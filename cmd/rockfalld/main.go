package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"rockfall-console-backend/config"
	"rockfall-console-backend/internal/api"
	"rockfall-console-backend/internal/auth"
	"rockfall-console-backend/internal/db"
	"rockfall-console-backend/internal/dialog"
	"rockfall-console-backend/internal/kvstore"
	"rockfall-console-backend/internal/notification"
	"rockfall-console-backend/internal/registry"
	"rockfall-console-backend/internal/simsvc"
	"rockfall-console-backend/internal/task"
)

func main() {
	logger := log.New(os.Stdout, "rockfall-console ", log.LstdFlags)

	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		logger.Println("loaded environment from .env")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
		}
		logger.Printf("no config file at %s, using defaults", configPath)
		cfg = config.Default()
	} else {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := kvstore.NewGormStore(gormDB)

	var devices *registry.Registry
	if cfg.Registry.SkipSeed {
		devices = registry.New()
	} else {
		devices = registry.NewSeeded()
	}
	devices.OnChange(func(ev registry.Event) {
		logger.Printf("registry: %s device %d", ev.Op, ev.DeviceID)
	})

	var webpushOptions *webpush.Options
	if cfg.Push.Enabled {
		if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
			logger.Fatalf("push is enabled but VAPID keys are not configured")
		}
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	}

	var pool *notification.WorkerPool
	if webpushOptions != nil {
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, devices, webpushOptions)
		pool.Start(ctx)
		logger.Printf("notification worker pool started with %d workers", cfg.WorkerPool.Size)
	}

	var verifier auth.Verifier
	if cfg.Auth.AdminSecretHash != "" {
		verifier = auth.NewBcryptVerifier(cfg.Auth.AdminSecretHash)
	} else {
		verifier = auth.NewStaticVerifier(cfg.Auth.AdminSecret)
	}

	// The simulated drone and analysis backends listen on their own ports,
	// mirroring the local services the console expects to find.
	droneSvc := simsvc.New(simsvc.DroneProfile(), cfg.Simulator.ProcessingStepInterval)
	droneServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Simulator.DronePort),
		Handler: simsvc.NewDroneRouter(droneSvc),
	}
	analysisSvc := simsvc.New(simsvc.AnalysisProfile(), cfg.Simulator.ProcessingStepInterval)
	analysisServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Simulator.AnalysisPort),
		Handler: simsvc.NewAnalysisRouter(analysisSvc),
	}

	handler := api.NewHandler(api.Deps{
		Registry:    devices,
		Dialogs:     dialog.NewController(),
		Store:       store,
		Session:     auth.NewSession(cfg.Auth.LoginEmail, cfg.Auth.LoginPassword, store),
		Verifier:    verifier,
		Pool:        pool,
		Webpush:     webpushOptions,
		Uploader:    task.NewUploader(cfg.Simulator.UploadTick),
		DronePoller: task.NewPoller(cfg.Simulator.DronePollInterval),
		DeepPoller:  task.NewPoller(cfg.Simulator.AnalysisPollInterval),
		DroneURL:    cfg.Simulator.DroneBaseURL,
		AnalysisURL: cfg.Simulator.AnalysisBaseURL,
		DeleteDelay: time.Duration(cfg.Auth.DeleteDelayMillis) * time.Millisecond,
	})
	router := api.NewRouter(handler, cfg.Server.RateLimitPerSec,
		time.Duration(cfg.Server.CacheTTLSeconds)*time.Second)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serve := func(name string, s *http.Server) {
		logger.Printf("%s server starting on %s", name, s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("%s server ListenAndServe: %v", name, err)
		}
	}
	go serve("drone simulator", droneServer)
	go serve("analysis simulator", analysisServer)
	go serve("HTTP", server)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	for _, s := range []*http.Server{server, droneServer, analysisServer} {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Printf("server shutdown: %v", err)
		}
	}

	logger.Println("Server gracefully stopped")
}
