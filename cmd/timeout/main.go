package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"timeout/config"
	"timeout/internal/api"
	"timeout/internal/blocking"
	"timeout/internal/core"
	"timeout/internal/enforce"
	"timeout/internal/enforce/simulated"
	"timeout/internal/events"
	"timeout/internal/logging"
	"timeout/internal/notify"
	"timeout/internal/partner"
	"timeout/internal/scheduler"
	"timeout/internal/storage/sqlite"
)

const (
	shutdownTimeout   = 10 * time.Second
	tickInterval      = 1 * time.Second
	defaultConfigPath = "config.json"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command-line flags
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	useEnv := flag.Bool("env", false, "Load configuration from environment variables")
	flag.Parse()

	// Load .env for local development; a missing file is fine
	_ = godotenv.Load()

	// Load configuration
	var cfg *config.Config
	var err error

	if *useEnv {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(logging.LoggerConfig{
		Format: cfg.Logging.Format,
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})

	logger.Info("Starting timeout",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db", cfg.Database.Path,
	)

	// Initialize database
	db, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	store := logging.NewStorageLogger(db, logger)
	defer store.Close()

	// Partner code verifier
	var verifier core.CodeVerifier
	if cfg.Security.PartnerCodeHash != "" {
		verifier = partner.NewHashedVerifier(cfg.Security.PartnerCodeHash)
	} else {
		verifier = partner.NewStaticVerifier(cfg.Security.PartnerCode)
	}

	// Event hub
	hub := events.NewHub(logger)
	go hub.Run()

	// Partner notifications (optional)
	var notifier core.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize telegram notifier: %w", err)
		}
	}

	// Dashboard manager
	manager := core.NewDashboardManager(store, verifier, hub, notifier, core.Tier(cfg.DefaultTier))

	// Blocklist store: per-user JSON files or the main database
	var blockStore blocking.Store
	if cfg.Blocking.StoreType == "file" {
		blockStore, err = blocking.NewFileStore(cfg.Blocking.FileDir)
		if err != nil {
			return fmt.Errorf("failed to initialize blocklist store: %w", err)
		}
	} else {
		blockStore = store
	}

	// Remote sync (optional)
	var remote blocking.RemoteAPI
	if cfg.Blocking.RemoteBaseURL != "" {
		remote = blocking.NewRemoteClient(cfg.Blocking.RemoteBaseURL, cfg.Blocking.RemoteAPIKey, logger)
	}

	coordinator := blocking.NewCoordinator(blockStore, remote, manager, hub, logger)

	// Enforcement
	enforcerRegistry := enforce.NewRegistry()
	if err := enforcerRegistry.Register(simulated.NewEnforcer(logger)); err != nil {
		return fmt.Errorf("failed to register enforcer: %w", err)
	}
	enforcer, err := enforcerRegistry.Get(simulated.EnforcerName)
	if err != nil {
		return fmt.Errorf("failed to resolve enforcer: %w", err)
	}

	// Start scheduler
	sched := scheduler.NewScheduler(manager, coordinator, enforcer, hub, core.RealClock{}, tickInterval, logger)
	go sched.Start()

	// Initialize REST API
	router := api.NewRouter(api.RouterConfig{
		Manager:  manager,
		Blocking: coordinator,
		Hub:      hub,
		APIKey:   cfg.Security.APIKey,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("Starting graceful shutdown", "signal", sig.String())

		sched.Stop()
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		logger.Info("Graceful shutdown complete")
	}

	return nil
}
