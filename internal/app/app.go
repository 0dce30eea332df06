package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anikan666/pirate-lab/internal/adapter/inbound/http"
	"github.com/anikan666/pirate-lab/internal/adapter/outbound/edgetts"
	"github.com/anikan666/pirate-lab/internal/adapter/outbound/localdisk"
	"github.com/anikan666/pirate-lab/internal/adapter/outbound/objectstore"
	"github.com/anikan666/pirate-lab/internal/config"
	"github.com/anikan666/pirate-lab/internal/port"
	"github.com/anikan666/pirate-lab/internal/service"
	"github.com/anthanhphan/gosdk/logger"
)

type App struct {
	cfg            *config.Config
	server         *httpHandler.Server
	sweeper        *service.RetentionSweeper
	backgroundStop context.CancelFunc
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Storage backend
	store, serveLocal, err := newFileStore(cfg)
	if err != nil {
		return nil, err
	}

	// 4. Services
	maxAge := time.Duration(cfg.Retention.MaxAgeSeconds) * time.Second
	library := service.NewLibrary(store, maxAge, serveLocal)
	sweeper := service.NewRetentionSweeper(store,
		maxAge,
		time.Duration(cfg.Retention.TempMaxAgeSeconds)*time.Second,
		time.Duration(cfg.Retention.SweepIntervalSeconds)*time.Second)

	// 5. Synthesizer
	synth := edgetts.NewClient()

	// 6. HTTP Server
	httpServer := httpHandler.NewServer(cfg, library, synth)

	return &App{
		cfg:     cfg,
		server:  httpServer,
		sweeper: sweeper,
	}, nil
}

// newFileStore selects the backend from configuration, once, at startup.
// An s3 selection without a bucket degrades to local with a warning; a
// failed object-store client stays selected in its uninitialized state and
// reports failure per call rather than aborting startup.
func newFileStore(cfg *config.Config) (port.FileStore, bool, error) {
	if cfg.Storage.Kind == config.StorageKindS3 {
		if cfg.Storage.S3.Bucket == "" {
			logger.Warnw("S3 storage selected but no bucket configured, falling back to local storage")
			cfg.Storage.Kind = config.StorageKindLocal
		} else {
			store := objectstore.NewStore(cfg.Storage.S3)
			if !store.Initialized() {
				logger.Warnw("Object store backend is uninitialized, all storage calls will fail",
					"bucket", cfg.Storage.S3.Bucket)
			}
			return store, false, nil
		}
	}

	store, err := localdisk.NewStore(cfg.Storage.LocalDir)
	if err != nil {
		return nil, false, fmt.Errorf("failed to init local storage: %w", err)
	}
	return store, true, nil
}

func (a *App) Run() error {
	// Start Retention Sweeper
	bgCtx, cancel := context.WithCancel(context.Background())
	a.backgroundStop = cancel
	a.sweeper.Start(bgCtx)

	// Start HTTP
	logger.Infow("Speech service starting",
		"addr", a.cfg.Server.Addr,
		"storage", a.cfg.Storage.Kind,
		"max_age_seconds", a.cfg.Retention.MaxAgeSeconds)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("HTTP server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down speech service")
	a.backgroundStop()
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	return runErr
}
