package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"printpay/config"
	"printpay/internal/router"
	"printpay/internal/service"
	"printpay/internal/store"
	"printpay/internal/store/fsstore"
	"printpay/internal/store/rtdb"
	"printpay/internal/store/sqlstore"
	"printpay/pkg/firebaseapp"
	"printpay/pkg/idgen"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	app, err := firebaseapp.New(ctx, firebaseapp.Config{
		ServiceAccountPath: cfg.Firebase.ServiceAccountPath,
		ProjectID:          cfg.Firebase.ProjectID,
		DatabaseURL:        cfg.Firebase.DatabaseURL,
	})
	if err != nil {
		logger.Warn("firebase not initialized", zap.Error(err))
	}

	st := openStore(ctx, cfg, app, logger)
	defer st.Close()

	ids, err := idgen.New(cfg.Payment.SnowflakeNode)
	if err != nil {
		logger.Fatal("id generator", zap.Error(err))
	}

	deps := router.Deps{Store: st, IDs: ids, Logger: logger}
	if fcm := service.NewFCMService(ctx, app, logger); fcm != nil {
		deps.Pusher = fcm
		logger.Info("push notifications enabled")
	} else {
		logger.Info("push notifications disabled")
	}

	engine := router.Setup(cfg, deps)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("store", st.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openStore never fails: when the configured backend cannot be reached the
// server still starts, reports it on /health and answers callbacks with 500.
func openStore(ctx context.Context, cfg *config.Config, app *firebase.App, logger *zap.Logger) store.Store {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryStore()
	case "mysql":
		st, err = sqlstore.Open(ctx, &cfg.Database)
	case "firestore":
		if app == nil {
			err = firebaseapp.ErrNotConfigured
			break
		}
		st, err = fsstore.New(ctx, app)
	case "rtdb", "":
		if app == nil {
			err = firebaseapp.ErrNotConfigured
			break
		}
		st, err = rtdb.New(ctx, app, cfg.Firebase.DatabaseURL)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		logger.Error("store unavailable", zap.String("driver", cfg.Store.Driver), zap.Error(err))
		return store.Unavailable{Reason: err}
	}
	return st
}
