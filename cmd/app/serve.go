package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prasetyowira/qrlogo/api"
	"github.com/prasetyowira/qrlogo/config"
	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/session"
	"github.com/prasetyowira/qrlogo/infrastructure/db"
	appLogger "github.com/prasetyowira/qrlogo/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the QR code form on the local machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appLogger.Initialize(false, zapcore.InfoLevel)
		defer appLogger.Close()
		appLogger.Error(constant.MsgFailedToLoadConfig, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppConfig,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataConfigPath: configPath,
			},
		})
		return err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	appLogger.Initialize(cfg.IsProduction(), appLogger.ParseLevel(cfg.LogLevel))
	defer appLogger.Close()

	appLogger.Info(constant.MsgApplicationStarting, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
		Data: map[string]interface{}{
			constant.DataAddr:        cfg.Addr(),
			constant.DataDBPath:      cfg.DatabaseURL,
			constant.DataEnvironment: cfg.Environment,
			constant.DataVersion:     version,
		},
	})

	ctx := context.Background()

	repository, err := db.NewSQLiteRepository(ctx, cfg.DatabaseURL)
	if err != nil {
		appLogger.Error(constant.MsgFailedToInitDB, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppDBInit,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
			Data: map[string]interface{}{
				constant.DataDBPath: cfg.DatabaseURL,
			},
		})
		return err
	}
	defer repository.Close()

	service := session.NewService(ctx, newComposer(cfg), repository)

	handler := api.NewHandler(service, api.DefaultSavePath(cfg.OutputDir, cfg.DefaultFilename))
	router := api.NewRouter(handler)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info(constant.MsgServerStarting, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Data: map[string]interface{}{
				constant.DataAddr: cfg.Addr(),
			},
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			appLogger.Error(constant.MsgServerFailedToStart, appLogger.LoggerInfo{
				ContextFunction: constant.CtxMain,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAppServerStart,
					Message: err.Error(),
					Type:    constant.ErrTypeApp,
				},
				Data: map[string]interface{}{
					constant.DataAddr: cfg.Addr(),
				},
			})
			return err
		}
		return nil
	case <-quit:
	}

	appLogger.Info(constant.MsgServerShuttingDown, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(constant.MsgServerShutdownError, appLogger.LoggerInfo{
			ContextFunction: constant.CtxMain,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAppServerShutdown,
				Message: err.Error(),
				Type:    constant.ErrTypeApp,
			},
		})
		return err
	}

	appLogger.Info(constant.MsgServerStopped, appLogger.LoggerInfo{
		ContextFunction: constant.CtxMain,
	})

	return nil
}
