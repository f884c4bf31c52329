package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/darsyar/internal/pkg/config"
	"github.com/piresc/darsyar/internal/pkg/health"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/middleware"
	nrpkg "github.com/piresc/darsyar/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/darsyar/internal/pkg/nsq"
	"github.com/piresc/darsyar/internal/pkg/server"
	"github.com/piresc/darsyar/services/notification/gateway"
	nsqHandler "github.com/piresc/darsyar/services/notification/handler/nsq"
	"github.com/piresc/darsyar/services/notification/usecase"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to an env-style config file")
	flag.Parse()

	configs, err := config.InitWorkerConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appName := configs.App.Name + "-sms-worker"

	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.Bool("sms_dry_run", configs.SMS.DryRun),
	)

	shutdownManager := server.NewShutdownManager(zapLogger)

	smsGW := gateway.NewMobizonGateway(configs.SMS, zapLogger)
	notificationUC := usecase.NewNotificationUC(smsGW, configs, nil)
	handler := nsqHandler.NewNotificationHandler(notificationUC, nrApp)

	consumer, err := nsqpkg.NewConsumer(nsqHandler.ConsumerConfig(configs), handler.HandleVerificationCode, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to start NSQ consumer", zap.Error(err))
	}
	shutdownManager.Register(func(context.Context) error {
		consumer.Stop()
		return nil
	})

	// Health endpoints only
	e := echo.New()
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, health.NewHealthService(zapLogger))

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(ctx); err != nil {
		zapLogger.Error("Shutdown finished with errors", zap.Error(err))
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}
}
