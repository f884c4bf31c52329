package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/darsyar/internal/pkg/config"
	"github.com/piresc/darsyar/internal/pkg/database"
	"github.com/piresc/darsyar/internal/pkg/health"
	"github.com/piresc/darsyar/internal/pkg/jwt"
	"github.com/piresc/darsyar/internal/pkg/logger"
	"github.com/piresc/darsyar/internal/pkg/middleware"
	nrpkg "github.com/piresc/darsyar/internal/pkg/newrelic"
	nsqpkg "github.com/piresc/darsyar/internal/pkg/nsq"
	"github.com/piresc/darsyar/internal/pkg/server"
	"github.com/piresc/darsyar/internal/utils"
	"github.com/piresc/darsyar/services/auth"
	"github.com/piresc/darsyar/services/auth/gateway"
	"github.com/piresc/darsyar/services/auth/handler"
	httpHandler "github.com/piresc/darsyar/services/auth/handler/http"
	"github.com/piresc/darsyar/services/auth/repository"
	"github.com/piresc/darsyar/services/auth/usecase"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to an env-style config file")
	flag.Parse()

	configs, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appName := configs.App.Name

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("otp_store", configs.OTP.Store),
		zap.String("otp_dispatch", configs.OTP.Dispatch),
	)

	shutdownManager := server.NewShutdownManager(zapLogger)
	healthService := health.NewHealthService(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	shutdownManager.Register(func(context.Context) error { return postgresClient.Close() })
	healthService.AddChecker("postgres", health.CheckerFunc(postgresClient.Ping))

	// Initialize code store
	var codeStore auth.CodeStore
	switch configs.OTP.Store {
	case "redis":
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		shutdownManager.Register(func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.CheckerFunc(redisClient.Ping))
		codeStore = repository.NewRedisCodeRepo(redisClient)
	default:
		codeStore = repository.NewCodeRepo(postgresClient.GetDB())
	}
	userRepo := repository.NewUserRepo(postgresClient.GetDB())

	// Initialize gateway
	var publisher gateway.Publisher
	if configs.OTP.Dispatch == "nsq" {
		producer, err := nsqpkg.NewProducer(configs.NSQ.Address, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NSQ", zap.Error(err))
		}
		shutdownManager.Register(func(context.Context) error {
			producer.Stop()
			return nil
		})
		healthService.AddChecker("nsq", health.CheckerFunc(func(context.Context) error { return producer.Ping() }))
		publisher = producer
	}
	authGW := gateway.NewAuthGW(configs, publisher, zapLogger)

	// Initialize usecase
	issuer := jwt.NewIssuer([]byte(configs.JWT.Secret), nil)
	authUC := usecase.NewAuthUC(codeStore, userRepo, authGW, issuer, configs)

	// Initialize handlers
	h := handler.NewHandler(
		httpHandler.NewAuthHandler(authUC),
		httpHandler.NewProfileHandler(authUC),
		issuer,
	)

	// Initialize Echo router
	e := echo.New()
	e.Validator = utils.NewValidator()

	e.Use(middleware.NewRelicMiddleware(nrApp))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)
	h.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(ctx); err != nil {
		zapLogger.Error("Shutdown finished with errors", zap.Error(err))
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}
}
