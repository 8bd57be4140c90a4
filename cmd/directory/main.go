package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/companydesk/directory/internal/directory/config"
	"github.com/companydesk/directory/internal/directory/controller"
	"github.com/companydesk/directory/internal/directory/db"
	"github.com/companydesk/directory/internal/directory/events"
	"github.com/companydesk/directory/internal/directory/handlers"
	"go.uber.org/zap"
)

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := db.NewRepository(initDatabase(cfg))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		log.Fatal("failed to initialize Kafka producer", err)
	}
	defer producer.Close()

	directorySvc := controller.NewDirectoryService(repo, producer, logger)
	countersSvc := controller.NewCountersService(repo, producer, logger)

	companyHandler := handlers.NewCompanyHandler(directorySvc, logger)
	countersHandler := handlers.NewCountersHandler(countersSvc, logger)

	server := handlers.NewServer(cfg.HTTPPort, logger)
	server.RegisterRoutes(companyHandler, countersHandler, cfg.CORSOrigins)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// initDatabase builds the database connection settings.
func initDatabase(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down the server.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Server stopped properly")
}
