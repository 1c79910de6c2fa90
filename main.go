package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adsopt/adapters/api"
	"adsopt/adapters/excel"
	"adsopt/internal/config"
	"adsopt/internal/logging"
	"adsopt/internal/orchestrator"
	"adsopt/internal/schema"
)

func main() {
	// Load application configuration (.env is optional)
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger(appConfig.LogLevel)
	defer logger.Sync()

	columnSchema, err := schema.Default()
	if err != nil {
		log.Fatalf("Failed to load column schema: %v", err)
	}

	excelConfig := excel.DefaultExcelConfig()
	excelConfig.MaxRows = appConfig.Limits.MaxRows
	excelConfig.MaxFileSizeBytes = appConfig.Limits.MaxFileSizeBytes()

	options := appConfig.Strategies.Options()
	serverConfig := api.DefaultServerConfig()
	serverConfig.MaxConcurrentRuns = int64(appConfig.Server.MaxConcurrentRuns)
	serverConfig.DefaultStrategies = appConfig.Strategies.Default
	serverConfig.GinMode = appConfig.Server.GinMode

	server := api.NewServer(serverConfig, api.Dependencies{
		Reader:      excel.NewDataReader(excelConfig, logger),
		Writer:      excel.NewWriter(excelConfig, columnSchema, logger),
		ExcelConfig: excelConfig,
		Orchestrator: orchestrator.New(orchestrator.Config{
			MaxRows: appConfig.Limits.MaxRows,
			Options: options,
		}, logger),
		Options: options,
		Logger:  logger,
	})

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("[Server] shutdown failed: %v", err)
		}
	}()

	logger.Info("[Server] starting ad optimizer (max %d concurrent runs, %d rows/sheet)",
		serverConfig.MaxConcurrentRuns, appConfig.Limits.MaxRows)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		logger.Error("[Server] %v", err)
		os.Exit(1)
	}
}
