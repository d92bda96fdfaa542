package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/readtrack/internal/buildinfo"
	"github.com/dmitrijs2005/readtrack/internal/client/cli"
	"github.com/dmitrijs2005/readtrack/internal/client/config"
	"github.com/dmitrijs2005/readtrack/internal/filex"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logPath, err := filex.EnsureParentDir(cfg.LogFile)
	if err != nil {
		log.Fatalf("%v", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatalf("open log file: %v", err)
	}
	defer logFile.Close()

	logger, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		log.Fatalf("%v", err)
	}

	logger.Info(ctx, "starting", "api", cfg.APIBaseURL, "db", cfg.DatabasePath, "version", buildinfo.Version)
	app.Run(ctx)
}
