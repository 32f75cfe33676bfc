package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-report/internal/handler"
	"github.com/noah-isme/classroom-report/internal/repository"
	"github.com/noah-isme/classroom-report/internal/service"
	"github.com/noah-isme/classroom-report/pkg/config"
	"github.com/noah-isme/classroom-report/pkg/executor"
	"github.com/noah-isme/classroom-report/pkg/logger"
	"github.com/noah-isme/classroom-report/pkg/metrics"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	recorder := metrics.NewRecorder(runID)
	var logr *zap.Logger

	build := func(cfg *config.Config) (*handler.ReportHandler, error) {
		l, err := logger.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		logr = logger.WithRun(l, runID)

		runner := executor.NewProcessRunner(logr)
		toolchain := service.NewToolchainService(runner, cfg.GitHub.Binary, cfg.GitHub.MinVersion, logr)
		if err := toolchain.Check(ctx); err != nil {
			return nil, err
		}

		repo := repository.NewClassroomRepository(runner, cfg.GitHub, recorder, logr)
		resolver := service.NewResolverService(repo, logr)
		reports := service.NewReportService(repo, resolver, recorder, validator.New(),
			service.ReportConfig{Concurrency: cfg.GitHub.Concurrency}, logr)
		return handler.NewReportHandler(reports, handler.LocalStore, os.Stdout, logr), nil
	}

	root := handler.NewRootCommand(cfg, build, Version, os.Stdout)
	runErr := root.ExecuteContext(ctx)

	if cfg.Metrics.File != "" {
		if err := recorder.WriteTextfile(cfg.Metrics.File); err != nil && logr != nil {
			logr.Warn("failed to write metrics", zap.String("path", cfg.Metrics.File), zap.Error(err))
		}
	}
	if logr != nil {
		logr.Sync() //nolint:errcheck
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		stop()
		os.Exit(1)
	}
}
