// File: cmd/b2mirror/app.go
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"b2mirror/internal/auth"
	"b2mirror/internal/config"
	"b2mirror/internal/env"
	"b2mirror/internal/linkfile"
	"b2mirror/internal/logger"
	"b2mirror/internal/report"
	"b2mirror/internal/runner"
	"b2mirror/internal/service"
	"b2mirror/internal/ui/prompt"
	"b2mirror/pkg/b2"
	"b2mirror/pkg/formatter"
)

// appContainer holds all the shared dependencies for the application
// This includes configuration, service clients, formatters, and the logger
type appContainer struct {
	Config       *config.Config
	Environment  env.Env
	SyncService  *service.SyncService
	RunFormatter *formatter.RunFormatter
	Logger       *slog.Logger
}

// Creates and initializes a new application container
func newApp(configPath string, verbose bool) (*appContainer, error) {
	log := logger.NewLogger(verbose)

	explicit := configPath != ""
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}

	cfg, err := config.Load(configPath, explicit)
	if err != nil {
		return nil, err
	}

	environment := env.Discover(cfg.Paths.InputDir, cfg.Paths.OutputDir)

	run := runner.NewShellRunner()
	client := b2.NewClient(environment.B2Bin, run, log)
	op := auth.NewOpClient(environment.OpBin, run, log)
	authenticator := auth.NewAuthenticator(op, client, cfg.OnePassword.ItemName, cfg.B2.BucketName, log)

	artifacts := afero.NewOsFs()
	links := linkfile.NewWriter(artifacts, log)
	reporter := report.NewReporter(artifacts, log)
	prompter := prompt.NewStandardPrompter(os.Stdin, os.Stdout)

	syncService := service.NewSyncService(cfg, environment, authenticator, client, links, reporter, prompter, log)
	runFormatter := formatter.NewRunFormatter()

	return &appContainer{
		Config:       cfg,
		Environment:  environment,
		SyncService:  syncService,
		RunFormatter: runFormatter,
		Logger:       log,
	}, nil
}
