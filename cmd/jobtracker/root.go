package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/RichLyon/JobAppTracker/internal/config"
	"github.com/RichLyon/JobAppTracker/internal/document"
	"github.com/RichLyon/JobAppTracker/internal/generate"
	"github.com/RichLyon/JobAppTracker/internal/model"
	"github.com/RichLyon/JobAppTracker/internal/provider"
	"github.com/RichLyon/JobAppTracker/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobtracker",
	Short: "Track job applications and generate tailored documents",
	Long: "JobTracker keeps a local record of your job applications and uses an\n" +
		"LLM provider (Ollama, OpenAI or Anthropic) to tailor resumes and draft\n" +
		"cover letters for them.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBTRACKER_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBTRACKER_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBTRACKER_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	// Logs go to stderr so table output on stdout stays pipeable.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// app bundles the wired components. Each command builds one, uses what it
// needs, and closes it on the way out.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *store.Store
	registry  *provider.Registry
	service   *generate.Service
	docx      *document.Docx
	assembler *document.Assembler
}

func newApp() (*app, error) {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	st, err := store.New(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	registry := provider.NewRegistry(cfg.Provider, cfg.SecretsPath, httpClient, logger)
	docx := document.NewDocx()

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		registry:  registry,
		service:   generate.NewService(registry, st, logger),
		docx:      docx,
		assembler: document.NewAssembler(docx, cfg.ResumeDir, cfg.CoverLetterDir),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
}

func validStatus(status string) error {
	for _, s := range model.Statuses {
		if status == s {
			return nil
		}
	}
	return fmt.Errorf("invalid status %q (valid: %v)", status, model.Statuses)
}
