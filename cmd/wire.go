package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/astropost/internal/adapters/compose"
	"github.com/bnema/astropost/internal/adapters/instagram"
	"github.com/bnema/astropost/internal/adapters/openai"
	"github.com/bnema/astropost/internal/adapters/pexels"
	statusadapter "github.com/bnema/astropost/internal/adapters/render/status"
	tomlrepo "github.com/bnema/astropost/internal/adapters/repo/toml"
	filestore "github.com/bnema/astropost/internal/adapters/secrets/file"
	"github.com/bnema/astropost/internal/application"
	"github.com/bnema/astropost/internal/config"
	"github.com/bnema/astropost/internal/httpx"
	"github.com/bnema/astropost/internal/logging"
	"github.com/bnema/astropost/internal/metrics"
	"github.com/sirupsen/logrus"
)

const httpTimeout = 60 * time.Second

type app struct {
	orchestrator *application.Orchestrator
	metrics      *metrics.Collector
	config       *config.Config
	logger       logrus.FieldLogger
	statusRender func(statusadapter.Snapshot, statusadapter.RenderOptions) (string, error)
	now          func() time.Time
}

type wireOptions struct {
	ConfigFile string
	LogLevel   string
	LogOutput  io.Writer
}

func wireApp(ctx context.Context, opts wireOptions) (*app, error) {
	cfg, err := config.Load(config.Options{ConfigFile: opts.ConfigFile})
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger, err := logging.NewLogger(level, cfg.Log.Format, opts.LogOutput)
	if err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	for _, file := range cfg.EnvFiles {
		logger.WithField("file", file).Debug("loaded env file")
	}
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	exec := httpx.NewExecutor(&http.Client{Timeout: httpTimeout}, httpx.DefaultConfig())

	content, err := openai.NewClient(openai.Config{
		APIKey:      cfg.Content.APIKey,
		APIURL:      cfg.Content.APIURL,
		Model:       cfg.Content.Model,
		Temperature: cfg.Content.Temperature,
	}, exec)
	if err != nil {
		return nil, fmt.Errorf("wire content source: %w", err)
	}

	images := pexels.NewClient(pexels.Config{
		APIKey:      cfg.Images.APIKey,
		APIURL:      cfg.Images.APIURL,
		DownloadDir: cfg.Images.DownloadDir,
	}, exec)

	composer, err := compose.NewComposer(compose.Config{
		OutputDir: cfg.Compose.OutputDir,
		FontPath:  cfg.Compose.FontPath,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("wire image composer: %w", err)
	}

	store, err := filestore.NewStore(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	history, err := tomlrepo.NewRepository(cfg.Viper())
	if err != nil {
		return nil, fmt.Errorf("wire cycle history: %w", err)
	}

	collector := metrics.NewCollector()

	platform := instagram.NewClient(instagram.Config{APIURL: cfg.Platform.APIURL}, exec, logger)
	sessions := application.NewSessionManager(platform, store, logger)
	sessions.Restore(ctx)

	pipeline := application.NewPipeline(application.PipelineDeps{
		Content:  content,
		Images:   images,
		Composer: composer,
		Channels: sessions,
		Pacer:    application.RandomPacer{Min: cfg.Publish.PacingMin, Max: cfg.Publish.PacingMax},
		Observer: collector,
		Logger:   logger,
	})

	orchestrator := application.NewOrchestrator(application.OrchestratorDeps{
		Sessions:    sessions,
		Pipeline:    pipeline,
		History:     history,
		Observer:    collector,
		Location:    cfg.Schedule.Location,
		Logger:      logger,
		DefaultMode: cfg.Publish.Mode,
	})

	return &app{
		orchestrator: orchestrator,
		metrics:      collector,
		config:       cfg,
		logger:       logger,
		statusRender: statusadapter.Render,
		now:          time.Now,
	}, nil
}
