package radar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal"
	"github.com/tinyland-inc/cakeradar/pkg/bus"
	"github.com/tinyland-inc/cakeradar/pkg/channels"
	"github.com/tinyland-inc/cakeradar/pkg/classifier"
	"github.com/tinyland-inc/cakeradar/pkg/config"
	"github.com/tinyland-inc/cakeradar/pkg/digest"
	"github.com/tinyland-inc/cakeradar/pkg/health"
	"github.com/tinyland-inc/cakeradar/pkg/logger"
	"github.com/tinyland-inc/cakeradar/pkg/radar"
)

func radarCmd(debug bool) error {
	if debug {
		logger.SetLevel(logger.DEBUG)
		fmt.Println("🔍 Debug mode enabled")
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	base, err := cfg.LoadKeywords()
	if err != nil {
		logger.WarnCF("config", "Keyword file unusable, using built-in list", map[string]any{
			"error": err.Error(),
		})
	}
	keywords := radar.WithPlurals(base)

	cls, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	msgBus := bus.NewMessageBus()
	dedupe := radar.NewDeduplicator(cfg.Radar.DedupWindow)
	stats := radar.NewStats()

	pipeline := radar.NewPipeline(radar.Options{
		SourceChannelID:   cfg.Radar.SourceChannelID,
		AlertChannel:      cfg.Radar.AlertChannel,
		FalseAlarmChannel: cfg.Radar.FalseAlarmChannel,
		Threshold:         cfg.Radar.Threshold,
		Keywords:          keywords,
		ArchiveBaseURL:    cfg.Radar.ArchiveBaseURL,
		ClassifyTimeout:   time.Duration(cfg.Classifier.TimeoutSeconds) * time.Second,
	}, dedupe, cls, msgBus, stats)

	slackChannel := channels.NewSlackChannel(cfg.Slack.BotToken, cfg.Slack.AppToken, msgBus)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := slackChannel.Start(ctx); err != nil {
		return fmt.Errorf("error starting slack channel: %w", err)
	}

	go pipeline.Run(ctx)

	healthServer := health.NewServer(cfg.Gateway.Host, cfg.Gateway.Port)
	go func() {
		if err := healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorCF("health", "Health server error", map[string]any{"error": err.Error()})
		}
	}()
	healthServer.SetReady(true)

	if cfg.Digest.Enabled {
		digestService := digest.NewService(cfg.Digest.Schedule, cfg.Radar.AlertChannel, stats, msgBus)
		go digestService.Run(ctx)
	}

	fmt.Printf("✓ Radar watching for %d keywords, threshold %d%%\n", len(keywords), cfg.Radar.Threshold)
	fmt.Printf("✓ Alerts → %s, false alarms → %s\n", cfg.Radar.AlertChannel, cfg.Radar.FalseAlarmChannel)
	fmt.Printf("✓ Health endpoints at http://%s:%d/health and /ready\n", cfg.Gateway.Host, cfg.Gateway.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan

	fmt.Println("\nShutting down...")
	cancel()
	healthServer.Stop(context.Background())
	slackChannel.Stop(context.Background())
	msgBus.Close()
	fmt.Println("✓ Radar stopped")

	return nil
}

func buildClassifier(cfg *config.Config) (classifier.Client, error) {
	prompts := classifier.Prompts{
		System: cfg.Classifier.SystemPrompt,
		Text:   cfg.Classifier.TextPrompt,
		Image:  cfg.Classifier.ImagePrompt,
	}

	switch cfg.Classifier.Provider {
	case "openai":
		return classifier.NewOpenAIClient(
			cfg.Classifier.APIKey,
			cfg.Classifier.APIBase,
			cfg.Classifier.Model,
			prompts,
			cfg.Classifier.MaxTokens,
		), nil
	case "anthropic":
		return classifier.NewAnthropicClient(
			cfg.Classifier.APIKey,
			cfg.Classifier.APIBase,
			cfg.Classifier.Model,
			prompts,
			cfg.Classifier.MaxTokens,
		), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Classifier.Provider)
	}
}
