// Package config holds the static routing configuration. It is loaded
// once at startup from a JSON file merged with CAKERADAR_* environment
// overrides and is immutable for the process lifetime.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Slack      SlackConfig      `json:"slack"`
	Classifier ClassifierConfig `json:"classifier"`
	Radar      RadarConfig      `json:"radar"`
	Gateway    GatewayConfig    `json:"gateway"`
	Digest     DigestConfig     `json:"digest"`
}

type SlackConfig struct {
	BotToken string `env:"CAKERADAR_SLACK_BOT_TOKEN" json:"bot_token"`
	AppToken string `env:"CAKERADAR_SLACK_APP_TOKEN" json:"app_token"`
}

type ClassifierConfig struct {
	Provider       string `env:"CAKERADAR_CLASSIFIER_PROVIDER"        json:"provider"`
	APIKey         string `env:"CAKERADAR_CLASSIFIER_API_KEY"         json:"api_key"`
	APIBase        string `env:"CAKERADAR_CLASSIFIER_API_BASE"        json:"api_base,omitempty"`
	Model          string `env:"CAKERADAR_CLASSIFIER_MODEL"           json:"model"`
	MaxTokens      int    `env:"CAKERADAR_CLASSIFIER_MAX_TOKENS"      json:"max_tokens"`
	TimeoutSeconds int    `env:"CAKERADAR_CLASSIFIER_TIMEOUT_SECONDS" json:"timeout_seconds"`
	SystemPrompt   string `json:"system_prompt,omitempty"`
	TextPrompt     string `json:"text_prompt,omitempty"`
	ImagePrompt    string `json:"image_prompt,omitempty"`
}

type RadarConfig struct {
	// SourceChannelID is the bot's own output channel; messages seen there
	// are dropped to prevent alert loops.
	SourceChannelID   string   `env:"CAKERADAR_RADAR_SOURCE_CHANNEL_ID"   json:"source_channel_id"`
	AlertChannel      string   `env:"CAKERADAR_RADAR_ALERT_CHANNEL"       json:"alert_channel"`
	FalseAlarmChannel string   `env:"CAKERADAR_RADAR_FALSE_ALARM_CHANNEL" json:"false_alarm_channel"`
	Threshold         int      `env:"CAKERADAR_RADAR_THRESHOLD"           json:"threshold"`
	KeywordsFile      string   `env:"CAKERADAR_RADAR_KEYWORDS_FILE"       json:"keywords_file,omitempty"`
	Keywords          []string `json:"keywords,omitempty"` // base forms; overrides the file when set
	DedupWindow       int      `env:"CAKERADAR_RADAR_DEDUP_WINDOW"        json:"dedup_window"`
	ArchiveBaseURL    string   `env:"CAKERADAR_RADAR_ARCHIVE_BASE_URL"    json:"archive_base_url"`
}

type GatewayConfig struct {
	Host string `env:"CAKERADAR_GATEWAY_HOST" json:"host"`
	Port int    `env:"CAKERADAR_GATEWAY_PORT" json:"port"`
}

type DigestConfig struct {
	Enabled  bool   `env:"CAKERADAR_DIGEST_ENABLED"  json:"enabled"`
	Schedule string `env:"CAKERADAR_DIGEST_SCHEDULE" json:"schedule"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No file yet: defaults plus env overrides.
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks the fields the relay cannot run without. Missing
// secrets are fatal at process start only.
func (c *Config) Validate() error {
	if c.Slack.BotToken == "" {
		return errors.New("slack.bot_token is required")
	}
	if c.Slack.AppToken == "" {
		return errors.New("slack.app_token is required")
	}
	if c.Classifier.APIKey == "" {
		return errors.New("classifier.api_key is required")
	}
	switch c.Classifier.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("classifier.provider %q is not supported", c.Classifier.Provider)
	}
	if c.Radar.AlertChannel == "" || c.Radar.FalseAlarmChannel == "" {
		return errors.New("radar.alert_channel and radar.false_alarm_channel are required")
	}
	return nil
}

// LoadKeywords returns the configured base keywords. Inline keywords win;
// otherwise the keywords file is read as a JSON string array. Any read or
// parse failure falls back to the built-in list.
func (c *Config) LoadKeywords() ([]string, error) {
	if len(c.Radar.Keywords) > 0 {
		return c.Radar.Keywords, nil
	}
	if c.Radar.KeywordsFile == "" {
		return defaultKeywords(), nil
	}

	data, err := os.ReadFile(expandHome(c.Radar.KeywordsFile))
	if err != nil {
		return defaultKeywords(), fmt.Errorf("reading keywords file: %w", err)
	}
	var base []string
	if err := json.Unmarshal(data, &base); err != nil {
		return defaultKeywords(), fmt.Errorf("parsing keywords file: %w", err)
	}
	if len(base) == 0 {
		return defaultKeywords(), nil
	}
	return base, nil
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
