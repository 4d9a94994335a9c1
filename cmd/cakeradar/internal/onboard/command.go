package onboard

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal"
	"github.com/tinyland-inc/cakeradar/pkg/config"
)

func NewOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Interactively create the cakeradar config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return onboardCmd()
		},
	}
}

func onboardCmd() error {
	path := internal.GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at %s — editing in place.\n", path)
	}

	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	rl, err := readline.New("> ")
	if err != nil {
		return fmt.Errorf("error starting prompt: %w", err)
	}
	defer rl.Close()

	fmt.Printf("%s cakeradar setup\n\n", internal.Logo)

	cfg.Slack.BotToken = ask(rl, "Slack bot token (xoxb-...)", cfg.Slack.BotToken)
	cfg.Slack.AppToken = ask(rl, "Slack app token (xapp-...)", cfg.Slack.AppToken)
	cfg.Classifier.Provider = ask(rl, "Classifier provider (openai/anthropic)", cfg.Classifier.Provider)
	cfg.Classifier.APIKey = ask(rl, "Classifier API key", cfg.Classifier.APIKey)
	cfg.Classifier.Model = ask(rl, "Classifier model", cfg.Classifier.Model)
	cfg.Radar.SourceChannelID = ask(rl, "Radar output channel ID to exclude (loop prevention)", cfg.Radar.SourceChannelID)
	cfg.Radar.AlertChannel = ask(rl, "Alert channel", cfg.Radar.AlertChannel)
	cfg.Radar.FalseAlarmChannel = ask(rl, "False-alarm channel", cfg.Radar.FalseAlarmChannel)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("⚠ Config incomplete: %v (saving anyway)\n", err)
	}

	if err := config.SaveConfig(path, cfg); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	fmt.Printf("\n✓ Config written to %s\n", path)
	fmt.Println("Run `cakeradar radar` to start the relay.")
	return nil
}

func ask(rl *readline.Instance, label, current string) string {
	if current != "" {
		rl.SetPrompt(fmt.Sprintf("%s [%s]: ", label, current))
	} else {
		rl.SetPrompt(label + ": ")
	}
	line, err := rl.Readline()
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}
