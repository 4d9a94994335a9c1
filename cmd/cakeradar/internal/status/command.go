package status

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal"
	"github.com/tinyland-inc/cakeradar/pkg/radar"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the resolved cakeradar configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return statusCmd()
		},
	}
}

func statusCmd() error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	fmt.Printf("%s cakeradar %s\n\n", internal.Logo, internal.FormatVersion())
	fmt.Printf("Config: %s\n\n", internal.GetConfigPath())

	if err := cfg.Validate(); err != nil {
		fmt.Printf("⚠ Config invalid: %v\n\n", err)
	} else {
		fmt.Println("✓ Config valid")
	}

	base, kwErr := cfg.LoadKeywords()
	keywords := radar.WithPlurals(base)

	fmt.Printf("Classifier:   %s (%s)\n", cfg.Classifier.Provider, cfg.Classifier.Model)
	fmt.Printf("Alerts:       %s\n", cfg.Radar.AlertChannel)
	fmt.Printf("False alarms: %s\n", cfg.Radar.FalseAlarmChannel)
	fmt.Printf("Excluded:     %s\n", cfg.Radar.SourceChannelID)
	fmt.Printf("Threshold:    %d%%\n", cfg.Radar.Threshold)
	fmt.Printf("Dedup window: %d\n", cfg.Radar.DedupWindow)
	fmt.Printf("Keywords:     %d (with plurals)\n", len(keywords))
	if kwErr != nil {
		fmt.Printf("⚠ Keyword file unusable, built-in list in effect: %v\n", kwErr)
	}
	if cfg.Digest.Enabled {
		fmt.Printf("Digest:       %s\n", cfg.Digest.Schedule)
	}

	return nil
}
