// cakeradar - Slack treat-announcement relay.
// Watches workspace messages for informal cake/snack announcements,
// scores them with an external classifier, and reposts alerts.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal"
	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal/onboard"
	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal/radar"
	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal/status"
	"github.com/tinyland-inc/cakeradar/cmd/cakeradar/internal/version"
)

func NewCakeradarCommand() *cobra.Command {
	short := fmt.Sprintf("%s cakeradar - Slack treat alert relay v%s\n\n", internal.Logo, internal.GetVersion())

	cmd := &cobra.Command{
		Use:     "cakeradar",
		Short:   short,
		Example: "cakeradar radar",
	}

	cmd.AddCommand(
		onboard.NewOnboardCommand(),
		radar.NewRadarCommand(),
		status.NewStatusCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewCakeradarCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
