package radar

import (
	"github.com/spf13/cobra"
)

func NewRadarCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:     "radar",
		Aliases: []string{"r"},
		Short:   "Start the cake radar relay",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return radarCmd(debug)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	return cmd
}
