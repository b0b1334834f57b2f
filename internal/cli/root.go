package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/rtop/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile      string
	noColor      bool
	debug        bool
	intervalFlag string
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "rtop",
	Short: "Terminal system monitor",
	Long: `rtop is a keyboard-driven terminal dashboard for the local machine.

It shows CPU, memory, disk, network and process activity with scrolling
history graphs, and can send signals to processes.

Examples:
  rtop
  rtop --interval 500ms
  rtop --config ~/dotfiles/rtop.yaml --debug`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardFlags{
			ConfigPath: cfgFile,
			Interval:   intervalFlag,
			Debug:      debug,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/rtop/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs (to log.file, or the user cache dir)")
	rootCmd.Flags().StringVarP(&intervalFlag, "interval", "i", "", "sampling interval, 100ms-10s (e.g. 500ms, 2s)")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(err.Error()))
		os.Exit(1)
	}
}
