package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/rtop/internal/config"
	"github.com/rileyhilliard/rtop/internal/errors"
	"github.com/rileyhilliard/rtop/internal/history"
	"github.com/rileyhilliard/rtop/internal/ui"
	"github.com/rileyhilliard/rtop/internal/util"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	configInitPath     string
	configInitDefaults bool
	configInitForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create, inspect or change the rtop config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file",
	Long: `Create an rtop config file.

Walks through the settings with interactive prompts, or writes the
defaults straight away with --defaults.

Examples:
  rtop config init
  rtop config init --defaults
  rtop config init --path ./rtop.yaml --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configInitPath
		if path == "" {
			path = cfgFile
		}
		return configInit(cmd.OutOrStdout(), ConfigInitOptions{
			Path:           path,
			Overwrite:      configInitForce,
			NonInteractive: configInitDefaults,
		})
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(cmd.OutOrStdout(), cfgFile)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Change one setting in the config file, keeping its comments and layout.

Keys: ` + strings.Join(config.Keys, ", ") + `

Examples:
  rtop config set interval 500ms
  rtop config set thresholds.warning 60`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(cmd.OutOrStdout(), cfgFile, args[0], args[1])
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write the config (default $XDG_CONFIG_HOME/rtop/config.yaml)")
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "write defaults without prompting")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd, configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigInitOptions holds options for 'config init'.
type ConfigInitOptions struct {
	Path           string // Target file; empty means config.DefaultPath()
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// configInit writes a new config file.
func configInit(out io.Writer, opts ConfigInitOptions) error {
	path := opts.Path
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --defaults")
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write the config file",
			"Check you can write to "+path)
	}

	fmt.Fprintln(out, ui.Success("Wrote "+path))
	return nil
}

// promptConfig fills cfg from an interactive form.
func promptConfig(cfg *config.Config) error {
	interval := cfg.Interval.String()
	window := strconv.Itoa(cfg.HistoryWindow)
	warning := strconv.Itoa(cfg.Thresholds.Warning)
	critical := strconv.Itoa(cfg.Thresholds.Critical)

	sortOptions := make([]huh.Option[string], 0, history.SortColumnCount)
	for _, name := range history.SortColumnNames() {
		sortOptions = append(sortOptions, huh.NewOption(name, strings.ToLower(name)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sampling interval").
				Description("How often metrics refresh. Change it live with - and +").
				Options(huh.NewOptions("250ms", "500ms", "1s", "2s", "5s")...).
				Value(&interval),
			huh.NewInput().
				Title("Graph window").
				Description("Samples shown in graphs (100-500). Change it live with [ and ]").
				Value(&window).
				Validate(intRange(100, 500)),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort processes by").
				Options(sortOptions...).
				Value(&cfg.Sort),
			huh.NewConfirm().
				Title("Largest first?").
				Value(&cfg.SortDescending),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Warning threshold (%)").
				Value(&warning).
				Validate(intRange(0, 100)),
			huh.NewInput().
				Title("Critical threshold (%)").
				Value(&critical).
				Validate(intRange(0, 100)),
			huh.NewInput().
				Title("Log file (optional)").
				Description("Leave empty to disable logging").
				Placeholder("~/.cache/rtop/rtop.log").
				Value(&cfg.Log.File),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	// Validators above guarantee these parse.
	cfg.Interval, _ = time.ParseDuration(interval)
	cfg.HistoryWindow, _ = strconv.Atoi(window)
	cfg.Thresholds.Warning, _ = strconv.Atoi(warning)
	cfg.Thresholds.Critical, _ = strconv.Atoi(critical)
	return nil
}

// intRange validates a numeric form field.
func intRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// configShow prints the effective config with its sources.
func configShow(out io.Writer, explicit string) error {
	cfg, path, err := config.LoadOrDefault(explicit)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# file: %s\n", util.JoinOrDefault(nonEmpty(path), "(defaults)"))
	fmt.Fprintf(out, "# env: %s\n", util.JoinOrNone(envOverrides()))
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintln(out, "# invalid: "+firstLine(err.Error()))
	}
	_, err = out.Write(data)
	return err
}

// configSet changes one key, creating the file from defaults if needed.
func configSet(out io.Writer, explicit, key, value string) error {
	path, err := config.Find(explicit)
	if err != nil {
		return err
	}
	if path == "" {
		path = config.DefaultPath()
		if err := config.Save(path, config.DefaultConfig()); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't create the config file",
				"Check you can write to "+path)
		}
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't set %s", key),
			"Run 'rtop config set --help' for the list of keys.")
	}
	fmt.Fprintln(out, ui.Success(fmt.Sprintf("Set %s = %s in %s", key, value, path)))
	return nil
}

// envOverrides lists the RTOP_* variables in the environment.
func envOverrides() []string {
	var names []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix+"_") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func firstLine(s string) string {
	s = strings.TrimPrefix(s, "✗ ")
	line, _, _ := strings.Cut(s, "\n")
	return line
}
