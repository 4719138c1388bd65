package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wlkit/lswt/internal/collect"
	"github.com/wlkit/lswt/internal/config"
	"github.com/wlkit/lswt/internal/logger"
	"github.com/wlkit/lswt/internal/render"
	"github.com/wlkit/lswt/internal/snapshot"
	"github.com/wlkit/lswt/internal/wire"
)

const version = "2.1.0"

var (
	cfgFile      string
	jsonOut      bool
	tsvOut       bool
	customFormat string

	rootCmd = &cobra.Command{
		Use:     "lswt",
		Short:   "List Wayland toplevels",
		Version: version,
		Long: `lswt queries the Wayland compositor for the currently open toplevel
windows and prints them. It speaks zwlr-foreign-toplevel-management-v1 when
the compositor offers it, falling back to ext-foreign-toplevel-list-v1, and
takes a single point-in-time snapshot.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/lswt/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "output data in JSON format")
	rootCmd.Flags().BoolVarP(&tsvOut, "tsv", "t", false, "output data as tab separated values")
	rootCmd.Flags().StringVarP(&customFormat, "custom", "c", "", "output data in a custom format: <delimiter><field codes>")
	rootCmd.MarkFlagsMutuallyExclusive("json", "tsv", "custom")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("LSWT")
	viper.BindEnv("log_level")
}

// Execute runs the root command. Fatal conditions print one diagnostic line
// to stderr and exit 1; stdout stays untouched on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if v := viper.GetString("log_level"); v != "" {
		level = v
	}
	logger.Init(level, cfg.LogPretty)

	// Resolve the output format and validate it in full before anything
	// touches the server: an invalid custom format must fail without a
	// connection attempt.
	opts, err := resolveOptions(cfg, jsonOut, tsvOut, customFormat)
	if err != nil {
		return err
	}

	// No fallback display name: if WAYLAND_DISPLAY is unset we refuse
	// rather than guess at a socket the way libwayland would.
	display := os.Getenv("WAYLAND_DISPLAY")
	if display == "" {
		return errors.New("WAYLAND_DISPLAY is not set")
	}

	conn, err := wire.Connect(display)
	if err != nil {
		return fmt.Errorf("cannot connect to wayland display: %w", err)
	}
	defer conn.Close()

	store := snapshot.NewStore()
	result, err := collect.Run(conn, store)
	if err != nil {
		store.Release()
		return err
	}

	opts.Caps = result.Caps
	opts.Grouped = result.Protocol == collect.ProtocolLegacy
	renderErr := render.Render(os.Stdout, store, opts)
	store.Release()
	return renderErr
}

// resolveOptions merges the format flags with the config file's defaults.
// Flags win; the config file only fills gaps.
func resolveOptions(cfg *config.Config, jsonFlag, tsvFlag bool, customFlag string) (render.Options, error) {
	opts := render.Options{Mode: render.ModeHuman}
	format := customFlag
	switch {
	case jsonFlag:
		opts.Mode = render.ModeJSON
	case tsvFlag:
		opts.Mode = render.ModeTSV
	case format != "":
		opts.Mode = render.ModeCustom
	case cfg.Format == "json":
		opts.Mode = render.ModeJSON
	case cfg.Format == "tsv":
		opts.Mode = render.ModeTSV
	case cfg.Format == "custom":
		opts.Mode = render.ModeCustom
		format = cfg.CustomFormat
	}
	if opts.Mode == render.ModeCustom {
		parsed, err := render.ParseCustomFormat(format)
		if err != nil {
			return render.Options{}, err
		}
		opts.Custom = parsed
	}
	return opts, nil
}
