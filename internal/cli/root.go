package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/system"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	EnvFile    string
	Preset     string
	Width      int
	Height     int
	Workers    int
	CacheDB    string
	Strict     bool

	// Config is resolved in PersistentPreRunE from defaults, the config
	// file, the environment and explicit flags, in that order.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Presets maps aspect-ratio names to output sizes.
var Presets = map[string][2]int{
	"16:9": {1280, 720},
	"9:16": {720, 1280},
	"4:5":  {1080, 1350},
	"1:1":  {1080, 1080},
}

// NewRootCommand creates the root command for the scene2video CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "scene2video",
		Short:         "scene2video - scene graphs to frame-accurate video timelines",
		Long:          "Compose scene graphs (scenes, assets, camera effects, text overlays) into\nframe-windowed plans and resolve what is visible at any frame.",
		Version:       version,
		SilenceUsage:  true, // main reports errors and picks the exit code
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if err := opts.resolveConfig(cmd); err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			opts.Config.BuildVersion = version
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigPath, "config", "scene2video.yaml", "config file (missing file is ignored)")
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading SCENE2VIDEO_* variables")
	flags.StringVar(&opts.Preset, "preset", "", "output size preset: 16:9, 9:16, 4:5, 1:1")
	flags.IntVar(&opts.Width, "width", config.DefaultWidth, "output width")
	flags.IntVar(&opts.Height, "height", config.DefaultHeight, "output height")
	flags.IntVar(&opts.Workers, "workers", 0, "worker count (default: physical cores)")
	flags.StringVar(&opts.CacheDB, "cache-db", "", "SQLite plan cache (empty disables caching)")
	flags.BoolVar(&opts.Strict, "strict", false, "treat skipped or repaired records as errors")

	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewFrameCommand(opts))
	cmd.AddCommand(NewSampleCommand(opts))
	cmd.AddCommand(NewEstimateCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewPublishCommand(opts))
	cmd.AddCommand(NewCacheCommand(opts))

	return cmd
}

func (o *RootOptions) resolveConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(o.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(o.ConfigPath, config.Default(system.Workers()))
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if o.Preset != "" {
		size, ok := Presets[o.Preset]
		if !ok {
			return fmt.Errorf("unknown preset %q", o.Preset)
		}
		cfg.Width, cfg.Height = size[0], size[1]
	}
	if flags.Changed("width") {
		cfg.Width = o.Width
	}
	if flags.Changed("height") {
		cfg.Height = o.Height
	}
	if flags.Changed("workers") {
		cfg.Workers = o.Workers
	}
	if flags.Changed("cache-db") {
		cfg.CacheDB = o.CacheDB
	}
	if o.Strict {
		cfg.Strict = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	o.Config = cfg
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
