// ABOUTME: CLI flag definitions using cobra
// ABOUTME: Supports --config, --banner, --marker, --quit-key, --verbose, --log-file, --version

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mauromedda/texdi/internal/config"
)

type cliArgs struct {
	configPath string
	banner     string
	marker     string
	quitKey    string
	verbose    bool
	logFile    string
}

// newRootCmd builds the texdi command. runFn receives the merged and
// validated settings.
func newRootCmd(runFn func(cmd *cobra.Command, s *config.Settings) error) *cobra.Command {
	var args cliArgs

	cmd := &cobra.Command{
		Use:           "texdi",
		Short:         "Minimal raw-mode terminal text editor",
		Long:          `texdi switches the terminal to raw mode, draws a full-screen view with a centered banner, and moves the cursor with the arrow keys until Ctrl+Q.`,
		Args:          cobra.NoArgs,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd, args)
			if err != nil {
				return err
			}
			return runFn(cmd, s)
		},
	}
	cmd.SetVersionTemplate("texdi {{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&args.configPath, "config", "", "Read settings from this YAML file instead of ~/.texdi and ./.texdi")
	f.StringVar(&args.banner, "banner", "", "Banner text drawn a third of the way down the screen")
	f.StringVar(&args.marker, "marker", "", "Glyph drawn at the start of empty rows")
	f.StringVar(&args.quitKey, "quit-key", "", "Letter that quits together with Ctrl (default q)")
	f.BoolVarP(&args.verbose, "verbose", "v", false, "Log at debug level")
	f.StringVar(&args.logFile, "log-file", "", "Append logs to this file while the editor runs")

	return cmd
}

// loadSettings reads the settings files and applies the flags the user
// actually set on top of them.
func loadSettings(cmd *cobra.Command, args cliArgs) (*config.Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	s, err := config.Load(cwd, args.configPath)
	if err != nil {
		return nil, err
	}

	s = config.Merge(s, buildCLIOverrides(cmd, args))
	if args.verbose {
		s.LogLevel = "debug"
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// buildCLIOverrides converts explicitly set flags into a settings layer.
func buildCLIOverrides(cmd *cobra.Command, args cliArgs) *config.Settings {
	o := &config.Settings{}
	f := cmd.Flags()
	if f.Changed("banner") {
		o.Banner = args.banner
	}
	if f.Changed("marker") {
		o.Marker = args.marker
	}
	if f.Changed("quit-key") {
		o.QuitKey = args.quitKey
	}
	if f.Changed("log-file") {
		o.LogFile = args.logFile
	}
	return o
}
