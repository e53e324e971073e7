package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "connmask",
	Short: "Log connector configuration with credentials masked",
	Long: `connmask prints connector configuration files the way a connector logs
them at startup: one header line and one "key = value" line per property,
with passwords, JAAS configs and registry credentials replaced by ********.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is $HOME/.connmask/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig binds environment variables. CONNMASK_SCRUB_VALUES=true has the
// same effect as --scrub-values.
func initConfig() {
	viper.SetEnvPrefix("CONNMASK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// settingsPath returns the settings file to load: --config when given,
// otherwise the default location under the home directory.
func settingsPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if env := viper.GetString("config"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Debug("failed to find home directory", "error", err)
		return ""
	}
	return filepath.Join(home, ".connmask", "config.yaml")
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
