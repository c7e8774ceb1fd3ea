package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crestline-systems/crestline-cli/internal/config"
	"github.com/crestline-systems/crestline-cli/internal/logging"
)

var (
	cfgFile   string
	credsFile string
	settings  *config.Settings
	creds     *config.Credentials
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "crestline",
	Short: "Crestline CLI",
	Long: `crestline is the command-line client for the Crestline REST backend.

Authenticate with client credentials and issue raw API calls
(GET/POST/PUT/DELETE, JSON or form bodies) from your terminal.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default: $HOME/.crestline/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&credsFile, "credentials", "", "credentials file (default: $HOME/.crestline/credentials.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "profile to use (default: current profile)")
	rootCmd.PersistentFlags().String("output", "json", "output format: json, table")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func initConfig() {
	var err error
	settings, err = config.LoadSettings(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load settings: %v\n", err)
		settings = config.DefaultSettings()
	}

	level := settings.Logging.Level
	if flagLevel, _ := rootCmd.PersistentFlags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	logger = logging.New(os.Stderr, logging.ParseLevel(level), settings.Logging.Format)

	creds, err = config.LoadCredentials(credsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load credentials: %v\n", err)
		creds = config.DefaultCredentials()
	}
}
