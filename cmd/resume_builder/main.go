// Package main provides the resume_builder CLI: a command-line resume form with
// local write-through storage, PDF export, ATS analysis and the two HTTP services.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/spf13/cobra"
)

var (
	configPath string
	storePath  string
	verbose    bool

	// appConfig is resolved once per invocation before any command runs.
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume builder",
	Long: "Resume builder edits one resume form, keeping every change in a local store, " +
		"renders it to PDF in one of three themes and scores it against a job description.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the local form store (overrides config and RESUME_STORE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadAppConfig merges the config file, the environment and the global flags.
func loadAppConfig(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(configPath, storePath, verbose)
	if err != nil {
		return err
	}
	appConfig = cfg
	observability.SetVerbose(cfg.Verbose)
	return nil
}

func resolveConfig(path, store string, verbose bool) (config.Config, error) {
	cfg := config.Defaults()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}
	if store != "" {
		cfg.StorePath = store
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
