package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fieldtrack/work-update-pipeline/internal/config"
)

var (
	cfg        *config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "workupdate",
	Short: "Work update submission CLI",
	Long:  "Command line interface for submitting photographed progress updates to the tracking backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultConfig := os.Getenv("WORKUPDATE_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "workupdate.yaml"
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfig,
		"Path to YAML configuration file")

	rootCmd.AddCommand(newSubmitCmd())
}
