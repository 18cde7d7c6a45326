package cmd

import (
	"github.com/spf13/cobra"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/ui"
)

// cfg is loaded before every command runs.
var cfg = &config.Config{OutputFormat: "table"}

var rootCmd = &cobra.Command{
	Use:   "azmigrate",
	Short: "azmigrate moves IIS sites to Azure Websites",
	Long: `Tooling for migrating IIS web sites to Azure Websites.

Reads the MSDeploy profile from a .PublishSettings file, derives the Web Deploy
management endpoint and authentication scheme, and stores deployment targets
under ~/.azmigrate.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntimeConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool(
		"plain", false,
		"Use plain ASCII output instead of Unicode box-drawing characters and colors.",
	)
	rootCmd.PersistentFlags().StringP(
		"output", "o", "",
		"Output format: table or json (default from config, else table).",
	)
	rootCmd.PersistentFlags().String(
		"log-level", "",
		"Log level: trace, debug, info, warn, error (default from config, else warn).",
	)
}

func loadRuntimeConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	cfg.Log.ConfigureZerolog()

	if cmd.Flags().Changed("plain") {
		cfg.Plain, _ = cmd.Flags().GetBool("plain")
	}
	ui.SetPlain(cfg.Plain)

	if cmd.Flags().Changed("output") {
		output, _ := cmd.Flags().GetString("output")
		cfg.OutputFormat = output
	}
	return nil
}
