package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/importer"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/ui"
)

var (
	importFile            string
	importSites           []string
	targetPrefix          string
	onConflict            string
	dryRun                bool
	importSkipCredentials bool
	assumeYes             bool
)

var publishSettingsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import MSDeploy profiles as deployment targets",
	Long: `Import the MSDeploy publish profiles of a .PublishSettings file as deployment
targets. Targets are saved to ~/.azmigrate/targets.json and publish passwords,
encrypted, to ~/.azmigrate/credentials.json.

Without --site every site with an MSDeploy profile is imported.`,
	RunE: runPublishSettingsImport,
}

func init() {
	publishSettingsCmd.AddCommand(publishSettingsImportCmd)

	publishSettingsImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the .PublishSettings file (required)")
	publishSettingsImportCmd.Flags().StringSliceVar(&importSites, "site", nil, "Original site name to import (repeatable, default: all)")
	publishSettingsImportCmd.Flags().StringVar(&targetPrefix, "prefix", "", "Prefix for target names (default: empty)")
	publishSettingsImportCmd.Flags().StringVar(&onConflict, "on_conflict", "skip", "Conflict behavior: fail, skip, overwrite (default: skip)")
	publishSettingsImportCmd.Flags().BoolVar(&dryRun, "dry_run", false, "Show what would be created without writing files")
	publishSettingsImportCmd.Flags().BoolVar(&importSkipCredentials, "skip-credentials", false, "Do not store publish passwords")
	publishSettingsImportCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask before overwriting existing targets")

	publishSettingsImportCmd.MarkFlagRequired("file")
}

func runPublishSettingsImport(cmd *cobra.Command, args []string) error {
	strategy, ok := config.ParseConflictStrategy(onConflict)
	if !ok {
		return fmt.Errorf("invalid on_conflict value: %s (must be fail, skip, or overwrite)", onConflict)
	}

	_, data, err := readPublishSettings(importFile)
	if err != nil {
		return fmt.Errorf("failed to read publish settings: %w", err)
	}

	if strategy == config.ConflictOverwrite && !dryRun && !assumeYes && isInteractive() {
		confirmed, err := ui.PromptConfirm("Existing targets with the same name will be overwritten. Continue?")
		if err != nil {
			return err
		}
		if !confirmed {
			ui.Warning(cmd.ErrOrStderr(), "Import cancelled.")
			return nil
		}
	}

	result, err := importer.ImportSites(data, importer.Options{
		File:            importFile,
		Sites:           importSites,
		Prefix:          targetPrefix,
		Strategy:        strategy,
		DryRun:          dryRun,
		SkipCredentials: importSkipCredentials,
	})
	if err != nil {
		return fmt.Errorf("failed to import publish settings: %w", err)
	}

	renderImportResult(cmd.OutOrStdout(), result, dryRun)

	if !dryRun && importSkipCredentials {
		ui.Warning(cmd.ErrOrStderr(), "\nPublish passwords were NOT stored.")
		fmt.Fprintf(cmd.ErrOrStderr(), "Use 'azmigrate targets login <name>' to store credentials for a target.\n")
	}
	if len(result.Errors) > 0 && result.Created+result.Overwritten+result.Skipped == 0 {
		return fmt.Errorf("no targets imported")
	}
	return nil
}

func renderImportResult(w io.Writer, result *importer.ImportResult, dryRun bool) {
	ui.Success(w, "Import completed:")
	fmt.Fprintf(w, "  Discovered: %d sites\n", result.Discovered)
	fmt.Fprintf(w, "  Created: %d targets\n", result.Created)
	fmt.Fprintf(w, "  Skipped: %d\n", result.Skipped)
	fmt.Fprintf(w, "  Overwritten: %d\n", result.Overwritten)

	if len(result.Errors) > 0 {
		ui.Error(w, "\nErrors:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  - %s: %s\n", e.SiteName, e.Message)
		}
	}

	if dryRun && len(result.Planned) > 0 {
		fmt.Fprintln(w, "\nTargets to be created:")
		for i, p := range result.Planned {
			fmt.Fprintf(w, "\n  [%d] %s\n", i+1, p.Name)
			fmt.Fprintf(w, "      computer_name: %s\n", p.Target.ComputerName)
			fmt.Fprintf(w, "      username: %s\n", p.Target.Username)
			fmt.Fprintf(w, "      auth_type: %s\n", p.Target.AuthType)
			fmt.Fprintf(w, "      agent_type: %s\n", p.Target.AgentType)
			fmt.Fprintf(w, "      databases: %d\n", len(p.Target.Databases))
		}
	}
}
