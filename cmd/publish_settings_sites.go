package cmd

import (
	"github.com/spf13/cobra"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/publishsettings"
)

var sitesFile string

var publishSettingsSitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the sites that have an MSDeploy publish profile",
	RunE:  runPublishSettingsSites,
}

func init() {
	publishSettingsCmd.AddCommand(publishSettingsSitesCmd)

	publishSettingsSitesCmd.Flags().StringVarP(&sitesFile, "file", "f", "", "Path to the .PublishSettings file (required)")
	publishSettingsSitesCmd.MarkFlagRequired("file")
}

func runPublishSettingsSites(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	root, _, err := readPublishSettings(sitesFile)
	if err != nil {
		return err
	}

	sites := publishsettings.Sites(root)
	if format == "json" {
		if sites == nil {
			sites = []string{}
		}
		return renderJSON(cmd.OutOrStdout(), sites)
	}

	rows := make([][]string, 0, len(sites))
	for _, site := range sites {
		rows = append(rows, []string{site})
	}
	return renderTable(cmd.OutOrStdout(), []string{"site"}, rows)
}
