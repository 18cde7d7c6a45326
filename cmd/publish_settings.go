package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/publishsettings"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/ui"
)

var publishSettingsCmd = &cobra.Command{
	Use:     "publish-settings",
	Aliases: []string{"ps"},
	Short:   "Inspect and import .PublishSettings files",
}

// isInteractive is swapped out by tests.
var isInteractive = ui.IsInteractive

func init() {
	rootCmd.AddCommand(publishSettingsCmd)
}

// readPublishSettings reads and parses a publish settings file, or inline XML.
func readPublishSettings(path string) (publishsettings.Node, []byte, error) {
	data, err := publishsettings.ReadDocument(config.AppFs, path)
	if err != nil {
		return nil, nil, err
	}
	root, err := publishsettings.ParseDocument(data)
	if err != nil {
		return nil, nil, err
	}
	return root, data, nil
}

// resolveSite picks the site to extract: the explicit value, the configured default,
// the only MSDeploy site of the document, or an interactive choice.
func resolveSite(explicit string, root publishsettings.Node) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if cfg.DefaultSite != "" {
		return cfg.DefaultSite, nil
	}

	sites := publishsettings.Sites(root)
	switch {
	case len(sites) == 1:
		return sites[0], nil
	case len(sites) == 0:
		return "", errors.New("no MSDeploy publish profiles found")
	case isInteractive():
		return ui.PromptSite(sites)
	default:
		return "", fmt.Errorf("--site is required, the file contains several sites: %s", strings.Join(sites, ", "))
	}
}
