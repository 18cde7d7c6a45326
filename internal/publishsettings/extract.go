package publishsettings

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	publishDataElement    = "publishData"
	publishProfileElement = "publishProfile"
	originalSiteNameAttr  = "originalsitename"
	publishMethodAttr     = "publishMethod"
	msDeployMethod        = "MSDeploy"
)

// Result is the outcome of extracting one site's MSDeploy profile.
type Result struct {
	Settings    *Settings
	ParseErrors []string
	Found       bool
}

// Extract reads the MSDeploy publish profile of siteName from a parsed document.
//
// Profiles are matched on originalsitename exactly, then the first one whose
// publishMethod is MSDeploy (any case) is used. A missing profile is not an error:
// Found is false and ParseErrors describes the problem. Invalid agent types, useNTLM
// values, SQL connection strings and database names abort the extraction.
func Extract(root Node, siteName string) (*Result, error) {
	result := &Result{Settings: newSettingsBuilder().build()}

	profile := findMSDeployProfile(root, siteName)
	if profile == nil {
		result.ParseErrors = append(result.ParseErrors, notFoundMessage)
		log.Debug().Str("site", siteName).Msg("no MSDeploy publish profile for site")
		return result, nil
	}

	b := newSettingsBuilder()
	for _, attr := range profile.Attributes() {
		if err := b.setAttribute(attr.Name, attr.Value); err != nil {
			return nil, fmt.Errorf("site %s: %w", siteName, err)
		}
	}

	for _, child := range profile.Children() {
		if !strings.EqualFold(child.Name(), "databases") {
			continue
		}
		if err := addDatabases(b, child); err != nil {
			return nil, fmt.Errorf("site %s: %w", siteName, err)
		}
	}

	result.Settings = b.build()
	result.Found = true
	log.Debug().
		Str("site", siteName).
		Str("agent_type", result.Settings.AgentType().String()).
		Int("databases", result.Settings.Databases().Len()).
		Msg("extracted MSDeploy publish profile")
	return result, nil
}

func addDatabases(b *settingsBuilder, databases Node) error {
	for _, add := range databases.Children() {
		if !strings.EqualFold(add.Name(), "add") {
			continue
		}
		db := Database{
			Name:                     attributeValue(add, "name"),
			ConnectionString:         attributeValue(add, "connectionString"),
			ProviderName:             attributeValue(add, "providerName"),
			Type:                     attributeValue(add, "type"),
			TargetDatabaseEngineType: attributeValue(add, "targetDatabaseEngineType"),
			TargetServerVersion:      attributeValue(add, "targetServerVersion"),
		}
		if err := b.addDatabase(db); err != nil {
			return err
		}
	}
	return nil
}

// findMSDeployProfile returns the first publishData/publishProfile element of the site
// whose publishMethod is MSDeploy.
func findMSDeployProfile(root Node, siteName string) Node {
	for _, profile := range siteProfiles(root, siteName) {
		if strings.EqualFold(attributeValue(profile, publishMethodAttr), msDeployMethod) {
			return profile
		}
	}
	return nil
}

// siteProfiles returns the publishProfile elements whose originalsitename is siteName.
// The site name comparison is case-sensitive.
func siteProfiles(root Node, siteName string) []Node {
	var profiles []Node
	for _, data := range root.Children() {
		if data.Name() != publishDataElement {
			continue
		}
		for _, profile := range data.Children() {
			if profile.Name() == publishProfileElement && attributeValue(profile, originalSiteNameAttr) == siteName {
				profiles = append(profiles, profile)
			}
		}
		// Only the document element is addressed by /publishData.
		break
	}
	return profiles
}

// Sites lists the originalsitename of every MSDeploy profile, in document order and
// without duplicates.
func Sites(root Node) []string {
	var sites []string
	seen := map[string]bool{}
	for _, data := range root.Children() {
		if data.Name() != publishDataElement {
			continue
		}
		for _, profile := range data.Children() {
			if profile.Name() != publishProfileElement {
				continue
			}
			if !strings.EqualFold(attributeValue(profile, publishMethodAttr), msDeployMethod) {
				continue
			}
			site := attributeValue(profile, originalSiteNameAttr)
			if !seen[site] {
				seen[site] = true
				sites = append(sites, site)
			}
		}
		break
	}
	return sites
}

// LoadBytes parses data and extracts the profile for siteName.
func LoadBytes(data []byte, siteName string) (*Result, error) {
	root, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return Extract(root, siteName)
}

// ReadDocument returns the content of pathOrXML when it names a file on fs. Otherwise
// the argument itself is returned when it looks like XML text, and a missing file is
// reported when it does not.
func ReadDocument(fs afero.Fs, pathOrXML string) ([]byte, error) {
	_, err := fs.Stat(pathOrXML)
	if err == nil {
		data, err := afero.ReadFile(fs, pathOrXML)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
		}
		return data, nil
	}
	if looksLikeXML(pathOrXML) {
		return []byte(pathOrXML), nil
	}
	return nil, fmt.Errorf("%w: %w", ErrDocumentUnreadable, err)
}

func looksLikeXML(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, " \t\r\n\ufeff"), "<")
}

// Load reads a publish settings file, or XML text, and extracts the profile for siteName.
func Load(fs afero.Fs, pathOrXML, siteName string) (*Result, error) {
	data, err := ReadDocument(fs, pathOrXML)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, siteName)
}
