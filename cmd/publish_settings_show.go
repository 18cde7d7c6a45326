package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/publishsettings"
)

var (
	showFile         string
	showSite         string
	showShowPassword bool
)

var publishSettingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the MSDeploy settings of one site",
	Long: `Extract the MSDeploy publish profile of a site and show the raw values together
with the derived management endpoint and authentication type.

Without --site the configured default_site is used, or the only site in the file.
On a terminal you are asked to pick one when the file has several sites.`,
	RunE: runPublishSettingsShow,
}

func init() {
	publishSettingsCmd.AddCommand(publishSettingsShowCmd)

	publishSettingsShowCmd.Flags().StringVarP(&showFile, "file", "f", "", "Path to the .PublishSettings file (required)")
	publishSettingsShowCmd.Flags().StringVar(&showSite, "site", "", "Original site name of the profile")
	publishSettingsShowCmd.Flags().BoolVar(&showShowPassword, "show-password", false, "Print passwords instead of masking them")
	publishSettingsShowCmd.MarkFlagRequired("file")
}

// settingsView is the JSON shape of `publish-settings show`.
type settingsView struct {
	Site                  string                      `json:"site"`
	PublishURLRaw         string                      `json:"publish_url_raw"`
	ComputerName          string                      `json:"computer_name"`
	SiteName              string                      `json:"site_name"`
	Username              string                      `json:"username"`
	Password              string                      `json:"password"`
	DestinationAppURL     string                      `json:"destination_app_url"`
	AgentType             string                      `json:"agent_type"`
	AuthenticationType    string                      `json:"authentication_type"`
	UseNTLM               *bool                       `json:"use_ntlm"`
	AllowUntrusted        bool                        `json:"allow_untrusted"`
	SQLConnectionString   string                      `json:"sql_connection_string"`
	MySQLConnectionString string                      `json:"mysql_connection_string"`
	MySQLDSN              string                      `json:"mysql_dsn,omitempty"`
	OtherAttributes       []publishsettings.Attribute `json:"other_attributes"`
	Databases             []databaseView              `json:"databases"`
}

type databaseView struct {
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	ProviderName     string `json:"provider_name"`
	Type             string `json:"type"`
	EngineType       string `json:"engine_type"`
	ServerVersion    string `json:"server_version"`
	ConnectionString string `json:"connection_string"`
}

func runPublishSettingsShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	root, _, err := readPublishSettings(showFile)
	if err != nil {
		return err
	}

	site, err := resolveSite(showSite, root)
	if err != nil {
		return err
	}

	result, err := publishsettings.Extract(root, site)
	if err != nil {
		return err
	}
	if !result.Found {
		return fmt.Errorf("site %s: %s", site, strings.Join(result.ParseErrors, "; "))
	}

	view := newSettingsView(site, result.Settings, showShowPassword)
	if format == "json" {
		return renderJSON(cmd.OutOrStdout(), view)
	}
	return renderSettingsView(cmd, view)
}

func newSettingsView(site string, s *publishsettings.Settings, reveal bool) settingsView {
	secret := func(v string) string {
		if reveal || v == "" {
			return v
		}
		return "****"
	}
	connString := func(v string) string {
		if reveal {
			return v
		}
		return config.MaskConnectionString(v)
	}

	view := settingsView{
		Site:                  site,
		PublishURLRaw:         s.PublishURLRaw(),
		ComputerName:          s.ComputerName(),
		SiteName:              s.SiteName(),
		Username:              s.Username(),
		Password:              secret(s.Password()),
		DestinationAppURL:     s.DestinationAppURL(),
		AgentType:             s.AgentType().String(),
		AuthenticationType:    s.AuthenticationType(),
		AllowUntrusted:        s.AllowUntrusted(),
		SQLConnectionString:   connString(s.SQLConnectionString().Raw()),
		MySQLConnectionString: connString(s.MySQLConnectionString()),
		OtherAttributes:       s.OtherAttributes(),
		Databases:             []databaseView{},
	}
	if view.OtherAttributes == nil {
		view.OtherAttributes = []publishsettings.Attribute{}
	}
	if useNTLM, ok := s.UseNTLM(); ok {
		view.UseNTLM = &useNTLM
	}

	mysqlCfg, err := s.MySQLConfig()
	if err != nil {
		log.Warn().Err(err).Str("site", site).Msg("cannot derive MySQL DSN")
	} else if mysqlCfg != nil {
		view.MySQLDSN = mysqlCfg.FormatDSN()
		if !reveal {
			view.MySQLDSN = config.MaskDsn(view.MySQLDSN)
		}
	}

	for _, db := range s.Databases().All() {
		if _, err := db.ServerVersion(); err != nil {
			log.Warn().Err(err).Msg("unrecognized target server version")
		}
		view.Databases = append(view.Databases, databaseView{
			Name:             db.Name,
			Kind:             config.DatabaseKind(db.ProviderName, db.Type),
			ProviderName:     db.ProviderName,
			Type:             db.Type,
			EngineType:       db.TargetDatabaseEngineType,
			ServerVersion:    db.TargetServerVersion,
			ConnectionString: connString(db.ConnectionString),
		})
	}
	return view
}

func renderSettingsView(cmd *cobra.Command, v settingsView) error {
	w := cmd.OutOrStdout()

	useNTLM := "unset"
	if v.UseNTLM != nil {
		useNTLM = strconv.FormatBool(*v.UseNTLM)
	}

	fields := [][]string{
		{"computer_name", v.ComputerName},
		{"authentication_type", v.AuthenticationType},
		{"publish_url_raw", v.PublishURLRaw},
		{"site_name", v.SiteName},
		{"username", v.Username},
		{"password", v.Password},
		{"destination_app_url", v.DestinationAppURL},
		{"agent_type", v.AgentType},
		{"use_ntlm", useNTLM},
		{"allow_untrusted", strconv.FormatBool(v.AllowUntrusted)},
		{"sql_connection_string", v.SQLConnectionString},
		{"mysql_connection_string", v.MySQLConnectionString},
	}
	if v.MySQLDSN != "" {
		fields = append(fields, []string{"mysql_dsn", v.MySQLDSN})
	}

	fmt.Fprintf(w, "MSDeploy settings for %s\n", v.Site)
	if err := renderTable(w, []string{"field", "value"}, fields); err != nil {
		return err
	}

	if len(v.OtherAttributes) > 0 {
		rows := make([][]string, 0, len(v.OtherAttributes))
		for _, attr := range v.OtherAttributes {
			rows = append(rows, []string{attr.Name, attr.Value})
		}
		fmt.Fprintln(w, "\nOther attributes:")
		if err := renderTable(w, []string{"name", "value"}, rows); err != nil {
			return err
		}
	}

	if len(v.Databases) > 0 {
		rows := make([][]string, 0, len(v.Databases))
		for _, db := range v.Databases {
			rows = append(rows, []string{db.Name, db.Kind, db.ProviderName, db.EngineType, db.ServerVersion})
		}
		fmt.Fprintln(w, "\nDatabases:")
		if err := renderTable(w, []string{"name", "kind", "provider_name", "engine_type", "server_version"}, rows); err != nil {
			return err
		}
	}
	return nil
}
