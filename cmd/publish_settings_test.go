package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublishSettings = `<?xml version="1.0" encoding="utf-8"?>
<publishData>
  <publishProfile profileName="contoso - Web Deploy" publishMethod="MSDeploy" originalsitename="contoso"
    publishUrl="contoso.scm.azurewebsites.net:443" msdeploySite="contoso" userName="$contoso" userPWD="s3cret"
    SQLServerDBConnectionString="Server=sqlhost;Database=appdb;User ID=deploy;Password=p4ss"
    mySQLDBConnectionString="Database=wp;Data Source=mysql.example.com;User Id=wpuser;Password=wp4ss"
    webSystem="WebSites">
    <databases>
      <add name="DefaultConnection" providerName="System.Data.SqlClient" targetServerVersion="11.0"/>
    </databases>
  </publishProfile>
  <publishProfile publishMethod="FTP" originalsitename="contoso" publishUrl="ftp://contoso"/>
  <publishProfile publishMethod="MSDeploy" originalsitename="fabrikam" publishUrl="fabrikam.com"
    msdeploySite="fabrikam" userName="fab" userPWD="pw" agentType="MSDepSvc" useNTLM="false"/>
</publishData>`

const testFile = "/work/sites.PublishSettings"

func writePublishSettings(t *testing.T, fs afero.Fs) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, testFile, []byte(testPublishSettings), 0o600))
}

func TestPublishSettingsSites(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	stdout, _, err := executeRootCmd(t, "publish-settings", "sites", "--file", testFile, "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "contoso")
	assert.Contains(t, stdout, "fabrikam")

	stdout, _, err = executeRootCmd(t, "publish-settings", "sites", "--file", testFile, "-o", "json")
	require.NoError(t, err)
	var sites []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &sites))
	assert.Equal(t, []string{"contoso", "fabrikam"}, sites)
}

func TestPublishSettingsShow_JSON(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	stdout, _, err := executeRootCmd(t, "publish-settings", "show", "--file", testFile, "--site", "contoso", "-o", "json")
	require.NoError(t, err)

	var view settingsView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "https://contoso.scm.azurewebsites.net:443/msdeploy.axd?site=contoso", view.ComputerName)
	assert.Equal(t, "basic", view.AuthenticationType)
	assert.Equal(t, "None", view.AgentType)
	assert.Equal(t, "****", view.Password)
	assert.Nil(t, view.UseNTLM)
	assert.Equal(t, "Server=sqlhost;Database=appdb;User ID=deploy;Password=****", view.SQLConnectionString)
	assert.Equal(t, "wpuser@tcp(mysql.example.com:3306)/wp", view.MySQLDSN)
	require.Len(t, view.Databases, 1)
	assert.Equal(t, "sqlserver", view.Databases[0].Kind)
	assert.Equal(t, "webSystem", view.OtherAttributes[len(view.OtherAttributes)-1].Name)
}

func TestPublishSettingsShow_TableWithPassword(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	stdout, _, err := executeRootCmd(t, "ps", "show", "-f", testFile, "--site", "fabrikam", "--show-password", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MSDeploy settings for fabrikam")
	assert.Contains(t, stdout, "fabrikam.com")
	assert.Contains(t, stdout, "MSDepSvc")
	assert.Contains(t, stdout, "pw")
	assert.Contains(t, stdout, "basic")
}

func TestPublishSettingsShow_SiteRequiredWhenAmbiguous(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	_, _, err := executeRootCmd(t, "publish-settings", "show", "--file", testFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--site is required")
}

func TestPublishSettingsShow_UnknownSite(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	_, _, err := executeRootCmd(t, "publish-settings", "show", "--file", testFile, "--site", "Contoso")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not find MSDeploy publish settings")
}

func TestPublishSettingsShow_UnreadableFile(t *testing.T) {
	useMemFs(t)

	_, _, err := executeRootCmd(t, "publish-settings", "show", "--file", "/work/missing.PublishSettings", "--site", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid publish settings document")
	assert.Contains(t, err.Error(), "/work/missing.PublishSettings")
}

func TestPublishSettingsImport_DryRun(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	stdout, _, err := executeRootCmd(t, "publish-settings", "import", "--file", testFile, "--dry_run", "--prefix", "prod")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Discovered: 2 sites")
	assert.Contains(t, stdout, "prod_contoso")
	assert.Contains(t, stdout, "prod_fabrikam")

	stdout, _, err = executeRootCmd(t, "targets", "ls", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(stdout))
}

func TestPublishSettingsImport_InvalidConflictStrategy(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	_, _, err := executeRootCmd(t, "publish-settings", "import", "--file", testFile, "--on_conflict", "invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid on_conflict value")
}

func TestPublishSettingsImport_ThenTargets(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	stdout, _, err := executeRootCmd(t, "publish-settings", "import", "--file", testFile, "--site", "contoso")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created: 1 targets")

	stdout, _, err = executeRootCmd(t, "targets", "ls", "-o", "json")
	require.NoError(t, err)
	var rows []targetRow
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "contoso", rows[0].Name)
	assert.Equal(t, "basic", rows[0].AuthType)
	assert.True(t, rows[0].Credentials)
	assert.Equal(t, 1, rows[0].Databases)

	stdout, _, err = executeRootCmd(t, "publish-settings", "import", "--file", testFile, "--site", "contoso")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Skipped: 1")

	_, _, err = executeRootCmd(t, "targets", "rm", "contoso")
	require.NoError(t, err)

	_, _, err = executeRootCmd(t, "targets", "rm", "contoso")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target not found")
}

func TestPublishSettingsImport_AllSitesMissing(t *testing.T) {
	writePublishSettings(t, useMemFs(t))

	stdout, _, err := executeRootCmd(t, "publish-settings", "import", "--file", testFile, "--site", "nope")
	require.Error(t, err)
	assert.Contains(t, stdout, "nope: Could not find MSDeploy publish settings")
}
