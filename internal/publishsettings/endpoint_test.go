package publishsettings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputerName(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		site  string
		agent RemoteAgent
		want  string
	}{
		{"bare host wmsvc", "foo.com", "mysite", WMSvc, "https://foo.com:8172/msdeploy.axd?site=mysite"},
		{"bare host none", "foo.com", "mysite", None, "https://foo.com:8172/msdeploy.axd?site=mysite"},
		{"port and handler present", "foo.com:443/MSDeploy/msdeploy.axd", "mysite", None, "https://foo.com:443/MSDeploy/msdeploy.axd?site=mysite"},
		{"path without port", "foo.com/MSDeploy/msdeploy.axd", "mysite", WMSvc, "https://foo.com:8172/MSDeploy/msdeploy.axd?site=mysite"},
		{"port only", "foo.com:443", "mysite", WMSvc, "https://foo.com:443/msdeploy.axd?site=mysite"},
		{"trailing slash", "foo.com/", "mysite", WMSvc, "https://foo.com:8172/msdeploy.axd?site=mysite"},
		{"handler case", "foo.com:8172/MSDEPLOY.AXD", "", WMSvc, "https://foo.com:8172/MSDEPLOY.AXD"},
		{"no site", "foo.com", "", None, "https://foo.com:8172/msdeploy.axd"},
		{"colon in path", "foo.com/bar:baz", "s", WMSvc, "https://foo.com:8172/bar:baz/msdeploy.axd?site=s"},
		{"https untouched", "https://foo.com/msdeploy.axd", "mysite", WMSvc, "https://foo.com/msdeploy.axd"},
		{"http untouched", "HTTP://foo.com", "mysite", None, "HTTP://foo.com"},
		{"https untouched msdepsvc", "https://foo.com/MsDeployAgentService", "mysite", MSDepSvc, "https://foo.com/MsDeployAgentService"},
		{"msdepsvc raw", "foo.com", "mysite", MSDepSvc, "foo.com"},
		{"tempagent raw", "foo.com", "mysite", TempAgent, "foo.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputerName(tc.raw, tc.site, tc.agent))
		})
	}
}

func TestInsertPortIfNotSpecified(t *testing.T) {
	assert.Equal(t, "foo.com:8172", InsertPortIfNotSpecified("foo.com"))
	assert.Equal(t, "foo.com:8172/a", InsertPortIfNotSpecified("foo.com/a"))
	assert.Equal(t, "foo.com:443/a", InsertPortIfNotSpecified("foo.com:443/a"))
	assert.Equal(t, "foo.com:8172/a:b:c", InsertPortIfNotSpecified("foo.com/a:b:c"))
}

func TestAppendHandlerIfNotSpecified(t *testing.T) {
	assert.Equal(t, "foo.com/msdeploy.axd", AppendHandlerIfNotSpecified("foo.com"))
	assert.Equal(t, "foo.com/msdeploy.axd", AppendHandlerIfNotSpecified("foo.com/"))
	assert.Equal(t, "foo.com/MsDeploy.Axd", AppendHandlerIfNotSpecified("foo.com/MsDeploy.Axd"))
}

func TestAuthenticationType(t *testing.T) {
	yes, no := true, false
	agents := []RemoteAgent{WMSvc, MSDepSvc, TempAgent, None}

	for _, agent := range agents {
		t.Run(agent.String(), func(t *testing.T) {
			assert.Equal(t, AuthNTLM, AuthenticationType(&yes, agent))
			assert.Equal(t, AuthBasic, AuthenticationType(&no, agent))
		})
	}

	assert.Equal(t, AuthBasic, AuthenticationType(nil, WMSvc))
	assert.Equal(t, AuthBasic, AuthenticationType(nil, None))
	assert.Equal(t, AuthNTLM, AuthenticationType(nil, MSDepSvc))
	assert.Equal(t, AuthNTLM, AuthenticationType(nil, TempAgent))
}
