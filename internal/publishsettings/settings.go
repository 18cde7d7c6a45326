package publishsettings

import (
	"sync/atomic"

	"github.com/go-sql-driver/mysql"
)

// Settings is the MSDeploy publish profile of one site. It is read-only once extracted;
// the derived ComputerName and AuthenticationType are computed on first use and cached.
type Settings struct {
	publishURLRaw         string
	siteName              string
	username              string
	password              string
	destinationAppURL     string
	agentType             RemoteAgent
	sqlConnectionString   SQLConnectionString
	mysqlConnectionString string
	allowUntrusted        bool
	useNTLM               *bool
	otherAttributes       Attributes
	databases             Databases

	computerName       atomic.Pointer[string]
	authenticationType atomic.Pointer[string]
}

// PublishURLRaw returns the publishUrl attribute as declared.
func (s *Settings) PublishURLRaw() string { return s.publishURLRaw }

// SiteName returns the msdeploySite attribute.
func (s *Settings) SiteName() string { return s.siteName }

func (s *Settings) Username() string          { return s.username }
func (s *Settings) Password() string          { return s.password }
func (s *Settings) DestinationAppURL() string { return s.destinationAppURL }
func (s *Settings) AgentType() RemoteAgent    { return s.agentType }
func (s *Settings) AllowUntrusted() bool      { return s.allowUntrusted }

// SQLConnectionString returns the parsed SQLServerDBConnectionString attribute.
func (s *Settings) SQLConnectionString() SQLConnectionString { return s.sqlConnectionString }

// MySQLConnectionString returns the mySQLDBConnectionString attribute verbatim.
func (s *Settings) MySQLConnectionString() string { return s.mysqlConnectionString }

// MySQLConfig converts the MySQL connection string into a go-sql-driver config.
// It returns nil when the profile has no MySQL connection string.
func (s *Settings) MySQLConfig() (*mysql.Config, error) {
	return mysqlConfigFromConnectionString(s.mysqlConnectionString)
}

// UseNTLM returns the useNTLM attribute and whether it was set.
func (s *Settings) UseNTLM() (value bool, ok bool) {
	if s.useNTLM == nil {
		return false, false
	}
	return *s.useNTLM, true
}

// OtherAttributes returns every attribute that has no dedicated field.
func (s *Settings) OtherAttributes() Attributes {
	out := make(Attributes, len(s.otherAttributes))
	copy(out, s.otherAttributes)
	return out
}

func (s *Settings) Databases() Databases { return s.databases }

// ComputerName returns the management URL derived from the publish URL, or "" when
// the profile has no publish URL.
func (s *Settings) ComputerName() string {
	if v := s.computerName.Load(); v != nil {
		return *v
	}
	if s.publishURLRaw == "" {
		return ""
	}
	name := ComputerName(s.publishURLRaw, s.siteName, s.agentType)
	s.computerName.Store(&name)
	return name
}

// AuthenticationType returns "ntlm" or "basic".
func (s *Settings) AuthenticationType() string {
	if v := s.authenticationType.Load(); v != nil {
		return *v
	}
	auth := AuthenticationType(s.useNTLM, s.agentType)
	s.authenticationType.Store(&auth)
	return auth
}
