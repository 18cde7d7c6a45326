package publishsettings

import (
	"fmt"
	"strings"
)

// settingsBuilder collects fields during the attribute scan of a profile element.
// build hands out the finished Settings, so no partially filled value escapes Extract.
type settingsBuilder struct {
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
}

func newSettingsBuilder() *settingsBuilder {
	return &settingsBuilder{agentType: None}
}

// setAttribute routes one profile attribute to its field. Names compare case-insensitively.
func (b *settingsBuilder) setAttribute(name, value string) error {
	switch strings.ToLower(name) {
	case "publishurl":
		b.publishURLRaw = value
	case "msdeploysite":
		b.siteName = value
	case "username":
		b.username = value
	case "userpwd":
		b.password = value
	case "destinationappurl":
		b.destinationAppURL = value
	case "agenttype":
		agent, err := ParseRemoteAgent(value)
		if err != nil {
			return err
		}
		b.agentType = agent
	case "sqlserverdbconnectionstring":
		if value == "" {
			return nil
		}
		conn, err := ParseSQLConnectionString(value)
		if err != nil {
			return err
		}
		b.sqlConnectionString = conn
	case "mysqldbconnectionstring":
		b.mysqlConnectionString = value
	case "msdeployallowuntrustedcertificate":
		b.allowUntrusted = strings.EqualFold(value, "true")
	case "usentlm":
		// Left unset when empty; the agent type decides the default later.
		if value == "" {
			return nil
		}
		useNTLM, err := parseBool(value)
		if err != nil {
			return err
		}
		b.useNTLM = &useNTLM
	case "publishmethod":
		// consumed by the profile lookup
	default:
		b.otherAttributes.add(name, value)
	}
	return nil
}

func (b *settingsBuilder) addDatabase(db Database) error {
	return b.databases.add(db)
}

func (b *settingsBuilder) build() *Settings {
	return &Settings{
		publishURLRaw:         b.publishURLRaw,
		siteName:              b.siteName,
		username:              b.username,
		password:              b.password,
		destinationAppURL:     b.destinationAppURL,
		agentType:             b.agentType,
		sqlConnectionString:   b.sqlConnectionString,
		mysqlConnectionString: b.mysqlConnectionString,
		allowUntrusted:        b.allowUntrusted,
		useNTLM:               b.useNTLM,
		otherAttributes:       b.otherAttributes,
		databases:             b.databases,
	}
}

// parseBool accepts "true" and "false" in any case, surrounded by optional spaces.
func parseBool(value string) (bool, error) {
	v := strings.TrimSpace(value)
	switch {
	case strings.EqualFold(v, "true"):
		return true, nil
	case strings.EqualFold(v, "false"):
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidUseNTLM, value)
}
