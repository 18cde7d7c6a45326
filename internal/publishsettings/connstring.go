package publishsettings

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/microsoft/go-mssqldb/msdsn"
)

const defaultMySQLPort = 3306

// SQLConnectionString holds a SQL Server connection string together with its parsed form.
// The zero value represents an absent connection string.
type SQLConnectionString struct {
	raw    string
	config msdsn.Config
}

// ParseSQLConnectionString parses an ADO.NET style SQL Server connection string.
// An empty string yields the zero value.
func ParseSQLConnectionString(raw string) (SQLConnectionString, error) {
	if raw == "" {
		return SQLConnectionString{}, nil
	}
	cfg, err := parseConnectionString(raw)
	if err != nil {
		return SQLConnectionString{}, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	return SQLConnectionString{raw: raw, config: cfg}, nil
}

// IsZero reports whether no connection string was assigned.
func (c SQLConnectionString) IsZero() bool {
	return c.raw == ""
}

// Raw returns the connection string as declared in the profile.
func (c SQLConnectionString) Raw() string {
	return c.raw
}

// Config returns the parsed connection settings.
func (c SQLConnectionString) Config() msdsn.Config {
	return c.config
}

// Server returns host and optional instance, e.g. "db.example.com\SQLEXPRESS".
func (c SQLConnectionString) Server() string {
	if c.config.Instance != "" {
		return c.config.Host + `\` + c.config.Instance
	}
	return c.config.Host
}

// Database returns the initial catalog.
func (c SQLConnectionString) Database() string {
	return c.config.Database
}

// User returns the login name.
func (c SQLConnectionString) User() string {
	return c.config.User
}

// mysqlConfigFromConnectionString converts a MySQL Connector/NET connection string
// ("Database=db;Data Source=host;User Id=u;Password=p") into a driver config.
// Both dialects share the ADO.NET keyword syntax, so msdsn does the splitting.
func mysqlConfigFromConnectionString(raw string) (*mysql.Config, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := parseConnectionString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid MySQL connection string: missing data source")
	}

	port := parsed.Port
	if port == 0 {
		port = defaultMySQLPort
	}

	cfg := mysql.NewConfig()
	cfg.User = parsed.User
	cfg.Passwd = parsed.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(parsed.Host, strconv.FormatUint(port, 10))
	cfg.DBName = parsed.Database
	return cfg, nil
}

// parseConnectionString runs msdsn.Parse on raw after checking that every segment is a
// keyword=value pair. msdsn accepts bare segments and has no Pwd synonym, so Pwd is
// spelled out as Password first.
func parseConnectionString(raw string) (msdsn.Config, error) {
	segments := strings.Split(raw, ";")
	for i, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		eq := strings.Index(segment, "=")
		if eq == -1 || strings.TrimSpace(segment[:eq]) == "" {
			return msdsn.Config{}, fmt.Errorf("segment %d is not a keyword=value pair", i+1)
		}
		if strings.EqualFold(strings.TrimSpace(segment[:eq]), "pwd") {
			segments[i] = "Password=" + segment[eq+1:]
		}
	}
	return msdsn.Parse(strings.Join(segments, ";"))
}
