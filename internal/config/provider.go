package config

import "strings"

// NormalizeProvider maps an ADO.NET provider invariant name, or a publish profile
// database type, to a short database kind.
func NormalizeProvider(provider string) string {
	v := strings.ToLower(strings.TrimSpace(provider))
	switch v {
	case "system.data.sqlclient", "microsoft.data.sqlclient", "sql", "sqlserver", "mssql":
		return "sqlserver"
	case "mysql.data.mysqlclient", "mysqlconnector", "mysql":
		return "mysql"
	case "system.data.sqlserverce.4.0", "sqlce":
		return "sqlce"
	case "system.data.sqlite", "microsoft.data.sqlite", "sqlite":
		return "sqlite"
	case "npgsql", "postgresql", "postgres", "pg":
		return "postgres"
	default:
		return v
	}
}

// DatabaseKind picks the kind from the provider name, falling back to the declared type.
func DatabaseKind(providerName, typ string) string {
	if kind := NormalizeProvider(providerName); kind != "" {
		return kind
	}
	return NormalizeProvider(typ)
}
