package config

import (
	"net/url"
	"strings"
)

var secretKeys = map[string]bool{
	"password": true,
	"pwd":      true,
	"userpwd":  true,
}

// MaskConnectionString replaces password values of an ADO.NET connection string with ****.
func MaskConnectionString(raw string) string {
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, ";")
	for i, part := range parts {
		eq := strings.Index(part, "=")
		if eq == -1 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(part[:eq]))
		if secretKeys[key] {
			parts[i] = part[:eq+1] + "****"
		}
	}
	return strings.Join(parts, ";")
}

// MaskDsn removes the password from a URL style DSN for safe display.
func MaskDsn(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err == nil && u.Host != "" && !strings.Contains(u.User.String(), "#") {
		if u.User != nil {
			u.User = url.User(u.User.Username())
		}
		return u.String()
	}

	// go-sql-driver DSNs (user:pass@tcp(host:port)/db) and passwords with '#'
	// do not parse as URLs; cut the password between the first ':' and the last '@'.
	at := strings.LastIndex(raw, "@")
	if at == -1 {
		return raw
	}
	prefix, suffix := raw[:at], raw[at+1:]

	scheme := ""
	if i := strings.Index(prefix, "://"); i != -1 {
		scheme, prefix = prefix[:i+3], prefix[i+3:]
	}
	if colon := strings.Index(prefix, ":"); colon != -1 {
		prefix = prefix[:colon]
	}
	return scheme + prefix + "@" + suffix
}
