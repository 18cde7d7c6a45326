package publishsettings

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// Database is one databases/add entry of a publish profile.
type Database struct {
	Name                     string `json:"name"`
	ConnectionString         string `json:"connection_string"`
	ProviderName             string `json:"provider_name"`
	Type                     string `json:"type"`
	TargetDatabaseEngineType string `json:"target_database_engine_type"`
	TargetServerVersion      string `json:"target_server_version"`
}

// ServerVersion parses TargetServerVersion. An empty value yields a nil version.
func (d Database) ServerVersion() (*version.Version, error) {
	if strings.TrimSpace(d.TargetServerVersion) == "" {
		return nil, nil
	}
	v, err := version.NewVersion(d.TargetServerVersion)
	if err != nil {
		return nil, fmt.Errorf("database %s: invalid target server version: %w", d.Name, err)
	}
	return v, nil
}

// Databases is a collection of Database entries keyed by name, case-insensitively.
type Databases struct {
	order []string
	byKey map[string]Database
}

// Get looks up a database by name, ignoring case.
func (d Databases) Get(name string) (Database, bool) {
	if d.byKey == nil {
		return Database{}, false
	}
	db, ok := d.byKey[strings.ToLower(name)]
	return db, ok
}

// Names returns the database names in the order they were declared.
func (d Databases) Names() []string {
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// All returns the databases in declaration order.
func (d Databases) All() []Database {
	all := make([]Database, 0, len(d.order))
	for _, name := range d.order {
		all = append(all, d.byKey[strings.ToLower(name)])
	}
	return all
}

// Len returns the number of databases.
func (d Databases) Len() int {
	return len(d.order)
}

func (d *Databases) add(db Database) error {
	if db.Name == "" {
		return fmt.Errorf("database 'add' element must contain a 'name' attribute: %w", ErrMissingOrDuplicateDatabaseName)
	}
	key := strings.ToLower(db.Name)
	if d.byKey == nil {
		d.byKey = make(map[string]Database)
	}
	if existing, ok := d.byKey[key]; ok {
		return fmt.Errorf("database %q conflicts with %q: %w", db.Name, existing.Name, ErrMissingOrDuplicateDatabaseName)
	}
	d.byKey[key] = db
	d.order = append(d.order, db.Name)
	return nil
}
