package importer

import "github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"

// ImportResult represents the result of an import operation
type ImportResult struct {
	Discovered  int
	Created     int
	Skipped     int
	Overwritten int
	Planned     []PlannedTarget
	Errors      []ImportError
}

// ImportError represents an error for one site during import
type ImportError struct {
	SiteName string
	Message  string
}

// PlannedTarget is a target that was (or, in dry run mode, would be) stored.
type PlannedTarget struct {
	Name   string
	Target config.Target
}

// Options controls ImportSites.
type Options struct {
	File            string
	Sites           []string
	Prefix          string
	Strategy        config.ConflictStrategy
	DryRun          bool
	SkipCredentials bool
}
