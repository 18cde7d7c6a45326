package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const targetsVersion = 1

// ErrTargetExists is returned by AddTarget under ConflictFail when the name is taken.
var ErrTargetExists = errors.New("target already exists")

// Targets represents the targets.json structure
type Targets struct {
	Version int               `json:"version"`
	Targets map[string]Target `json:"targets"`
}

// Target is a deployment destination imported from a publish settings file.
// Passwords live in the credential store under ID, never here.
type Target struct {
	ID                string           `json:"id"`
	SiteName          string           `json:"site_name"`
	ComputerName      string           `json:"computer_name"`
	Username          string           `json:"username"`
	AuthType          string           `json:"auth_type"`
	AgentType         string           `json:"agent_type"`
	AllowUntrusted    bool             `json:"allow_untrusted"`
	DestinationAppURL string           `json:"destination_app_url,omitempty"`
	Databases         []TargetDatabase `json:"databases,omitempty"`
	Source            Source           `json:"source"`
}

// TargetDatabase is a database declared by the publish profile.
type TargetDatabase struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Provider      string `json:"provider"`
	EngineType    string `json:"engine_type,omitempty"`
	ServerVersion string `json:"server_version,omitempty"`
}

// Source represents the provenance of a target
type Source struct {
	Kind             string `json:"kind"`
	File             string `json:"file"`
	OriginalSiteName string `json:"original_site_name"`
}

// ConflictStrategy defines how to handle target name conflicts
type ConflictStrategy string

const (
	ConflictFail      ConflictStrategy = "fail"
	ConflictSkip      ConflictStrategy = "skip"
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ParseConflictStrategy validates an on_conflict flag value.
func ParseConflictStrategy(s string) (ConflictStrategy, bool) {
	strategy := ConflictStrategy(s)
	switch strategy {
	case ConflictFail, ConflictSkip, ConflictOverwrite:
		return strategy, true
	}
	return "", false
}

func targetsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "targets.json"), nil
}

// LoadTargets loads targets from ~/.azmigrate/targets.json
func LoadTargets() (*Targets, error) {
	path, err := targetsPath()
	if err != nil {
		return nil, err
	}

	data, err := readFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Targets{Version: targetsVersion, Targets: make(map[string]Target)}, nil
		}
		return nil, err
	}

	var targets Targets
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, err
	}
	if targets.Targets == nil {
		targets.Targets = make(map[string]Target)
	}
	if targets.Version == 0 {
		targets.Version = targetsVersion
	}
	return &targets, nil
}

// SaveTargets writes targets atomically.
func SaveTargets(targets *Targets) error {
	path, err := targetsPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(targets, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0600)
}

// GetTarget retrieves a target by name. A missing target yields nil, nil.
func GetTarget(name string) (*Target, error) {
	targets, err := LoadTargets()
	if err != nil {
		return nil, err
	}

	target, exists := targets.Targets[name]
	if !exists {
		return nil, nil
	}
	return &target, nil
}

// AddOutcome reports what AddTarget did with a target.
type AddOutcome int

const (
	TargetCreated AddOutcome = iota
	TargetSkipped
	TargetOverwritten
)

// AddTarget stores target under name. An existing name is skipped, overwritten or
// rejected with ErrTargetExists depending on strategy.
func AddTarget(name string, target *Target, strategy ConflictStrategy) (AddOutcome, error) {
	targets, err := LoadTargets()
	if err != nil {
		return TargetSkipped, err
	}

	outcome := TargetCreated
	if _, exists := targets.Targets[name]; exists {
		switch strategy {
		case ConflictOverwrite:
			outcome = TargetOverwritten
		case ConflictSkip:
			return TargetSkipped, nil
		default:
			return TargetSkipped, ErrTargetExists
		}
	}

	targets.Targets[name] = *target
	return outcome, SaveTargets(targets)
}

func readFile(path string) ([]byte, error) {
	return afero.ReadFile(AppFs, path)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := afero.WriteFile(AppFs, tmp, data, perm); err != nil {
		return err
	}
	_ = AppFs.Remove(path)
	return AppFs.Rename(tmp, path)
}

// RemoveTarget deletes a target and returns it, or nil when no target has that name.
func RemoveTarget(name string) (*Target, error) {
	targets, err := LoadTargets()
	if err != nil {
		return nil, err
	}

	target, exists := targets.Targets[name]
	if !exists {
		return nil, nil
	}
	delete(targets.Targets, name)
	return &target, SaveTargets(targets)
}
