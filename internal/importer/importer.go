package importer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/config"
	"github.com/estelle11976/Azure-Websites-Migration-Tool/internal/publishsettings"
)

const sourceKind = "publishsettings"

// ConvertSettings converts an extracted MSDeploy profile into a stored target.
func ConvertSettings(s *publishsettings.Settings, file, originalSiteName string) *config.Target {
	target := &config.Target{
		ID:                uuid.NewString(),
		SiteName:          s.SiteName(),
		ComputerName:      s.ComputerName(),
		Username:          s.Username(),
		AuthType:          s.AuthenticationType(),
		AgentType:         s.AgentType().String(),
		AllowUntrusted:    s.AllowUntrusted(),
		DestinationAppURL: s.DestinationAppURL(),
		Source: config.Source{
			Kind:             sourceKind,
			File:             file,
			OriginalSiteName: originalSiteName,
		},
	}

	for _, db := range s.Databases().All() {
		target.Databases = append(target.Databases, config.TargetDatabase{
			Name:          db.Name,
			Kind:          config.DatabaseKind(db.ProviderName, db.Type),
			Provider:      db.ProviderName,
			EngineType:    db.TargetDatabaseEngineType,
			ServerVersion: db.TargetServerVersion,
		})
	}
	return target
}

// SanitizeTargetName sanitizes a site name for use as a target key
func SanitizeTargetName(name string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, name)
}

// TargetName returns the key a site is stored under.
func TargetName(prefix, site string) string {
	name := SanitizeTargetName(site)
	if prefix != "" {
		name = fmt.Sprintf("%s_%s", prefix, name)
	}
	return name
}

// ImportSites extracts the MSDeploy profile of every requested site and stores it as a
// target. With no sites requested every MSDeploy site in the document is imported.
// A site without a profile, or with an invalid one, is recorded in the result and the
// remaining sites are still imported. Only an unreadable document fails the call.
func ImportSites(data []byte, opts Options) (*ImportResult, error) {
	root, err := publishsettings.ParseDocument(data)
	if err != nil {
		return nil, err
	}

	sites := opts.Sites
	if len(sites) == 0 {
		sites = publishsettings.Sites(root)
	}

	result := &ImportResult{
		Discovered: len(sites),
		Errors:     []ImportError{},
	}

	for _, site := range sites {
		extracted, err := publishsettings.Extract(root, site)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{SiteName: site, Message: err.Error()})
			continue
		}
		if !extracted.Found {
			result.Errors = append(result.Errors, ImportError{
				SiteName: site,
				Message:  strings.Join(extracted.ParseErrors, "; "),
			})
			continue
		}

		name := TargetName(opts.Prefix, site)
		target := ConvertSettings(extracted.Settings, opts.File, site)

		existing, err := config.GetTarget(name)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{
				SiteName: site,
				Message:  fmt.Sprintf("failed to load targets: %v", err),
			})
			continue
		}
		// Overwrite keeps the existing ID; credentials are keyed by it.
		if existing != nil && opts.Strategy == config.ConflictOverwrite {
			target.ID = existing.ID
		}

		if opts.DryRun {
			switch {
			case existing == nil:
				result.Created++
			case opts.Strategy == config.ConflictOverwrite:
				result.Overwritten++
			case opts.Strategy == config.ConflictSkip:
				result.Skipped++
				continue
			default:
				result.Errors = append(result.Errors, ImportError{
					SiteName: site,
					Message:  fmt.Sprintf("failed to save: %v", config.ErrTargetExists),
				})
				continue
			}
			result.Planned = append(result.Planned, PlannedTarget{Name: name, Target: *target})
			continue
		}

		outcome, err := config.AddTarget(name, target, opts.Strategy)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{
				SiteName: site,
				Message:  fmt.Sprintf("failed to save: %v", err),
			})
			continue
		}

		switch outcome {
		case config.TargetSkipped:
			result.Skipped++
			log.Info().Str("target", name).Msg("target exists, skipped")
			continue
		case config.TargetOverwritten:
			result.Overwritten++
		default:
			result.Created++
		}
		result.Planned = append(result.Planned, PlannedTarget{Name: name, Target: *target})

		if !opts.SkipCredentials && extracted.Settings.Password() != "" {
			if err := config.SetCredentials(target.ID, extracted.Settings.Username(), extracted.Settings.Password()); err != nil {
				result.Errors = append(result.Errors, ImportError{
					SiteName: site,
					Message:  fmt.Sprintf("failed to save credentials: %v", err),
				})
			}
		}

		log.Debug().
			Str("target", name).
			Str("computer_name", target.ComputerName).
			Str("auth_type", target.AuthType).
			Msg("imported publish profile")
	}

	return result, nil
}
