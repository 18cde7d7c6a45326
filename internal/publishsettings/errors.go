package publishsettings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDocumentUnreadable is returned when the input cannot be parsed into an XML tree.
	ErrDocumentUnreadable = errors.New("invalid publish settings document")

	// ErrInvalidAgentType is returned when agentType is not a known remote agent.
	ErrInvalidAgentType = errors.New("invalid agent type")

	// ErrMissingOrDuplicateDatabaseName is returned for a databases/add entry without a
	// name or with a name that already exists (case-insensitive).
	ErrMissingOrDuplicateDatabaseName = errors.New("missing or duplicate database name")

	// ErrInvalidUseNTLM is returned when useNTLM is neither true nor false.
	ErrInvalidUseNTLM = errors.New("invalid useNTLM value")

	// ErrInvalidConnectionString is returned when SQLServerDBConnectionString cannot be parsed.
	ErrInvalidConnectionString = errors.New("invalid SQL Server connection string")
)

// notFoundMessage is reported through Result.ParseErrors when no MSDeploy profile matched.
const notFoundMessage = "Could not find MSDeploy publish settings"

// InvalidAgentTypeError carries the rejected value and the accepted agent names.
type InvalidAgentTypeError struct {
	Value string
	Valid []string
}

func (e *InvalidAgentTypeError) Error() string {
	return fmt.Sprintf("invalid agent type %q. Valid options are '%s'", e.Value, strings.Join(e.Valid, ", "))
}

func (e *InvalidAgentTypeError) Unwrap() error {
	return ErrInvalidAgentType
}
