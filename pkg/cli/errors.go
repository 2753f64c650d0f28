package cli

import (
	"errors"
	"fmt"

	"sheetport-hq/sheetport/pkg/export"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ConfigError reports an unusable configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Message
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError wraps the failure of a command.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps err to a process exit code. Configuration problems and
// rejected input exit with ExitUsage.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		cfgErr  *ConfigError
		valErr  *export.ValidationError
		fmtErr  *export.UnsupportedFormatError
		typeErr *export.ConfigurationError
	)
	if errors.As(err, &cfgErr) || errors.As(err, &valErr) ||
		errors.As(err, &fmtErr) || errors.As(err, &typeErr) {
		return ExitUsage
	}
	return ExitFailure
}
