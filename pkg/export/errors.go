package export

import "fmt"

// ConfigurationError reports a type that cannot be exported: it is unknown
// to the registry or lacks the exportable marker.
type ConfigurationError struct {
	Type   string // Requested type name
	Reason string // Why the type is rejected
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error [type=%s]: %s", e.Type, e.Reason)
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(typeName, reason string) *ConfigurationError {
	return &ConfigurationError{
		Type:   typeName,
		Reason: reason,
	}
}

// UnsupportedFormatError reports a format token outside SupportedFormats.
type UnsupportedFormatError struct {
	Format string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %q (supported: xlsx, csv)", e.Format)
}

// NewUnsupportedFormatError creates a new UnsupportedFormatError.
func NewUnsupportedFormatError(format string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format}
}

// IOError represents a filesystem failure while producing an artifact.
type IOError struct {
	Op    string // Operation that failed ("mkdir", "probe", "save", "zip", etc.)
	Path  string // Path involved
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("io error [op=%s, path=%s]: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, cause error) *IOError {
	return &IOError{
		Op:    op,
		Path:  path,
		Cause: cause,
	}
}

// ResolutionError reports that a relation's target type or sub-fields could
// not be determined. It is recovered locally by exporting the raw value.
type ResolutionError struct {
	Type   string
	Member string
	Cause  error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution error [type=%s, member=%s]: %v", e.Type, e.Member, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// NewResolutionError creates a new ResolutionError.
func NewResolutionError(typeName, member string, cause error) *ResolutionError {
	return &ResolutionError{
		Type:   typeName,
		Member: member,
		Cause:  cause,
	}
}

// ValidationError reports invalid caller input or invalid export metadata.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [field=%s]: %s", e.Field, e.Reason)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: reason,
	}
}
