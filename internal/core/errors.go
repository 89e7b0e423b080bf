package core

import "fmt"

// ConfigurationError reports an instance definition that violates the domain
// rules: malformed topology, dangling references, or an initial state that
// breaks an invariant. It is always raised before any planner contact.
type ConfigurationError struct {
	Field  string // which part of the configuration is at fault
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// ConfigErrorf builds a ConfigurationError with a formatted reason.
func ConfigErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// EncodingError reports an entity attribute outside its fixed enumeration,
// e.g. a 3 t container in a 2/4/6 t world. Raised at registry construction.
type EncodingError struct {
	Entity string
	Attr   string
	Value  int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding: %s: %s %d is not in the supported enumeration", e.Entity, e.Attr, e.Value)
}
