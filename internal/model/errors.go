package model

import "fmt"

// ConstructionError reports a field that failed its format or range check
// at entity construction or mutation time. It is never recoverable: the
// caller must supply corrected input.
type ConstructionError struct {
	Entity  string
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ConstructionError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s.%s: %s (value=%v, rule=%s)", e.Entity, e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("%s.%s: %s (rule=%s)", e.Entity, e.Field, e.Message, e.Rule)
}

// NewConstructionError creates a new construction error
func NewConstructionError(entity, field string, value interface{}, rule, message string) *ConstructionError {
	return &ConstructionError{
		Entity:  entity,
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// ImportError reports unrecoverable missing or malformed required data
// found during a strict import. No partial aggregate accompanies it.
type ImportError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import failed on %s: %s (%v)", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("import failed on %s: %s", e.Field, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// NewImportError creates a new import error
func NewImportError(field, message string, cause error) *ImportError {
	return &ImportError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
