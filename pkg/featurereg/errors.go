package featurereg

import (
	"errors"
	"fmt"
)

// Sentinel errors. These are the only failure kinds the core defines;
// both are deterministic and never worth retrying.
var (
	// ErrNotFound indicates a key has no current latest version:
	// either it was never registered, or every registration has been
	// deprecated. Only a new Register call clears the condition.
	ErrNotFound = errors.New("feature not found")

	// ErrTypeMismatch indicates a computed value's runtime type tag
	// does not match the contract's declared value type. It signals a
	// defect in the feature implementation or the upstream data.
	ErrTypeMismatch = errors.New("value type mismatch")
)

// NotFoundError reports which key had no latest version.
type NotFoundError struct {
	// Key is the identity that failed to resolve.
	Key Key
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("feature %s not found", e.Key)
}

// Unwrap returns ErrNotFound for errors.Is support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// TypeMismatchError reports a validation failure with the feature name
// and both type tags.
type TypeMismatchError struct {
	// Feature is the name of the feature whose value failed validation.
	Feature string
	// Want is the contract's declared value type.
	Want ValueType
	// Got is the tag of the computed value (TypeUnknown if the value is
	// outside the supported set).
	Got ValueType
	// GoType is the Go type of the computed value, for diagnostics.
	GoType string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Got == TypeUnknown {
		return fmt.Sprintf("feature %q expected value of type %s, got unsupported %s", e.Feature, e.Want, e.GoType)
	}
	return fmt.Sprintf("feature %q expected value of type %s, got %s", e.Feature, e.Want, e.Got)
}

// Unwrap returns ErrTypeMismatch for errors.Is support.
func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
