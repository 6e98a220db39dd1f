package manifest

import (
	"errors"
	"fmt"

	"github.com/slimboyfat/cargometa/internal/toml"
)

// Sentinel errors for the manifest package
var (
	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")
)

// MissingFieldError indicates a required field is absent from the manifest.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("manifest: missing required field %q", e.Field)
}

// NewMissingFieldError creates a new MissingFieldError
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// WrongTypeError indicates a recognized field holds a value of the wrong
// type. Absent optional fields are fine; present ones must be well-typed.
type WrongTypeError struct {
	Path     string
	Expected toml.Kind
	Found    toml.Kind
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("manifest: %s: expected %s, found %s", e.Path, e.Expected, e.Found)
}

// NewWrongTypeError creates a new WrongTypeError
func NewWrongTypeError(path string, expected, found toml.Kind) *WrongTypeError {
	return &WrongTypeError{Path: path, Expected: expected, Found: found}
}
