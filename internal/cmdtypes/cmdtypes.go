// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	oerrors "github.com/modpack/cli/internal/errors"
)

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess      = oerrors.ExitSuccess
	ExitGeneralError = oerrors.ExitGeneralError
)

// ExitError is a type alias to internal/errors.ExitError so command packages
// share one concrete type with main.
type ExitError = oerrors.ExitError

// Fail wraps err in an ExitError with the general failure code.
func Fail(err error) *ExitError {
	return &ExitError{Code: ExitGeneralError, Err: err}
}

// Reported wraps err in an ExitError that main does not print again.
func Reported(err error) *ExitError {
	return &ExitError{Code: ExitGeneralError, Err: err, Printed: true}
}

// AnnotationConfigOptional marks commands that still run when the
// configuration cannot be loaded or does not validate.
const AnnotationConfigOptional = "modpack/config-optional"

// ConfigOptional returns the annotations for a config-optional command.
func ConfigOptional() map[string]string {
	return map[string]string{AnnotationConfigOptional: "true"}
}
