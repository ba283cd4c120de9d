// Package autoerr defines the error kinds produced by the automaton core.
package autoerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds, mirroring the vasim_err_t enum the core is rewritten
// from: file-open-failed, element-not-found, element-not-supported,
// malformed-automaton, hardware-constraint-violated.
var (
	ErrFileOpen                  = errors.New("file open failed")
	ErrElementNotFound            = errors.New("element not found")
	ErrElementNotSupported        = errors.New("element not supported")
	ErrMalformedAutomaton         = errors.New("malformed automaton")
	ErrHardwareConstraintViolated = errors.New("hardware constraint violated")
)

// Wrap attaches context to a sentinel so callers can still errors.Is it.
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// NotFound reports that the referenced element id has no element.
func NotFound(id string) error {
	return Wrap(ErrElementNotFound, "no element with id %q", id)
}

// NotSupported reports an element kind outside the known variants.
func NotSupported(what string) error {
	return Wrap(ErrElementNotSupported, "%s", what)
}

// Malformed reports a structural inconsistency caught by the validator
// or the symbol-set compiler.
func Malformed(format string, args ...interface{}) error {
	return Wrap(ErrMalformedAutomaton, format, args...)
}

// HardwareLimit reports an exporter-specific hardware constraint
// violation (e.g. BLIF fan-in).
func HardwareLimit(format string, args ...interface{}) error {
	return Wrap(ErrHardwareConstraintViolated, format, args...)
}
