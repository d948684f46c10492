// Package geoerr defines the structured error type and error kinds shared
// by every package in the borehole toolkit.
//
// It is a leaf package with no dependencies on the rest of the module so
// that the data model, the unmarshalling layer and the metadata registries
// can all report errors through the same taxonomy without import cycles.
package geoerr

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common toolkit error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrDomainNotFound indicates the requested domain was not found on the
	// borehole it was looked up against.
	ErrDomainNotFound = errors.New("domain not found")

	// ErrPropertyNotFound indicates the requested property was not found on
	// the domain it was looked up against.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrRecordNotFound indicates the requested metadata record was not
	// found in the registry.
	ErrRecordNotFound = errors.New("metadata record not found")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedConversion indicates a domain conversion was requested
	// with a method the toolkit does not implement.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrUnknownElement indicates an XML element reached the unmarshalling
	// dispatch table without a registered handler.
	ErrUnknownElement = errors.New("no unmarshaller registered for element")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors raised while validating domain data,
	// such as non-monotonic depth arrays or misaligned property lengths.
	KindValidation = "validation"

	// KindConversion represents errors raised while deriving one domain
	// representation from another.
	KindConversion = "conversion"

	// KindUnknownElement represents dispatch failures for XML elements with
	// no registered unmarshaller.
	KindUnknownElement = "unknown_element"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindQuery represents errors raised while compiling or evaluating a
	// selection expression or an XPath query.
	KindQuery = "query"

	// KindInternal represents internal toolkit errors.
	KindInternal = "internal"
)

// Error is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &geoerr.Error{
//		Op:   "IntervalDomain.ToSampling",
//		Kind: geoerr.KindConversion,
//		Err:  geoerr.ErrUnsupportedConversion,
//	}
type Error struct {
	// Op is the operation that failed (e.g., "NewIntervalDomain", "Registry.Lookup").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindValidation).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include offending indices, depth values, element tags, or
	// other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("borehole: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("borehole: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("borehole: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on
// the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an Error with matching Kind
	if t, ok := target.(*Error); ok {
		// Match if both Op and Kind are the same, or if Kind matches and Op is empty in target
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context added.
// This is useful for adding debugging information to errors.
//
// Example:
//
//	err := geoerr.NewValidationError("NewIntervalDomain", errBoundariesOverlap)
//	err = err.WithContext(map[string]any{
//		"index":      4,
//		"to_depth":   10.5,
//		"from_depth": 10.2,
//	})
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// IsKind reports whether err is, or wraps, an Error of the given kind.
func IsKind(err error, kind string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// NewNotFoundError creates a new Error with KindNotFound.
func NewNotFoundError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewValidationError creates a new Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewConversionError creates a new Error with KindConversion.
func NewConversionError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConversion,
		Err:  err,
	}
}

// NewUnknownElementError creates a new Error with KindUnknownElement.
func NewUnknownElementError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindUnknownElement,
		Err:  err,
	}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewQueryError creates a new Error with KindQuery.
func NewQueryError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindQuery,
		Err:  err,
	}
}

// NewInternalError creates a new Error with KindInternal.
func NewInternalError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g., "file",
// "redis registry", "etcd client"). If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer geoerr.CloseWithLog(file, logger, "LAS file")
//	defer geoerr.CloseWithLog(reg, logger, "metadata registry")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
