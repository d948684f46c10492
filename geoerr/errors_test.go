package geoerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ErrDomainNotFound",
			err:  ErrDomainNotFound,
			want: "domain not found",
		},
		{
			name: "ErrPropertyNotFound",
			err:  ErrPropertyNotFound,
			want: "property not found",
		},
		{
			name: "ErrRecordNotFound",
			err:  ErrRecordNotFound,
			want: "metadata record not found",
		},
		{
			name: "ErrInvalidConfig",
			err:  ErrInvalidConfig,
			want: "invalid configuration",
		},
		{
			name: "ErrUnsupportedConversion",
			err:  ErrUnsupportedConversion,
			want: "unsupported conversion",
		},
		{
			name: "ErrUnknownElement",
			err:  ErrUnknownElement,
			want: "no unmarshaller registered for element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("sentinel error %s is nil", tt.name)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorError verifies the Error() method formatting.
func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "basic error",
			err: &Error{
				Op:   "IntervalDomain.ToSampling",
				Kind: KindConversion,
				Err:  ErrUnsupportedConversion,
			},
			want: "borehole: IntervalDomain.ToSampling (conversion): unsupported conversion",
		},
		{
			name: "error with context",
			err: &Error{
				Op:   "NewIntervalDomain",
				Kind: KindValidation,
				Err:  errors.New("interval boundaries overlap"),
				Context: map[string]any{
					"index": 4,
					"name":  "gamma",
				},
			},
			want: "borehole: NewIntervalDomain (validation): interval boundaries overlap [context:",
		},
		{
			name: "error without underlying error",
			err: &Error{
				Op:   "Property.Validate",
				Kind: KindValidation,
			},
			want: "borehole: Property.Validate: validation",
		},
		{
			name: "error with wrapped error",
			err: &Error{
				Op:   "Config.Load",
				Kind: KindConfiguration,
				Err:  fmt.Errorf("failed to load config: %w", ErrInvalidConfig),
			},
			want: "borehole: Config.Load (configuration): failed to load config: invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

// TestErrorUnwrap verifies the Unwrap() method.
func TestErrorUnwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := &Error{
		Op:   "Registry.Lookup",
		Kind: KindNotFound,
		Err:  underlyingErr,
	}

	unwrapped := err.Unwrap()
	if unwrapped != underlyingErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, underlyingErr)
	}

	// Test with nil underlying error
	errNil := &Error{
		Op:   "Registry.Lookup",
		Kind: KindNotFound,
	}
	if unwrapped := errNil.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() with nil Err = %v, want nil", unwrapped)
	}
}

// TestErrorIs verifies the Is() method and errors.Is() compatibility.
func TestErrorIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name: "matches underlying sentinel error",
			err: &Error{
				Op:   "IntervalDomain.ToSampling",
				Kind: KindConversion,
				Err:  ErrUnsupportedConversion,
			},
			target: ErrUnsupportedConversion,
			want:   true,
		},
		{
			name: "matches wrapped error",
			err: &Error{
				Op:   "Borehole.Domain",
				Kind: KindNotFound,
				Err:  fmt.Errorf("wrapped: %w", ErrDomainNotFound),
			},
			target: ErrDomainNotFound,
			want:   true,
		},
		{
			name: "matches Error by kind",
			err: &Error{
				Op:   "NewIntervalDomain",
				Kind: KindValidation,
				Err:  errors.New("from depths not strictly increasing"),
			},
			target: &Error{Kind: KindValidation},
			want:   true,
		},
		{
			name: "matches Error by kind and op",
			err: &Error{
				Op:   "NewIntervalDomain",
				Kind: KindValidation,
				Err:  errors.New("from depths not strictly increasing"),
			},
			target: &Error{
				Op:   "NewIntervalDomain",
				Kind: KindValidation,
			},
			want: true,
		},
		{
			name: "does not match different kind",
			err: &Error{
				Op:   "NewIntervalDomain",
				Kind: KindValidation,
				Err:  errors.New("from depths not strictly increasing"),
			},
			target: &Error{Kind: KindConversion},
			want:   false,
		},
		{
			name: "does not match different underlying error",
			err: &Error{
				Op:   "Registry.Lookup",
				Kind: KindNotFound,
				Err:  ErrRecordNotFound,
			},
			target: ErrDomainNotFound,
			want:   false,
		},
		{
			name: "does not match nil",
			err: &Error{
				Op:   "Registry.Lookup",
				Kind: KindNotFound,
				Err:  ErrRecordNotFound,
			},
			target: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestErrorAs verifies errors.As() compatibility.
func TestErrorAs(t *testing.T) {
	originalErr := &Error{
		Op:   "Unmarshal",
		Kind: KindUnknownElement,
		Err:  ErrUnknownElement,
		Context: map[string]any{
			"tag": "gsml:lithology",
		},
	}

	wrappedErr := fmt.Errorf("decoding feature collection: %w", originalErr)

	var geoErr *Error
	if !errors.As(wrappedErr, &geoErr) {
		t.Fatal("errors.As() failed to extract Error")
	}

	if geoErr.Op != originalErr.Op {
		t.Errorf("Op = %q, want %q", geoErr.Op, originalErr.Op)
	}
	if geoErr.Kind != originalErr.Kind {
		t.Errorf("Kind = %q, want %q", geoErr.Kind, originalErr.Kind)
	}
	if geoErr.Context["tag"] != "gsml:lithology" {
		t.Errorf("Context[tag] = %v, want gsml:lithology", geoErr.Context["tag"])
	}
}

// TestErrorWithContext verifies the WithContext() method.
func TestErrorWithContext(t *testing.T) {
	original := &Error{
		Op:   "NewIntervalDomain",
		Kind: KindValidation,
		Err:  errors.New("interval length not positive"),
	}

	// Add context
	withCtx := original.WithContext(map[string]any{
		"index":      2,
		"from_depth": 10.5,
	})

	// Verify new error has context
	if withCtx.Context["index"] != 2 {
		t.Errorf("Context[index] = %v, want 2", withCtx.Context["index"])
	}
	if withCtx.Context["from_depth"] != 10.5 {
		t.Errorf("Context[from_depth] = %v, want 10.5", withCtx.Context["from_depth"])
	}

	// Verify original error is unchanged
	if original.Context != nil {
		t.Error("original error Context was modified")
	}

	// Add more context
	withMoreCtx := withCtx.WithContext(map[string]any{
		"to_depth": 10.5,
	})

	// Verify all context is present
	if withMoreCtx.Context["index"] != 2 {
		t.Error("index context was lost")
	}
	if withMoreCtx.Context["to_depth"] != 10.5 {
		t.Error("to_depth context was not added")
	}
}

// TestNewErrorFunctions verifies all the New*Error() constructor functions.
func TestNewErrorFunctions(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(string, error) *Error
		wantKind string
	}{
		{
			name:     "NewNotFoundError",
			fn:       NewNotFoundError,
			wantKind: KindNotFound,
		},
		{
			name:     "NewValidationError",
			fn:       NewValidationError,
			wantKind: KindValidation,
		},
		{
			name:     "NewConversionError",
			fn:       NewConversionError,
			wantKind: KindConversion,
		},
		{
			name:     "NewUnknownElementError",
			fn:       NewUnknownElementError,
			wantKind: KindUnknownElement,
		},
		{
			name:     "NewConfigurationError",
			fn:       NewConfigurationError,
			wantKind: KindConfiguration,
		},
		{
			name:     "NewQueryError",
			fn:       NewQueryError,
			wantKind: KindQuery,
		},
		{
			name:     "NewInternalError",
			fn:       NewInternalError,
			wantKind: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := "Test.Operation"
			underlyingErr := errors.New("test error")

			err := tt.fn(op, underlyingErr)

			if err.Op != op {
				t.Errorf("Op = %q, want %q", err.Op, op)
			}
			if err.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", err.Kind, tt.wantKind)
			}
			if !errors.Is(err, underlyingErr) {
				t.Error("underlying error not preserved")
			}
		})
	}
}

// TestErrorKinds verifies all error kind constants are defined.
func TestErrorKinds(t *testing.T) {
	kinds := []struct {
		name  string
		value string
	}{
		{"KindNotFound", KindNotFound},
		{"KindValidation", KindValidation},
		{"KindConversion", KindConversion},
		{"KindUnknownElement", KindUnknownElement},
		{"KindConfiguration", KindConfiguration},
		{"KindQuery", KindQuery},
		{"KindInternal", KindInternal},
	}

	for _, k := range kinds {
		t.Run(k.name, func(t *testing.T) {
			if k.value == "" {
				t.Errorf("constant %s is empty", k.name)
			}
		})
	}
}

// TestErrorChaining verifies that error chains work correctly.
func TestErrorChaining(t *testing.T) {
	// Create a chain: baseErr -> wrappedErr -> geoErr -> outerErr
	baseErr := errors.New("base error")
	wrappedErr := fmt.Errorf("wrapped: %w", baseErr)
	geoErr := &Error{
		Op:   "DecodeDocument",
		Kind: KindUnknownElement,
		Err:  wrappedErr,
	}
	outerErr := fmt.Errorf("outer: %w", geoErr)

	// Verify we can find the base error
	if !errors.Is(outerErr, baseErr) {
		t.Error("failed to find base error in chain")
	}

	// Verify we can find the toolkit error
	var extracted *Error
	if !errors.As(outerErr, &extracted) {
		t.Error("failed to extract toolkit error from chain")
	}

	if extracted.Op != "DecodeDocument" {
		t.Errorf("extracted error has wrong Op: %q", extracted.Op)
	}
}

// BenchmarkErrorCreation benchmarks error creation.
func BenchmarkErrorCreation(b *testing.B) {
	b.Run("basic", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = &Error{
				Op:   "NewIntervalDomain",
				Kind: KindValidation,
				Err:  ErrUnsupportedConversion,
			}
		}
	})

	b.Run("with_context", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			err := &Error{
				Op:   "NewIntervalDomain",
				Kind: KindValidation,
				Err:  ErrUnsupportedConversion,
			}
			_ = err.WithContext(map[string]any{
				"index": 4,
			})
		}
	})
}

// BenchmarkErrorError benchmarks the Error() method.
func BenchmarkErrorError(b *testing.B) {
	err := &Error{
		Op:   "NewIntervalDomain",
		Kind: KindValidation,
		Err:  errors.New("interval boundaries overlap"),
		Context: map[string]any{
			"index": 4,
			"name":  "gamma",
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}
