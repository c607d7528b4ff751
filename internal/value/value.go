package value

import (
	"errors"
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrTypeMismatch is returned when a Value is extracted as the wrong type.
var ErrTypeMismatch = errors.New("value: type mismatch")

// ErrUnsupported is returned when a cty value cannot be carried by a Value.
var ErrUnsupported = errors.New("value: unsupported payload")

// MismatchError describes a failed typed extraction.
type MismatchError struct {
	Want cty.Type
	Got  cty.Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", ErrTypeMismatch, friendlyName(e.Want), friendlyName(e.Got))
}

func friendlyName(t cty.Type) string {
	if t == cty.NilType {
		return "nothing"
	}
	return t.FriendlyName()
}

// Unwrap lets errors.Is match ErrTypeMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// Value carries one typed payload between a producing and a consuming port.
// The zero Value is empty and fails every extraction.
type Value struct {
	v cty.Value
}

// Number wraps a numeric payload. It panics if f is NaN, which cty cannot
// represent; use NumberOf for computed results.
func Number(f float64) Value {
	return Value{v: cty.NumberFloatVal(f)}
}

// NumberOf wraps a numeric payload, rejecting NaN.
func NumberOf(f float64) (Value, error) {
	if math.IsNaN(f) {
		return Value{}, fmt.Errorf("%w: NaN", ErrUnsupported)
	}
	return Number(f), nil
}

// Text wraps a string payload.
func Text(s string) Value {
	return Value{v: cty.StringVal(s)}
}

// Bool wraps a boolean payload.
func Bool(b bool) Value {
	return Value{v: cty.BoolVal(b)}
}

// FromCty wraps a primitive cty value. Unknown, null or non-primitive values
// are rejected.
func FromCty(v cty.Value) (Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return Value{}, fmt.Errorf("%w: null or unknown value", ErrUnsupported)
	}
	if !v.Type().IsPrimitiveType() {
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupported, v.Type().FriendlyName())
	}
	return Value{v: v}, nil
}

// Type returns the discriminant, cty.NilType for the zero Value.
func (v Value) Type() cty.Type {
	return v.v.Type()
}

// IsEmpty is true for the zero Value.
func (v Value) IsEmpty() bool {
	return v.v.Type() == cty.NilType
}

// Cty exposes the underlying value, e.g. for serialization.
func (v Value) Cty() cty.Value {
	return v.v
}

// AsNumber extracts a numeric payload.
func (v Value) AsNumber() (float64, error) {
	if err := v.expect(cty.Number); err != nil {
		return 0, err
	}
	var f float64
	if err := gocty.FromCtyValue(v.v, &f); err != nil {
		return 0, fmt.Errorf("value: number out of range: %w", err)
	}
	return f, nil
}

// AsText extracts a string payload.
func (v Value) AsText() (string, error) {
	if err := v.expect(cty.String); err != nil {
		return "", err
	}
	return v.v.AsString(), nil
}

// AsBool extracts a boolean payload.
func (v Value) AsBool() (bool, error) {
	if err := v.expect(cty.Bool); err != nil {
		return false, err
	}
	return v.v.True(), nil
}

// Native returns the payload as a plain Go value (float64, string or bool),
// convenient for printing and JSON encoding.
func (v Value) Native() any {
	switch v.Type() {
	case cty.Number:
		f, _ := v.AsNumber()
		return f
	case cty.String:
		return v.v.AsString()
	case cty.Bool:
		return v.v.True()
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.Type() {
	case cty.Number:
		return v.v.AsBigFloat().Text('g', -1)
	case cty.String:
		return fmt.Sprintf("%q", v.v.AsString())
	case cty.Bool:
		return fmt.Sprintf("%t", v.v.True())
	default:
		return "<empty>"
	}
}

func (v Value) expect(want cty.Type) error {
	if got := v.Type(); got == cty.NilType || !got.Equals(want) {
		return &MismatchError{Want: want, Got: got}
	}
	return nil
}
