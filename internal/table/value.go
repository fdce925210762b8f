package table

import (
	"strconv"
)

// Kind is the type tag of a Value, and the declared type of a Column.
// On a Column, KindNull means the type is unknown.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	default:
		return "null"
	}
}

// Value is a single cell. It is comparable, so it can be used as a map key.
type Value struct {
	Kind Kind
	Text string
	Int  int64
	Real float64
}

// Null returns the missing-value marker.
func Null() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Real returns a floating point value.
func Real(f float64) Value { return Value{Kind: KindReal, Real: f} }

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Float returns the numeric value and true for integer and real values.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindInteger:
		return float64(v.Int), true
	case KindReal:
		return v.Real, true
	default:
		return 0, false
	}
}

// String renders the value for display. Missing values render as "".
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'f', -1, 64)
	default:
		return ""
	}
}
