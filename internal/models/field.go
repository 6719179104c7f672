package models

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

type ValueKind int

const (
	KindText ValueKind = iota
	KindBool
	KindDate
	KindInt
	KindEnum
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindInt:
		return "integer"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// FieldValue is a tagged union over the value kinds a form field can hold.
// Text carries the raw input for every kind except KindBool, so a date or
// integer that failed to parse keeps what the user typed with Set=false.
type FieldValue struct {
	Kind ValueKind
	Text string
	Bool bool
	Date time.Time
	Int  int
	Set  bool
}

func TextValue(s string) FieldValue {
	return FieldValue{Kind: KindText, Text: s, Set: true}
}

func EnumValue(s string) FieldValue {
	return FieldValue{Kind: KindEnum, Text: s, Set: true}
}

func BoolValue(b bool) FieldValue {
	return FieldValue{Kind: KindBool, Bool: b, Set: true}
}

func DateValue(t time.Time) FieldValue {
	return FieldValue{Kind: KindDate, Date: t, Text: t.Format(DateLayout), Set: true}
}

func IntValue(n int) FieldValue {
	return FieldValue{Kind: KindInt, Int: n, Text: strconv.Itoa(n), Set: true}
}

// EmptyValue returns the zero value for a kind. Booleans default to false.
func EmptyValue(kind ValueKind) FieldValue {
	if kind == KindBool {
		return BoolValue(false)
	}
	return FieldValue{Kind: kind}
}

// MalformedValue keeps raw input that could not be coerced into kind.
func MalformedValue(kind ValueKind, raw string) FieldValue {
	return FieldValue{Kind: kind, Text: raw}
}

// IsEmpty reports whether the value counts as absent for presence checks.
// A boolean is never empty; false is a value.
func (v FieldValue) IsEmpty() bool {
	switch v.Kind {
	case KindBool:
		return false
	case KindDate, KindInt:
		return !v.Set && strings.TrimSpace(v.Text) == ""
	default:
		return strings.TrimSpace(v.Text) == ""
	}
}

// Malformed reports raw input that is present but not of the field's kind.
func (v FieldValue) Malformed() bool {
	return (v.Kind == KindDate || v.Kind == KindInt) && !v.Set && strings.TrimSpace(v.Text) != ""
}

// Interface returns the value in the shape used by snapshots and JSON views.
func (v FieldValue) Interface() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindDate:
		if v.Set {
			return v.Date.Format(DateLayout)
		}
		if v.Text == "" {
			return nil
		}
		return v.Text
	case KindInt:
		if v.Set {
			return v.Int
		}
		if v.Text == "" {
			return nil
		}
		return v.Text
	default:
		return v.Text
	}
}

// FieldState is the per-field record held by the form.
type FieldState struct {
	Value   FieldValue `json:"-"`
	Touched bool       `json:"touched"`
	Errors  ErrorSet   `json:"errors"`
}

func NewFieldState(v FieldValue) *FieldState {
	return &FieldState{Value: v}
}

func (s *FieldState) Valid() bool {
	return s.Errors.Len() == 0
}
