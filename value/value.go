// Package value maps Go values onto the runtime roles of the pattern
// language: numbers, strings, booleans, callables, dates, regular
// expressions, ordered sequences and keyed records.
//
// The pattern language has a single number type, so every Go integer,
// unsigned and float kind counts as a number and numbers compare by their
// float64 value. Sequences are slices and arrays. Records are maps keyed by
// strings, structs (and pointers to them) and *Object, the only record type
// with an explicit prototype chain.
package value

import (
	"reflect"
	"regexp"
	"time"
)

// Type names reported by TypeOf.
const (
	TypeUndefined = "undefined"
	TypeNumber    = "number"
	TypeString    = "string"
	TypeBoolean   = "boolean"
	TypeCallable  = "function"
	TypeDate      = "date"
	TypeRegex     = "regexp"
	TypeSequence  = "array"
	TypeRecord    = "object"
	TypeOther     = "other"
)

// TypeOf names the pattern-language role of v.
func TypeOf(v any) string {
	switch {
	case v == nil:
		return TypeUndefined
	case IsNumber(v):
		return TypeNumber
	case IsString(v):
		return TypeString
	case IsBool(v):
		return TypeBoolean
	case IsCallable(v):
		return TypeCallable
	case IsDate(v):
		return TypeDate
	case IsRegexp(v):
		return TypeRegex
	case IsSequence(v):
		return TypeSequence
	case IsRecord(v):
		return TypeRecord
	default:
		return TypeOther
	}
}

// Number returns v as a float64 when v is of any integer, unsigned or
// float kind.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case int:
		return float64(n), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// IsNumber reports whether v is a number.
func IsNumber(v any) bool {
	_, ok := Number(v)
	return ok
}

// String returns v as a string when v is of string kind.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := String(v)
	return ok
}

// Bool returns v as a bool when v is of bool kind.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case nil:
		return false, false
	case bool:
		return b, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Bool {
		return false, false
	}
	return rv.Bool(), true
}

// IsBool reports whether v is a boolean.
func IsBool(v any) bool {
	_, ok := Bool(v)
	return ok
}

// IsCallable reports whether v is a function value.
func IsCallable(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Func
}

// Date returns the instant held by v when v is a time.Time or a non-nil
// *time.Time.
func Date(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

// IsDate reports whether v is a date.
func IsDate(v any) bool {
	_, ok := Date(v)
	return ok
}

// Regexp returns v as a compiled regular expression.
func Regexp(v any) (*regexp.Regexp, bool) {
	re, ok := v.(*regexp.Regexp)
	if !ok || re == nil {
		return nil, false
	}
	return re, true
}

// IsRegexp reports whether v is a regular expression.
func IsRegexp(v any) bool {
	_, ok := Regexp(v)
	return ok
}

// Equal reports strict equality between a literal and a candidate: both
// numbers with the same value, both strings with the same content or both
// booleans with the same truth value. Regular expressions are equal when
// their source text is. Values of different roles are never equal.
func Equal(literal, candidate any) bool {
	if a, ok := Number(literal); ok {
		b, ok := Number(candidate)
		return ok && a == b
	}
	if a, ok := String(literal); ok {
		b, ok := String(candidate)
		return ok && a == b
	}
	if a, ok := Bool(literal); ok {
		b, ok := Bool(candidate)
		return ok && a == b
	}
	if a, ok := Regexp(literal); ok {
		b, ok := Regexp(candidate)
		return ok && a.String() == b.String()
	}
	return false
}
