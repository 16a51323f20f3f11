// Package schema implements declarative request validation and response
// serialization. A Schema maps field names to typed, constrained field
// definitions; Load coerces an untyped payload into a validated structure
// and Dump restricts a domain object to the declared output fields.
package schema

import "regexp"

// Type is the declared type of a schema field.
type Type int

const (
	String Type = iota
	Integer
	Boolean
	Date
	Decimal
	Object
	List
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Date:
		return "date"
	case Decimal:
		return "decimal"
	case Object:
		return "object"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Field declares the type and constraints of a single payload field.
type Field struct {
	Type     Type
	Required bool

	// ReadOnly fields are never accepted on input; WriteOnly fields are
	// never emitted on output.
	ReadOnly  bool
	WriteOnly bool

	// String constraints. MaxLen of zero means unbounded.
	MinLen  int
	MaxLen  int
	Enum    []string
	Pattern *regexp.Regexp

	// Numeric range constraints, applied to Integer and Decimal fields.
	Min *float64
	Max *float64

	// Elem declares the element type of a List field.
	Elem *Field

	// Fields declares the nested schema of an Object field.
	Fields Schema
}

// Schema is a declarative description of a payload: field name to
// constrained field definition.
type Schema map[string]Field

// UnknownPolicy controls how Load treats payload keys that are not
// declared in the schema.
type UnknownPolicy int

const (
	// UnknownReject reports an UnknownField violation for every
	// undeclared key. This is the default, to catch client drift early.
	UnknownReject UnknownPolicy = iota

	// UnknownDrop silently discards undeclared keys.
	UnknownDrop
)

// Num is shorthand for numeric range bounds.
func Num(v float64) *float64 { return &v }
