package resp

import (
	"strconv"
	"strings"
)

// Type is the marker byte that leads every framed value
type Type byte

// Markers of the value types a Decoder produces
const (
	TypeSimpleString Type = '+'
	TypeBulkString   Type = '$'
	TypeArray        Type = '*'
)

// Markers that are only written by the Encoder
const (
	typeError   Type = '-'
	typeInteger Type = ':'
)

func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simplestring"
	case TypeBulkString:
		return "bulkstring"
	case TypeArray:
		return "array"
	case typeError:
		return "error"
	case typeInteger:
		return "integer"
	}
	return "unknown(" + strconv.Quote(string(rune(t))) + ")"
}

// Value is a decoded protocol value, it is one of SimpleString, BulkString or Array.
// The set is closed, other packages can not add variants.
type Value interface {
	Type() Type
	String() string
	value()
}

// SimpleString is a line of text without the terminator
type SimpleString string

// BulkString is a length prefixed payload
type BulkString string

// Array is an ordered sequence of values, elements may be arrays themselves
type Array []Value

// Type returns TypeSimpleString
func (SimpleString) Type() Type { return TypeSimpleString }

// Type returns TypeBulkString
func (BulkString) Type() Type { return TypeBulkString }

// Type returns TypeArray
func (Array) Type() Type { return TypeArray }

func (s SimpleString) String() string { return "+" + strconv.Quote(string(s)) }

func (s BulkString) String() string { return "$" + strconv.Quote(string(s)) }

func (a Array) String() string {
	elems := make([]string, len(a))
	for i, v := range a {
		elems[i] = v.String()
	}
	return "*[" + strings.Join(elems, " ") + "]"
}

func (SimpleString) value() {}
func (BulkString) value()   {}
func (Array) value()        {}
