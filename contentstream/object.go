package contentstream

import (
	"sort"
	"strconv"
	"strings"
)

// Object is an operand in a content stream.
type Object interface {
	Type() ObjectType
	String() string
}

// ObjectType identifies the kind of an operand.
type ObjectType int

const (
	ObjNull ObjectType = iota
	ObjBool
	ObjInt
	ObjReal
	ObjString
	ObjName
	ObjArray
	ObjDict
)

func (t ObjectType) String() string {
	switch t {
	case ObjNull:
		return "null"
	case ObjBool:
		return "bool"
	case ObjInt:
		return "int"
	case ObjReal:
		return "real"
	case ObjString:
		return "string"
	case ObjName:
		return "name"
	case ObjArray:
		return "array"
	case ObjDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Null represents the null operand.
type Null struct{}

func (n Null) Type() ObjectType { return ObjNull }
func (n Null) String() string   { return "null" }

// Bool represents a boolean operand.
type Bool bool

func (b Bool) Type() ObjectType { return ObjBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents an integer operand.
type Int int64

func (i Int) Type() ObjectType { return ObjInt }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }

// Real represents a real number operand.
type Real float64

func (r Real) Type() ObjectType { return ObjReal }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a literal or hexadecimal string operand. It holds the
// unescaped bytes; their meaning depends on the font selected when the
// string is shown.
type String []byte

func (s String) Type() ObjectType { return ObjString }
func (s String) String() string   { return strconv.Quote(string(s)) }

// Name represents a name operand without its leading slash.
type Name string

func (n Name) Type() ObjectType { return ObjName }
func (n Name) String() string   { return "/" + string(n) }

// Array represents an array operand.
type Array []Object

func (a Array) Type() ObjectType { return ObjArray }
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, obj := range a {
		parts[i] = obj.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Dict represents a dictionary operand, as found in inline images and
// marked-content properties.
type Dict map[string]Object

func (d Dict) Type() ObjectType { return ObjDict }
func (d Dict) String() string {
	var b strings.Builder
	b.WriteString("<<")
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" /")
		b.WriteString(k)
		b.WriteByte(' ')
		b.WriteString(d[k].String())
	}
	b.WriteString(" >>")
	return b.String()
}

// Number returns the numeric value of an Int or Real operand.
func Number(obj Object) (float64, bool) {
	switch v := obj.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}
