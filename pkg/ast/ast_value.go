package ast

// Value is an input value as it appears in arguments, list and object
// values, and variable defaults.
type Value interface {
	valueNode()
}

type IntValue struct {
	Value int64
}

type FloatValue struct {
	Value float64
}

// StringValue holds a decoded string. Block marks a block string literal so
// the value can be printed back in the syntax it was written in.
type StringValue struct {
	Value string
	Block bool
}

// EnumValue is a bare name in value position.
type EnumValue struct {
	Name string
}

// Variable is a $name reference.
type Variable struct {
	Name string
}

// ListValue is an ordered sequence of values, possibly empty.
type ListValue struct {
	Values []Value
}

// ObjectValue is an ordered sequence of name/value pairs, possibly empty.
// Duplicate names are preserved in order, not rejected.
type ObjectValue struct {
	Fields []ObjectField
}

type ObjectField struct {
	Name  string
	Value Value
}

func (IntValue) valueNode()    {}
func (FloatValue) valueNode()  {}
func (StringValue) valueNode() {}
func (EnumValue) valueNode()   {}
func (Variable) valueNode()    {}
func (ListValue) valueNode()   {}
func (ObjectValue) valueNode() {}

// Argument is one name/value pair of a field or directive argument list.
// Duplicate names are preserved in order, consumers decide their meaning.
type Argument struct {
	Name  string
	Value Value
}

// Directive is an @name with optional arguments.
type Directive struct {
	Name      string
	Arguments []Argument
}
