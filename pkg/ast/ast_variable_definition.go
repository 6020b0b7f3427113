package ast

// VariableDefinition declares one $variable of an operation. DefaultValue is
// nil when no default is given.
type VariableDefinition struct {
	Name         string
	Type         Type
	DefaultValue Value
}

// Type is a variable type. Only named types are produced by the grammar,
// list and non-null wrapping are a pending grammar extension.
type Type interface {
	typeNode()
}

type NamedType struct {
	Name string
}

func (NamedType) typeNode() {}
