// Package ast holds the node types produced by parsing a GraphQL query
// document.
//
// The nodes are pure data with structural equality. Sum types (Definition,
// OperationDefinition, Selection, Value, Type) are closed interfaces over a
// fixed set of value struct variants, so consumers can switch exhaustively
// and documents compare with reflect.DeepEqual.
package ast

// Document is the root of the AST, an ordered sequence of definitions.
type Document struct {
	Definitions []Definition
}

// Definition is one top level definition: an operation or a fragment.
type Definition interface {
	definitionNode()
}

// OperationDefinition is the operation flavor of a Definition: a bare
// selection set (shorthand query) or a named query/mutation/subscription.
type OperationDefinition interface {
	Definition
	operationDefinitionNode()
}

// Query is a "query" operation. Directives stay empty from parsing,
// directives on top level operations are not part of the grammar yet.
type Query struct {
	Name                string
	VariableDefinitions []VariableDefinition
	Directives          []Directive
	SelectionSet        SelectionSet
}

// Mutation is a "mutation" operation.
type Mutation struct {
	Name                string
	VariableDefinitions []VariableDefinition
	Directives          []Directive
	SelectionSet        SelectionSet
}

// Subscription is a "subscription" operation.
type Subscription struct {
	Name                string
	VariableDefinitions []VariableDefinition
	Directives          []Directive
	SelectionSet        SelectionSet
}

// FragmentDefinition is a named fragment with a required type condition.
type FragmentDefinition struct {
	Name          string
	TypeCondition TypeCondition
	Directives    []Directive
	SelectionSet  SelectionSet
}

// TypeCondition names the type a fragment or inline fragment applies to.
// The zero value marks an absent type condition on an inline fragment.
type TypeCondition struct {
	On string
}

func (t TypeCondition) IsSet() bool {
	return t.On != ""
}

func (Query) definitionNode()        {}
func (Mutation) definitionNode()     {}
func (Subscription) definitionNode() {}
func (SelectionSet) definitionNode() {}

func (FragmentDefinition) definitionNode() {}

func (Query) operationDefinitionNode()        {}
func (Mutation) operationDefinitionNode()     {}
func (Subscription) operationDefinitionNode() {}
func (SelectionSet) operationDefinitionNode() {}
