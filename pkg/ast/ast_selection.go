package ast

// SelectionSet is a braced list of selections. When parsed from source it is
// never empty, the grammar requires at least one selection. The zero value is
// the distinguished empty sentinel used for fields without a sub-selection.
type SelectionSet struct {
	Items []Selection
}

func (s SelectionSet) IsEmpty() bool {
	return len(s.Items) == 0
}

// Selection is one entry of a SelectionSet: a field, a fragment spread or an
// inline fragment.
type Selection interface {
	selectionNode()
}

// Field is a selected field, optionally aliased. With "alias: name" syntax
// Alias holds the first identifier and Name the second; an empty Alias means
// the field is not aliased.
type Field struct {
	Alias        string
	Name         string
	Arguments    []Argument
	Directives   []Directive
	SelectionSet SelectionSet
}

// FragmentSpread references a separately defined named fragment.
type FragmentSpread struct {
	FragmentName string
	Directives   []Directive
}

// InlineFragment is an unnamed fragment inlined into a selection set. The
// type condition is optional.
type InlineFragment struct {
	TypeCondition TypeCondition
	Directives    []Directive
	SelectionSet  SelectionSet
}

func (Field) selectionNode()          {}
func (FragmentSpread) selectionNode() {}
func (InlineFragment) selectionNode() {}
