package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeConditionIsSet(t *testing.T) {
	assert.False(t, TypeCondition{}.IsSet())
	assert.True(t, TypeCondition{On: "User"}.IsSet())
}

func TestSelectionSetIsEmpty(t *testing.T) {
	assert.True(t, SelectionSet{}.IsEmpty())
	assert.False(t, SelectionSet{Items: []Selection{Field{Name: "a"}}}.IsEmpty())
}

// documents built from value types compare structurally
func TestDocumentEquality(t *testing.T) {
	build := func() Document {
		return Document{Definitions: []Definition{
			Query{
				Name: "Q",
				VariableDefinitions: []VariableDefinition{
					{Name: "id", Type: NamedType{Name: "ID"}, DefaultValue: IntValue{Value: 4}},
				},
				SelectionSet: SelectionSet{Items: []Selection{
					Field{Name: "node", Arguments: []Argument{
						{Name: "id", Value: Variable{Name: "id"}},
					}},
				}},
			},
		}}
	}
	assert.Equal(t, build(), build())
}
