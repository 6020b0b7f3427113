package token

import (
	"fmt"

	"github.com/aylesm/federation/pkg/lexing/position"
)

// Kind classifies a lexeme.
type Kind int

const (
	Undefined Kind = iota
	EOF
	Punctuator
	Name
	IntValue
	FloatValue
	StringValue
	BlockString
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Punctuator:
		return "Punctuator"
	case Name:
		return "Name"
	case IntValue:
		return "IntValue"
	case FloatValue:
		return "FloatValue"
	case StringValue:
		return "StringValue"
	case BlockString:
		return "BlockString"
	default:
		return "Undefined"
	}
}

// Token is a classified lexeme. Literal is a slice of the source string,
// no copy is made.
type Token struct {
	Kind         Kind
	Literal      string
	TextPosition position.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%s]", t.Literal, t.Kind)
}
