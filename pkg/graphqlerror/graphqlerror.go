// Package graphqlerror holds the position tagged error value shared by the
// lexer and the grammar parser.
package graphqlerror

import (
	"fmt"

	"github.com/aylesm/federation/pkg/lexing/position"
)

type Error struct {
	Message  string
	Position position.Position
}

func (e Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

func New(pos position.Position, format string, args ...interface{}) Error {
	return Error{
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}
