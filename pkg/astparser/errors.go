package astparser

import (
	"fmt"

	"github.com/aylesm/federation/pkg/graphqlerror"
	"github.com/aylesm/federation/pkg/lexing/position"
	"github.com/aylesm/federation/pkg/lexing/token"
)

// ErrUnexpectedToken reports a token that no grammatical alternative could
// accept at its position.
type ErrUnexpectedToken struct {
	Kind     token.Kind
	Literal  string
	Expected string
	Position position.Position
}

func (e ErrUnexpectedToken) Error() string {
	return fmt.Sprintf("unexpected token - kind: '%s' literal: '%s' - expected: %s position: '%s'", e.Kind, e.Literal, e.Expected, e.Position)
}

// ErrDepthLimitExceeded is returned when a document nests selection sets,
// list values or object values deeper than the configured limit. The limit
// guards the recursive descent against stack exhaustion on pathological
// inputs.
type ErrDepthLimitExceeded struct {
	limit int
}

func (e ErrDepthLimitExceeded) Error() string {
	return fmt.Sprintf("allowed nesting depth per GraphQL document of '%d' exceeded", e.limit)
}

// errorPosition extracts the text position from the error kinds that carry
// one.
func errorPosition(err error) (position.Position, bool) {
	switch e := err.(type) {
	case ErrUnexpectedToken:
		return e.Position, true
	case graphqlerror.Error:
		return e.Position, true
	default:
		return position.Position{}, false
	}
}
