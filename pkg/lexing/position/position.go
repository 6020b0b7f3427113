package position

import "fmt"

// Position is a line/char cursor into a query document. Both start at 1.
type Position struct {
	Line int
	Char int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Char)
}

func (p Position) IsBefore(another Position) bool {
	return p.Line < another.Line ||
		p.Line == another.Line && p.Char < another.Char
}
