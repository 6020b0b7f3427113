// Package lexer turns a GraphQL query document into a stream of tokens.
//
// Tokens are produced on demand and borrow their literal text from the input
// string. The stream supports Checkpoint/Reset so a parser can explore one
// grammatical alternative and rewind before trying the next.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/aylesm/federation/pkg/graphqlerror"
	"github.com/aylesm/federation/pkg/lexing/position"
	"github.com/aylesm/federation/pkg/lexing/runes"
	"github.com/aylesm/federation/pkg/lexing/token"
)

// Lexer emits tokens from an input string
type Lexer struct {
	input         string
	inputPosition int
	textPosition  position.Position
}

// Checkpoint captures the full cursor state of a Lexer.
type Checkpoint struct {
	inputPosition int
	textPosition  position.Position
}

// NewLexer initializes a new lexer
func NewLexer() *Lexer {
	return &Lexer{}
}

// SetInput sets the input string and resets all position stats.
// Insignificant leading content is skipped immediately so that Position
// reports the location of the first token.
func (l *Lexer) SetInput(input string) {
	l.input = input
	l.inputPosition = 0
	l.textPosition.Line = 1
	l.textPosition.Char = 1
	l.skipInsignificant()
}

// Position returns the text position of the next token.
func (l *Lexer) Position() position.Position {
	return l.textPosition
}

// Checkpoint returns the current cursor state
func (l *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{
		inputPosition: l.inputPosition,
		textPosition:  l.textPosition,
	}
}

// Reset rewinds the lexer to a previously captured checkpoint
func (l *Lexer) Reset(checkpoint Checkpoint) {
	l.inputPosition = checkpoint.inputPosition
	l.textPosition = checkpoint.textPosition
}

// Read emits the next token. At the end of the input a token with kind
// token.EOF is returned, which is not an error.
func (l *Lexer) Read() (tok token.Token, err error) {
	kind, length, err := l.peekToken()
	if err != nil {
		return tok, err
	}

	tok.Kind = kind
	tok.Literal = l.input[l.inputPosition : l.inputPosition+length]
	tok.TextPosition = l.textPosition

	l.advance(length)
	l.skipInsignificant()

	return tok, nil
}

func (l *Lexer) peekToken() (kind token.Kind, length int, err error) {
	if l.inputPosition >= len(l.input) {
		return token.EOF, 0, nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.inputPosition:])

	switch r {
	case runes.BANG, runes.DOLLAR, runes.COLON, runes.EQUALS, runes.AT, runes.PIPE,
		runes.LPAREN, runes.RPAREN, runes.LBRACK, runes.RBRACK, runes.LBRACE, runes.RBRACE:
		return token.Punctuator, 1, nil
	case runes.DOT:
		if strings.HasPrefix(l.input[l.inputPosition:], "...") {
			return token.Punctuator, 3, nil
		}
		return kind, 0, graphqlerror.New(l.textPosition, `bare dot is not supported, only "..."`)
	case runes.QUOTE:
		return l.peekString()
	}

	if r == runes.UNDERSCORE || runeIsLetter(r) {
		return token.Name, l.identLength(), nil
	}

	if r == runes.NEGATIVESIGN || runeIsDigit(r) {
		return l.peekNumber()
	}

	return kind, 0, graphqlerror.New(l.textPosition, "unexpected character %q", r)
}

func (l *Lexer) identLength() int {
	for i := l.inputPosition + 1; i < len(l.input); i++ {
		if !runeIsIdent(rune(l.input[i])) {
			return i - l.inputPosition
		}
	}
	return len(l.input) - l.inputPosition
}

// peekNumber scans forward until a delimiter and validates the literal shape
// by hand. Library numeric parsers are more permissive than the grammar,
// e.g. they accept leading zeros and unsigned exponents.
func (l *Lexer) peekNumber() (kind token.Kind, length int, err error) {
	rest := l.input[l.inputPosition:]

	dot := -1
	exponent := -1
	length = len(rest)

scan:
	for i := 1; i < len(rest); i++ {
		switch rest[i] {
		case runes.SPACE, runes.LINETERMINATOR, runes.CARRIAGERETURN, runes.TAB, runes.COMMA, runes.HASHTAG,
			runes.BANG, runes.DOLLAR, runes.COLON, runes.EQUALS, runes.AT, runes.PIPE,
			runes.LPAREN, runes.RPAREN, runes.LBRACK, runes.RBRACK, runes.LBRACE, runes.RBRACE:
			length = i
			break scan
		case runes.DOT:
			if dot == -1 {
				dot = i
			}
		case 'e', 'E':
			if exponent == -1 {
				exponent = i
			}
		}
	}

	value := rest[:length]

	if dot == -1 && exponent == -1 {
		if !checkInt(value) {
			return kind, 0, graphqlerror.New(l.textPosition, "unsupported integer %q", value)
		}
		return token.IntValue, length, nil
	}

	if !checkFloat(value, dot, exponent) {
		return kind, 0, graphqlerror.New(l.textPosition, "unsupported float %q", value)
	}
	return token.FloatValue, length, nil
}

// checkInt expects the first character to be a digit or minus, as guaranteed
// by peekToken
func checkInt(value string) bool {
	return value == "0" || value == "-0" ||
		(!strings.HasPrefix(value, "0") && value != "-" && !strings.HasPrefix(value, "-0") &&
			isDigits(value[1:]))
}

func checkDec(value string) bool {
	return len(value) > 0 && isDigits(value)
}

// checkExp requires an explicit sign, a bare "e0" is not a valid exponent
func checkExp(value string) bool {
	return (strings.HasPrefix(value, "-") || strings.HasPrefix(value, "+")) &&
		len(value) >= 2 &&
		isDigits(value[1:])
}

func checkFloat(value string, dot, exponent int) bool {
	switch {
	case dot != -1 && exponent != -1 && exponent < dot:
		return false
	case dot != -1 && exponent != -1:
		return checkInt(value[:dot]) &&
			checkDec(value[dot+1:exponent]) &&
			checkExp(value[exponent+1:])
	case exponent != -1:
		return checkInt(value[:exponent]) && checkExp(value[exponent+1:])
	default:
		return checkInt(value[:dot]) && checkDec(value[dot+1:])
	}
}

func isDigits(value string) bool {
	for i := 0; i < len(value); i++ {
		if !runeIsDigit(rune(value[i])) {
			return false
		}
	}
	return true
}

func (l *Lexer) peekString() (kind token.Kind, length int, err error) {
	rest := l.input[l.inputPosition:]

	if strings.HasPrefix(rest, `"""`) {
		tail := rest[3:]
		offset := 0
		for {
			idx := strings.Index(tail[offset:], `"""`)
			if idx == -1 {
				return kind, 0, graphqlerror.New(l.textPosition, "unterminated block string value")
			}
			end := offset + idx
			if !strings.HasSuffix(tail[:end], `\`) {
				return token.BlockString, end + 6, nil
			}
			offset = end + 1
		}
	}

	var escaped bool
	for i := 1; i < len(rest); i++ {
		switch rest[i] {
		case runes.QUOTE:
			if escaped {
				escaped = false
				continue
			}
			return token.StringValue, i + 1, nil
		case runes.BACKSLASH:
			escaped = !escaped
		default:
			escaped = false
		}
	}

	return kind, 0, graphqlerror.New(l.textPosition, "unterminated string value")
}

// skipInsignificant swallows the byte order mark, whitespace, commas and
// comments. Commas carry no semantic value, trailing or extra commas are
// always legal.
func (l *Lexer) skipInsignificant() {
	start := l.inputPosition
	i := start

loop:
	for i < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[i:])
		switch r {
		case runes.BOM, runes.TAB, runes.SPACE, runes.CARRIAGERETURN, runes.LINETERMINATOR, runes.COMMA:
			i += size
		case runes.HASHTAG:
			for i < len(l.input) && l.input[i] != runes.CARRIAGERETURN && l.input[i] != runes.LINETERMINATOR {
				i++
			}
		default:
			break loop
		}
	}

	if i > start {
		l.advance(i - start)
	}
}

// advance consumes length bytes and translates them into line/char movement
func (l *Lexer) advance(length int) {
	consumed := l.input[l.inputPosition : l.inputPosition+length]
	l.inputPosition += length

	lines := strings.Count(consumed, "\n")
	l.textPosition.Line += lines
	if lines > 0 {
		lineOffset := strings.LastIndexByte(consumed, '\n') + 1
		l.textPosition.Char = utf8.RuneCountInString(consumed[lineOffset:]) + 1
	} else {
		l.textPosition.Char += utf8.RuneCountInString(consumed)
	}
}

func runeIsIdent(r rune) bool {
	return runeIsLetter(r) || runeIsDigit(r) || r == runes.UNDERSCORE
}

func runeIsLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

func runeIsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
