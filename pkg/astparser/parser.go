// Package astparser parses a GraphQL query document into an ast.Document.
//
// The grammar is recursive descent with ordered backtracking alternation:
// each alternative captures a lexer checkpoint, attempts its production and
// rewinds on failure before the next alternative runs. No alternative has
// irrevocable side effects. A failed parse reports the error recorded at the
// deepest position any alternative reached.
package astparser

import (
	"strconv"

	"github.com/aylesm/federation/pkg/ast"
	"github.com/aylesm/federation/pkg/escape"
	"github.com/aylesm/federation/pkg/graphqlerror"
	"github.com/aylesm/federation/pkg/lexer"
	"github.com/aylesm/federation/pkg/lexing/position"
	"github.com/aylesm/federation/pkg/lexing/token"
)

// DefaultMaxDepth bounds the nesting of selection sets, list values and
// object values.
const DefaultMaxDepth = 128

// Parser is a reusable query document parser. It is not safe for concurrent
// use; create one Parser per goroutine.
type Parser struct {
	lexer    *lexer.Lexer
	maxDepth int

	depth       int
	fatal       error
	furthest    error
	furthestPos position.Position
}

// NewParser returns a Parser with the default nesting depth limit
func NewParser() *Parser {
	return NewParserWithLimits(DefaultMaxDepth)
}

// NewParserWithLimits returns a Parser bounding document nesting at maxDepth
func NewParserWithLimits(maxDepth int) *Parser {
	return &Parser{
		lexer:    lexer.NewLexer(),
		maxDepth: maxDepth,
	}
}

// ParseGraphqlDocumentString parses a complete query document. Trailing
// tokens after the last definition are a syntax error.
func ParseGraphqlDocumentString(input string) (ast.Document, error) {
	return NewParser().Parse(input)
}

// ParseGraphqlDocumentBytes parses a complete query document from a byte
// slice
func ParseGraphqlDocumentBytes(input []byte) (ast.Document, error) {
	return NewParser().Parse(string(input))
}

// Parse runs the grammar over input and demands exhaustion of the token
// stream. On failure no partial document is returned.
func (p *Parser) Parse(input string) (ast.Document, error) {
	p.lexer.SetInput(input)
	p.depth = 0
	p.fatal = nil
	p.furthest = nil
	p.furthestPos = position.Position{}

	doc, err := p.parseDocument()
	if err == nil {
		return doc, nil
	}
	if p.fatal != nil {
		return ast.Document{}, p.fatal
	}
	if p.furthest != nil {
		return ast.Document{}, p.furthest
	}
	return ast.Document{}, err
}

// try runs one alternative against a checkpoint. On failure the lexer is
// rewound and the error stays recorded for furthest-position reporting.
func (p *Parser) try(alternative func() error) bool {
	if p.fatal != nil {
		return false
	}
	checkpoint := p.lexer.Checkpoint()
	if err := alternative(); err != nil {
		p.lexer.Reset(checkpoint)
		return false
	}
	return p.fatal == nil
}

// record keeps the error reaching the deepest position; later errors win
// ties so that the outermost expectation is reported for trailing input
func (p *Parser) record(err error) error {
	pos, ok := errorPosition(err)
	if !ok {
		return err
	}
	if p.furthest == nil || !pos.IsBefore(p.furthestPos) {
		p.furthest = err
		p.furthestPos = pos
	}
	return err
}

// setFatal marks an error that backtracking must not recover from: value
// range overflow, string decode failures and the nesting depth limit.
func (p *Parser) setFatal(err error) error {
	if p.fatal == nil {
		p.fatal = err
	}
	return err
}

func (p *Parser) read() (token.Token, error) {
	if p.fatal != nil {
		return token.Token{}, p.fatal
	}
	tok, err := p.lexer.Read()
	if err != nil {
		return tok, p.record(err)
	}
	return tok, nil
}

func (p *Parser) errUnexpectedToken(unexpected token.Token, expected string) error {
	return p.record(ErrUnexpectedToken{
		Kind:     unexpected.Kind,
		Literal:  unexpected.Literal,
		Expected: expected,
		Position: unexpected.TextPosition,
	})
}

// punct reads one token and requires it to be the given punctuator
func (p *Parser) punct(literal string) (token.Token, error) {
	tok, err := p.read()
	if err != nil {
		return tok, err
	}
	if tok.Kind != token.Punctuator || tok.Literal != literal {
		return tok, p.errUnexpectedToken(tok, strconv.Quote(literal))
	}
	return tok, nil
}

// ident reads one token and requires it to be a Name with the given literal
func (p *Parser) ident(literal string) (token.Token, error) {
	tok, err := p.read()
	if err != nil {
		return tok, err
	}
	if tok.Kind != token.Name || tok.Literal != literal {
		return tok, p.errUnexpectedToken(tok, strconv.Quote(literal))
	}
	return tok, nil
}

// name reads one token and requires it to be a Name
func (p *Parser) name() (token.Token, error) {
	tok, err := p.read()
	if err != nil {
		return tok, err
	}
	if tok.Kind != token.Name {
		return tok, p.errUnexpectedToken(tok, "a name")
	}
	return tok, nil
}

// kind reads one token and requires the given kind
func (p *Parser) kind(want token.Kind) (token.Token, error) {
	tok, err := p.read()
	if err != nil {
		return tok, err
	}
	if tok.Kind != want {
		return tok, p.errUnexpectedToken(tok, want.String())
	}
	return tok, nil
}

func (p *Parser) enterNesting() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.setFatal(ErrDepthLimitExceeded{limit: p.maxDepth})
	}
	return nil
}

func (p *Parser) leaveNesting() {
	p.depth--
}

func (p *Parser) parseDocument() (doc ast.Document, err error) {
	definition, err := p.parseDefinition()
	if err != nil {
		return doc, err
	}
	doc.Definitions = append(doc.Definitions, definition)

	for {
		var next ast.Definition
		if !p.try(func() (err error) {
			next, err = p.parseDefinition()
			return err
		}) {
			break
		}
		doc.Definitions = append(doc.Definitions, next)
	}

	if p.fatal != nil {
		return doc, p.fatal
	}

	tok, err := p.read()
	if err != nil {
		return doc, err
	}
	if tok.Kind != token.EOF {
		return doc, p.errUnexpectedToken(tok, "end of input")
	}

	return doc, nil
}

func (p *Parser) parseDefinition() (ast.Definition, error) {
	var operation ast.OperationDefinition
	if p.try(func() (err error) {
		operation, err = p.parseOperationDefinition()
		return err
	}) {
		return operation, nil
	}
	return p.parseFragmentDefinition()
}

func (p *Parser) parseOperationDefinition() (ast.OperationDefinition, error) {
	var shorthand ast.SelectionSet
	if p.try(func() (err error) {
		shorthand, err = p.parseSelectionSet()
		return err
	}) {
		return shorthand, nil
	}

	var query ast.Query
	if p.try(func() (err error) {
		query, err = p.parseQuery()
		return err
	}) {
		return query, nil
	}

	var mutation ast.Mutation
	if p.try(func() (err error) {
		mutation, err = p.parseMutation()
		return err
	}) {
		return mutation, nil
	}

	return p.parseSubscription()
}

func (p *Parser) parseQuery() (ast.Query, error) {
	if _, err := p.ident("query"); err != nil {
		return ast.Query{}, err
	}
	name, variableDefinitions, selectionSet, err := p.parseOperationCommon()
	if err != nil {
		return ast.Query{}, err
	}
	return ast.Query{
		Name:                name,
		VariableDefinitions: variableDefinitions,
		SelectionSet:        selectionSet,
	}, nil
}

func (p *Parser) parseMutation() (ast.Mutation, error) {
	if _, err := p.ident("mutation"); err != nil {
		return ast.Mutation{}, err
	}
	name, variableDefinitions, selectionSet, err := p.parseOperationCommon()
	if err != nil {
		return ast.Mutation{}, err
	}
	return ast.Mutation{
		Name:                name,
		VariableDefinitions: variableDefinitions,
		SelectionSet:        selectionSet,
	}, nil
}

func (p *Parser) parseSubscription() (ast.Subscription, error) {
	if _, err := p.ident("subscription"); err != nil {
		return ast.Subscription{}, err
	}
	name, variableDefinitions, selectionSet, err := p.parseOperationCommon()
	if err != nil {
		return ast.Subscription{}, err
	}
	return ast.Subscription{
		Name:                name,
		VariableDefinitions: variableDefinitions,
		SelectionSet:        selectionSet,
	}, nil
}

// parseOperationCommon parses the optional name, the optional variable
// definition list and the required selection set shared by all three
// operation keywords
func (p *Parser) parseOperationCommon() (name string, variableDefinitions []ast.VariableDefinition, selectionSet ast.SelectionSet, err error) {
	p.try(func() error {
		tok, err := p.name()
		if err != nil {
			return err
		}
		name = tok.Literal
		return nil
	})

	p.try(func() (err error) {
		variableDefinitions, err = p.parseVariableDefinitions()
		return err
	})

	selectionSet, err = p.parseSelectionSet()
	return name, variableDefinitions, selectionSet, err
}

func (p *Parser) parseVariableDefinitions() ([]ast.VariableDefinition, error) {
	if _, err := p.punct("("); err != nil {
		return nil, err
	}

	first, err := p.parseVariableDefinition()
	if err != nil {
		return nil, err
	}
	list := []ast.VariableDefinition{first}

	for {
		var next ast.VariableDefinition
		if !p.try(func() (err error) {
			next, err = p.parseVariableDefinition()
			return err
		}) {
			break
		}
		list = append(list, next)
	}

	if _, err := p.punct(")"); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseVariableDefinition() (definition ast.VariableDefinition, err error) {
	if _, err = p.punct("$"); err != nil {
		return definition, err
	}
	name, err := p.name()
	if err != nil {
		return definition, err
	}
	definition.Name = name.Literal

	if _, err = p.punct(":"); err != nil {
		return definition, err
	}
	definition.Type, err = p.parseVariableType()
	if err != nil {
		return definition, err
	}

	p.try(func() error {
		if _, err := p.punct("="); err != nil {
			return err
		}
		value, err := p.parseDefaultValue()
		if err != nil {
			return err
		}
		definition.DefaultValue = value
		return nil
	})

	return definition, nil
}

func (p *Parser) parseVariableType() (ast.Type, error) {
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	return ast.NamedType{Name: name.Literal}, nil
}

func (p *Parser) parseSelectionSet() (set ast.SelectionSet, err error) {
	if _, err = p.punct("{"); err != nil {
		return set, err
	}

	if err = p.enterNesting(); err != nil {
		return set, err
	}
	defer p.leaveNesting()

	first, err := p.parseSelection()
	if err != nil {
		return set, err
	}
	set.Items = append(set.Items, first)

	for {
		var next ast.Selection
		if !p.try(func() (err error) {
			next, err = p.parseSelection()
			return err
		}) {
			break
		}
		set.Items = append(set.Items, next)
	}

	if _, err = p.punct("}"); err != nil {
		return set, err
	}
	return set, nil
}

func (p *Parser) parseSelection() (ast.Selection, error) {
	var field ast.Field
	if p.try(func() (err error) {
		field, err = p.parseField()
		return err
	}) {
		return field, nil
	}

	if _, err := p.punct("..."); err != nil {
		return nil, err
	}

	// the on keyword after a spread always starts a typed inline fragment,
	// it is not a legal fragment name to fall back to
	if p.peekOn() {
		return p.parseInlineFragment()
	}

	var inline ast.InlineFragment
	if p.try(func() (err error) {
		inline, err = p.parseInlineFragment()
		return err
	}) {
		return inline, nil
	}

	return p.parseFragmentSpread()
}

func (p *Parser) peekOn() bool {
	checkpoint := p.lexer.Checkpoint()
	tok, err := p.read()
	p.lexer.Reset(checkpoint)
	return err == nil && tok.Kind == token.Name && tok.Literal == "on"
}

// parseInlineFragment parses the remainder of an inline fragment after the
// spread punctuator has been consumed
func (p *Parser) parseInlineFragment() (inline ast.InlineFragment, err error) {
	p.try(func() error {
		if _, err := p.ident("on"); err != nil {
			return err
		}
		name, err := p.name()
		if err != nil {
			return err
		}
		inline.TypeCondition = ast.TypeCondition{On: name.Literal}
		return nil
	})

	inline.Directives = p.parseDirectives()

	inline.SelectionSet, err = p.parseSelectionSet()
	return inline, err
}

// parseFragmentSpread parses the fragment name after the spread punctuator
// has been consumed
func (p *Parser) parseFragmentSpread() (ast.FragmentSpread, error) {
	name, err := p.name()
	if err != nil {
		return ast.FragmentSpread{}, err
	}
	return ast.FragmentSpread{
		FragmentName: name.Literal,
		Directives:   p.parseDirectives(),
	}, nil
}

func (p *Parser) parseField() (field ast.Field, err error) {
	first, err := p.name()
	if err != nil {
		return field, err
	}
	field.Name = first.Literal

	p.try(func() error {
		if _, err := p.punct(":"); err != nil {
			return err
		}
		second, err := p.name()
		if err != nil {
			return err
		}
		field.Alias = first.Literal
		field.Name = second.Literal
		return nil
	})

	field.Arguments, err = p.parseArguments()
	if err != nil {
		return field, err
	}
	field.Directives = p.parseDirectives()

	p.try(func() error {
		set, err := p.parseSelectionSet()
		if err != nil {
			return err
		}
		field.SelectionSet = set
		return nil
	})

	return field, nil
}

// parseArguments parses an optional parenthesized argument list with at
// least one pair; an absent parenthesis yields no arguments
func (p *Parser) parseArguments() ([]ast.Argument, error) {
	var arguments []ast.Argument
	if !p.try(func() error {
		if _, err := p.punct("("); err != nil {
			return err
		}
		first, err := p.parseArgument()
		if err != nil {
			return err
		}
		arguments = append(arguments, first)
		for {
			var next ast.Argument
			if !p.try(func() (err error) {
				next, err = p.parseArgument()
				return err
			}) {
				break
			}
			arguments = append(arguments, next)
		}
		_, err = p.punct(")")
		return err
	}) {
		arguments = nil
	}
	if p.fatal != nil {
		return nil, p.fatal
	}
	return arguments, nil
}

func (p *Parser) parseArgument() (ast.Argument, error) {
	name, err := p.name()
	if err != nil {
		return ast.Argument{}, err
	}
	if _, err := p.punct(":"); err != nil {
		return ast.Argument{}, err
	}
	value, err := p.parseValue()
	if err != nil {
		return ast.Argument{}, err
	}
	return ast.Argument{Name: name.Literal, Value: value}, nil
}

// parseDirectives parses zero or more @name argument groups. It never fails,
// a broken directive is left unconsumed for the enclosing production to
// report.
func (p *Parser) parseDirectives() []ast.Directive {
	var directives []ast.Directive
	for {
		var directive ast.Directive
		if !p.try(func() error {
			if _, err := p.punct("@"); err != nil {
				return err
			}
			name, err := p.name()
			if err != nil {
				return err
			}
			arguments, err := p.parseArguments()
			if err != nil {
				return err
			}
			directive = ast.Directive{Name: name.Literal, Arguments: arguments}
			return nil
		}) {
			break
		}
		directives = append(directives, directive)
	}
	return directives
}

func (p *Parser) parseValue() (ast.Value, error) {
	var value ast.Value

	if p.try(func() error {
		name, err := p.name()
		if err != nil {
			return err
		}
		value = ast.EnumValue{Name: name.Literal}
		return nil
	}) {
		return value, nil
	}

	if p.try(func() (err error) {
		value, err = p.parseIntValue()
		return err
	}) {
		return value, nil
	}

	if p.try(func() (err error) {
		value, err = p.parseFloatValue()
		return err
	}) {
		return value, nil
	}

	if p.try(func() (err error) {
		value, err = p.parseStringValue()
		return err
	}) {
		return value, nil
	}

	if p.try(func() (err error) {
		value, err = p.parseBlockStringValue()
		return err
	}) {
		return value, nil
	}

	if p.try(func() error {
		if _, err := p.punct("$"); err != nil {
			return err
		}
		name, err := p.name()
		if err != nil {
			return err
		}
		value = ast.Variable{Name: name.Literal}
		return nil
	}) {
		return value, nil
	}

	if p.try(func() (err error) {
		value, err = p.parseListValue()
		return err
	}) {
		return value, nil
	}

	return p.parseObjectValue()
}

// parseDefaultValue accepts the restricted subset of value productions legal
// after '=' in a variable definition: enum, int, block string and lists
// thereof
func (p *Parser) parseDefaultValue() (ast.Value, error) {
	var value ast.Value

	if p.try(func() error {
		name, err := p.name()
		if err != nil {
			return err
		}
		value = ast.EnumValue{Name: name.Literal}
		return nil
	}) {
		return value, nil
	}

	if p.try(func() (err error) {
		value, err = p.parseIntValue()
		return err
	}) {
		return value, nil
	}

	if p.try(func() (err error) {
		value, err = p.parseBlockStringValue()
		return err
	}) {
		return value, nil
	}

	if _, err := p.punct("["); err != nil {
		return nil, err
	}
	if err := p.enterNesting(); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	var list ast.ListValue
	for {
		var next ast.Value
		if !p.try(func() (err error) {
			next, err = p.parseDefaultValue()
			return err
		}) {
			break
		}
		list.Values = append(list.Values, next)
	}
	if _, err := p.punct("]"); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Parser) parseIntValue() (ast.IntValue, error) {
	tok, err := p.kind(token.IntValue)
	if err != nil {
		return ast.IntValue{}, err
	}
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		// the literal shape is already validated, only the range can fail
		return ast.IntValue{}, p.setFatal(graphqlerror.New(tok.TextPosition, "number too large %q", tok.Literal))
	}
	return ast.IntValue{Value: value}, nil
}

func (p *Parser) parseFloatValue() (ast.FloatValue, error) {
	tok, err := p.kind(token.FloatValue)
	if err != nil {
		return ast.FloatValue{}, err
	}
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return ast.FloatValue{}, p.setFatal(graphqlerror.New(tok.TextPosition, "number too large %q", tok.Literal))
	}
	return ast.FloatValue{Value: value}, nil
}

func (p *Parser) parseStringValue() (ast.StringValue, error) {
	tok, err := p.kind(token.StringValue)
	if err != nil {
		return ast.StringValue{}, err
	}
	value, err := escape.UnquoteString(tok.Literal)
	if err != nil {
		return ast.StringValue{}, p.setFatal(graphqlerror.New(tok.TextPosition, "%s", err))
	}
	return ast.StringValue{Value: value}, nil
}

func (p *Parser) parseBlockStringValue() (ast.StringValue, error) {
	tok, err := p.kind(token.BlockString)
	if err != nil {
		return ast.StringValue{}, err
	}
	return ast.StringValue{Value: escape.UnquoteBlockString(tok.Literal), Block: true}, nil
}

func (p *Parser) parseListValue() (ast.ListValue, error) {
	var list ast.ListValue
	if _, err := p.punct("["); err != nil {
		return list, err
	}
	if err := p.enterNesting(); err != nil {
		return list, err
	}
	defer p.leaveNesting()

	for {
		var next ast.Value
		if !p.try(func() (err error) {
			next, err = p.parseValue()
			return err
		}) {
			break
		}
		list.Values = append(list.Values, next)
	}

	if _, err := p.punct("]"); err != nil {
		return list, err
	}
	return list, nil
}

func (p *Parser) parseObjectValue() (ast.ObjectValue, error) {
	var object ast.ObjectValue
	if _, err := p.punct("{"); err != nil {
		return object, err
	}
	if err := p.enterNesting(); err != nil {
		return object, err
	}
	defer p.leaveNesting()

	for {
		var next ast.ObjectField
		if !p.try(func() error {
			name, err := p.name()
			if err != nil {
				return err
			}
			if _, err := p.punct(":"); err != nil {
				return err
			}
			value, err := p.parseValue()
			if err != nil {
				return err
			}
			next = ast.ObjectField{Name: name.Literal, Value: value}
			return nil
		}) {
			break
		}
		object.Fields = append(object.Fields, next)
	}

	if _, err := p.punct("}"); err != nil {
		return object, err
	}
	return object, nil
}

func (p *Parser) parseFragmentDefinition() (ast.FragmentDefinition, error) {
	var fragment ast.FragmentDefinition

	if _, err := p.ident("fragment"); err != nil {
		return fragment, err
	}
	name, err := p.name()
	if err != nil {
		return fragment, err
	}
	fragment.Name = name.Literal

	if _, err := p.ident("on"); err != nil {
		return fragment, err
	}
	typeName, err := p.name()
	if err != nil {
		return fragment, err
	}
	fragment.TypeCondition = ast.TypeCondition{On: typeName.Literal}

	fragment.Directives = p.parseDirectives()

	fragment.SelectionSet, err = p.parseSelectionSet()
	return fragment, err
}
