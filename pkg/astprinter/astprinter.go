// Package astprinter prints an ast.Document back into query document text.
//
// The output is the canonical form: one selection per line, two space
// indentation, every definition terminated by a newline. Printing a parsed
// document and parsing the printed text yields a structurally equal document.
package astprinter

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aylesm/federation/pkg/ast"
)

// Print writes the canonical text form of document to out.
func Print(document ast.Document, out io.Writer) error {
	p := printer{out: out}
	p.printDocument(document)
	return p.err
}

// PrintString returns the canonical text form of document.
func PrintString(document ast.Document) (string, error) {
	buff := &bytes.Buffer{}
	err := Print(document, buff)
	return buff.String(), err
}

type printer struct {
	out io.Writer
	err error
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.out, s)
}

func (p *printer) printDocument(document ast.Document) {
	for _, definition := range document.Definitions {
		p.printDefinition(definition)
	}
}

func (p *printer) printDefinition(definition ast.Definition) {
	switch d := definition.(type) {
	case ast.SelectionSet:
		p.printSelectionSet(d, 0)
	case ast.Query:
		p.printOperation("query", d.Name, d.VariableDefinitions, d.Directives, d.SelectionSet)
	case ast.Mutation:
		p.printOperation("mutation", d.Name, d.VariableDefinitions, d.Directives, d.SelectionSet)
	case ast.Subscription:
		p.printOperation("subscription", d.Name, d.VariableDefinitions, d.Directives, d.SelectionSet)
	case ast.FragmentDefinition:
		p.write("fragment ")
		p.write(d.Name)
		p.write(" on ")
		p.write(d.TypeCondition.On)
		p.printDirectives(d.Directives)
		p.write(" ")
		p.printSelectionSet(d.SelectionSet, 0)
	default:
		p.fail(fmt.Errorf("astprinter: unknown definition type %T", definition))
		return
	}
	p.write("\n")
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) printOperation(operationType, name string, variableDefinitions []ast.VariableDefinition, directives []ast.Directive, set ast.SelectionSet) {
	p.write(operationType)
	if name != "" {
		p.write(" ")
		p.write(name)
	}
	if len(variableDefinitions) > 0 {
		if name == "" {
			p.write(" ")
		}
		p.write("(")
		for i, definition := range variableDefinitions {
			if i > 0 {
				p.write(", ")
			}
			p.write("$")
			p.write(definition.Name)
			p.write(": ")
			p.printType(definition.Type)
			if definition.DefaultValue != nil {
				p.write(" = ")
				p.printValue(definition.DefaultValue)
			}
		}
		p.write(")")
	}
	p.printDirectives(directives)
	p.write(" ")
	p.printSelectionSet(set, 0)
}

func (p *printer) printType(t ast.Type) {
	switch named := t.(type) {
	case ast.NamedType:
		p.write(named.Name)
	default:
		p.fail(fmt.Errorf("astprinter: unknown type %T", t))
	}
}

func (p *printer) printSelectionSet(set ast.SelectionSet, indent int) {
	p.write("{\n")
	for _, selection := range set.Items {
		p.printSelection(selection, indent+1)
	}
	p.pad(indent)
	p.write("}")
}

func (p *printer) printSelection(selection ast.Selection, indent int) {
	p.pad(indent)
	switch s := selection.(type) {
	case ast.Field:
		if s.Alias != "" {
			p.write(s.Alias)
			p.write(": ")
		}
		p.write(s.Name)
		p.printArguments(s.Arguments)
		p.printDirectives(s.Directives)
		if !s.SelectionSet.IsEmpty() {
			p.write(" ")
			p.printSelectionSet(s.SelectionSet, indent)
		}
	case ast.FragmentSpread:
		p.write("...")
		p.write(s.FragmentName)
		p.printDirectives(s.Directives)
	case ast.InlineFragment:
		p.write("...")
		if s.TypeCondition.IsSet() {
			p.write(" on ")
			p.write(s.TypeCondition.On)
		}
		p.printDirectives(s.Directives)
		p.write(" ")
		p.printSelectionSet(s.SelectionSet, indent)
	default:
		p.fail(fmt.Errorf("astprinter: unknown selection type %T", selection))
	}
	p.write("\n")
}

func (p *printer) printArguments(arguments []ast.Argument) {
	if len(arguments) == 0 {
		return
	}
	p.write("(")
	for i, argument := range arguments {
		if i > 0 {
			p.write(", ")
		}
		p.write(argument.Name)
		p.write(": ")
		p.printValue(argument.Value)
	}
	p.write(")")
}

func (p *printer) printDirectives(directives []ast.Directive) {
	for _, directive := range directives {
		p.write(" @")
		p.write(directive.Name)
		p.printArguments(directive.Arguments)
	}
}

func (p *printer) printValue(value ast.Value) {
	switch v := value.(type) {
	case ast.IntValue:
		p.write(strconv.FormatInt(v.Value, 10))
	case ast.FloatValue:
		p.write(formatFloat(v.Value))
	case ast.StringValue:
		if v.Block {
			p.write(blockQuoteString(v.Value))
		} else {
			p.write(quoteString(v.Value))
		}
	case ast.EnumValue:
		p.write(v.Name)
	case ast.Variable:
		p.write("$")
		p.write(v.Name)
	case ast.ListValue:
		p.write("[")
		for i, item := range v.Values {
			if i > 0 {
				p.write(", ")
			}
			p.printValue(item)
		}
		p.write("]")
	case ast.ObjectValue:
		p.write("{")
		for i, field := range v.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(field.Name)
			p.write(": ")
			p.printValue(field.Value)
		}
		p.write("}")
	default:
		p.fail(fmt.Errorf("astprinter: unknown value type %T", value))
	}
}

func (p *printer) pad(indent int) {
	for i := 0; i < indent; i++ {
		p.write("  ")
	}
}

// formatFloat keeps the literal lexable as a FloatValue: a fraction or a
// signed exponent must be present
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// blockQuoteString emits a block string literal. The body sits on its own
// lines so that dedenting and blank line trimming on reparse recover the
// value exactly.
func blockQuoteString(s string) string {
	return "\"\"\"\n" + strings.Replace(s, `"""`, `\"""`, -1) + "\n\"\"\""
}

// quoteString emits a single line string literal using only escapes the
// query grammar accepts
func quoteString(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 2)
	out.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		case '\b':
			out.WriteString(`\b`)
		case '\f':
			out.WriteString(`\f`)
		case '\n':
			out.WriteString(`\n`)
		case '\r':
			out.WriteString(`\r`)
		case '\t':
			out.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&out, `\u%04X`, r)
			} else {
				out.WriteRune(r)
			}
		}
	}
	out.WriteByte('"')
	return out.String()
}
