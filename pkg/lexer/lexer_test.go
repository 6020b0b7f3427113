package lexer

import (
	"testing"

	. "github.com/franela/goblin"
	"github.com/onsi/gomega"

	"github.com/aylesm/federation/pkg/lexing/token"
)

func TestLexer(t *testing.T) {

	g := Goblin(t)
	gomega.RegisterFailHandler(func(m string, _ ...int) { g.Fail(m) })

	tokenize := func(input string) ([]token.Token, error) {
		lex := NewLexer()
		lex.SetInput(input)
		var out []token.Token
		for {
			tok, err := lex.Read()
			if err != nil {
				return nil, err
			}
			if tok.Kind == token.EOF {
				return out, nil
			}
			out = append(out, tok)
		}
	}

	tokStr := func(input string) []string {
		toks, err := tokenize(input)
		gomega.Expect(err).To(gomega.BeNil())
		out := make([]string, 0, len(toks))
		for _, tok := range toks {
			out = append(out, tok.Literal)
		}
		return out
	}

	tokKind := func(input string) []token.Kind {
		toks, err := tokenize(input)
		gomega.Expect(err).To(gomega.BeNil())
		out := make([]token.Kind, 0, len(toks))
		for _, tok := range toks {
			out = append(out, tok.Kind)
		}
		return out
	}

	tokErr := func(input string) error {
		_, err := tokenize(input)
		gomega.Expect(err).NotTo(gomega.BeNil())
		return err
	}

	g.Describe("lexer", func() {

		g.It("should swallow comments and commas", func() {
			gomega.Expect(tokStr("# hello { world }")).To(gomega.BeEmpty())
			gomega.Expect(tokStr("# x\n,,,")).To(gomega.BeEmpty())
			gomega.Expect(tokStr(", ,,  ,,,  # x")).To(gomega.BeEmpty())
		})

		g.It("should tokenize names and punctuators", func() {
			gomega.Expect(tokStr("a { b }")).To(gomega.Equal([]string{"a", "{", "b", "}"}))
			gomega.Expect(tokKind("a { b }")).To(gomega.Equal([]token.Kind{
				token.Name, token.Punctuator, token.Name, token.Punctuator,
			}))
		})

		g.It("should tokenize a multi line query", func() {
			gomega.Expect(tokStr("query Query {\n\tobject { field }\n}")).To(gomega.Equal(
				[]string{"query", "Query", "{", "object", "{", "field", "}", "}"},
			))
		})

		g.It("should tokenize the spread punctuator", func() {
			gomega.Expect(tokStr("a { ...b }")).To(gomega.Equal([]string{"a", "{", "...", "b", "}"}))
		})

		g.It("should reject a bare dot", func() {
			gomega.Expect(tokErr(". .. ....").Error()).To(gomega.ContainSubstring("bare dot"))
		})

		g.It("should tokenize integers", func() {
			gomega.Expect(tokStr("0")).To(gomega.Equal([]string{"0"}))
			gomega.Expect(tokStr("0,")).To(gomega.Equal([]string{"0"}))
			gomega.Expect(tokStr("0# x")).To(gomega.Equal([]string{"0"}))
			gomega.Expect(tokKind("0")).To(gomega.Equal([]token.Kind{token.IntValue}))
			gomega.Expect(tokStr("-0")).To(gomega.Equal([]string{"-0"}))
			gomega.Expect(tokStr("-132")).To(gomega.Equal([]string{"-132"}))
			gomega.Expect(tokKind("-132")).To(gomega.Equal([]token.Kind{token.IntValue}))
			gomega.Expect(tokStr("a(x: 10) { b }")).To(gomega.Equal(
				[]string{"a", "(", "x", ":", "10", ")", "{", "b", "}"},
			))
			gomega.Expect(tokKind("a(x: 10) { b }")).To(gomega.Equal([]token.Kind{
				token.Name, token.Punctuator, token.Name, token.Punctuator,
				token.IntValue, token.Punctuator, token.Punctuator, token.Name,
				token.Punctuator,
			}))
		})

		g.It("should reject malformed integers", func() {
			for _, input := range []string{"01", "00001", "-", "-01", "-00001", "0bbc"} {
				gomega.Expect(tokErr(input).Error()).To(gomega.ContainSubstring("unsupported integer"))
			}
		})

		g.It("should tokenize floats", func() {
			for _, input := range []string{
				"0.0", "-0.0", "-1.023", "132.0", "0e+0", "0.0e+0", "-132e+0", "1.5e-3",
			} {
				gomega.Expect(tokStr(input)).To(gomega.Equal([]string{input}))
				gomega.Expect(tokKind(input)).To(gomega.Equal([]token.Kind{token.FloatValue}))
			}
		})

		g.It("should reject malformed floats", func() {
			for _, input := range []string{"01.0", "-01.0", "0bbc.0", "0.bbc", "0.bbce0", "0e0", "1e2", "1.0E5"} {
				gomega.Expect(tokErr(input).Error()).To(gomega.ContainSubstring("unsupported float"))
			}
		})

		g.It("should reject floats with a bare leading dot", func() {
			gomega.Expect(tokErr(".0").Error()).To(gomega.ContainSubstring("bare dot"))
			gomega.Expect(tokErr(".1").Error()).To(gomega.ContainSubstring("bare dot"))
		})

		g.It("should tokenize single line strings", func() {
			gomega.Expect(tokStr(`""`)).To(gomega.Equal([]string{`""`}))
			gomega.Expect(tokKind(`""`)).To(gomega.Equal([]token.Kind{token.StringValue}))
			gomega.Expect(tokStr(`"hello"`)).To(gomega.Equal([]string{`"hello"`}))
			gomega.Expect(tokStr(`"my\"quote"`)).To(gomega.Equal([]string{`"my\"quote"`}))
			gomega.Expect(tokKind(`"my\"quote"`)).To(gomega.Equal([]token.Kind{token.StringValue}))
		})

		g.It("should terminate a string after an escaped backslash", func() {
			gomega.Expect(tokStr(`"a\\"`)).To(gomega.Equal([]string{`"a\\"`}))
		})

		g.It("should reject an unterminated string", func() {
			gomega.Expect(tokErr(`"hello`).Error()).To(gomega.ContainSubstring("unterminated string"))
		})

		g.It("should tokenize block strings", func() {
			gomega.Expect(tokStr(`""""""`)).To(gomega.Equal([]string{`""""""`}))
			gomega.Expect(tokKind(`""""""`)).To(gomega.Equal([]token.Kind{token.BlockString}))
			gomega.Expect(tokStr(`"""hello"""`)).To(gomega.Equal([]string{`"""hello"""`}))
			gomega.Expect(tokStr(`"""my "quote" """`)).To(gomega.Equal([]string{`"""my "quote" """`}))
			gomega.Expect(tokKind(`"""my "quote" """`)).To(gomega.Equal([]token.Kind{token.BlockString}))
			gomega.Expect(tokStr(`"""\"""quote" """`)).To(gomega.Equal([]string{`"""\"""quote" """`}))
		})

		g.It("should reject an unterminated block string", func() {
			gomega.Expect(tokErr(`"""hello ""`).Error()).To(gomega.ContainSubstring("unterminated block string"))
		})

		g.It("should track line and char positions", func() {
			lex := NewLexer()
			lex.SetInput("a\n  b # c\n,d")

			tok, err := lex.Read()
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(tok.Literal).To(gomega.Equal("a"))
			gomega.Expect(tok.TextPosition.Line).To(gomega.Equal(1))
			gomega.Expect(tok.TextPosition.Char).To(gomega.Equal(1))

			tok, err = lex.Read()
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(tok.Literal).To(gomega.Equal("b"))
			gomega.Expect(tok.TextPosition.Line).To(gomega.Equal(2))
			gomega.Expect(tok.TextPosition.Char).To(gomega.Equal(3))

			tok, err = lex.Read()
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(tok.Literal).To(gomega.Equal("d"))
			gomega.Expect(tok.TextPosition.Line).To(gomega.Equal(3))
			gomega.Expect(tok.TextPosition.Char).To(gomega.Equal(2))

			tok, err = lex.Read()
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(tok.Kind).To(gomega.Equal(token.EOF))
		})

		g.It("should rewind to a checkpoint", func() {
			lex := NewLexer()
			lex.SetInput("query { a }")

			checkpoint := lex.Checkpoint()

			tok, err := lex.Read()
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(tok.Literal).To(gomega.Equal("query"))

			tok, err = lex.Read()
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(tok.Literal).To(gomega.Equal("{"))

			lex.Reset(checkpoint)

			gomega.Expect(lex.Position().Line).To(gomega.Equal(1))
			gomega.Expect(lex.Position().Char).To(gomega.Equal(1))

			tok, err = lex.Read()
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(tok.Literal).To(gomega.Equal("query"))
			gomega.Expect(tok.Kind).To(gomega.Equal(token.Name))
		})

		g.It("should skip a byte order mark", func() {
			gomega.Expect(tokStr("\uFEFF{ a }")).To(gomega.Equal([]string{"{", "a", "}"}))
		})

		g.It("should report an unexpected character", func() {
			gomega.Expect(tokErr("a %").Error()).To(gomega.ContainSubstring("unexpected character"))
		})
	})
}
