package lexer

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/token"
)

func collect(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := `= == + += - -= -> * *= / /= ! != < <= > >= && || ( ) { } , ; : . @`

	want := []token.Type{
		token.ASSIGN, token.EQ, token.PLUS, token.PLUS_ASSIGN,
		token.MINUS, token.MINUS_ASSIGN, token.ARROW,
		token.MULT, token.MULT_ASSIGN, token.DIV, token.DIV_ASSIGN,
		token.NOT, token.NEQ, token.LT, token.LTE, token.GT, token.GTE,
		token.AND, token.OR,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.COMMA, token.SEMICOLON, token.COLON, token.DOT, token.AT,
		token.EOF,
	}

	toks := collect(input)
	be.Equal(t, len(toks), len(want))
	for i, tok := range toks {
		be.Equal(t, tok.Type, want[i])
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := collect(`let mut fn signal if else while return true false self health_2`)

	want := []struct {
		typ token.Type
		lit string
	}{
		{token.LET, "let"},
		{token.MUT, "mut"},
		{token.FN, "fn"},
		{token.SIGNAL, "signal"},
		{token.IF, "if"},
		{token.ELSE, "else"},
		{token.WHILE, "while"},
		{token.RETURN, "return"},
		{token.TRUE, "true"},
		{token.FALSE, "false"},
		{token.SELF, "self"},
		{token.IDENT, "health_2"},
	}

	for i, w := range want {
		be.Equal(t, toks[i].Type, w.typ)
		be.Equal(t, toks[i].Literal, w.lit)
	}
}

func TestNumberLiterals(t *testing.T) {
	toks := collect(`42 3.125 10.`)

	be.Equal(t, toks[0].Type, token.INT_LIT)
	be.Equal(t, toks[0].Literal, "42")
	be.Equal(t, toks[1].Type, token.FLOAT_LIT)
	be.Equal(t, toks[1].Literal, "3.125")

	// a dot not followed by a digit stays separate
	be.Equal(t, toks[2].Type, token.INT_LIT)
	be.Equal(t, toks[2].Literal, "10")
	be.Equal(t, toks[3].Type, token.DOT)
}

func TestStringEscapes(t *testing.T) {
	toks := collect(`"a\"b\\c\nd\te"`)

	be.Equal(t, toks[0].Type, token.STRING_LIT)
	be.Equal(t, toks[0].Literal, "a\"b\\c\nd\te")
}

func TestUnterminatedString(t *testing.T) {
	l := New("let s: String = \"oops\nlet x: i32 = 1;")
	for {
		if l.NextToken().Type == token.EOF {
			break
		}
	}

	diags := l.Diagnostics()
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Code, "E002")
	be.Equal(t, diags[0].Line, 1)
}

func TestInvalidCharacter(t *testing.T) {
	l := New("let x: i32 = 1 # 2;")
	for {
		if l.NextToken().Type == token.EOF {
			break
		}
	}

	diags := l.Diagnostics()
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Code, "E001")
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := collect("// leading\nlet x: i32 = 1; // trailing\n// final")

	want := []token.Type{
		token.LET, token.IDENT, token.COLON, token.IDENT,
		token.ASSIGN, token.INT_LIT, token.SEMICOLON, token.EOF,
	}
	be.Equal(t, len(toks), len(want))
	for i, tok := range toks {
		be.Equal(t, tok.Type, want[i])
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks := collect("let x: i32 = 1;\nlet y: i32 = 2;")

	be.Equal(t, toks[0].Line, 1)
	be.Equal(t, toks[0].Column, 1)

	// second statement starts on line 2, column 1
	be.Equal(t, toks[7].Type, token.LET)
	be.Equal(t, toks[7].Line, 2)
	be.Equal(t, toks[7].Column, 1)
}
