// Package lexer tokenizes FerrisScript source code.
package lexer

import (
	"strings"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/diag"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/token"
)

// Lexer produces tokens from FerrisScript source text. Comments are
// discarded, never tokenized. Lexical errors (invalid characters,
// unterminated strings) are collected as diagnostics and the offending
// input is skipped so that tokenization always reaches EOF.
type Lexer struct {
	input        string
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           byte // current char
	line         int  // current line number
	column       int  // current column number

	diags []diag.Diagnostic
}

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespaceAndComments()

	tok.Line = l.line
	tok.Column = l.column

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.EQ)
		} else {
			tok = l.newToken(token.ASSIGN, l.ch)
		}
	case '+':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.PLUS_ASSIGN)
		} else {
			tok = l.newToken(token.PLUS, l.ch)
		}
	case '-':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.MINUS_ASSIGN)
		} else if l.peekChar() == '>' {
			tok = l.twoCharToken(token.ARROW)
		} else {
			tok = l.newToken(token.MINUS, l.ch)
		}
	case '*':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.MULT_ASSIGN)
		} else {
			tok = l.newToken(token.MULT, l.ch)
		}
	case '/':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.DIV_ASSIGN)
		} else {
			tok = l.newToken(token.DIV, l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.NEQ)
		} else {
			tok = l.newToken(token.NOT, l.ch)
		}
	case '<':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.LTE)
		} else {
			tok = l.newToken(token.LT, l.ch)
		}
	case '>':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(token.GTE)
		} else {
			tok = l.newToken(token.GT, l.ch)
		}
	case '&':
		if l.peekChar() == '&' {
			tok = l.twoCharToken(token.AND)
		} else {
			l.invalidChar(tok.Line, tok.Column)
			tok = l.newToken(token.ILLEGAL, l.ch)
		}
	case '|':
		if l.peekChar() == '|' {
			tok = l.twoCharToken(token.OR)
		} else {
			l.invalidChar(tok.Line, tok.Column)
			tok = l.newToken(token.ILLEGAL, l.ch)
		}
	case '(':
		tok = l.newToken(token.LPAREN, l.ch)
	case ')':
		tok = l.newToken(token.RPAREN, l.ch)
	case '{':
		tok = l.newToken(token.LBRACE, l.ch)
	case '}':
		tok = l.newToken(token.RBRACE, l.ch)
	case ',':
		tok = l.newToken(token.COMMA, l.ch)
	case ';':
		tok = l.newToken(token.SEMICOLON, l.ch)
	case ':':
		tok = l.newToken(token.COLON, l.ch)
	case '.':
		tok = l.newToken(token.DOT, l.ch)
	case '@':
		tok = l.newToken(token.AT, l.ch)
	case '"':
		tok.Type = token.STRING_LIT
		tok.Literal = l.readString(tok.Line, tok.Column)
		return tok
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber(tok.Line, tok.Column)
		}
		l.invalidChar(tok.Line, tok.Column)
		tok = l.newToken(token.ILLEGAL, l.ch)
	}

	l.readChar()
	return tok
}

// Diagnostics returns the lexical diagnostics collected so far.
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.diags
}

// Source returns the source text being tokenized.
func (l *Lexer) Source() string {
	return l.input
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// readIdentifier reads an identifier.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads an integer or float literal. Longest match: the literal
// is an int unless a decimal point followed by a digit is present.
func (l *Lexer) readNumber(line, column int) token.Token {
	position := l.position
	isFloat := false

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.input[position:l.position]
	if isFloat {
		return token.Token{Type: token.FLOAT_LIT, Literal: literal, Line: line, Column: column}
	}
	return token.Token{Type: token.INT_LIT, Literal: literal, Line: line, Column: column}
}

// readString reads a string literal with \" \\ \n \t escapes. A newline or
// EOF before the closing quote is an unterminated string diagnostic.
func (l *Lexer) readString(line, column int) string {
	start := l.position // opening quote
	var out strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case '"':
			l.readChar() // consume closing quote
			return out.String()
		case '\n', 0:
			l.diags = append(l.diags, diag.New("E002", line, column, l.position-start))
			return out.String()
		case '\\':
			switch l.peekChar() {
			case '"':
				out.WriteByte('"')
				l.readChar()
			case '\\':
				out.WriteByte('\\')
				l.readChar()
			case 'n':
				out.WriteByte('\n')
				l.readChar()
			case 't':
				out.WriteByte('\t')
				l.readChar()
			default:
				out.WriteByte(l.ch)
			}
		default:
			out.WriteByte(l.ch)
		}
	}
}

// skipWhitespaceAndComments skips whitespace and // comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		return
	}
}

// newToken creates a new single-character token.
func (l *Lexer) newToken(tokenType token.Type, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column}
}

// twoCharToken consumes the peeked character and builds a two-character
// operator token.
func (l *Lexer) twoCharToken(tokenType token.Type) token.Token {
	line, column := l.line, l.column
	ch := l.ch
	l.readChar()
	return token.Token{Type: tokenType, Literal: string(ch) + string(l.ch), Line: line, Column: column}
}

func (l *Lexer) invalidChar(line, column int) {
	l.diags = append(l.diags, diag.New("E001", line, column, 1, string(l.ch)))
}

// isLetter checks if a character can start or continue an identifier.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if a character is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
