// Package token defines the lexical tokens of FerrisScript.
package token

// Type identifies the kind of a token.
type Type string

// Token is a single lexical token with its 1-based source position.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + Literals
	IDENT      = "IDENT"      // velocity, _process, Vector2
	INT_LIT    = "INT_LIT"    // 42
	FLOAT_LIT  = "FLOAT_LIT"  // 3.14
	STRING_LIT = "STRING_LIT" // "hello"

	// Operators
	ASSIGN       = "="
	PLUS         = "+"
	MINUS        = "-"
	MULT         = "*"
	DIV          = "/"
	PLUS_ASSIGN  = "+="
	MINUS_ASSIGN = "-="
	MULT_ASSIGN  = "*="
	DIV_ASSIGN   = "/="

	NOT = "!"
	EQ  = "=="
	NEQ = "!="
	LT  = "<"
	GT  = ">"
	LTE = "<="
	GTE = ">="
	AND = "&&"
	OR  = "||"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	COLON     = ":"
	DOT       = "."
	ARROW     = "->"
	AT        = "@"
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"

	// Keywords
	LET    = "LET"
	MUT    = "MUT"
	FN     = "FN"
	IF     = "IF"
	ELSE   = "ELSE"
	WHILE  = "WHILE"
	RETURN = "RETURN"
	TRUE   = "TRUE"
	FALSE  = "FALSE"
	SIGNAL = "SIGNAL"
	SELF   = "SELF"
)

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) Type {
	switch ident {
	case "let":
		return LET
	case "mut":
		return MUT
	case "fn":
		return FN
	case "if":
		return IF
	case "else":
		return ELSE
	case "while":
		return WHILE
	case "return":
		return RETURN
	case "true":
		return TRUE
	case "false":
		return FALSE
	case "signal":
		return SIGNAL
	case "self":
		return SELF
	}
	return IDENT
}

// IsAssignOp reports whether t is one of the assignment operators.
func IsAssignOp(t Type) bool {
	switch t {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, MULT_ASSIGN, DIV_ASSIGN:
		return true
	}
	return false
}

// DeclStart reports whether t can begin a top-level declaration.
// Used by the parser when resynchronizing after a syntax error.
func DeclStart(t Type) bool {
	switch t {
	case FN, LET, SIGNAL, AT:
		return true
	}
	return false
}
