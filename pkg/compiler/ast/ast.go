// Package ast defines the abstract syntax tree for FerrisScript programs.
package ast

import (
	"bytes"
	"strings"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/token"
	"github.com/dev-parkins/FerrisScript-sub008/pkg/compiler/types"
)

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// LifecycleKind tags a function declaration with the host callback it
// implements, resolved once during type checking so dispatch never compares
// strings at runtime.
type LifecycleKind int

const (
	LifecycleNone LifecycleKind = iota
	LifecycleReady
	LifecycleProcess
	LifecyclePhysicsProcess
	LifecycleInput
	LifecycleEnterTree
	LifecycleExitTree
)

// Program is the root node: the ordered global declarations, function
// declarations, and signal declarations of one script.
type Program struct {
	Globals   []*LetStatement
	Functions []*FunctionDecl
	Signals   []*SignalDecl
}

func (p *Program) TokenLiteral() string {
	if len(p.Globals) > 0 {
		return p.Globals[0].TokenLiteral()
	}
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, g := range p.Globals {
		out.WriteString(g.String())
		out.WriteString("\n")
	}
	for _, s := range p.Signals {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	for _, f := range p.Functions {
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Function returns the function declaration with the given name, or nil.
func (p *Program) Function(name string) *FunctionDecl {
	for _, f := range p.Functions {
		if f.Name.Value == name {
			return f
		}
	}
	return nil
}

// Lifecycle returns the function tagged with the given lifecycle kind,
// or nil when the script does not declare that callback.
func (p *Program) Lifecycle(kind LifecycleKind) *FunctionDecl {
	for _, f := range p.Functions {
		if f.Lifecycle == kind {
			return f
		}
	}
	return nil
}

// ExportAnnotation is an @export / @export_range / @export_enum /
// @export_file annotation preceding a global let declaration.
type ExportAnnotation struct {
	Token token.Token // token.AT
	Name  string      // "export", "export_range", "export_enum", "export_file"
	Args  []Expression
}

func (ea *ExportAnnotation) TokenLiteral() string { return ea.Token.Literal }
func (ea *ExportAnnotation) String() string {
	var out bytes.Buffer
	out.WriteString("@")
	out.WriteString(ea.Name)
	if len(ea.Args) > 0 {
		args := []string{}
		for _, a := range ea.Args {
			args = append(args, a.String())
		}
		out.WriteString("(")
		out.WriteString(strings.Join(args, ", "))
		out.WriteString(")")
	}
	return out.String()
}

// LetStatement: let [mut] name[: Type] = value;
// ResolvedType is stamped by the checker (declared type, or the inferred
// initializer type when the declaration carries no annotation).
type LetStatement struct {
	Token        token.Token // token.LET
	Name         *Identifier
	Mutable      bool
	TypeName     string // "" if omitted
	ResolvedType types.Type
	Value        Expression
	Export       *ExportAnnotation // nil unless annotated (globals only)
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LetStatement) String() string {
	var out bytes.Buffer
	if ls.Export != nil {
		out.WriteString(ls.Export.String())
		out.WriteString(" ")
	}
	out.WriteString("let ")
	if ls.Mutable {
		out.WriteString("mut ")
	}
	out.WriteString(ls.Name.String())
	if ls.TypeName != "" {
		out.WriteString(": ")
		out.WriteString(ls.TypeName)
	}
	if ls.Value != nil {
		out.WriteString(" = ")
		out.WriteString(ls.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// Param is one declared parameter of a function or signal.
type Param struct {
	Token    token.Token // parameter name token
	Name     string
	TypeName string
	Type     types.Type // stamped by the checker
}

func (p *Param) String() string { return p.Name + ": " + p.TypeName }

// FunctionDecl: fn name(params) [-> Type] { body }
type FunctionDecl struct {
	Token          token.Token // token.FN
	Name           *Identifier
	Params         []*Param
	ReturnTypeName string // "" means void
	ReturnType     types.Type
	Body           *BlockStatement
	Lifecycle      LifecycleKind // stamped by the checker
}

func (fd *FunctionDecl) statementNode()       {}
func (fd *FunctionDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDecl) String() string {
	var out bytes.Buffer
	out.WriteString("fn ")
	out.WriteString(fd.Name.String())
	out.WriteString("(")
	params := []string{}
	for _, p := range fd.Params {
		params = append(params, p.String())
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if fd.ReturnTypeName != "" {
		out.WriteString(" -> ")
		out.WriteString(fd.ReturnTypeName)
	}
	out.WriteString(" ")
	out.WriteString(fd.Body.String())
	return out.String()
}

// SignalDecl: signal name(params);
type SignalDecl struct {
	Token  token.Token // token.SIGNAL
	Name   *Identifier
	Params []*Param
}

func (sd *SignalDecl) statementNode()       {}
func (sd *SignalDecl) TokenLiteral() string { return sd.Token.Literal }
func (sd *SignalDecl) String() string {
	var out bytes.Buffer
	out.WriteString("signal ")
	out.WriteString(sd.Name.String())
	out.WriteString("(")
	params := []string{}
	for _, p := range sd.Params {
		params = append(params, p.String())
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(");")
	return out.String()
}

// TargetPath is an assignment target: an identifier or self, followed by
// zero or more field accessors, kept as a flat ordered list.
type TargetPath struct {
	Token  token.Token
	Self   bool
	Root   string // root identifier name; "" when Self
	Fields []string
}

func (tp *TargetPath) String() string {
	root := tp.Root
	if tp.Self {
		root = "self"
	}
	if len(tp.Fields) == 0 {
		return root
	}
	return root + "." + strings.Join(tp.Fields, ".")
}

// AssignStatement: target op value; where op is =, +=, -=, *= or /=.
type AssignStatement struct {
	Token  token.Token // the operator token
	Target *TargetPath
	Op     string
	Value  Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	var out bytes.Buffer
	out.WriteString(as.Target.String())
	out.WriteString(" " + as.Op + " ")
	if as.Value != nil {
		out.WriteString(as.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// BlockStatement: { statements }
type BlockStatement struct {
	Token      token.Token // '{'
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// IfStatement: if cond { } [else { } | else if ...]
type IfStatement struct {
	Token       token.Token // token.IF
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil when there is no else
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(is.Condition.String())
	out.WriteString(" ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// WhileStatement: while cond { }
type WhileStatement struct {
	Token     token.Token // token.WHILE
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	out.WriteString("while ")
	out.WriteString(ws.Condition.String())
	out.WriteString(" ")
	out.WriteString(ws.Body.String())
	return out.String()
}

// ReturnStatement: return [value];
type ReturnStatement struct {
	Token token.Token // token.RETURN
	Value Expression  // nil for bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.Value != nil {
		return "return " + rs.Value.String() + ";"
	}
	return "return;"
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ";"
}

// Identifier
type Identifier struct {
	Token token.Token // token.IDENT
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// SelfExpression: the host node reference.
type SelfExpression struct {
	Token token.Token // token.SELF
}

func (se *SelfExpression) expressionNode()      {}
func (se *SelfExpression) TokenLiteral() string { return se.Token.Literal }
func (se *SelfExpression) String() string       { return "self" }

// IntegerLiteral
type IntegerLiteral struct {
	Token token.Token
	Value int32
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// FloatLiteral
type FloatLiteral struct {
	Token token.Token
	Value float32
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// BooleanLiteral
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// StringLiteral
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return `"` + sl.Value + `"` }

// PrefixExpression: !x, -x
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression: x + y, a && b, ...
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// FieldAccess: base.field
type FieldAccess struct {
	Token token.Token // token.DOT
	Base  Expression
	Field string
}

func (fa *FieldAccess) expressionNode()      {}
func (fa *FieldAccess) TokenLiteral() string { return fa.Token.Literal }
func (fa *FieldAccess) String() string       { return "(" + fa.Base.String() + "." + fa.Field + ")" }

// CallExpression: name(args)
type CallExpression struct {
	Token     token.Token // '('
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ce.Function.String())
	out.WriteString("(")
	args := []string{}
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// StructLiteralField is one name: value pair in a struct literal, in source
// order so the checker can see duplicates.
type StructLiteralField struct {
	Token token.Token // field name token
	Name  string
	Value Expression
}

// StructLiteral: TypeName { field: expr, ... }
type StructLiteral struct {
	Token    token.Token // type name token
	TypeName string
	Fields   []*StructLiteralField
}

func (sl *StructLiteral) expressionNode()      {}
func (sl *StructLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StructLiteral) String() string {
	var out bytes.Buffer
	out.WriteString(sl.TypeName)
	out.WriteString(" { ")
	fields := []string{}
	for _, f := range sl.Fields {
		fields = append(fields, f.Name+": "+f.Value.String())
	}
	out.WriteString(strings.Join(fields, ", "))
	out.WriteString(" }")
	return out.String()
}
