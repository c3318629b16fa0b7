// Package ast defines the badbasic AST node types.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	Offset    int    `json:"offset"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes. Every node can stand
// as the root of a line, so there is no separate statement interface.
type Node interface {
	Kind() string
	NodeSpan() Span
	node() // sealed marker
}

// BinaryOp is the closed set of binary operators the tokenizer can produce.
type BinaryOp int

const (
	OpUnknown BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var binaryOps = map[string]BinaryOp{
	"+": OpAdd,
	"-": OpSub,
	"*": OpMul,
	"/": OpDiv,
}

// LookupBinaryOp maps operator text to its BinaryOp. Text that is not a
// single known operator (for example "+-") yields OpUnknown.
func LookupBinaryOp(text string) BinaryOp {
	if op, ok := binaryOps[text]; ok {
		return op
	}
	return OpUnknown
}

// BinaryOps returns every known operator.
func BinaryOps() []BinaryOp {
	return []BinaryOp{OpAdd, OpSub, OpMul, OpDiv}
}

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Builtin is the closed set of functions implemented by the interpreter.
type Builtin int

const (
	BuiltinUnknown Builtin = iota
	BuiltinPrint
)

var builtinNames = map[string]Builtin{
	"PRINT": BuiltinPrint,
}

// LookupBuiltin maps a function name to its Builtin, or BuiltinUnknown.
func LookupBuiltin(name string) Builtin {
	if b, ok := builtinNames[name]; ok {
		return b
	}
	return BuiltinUnknown
}

// Builtins returns every known built-in.
func Builtins() []Builtin {
	return []Builtin{BuiltinPrint}
}

func (b Builtin) String() string {
	switch b {
	case BuiltinPrint:
		return "PRINT"
	default:
		return "<unknown>"
	}
}

// --- Literals ---

// NumberLiteral keeps the digits as written; the interpreter converts them.
type NumberLiteral struct {
	Span Span
	Text string
}

func (n *NumberLiteral) Kind() string   { return "NumberLiteral" }
func (n *NumberLiteral) NodeSpan() Span { return n.Span }
func (n *NumberLiteral) node()          {}

// StringLiteral is part of the node model but strings are not a value type;
// the parser never produces one.
type StringLiteral struct {
	Span  Span
	Value string
}

func (n *StringLiteral) Kind() string   { return "StringLiteral" }
func (n *StringLiteral) NodeSpan() Span { return n.Span }
func (n *StringLiteral) node()          {}

// --- Identifiers ---

type Identifier struct {
	Span Span
	Name string
}

func (n *Identifier) Kind() string   { return "Identifier" }
func (n *Identifier) NodeSpan() Span { return n.Span }
func (n *Identifier) node()          {}

// --- Compound forms ---

// Assignment is `LET Target = Value`.
type Assignment struct {
	Span   Span
	Target *Identifier
	Value  Node
}

func (n *Assignment) Kind() string   { return "Assignment" }
func (n *Assignment) NodeSpan() Span { return n.Span }
func (n *Assignment) node()          {}

// BinaryExpr is `Left Op Right`. OpText holds the operator as written so an
// OpUnknown can still be reported.
type BinaryExpr struct {
	Span   Span
	Op     BinaryOp
	OpText string
	Left   Node
	Right  Node
}

func (n *BinaryExpr) Kind() string   { return "BinaryExpr" }
func (n *BinaryExpr) NodeSpan() Span { return n.Span }
func (n *BinaryExpr) node()          {}

// FnCall is `Name(Args...)`.
type FnCall struct {
	Span    Span
	Name    string
	Builtin Builtin
	Args    []Node
}

func (n *FnCall) Kind() string   { return "FnCall" }
func (n *FnCall) NodeSpan() Span { return n.Span }
func (n *FnCall) node()          {}

// --- Construction helpers ---

func NewNumber(text string, span Span) *NumberLiteral {
	return &NumberLiteral{Span: span, Text: text}
}

func NewString(value string, span Span) *StringLiteral {
	return &StringLiteral{Span: span, Value: value}
}

func NewIdent(name string, span Span) *Identifier {
	return &Identifier{Span: span, Name: name}
}

func NewAssignment(target *Identifier, value Node, span Span) *Assignment {
	return &Assignment{Span: span, Target: target, Value: value}
}

func NewBinary(opText string, left, right Node, span Span) *BinaryExpr {
	return &BinaryExpr{
		Span:   span,
		Op:     LookupBinaryOp(opText),
		OpText: opText,
		Left:   left,
		Right:  right,
	}
}

func NewCall(name string, span Span) *FnCall {
	return &FnCall{Span: span, Name: name, Builtin: LookupBuiltin(name)}
}

// AddArg appends an argument to the call.
func (n *FnCall) AddArg(arg Node) {
	n.Args = append(n.Args, arg)
}
