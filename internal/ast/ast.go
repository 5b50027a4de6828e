// Package ast defines the tree produced by the parser: a closed set of
// statement, expression, and type-expression kinds realised as Go
// interfaces with a marker method, switched over by type switch rather
// than double-dispatch visitors (adding a kind means touching every
// switch — that is the closedness the switches stand in for).
package ast

import "github.com/ledalang/leda/internal/source"

// Node is anything with a source Range. It satisfies source.Tree so any
// node can key Source's tree->symbol map directly, by pointer identity.
type Node interface {
	TreeRange() source.Range
}

// Statement tags the statement kinds.
type Statement interface {
	Node
	statementNode()
}

// Expression tags the expression kinds, including Call/MethodCall which
// double as statements via CallStatement.
type Expression interface {
	Node
	expressionNode()
}

// TypeExpr tags the type-expression kinds that annotate declarations and
// back TypeAliasDeclaration.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Block is a sequence of statements plus the type aliases declared
// directly in it. TypeDeclarations is a filtered view over Statements
// (the same *TypeAliasDeclaration pointers appear in both), kept
// separately because the binder and hover/display logic want direct
// access to a block's aliases without rescanning its statements.
type Block struct {
	Range            source.Range
	Statements       []Statement
	TypeDeclarations []*TypeAliasDeclaration
}

func (b *Block) TreeRange() source.Range { return b.Range }

// Declaration is (name, optional type annotation); function parameters,
// local declarations, and for-loop counters all reuse this shape. A
// Declaration node is itself the definition site the binder attaches a
// new Symbol to.
type Declaration struct {
	Range      source.Range
	Name       string
	Annotation TypeExpr // nil if unannotated
}

func (d *Declaration) TreeRange() source.Range { return d.Range }

// ---- Statements ----

type Do struct {
	Range source.Range
	Body  *Block
}

func (s *Do) TreeRange() source.Range { return s.Range }
func (*Do) statementNode()            {}

// IfClause is a (condition, body) pair shared by the primary `if` test
// and every `elseif`.
type IfClause struct {
	Cond Expression
	Body *Block
}

type If struct {
	Range   source.Range
	Primary IfClause
	ElseIfs []IfClause
	Else    *Block // nil if no else branch
}

func (s *If) TreeRange() source.Range { return s.Range }
func (*If) statementNode()            {}

type NumericalFor struct {
	Range   source.Range
	Counter *Declaration
	Start   Expression
	Limit   Expression
	Step    Expression // nil if omitted
	Body    *Block
}

func (s *NumericalFor) TreeRange() source.Range { return s.Range }
func (*NumericalFor) statementNode()            {}

type IteratorFor struct {
	Range        source.Range
	Declarations []*Declaration
	Iterator     Expression
	Body         *Block
}

func (s *IteratorFor) TreeRange() source.Range { return s.Range }
func (*IteratorFor) statementNode()            {}

type While struct {
	Range source.Range
	Cond  Expression
	Body  *Block
}

func (s *While) TreeRange() source.Range { return s.Range }
func (*While) statementNode()            {}

type RepeatUntil struct {
	Range source.Range
	Body  *Block
	Cond  Expression
}

func (s *RepeatUntil) TreeRange() source.Range { return s.Range }
func (*RepeatUntil) statementNode()            {}

type LocalDeclaration struct {
	Range        source.Range
	Declarations []*Declaration
	Values       []Expression
}

func (s *LocalDeclaration) TreeRange() source.Range { return s.Range }
func (*LocalDeclaration) statementNode()            {}

type LocalFunctionDeclaration struct {
	Range    source.Range
	Name     *Declaration
	Function *FunctionExpr
}

func (s *LocalFunctionDeclaration) TreeRange() source.Range { return s.Range }
func (*LocalFunctionDeclaration) statementNode()            {}

// GlobalDeclaration is the `global x [: T] [= e]` form: unlike a bare
// assignment to an undeclared name (which is rejected with
// NoImplicitGlobalFunction outside this form), it explicitly introduces
// a Global-kind symbol in the root scope.
type GlobalDeclaration struct {
	Range        source.Range
	Declarations []*Declaration
	Values       []Expression
}

func (s *GlobalDeclaration) TreeRange() source.Range { return s.Range }
func (*GlobalDeclaration) statementNode()            {}

// Return carries zero or more values so its flow can be checked the same
// way any other TypeList-producing position is (§4.4 S3: the mismatch is
// reported as ValueInListIncompatible{index, kind: Return}).
type Return struct {
	Range  source.Range
	Values []Expression
}

func (s *Return) TreeRange() source.Range { return s.Range }
func (*Return) statementNode()            {}

type Break struct {
	Range source.Range
}

func (s *Break) TreeRange() source.Range { return s.Range }
func (*Break) statementNode()            {}

type Assignment struct {
	Range   source.Range
	Targets []Expression // each is *Name or *Access, or *ErrorExpr after CannotAssignToThis
	Values  []Expression
}

func (s *Assignment) TreeRange() source.Range { return s.Range }
func (*Assignment) statementNode()            {}

// CallStatement wraps a Call or MethodCall expression used in statement
// position.
type CallStatement struct {
	Range source.Range
	Call  Expression // *Call or *MethodCall
}

func (s *CallStatement) TreeRange() source.Range { return s.Range }
func (*CallStatement) statementNode()            {}

type TypeAliasDeclaration struct {
	Range source.Range
	Name  *Declaration
	Type  TypeExpr
}

func (s *TypeAliasDeclaration) TreeRange() source.Range { return s.Range }
func (*TypeAliasDeclaration) statementNode()            {}

// ErrorStatement is the placeholder left by unresolvable statement
// syntax so the tree stays well-formed for the binder and checker.
type ErrorStatement struct {
	Range source.Range
}

func (s *ErrorStatement) TreeRange() source.Range { return s.Range }
func (*ErrorStatement) statementNode()            {}

// ---- Expressions ----

type Nil struct{ Range source.Range }

func (e *Nil) TreeRange() source.Range { return e.Range }
func (*Nil) expressionNode()           {}

type True struct{ Range source.Range }

func (e *True) TreeRange() source.Range { return e.Range }
func (*True) expressionNode()          {}

type False struct{ Range source.Range }

func (e *False) TreeRange() source.Range { return e.Range }
func (*False) expressionNode()         {}

type Number struct {
	Range  source.Range
	Lexeme string
	Value  float64
}

func (e *Number) TreeRange() source.Range { return e.Range }
func (*Number) expressionNode()           {}

type String struct {
	Range source.Range
	Value string
}

func (e *String) TreeRange() source.Range { return e.Range }
func (*String) expressionNode()           {}

type LongString struct {
	Range source.Range
	Value string
	Level int
}

func (e *LongString) TreeRange() source.Range { return e.Range }
func (*LongString) expressionNode()           {}

// Name is every bare identifier used as a value expression (a read or an
// assignment target); the binder resolves it to a Symbol in Value
// context.
type Name struct {
	Range source.Range
	Value string
}

func (e *Name) TreeRange() source.Range { return e.Range }
func (*Name) expressionNode()           {}

type Vararg struct{ Range source.Range }

func (e *Vararg) TreeRange() source.Range { return e.Range }
func (*Vararg) expressionNode()          {}

// TableField is one entry of a table constructor. Key is nil for a
// positional entry (the checker assigns consecutive 1-based
// NumberLiteral keys); otherwise Key is a *String for the `name = expr`
// form or an arbitrary Expression for the `[expr] = expr` form.
type TableField struct {
	Key   Expression
	Value Expression
}

type Table struct {
	Range  source.Range
	Fields []TableField
}

func (e *Table) TreeRange() source.Range { return e.Range }
func (*Table) expressionNode()           {}

// FunctionExpr is both the `function (...) ... end` expression and the
// body of a LocalFunctionDeclaration / desugared `function f() end`
// assignment. ReturnRest, when non-nil, is the varargs tail of the
// declared return-type list.
type FunctionExpr struct {
	Range       source.Range
	Parameters  []*Declaration
	IsVararg    bool
	ReturnTypes []TypeExpr
	ReturnRest  TypeExpr
	Body        *Block
	IsMethod    bool
}

func (e *FunctionExpr) TreeRange() source.Range { return e.Range }
func (*FunctionExpr) expressionNode()           {}

// Access is `target.key` (Key is a *String holding the field name) or
// `target[key]` (Key is an arbitrary Expression).
type Access struct {
	Range  source.Range
	Target Expression
	Key    Expression
}

func (e *Access) TreeRange() source.Range { return e.Range }
func (*Access) expressionNode()           {}

type Call struct {
	Range  source.Range
	Target Expression
	Args   []Expression
}

func (e *Call) TreeRange() source.Range { return e.Range }
func (*Call) expressionNode()           {}

type MethodCall struct {
	Range  source.Range
	Target Expression
	Name   string
	Args   []Expression
}

func (e *MethodCall) TreeRange() source.Range { return e.Range }
func (*MethodCall) expressionNode()           {}

// UnaryOp is the closed set of prefix operators.
type UnaryOp int

const (
	Negate UnaryOp = iota
	Not
	Length
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "-"
	case Not:
		return "not"
	case Length:
		return "#"
	default:
		return "?"
	}
}

type Unary struct {
	Range source.Range
	Op    UnaryOp
	Expr  Expression
}

func (e *Unary) TreeRange() source.Range { return e.Range }
func (*Unary) expressionNode()           {}

// BinaryOp is the closed set of infix operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Concat
	Eq
	Ne
	Le
	Ge
	Lt
	Gt
	And
	Or
)

var binaryOpText = map[BinaryOp]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Pow: "^", Concat: "..",
	Eq: "==", Ne: "~=", Le: "<=", Ge: ">=", Lt: "<", Gt: ">", And: "and", Or: "or",
}

var binaryOpPrecedence = map[BinaryOp]int{
	Or: 0, And: 1,
	Eq: 2, Ne: 2, Le: 2, Ge: 2, Lt: 2, Gt: 2,
	Concat: 3,
	Add:    4, Sub: 4,
	Mul: 5, Div: 5, Mod: 5,
	Pow: 6,
}

func (op BinaryOp) String() string     { return binaryOpText[op] }
func (op BinaryOp) Precedence() int    { return binaryOpPrecedence[op] }
func (op BinaryOp) RightAssociative() bool {
	return op == Pow || op == Concat
}

type Binary struct {
	Range source.Range
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *Binary) TreeRange() source.Range { return e.Range }
func (*Binary) expressionNode()           {}

// Error is the expression-position placeholder left after a parse
// failure, so later stages always see a well-formed tree.
type Error struct{ Range source.Range }

func (e *Error) TreeRange() source.Range { return e.Range }
func (*Error) expressionNode()           {}

// ---- Type expressions ----

type TypeName struct {
	Range source.Range
	Value string
}

func (e *TypeName) TreeRange() source.Range { return e.Range }
func (*TypeName) typeExprNode()             {}

// TypeFunction is a function type annotation: `(names: types): types`.
// ParameterNames parallels Parameters for display purposes; Rest, when
// non-nil, is the type of a trailing `...` parameter.
type TypeFunction struct {
	Range          source.Range
	ParameterNames []string
	Parameters     []TypeExpr
	Rest           TypeExpr
	Returns        []TypeExpr
	ReturnRest     TypeExpr
}

func (e *TypeFunction) TreeRange() source.Range { return e.Range }
func (*TypeFunction) typeExprNode()             {}

type TypeTablePair struct {
	Key   TypeExpr
	Value TypeExpr
}

type TypeTable struct {
	Range source.Range
	Pairs []TypeTablePair
}

func (e *TypeTable) TreeRange() source.Range { return e.Range }
func (*TypeTable) typeExprNode()             {}

type TypeStringLiteral struct {
	Range source.Range
	Value string
}

func (e *TypeStringLiteral) TreeRange() source.Range { return e.Range }
func (*TypeStringLiteral) typeExprNode()             {}

type TypeNumberLiteral struct {
	Range source.Range
	Value float64
}

func (e *TypeNumberLiteral) TreeRange() source.Range { return e.Range }
func (*TypeNumberLiteral) typeExprNode()             {}

type TypeUnion struct {
	Range        source.Range
	Alternatives []TypeExpr
}

func (e *TypeUnion) TreeRange() source.Range { return e.Range }
func (*TypeUnion) typeExprNode()             {}

// TypeError is the type-expression placeholder after a parse failure.
type TypeError struct{ Range source.Range }

func (e *TypeError) TreeRange() source.Range { return e.Range }
func (*TypeError) typeExprNode()             {}
