package formula

import (
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// A Formula is any boolean formula built from variables and constants with the connectives
// Not, And, Or, Implies, Equals and NotEquals.
//
// Syntax rules:
//
//   - Var and Const are formulas
//   - if a is a formula, then Negate(a) is a formula
//   - if a, b are formulas, then Conjunction(a, b), Disjunction(a, b), Implication(a, b), Equivalence(a, b) and Xor(a, b) are formulas
//
// Example:
//
//	Implication(Conjoin(NewVar(1), Negate(NewVar(2))), False) // Implies(And(Var(1),Not(Var(2))),Const(false))
type Formula interface {
	fmt.Stringer
	fmt.GoStringer

	// Eval evaluates the formula under the given assignment
	Eval(assignment Assignment) bool

	// encode emits the Tseitin clauses of the formula and returns the literal standing for it
	encode(encoder *Encoder) int
}

// Assignment gives a truth value to every variable identifier
type Assignment interface {
	Value(variable int) bool
}

// Valuation is a map based Assignment; missing variables are false
type Valuation map[int]bool

func (valuation Valuation) Value(variable int) bool {
	return valuation[variable]
}

//** Atomic formulas

// Const is one of the two logical constants, verum and falsum
type Const struct {
	Value bool
}

var (
	True  Formula = Const{Value: true}
	False Formula = Const{Value: false}
)

func NewConst(value bool) Formula {
	return Const{Value: value}
}

func (c Const) String() string {
	if c.Value {
		return "True"
	}
	return "False"
}

func (c Const) GoString() string {
	return fmt.Sprintf("Const(%v)", c.Value)
}

func (c Const) Eval(Assignment) bool {
	return c.Value
}

// Var is a propositional variable, identified either by its number or by an arbitrary comparable name
type Var struct {
	id   int
	name any // nil for numbered variables
}

// NewVar creates a variable in the DefaultPool. See IDPool.Var
func NewVar(content any) *Var {
	return DefaultPool.Var(content)
}

// Var creates a variable bound to the pool.
// An int content is used as the variable identifier itself and is claimed in the pool (see IDPool.Claim);
// it panics if the identifier already belongs to a named or auxiliary variable.
// Any other (comparable) content is a name which is given a fresh identifier on first use.
func (pool *IDPool) Var(content any) *Var {
	switch content := content.(type) {
	case int:
		if err := pool.Claim(content); err != nil {
			log.Panic(err)
		}
		return &Var{id: content}
	case nil:
		log.Panic("variable content must not be nil")
	}
	return &Var{id: pool.ID(content), name: content}
}

func (v *Var) ID() int {
	return v.id
}

// Name returns the name of the variable, or nil if the variable was created from its number
func (v *Var) Name() any {
	return v.name
}

// String renders named variables as x_name, or as a quoted string when the name is not made of letters, digits and underscores
func (v *Var) String() string {
	if v.name == nil {
		return fmt.Sprintf("x%d", v.id)
	}
	name := fmt.Sprint(v.name)
	if isIdentTail(name) {
		return "x_" + name
	}
	return strconv.Quote(name)
}

func (v *Var) GoString() string {
	if v.name != nil {
		return fmt.Sprintf("Var(%#v)", v.name)
	}
	return fmt.Sprintf("Var(%d)", v.id)
}

func (v *Var) Eval(assignment Assignment) bool {
	return assignment.Value(v.id)
}

//** Composite formulas

// Not is the logical negation
type Not struct {
	Child Formula
}

func Negate(f Formula) Formula {
	return &Not{Child: f}
}

func (n *Not) String() string {
	if isAtomic(n.Child) {
		return "~" + n.Child.String()
	}
	return "~(" + n.Child.String() + ")"
}

func (n *Not) GoString() string {
	return fmt.Sprintf("Not(%#v)", n.Child)
}

func (n *Not) Eval(assignment Assignment) bool {
	return !n.Child.Eval(assignment)
}

// And is the n-ary conjunction; it is True when empty and the identity when unary
type And struct {
	Children []Formula
}

func Conjunction(children ...Formula) *And {
	return &And{Children: children}
}

// Add extends the conjunction in place; the children of an added conjunction are merged
func (a *And) Add(fs ...Formula) *And {
	for _, f := range fs {
		if other, ok := f.(*And); ok {
			a.Children = append(a.Children, other.Children...)
		} else {
			a.Children = append(a.Children, f)
		}
	}
	return a
}

func (a *And) String() string {
	if len(a.Children) == 0 {
		return True.String()
	}
	return joinChildren(a.Children, "&")
}

func (a *And) GoString() string {
	return goStringChildren("And", a.Children)
}

func (a *And) Eval(assignment Assignment) bool {
	return lo.EveryBy(a.Children, func(child Formula) bool { return child.Eval(assignment) })
}

// Or is the n-ary disjunction; it is False when empty and the identity when unary
type Or struct {
	Children []Formula
}

func Disjunction(children ...Formula) *Or {
	return &Or{Children: children}
}

// Add extends the disjunction in place; the children of an added disjunction are merged
func (o *Or) Add(fs ...Formula) *Or {
	for _, f := range fs {
		if other, ok := f.(*Or); ok {
			o.Children = append(o.Children, other.Children...)
		} else {
			o.Children = append(o.Children, f)
		}
	}
	return o
}

func (o *Or) String() string {
	if len(o.Children) == 0 {
		return False.String()
	}
	return joinChildren(o.Children, "|")
}

func (o *Or) GoString() string {
	return goStringChildren("Or", o.Children)
}

func (o *Or) Eval(assignment Assignment) bool {
	return lo.SomeBy(o.Children, func(child Formula) bool { return child.Eval(assignment) })
}

// Implies is the logical implication Left > Right
type Implies struct {
	Left, Right Formula
}

func Implication(left, right Formula) *Implies {
	return &Implies{Left: left, Right: right}
}

func (i *Implies) String() string {
	return joinChildren([]Formula{i.Left, i.Right}, ">")
}

func (i *Implies) GoString() string {
	return goStringChildren("Implies", []Formula{i.Left, i.Right})
}

func (i *Implies) Eval(assignment Assignment) bool {
	return !i.Left.Eval(assignment) || i.Right.Eval(assignment)
}

// Equals is the logical biconditional
type Equals struct {
	Left, Right Formula
}

func Equivalence(left, right Formula) *Equals {
	return &Equals{Left: left, Right: right}
}

func (e *Equals) String() string {
	return joinChildren([]Formula{e.Left, e.Right}, "==")
}

func (e *Equals) GoString() string {
	return goStringChildren("Equals", []Formula{e.Left, e.Right})
}

func (e *Equals) Eval(assignment Assignment) bool {
	return e.Left.Eval(assignment) == e.Right.Eval(assignment)
}

// NotEquals is the exclusive disjunction
type NotEquals struct {
	Left, Right Formula
}

func Xor(left, right Formula) *NotEquals {
	return &NotEquals{Left: left, Right: right}
}

func (n *NotEquals) String() string {
	return joinChildren([]Formula{n.Left, n.Right}, "!=")
}

func (n *NotEquals) GoString() string {
	return goStringChildren("NotEquals", []Formula{n.Left, n.Right})
}

func (n *NotEquals) Eval(assignment Assignment) bool {
	return n.Left.Eval(assignment) != n.Right.Eval(assignment)
}

//** Combination

// Conjoin combines two formulas the way the "&" operator does: two conjunctions are merged,
// a conjunction on the left gets b appended, anything else becomes a binary conjunction.
// Neither operand is modified.
func Conjoin(a, b Formula) Formula {
	left, leftIsAnd := a.(*And)
	right, rightIsAnd := b.(*And)
	switch {
	case leftIsAnd && rightIsAnd:
		return Conjunction(concat(left.Children, right.Children...)...)
	case leftIsAnd:
		return Conjunction(concat(left.Children, b)...)
	default:
		return Conjunction(a, b)
	}
}

// Disjoin is the "|" counterpart of Conjoin
func Disjoin(a, b Formula) Formula {
	left, leftIsOr := a.(*Or)
	right, rightIsOr := b.(*Or)
	switch {
	case leftIsOr && rightIsOr:
		return Disjunction(concat(left.Children, right.Children...)...)
	case leftIsOr:
		return Disjunction(concat(left.Children, b)...)
	default:
		return Disjunction(a, b)
	}
}

// Vars returns the sorted identifiers of the variables occurring in f
func Vars(f Formula) []int {
	seen := make(map[int]bool)
	collectVars(f, seen)
	return sortedKeys(seen)
}

func collectVars(f Formula, seen map[int]bool) {
	switch f := f.(type) {
	case *Var:
		seen[f.id] = true
	case *Not:
		collectVars(f.Child, seen)
	case *And:
		lo.ForEach(f.Children, func(child Formula, _ int) { collectVars(child, seen) })
	case *Or:
		lo.ForEach(f.Children, func(child Formula, _ int) { collectVars(child, seen) })
	case *Implies:
		collectVars(f.Left, seen)
		collectVars(f.Right, seen)
	case *Equals:
		collectVars(f.Left, seen)
		collectVars(f.Right, seen)
	case *NotEquals:
		collectVars(f.Left, seen)
		collectVars(f.Right, seen)
	}
}

func isAtomic(f Formula) bool {
	switch f.(type) {
	case *Var, Const:
		return true
	}
	return false
}

// isIdentTail reports whether "x_" followed by name scans as a single identifier
func isIdentTail(name string) bool {
	return name != "" && lo.EveryBy([]rune(name), func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

func joinChildren(children []Formula, symbol string) string {
	return strings.Join(lo.Map(children, func(child Formula, _ int) string {
		if isAtomic(child) {
			return child.String()
		}
		return "(" + child.String() + ")"
	}), " "+symbol+" ")
}

func goStringChildren(name string, children []Formula) string {
	return name + "(" + strings.Join(lo.Map(children, func(child Formula, _ int) string { return child.GoString() }), ",") + ")"
}

func concat(children []Formula, more ...Formula) []Formula {
	result := make([]Formula, 0, len(children)+len(more))
	result = append(result, children...)
	return append(result, more...)
}

func sortedKeys(set map[int]bool) []int {
	keys := lo.Keys(set)
	slices.Sort(keys)
	return keys
}
