package formula

import (
	"github.com/limaJavier/satformula/pkg/cnf"
)

// Encoder translates formulas into equisatisfiable CNF by means of the Tseitin transformation.
// Every composite sub-formula is given a fresh variable from the pool which is made equivalent to it.
// An Encoder is not safe for concurrent use, though several encoders may share a pool.
type Encoder struct {
	pool       *IDPool
	clauses    [][]int
	constantID int // Variable standing for True in the current encoding, 0 until a constant is met
}

func NewEncoder(pool *IDPool) *Encoder {
	if pool == nil {
		pool = DefaultPool
	}
	return &Encoder{pool: pool}
}

// Encode returns the literal equivalent to f under the returned clauses.
// If f holds a constant, the clauses also contain the unit clause fixing the True variable.
func (encoder *Encoder) Encode(f Formula) (literal int, clauses [][]int) {
	encoder.clauses = [][]int{}
	encoder.constantID = 0 // The pool may have been restarted since the last call

	literal = f.encode(encoder)
	if encoder.constantID != 0 {
		encoder.clauses = append(encoder.clauses, []int{encoder.constantID})
	}

	clauses = encoder.clauses
	encoder.clauses = nil
	return literal, clauses
}

// CNF encodes f and asserts its literal, returning a CNF satisfiable if and only if f is
func (encoder *Encoder) CNF(f Formula) *cnf.CNF {
	literal, clauses := encoder.Encode(f)
	instance := cnf.New(clauses...)
	instance.Append([]int{literal})
	instance.NV = max(instance.NV, encoder.pool.Top())
	return instance
}

// ToCNF encodes f with the DefaultPool
func ToCNF(f Formula) *cnf.CNF {
	return NewEncoder(DefaultPool).CNF(f)
}

func (encoder *Encoder) fresh() int {
	return encoder.pool.NextID()
}

func (encoder *Encoder) emit(clauses ...[]int) {
	encoder.clauses = append(encoder.clauses, clauses...)
}

func (c Const) encode(encoder *Encoder) int {
	if encoder.constantID == 0 {
		encoder.constantID = encoder.pool.trueID()
	}

	if c.Value {
		return encoder.constantID
	}
	return -encoder.constantID
}

func (v *Var) encode(*Encoder) int {
	return v.id
}

func (n *Not) encode(encoder *Encoder) int {
	fresh := encoder.fresh()
	sub := n.Child.encode(encoder)
	encoder.emit(
		[]int{fresh, sub},   // fresh <- ~sub
		[]int{-fresh, -sub}, // fresh -> ~sub
	)
	return fresh
}

func (a *And) encode(encoder *Encoder) int {
	fresh := encoder.fresh()
	backward := []int{fresh} // fresh <- (sub & sub & ...)
	for _, child := range a.Children {
		sub := child.encode(encoder)
		encoder.emit([]int{-fresh, sub}) // fresh -> sub
		backward = append(backward, -sub)
	}
	encoder.emit(backward)
	return fresh
}

func (o *Or) encode(encoder *Encoder) int {
	fresh := encoder.fresh()
	forward := []int{-fresh} // fresh -> (sub | sub | ...)
	for _, child := range o.Children {
		sub := child.encode(encoder)
		encoder.emit([]int{fresh, -sub}) // fresh <- sub
		forward = append(forward, sub)
	}
	encoder.emit(forward)
	return fresh
}

func (i *Implies) encode(encoder *Encoder) int {
	fresh := encoder.fresh()
	left := i.Left.encode(encoder)
	right := i.Right.encode(encoder)
	encoder.emit(
		[]int{fresh, left},          // fresh <- (left > right)
		[]int{fresh, -right},        // fresh <- (left > right)
		[]int{-fresh, -left, right}, // fresh -> (left > right)
	)
	return fresh
}

func (e *Equals) encode(encoder *Encoder) int {
	fresh := encoder.fresh()
	left := e.Left.encode(encoder)
	right := e.Right.encode(encoder)
	encoder.emit(
		[]int{fresh, -left, -right}, // fresh <- (left == right)
		[]int{fresh, left, right},   // fresh <- (left == right)
		[]int{-fresh, -left, right}, // fresh -> (left == right)
		[]int{-fresh, left, -right}, // fresh -> (left == right)
	)
	return fresh
}

func (n *NotEquals) encode(encoder *Encoder) int {
	fresh := encoder.fresh()
	left := n.Left.encode(encoder)
	right := n.Right.encode(encoder)
	encoder.emit(
		[]int{fresh, -left, right},   // fresh <- (left != right)
		[]int{fresh, left, -right},   // fresh <- (left != right)
		[]int{-fresh, -left, -right}, // fresh -> (left != right)
		[]int{-fresh, left, right},   // fresh -> (left != right)
	)
	return fresh
}
