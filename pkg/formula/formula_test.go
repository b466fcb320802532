package formula

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVar(t *testing.T) {
	pool := NewIDPool()

	named := pool.Var("a")
	numbered := pool.Var(4)
	other := pool.Var("b")

	assert.Equal(t, 1, named.ID())
	assert.Equal(t, "a", named.Name())
	assert.Equal(t, 4, numbered.ID())
	assert.Nil(t, numbered.Name())
	assert.Equal(t, 5, other.ID(), "numbered variables reserve their identifiers")
	assert.Equal(t, 1, pool.Var("a").ID())
	assert.Panics(t, func() { pool.Var(0) })
	assert.Panics(t, func() { pool.Var(nil) })
}

func TestNumberedVarCollision(t *testing.T) {
	//** Arrange
	pool := NewIDPool()
	a := pool.Var("a")
	auxiliary := pool.NextID()
	numbered := pool.Var(3)

	//** Act
	err := pool.Claim(a.ID())

	//** Assert
	assert.ErrorIs(t, err, ErrIDTaken)
	assert.ErrorIs(t, pool.Claim(auxiliary), ErrIDTaken)
	assert.Panics(t, func() { pool.Var(a.ID()) })
	assert.Panics(t, func() { pool.Var(auxiliary) })
	assert.Equal(t, numbered.ID(), pool.Var(3).ID(), "the same number may be used again")
	assert.Equal(t, 4, pool.Var("b").ID())
	assert.Error(t, pool.Claim(0))

	pool.Restart()
	assert.NoError(t, pool.Claim(a.ID()), "a restart forgets every assignment")
}

func TestString(t *testing.T) {
	pool := NewIDPool()
	x1, x2, a := pool.Var(1), pool.Var(2), pool.Var("a")

	tests := []struct {
		formula  Formula
		str      string
		goString string
	}{
		{True, "True", "Const(true)"},
		{x1, "x1", "Var(1)"},
		{a, "x_a", `Var("a")`},
		{Negate(x1), "~x1", "Not(Var(1))"},
		{Negate(Conjunction(x1, x2)), "~(x1 & x2)", "Not(And(Var(1),Var(2)))"},
		{Disjunction(x1, Negate(x2), a), "x1 | (~x2) | x_a", `Or(Var(1),Not(Var(2)),Var("a"))`},
		{
			Implication(Conjunction(x1, Negate(x2)), False),
			"(x1 & (~x2)) > False",
			"Implies(And(Var(1),Not(Var(2))),Const(false))",
		},
		{Equivalence(x1, x2), "x1 == x2", "Equals(Var(1),Var(2))"},
		{Xor(x1, Disjunction(x2, a)), "x1 != (x2 | x_a)", `NotEquals(Var(1),Or(Var(2),Var("a")))`},
		{Conjunction(), "True", "And()"},
		{Disjunction(), "False", "Or()"},
	}

	for _, test := range tests {
		t.Run(test.str, func(t *testing.T) {
			assert.Equal(t, test.str, test.formula.String())
			assert.Equal(t, test.goString, fmt.Sprintf("%#v", test.formula))
		})
	}
}

func TestEval(t *testing.T) {
	pool := NewIDPool()
	x1, x2 := pool.Var(1), pool.Var(2)

	tests := []struct {
		formula  Formula
		expected [4]bool // Values under (x1, x2) = (F,F), (F,T), (T,F), (T,T)
	}{
		{Negate(x1), [4]bool{true, true, false, false}},
		{Conjunction(x1, x2), [4]bool{false, false, false, true}},
		{Disjunction(x1, x2), [4]bool{false, true, true, true}},
		{Implication(x1, x2), [4]bool{true, true, false, true}},
		{Equivalence(x1, x2), [4]bool{true, false, false, true}},
		{Xor(x1, x2), [4]bool{false, true, true, false}},
		{Conjunction(), [4]bool{true, true, true, true}},
		{Disjunction(), [4]bool{false, false, false, false}},
		{Conjunction(x2), [4]bool{false, true, false, true}},
	}

	for _, test := range tests {
		t.Run(test.formula.String(), func(t *testing.T) {
			for i, expected := range test.expected {
				valuation := Valuation{1: i&2 != 0, 2: i&1 != 0}
				assert.Equal(t, expected, test.formula.Eval(valuation), "under %v", valuation)
			}
		})
	}
}

func TestConjoinAndDisjoin(t *testing.T) {
	pool := NewIDPool()
	x1, x2, x3, x4 := pool.Var(1), pool.Var(2), pool.Var(3), pool.Var(4)

	left := Conjunction(x1, x2)
	merged := Conjoin(left, Conjunction(x3, x4))
	require.IsType(t, &And{}, merged)
	assert.Len(t, merged.(*And).Children, 4)
	assert.Len(t, left.Children, 2, "operands are not modified")

	appended := Conjoin(left, x3)
	assert.Equal(t, "x1 & x2 & x3", appended.String())

	nested := Conjoin(x3, left)
	assert.Equal(t, "x3 & (x1 & x2)", nested.String())

	assert.Equal(t, "x1 | x2 | x3", Disjoin(Disjunction(x1), Disjunction(x2, x3)).String())
	assert.Equal(t, "x1 | x2", Disjoin(x1, x2).String())

	extended := Conjunction(x1).Add(Conjunction(x2, x3), Disjunction(x4))
	assert.Equal(t, "x1 & x2 & x3 & (x4)", extended.String())
	assert.Len(t, Disjunction(x1).Add(Disjunction(x2), x3).Children, 3)
}

func TestVars(t *testing.T) {
	pool := NewIDPool()
	x1, x2, x5 := pool.Var(1), pool.Var(2), pool.Var(5)

	assert.Equal(t, []int{1, 2, 5}, Vars(Implication(Conjunction(x5, Negate(x1)), Xor(x2, Equivalence(x5, True)))))
	assert.Empty(t, Vars(False))
}
