package sat

import (
	"slices"
	"strconv"
	"strings"

	"github.com/limaJavier/satformula/pkg/cnf"
	"github.com/samber/lo"
)

type SATSolver interface {
	Solve(instance *cnf.CNF) (Model, error) // Returns a model of the instance if satisfiable, else returns nil (these are valid outputs where error shall be nil)
}

// Model is a satisfying assignment in the sign-encoded form solvers print:
// model[i-1] is i when the variable i is true and -i when it is false
type Model []int

// NewModel normalizes the literals reported by a solver into a dense Model covering at least nv variables.
// Variables the solver did not report are false.
func NewModel(literals []int, nv int) Model {
	size := lo.Reduce(literals, func(top int, literal int, _ int) int { return max(top, abs(literal)) }, nv)

	model := make(Model, size)
	for i := range model {
		model[i] = -(i + 1)
	}
	for _, literal := range literals {
		if literal > 0 {
			model[literal-1] = literal
		}
	}
	return model
}

// Value reports whether the variable is true; variables outside the model are false
func (model Model) Value(variable int) bool {
	return variable >= 1 && variable <= len(model) && model[variable-1] > 0
}

// Lit returns the literal of the variable which holds in the model
func (model Model) Lit(variable int) int {
	if model.Value(variable) {
		return variable
	}
	return -variable
}

// Positives returns the variables set to true
func (model Model) Positives() []int {
	return lo.Filter(model, func(literal int, _ int) bool { return literal > 0 })
}

// Satisfies checks every clause has at least one literal holding in the model
func (model Model) Satisfies(clauses [][]int) bool {
	return lo.EveryBy(clauses, func(clause []int) bool {
		return lo.SomeBy(clause, func(literal int) bool { return model.Lit(abs(literal)) == literal })
	})
}

func (model Model) String() string {
	return strings.Join(lo.Map(model, func(literal int, _ int) string { return strconv.Itoa(literal) }), " ")
}

// normalize drops tautological clauses and repeated literals; in-process backends expect clean clauses
func normalize(clauses [][]int) [][]int {
	normalized := make([][]int, 0, len(clauses))
	for _, clause := range clauses {
		literals := lo.Uniq(clause)
		if lo.SomeBy(literals, func(literal int) bool { return slices.Contains(literals, -literal) }) {
			continue
		}
		normalized = append(normalized, literals)
	}
	return normalized
}

func abs(literal int) int {
	if literal < 0 {
		return -literal
	}
	return literal
}
