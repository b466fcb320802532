package cnf

import (
	"slices"

	"github.com/samber/lo"
)

// CNF is a conjunction of clauses, each clause being a disjunction of non-zero literals.
// A literal is a signed variable identifier: v stands for the variable v and -v for its negation.
type CNF struct {
	NV       int // Largest variable identifier, it may exceed the variables actually present in the clauses
	Clauses  [][]int
	Comments []string
}

func New(clauses ...[]int) *CNF {
	cnf := &CNF{Clauses: make([][]int, 0, len(clauses))}
	cnf.Extend(clauses)
	return cnf
}

// Append adds a clause and updates NV accordingly
func (cnf *CNF) Append(clause []int) {
	cnf.Clauses = append(cnf.Clauses, clause)
	cnf.NV = max(cnf.NV, maxVar(clause))
}

func (cnf *CNF) Extend(clauses [][]int) {
	for _, clause := range clauses {
		cnf.Append(clause)
	}
}

func (cnf *CNF) Copy() *CNF {
	return &CNF{
		NV:       cnf.NV,
		Clauses:  lo.Map(cnf.Clauses, func(clause []int, _ int) []int { return slices.Clone(clause) }),
		Comments: slices.Clone(cnf.Comments),
	}
}

// Vars returns the sorted identifiers of the variables occurring in the clauses
func (cnf *CNF) Vars() []int {
	vars := lo.Uniq(lo.FlatMap(cnf.Clauses, func(clause []int, _ int) []int {
		return lo.Map(clause, func(literal int, _ int) int { return abs(literal) })
	}))
	slices.Sort(vars)
	return vars
}

// Validate checks no clause contains the literal 0, which is reserved as the DIMACS terminator
func (cnf *CNF) Validate() error {
	for i, clause := range cnf.Clauses {
		if slices.Contains(clause, 0) {
			return &ClauseError{Index: i, Err: ErrZeroLiteral}
		}
	}
	return nil
}

// Negate builds a CNF which is satisfiable if and only if the current one is falsified.
// Each clause with more than one literal is given an auxiliary variable (starting after topv, or NV if topv is 0)
// which is true only if all the literals of the clause are false; unit clauses use their negated literal.
// The last clause requires at least one of these to hold. The auxiliary literals are returned as well.
func (cnf *CNF) Negate(topv int) (negated *CNF, auxiliaries []int) {
	negated = &CNF{NV: topv}
	if negated.NV == 0 {
		negated.NV = cnf.NV
	}

	auxiliaries = make([]int, 0, len(cnf.Clauses))
	for _, clause := range cnf.Clauses {
		if len(clause) == 0 {
			continue // An empty clause is always falsified, its negation does not constrain anything
		}

		auxiliary := -clause[0]
		if len(clause) > 1 {
			negated.NV++
			auxiliary = negated.NV

			// Direct implication
			for _, literal := range clause {
				negated.Clauses = append(negated.Clauses, []int{-literal, -auxiliary})
			}
			// Opposite implication
			negated.Clauses = append(negated.Clauses, append(slices.Clone(clause), auxiliary))
		}
		auxiliaries = append(auxiliaries, auxiliary)
	}
	negated.Clauses = append(negated.Clauses, slices.Clone(auxiliaries))

	return negated, auxiliaries
}

// Weighted turns every clause into a hard clause of a WCNF
func (cnf *CNF) Weighted() *WCNF {
	return &WCNF{
		NV:       cnf.NV,
		Hard:     lo.Map(cnf.Clauses, func(clause []int, _ int) []int { return slices.Clone(clause) }),
		Comments: slices.Clone(cnf.Comments),
	}
}

func maxVar(clause []int) int {
	return lo.Reduce(clause, func(top int, literal int, _ int) int { return max(top, abs(literal)) }, 0)
}

func abs(literal int) int {
	if literal < 0 {
		return -literal
	}
	return literal
}
