package cnf

import (
	"slices"

	"github.com/samber/lo"
)

// WCNF is a partial weighted CNF: hard clauses must hold, soft clauses carry a positive weight
type WCNF struct {
	NV       int
	Hard     [][]int
	Soft     [][]int
	Weights  []int // Weights[i] is the weight of Soft[i]
	Comments []string
}

func NewWeighted() *WCNF {
	return &WCNF{}
}

func (wcnf *WCNF) AppendHard(clause []int) {
	wcnf.Hard = append(wcnf.Hard, clause)
	wcnf.NV = max(wcnf.NV, maxVar(clause))
}

func (wcnf *WCNF) AppendSoft(clause []int, weight int) {
	wcnf.Soft = append(wcnf.Soft, clause)
	wcnf.Weights = append(wcnf.Weights, weight)
	wcnf.NV = max(wcnf.NV, maxVar(clause))
}

// Top is the weight given to hard clauses: the sum of all soft weights plus one
func (wcnf *WCNF) Top() int {
	return lo.Sum(wcnf.Weights) + 1
}

// Unweighted drops the weights and merges hard and soft clauses into a single CNF
func (wcnf *WCNF) Unweighted() *CNF {
	clauses := make([][]int, 0, len(wcnf.Hard)+len(wcnf.Soft))
	for _, clause := range wcnf.Hard {
		clauses = append(clauses, slices.Clone(clause))
	}
	for _, clause := range wcnf.Soft {
		clauses = append(clauses, slices.Clone(clause))
	}
	return &CNF{NV: wcnf.NV, Clauses: clauses, Comments: slices.Clone(wcnf.Comments)}
}

// Cost sums the weights of the soft clauses not satisfied by any of the true literals
func (wcnf *WCNF) Cost(trueLiterals map[int]bool) int {
	cost := 0
	for i, clause := range wcnf.Soft {
		if !lo.SomeBy(clause, func(literal int) bool { return trueLiterals[literal] }) {
			cost += wcnf.Weights[i]
		}
	}
	return cost
}

func (wcnf *WCNF) Validate() error {
	for i, clause := range wcnf.Hard {
		if slices.Contains(clause, 0) {
			return &ClauseError{Index: i, Err: ErrZeroLiteral}
		}
	}
	for i, clause := range wcnf.Soft {
		if slices.Contains(clause, 0) {
			return &ClauseError{Index: len(wcnf.Hard) + i, Err: ErrZeroLiteral}
		}
		if wcnf.Weights[i] <= 0 {
			return &ClauseError{Index: len(wcnf.Hard) + i, Err: ErrInvalidWeight}
		}
	}
	return nil
}
