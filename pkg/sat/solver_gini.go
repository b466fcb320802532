package sat

import (
	"errors"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/limaJavier/satformula/pkg/cnf"
	"github.com/samber/lo"
)

var ErrCanceled = errors.New("solving was canceled")

// giniSolver solves instances in-process with gini
type giniSolver struct{}

func NewGiniSolver(Config) SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Solve(instance *cnf.CNF) (Model, error) {
	if err := instance.Validate(); err != nil {
		return nil, err
	}

	clauses := normalize(instance.Clauses)
	if lo.ContainsBy(clauses, func(clause []int) bool { return len(clause) == 0 }) {
		return nil, nil
	}

	g := gini.NewVc(instance.NV, len(clauses))
	for _, clause := range clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(literal))
		}
		g.Add(z.LitNull) // Terminates the clause
	}

	switch g.Solve() {
	case -1:
		return nil, nil
	case 0:
		return nil, ErrCanceled
	}

	// Variables never added to gini are unknown to it and left false
	maxVar := int(g.MaxVar())
	literals := make([]int, 0, maxVar)
	for variable := 1; variable <= maxVar; variable++ {
		if g.Value(z.Dimacs2Lit(variable)) {
			literals = append(literals, variable)
		}
	}
	return NewModel(literals, instance.NV), nil
}
