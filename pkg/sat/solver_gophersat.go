package sat

import (
	"github.com/crillab/gophersat/solver"
	"github.com/limaJavier/satformula/pkg/cnf"
	"github.com/samber/lo"
)

// gophersatSolver solves instances in-process with the CDCL solver of gophersat
type gophersatSolver struct{}

func NewGophersatSolver(Config) SATSolver {
	return &gophersatSolver{}
}

func (s *gophersatSolver) Solve(instance *cnf.CNF) (Model, error) {
	if err := instance.Validate(); err != nil {
		return nil, err
	}

	clauses := normalize(instance.Clauses)
	if len(clauses) == 0 { // Every assignment satisfies an instance without clauses
		return NewModel(nil, instance.NV), nil
	}

	problem := solver.ParseSlice(clauses)
	if problem.Status == solver.Unsat { // An empty clause or contradicting units were found while parsing
		return nil, nil
	}

	engine := solver.New(problem)
	if engine.Solve() != solver.Sat {
		return nil, nil
	}

	literals := lo.Map(engine.Model(), func(value bool, i int) int {
		if value {
			return i + 1
		}
		return -(i + 1)
	})
	return NewModel(literals, instance.NV), nil
}
