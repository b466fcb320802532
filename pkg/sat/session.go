package sat

import (
	"errors"
	"slices"

	"github.com/limaJavier/satformula/pkg/cnf"
	"github.com/samber/lo"
)

var ErrNoModel = errors.New("no model available, the last call to Solve was not satisfiable")

type Status int

const (
	Unknown Status = iota
	Satisfiable
	Unsatisfiable
)

func (status Status) String() string {
	switch status {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Session accumulates clauses for a solver and keeps the outcome of the last call to Solve.
// Solvers are not incremental: every call to Solve hands the whole instance to the solver.
type Session struct {
	solver   SATSolver
	instance *cnf.CNF
	status   Status
	model    Model
}

// NewSession starts a session over a copy of instance (an empty one if nil)
func NewSession(solver SATSolver, instance *cnf.CNF) *Session {
	if instance == nil {
		instance = cnf.New()
	}
	return &Session{solver: solver, instance: instance.Copy()}
}

func (session *Session) AddClause(clause ...int) {
	session.instance.Append(slices.Clone(clause))
	session.status, session.model = Unknown, nil
}

// Instance returns a copy of the clauses accumulated so far
func (session *Session) Instance() *cnf.CNF {
	return session.instance.Copy()
}

// Solve checks the satisfiability of the clauses under the assumptions, given as literals which must hold
func (session *Session) Solve(assumptions ...int) (bool, error) {
	instance := session.instance
	if len(assumptions) > 0 {
		instance = instance.Copy()
		for _, assumption := range assumptions {
			instance.Append([]int{assumption})
		}
	}

	model, err := session.solver.Solve(instance)
	if err != nil {
		session.status, session.model = Unknown, nil
		return false, err
	}

	if model == nil {
		session.status, session.model = Unsatisfiable, nil
		return false, nil
	}
	session.status, session.model = Satisfiable, model
	return true, nil
}

func (session *Session) Status() Status {
	return session.status
}

// Model returns the model found by the last call to Solve, 1-based and sign-encoded
func (session *Session) Model() (Model, error) {
	if session.status != Satisfiable {
		return nil, ErrNoModel
	}
	return slices.Clone(session.model), nil
}

// Enumerate lists distinct models projected on vars (every variable of the instance if vars is empty).
// After each model a clause blocking its projection is added to a private copy of the instance.
// It stops when the instance becomes unsatisfiable, after limit models (limit <= 0 means no limit),
// or as soon as fn returns false. It returns the number of models handed to fn.
func (session *Session) Enumerate(vars []int, limit int, fn func(Model) bool) (int, error) {
	if len(vars) == 0 {
		vars = lo.RangeFrom(1, session.instance.NV)
	}
	enumeration := NewSession(session.solver, session.instance)

	count := 0
	for limit <= 0 || count < limit {
		satisfiable, err := enumeration.Solve()
		if err != nil {
			return count, err
		} else if !satisfiable {
			break
		}

		model := enumeration.model
		count++
		if !fn(model) {
			break
		}
		if len(vars) == 0 { // The only model of an instance without variables is the empty one
			break
		}
		enumeration.AddClause(lo.Map(vars, func(variable int, _ int) int { return -model.Lit(variable) })...)
	}
	return count, nil
}
