package sat

import (
	"math/rand/v2"

	"github.com/limaJavier/satformula/pkg/cnf"
)

// GenerateInstance builds a random instance where every variable enters each clause with probability 1/2
func GenerateInstance(vars int, clauses int) *cnf.CNF {
	instance := &cnf.CNF{
		NV:      vars,
		Clauses: make([][]int, clauses),
	}

	for i := range clauses {
		instance.Clauses[i] = make([]int, 0, vars)
		for j := range vars {
			if rand.Float32() < 0.5 {
				instance.Clauses[i] = append(instance.Clauses[i], randomSign()*(1+j))
			}
		}

		if len(instance.Clauses[i]) == 0 {
			instance.Clauses[i] = append(instance.Clauses[i], randomSign()*(1+rand.IntN(vars)))
		}
	}

	return instance
}

// AssertSolution checks the model is consistent and satisfies every clause of the instance
func AssertSolution(instance *cnf.CNF, model Model) bool {
	if len(model) < instance.NV {
		return false
	}

	// Make sure the literal of each variable sits at its own index
	for i, literal := range model {
		if literal != i+1 && literal != -(i+1) {
			return false
		}
	}

	return model.Satisfies(instance.Clauses)
}

func randomSign() int {
	if rand.Float32() < 0.5 {
		return -1
	}
	return 1
}
