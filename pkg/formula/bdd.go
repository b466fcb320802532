package formula

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/dalzilio/rudd"
	"github.com/samber/lo"
)

// diagram compiles formulas into a reduced ordered BDD whose levels follow the sorted variable identifiers
type diagram struct {
	bdd    *rudd.BDD
	levels map[int]int
}

func newDiagram(vars []int) (*diagram, error) {
	bdd, err := rudd.New(max(len(vars), 1), rudd.Nodesize(10000), rudd.Cachesize(5000))
	if err != nil {
		return nil, fmt.Errorf("cannot initialize BDD: %w", err)
	}

	levels := make(map[int]int, len(vars))
	for level, variable := range vars {
		levels[variable] = level
	}
	return &diagram{bdd: bdd, levels: levels}, nil
}

func (d *diagram) compile(f Formula) (rudd.Node, error) {
	node := d.build(f)
	if d.bdd.Errored() {
		return nil, errors.New(d.bdd.Error())
	}
	return node, nil
}

func (d *diagram) build(f Formula) rudd.Node {
	switch f := f.(type) {
	case Const:
		if f.Value {
			return d.bdd.True()
		}
		return d.bdd.False()
	case *Var:
		return d.bdd.Ithvar(d.levels[f.id])
	case *Not:
		return d.bdd.Not(d.build(f.Child))
	case *And:
		return lo.Reduce(f.Children, func(node rudd.Node, child Formula, _ int) rudd.Node {
			return d.bdd.And(node, d.build(child))
		}, d.bdd.True())
	case *Or:
		return lo.Reduce(f.Children, func(node rudd.Node, child Formula, _ int) rudd.Node {
			return d.bdd.Or(node, d.build(child))
		}, d.bdd.False())
	case *Implies:
		return d.bdd.Imp(d.build(f.Left), d.build(f.Right))
	case *Equals:
		return d.bdd.Equiv(d.build(f.Left), d.build(f.Right))
	case *NotEquals:
		return d.bdd.Not(d.bdd.Equiv(d.build(f.Left), d.build(f.Right)))
	}
	panic(fmt.Sprintf("unsupported formula type %T", f))
}

// Equivalent checks whether a and b have the same models
func Equivalent(a, b Formula) (bool, error) {
	vars := lo.Uniq(append(Vars(a), Vars(b)...))
	slices.Sort(vars)

	d, err := newDiagram(vars)
	if err != nil {
		return false, err
	}
	left, err := d.compile(a)
	if err != nil {
		return false, err
	}
	right, err := d.compile(b)
	if err != nil {
		return false, err
	}
	return d.bdd.Equal(left, right), nil
}

// Tautology checks whether f holds under every assignment
func Tautology(f Formula) (bool, error) {
	return Equivalent(f, True)
}

// CountModels returns the number of assignments of Vars(f) satisfying f
func CountModels(f Formula) (*big.Int, error) {
	vars := Vars(f)
	if len(vars) == 0 {
		if f.Eval(Valuation{}) {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	}

	d, err := newDiagram(vars)
	if err != nil {
		return nil, err
	}
	node, err := d.compile(f)
	if err != nil {
		return nil, err
	}
	return d.bdd.Satcount(node), nil
}
