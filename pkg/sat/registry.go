package sat

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var ErrUnknownSolver = errors.New("unknown solver")

var solvers = map[string]func(Config) SATSolver{
	"gophersat":     NewGophersatSolver,
	"gini":          NewGiniSolver,
	"kissat":        NewKissatSolver,
	"cadical":       NewCadicalSolver,
	"minisat":       NewMinisatSolver,
	"cryptominisat": NewCryptominisatSolver,
	"glucosesimp":   NewGlucoseSimpSolver,
	"glucosesyrup":  NewGlucoseSyrupSolver,
	"slime":         NewSlimeSolver,
	"ortoolsat":     NewOrtoolsatSolver,
}

// NewSolver builds the solver registered under name (case-insensitive); an empty name selects config.Default
func NewSolver(name string, config Config) (SATSolver, error) {
	if name == "" {
		name = config.Default
	}
	constructor, ok := solvers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (allowed values are %v)", ErrUnknownSolver, name, strings.Join(Names(), ", "))
	}
	return constructor(config), nil
}

// Names returns the registered solver names in alphabetical order
func Names() []string {
	names := lo.Keys(solvers)
	slices.Sort(names)
	return names
}

// InProcess reports whether the named solver runs without an external executable
func InProcess(name string) bool {
	return lo.Contains([]string{"gophersat", "gini"}, strings.ToLower(name))
}
