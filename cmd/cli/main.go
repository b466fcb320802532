package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/limaJavier/satformula/pkg/cnf"
	"github.com/limaJavier/satformula/pkg/formula"
	"github.com/limaJavier/satformula/pkg/sat"
	"github.com/samber/lo"
)

const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

var validModes = []string{"solve", "cnf", "count", "models"}

// problem is the input of the command: either a formula with its pool, or a plain DIMACS instance
type problem struct {
	formula  formula.Formula // nil for DIMACS input
	pool     *formula.IDPool
	instance *cnf.CNF
}

func main() {
	// Define arguments
	formulaPtr := flag.String("formula", "", `Formula to process, e.g. "(a | b) & (a > ~b)". Operators: "~" negation, "&" conjunction, "|" disjunction, ">" implication, "==" equivalence and "!=" exclusive or`)
	filePathPtr := flag.String("file", "", "Path to the input file: DIMACS-CNF if its extension is .cnf, otherwise a formula")
	solverPtr := flag.String("solver", "", fmt.Sprintf("SAT-Solver to use. Allowed values are: %v. The default one is taken from the configuration (gophersat if none)", strings.Join(sat.Names(), ", ")))
	configPtr := flag.String("config", "", "Path to the JSON configuration file; if empty, config.json next to the executable is used when present")
	modePtr := flag.String("mode", "solve", `What to do with the input: "solve" (find a model), "cnf" (write the Tseitin encoding in DIMACS), "count" (count models) or "models" (enumerate models), where "solve" is the default`)
	limitPtr := flag.Int("limit", 0, "Maximum number of models enumerated by the \"models\" mode, 0 means no limit")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()
	mode := strings.ToLower(*modePtr)
	solverStr := strings.ToLower(*solverPtr)
	formulaText := *formulaPtr
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid mode", mode)
	} else if (formulaText == "") == (filePath == "") {
		log.Fatal("either a formula or an input file must be specified")
	} else if *limitPtr < 0 {
		log.Fatalf("limit must be non-negative: %v", *limitPtr)
	}

	config, err := sat.LoadConfig(configPath(*configPtr))
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	solver, err := sat.NewSolver(solverStr, config)
	if err != nil {
		log.Fatal(err)
	}

	// Extract input
	input, err := readProblem(formulaText, filePath)
	if err != nil {
		log.Fatalf("cannot read input: %v", err)
	}

	var output strings.Builder
	exitCode := 0
	switch mode {
	case "solve":
		exitCode, err = solve(input, solver, &output)
	case "cnf":
		err = writeCNF(input, &output)
	case "count":
		exitCode, err = count(input, solver, &output)
	case "models":
		exitCode, err = enumerate(input, solver, *limitPtr, &output)
	}
	if err != nil {
		log.Fatalf("an error occurred while processing the input: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Print(output.String())
	} else {
		err := os.WriteFile(outFile, []byte(output.String()), 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Variables: %v\n", input.instance.NV)
	fmt.Fprintf(os.Stderr, "Clauses: %v\n", len(input.instance.Clauses))
	os.Exit(exitCode)
}

func readProblem(formulaText, filePath string) (*problem, error) {
	if filepath.Ext(filePath) == ".cnf" {
		instance, err := cnf.ParseFile(filePath)
		if err != nil {
			return nil, err
		}
		return &problem{instance: instance}, nil
	}

	if filePath != "" {
		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("cannot read file: %w", err)
		}
		formulaText = string(content)
	}

	pool := formula.NewIDPool()
	f, err := formula.ParseString(formulaText, pool)
	if err != nil {
		return nil, fmt.Errorf("cannot parse formula: %w", err)
	}
	return &problem{formula: f, pool: pool, instance: formula.NewEncoder(pool).CNF(f)}, nil
}

// vars returns the variables models are projected on: those of the formula, or every variable of a DIMACS instance
func (p *problem) vars() []int {
	if p.formula != nil {
		return formula.Vars(p.formula)
	}
	return lo.RangeFrom(1, p.instance.NV)
}

func solve(input *problem, solver sat.SATSolver, output *strings.Builder) (int, error) {
	session := sat.NewSession(solver, input.instance)
	satisfiable, err := session.Solve()
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(output, "s %v\n", session.Status())
	if !satisfiable {
		return exitUnsatisfiable, nil
	}

	model, err := session.Model()
	if err != nil {
		return 0, err
	}
	writeModel(input, model, output)
	return exitSatisfiable, nil
}

func count(input *problem, solver sat.SATSolver, output *strings.Builder) (int, error) {
	var total string
	satisfiable := false
	if input.formula != nil {
		models, err := formula.CountModels(input.formula)
		if err != nil {
			return 0, err
		}
		total = models.String()
		satisfiable = models.Sign() > 0
	} else {
		models, err := sat.NewSession(solver, input.instance).Enumerate(input.vars(), 0, func(sat.Model) bool { return true })
		if err != nil {
			return 0, err
		}
		total = strconv.Itoa(models)
		satisfiable = models > 0
	}

	fmt.Fprintf(output, "c models over %d variables\n%s\n", len(input.vars()), total)
	if !satisfiable {
		return exitUnsatisfiable, nil
	}
	return exitSatisfiable, nil
}

func enumerate(input *problem, solver sat.SATSolver, limit int, output *strings.Builder) (int, error) {
	models, err := sat.NewSession(solver, input.instance).Enumerate(input.vars(), limit, func(model sat.Model) bool {
		writeModel(input, model, output)
		return true
	})
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(output, "c %d models\n", models)
	if models == 0 {
		return exitUnsatisfiable, nil
	}
	return exitSatisfiable, nil
}

// writeCNF writes the instance in DIMACS, with the names of the formula variables as comments
func writeCNF(input *problem, output *strings.Builder) error {
	instance := input.instance.Copy()
	if input.formula != nil {
		instance.Comments = append(instance.Comments, fmt.Sprintf("formula: %v", input.formula))
		for _, variable := range formula.Vars(input.formula) {
			if name, ok := input.pool.Obj(variable); ok {
				instance.Comments = append(instance.Comments, fmt.Sprintf("%d = %v", variable, name))
			}
		}
	}
	return instance.WriteDIMACS(output)
}

// writeModel writes the projection of the model in the "v" line format, followed by the values of named variables
func writeModel(input *problem, model sat.Model, output *strings.Builder) {
	vars := input.vars()
	literals := lo.Map(vars, func(variable int, _ int) string { return strconv.Itoa(model.Lit(variable)) })
	fmt.Fprintf(output, "v %s\n", strings.Join(append(literals, "0"), " "))

	if input.formula == nil {
		return
	}
	for _, variable := range vars {
		if name, ok := input.pool.Obj(variable); ok {
			fmt.Fprintf(output, "c %v = %v\n", name, model.Value(variable))
		}
	}
}

// configPath defaults to the config.json sitting next to the executable
func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	execPath, err := os.Executable()
	if err != nil {
		log.Printf("warning: cannot determine executable path: %v", err)
		return sat.ConfigPath
	}
	return path.Join(path.Dir(execPath), sat.ConfigPath)
}
