package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/limaJavier/satformula/pkg/cnf"
	"github.com/limaJavier/satformula/pkg/sat"

	"github.com/samber/lo"
)

const (
	executablePath                     = "../../bin/satformula"
	satisfiableTestDirectory           = "../../test/cnf/satisfiable/"
	unsatisfiableTestDirectory         = "../../test/cnf/unsatisfiable/"
	KB                                 = 1024
	MB                         float32 = 1024 * 1024
)

type ResultType int

const (
	satisfiable ResultType = iota
	unsatisfiable
	mismatch // The solver disagrees with the expected outcome of the test
)

var resultTypes = map[ResultType]string{
	satisfiable:   "satisfiable",
	unsatisfiable: "unsatisfiable",
	mismatch:      "mismatch",
}

type TestMetadata struct {
	Name        string
	Satisfiable bool
	Variables   int
	Clauses     int
	Literals    int
}

type BenchmarkResult struct {
	Solver        string
	Test          TestMetadata
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	tests := getTests()
	solvers := getSolvers()
	results := make([]BenchmarkResult, 0, len(tests)*len(solvers))

	for _, test := range tests {
		for _, solver := range solvers {
			fmt.Printf("Benchmarking test \"%v\" with solver \"%v\"\n", test.Name, solver)

			duration, maxMemory, cpuPercentage, result := measure(solver, test.Name)
			if result == satisfiable && !test.Satisfiable || result == unsatisfiable && test.Satisfiable {
				log.Printf("warning: solver \"%v\" reported %v on test \"%v\"", solver, resultTypes[result], test.Name)
				result = mismatch
			}

			results = append(results, BenchmarkResult{
				Solver:        solver,
				Test:          test,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        result,
			})
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	tests := make([]TestMetadata, 0)
	for _, tuple := range lo.Zip2([]string{satisfiableTestDirectory, unsatisfiableTestDirectory}, []bool{true, false}) {
		directory, satisfiable := tuple.A, tuple.B
		testFiles, err := os.ReadDir(directory)
		if err != nil {
			log.Fatalf("cannot read directory: %v", err)
		}

		for _, file := range testFiles {
			filename := directory + file.Name()
			instance, err := cnf.ParseFile(filename)
			if err != nil {
				log.Fatalf("cannot parse input file: %v", err)
			}

			tests = append(tests, TestMetadata{
				Name:        filename,
				Satisfiable: satisfiable,
				Variables:   instance.NV,
				Clauses:     len(instance.Clauses),
				Literals:    lo.SumBy(instance.Clauses, func(clause []int) int { return len(clause) }),
			})
		}
	}

	return tests
}

// getSolvers returns the in-process solvers and the external ones found in the PATH
func getSolvers() []string {
	config, err := sat.LoadConfig(sat.ConfigPath)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	return lo.Filter(sat.Names(), func(name string, _ int) bool {
		if sat.InProcess(name) {
			return true
		}
		solver, _ := sat.NewSolver(name, config)
		if _, err := solver.Solve(cnf.New([]int{1})); err != nil {
			log.Printf("warning: skipping solver \"%v\": %v", name, err)
			return false
		}
		return true
	})
}

func measure(solver string, testFile string) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-solver", solver, "-file", testFile, "-out", os.DevNull)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution of \"satformula\" at test \"%v\" using solver \"%v\": %v\n", testFile, solver, stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		result = unsatisfiable
	} else {
		result = satisfiable
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Solver", "Test", "Satisfiable", "Variables", "Clauses", "Literals", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		if err := writer.Write(toRecord(result)); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func toRecord(result BenchmarkResult) []string {
	return []string{
		result.Solver,
		result.Test.Name,
		fmt.Sprintf("%v", result.Test.Satisfiable),
		fmt.Sprintf("%d", result.Test.Variables),
		fmt.Sprintf("%d", result.Test.Clauses),
		fmt.Sprintf("%d", result.Test.Literals),
		fmt.Sprintf("%d", result.Duration),
		fmt.Sprintf("%.1f", result.Memory),
		fmt.Sprintf("%d", result.CpuPercentage),
		resultTypes[result.Result],
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / KB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
