package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/limaJavier/satformula/pkg/cnf"
)

// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
const (
	exitSatisfiable   = 10
	exitUnsatisfiable = 20
)

var ErrTimeout = errors.New("solver timed out")

// SolverError reports a failed execution of an external solver
type SolverError struct {
	Solver string
	Stderr string
	Err    error
}

func (err *SolverError) Error() string {
	return fmt.Sprintf("an error occurred during %v execution: %v : %v", err.Solver, err.Err, strings.TrimSpace(err.Stderr))
}

func (err *SolverError) Unwrap() error {
	return err.Err
}

// ioStyle tells how an external solver receives the instance and reports the model
type ioStyle int

const (
	stdinToStdout ioStyle = iota // DIMACS fed into the standard input, model on "v" lines of the standard output
	fileToStdout                 // DIMACS in a temporary file given as last argument, model on "v" lines
	fileToFile                   // DIMACS in a temporary file, model written into a second temporary file
)

type externalSolver struct {
	name       string
	executable string
	args       []string
	style      ioStyle
	timeout    time.Duration
	tempDir    string
}

func newExternalSolver(config Config, name, executable string, style ioStyle, args ...string) *externalSolver {
	return &externalSolver{
		name:       name,
		executable: config.executablePath(name, executable),
		args:       args,
		style:      style,
		timeout:    config.Timeout,
		tempDir:    config.TempDir,
	}
}

func (solver *externalSolver) Solve(instance *cnf.CNF) (Model, error) {
	if err := instance.Validate(); err != nil {
		return nil, err
	}
	dimacs := instance.ToDIMACS() // Transform the instance into DIMACS-CNF string format

	ctx := context.Background()
	if solver.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, solver.timeout)
		defer cancel()
	}

	args := append([]string{}, solver.args...)
	var outputFile string
	if solver.style != stdinToStdout {
		inputFile, err := solver.writeTempFile("dimacs-*.cnf", dimacs)
		if err != nil {
			return nil, err
		}
		defer removeTempFile(inputFile) // Ensure the file is removed after execution
		args = append(args, inputFile)
	}
	if solver.style == fileToFile {
		var err error
		outputFile, err = solver.writeTempFile(solver.name+"_output-*.txt", "")
		if err != nil {
			return nil, err
		}
		defer removeTempFile(outputFile)
		args = append(args, outputFile)
	}

	cmd := exec.CommandContext(ctx, solver.executable, args...)
	if solver.style == stdinToStdout {
		cmd.Stdin = strings.NewReader(dimacs) // Feed the instance into the solver's standard input
	}

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &SolverError{Solver: solver.name, Stderr: stderr.String(), Err: ErrTimeout}
	}
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil && exitCode != exitSatisfiable && exitCode != exitUnsatisfiable {
		return nil, &SolverError{Solver: solver.name, Stderr: stderr.String(), Err: err}
	} else if exitCode == exitUnsatisfiable {
		return nil, nil
	}

	var literals []int
	if solver.style == fileToFile {
		output, err := os.ReadFile(outputFile) // Read the output file
		if err != nil {
			return nil, fmt.Errorf("failed to read output file: %w", err)
		}
		literals, err = parseOutputFile(string(output))
		if err != nil {
			return nil, &SolverError{Solver: solver.name, Err: err}
		}
	} else {
		literals, err = parseSolution(stdOut.String())
		if err != nil {
			return nil, &SolverError{Solver: solver.name, Err: err}
		}
	}
	return NewModel(literals, instance.NV), nil
}

func (solver *externalSolver) writeTempFile(pattern, content string) (string, error) {
	file, err := os.CreateTemp(solver.tempDir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return file.Name(), nil
}

func removeTempFile(name string) {
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: failed to remove temporary file %s: %v", name, err)
	}
}
