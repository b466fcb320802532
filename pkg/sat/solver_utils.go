package sat

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

var ConfigPath = "config.json"

var ErrInvalidOutput = errors.New("invalid solver output")

// Config holds the settings of the solvers. It's read from a JSON file such as:
//
//	{
//		"default": "kissat",
//		"timeout": "30s",
//		"paths": {"kissat": "/opt/kissat/bin/kissat"},
//		"minisatPath": "/usr/bin/minisat"
//	}
//
// Executable paths are looked up in "paths" first, then in "<solver>Path" top-level keys.
type Config struct {
	Default string            `mapstructure:"default"`
	Timeout time.Duration     `mapstructure:"timeout"` // Zero means no limit
	TempDir string            `mapstructure:"tempDir"` // Directory for DIMACS temporary files, the system's one if empty
	Paths   map[string]string `mapstructure:"paths"`
	Extra   map[string]any    `mapstructure:",remain"`
}

func DefaultConfig() Config {
	return Config{Default: "gophersat", Paths: map[string]string{}}
}

// LoadConfig reads the configuration file at path, a missing file yields the DefaultConfig
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return config, fmt.Errorf("cannot read config file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return config, fmt.Errorf("cannot parse config file %q: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return config, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return config, fmt.Errorf("cannot decode config file %q: %w", path, err)
	}
	return config, nil
}

// executablePath returns the configured path of the solver, or fallback when none is configured
func (config Config) executablePath(solver string, fallback string) string {
	if path, ok := config.Paths[solver]; ok && path != "" {
		return path
	}
	if path, ok := config.Extra[solver+"Path"].(string); ok && path != "" {
		return path
	}
	return fallback
}

// parseSolution extracts the literals of the "v" lines written by competition-style solvers
func parseSolution(solverOutput string) ([]int, error) {
	fields := lo.Reduce(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			return len(line) > 0 && line[0] == 'v'
		}),
		func(values []string, line string, _ int) []string {
			return append(values, strings.Fields(line[1:])...)
		},
		[]string{},
	)
	return parseLiterals(fields)
}

// parseOutputFile reads the model file written by minisat-like solvers: an optional "SAT" header and the literals
func parseOutputFile(solverOutput string) ([]int, error) {
	fields := strings.Fields(solverOutput)
	if len(fields) > 0 && fields[0] == "SAT" {
		fields = fields[1:]
	}
	return parseLiterals(fields)
}

func parseLiterals(fields []string) ([]int, error) {
	literals := make([]int, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid literal %q", ErrInvalidOutput, field)
		}
		if value == 0 {
			break
		}
		literals = append(literals, value)
	}
	return literals, nil
}
