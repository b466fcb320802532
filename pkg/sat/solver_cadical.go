package sat

const cadicalPath = "cadical"

func NewCadicalSolver(config Config) SATSolver {
	return newExternalSolver(config, "cadical", cadicalPath, stdinToStdout, "-q")
}
