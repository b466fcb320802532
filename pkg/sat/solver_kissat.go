package sat

const kissatPath = "kissat"

func NewKissatSolver(config Config) SATSolver {
	return newExternalSolver(config, "kissat", kissatPath, stdinToStdout, "-q", "--relaxed")
}
