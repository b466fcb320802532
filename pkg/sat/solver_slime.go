package sat

const slimePath = "slime"

func NewSlimeSolver(config Config) SATSolver {
	return newExternalSolver(config, "slime", slimePath, fileToStdout)
}
