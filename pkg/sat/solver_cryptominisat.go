package sat

const cryptominisatPath = "cryptominisat5"

func NewCryptominisatSolver(config Config) SATSolver {
	return newExternalSolver(config, "cryptominisat", cryptominisatPath, stdinToStdout, "--verb", "0")
}
