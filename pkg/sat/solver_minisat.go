package sat

const minisatPath = "minisat"

// NewMinisatSolver runs minisat, which writes "SAT" and the model into the output file given as second argument
func NewMinisatSolver(config Config) SATSolver {
	return newExternalSolver(config, "minisat", minisatPath, fileToFile, "-verb=0")
}
