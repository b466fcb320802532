package sat

const ortoolsatPath = "ortoolsat"

func NewOrtoolsatSolver(config Config) SATSolver {
	return newExternalSolver(config, "ortoolsat", ortoolsatPath, fileToStdout)
}
