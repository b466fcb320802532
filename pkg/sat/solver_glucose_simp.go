package sat

const (
	glucoseSimpPath  = "glucose-simp"
	glucoseSyrupPath = "glucose-syrup"
)

func NewGlucoseSimpSolver(config Config) SATSolver {
	return newExternalSolver(config, "glucosesimp", glucoseSimpPath, fileToFile, "-verb=0")
}

// NewGlucoseSyrupSolver runs the parallel flavour of glucose, which only prints the model on demand
func NewGlucoseSyrupSolver(config Config) SATSolver {
	return newExternalSolver(config, "glucosesyrup", glucoseSyrupPath, fileToStdout, "-verb=0", "-model")
}
