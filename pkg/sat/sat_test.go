package sat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limaJavier/satformula/pkg/cnf"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModel(t *testing.T) {
	tests := []struct {
		name     string
		literals []int
		nv       int
		expected Model
	}{
		{"Dense output", []int{1, -2, 3}, 3, Model{1, -2, 3}},
		{"Unordered output", []int{-3, 1, -2}, 3, Model{1, -2, -3}},
		{"Missing variables are false", []int{2}, 4, Model{-1, 2, -3, -4}},
		{"Literals beyond nv extend the model", []int{1, 5}, 2, Model{1, -2, -3, -4, 5}},
		{"Empty output", nil, 2, Model{-1, -2}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, NewModel(test.literals, test.nv))
		})
	}
}

func TestModelAccessors(t *testing.T) {
	g := NewWithT(t)
	model := Model{1, -2, 3, -4}

	g.Expect(model.Value(1)).To(BeTrue())
	g.Expect(model.Value(2)).To(BeFalse())
	g.Expect(model.Value(0)).To(BeFalse())
	g.Expect(model.Value(9)).To(BeFalse())
	g.Expect(model.Lit(3)).To(Equal(3))
	g.Expect(model.Lit(4)).To(Equal(-4))
	g.Expect(model.Positives()).To(ConsistOf(1, 3))
	g.Expect(model.String()).To(Equal("1 -2 3 -4"))
	g.Expect(model.Satisfies([][]int{{1, 2}, {-4}, {-2, -3}})).To(BeTrue())
	g.Expect(model.Satisfies([][]int{{2, 4}})).To(BeFalse())
}

func TestNormalize(t *testing.T) {
	g := NewWithT(t)

	normalized := normalize([][]int{{1, 1, 2}, {3, -3}, {}, {-4}})

	g.Expect(normalized).To(Equal([][]int{{1, 2}, {}, {-4}}))
}

func TestParseSolution(t *testing.T) {
	//** Arrange
	output := "c comment line\ns SATISFIABLE\nv 1 -2 3\nv -4 5 0\n"

	//** Act
	literals, err := parseSolution(output)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2, 3, -4, 5}, literals)
}

func TestParseSolutionInvalidLiteral(t *testing.T) {
	_, err := parseSolution("s SATISFIABLE\nv 1 x 0\n")
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestParseOutputFile(t *testing.T) {
	literals, err := parseOutputFile("SAT\n-1 2 -3 0\n")
	require.NoError(t, err)
	assert.Equal(t, []int{-1, 2, -3}, literals)

	literals, err = parseOutputFile("1 2 0")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, literals)
}

func TestLoadConfig(t *testing.T) {
	//** Arrange
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"default": "kissat",
		"timeout": "1m30s",
		"tempDir": "/tmp/sat",
		"paths": {"kissat": "/opt/kissat/bin/kissat"},
		"minisatPath": "/usr/local/bin/minisat"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))

	//** Act
	config, err := LoadConfig(path)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "kissat", config.Default)
	assert.Equal(t, 90*time.Second, config.Timeout)
	assert.Equal(t, "/tmp/sat", config.TempDir)
	assert.Equal(t, "/opt/kissat/bin/kissat", config.executablePath("kissat", kissatPath))
	assert.Equal(t, "/usr/local/bin/minisat", config.executablePath("minisat", minisatPath))
	assert.Equal(t, cadicalPath, config.executablePath("cadical", cadicalPath))
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigInvalidJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default": `), 0666))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestNewSolver(t *testing.T) {
	g := NewWithT(t)

	solver, err := NewSolver("GopherSat", DefaultConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(solver).To(BeAssignableToTypeOf(&gophersatSolver{}))

	solver, err = NewSolver("", Config{Default: "gini"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(solver).To(BeAssignableToTypeOf(&giniSolver{}))

	_, err = NewSolver("picosat", DefaultConfig())
	g.Expect(err).To(MatchError(ErrUnknownSolver))

	g.Expect(Names()).To(HaveLen(10))
	g.Expect(Names()).To(HaveEach(Not(BeEmpty())))
	g.Expect(Names()[0]).To(Equal("cadical"))
	g.Expect(InProcess("gini")).To(BeTrue())
	g.Expect(InProcess("kissat")).To(BeFalse())
}

func TestSession(t *testing.T) {
	//** Arrange
	session := NewSession(NewGophersatSolver(DefaultConfig()), cnf.New([]int{1, 2}, []int{-1, 2}))

	//** Act & Assert
	_, err := session.Model()
	assert.ErrorIs(t, err, ErrNoModel)
	assert.Equal(t, Unknown, session.Status())

	satisfiable, err := session.Solve()
	require.NoError(t, err)
	assert.True(t, satisfiable)
	assert.Equal(t, Satisfiable, session.Status())
	model, err := session.Model()
	require.NoError(t, err)
	assert.True(t, model.Value(2))

	satisfiable, err = session.Solve(-2)
	require.NoError(t, err)
	assert.False(t, satisfiable)
	assert.Equal(t, Unsatisfiable, session.Status())
	assert.Equal(t, "UNSATISFIABLE", session.Status().String())

	// Assumptions do not persist
	satisfiable, err = session.Solve(1)
	require.NoError(t, err)
	assert.True(t, satisfiable)

	session.AddClause(-2)
	assert.Equal(t, Unknown, session.Status())
	satisfiable, err = session.Solve()
	require.NoError(t, err)
	assert.False(t, satisfiable)
	assert.Len(t, session.Instance().Clauses, 3)
}

func TestSessionEnumerate(t *testing.T) {
	g := NewWithT(t)
	for _, name := range []string{"gophersat", "gini"} {
		solver, err := NewSolver(name, DefaultConfig())
		g.Expect(err).NotTo(HaveOccurred())

		// x1 | x2 has three models over {1, 2}
		session := NewSession(solver, cnf.New([]int{1, 2}))
		models := []string{}
		count, err := session.Enumerate(nil, 0, func(model Model) bool {
			models = append(models, model.String())
			return true
		})
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(Equal(3))
		g.Expect(models).To(ConsistOf("1 2", "1 -2", "-1 2"))

		// The session itself is untouched by the enumeration
		g.Expect(session.Instance().Clauses).To(HaveLen(1))

		// Projection on x1 only
		count, err = session.Enumerate([]int{1}, 0, func(Model) bool { return true })
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(Equal(2))

		// Limit and early stop
		count, err = session.Enumerate(nil, 2, func(Model) bool { return true })
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(Equal(2))
		count, err = session.Enumerate(nil, 0, func(Model) bool { return false })
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(count).To(Equal(1))
	}
}

func TestGenerateInstance(t *testing.T) {
	g := NewWithT(t)

	instance := GenerateInstance(5, 30)

	g.Expect(instance.NV).To(Equal(5))
	g.Expect(instance.Clauses).To(HaveLen(30))
	g.Expect(instance.Clauses).To(HaveEach(Not(BeEmpty())))
	g.Expect(instance.Validate()).To(Succeed())
	g.Expect(instance.Vars()).To(HaveEach(BeNumerically("<=", 5)))
}
