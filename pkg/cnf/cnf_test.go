package cnf

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := NewWithT(t)

	cnf := New([]int{-1, 2}, []int{3, -7})
	cnf.Append([]int{4})
	cnf.Extend([][]int{{-9}, {}})

	g.Expect(cnf.NV).To(Equal(9))
	g.Expect(cnf.Clauses).To(HaveLen(5))
	g.Expect(cnf.Vars()).To(Equal([]int{1, 2, 3, 4, 7, 9}))
}

func TestCopy(t *testing.T) {
	//** Arrange
	original := New([]int{1, 2}, []int{-2})
	original.Comments = []string{"original"}

	//** Act
	copied := original.Copy()
	copied.Clauses[0][0] = 5
	copied.Append([]int{3})
	copied.Comments[0] = "copy"

	//** Assert
	assert.Equal(t, [][]int{{1, 2}, {-2}}, original.Clauses)
	assert.Equal(t, []string{"original"}, original.Comments)
	assert.Equal(t, 2, original.NV)
	assert.Equal(t, 5, copied.NV)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New([]int{1}, []int{}).Validate())

	err := New([]int{1, 2}, []int{3, 0, 4}).Validate()
	var clauseErr *ClauseError
	require.ErrorAs(t, err, &clauseErr)
	assert.Equal(t, 1, clauseErr.Index)
	assert.ErrorIs(t, err, ErrZeroLiteral)
}

func TestNegate(t *testing.T) {
	//** Arrange
	cnf := New([]int{-1, 2}, []int{3, -2}, []int{3})

	//** Act
	negated, auxiliaries := cnf.Negate(0)

	//** Assert
	assert.Equal(t, []int{4, 5, -3}, auxiliaries)
	assert.Equal(t, 5, negated.NV)
	assert.Equal(t, [][]int{
		{1, -4}, {-2, -4}, {-1, 2, 4},
		{-3, -5}, {2, -5}, {3, -2, 5},
		{4, 5, -3},
	}, negated.Clauses)
}

func TestNegateTopv(t *testing.T) {
	negated, auxiliaries := New([]int{1, 2}).Negate(10)

	assert.Equal(t, []int{11}, auxiliaries)
	assert.Equal(t, 11, negated.NV)
}

// The negation holds exactly under the assignments falsifying the CNF
func TestNegateSemantics(t *testing.T) {
	cnf := New([]int{1, -2}, []int{2, 3}, []int{-3})
	negated, _ := cnf.Negate(0)

	for i := range 1 << cnf.NV {
		assignment := map[int]bool{}
		for variable := 1; variable <= cnf.NV; variable++ {
			assignment[variable] = i&(1<<(variable-1)) != 0
		}
		original := satisfies(cnf.Clauses, assignment)

		// Auxiliaries are functionally determined: each one is true if and only if its clause is falsified
		aux := 0
		for _, clause := range cnf.Clauses {
			if len(clause) == 1 {
				continue
			}
			aux++
			assignment[cnf.NV+aux] = !satisfies([][]int{clause}, assignment)
		}

		assert.Equal(t, !original, satisfies(negated.Clauses, assignment), "under %v", assignment)
	}
}

func TestWeighted(t *testing.T) {
	g := NewWithT(t)
	cnf := New([]int{1, 2}, []int{-1})
	cnf.Comments = []string{"weighted"}

	wcnf := cnf.Weighted()

	g.Expect(wcnf.NV).To(Equal(2))
	g.Expect(wcnf.Hard).To(Equal(cnf.Clauses))
	g.Expect(wcnf.Soft).To(BeEmpty())
	g.Expect(wcnf.Comments).To(ConsistOf("weighted"))
}

func TestWCNF(t *testing.T) {
	g := NewWithT(t)

	wcnf := NewWeighted()
	wcnf.AppendHard([]int{1, 2})
	wcnf.AppendSoft([]int{-1}, 3)
	wcnf.AppendSoft([]int{-2, 4}, 5)

	g.Expect(wcnf.NV).To(Equal(4))
	g.Expect(wcnf.Top()).To(Equal(9))
	g.Expect(wcnf.Cost(map[int]bool{1: true})).To(Equal(8))
	g.Expect(wcnf.Cost(map[int]bool{2: true, 4: true, -1: true})).To(Equal(0))
	g.Expect(wcnf.Unweighted().Clauses).To(Equal([][]int{{1, 2}, {-1}, {-2, 4}}))
	g.Expect(wcnf.Validate()).To(Succeed())

	wcnf.Weights[0] = 0
	g.Expect(wcnf.Validate()).To(MatchError(ErrInvalidWeight))
}

func satisfies(clauses [][]int, assignment map[int]bool) bool {
	for _, clause := range clauses {
		satisfied := false
		for _, literal := range clause {
			if literal > 0 && assignment[literal] || literal < 0 && !assignment[-literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}
