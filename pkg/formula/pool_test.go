package formula

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDPoolOccupied(t *testing.T) {
	//** Arrange
	pool := NewIDPool(Occupied([2]int{12, 18}, [2]int{3, 10}))

	//** Act
	ids := make([]int, 0, 5)
	for i := range 5 {
		ids = append(ids, pool.ID(fmt.Sprintf("v%d", i+1)))
	}

	//** Assert
	assert.Equal(t, []int{1, 2, 11, 19, 20}, ids)
	assert.Equal(t, 20, pool.Top())
}

func TestIDPoolMapping(t *testing.T) {
	pool := NewIDPool(StartFrom(5))

	assert.Equal(t, 5, pool.ID("a"))
	assert.Equal(t, 6, pool.ID([2]int{1, 2}))
	assert.Equal(t, 5, pool.ID("a"))
	assert.Equal(t, 7, pool.NextID())
	assert.Equal(t, 8, pool.ID(nil))

	obj, ok := pool.Obj(6)
	assert.True(t, ok)
	assert.Equal(t, [2]int{1, 2}, obj)
	_, ok = pool.Obj(7)
	assert.False(t, ok)
}

func TestIDPoolOccupyAndReserve(t *testing.T) {
	pool := NewIDPool()

	pool.Occupy(2, 4)
	pool.Occupy(9, 8) // Empty interval
	assert.Equal(t, 1, pool.NextID())
	assert.Equal(t, 5, pool.NextID())

	pool.Reserve(10)
	assert.Equal(t, 10, pool.Top())
	assert.Equal(t, 11, pool.NextID())

	pool.Reserve(3) // Below top, nothing happens
	assert.Equal(t, 11, pool.Top())
}

func TestIDPoolRestart(t *testing.T) {
	pool := NewIDPool()
	pool.ID("a")
	pool.ID("b")

	pool.Restart(Occupied([2]int{1, 1}))

	assert.Equal(t, 0, pool.Top())
	assert.Equal(t, 2, pool.ID("b"))
	_, ok := pool.Obj(1)
	assert.False(t, ok)
}

func TestIDPoolConcurrentUse(t *testing.T) {
	//** Arrange
	pool := NewIDPool()
	var wg sync.WaitGroup
	results := make([][]int, 8)

	//** Act
	for worker := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				results[worker] = append(results[worker], pool.NextID())
			}
		}()
	}
	wg.Wait()

	//** Assert
	seen := make(map[int]bool)
	for _, ids := range results {
		for _, id := range ids {
			assert.False(t, seen[id], "identifier %d handed out twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, 800)
	assert.Equal(t, 800, pool.Top())
}
