package formula

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// DefaultPool backs the package-level constructors (NewVar, ToCNF, ...)
var DefaultPool = NewIDPool()

// ErrIDTaken is returned when a numbered variable asks for an identifier the pool already gave away
var ErrIDTaken = errors.New("identifier already assigned")

// constantKey is the pool object of the variable encoding the constant True
type constantKey struct{}

// IDPool hands out integer variable identifiers and remembers which object each identifier was assigned to.
// Identifiers start from 1 unless stated otherwise, and occupied intervals are skipped.
type IDPool struct {
	mutex    sync.Mutex
	top      int
	occupied [][2]int
	obj2id   map[any]int
	id2obj   map[int]any
	unbound  map[int]bool // Fresh identifiers handed out without an object
}

type poolOptions struct {
	startFrom int
	occupied  [][2]int
}

type PoolOption func(*poolOptions)

// StartFrom sets the smallest identifier the pool assigns
func StartFrom(id int) PoolOption {
	return func(options *poolOptions) {
		options.startFrom = id
	}
}

// Occupied marks intervals (inclusive on both ends) the pool must never assign
func Occupied(intervals ...[2]int) PoolOption {
	return func(options *poolOptions) {
		options.occupied = append(options.occupied, intervals...)
	}
}

func NewIDPool(opts ...PoolOption) *IDPool {
	pool := &IDPool{}
	pool.Restart(opts...)
	return pool
}

// Restart resets the pool from scratch; options replicate those of NewIDPool
func (pool *IDPool) Restart(opts ...PoolOption) {
	options := poolOptions{startFrom: 1}
	for _, opt := range opts {
		opt(&options)
	}

	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	pool.top = options.startFrom - 1
	pool.occupied = slices.Clone(options.occupied)
	slices.SortFunc(pool.occupied, func(a, b [2]int) int { return a[0] - b[0] })
	pool.obj2id = make(map[any]int)
	pool.id2obj = make(map[int]any)
	pool.unbound = make(map[int]bool)
}

// ID returns the identifier of obj, assigning a new one if obj was never seen before.
// A nil obj always yields a fresh identifier which is not bound to any object.
//
// Example:
//
//	pool := NewIDPool(Occupied([2]int{12, 18}, [2]int{3, 10}))
//	for i := range 5 {
//		pool.ID(fmt.Sprintf("v%d", i+1)) // 1, 2, 11, 19, 20
//	}
func (pool *IDPool) ID(obj any) int {
	pool.mutex.Lock()
	defer pool.mutex.Unlock()

	if obj == nil {
		return pool.nextUnbound()
	}

	id, ok := pool.obj2id[obj]
	if !ok {
		id = pool.next()
		pool.obj2id[obj] = id
		pool.id2obj[id] = obj
	}
	return id
}

// NextID returns a fresh identifier unassigned to any object
func (pool *IDPool) NextID() int {
	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	return pool.nextUnbound()
}

// Obj maps an identifier back to the object it was assigned to
func (pool *IDPool) Obj(id int) (any, bool) {
	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	obj, ok := pool.id2obj[id]
	return obj, ok
}

// Occupy marks the interval [start, stop] as occupied so the pool skips it. Empty intervals are ignored
func (pool *IDPool) Occupy(start, stop int) {
	if stop < start {
		return
	}

	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	pool.occupied = append(pool.occupied, [2]int{start, stop})
	slices.SortFunc(pool.occupied, func(a, b [2]int) int { return a[0] - b[0] })
}

// Top returns the largest identifier handed out so far
func (pool *IDPool) Top() int {
	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	return pool.top
}

// Reserve consumes fresh identifiers until top reaches upTo, so numbered variables never collide with fresh ones
func (pool *IDPool) Reserve(upTo int) {
	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	for upTo > pool.top {
		pool.next()
	}
}

// Claim takes id for a numbered variable. Identifiers above top are reserved as Reserve does, and claiming
// an identifier twice is allowed; an identifier the pool assigned to an object or handed out fresh is refused.
func (pool *IDPool) Claim(id int) error {
	if id <= 0 {
		return fmt.Errorf("variable identifiers must be positive: %v", id)
	}

	pool.mutex.Lock()
	defer pool.mutex.Unlock()
	if obj, ok := pool.id2obj[id]; ok {
		return fmt.Errorf("%w: %d belongs to %v", ErrIDTaken, id, describe(obj))
	}
	if pool.unbound[id] {
		return fmt.Errorf("%w: %d is an auxiliary variable", ErrIDTaken, id)
	}
	for id > pool.top {
		pool.next()
	}
	return nil
}

func describe(obj any) string {
	if _, ok := obj.(constantKey); ok {
		return "the constant True"
	}
	return fmt.Sprintf("%q", fmt.Sprint(obj))
}

func (pool *IDPool) nextUnbound() int {
	id := pool.next()
	pool.unbound[id] = true
	return id
}

// next must be called with the mutex held
func (pool *IDPool) next() int {
	pool.top++

	// Skip occupied intervals; an interval is dropped once the counter has reached it
	for len(pool.occupied) > 0 && pool.top >= pool.occupied[0][0] {
		if pool.top <= pool.occupied[0][1] {
			pool.top = pool.occupied[0][1] + 1
		}
		pool.occupied = pool.occupied[1:]
	}

	return pool.top
}

func (pool *IDPool) trueID() int {
	return pool.ID(constantKey{})
}
