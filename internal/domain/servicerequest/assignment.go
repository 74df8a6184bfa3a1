package servicerequest

import (
	"math/rand/v2"
)

// RandSource yields a uniformly distributed integer in [0, n).
type RandSource interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// AssignmentPolicy picks a support staff member for a new request by
// uniform random choice over a point-in-time snapshot of eligible staff.
type AssignmentPolicy struct {
	rnd RandSource
}

// NewAssignmentPolicy uses the global math/rand/v2 source when rnd is nil.
func NewAssignmentPolicy(rnd RandSource) *AssignmentPolicy {
	if rnd == nil {
		rnd = defaultRand{}
	}
	return &AssignmentPolicy{rnd: rnd}
}

// Assign returns one member of pool, or nil when pool is empty.
func (p *AssignmentPolicy) Assign(pool []uint) *uint {
	if len(pool) == 0 {
		return nil
	}
	picked := pool[p.rnd.IntN(len(pool))]
	return &picked
}
