package servicerequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand struct {
	n     int
	calls []int
}

func (f *fixedRand) IntN(n int) int {
	f.calls = append(f.calls, n)
	return f.n % n
}

func TestAssignmentPolicy_EmptyPool(t *testing.T) {
	p := NewAssignmentPolicy(&fixedRand{})
	assert.Nil(t, p.Assign(nil))
	assert.Nil(t, p.Assign([]uint{}))
}

func TestAssignmentPolicy_SingleMember(t *testing.T) {
	p := NewAssignmentPolicy(nil)
	for range 50 {
		got := p.Assign([]uint{42})
		require.NotNil(t, got)
		assert.Equal(t, uint(42), *got)
	}
}

func TestAssignmentPolicy_UsesInjectedSource(t *testing.T) {
	rnd := &fixedRand{n: 2}
	p := NewAssignmentPolicy(rnd)

	got := p.Assign([]uint{10, 20, 30})
	require.NotNil(t, got)
	assert.Equal(t, uint(30), *got)
	assert.Equal(t, []int{3}, rnd.calls)
}

func TestAssignmentPolicy_CoversWholePool(t *testing.T) {
	p := NewAssignmentPolicy(nil)
	pool := []uint{1, 2, 3}
	seen := map[uint]int{}

	for range 3000 {
		seen[*p.Assign(pool)]++
	}

	require.Len(t, seen, 3)
	for _, id := range pool {
		// 1000 expected each; bounds are far outside random variation
		assert.Greater(t, seen[id], 700)
		assert.Less(t, seen[id], 1300)
	}
}
