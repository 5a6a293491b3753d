package finance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateEvenly(t *testing.T) {
	allocations := AllocateEvenly(100, []string{"A", "B", "C"})

	assert.Equal(t, int64(34), allocations["A"])
	assert.Equal(t, int64(33), allocations["B"])
	assert.Equal(t, int64(33), allocations["C"])
}

func TestAllocateEvenlyConservation(t *testing.T) {
	for _, total := range []int64{0, 1, 7, 100, 999983, 5000000} {
		for n := 1; n <= 7; n++ {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("m%d", i)
			}
			allocations := AllocateEvenly(total, ids)

			var sum int64
			for _, share := range allocations {
				sum += share
			}
			if total > 0 {
				assert.Equal(t, total, sum, "total=%d n=%d", total, n)
			} else {
				assert.Equal(t, int64(0), sum)
			}
		}
	}
}

func TestAllocateEvenlyEmptyMembers(t *testing.T) {
	assert.Empty(t, AllocateEvenly(100, nil))
}

func TestAllocateByWeight(t *testing.T) {
	weights := map[string]int64{"A": 50000, "B": 30000, "C": 20000}
	allocations := AllocateByWeight(1000, weights)

	assert.Equal(t, int64(500), allocations["A"])
	assert.Equal(t, int64(300), allocations["B"])
	assert.Equal(t, int64(200), allocations["C"])
}

func TestAllocateByWeightRemainderGoesToHeaviest(t *testing.T) {
	// 100 over weights 3:3:1 -> floor shares 42/42/14, remainder 2 goes to
	// the two heaviest (tie broken by id).
	weights := map[string]int64{"A": 3, "B": 3, "C": 1}
	allocations := AllocateByWeight(100, weights)

	assert.Equal(t, int64(43), allocations["A"])
	assert.Equal(t, int64(43), allocations["B"])
	assert.Equal(t, int64(14), allocations["C"])
}

func TestAllocateByWeightConservation(t *testing.T) {
	weights := map[string]int64{"A": 7, "B": 13, "C": 1, "D": 29}
	for _, total := range []int64{1, 10, 99, 1000, 123457} {
		allocations := AllocateByWeight(total, weights)

		var sum int64
		for _, share := range allocations {
			sum += share
		}
		assert.Equal(t, total, sum, "total=%d", total)
	}
}

func TestAllocateByWeightLargePoolNoOverflow(t *testing.T) {
	// total*weight exceeds int64 here; the shares must still come out as the
	// exact 3:1 split with nothing lost.
	total := int64(1) << 62
	weights := map[string]int64{"A": 3, "B": 1}
	allocations := AllocateByWeight(total, weights)

	assert.Equal(t, int64(3)<<60, allocations["A"])
	assert.Equal(t, int64(1)<<60, allocations["B"])
	assert.Equal(t, total, allocations["A"]+allocations["B"])
}

func TestAllocateByWeightZeroTotalWeight(t *testing.T) {
	assert.Empty(t, AllocateByWeight(100, map[string]int64{"A": 0, "B": 0}))
}
