package finance

import (
	"math/big"
	"sort"
)

// AllocateEvenly splits total across memberIDs in equal integer shares. The
// first (total mod n) members absorb one extra unit each, in list order, so
// the allocations always sum to exactly total.
func AllocateEvenly(total int64, memberIDs []string) map[string]int64 {
	allocations := make(map[string]int64)
	if len(memberIDs) == 0 || total <= 0 {
		return allocations
	}

	n := int64(len(memberIDs))
	base := total / n
	remainder := total - base*n

	for idx, id := range memberIDs {
		share := base
		if int64(idx) < remainder {
			share++
		}
		allocations[id] = share
	}
	return allocations
}

// AllocateByWeight splits total proportionally to each member's weight.
// Rounding leftovers are handed out one unit at a time to members in
// descending weight order, cycling until exhausted, so the allocations
// always sum to exactly total.
func AllocateByWeight(total int64, weights map[string]int64) map[string]int64 {
	allocations := make(map[string]int64)
	if len(weights) == 0 || total <= 0 {
		return allocations
	}

	var totalWeight int64
	ids := make([]string, 0, len(weights))
	for id, weight := range weights {
		totalWeight += weight
		ids = append(ids, id)
	}
	if totalWeight == 0 {
		return allocations
	}

	// total*weight can exceed int64 for large pools, so the proportional
	// share is computed in big integers; the quotient always fits.
	bigTotal := big.NewInt(total)
	bigTotalWeight := big.NewInt(totalWeight)
	var allocated int64
	for _, id := range ids {
		product := new(big.Int).Mul(bigTotal, big.NewInt(weights[id]))
		share := product.Div(product, bigTotalWeight).Int64()
		allocations[id] = share
		allocated += share
	}

	remainder := total - allocated
	if remainder > 0 {
		// Descending weight; ties broken by id for a stable order.
		sort.Slice(ids, func(i, j int) bool {
			if weights[ids[i]] != weights[ids[j]] {
				return weights[ids[i]] > weights[ids[j]]
			}
			return ids[i] < ids[j]
		})
		idx := 0
		for remainder > 0 {
			allocations[ids[idx%len(ids)]]++
			remainder--
			idx++
		}
	}
	return allocations
}
