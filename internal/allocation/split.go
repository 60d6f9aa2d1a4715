package allocation

import "math"

// amountEpsilon bounds acceptable rounding drift when validating sums.
const amountEpsilon = 0.01

// SplitEqual divides amount evenly across the given cost centers. The base
// share is floored to cents and the remainder is folded into the last share
// so the rows always sum to the original amount exactly and every row stays
// positive. Amounts too small to give each center a cent are rejected. The
// percentage is uniform at 100/N.
func SplitEqual(amount float64, costCenterIDs []int64) ([]Share, error) {
	n := len(costCenterIDs)
	if n == 0 {
		return nil, ErrNoCostCenters
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	share := math.Floor(amount*100/float64(n)) / 100
	if share <= 0 {
		return nil, ErrInvalidAmount
	}
	percentage := round2(100 / float64(n))

	shares := make([]Share, 0, n)
	var distributed float64
	for i, id := range costCenterIDs {
		s := Share{CostCenterID: id, Amount: share, Percentage: percentage}
		if i == n-1 {
			s.Amount = round2(amount - distributed)
		}
		distributed = round2(distributed + s.Amount)
		shares = append(shares, s)
	}
	return shares, nil
}

// SumsToAmount reports whether the allocation rows sum to amount within epsilon.
func SumsToAmount(rows []CostAllocation, amount float64) bool {
	var total float64
	for _, row := range rows {
		total += row.AllocatedAmount
	}
	return math.Abs(total-amount) <= amountEpsilon
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
