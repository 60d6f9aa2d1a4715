package allocation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitEqualSevenCenters(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5, 6, 7}

	shares, err := SplitEqual(700, ids)
	require.NoError(t, err)
	require.Len(t, shares, 7)

	var sum float64
	for _, s := range shares {
		require.InDelta(t, 100.00, s.Amount, 0.001)
		require.InDelta(t, 14.29, s.Percentage, 0.001)
		sum += s.Amount
	}
	require.InDelta(t, 700, sum, 0.001)
}

func TestSplitEqualRemainderFoldsIntoLast(t *testing.T) {
	shares, err := SplitEqual(100, []int64{1, 2, 3})
	require.NoError(t, err)

	require.InDelta(t, 33.33, shares[0].Amount, 0.001)
	require.InDelta(t, 33.33, shares[1].Amount, 0.001)
	require.InDelta(t, 33.34, shares[2].Amount, 0.001)

	var sum float64
	for _, s := range shares {
		sum += s.Amount
	}
	require.Equal(t, 100.0, sum)
}

func TestSplitEqualRejectsSubCentShares(t *testing.T) {
	// 0.04 across seven centers cannot give every center a cent; folding
	// the remainder would drive the last row negative.
	_, err := SplitEqual(0.04, []int64{1, 2, 3, 4, 5, 6, 7})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSplitEqualSharesStayPositive(t *testing.T) {
	// 0.35/10 rounds up to 0.04 per center, which over nine rows exceeds
	// the total; the floored base share keeps every row positive.
	shares, err := SplitEqual(0.35, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	require.NoError(t, err)
	require.Len(t, shares, 10)

	var sum float64
	for _, s := range shares {
		require.Greater(t, s.Amount, 0.0)
		sum = round2(sum + s.Amount)
	}
	require.InDelta(t, 0.35, sum, 0.001)
	require.InDelta(t, 0.08, shares[9].Amount, 0.001)
}

func TestSplitEqualNoCostCenters(t *testing.T) {
	_, err := SplitEqual(500, nil)
	require.ErrorIs(t, err, ErrNoCostCenters)
}

func TestSplitEqualRejectsNonPositiveAmount(t *testing.T) {
	_, err := SplitEqual(0, []int64{1})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = SplitEqual(-10, []int64{1})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSumsToAmount(t *testing.T) {
	rows := []CostAllocation{
		{AllocatedAmount: 33.33},
		{AllocatedAmount: 33.33},
		{AllocatedAmount: 33.34},
	}
	require.True(t, SumsToAmount(rows, 100))
	require.False(t, SumsToAmount(rows, 101))
}
