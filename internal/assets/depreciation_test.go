package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func yearsAfter(t time.Time, years float64) time.Time {
	return t.Add(time.Duration(years * daysPerYear * 24 * float64(time.Hour)))
}

func TestCurrentValueHalfLife(t *testing.T) {
	purchase := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	now := yearsAfter(purchase, 5)

	value := CurrentValue(10000, 10, purchase, now)
	require.InDelta(t, 5000.00, value, 0.01)
}

func TestCurrentValueAtPurchase(t *testing.T) {
	purchase := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)

	value := CurrentValue(8500, 7, purchase, purchase)
	require.InDelta(t, 8500, value, 0.001)
}

func TestCurrentValueFullyDepreciated(t *testing.T) {
	purchase := time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC)

	endOfLife := yearsAfter(purchase, 10)
	require.InDelta(t, 0, CurrentValue(12000, 10, purchase, endOfLife), 0.01)

	longAfter := yearsAfter(purchase, 25)
	require.Equal(t, 0.0, CurrentValue(12000, 10, purchase, longAfter))
}

func TestCurrentValueCalendarAnniversaryLeavesResidue(t *testing.T) {
	// End of life is defined by elapsed 365.25-day years, not calendar
	// anniversaries. 2021-01-01 plus ten calendar years spans 3652 days,
	// half a day short of 10*365.25, so a small residue remains until the
	// fractional-year mark passes.
	purchase := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	anniversary := purchase.AddDate(10, 0, 0)

	require.InDelta(t, 1.37, CurrentValue(10000, 10, purchase, anniversary), 0.01)
	require.InDelta(t, 0, CurrentValue(10000, 10, purchase, yearsAfter(purchase, 10)), 0.01)
}

func TestCurrentValueBoundsAndMonotonic(t *testing.T) {
	purchase := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 25000.0
	life := 8

	prev := price
	for months := 0; months <= life*12+24; months++ {
		now := purchase.AddDate(0, months, 0)
		value := CurrentValue(price, life, purchase, now)
		require.GreaterOrEqual(t, value, 0.0)
		require.LessOrEqual(t, value, price)
		require.LessOrEqual(t, value, prev+0.01)
		prev = value
	}
}

func TestCurrentValueFutureDatedPurchase(t *testing.T) {
	purchase := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.Equal(t, 9000.0, CurrentValue(9000, 5, purchase, now))
}

func TestAccumulatedDepreciationCapped(t *testing.T) {
	purchase := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	now := yearsAfter(purchase, 50)

	require.InDelta(t, 6000, AccumulatedDepreciation(6000, 4, purchase, now), 0.001)
}

func TestAnnualDepreciationRejectsBadLife(t *testing.T) {
	require.Equal(t, 0.0, AnnualDepreciation(1000, 0))
	require.Equal(t, 0.0, AnnualDepreciation(1000, -3))
}

func TestValueAtRoundsToCents(t *testing.T) {
	purchase := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	asset := Asset{PurchasePrice: 1000, UsefulLifeYears: 3, PurchaseDate: purchase}

	v := ValueAt(asset, yearsAfter(purchase, 1))
	require.InDelta(t, 666.67, v.CurrentValue, 0.005)
	require.InDelta(t, 333.33, v.AccumulatedDepreciation, 0.005)
	require.InDelta(t, 333.33, v.AnnualDepreciation, 0.005)
}
