package assets

import (
	"math"
	"time"
)

// daysPerYear matches the Julian year used for elapsed-time depreciation.
const daysPerYear = 365.25

// ElapsedYears returns the fractional years between purchase and now,
// clamped at zero for future-dated purchases.
func ElapsedYears(purchaseDate, now time.Time) float64 {
	days := now.Sub(purchaseDate).Hours() / 24
	if days < 0 {
		return 0
	}
	return days / daysPerYear
}

// AnnualDepreciation returns the straight-line yearly write-off.
func AnnualDepreciation(purchasePrice float64, usefulLifeYears int) float64 {
	if usefulLifeYears < MinUsefulLifeYears {
		return 0
	}
	return purchasePrice / float64(usefulLifeYears)
}

// AccumulatedDepreciation returns total depreciation to date, capped at the
// purchase price so book value never goes negative.
func AccumulatedDepreciation(purchasePrice float64, usefulLifeYears int, purchaseDate, now time.Time) float64 {
	annual := AnnualDepreciation(purchasePrice, usefulLifeYears)
	total := annual * ElapsedYears(purchaseDate, now)
	return round2(math.Min(total, purchasePrice))
}

// CurrentValue returns the straight-line book value of an asset as of now,
// rounded to 2 decimals and clamped to [0, purchasePrice].
func CurrentValue(purchasePrice float64, usefulLifeYears int, purchaseDate, now time.Time) float64 {
	value := purchasePrice - AccumulatedDepreciation(purchasePrice, usefulLifeYears, purchaseDate, now)
	if value < 0 {
		return 0
	}
	return round2(value)
}

// ValueAt decorates an asset with its derived book values as of now.
func ValueAt(asset Asset, now time.Time) Valuation {
	return Valuation{
		Asset:                   asset,
		CurrentValue:            CurrentValue(asset.PurchasePrice, asset.UsefulLifeYears, asset.PurchaseDate, now),
		AccumulatedDepreciation: AccumulatedDepreciation(asset.PurchasePrice, asset.UsefulLifeYears, asset.PurchaseDate, now),
		AnnualDepreciation:      round2(AnnualDepreciation(asset.PurchasePrice, asset.UsefulLifeYears)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
