// Package finance computes the client-side depreciation preview shown on the
// new-asset form. The server's depreciation snapshot is authoritative on
// every read path; this estimate only fills the gap before the record exists.
package finance

import (
	"math"
	"time"
)

// Annual straight-line depreciation rate: 10%/year, fully depreciated after
// ten years, no salvage floor other than zero.
const annualRate = 0.10

// Preview is a depreciation estimate for a given cost and purchase date.
type Preview struct {
	Months int     `json:"months"`
	Years  float64 `json:"years"`
	Factor float64 `json:"factor"`
	Value  float64 `json:"current_value"`
}

// ElapsedWholeMonths returns the number of whole calendar months between
// from and to, clamped to zero when to precedes from.
func ElapsedWholeMonths(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// PreviewValue estimates the current value of an asset purchased for cost on
// purchaseDate, as of asOf.
func PreviewValue(cost float64, purchaseDate, asOf time.Time) Preview {
	months := ElapsedWholeMonths(purchaseDate, asOf)
	years := float64(months) / 12
	factor := 1 - annualRate*years
	if factor < 0 {
		factor = 0
	}
	return Preview{
		Months: months,
		Years:  years,
		Factor: factor,
		Value:  round2(cost * factor),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
