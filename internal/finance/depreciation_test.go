package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestElapsedWholeMonths(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", date(2024, 3, 15), date(2024, 3, 15), 0},
		{"one day short of a month", date(2024, 3, 15), date(2024, 4, 14), 0},
		{"exactly one month", date(2024, 3, 15), date(2024, 4, 15), 1},
		{"across year boundary", date(2023, 11, 1), date(2024, 2, 1), 3},
		{"future purchase clamps to zero", date(2025, 1, 1), date(2024, 1, 1), 0},
		{"two years", date(2022, 6, 10), date(2024, 6, 10), 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedWholeMonths(tt.from, tt.to))
		})
	}
}

func TestPreviewValue(t *testing.T) {
	// 24 months at 10%/year leaves 80% of the cost.
	preview := PreviewValue(10000, date(2022, 6, 10), date(2024, 6, 10))
	assert.Equal(t, 24, preview.Months)
	assert.InDelta(t, 2.0, preview.Years, 1e-9)
	assert.InDelta(t, 0.8, preview.Factor, 1e-9)
	assert.Equal(t, 8000.00, preview.Value)
}

func TestPreviewValueFloorsAtZero(t *testing.T) {
	// Anything older than ten years is fully depreciated, never negative.
	preview := PreviewValue(5000, date(2010, 1, 1), date(2024, 1, 1))
	assert.Equal(t, 0.0, preview.Factor)
	assert.Equal(t, 0.0, preview.Value)
}

func TestPreviewValueMonotonic(t *testing.T) {
	purchase := date(2020, 1, 15)
	prev := PreviewValue(10000, purchase, purchase).Value
	for months := 1; months <= 140; months++ {
		asOf := purchase.AddDate(0, months, 0)
		cur := PreviewValue(10000, purchase, asOf).Value
		require.LessOrEqual(t, cur, prev, "value rose between month %d and %d", months-1, months)
		require.GreaterOrEqual(t, cur, 0.0)
		prev = cur
	}
}

func TestPreviewValueRounding(t *testing.T) {
	// 7 months on 999.99: factor 1 - 0.1*7/12.
	preview := PreviewValue(999.99, date(2024, 1, 1), date(2024, 8, 1))
	assert.Equal(t, 7, preview.Months)
	assert.Equal(t, 941.66, preview.Value)
}
