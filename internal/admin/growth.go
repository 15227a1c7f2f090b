package admin

import (
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WeeklyRevenue sums orders dated at or after now-WeeklyWindow.
func WeeklyRevenue(orders []models.Order, now time.Time, opts Options) float64 {
	opts = opts.withDefaults()
	cutoff := now.Add(-opts.WeeklyWindow)

	sum := decimal.Zero
	for _, o := range orders {
		t, ok := parseOrderDate(o.Date, opts.Location)
		if !ok || t.Before(cutoff) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(number(o.Total)))
	}
	return sum.InexactFloat64()
}

// MonthlyGrowth compares revenue in [now-w, now) against [now-2w, now-w) and
// returns the percentage change rounded to one decimal.
func MonthlyGrowth(orders []models.Order, now time.Time, opts Options) float64 {
	opts = opts.withDefaults()
	currentStart := now.Add(-opts.GrowthWindow)
	previousStart := now.Add(-2 * opts.GrowthWindow)

	current, previous := decimal.Zero, decimal.Zero
	for _, o := range orders {
		t, ok := parseOrderDate(o.Date, opts.Location)
		if !ok {
			continue
		}
		value := decimal.NewFromFloat(number(o.Total))
		switch {
		case !t.Before(currentStart) && t.Before(now):
			current = current.Add(value)
		case !t.Before(previousStart) && t.Before(currentStart):
			previous = previous.Add(value)
		}
	}
	return growthRate(current, previous)
}

// growthRate caps the zero-baseline case at 100 instead of dividing by zero.
func growthRate(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1).InexactFloat64()
}
