package admin

import (
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/shopspring/decimal"
)

type trendBucket struct {
	point   SalesTrendPoint
	revenue decimal.Decimal
}

// BuildRevenueTrend returns one point per calendar day for the trailing
// TrendDays days ending on now's date, oldest first. Days without orders are
// present with zero values.
func BuildRevenueTrend(orders []models.Order, now time.Time, opts Options) []SalesTrendPoint {
	opts = opts.withDefaults()
	today := now.In(opts.Location)

	buckets := make([]trendBucket, 0, opts.TrendDays)
	index := make(map[string]int, opts.TrendDays)
	for offset := opts.TrendDays - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		key := dateKey(day)
		index[key] = len(buckets)
		buckets = append(buckets, trendBucket{
			point:   SalesTrendPoint{Date: key, Label: dayLabel(day)},
			revenue: decimal.Zero,
		})
	}

	for _, o := range orders {
		t, ok := parseOrderDate(o.Date, opts.Location)
		if !ok {
			continue
		}
		i, ok := index[dateKey(t)]
		if !ok {
			continue
		}
		buckets[i].revenue = buckets[i].revenue.Add(decimal.NewFromFloat(number(o.Total)))
		buckets[i].point.Orders++
	}

	points := make([]SalesTrendPoint, 0, len(buckets))
	for _, b := range buckets {
		b.point.Revenue = b.revenue.InexactFloat64()
		points = append(points, b.point)
	}
	return points
}
