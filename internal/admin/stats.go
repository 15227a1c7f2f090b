package admin

import (
	"sort"
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/shopspring/decimal"
)

type datedOrder struct {
	order  AdminOrder
	at     time.Time
	parsed bool
}

func dateOrders(orders []models.Order, opts Options) []datedOrder {
	out := make([]datedOrder, 0, len(orders))
	for _, o := range orders {
		at, ok := parseOrderDate(o.Date, opts.Location)
		out = append(out, datedOrder{order: NormalizeOrder(o, opts), at: at, parsed: ok})
	}
	return out
}

// RecentOrders returns the newest RecentLimit orders. Orders with unparsable
// dates sort after every dated order.
func RecentOrders(orders []models.Order, opts Options) []AdminOrder {
	opts = opts.withDefaults()
	dated := dateOrders(orders, opts)
	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		return a.at.After(b.at)
	})
	return firstOrders(dated, opts.RecentLimit)
}

// PendingOrders returns the oldest PendingLimit orders whose status is one of
// the progress statuses. A missing status does not count as in progress.
func PendingOrders(orders []models.Order, opts Options) []AdminOrder {
	opts = opts.withDefaults()
	inProgress := make([]models.Order, 0)
	for _, o := range orders {
		if o.Status != nil && opts.isProgressStatus(*o.Status) {
			inProgress = append(inProgress, o)
		}
	}

	dated := dateOrders(inProgress, opts)
	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		return a.at.Before(b.at)
	})
	return firstOrders(dated, opts.PendingLimit)
}

func firstOrders(dated []datedOrder, limit int) []AdminOrder {
	if len(dated) > limit {
		dated = dated[:limit]
	}
	out := make([]AdminOrder, 0, len(dated))
	for _, d := range dated {
		out = append(out, d.order)
	}
	return out
}

func totalRevenue(orders []models.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(decimal.NewFromFloat(number(o.Total)))
	}
	return sum
}

// ComposeOverview derives the full dashboard payload from already fetched
// rows. now is read once by the caller.
func ComposeOverview(orders []models.Order, profiles []models.Profile, products []models.Product, now time.Time, opts Options) AdminOverviewResponse {
	opts = opts.withDefaults()

	pending := PendingOrders(orders, opts)
	alerts := InventoryAlerts(products, opts)
	revenue := totalRevenue(orders)

	average := decimal.Zero
	if len(orders) > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(len(orders))))
	}

	return AdminOverviewResponse{
		Stats: AdminStats{
			TotalProducts:     len(products),
			TotalOrders:       len(orders),
			TotalCustomers:    len(profiles),
			TotalRevenue:      revenue.InexactFloat64(),
			MonthlyGrowth:     MonthlyGrowth(orders, now, opts),
			PendingOrders:     len(pending),
			LowStockItems:     len(alerts),
			WeeklyRevenue:     WeeklyRevenue(orders, now, opts),
			InventoryValue:    InventoryValue(products),
			AverageOrderValue: average.InexactFloat64(),
		},
		RecentOrders:    RecentOrders(orders, opts),
		Customers:       MapCustomers(profiles, AggregateCustomerTotals(orders), opts),
		PendingOrders:   pending,
		RevenueTrend:    BuildRevenueTrend(orders, now, opts),
		InventoryAlerts: alerts,
	}
}
