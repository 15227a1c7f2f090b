package admin

import (
	"sort"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/shopspring/decimal"
)

// CustomerTotals is the per-customer order aggregate.
type CustomerTotals struct {
	Orders int
	Spent  decimal.Decimal
}

// AggregateCustomerTotals folds every order into per-customer totals keyed by
// the order's account id, or its email when the account id is absent. Orders
// with neither are left out of the aggregate.
func AggregateCustomerTotals(orders []models.Order) map[string]CustomerTotals {
	totals := make(map[string]CustomerTotals)
	for _, o := range orders {
		key := textOr(o.UserID, textOr(o.CustomerEmail, ""))
		if key == "" {
			continue
		}
		t := totals[key]
		t.Orders++
		t.Spent = t.Spent.Add(decimal.NewFromFloat(number(o.Total)))
		totals[key] = t
	}
	return totals
}

// MapCustomers shapes profiles for display. Aggregates are looked up by the
// profile id only.
func MapCustomers(profiles []models.Profile, totals map[string]CustomerTotals, opts Options) []AdminCustomer {
	opts = opts.withDefaults()

	out := make([]AdminCustomer, 0, len(profiles))
	for _, p := range profiles {
		t := totals[p.ID]
		out = append(out, AdminCustomer{
			ID:          DisplayID(p.ID, opts),
			Name:        textOr(p.Name, textOr(p.Email, opts.CustomerPlaceholder)),
			Email:       textOr(p.Email, ""),
			Phone:       p.Phone,
			TotalOrders: t.Orders,
			TotalSpent:  t.Spent.InexactFloat64(),
			JoinDate:    p.JoinDate,
			Status:      textOr(p.Tier, opts.DefaultTier),
		})
	}
	return out
}

// DisplayID is the short customer label: prefix plus the first
// CustomerIDLength characters of the raw id. It is not unique.
func DisplayID(rawID string, opts Options) string {
	opts = opts.withDefaults()
	runes := []rune(rawID)
	if len(runes) > opts.CustomerIDLength {
		runes = runes[:opts.CustomerIDLength]
	}
	return opts.CustomerIDPrefix + string(runes)
}

// DisplayIDCollisions returns every display id shared by more than one
// profile, mapped to the raw ids that produce it (sorted).
func DisplayIDCollisions(profiles []models.Profile, opts Options) map[string][]string {
	seen := make(map[string]map[string]struct{})
	for _, p := range profiles {
		id := DisplayID(p.ID, opts)
		if seen[id] == nil {
			seen[id] = make(map[string]struct{})
		}
		seen[id][p.ID] = struct{}{}
	}

	collisions := make(map[string][]string)
	for display, raw := range seen {
		if len(raw) < 2 {
			continue
		}
		ids := make([]string, 0, len(raw))
		for id := range raw {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		collisions[display] = ids
	}
	return collisions
}
