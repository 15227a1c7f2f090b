package admin

import (
	"sort"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/shopspring/decimal"
)

// InventoryAlerts flags products with stock at or below the threshold,
// ordered by stock ascending with ties kept in input order.
func InventoryAlerts(products []models.Product, opts Options) []InventoryAlert {
	opts = opts.withDefaults()

	alerts := make([]InventoryAlert, 0)
	for _, p := range products {
		stock := intValue(p.Stock)
		if stock > opts.LowStockThreshold {
			continue
		}
		alert := InventoryAlert{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     stock,
			Threshold: opts.LowStockThreshold,
		}
		if p.SoldCount != nil {
			sold := *p.SoldCount
			alert.SoldCount = &sold
		}
		alerts = append(alerts, alert)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Stock < alerts[j].Stock
	})
	return alerts
}

// InventoryValue is the sum of stock × price across all products.
func InventoryValue(products []models.Product) float64 {
	sum := decimal.Zero
	for _, p := range products {
		stock := decimal.NewFromInt(int64(intValue(p.Stock)))
		sum = sum.Add(stock.Mul(decimal.NewFromFloat(number(p.Price))))
	}
	return sum.InexactFloat64()
}
