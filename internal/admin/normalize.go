package admin

import (
	"math"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
)

const (
	dateKeyLayout = "2006-01-02"
	labelLayout   = "02/01"
)

// Layouts carrying their own offset keep that offset's wall clock.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
}

// Layouts without an offset are read in the configured location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	dateKeyLayout,
}

// NormalizeOrder maps a raw order row to its display shape. It never fails:
// missing values degrade to the configured defaults.
func NormalizeOrder(o models.Order, opts Options) AdminOrder {
	opts = opts.withDefaults()

	products := make([]AdminOrderProduct, 0, len(o.Items))
	for _, item := range o.Items {
		products = append(products, AdminOrderProduct{
			Name:     textOr(item.ProductName, ""),
			Quantity: intValue(item.Quantity),
			Price:    number(item.Price),
		})
	}

	out := AdminOrder{
		ID:              o.ID,
		Customer:        textOr(o.CustomerName, opts.CustomerPlaceholder),
		Email:           textOr(o.CustomerEmail, ""),
		Total:           number(o.Total),
		Status:          textOr(o.Status, opts.PendingStatus),
		Date:            textOr(o.Date, ""),
		Items:           intValue(o.ItemsCount),
		PaymentMethod:   textOr(o.PaymentMethod, opts.DefaultPaymentMethod),
		ShippingAddress: o.ShippingAddress,
		TrackingNumber:  o.TrackingNumber,
		Products:        products,
	}
	if o.Note != nil && strings.TrimSpace(*o.Note) != "" {
		note := *o.Note
		out.Note = &note
	}
	return out
}

func normalizeOrders(orders []models.Order, opts Options) []AdminOrder {
	out := make([]AdminOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, NormalizeOrder(o, opts))
	}
	return out
}

// parseOrderDate returns false for missing or unparsable dates.
func parseOrderDate(raw *string, loc *time.Location) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

func dayLabel(t time.Time) string {
	return t.Format(labelLayout)
}

func textOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func number(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
