package admin

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*60*60)

func ptr[T any](v T) *T {
	return &v
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Location = ict
	return opts
}

func testNow() time.Time {
	return time.Date(2026, 10, 15, 12, 0, 0, 0, ict)
}

func datedOrderRow(id string, total float64, date string) models.Order {
	o := models.Order{ID: id, Total: ptr(total)}
	if date != "" {
		o.Date = ptr(date)
	}
	return o
}

func TestParseOrderDateLayouts(t *testing.T) {
	tests := []struct {
		raw    string
		ok     bool
		day    string
		offset int
	}{
		{raw: "2026-10-15T23:30:00Z", ok: true, day: "2026-10-15", offset: 0},
		{raw: "2026-10-15T08:00:00+07:00", ok: true, day: "2026-10-15", offset: 7 * 3600},
		{raw: "2026-10-15T08:00:00+0700", ok: true, day: "2026-10-15", offset: 7 * 3600},
		{raw: "2026-10-15T08:00:00.250+0700", ok: true, day: "2026-10-15", offset: 7 * 3600},
		{raw: "2026-10-14 22:00:00-0300", ok: true, day: "2026-10-14", offset: -3 * 3600},
		{raw: "2026-10-15 08:00:00+07", ok: true, day: "2026-10-15", offset: 7 * 3600},
		{raw: "2026-10-15", ok: true, day: "2026-10-15", offset: 7 * 3600},
		{raw: "15/10/2026", ok: false},
		{raw: "  ", ok: false},
	}

	for _, tt := range tests {
		got, ok := parseOrderDate(ptr(tt.raw), ict)
		require.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		if !tt.ok {
			continue
		}
		assert.Equal(t, tt.day, dateKey(got), "raw %q", tt.raw)
		_, offset := got.Zone()
		assert.Equal(t, tt.offset, offset, "raw %q", tt.raw)
	}
}

func TestNormalizeOrderDefaults(t *testing.T) {
	raw := models.Order{
		ID:    "ord-1",
		Total: ptr(math.NaN()),
		Note:  ptr("   "),
	}
	got := NormalizeOrder(raw, testOptions())

	assert.Equal(t, "Khách hàng", got.Customer)
	assert.Equal(t, "Chờ xử lý", got.Status)
	assert.Equal(t, "cod", got.PaymentMethod)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, "", got.Date)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.Items)
	assert.Nil(t, got.Note)
	require.NotNil(t, got.Products)
	assert.Empty(t, got.Products)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"products":[]`)
	assert.NotContains(t, string(body), `"note"`)
}

func TestNormalizeOrderMapsFields(t *testing.T) {
	raw := models.Order{
		ID:              "ord-2",
		CustomerName:    ptr("Lan"),
		CustomerEmail:   ptr("lan@example.com"),
		Total:           ptr(250.5),
		Status:          ptr("Đang giao"),
		Date:            ptr("2026-10-14T09:00:00+07:00"),
		ItemsCount:      ptr(2),
		PaymentMethod:   ptr("momo"),
		ShippingAddress: ptr("12 Lê Lợi"),
		Note:            ptr("gọi trước"),
		Items: []models.OrderItem{
			{ProductName: ptr("Áo thun"), Quantity: ptr(2), Price: ptr(100.0)},
			{ProductName: nil, Quantity: nil, Price: nil},
		},
	}
	got := NormalizeOrder(raw, testOptions())

	assert.Equal(t, "Lan", got.Customer)
	assert.Equal(t, 250.5, got.Total)
	assert.Equal(t, "Đang giao", got.Status)
	assert.Equal(t, 2, got.Items)
	assert.Equal(t, "momo", got.PaymentMethod)
	require.NotNil(t, got.ShippingAddress)
	assert.Nil(t, got.TrackingNumber)
	require.NotNil(t, got.Note)
	assert.Equal(t, "gọi trước", *got.Note)
	assert.Equal(t, []AdminOrderProduct{
		{Name: "Áo thun", Quantity: 2, Price: 100},
		{Name: "", Quantity: 0, Price: 0},
	}, got.Products)
}

func TestBuildRevenueTrendBucketsByLocalDate(t *testing.T) {
	orders := []models.Order{
		datedOrderRow("today", 100, "2026-10-15T08:00:00+07:00"),
		datedOrderRow("today-utc", 40, "2026-10-15T23:30:00Z"),
		datedOrderRow("oldest", 50, "2026-10-02 10:00:00"),
		datedOrderRow("outside", 70, "2026-10-01T23:00:00+07:00"),
		datedOrderRow("garbage", 10, "not-a-date"),
		datedOrderRow("missing", 5, ""),
	}

	points := BuildRevenueTrend(orders, testNow(), testOptions())
	require.Len(t, points, 14)

	assert.Equal(t, SalesTrendPoint{Date: "2026-10-02", Label: "02/10", Revenue: 50, Orders: 1}, points[0])
	assert.Equal(t, SalesTrendPoint{Date: "2026-10-15", Label: "15/10", Revenue: 140, Orders: 2}, points[13])

	total := 0
	for i, p := range points {
		total += p.Orders
		if i == 0 {
			continue
		}
		prev, err := time.Parse("2006-01-02", points[i-1].Date)
		require.NoError(t, err)
		cur, err := time.Parse("2006-01-02", p.Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur, "dates must be consecutive")
	}
	assert.LessOrEqual(t, total, 4)
}

func TestBuildRevenueTrendEmpty(t *testing.T) {
	points := BuildRevenueTrend(nil, testNow(), testOptions())
	require.Len(t, points, 14)
	for _, p := range points {
		assert.Zero(t, p.Revenue)
		assert.Zero(t, p.Orders)
	}
}

func TestWeeklyRevenue(t *testing.T) {
	orders := []models.Order{
		datedOrderRow("today", 100, "2026-10-15T11:00:00+07:00"),
		datedOrderRow("eight-days", 200, "2026-10-07T12:00:00+07:00"),
		datedOrderRow("garbage", 300, "yesterday"),
	}
	assert.Equal(t, 100.0, WeeklyRevenue(orders, testNow(), testOptions()))
}

func TestMonthlyGrowth(t *testing.T) {
	now := testNow()
	opts := testOptions()

	tests := []struct {
		name   string
		orders []models.Order
		want   float64
	}{
		{name: "no revenue", want: 0},
		{
			name:   "no previous revenue",
			orders: []models.Order{datedOrderRow("cur", 50, "2026-10-05T12:00:00+07:00")},
			want:   100,
		},
		{
			name: "growth",
			orders: []models.Order{
				datedOrderRow("cur", 150, "2026-10-05T12:00:00+07:00"),
				datedOrderRow("prev", 100, "2026-09-05T12:00:00+07:00"),
			},
			want: 50,
		},
		{
			name: "decline rounds to one decimal",
			orders: []models.Order{
				datedOrderRow("cur", 100, "2026-10-05T12:00:00+07:00"),
				datedOrderRow("prev", 300, "2026-09-05T12:00:00+07:00"),
				datedOrderRow("future", 999, "2026-10-15T13:00:00+07:00"),
				datedOrderRow("ancient", 999, "2026-01-01T00:00:00+07:00"),
				datedOrderRow("garbage", 999, "n/a"),
			},
			want: -66.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthlyGrowth(tt.orders, now, opts))
		})
	}
}

func TestInventoryValueAndAlerts(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "Mũ", Stock: ptr(10), Price: ptr(5.0)},
		{ID: "p2", Name: "Giày", Stock: ptr(20), Price: ptr(3.0)},
	}
	assert.Equal(t, 110.0, InventoryValue(products))

	alerts := InventoryAlerts(products, testOptions())
	require.Len(t, alerts, 1)
	assert.Equal(t, "p1", alerts[0].ProductID)
	assert.Equal(t, 15, alerts[0].Threshold)
}

func TestInventoryAlertsStableByStock(t *testing.T) {
	products := []models.Product{
		{ID: "a", Stock: ptr(15)},
		{ID: "b", Stock: ptr(3), SoldCount: ptr(7)},
		{ID: "c"},
		{ID: "d", Stock: ptr(3)},
		{ID: "e", Stock: ptr(16)},
	}
	alerts := InventoryAlerts(products, testOptions())

	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		ids = append(ids, a.ProductID)
	}
	assert.Equal(t, []string{"c", "b", "d", "a"}, ids)
	require.NotNil(t, alerts[1].SoldCount)
	assert.Equal(t, 7, *alerts[1].SoldCount)
	assert.Nil(t, alerts[3].SoldCount)
	assert.Zero(t, InventoryValue(products))
}

func TestCustomerAggregationByAccountID(t *testing.T) {
	orders := []models.Order{
		{ID: "o1", UserID: ptr("u1"), Total: ptr(100.0)},
		{ID: "o2", CustomerEmail: ptr("a@example.com"), Total: ptr(50.0)},
		{ID: "o3", Total: ptr(30.0)},
		{ID: "o4", UserID: ptr("u1"), Total: ptr(25.5)},
	}
	profiles := []models.Profile{
		{ID: "u1", Name: ptr("An"), Tier: ptr("VIP")},
		{ID: "profile-2", Email: ptr("a@example.com")},
		{ID: "profile-3"},
	}

	totals := AggregateCustomerTotals(orders)
	assert.Len(t, totals, 2)

	customers := MapCustomers(profiles, totals, testOptions())
	require.Len(t, customers, 3)

	assert.Equal(t, "CUSTu1", customers[0].ID)
	assert.Equal(t, 2, customers[0].TotalOrders)
	assert.Equal(t, 125.5, customers[0].TotalSpent)
	assert.Equal(t, "VIP", customers[0].Status)

	assert.Equal(t, "a@example.com", customers[1].Name)
	assert.Zero(t, customers[1].TotalOrders)
	assert.Zero(t, customers[1].TotalSpent)

	assert.Equal(t, "Khách hàng", customers[2].Name)
	assert.Equal(t, "Regular", customers[2].Status)

	overview := ComposeOverview(orders, profiles, nil, testNow(), testOptions())
	assert.Equal(t, 205.5, overview.Stats.TotalRevenue)
	spent := 0.0
	for _, c := range overview.Customers {
		spent += c.TotalSpent
	}
	assert.Less(t, spent, overview.Stats.TotalRevenue)
}

func TestDisplayIDTruncatesCharacters(t *testing.T) {
	opts := testOptions()
	assert.Equal(t, "CUST123456", DisplayID("1234567890", opts))
	assert.Equal(t, "CUSTabc", DisplayID("abc", opts))
	assert.Equal(t, "CUSTñandú1", DisplayID("ñandú12345", opts))
}

func TestDisplayIDCollisionsAreReported(t *testing.T) {
	profiles := []models.Profile{
		{ID: "abcdef-2"},
		{ID: "abcdef-1"},
		{ID: "zzz"},
		{ID: "zzz"},
	}
	collisions := DisplayIDCollisions(profiles, testOptions())
	assert.Equal(t, map[string][]string{"CUSTabcdef": {"abcdef-1", "abcdef-2"}}, collisions)

	customers := MapCustomers(profiles[:2], nil, testOptions())
	assert.Equal(t, customers[0].ID, customers[1].ID, "display ids are labels, not keys")
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	var orders []models.Order
	for day := 1; day <= 12; day++ {
		date := time.Date(2026, 10, day, 9, 0, 0, 0, ict).Format(time.RFC3339)
		orders = append(orders, datedOrderRow(date, 10, date))
	}

	recent := RecentOrders(orders, testOptions())
	require.Len(t, recent, 10)
	assert.Equal(t, "2026-10-12T09:00:00+07:00", recent[0].ID)
	for i := 1; i < len(recent); i++ {
		assert.Greater(t, recent[i-1].Date, recent[i].Date)
	}

	small := RecentOrders([]models.Order{
		datedOrderRow("undated", 1, "garbage"),
		datedOrderRow("old", 1, "2026-10-01T00:00:00+07:00"),
		datedOrderRow("new", 1, "2026-10-10T00:00:00+07:00"),
	}, testOptions())
	assert.Equal(t, []string{"new", "old", "undated"}, orderIDs(small))
}

func TestPendingOrdersOldestInProgress(t *testing.T) {
	statuses := []string{"Chờ xử lý", "Đang chuẩn bị", "Đang giao", "Đã giao", "Đã hủy"}
	var orders []models.Order
	for day := 10; day >= 1; day-- {
		o := datedOrderRow(time.Date(2026, 10, day, 9, 0, 0, 0, ict).Format("2006-01-02"), 10,
			time.Date(2026, 10, day, 9, 0, 0, 0, ict).Format(time.RFC3339))
		o.Status = ptr(statuses[day%len(statuses)])
		orders = append(orders, o)
	}
	orders = append(orders, datedOrderRow("no-status", 10, "2026-09-01T00:00:00+07:00"))

	opts := testOptions()
	pending := PendingOrders(orders, opts)
	require.LessOrEqual(t, len(pending), 5)
	require.NotEmpty(t, pending)
	for i, o := range pending {
		assert.True(t, opts.isProgressStatus(o.Status), "status %q", o.Status)
		if i > 0 {
			assert.Less(t, pending[i-1].Date, o.Date)
		}
	}
	assert.NotContains(t, orderIDs(pending), "no-status")
}

func TestComposeOverviewAverages(t *testing.T) {
	empty := ComposeOverview(nil, nil, nil, testNow(), testOptions())
	assert.Zero(t, empty.Stats.AverageOrderValue)
	assert.Len(t, empty.RevenueTrend, 14)
	assert.NotNil(t, empty.RecentOrders)
	assert.NotNil(t, empty.Customers)
	assert.NotNil(t, empty.InventoryAlerts)

	orders := []models.Order{
		datedOrderRow("a", 100, "2026-10-15T08:00:00+07:00"),
		datedOrderRow("b", 50, "garbage"),
	}
	orders[0].Status = ptr("Đang giao")
	products := []models.Product{{ID: "p", Stock: ptr(2), Price: ptr(10.0)}}
	overview := ComposeOverview(orders, []models.Profile{{ID: "u"}}, products, testNow(), testOptions())

	assert.Equal(t, AdminStats{
		TotalProducts:     1,
		TotalOrders:       2,
		TotalCustomers:    1,
		TotalRevenue:      150,
		MonthlyGrowth:     100,
		PendingOrders:     1,
		LowStockItems:     1,
		WeeklyRevenue:     100,
		InventoryValue:    20,
		AverageOrderValue: 75,
	}, overview.Stats)
}

func orderIDs(orders []AdminOrder) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
