package admin

// AdminStats is the numeric headline block of the overview.
type AdminStats struct {
	TotalProducts     int     `json:"totalProducts"`
	TotalOrders       int     `json:"totalOrders"`
	TotalCustomers    int     `json:"totalCustomers"`
	TotalRevenue      float64 `json:"totalRevenue"`
	MonthlyGrowth     float64 `json:"monthlyGrowth"`
	PendingOrders     int     `json:"pendingOrders"`
	LowStockItems     int     `json:"lowStockItems"`
	WeeklyRevenue     float64 `json:"weeklyRevenue"`
	InventoryValue    float64 `json:"inventoryValue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type AdminOrderProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// AdminOrder is the display shape of an order.
type AdminOrder struct {
	ID              string              `json:"id"`
	Customer        string              `json:"customer"`
	Email           string              `json:"email"`
	Total           float64             `json:"total"`
	Status          string              `json:"status"`
	Date            string              `json:"date"`
	Items           int                 `json:"items"`
	PaymentMethod   string              `json:"paymentMethod"`
	ShippingAddress *string             `json:"shippingAddress,omitempty"`
	TrackingNumber  *string             `json:"trackingNumber,omitempty"`
	Note            *string             `json:"note,omitempty"`
	Products        []AdminOrderProduct `json:"products"`
}

// AdminCustomer is the display shape of a customer profile. ID is a display
// label only; see DisplayIDCollisions.
type AdminCustomer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	TotalOrders int     `json:"totalOrders"`
	TotalSpent  float64 `json:"totalSpent"`
	JoinDate    *string `json:"joinDate,omitempty"`
	Status      string  `json:"status"`
}

type SalesTrendPoint struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type InventoryAlert struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
	SoldCount *int   `json:"soldCount,omitempty"`
}

type AdminOverviewResponse struct {
	Stats           AdminStats        `json:"stats"`
	RecentOrders    []AdminOrder      `json:"recentOrders"`
	Customers       []AdminCustomer   `json:"customers"`
	PendingOrders   []AdminOrder      `json:"pendingOrders"`
	RevenueTrend    []SalesTrendPoint `json:"revenueTrend"`
	InventoryAlerts []InventoryAlert  `json:"inventoryAlerts"`
}
