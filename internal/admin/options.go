package admin

import (
	"time"

	"github.com/angelmondragon/storefront-admin/pkg/config"
)

// Options carries the dashboard constants. Zero fields fall back to DefaultOptions.
type Options struct {
	LowStockThreshold    int
	TrendDays            int
	PendingLimit         int
	RecentLimit          int
	WeeklyWindow         time.Duration
	GrowthWindow         time.Duration
	ProgressStatuses     []string
	PendingStatus        string
	CustomerPlaceholder  string
	DefaultPaymentMethod string
	DefaultTier          string
	CustomerIDPrefix     string
	CustomerIDLength     int
	Location             *time.Location
}

func DefaultOptions() Options {
	return Options{
		LowStockThreshold:    15,
		TrendDays:            14,
		PendingLimit:         5,
		RecentLimit:          10,
		WeeklyWindow:         7 * 24 * time.Hour,
		GrowthWindow:         30 * 24 * time.Hour,
		ProgressStatuses:     []string{"Chờ xử lý", "Đang chuẩn bị", "Đang giao"},
		PendingStatus:        "Chờ xử lý",
		CustomerPlaceholder:  "Khách hàng",
		DefaultPaymentMethod: "cod",
		DefaultTier:          "Regular",
		CustomerIDPrefix:     "CUST",
		CustomerIDLength:     6,
		Location:             time.Local,
	}
}

// OptionsFromConfig maps the admin config section onto Options.
func OptionsFromConfig(cfg config.AdminConfig) (Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Options{}, err
	}
	return Options{
		LowStockThreshold:    cfg.LowStockThreshold,
		TrendDays:            cfg.TrendDays,
		PendingLimit:         cfg.PendingLimit,
		RecentLimit:          cfg.RecentLimit,
		WeeklyWindow:         cfg.WeeklyWindow,
		GrowthWindow:         cfg.GrowthWindow,
		ProgressStatuses:     cfg.ProgressStatuses,
		PendingStatus:        cfg.PendingStatus,
		CustomerPlaceholder:  cfg.CustomerPlaceholder,
		DefaultPaymentMethod: cfg.DefaultPayment,
		DefaultTier:          cfg.DefaultTier,
		CustomerIDPrefix:     cfg.CustomerIDPrefix,
		Location:             loc,
	}.withDefaults(), nil
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LowStockThreshold <= 0 {
		o.LowStockThreshold = d.LowStockThreshold
	}
	if o.TrendDays <= 0 {
		o.TrendDays = d.TrendDays
	}
	if o.PendingLimit <= 0 {
		o.PendingLimit = d.PendingLimit
	}
	if o.RecentLimit <= 0 {
		o.RecentLimit = d.RecentLimit
	}
	if o.WeeklyWindow <= 0 {
		o.WeeklyWindow = d.WeeklyWindow
	}
	if o.GrowthWindow <= 0 {
		o.GrowthWindow = d.GrowthWindow
	}
	if len(o.ProgressStatuses) == 0 {
		o.ProgressStatuses = d.ProgressStatuses
	}
	if o.PendingStatus == "" {
		o.PendingStatus = d.PendingStatus
	}
	if o.CustomerPlaceholder == "" {
		o.CustomerPlaceholder = d.CustomerPlaceholder
	}
	if o.DefaultPaymentMethod == "" {
		o.DefaultPaymentMethod = d.DefaultPaymentMethod
	}
	if o.DefaultTier == "" {
		o.DefaultTier = d.DefaultTier
	}
	if o.CustomerIDPrefix == "" {
		o.CustomerIDPrefix = d.CustomerIDPrefix
	}
	if o.CustomerIDLength <= 0 {
		o.CustomerIDLength = d.CustomerIDLength
	}
	if o.Location == nil {
		o.Location = d.Location
	}
	return o
}

func (o Options) isProgressStatus(status string) bool {
	for _, s := range o.ProgressStatuses {
		if s == status {
			return true
		}
	}
	return false
}
