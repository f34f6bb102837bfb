package model

// DashboardSummary aggregates per-role counters for the caller.
type DashboardSummary struct {
	Projects int
	Bids     int
	Earnings float64
}
