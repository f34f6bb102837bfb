package dto

// DashboardResponse holds the caller's counters.
type DashboardResponse struct {
	Projects int     `json:"projects"`
	Bids     int     `json:"bids"`
	Earnings float64 `json:"earnings"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
