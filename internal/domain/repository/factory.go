package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Projects() ProjectRepository
	Bids() BidRepository
	Payments() PaymentRepository
	Dashboard() DashboardRepository
}
