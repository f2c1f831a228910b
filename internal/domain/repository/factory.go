package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Catalog() CatalogRepository
	Settings() SettingsRepository
	Outbox() OutboxRepository
	Customers() CustomerRepository
	Locations() LocationRepository
	Reports() ReportRepository
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
