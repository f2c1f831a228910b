package handlers

import (
	"context"

	"github.com/polkiloo/gopos/internal/cart"
	"github.com/polkiloo/gopos/internal/domain/model"
	pkgAuth "github.com/polkiloo/gopos/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
	Logout(token string)
}

// CatalogFacade resolves and mints SKUs.
type CatalogFacade interface {
	ResolveSKU(ctx context.Context, sku string) (*model.ResolvedVariant, error)
	GenerateSKU(ctx context.Context) (string, error)
}

// CartFacade manages the per-staff cart.
type CartFacade interface {
	Cart(staffID string) cart.Snapshot
	AddToCart(ctx context.Context, staffID, sku string, quantity int) (cart.Snapshot, error)
	UpdateCartItem(staffID, sku string, delta int) (cart.Snapshot, error)
	RemoveFromCart(staffID, sku string) (cart.Snapshot, error)
	ClearCart(staffID string)
	CheckoutCart(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error)
}

// CheckoutFacade settles explicit sale requests.
type CheckoutFacade interface {
	Settle(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	RecentOrders(ctx context.Context, limit int) ([]model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}

// CustomerFacade manages the customer directory.
type CustomerFacade interface {
	Customers(ctx context.Context, search string) ([]model.Customer, error)
	Customer(ctx context.Context, id string) (*model.Customer, error)
	CreateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error)
}

// LocationFacade lists stock locations.
type LocationFacade interface {
	Locations(ctx context.Context) ([]model.Location, error)
}

// ReportFacade builds back-office reports.
type ReportFacade interface {
	SalesReport(ctx context.Context, period model.ReportPeriod) (*model.SalesReport, error)
	TopProducts(ctx context.Context, period model.ReportPeriod, limit int) ([]model.ProductSales, error)
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// PosFacade aggregates the full set of operations used across handlers.
type PosFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	CheckoutFacade
	OrderFacade
	CustomerFacade
	LocationFacade
	ReportFacade
	HealthFacade
}
