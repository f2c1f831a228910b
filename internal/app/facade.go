package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/gopos/internal/cart"
	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
	pkgAuth "github.com/polkiloo/gopos/internal/pkg/auth"
	"github.com/polkiloo/gopos/internal/usecase"
)

// PosFacade joins the use cases behind a single API for the HTTP layer.
type PosFacade struct {
	auth      *usecase.AuthUseCase
	catalog   *usecase.CatalogUseCase
	checkout  *usecase.CheckoutUseCase
	orders    *usecase.OrderUseCase
	customers *usecase.CustomerUseCase
	locations *usecase.LocationUseCase
	reports   *usecase.ReportUseCase
	carts     *cart.Registry
	health    repository.HealthChecker
}

type facadeParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Catalog   *usecase.CatalogUseCase
	Checkout  *usecase.CheckoutUseCase
	Orders    *usecase.OrderUseCase
	Customers *usecase.CustomerUseCase
	Locations *usecase.LocationUseCase
	Reports   *usecase.ReportUseCase
	Carts     *cart.Registry
	Health    repository.HealthChecker
}

func newPosFacade(p facadeParams) *PosFacade {
	return &PosFacade{
		auth:      p.Auth,
		catalog:   p.Catalog,
		checkout:  p.Checkout,
		orders:    p.Orders,
		customers: p.Customers,
		locations: p.Locations,
		reports:   p.Reports,
		carts:     p.Carts,
		health:    p.Health,
	}
}

func (f *PosFacade) Login(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *PosFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

// Logout discards the cart of the token's staff member. Invalid tokens are ignored.
func (f *PosFacade) Logout(token string) {
	claims, err := f.auth.ParseToken(token)
	if err != nil {
		return
	}
	f.carts.Drop(claims.UserID)
}

func (f *PosFacade) ResolveSKU(ctx context.Context, sku string) (*model.ResolvedVariant, error) {
	return f.catalog.Resolve(ctx, sku)
}

func (f *PosFacade) GenerateSKU(ctx context.Context) (string, error) {
	return f.catalog.GenerateSKU(ctx)
}

func (f *PosFacade) Cart(staffID string) cart.Snapshot {
	return f.carts.For(staffID).Snapshot()
}

// AddToCart resolves sku and adds the variant to the staff member's cart.
func (f *PosFacade) AddToCart(ctx context.Context, staffID, sku string, quantity int) (cart.Snapshot, error) {
	variant, err := f.catalog.Resolve(ctx, sku)
	if err != nil {
		return cart.Snapshot{}, err
	}
	c := f.carts.For(staffID)
	if err := c.AddItem(*variant, quantity); err != nil {
		return cart.Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (f *PosFacade) UpdateCartItem(staffID, sku string, delta int) (cart.Snapshot, error) {
	c := f.carts.For(staffID)
	if err := c.UpdateQuantity(sku, delta); err != nil {
		return cart.Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (f *PosFacade) RemoveFromCart(staffID, sku string) (cart.Snapshot, error) {
	c := f.carts.For(staffID)
	if err := c.RemoveItem(sku); err != nil {
		return cart.Snapshot{}, err
	}
	return c.Snapshot(), nil
}

func (f *PosFacade) ClearCart(staffID string) {
	f.carts.For(staffID).Clear()
}

// CheckoutCart settles the current cart of req.StaffID. The sold lines leave
// the cart only after the sale commits.
func (f *PosFacade) CheckoutCart(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error) {
	c := f.carts.For(req.StaffID)
	snapshot := c.Snapshot()
	if snapshot.Empty() {
		return nil, domainErrors.NewValidationError("items", "cart is empty")
	}

	req.Items = snapshot.SettleItems()
	result, err := f.checkout.Settle(ctx, req)
	if err != nil {
		return nil, err
	}
	c.Release(snapshot)
	return result, nil
}

func (f *PosFacade) Settle(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error) {
	return f.checkout.Settle(ctx, req)
}

func (f *PosFacade) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.ListRecent(ctx, limit)
}

func (f *PosFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *PosFacade) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *PosFacade) Customers(ctx context.Context, search string) ([]model.Customer, error) {
	return f.customers.List(ctx, search)
}

func (f *PosFacade) Customer(ctx context.Context, id string) (*model.Customer, error) {
	return f.customers.Get(ctx, id)
}

func (f *PosFacade) CreateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	return f.customers.Create(ctx, customer)
}

func (f *PosFacade) UpdateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	return f.customers.Update(ctx, customer)
}

func (f *PosFacade) Locations(ctx context.Context) ([]model.Location, error) {
	return f.locations.List(ctx)
}

func (f *PosFacade) SalesReport(ctx context.Context, period model.ReportPeriod) (*model.SalesReport, error) {
	return f.reports.Sales(ctx, period)
}

func (f *PosFacade) TopProducts(ctx context.Context, period model.ReportPeriod, limit int) ([]model.ProductSales, error) {
	return f.reports.TopProducts(ctx, period, limit)
}

func (f *PosFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
