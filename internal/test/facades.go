package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/gopos/internal/cart"
	"github.com/polkiloo/gopos/internal/domain/model"
	pkgAuth "github.com/polkiloo/gopos/internal/pkg/auth"
)

// PosFacadeStub provides controllable behaviour for every HTTP endpoint.
type PosFacadeStub struct {
	LoginFn          func(context.Context, string, string) (string, error)
	ParseFn          func(string) (pkgAuth.Claims, error)
	LogoutFn         func(string)
	ResolveFn        func(context.Context, string) (*model.ResolvedVariant, error)
	GenerateFn       func(context.Context) (string, error)
	CartFn           func(string) cart.Snapshot
	AddFn            func(context.Context, string, string, int) (cart.Snapshot, error)
	UpdateItemFn     func(string, string, int) (cart.Snapshot, error)
	RemoveFn         func(string, string) (cart.Snapshot, error)
	ClearFn          func(string)
	CheckoutCartFn   func(context.Context, model.SettleRequest) (*model.SettleResult, error)
	SettleFn         func(context.Context, model.SettleRequest) (*model.SettleResult, error)
	RecentFn         func(context.Context, int) ([]model.Order, error)
	OrderFn          func(context.Context, string) (*model.Order, error)
	UpdateStatusFn   func(context.Context, string, model.OrderStatus) (*model.Order, error)
	CustomersFn      func(context.Context, string) ([]model.Customer, error)
	CustomerFn       func(context.Context, string) (*model.Customer, error)
	CreateCustomerFn func(context.Context, model.Customer) (*model.Customer, error)
	UpdateCustomerFn func(context.Context, model.Customer) (*model.Customer, error)
	LocationsFn      func(context.Context) ([]model.Location, error)
	SalesReportFn    func(context.Context, model.ReportPeriod) (*model.SalesReport, error)
	TopProductsFn    func(context.Context, model.ReportPeriod, int) ([]model.ProductSales, error)
	HealthFn         func(context.Context) error
}

// Login returns "token-<email>" unless overridden.
func (s PosFacadeStub) Login(ctx context.Context, email, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "token-" + email, nil
}

// ParseToken accepts any token as staff-1 unless overridden.
func (s PosFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: "staff-1"}, nil
}

// Logout delegates to override when set.
func (s PosFacadeStub) Logout(token string) {
	if s.LogoutFn != nil {
		s.LogoutFn(token)
	}
}

// ResolveSKU returns a ten-unit variant unless overridden.
func (s PosFacadeStub) ResolveSKU(ctx context.Context, sku string) (*model.ResolvedVariant, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, sku)
	}
	return &model.ResolvedVariant{
		VariantID:     "variant-" + sku,
		SKU:           sku,
		ProductName:   "Tee",
		VariantLabel:  "M",
		UnitPrice:     decimal.NewFromInt(10),
		UnitCostPrice: decimal.NewFromInt(4),
		TotalStock:    10,
	}, nil
}

// GenerateSKU returns a fixed SKU unless overridden.
func (s PosFacadeStub) GenerateSKU(ctx context.Context) (string, error) {
	if s.GenerateFn != nil {
		return s.GenerateFn(ctx)
	}
	return "SKU-123456", nil
}

// Cart returns an empty snapshot unless overridden.
func (s PosFacadeStub) Cart(staffID string) cart.Snapshot {
	if s.CartFn != nil {
		return s.CartFn(staffID)
	}
	return cart.Snapshot{}
}

// AddToCart returns a single-line snapshot unless overridden.
func (s PosFacadeStub) AddToCart(ctx context.Context, staffID, sku string, quantity int) (cart.Snapshot, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, staffID, sku, quantity)
	}
	return cart.Snapshot{Lines: []cart.Line{{SKU: sku, UnitPrice: decimal.NewFromInt(10), Quantity: quantity}}}, nil
}

// UpdateCartItem delegates to override or returns an empty snapshot.
func (s PosFacadeStub) UpdateCartItem(staffID, sku string, delta int) (cart.Snapshot, error) {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(staffID, sku, delta)
	}
	return cart.Snapshot{}, nil
}

// RemoveFromCart delegates to override or returns an empty snapshot.
func (s PosFacadeStub) RemoveFromCart(staffID, sku string) (cart.Snapshot, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(staffID, sku)
	}
	return cart.Snapshot{}, nil
}

// ClearCart delegates to override when set.
func (s PosFacadeStub) ClearCart(staffID string) {
	if s.ClearFn != nil {
		s.ClearFn(staffID)
	}
}

// CheckoutCart delegates to override or settles a default order.
func (s PosFacadeStub) CheckoutCart(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error) {
	if s.CheckoutCartFn != nil {
		return s.CheckoutCartFn(ctx, req)
	}
	return DefaultSettleResult(req), nil
}

// Settle delegates to override or settles a default order.
func (s PosFacadeStub) Settle(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, req)
	}
	return DefaultSettleResult(req), nil
}

// RecentOrders returns one order unless overridden.
func (s PosFacadeStub) RecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.RecentFn != nil {
		return s.RecentFn(ctx, limit)
	}
	return []model.Order{{ID: "order-1", Number: "ORD-0001", Status: model.OrderStatusCompleted}}, nil
}

// Order returns an order with the requested id unless overridden.
func (s PosFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Number: "ORD-0001", Status: model.OrderStatusCompleted}, nil
}

// UpdateOrderStatus echoes the new status unless overridden.
func (s PosFacadeStub) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Number: "ORD-0001", Status: status}, nil
}

// Customers returns one customer unless overridden.
func (s PosFacadeStub) Customers(ctx context.Context, search string) ([]model.Customer, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx, search)
	}
	return []model.Customer{{ID: "cust-1", Name: "Ada", LoyaltyPoints: 120}}, nil
}

// Customer returns a customer with the requested id unless overridden.
func (s PosFacadeStub) Customer(ctx context.Context, id string) (*model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, id)
	}
	return &model.Customer{ID: id, Name: "Ada", LoyaltyPoints: 120}, nil
}

// CreateCustomer assigns cust-1 unless overridden.
func (s PosFacadeStub) CreateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if s.CreateCustomerFn != nil {
		return s.CreateCustomerFn(ctx, customer)
	}
	customer.ID = "cust-1"
	return &customer, nil
}

// UpdateCustomer echoes the customer unless overridden.
func (s PosFacadeStub) UpdateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if s.UpdateCustomerFn != nil {
		return s.UpdateCustomerFn(ctx, customer)
	}
	return &customer, nil
}

// Locations returns a single location unless overridden.
func (s PosFacadeStub) Locations(ctx context.Context) ([]model.Location, error) {
	if s.LocationsFn != nil {
		return s.LocationsFn(ctx)
	}
	return []model.Location{{ID: "loc-1", Name: "Main"}}, nil
}

// SalesReport returns an empty report for the period unless overridden.
func (s PosFacadeStub) SalesReport(ctx context.Context, period model.ReportPeriod) (*model.SalesReport, error) {
	if s.SalesReportFn != nil {
		return s.SalesReportFn(ctx, period)
	}
	return &model.SalesReport{Period: period}, nil
}

// TopProducts returns no products unless overridden.
func (s PosFacadeStub) TopProducts(ctx context.Context, period model.ReportPeriod, limit int) ([]model.ProductSales, error) {
	if s.TopProductsFn != nil {
		return s.TopProductsFn(ctx, period, limit)
	}
	return nil, nil
}

// Health reports healthy unless overridden.
func (s PosFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// DefaultSettleResult builds a completed order for req without pricing it.
func DefaultSettleResult(req model.SettleRequest) *model.SettleResult {
	now := time.Unix(0, 0).UTC()
	return &model.SettleResult{
		Order: &model.Order{
			ID:          "order-1",
			Number:      "ORD-0001",
			StaffID:     req.StaffID,
			LocationID:  req.LocationID,
			CustomerID:  req.CustomerID,
			TotalAmount: decimal.NewFromInt(10),
			Status:      model.OrderStatusCompleted,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Change: decimal.Zero,
	}
}
