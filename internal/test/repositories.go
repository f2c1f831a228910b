package test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
	}
	for _, u := range users {
		if _, err := s.Create(context.Background(), u); err != nil {
			panic(err)
		}
	}
	return s
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	user.Email = strings.ToLower(user.Email)
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	stored := user
	s.Users[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	ListRecentFn   func(context.Context, int) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)

	Limits      []int
	UpdateCalls []OrderUpdateCall
}

// OrderUpdateCall records a status change request.
type OrderUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
}

// GetByID delegates to override or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListRecent records requested limit.
func (s *OrderRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	s.Limits = append(s.Limits, limit)
	if s.ListRecentFn != nil {
		return s.ListRecentFn(ctx, limit)
	}
	return nil, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: id, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

// CatalogRepositoryStub serves variants from a map keyed by SKU.
type CatalogRepositoryStub struct {
	Variants  map[string]model.ResolvedVariant
	Taken     map[string]bool
	ExistsErr error
	Checked   []string
}

// ResolveSKU returns the configured variant or not found.
func (s *CatalogRepositoryStub) ResolveSKU(ctx context.Context, sku string) (*model.ResolvedVariant, error) {
	v, ok := s.Variants[sku]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &v, nil
}

// SKUExists reports whether sku is taken or registered as a variant.
func (s *CatalogRepositoryStub) SKUExists(ctx context.Context, sku string) (bool, error) {
	s.Checked = append(s.Checked, sku)
	if s.ExistsErr != nil {
		return false, s.ExistsErr
	}
	if _, ok := s.Variants[sku]; ok {
		return true, nil
	}
	return s.Taken[sku], nil
}

// SettingsRepositoryStub returns fixed loyalty rates.
type SettingsRepositoryStub struct {
	Rates *model.LoyaltyRates
	Err   error
}

// LoyaltyRates returns configured rates, Err, or not found.
func (s SettingsRepositoryStub) LoyaltyRates(ctx context.Context) (*model.LoyaltyRates, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Rates == nil {
		return nil, domainErrors.ErrNotFound
	}
	rates := *s.Rates
	return &rates, nil
}

// OutboxRepositoryStub hands out queued events and records acknowledgements.
type OutboxRepositoryStub struct {
	mu      sync.Mutex
	Pending []model.OutboxEvent
	ClaimFn func(context.Context, int) ([]model.OutboxEvent, error)
	Sent    []int64
	Failed  []int64
}

// ClaimPending returns up to limit queued events and removes them from the queue.
func (s *OutboxRepositoryStub) ClaimPending(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.Pending) {
		limit = len(s.Pending)
	}
	batch := append([]model.OutboxEvent(nil), s.Pending[:limit]...)
	s.Pending = s.Pending[limit:]
	return batch, nil
}

// MarkSent records delivered event.
func (s *OutboxRepositoryStub) MarkSent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, id)
	return nil
}

// MarkFailed records failed event.
func (s *OutboxRepositoryStub) MarkFailed(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed = append(s.Failed, id)
	return nil
}

// SentIDs returns a copy of delivered event ids.
func (s *OutboxRepositoryStub) SentIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Sent...)
}

// FailedIDs returns a copy of failed event ids.
func (s *OutboxRepositoryStub) FailedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Failed...)
}

// CustomerRepositoryStub keeps customers in memory.
type CustomerRepositoryStub struct {
	ByID     map[string]model.Customer
	Err      error
	Searches []string
	nextID   int
}

// NewCustomerRepositoryStub seeds the stub with customers.
func NewCustomerRepositoryStub(customers ...model.Customer) *CustomerRepositoryStub {
	s := &CustomerRepositoryStub{ByID: make(map[string]model.Customer)}
	for _, c := range customers {
		s.ByID[c.ID] = c
	}
	return s
}

// List returns customers whose name contains search, ordered by name.
func (s *CustomerRepositoryStub) List(ctx context.Context, search string) ([]model.Customer, error) {
	s.Searches = append(s.Searches, search)
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Customer
	for _, c := range s.ByID {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// GetByID returns the stored customer or not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &c, nil
}

// Create stores the customer under a sequential id.
func (s *CustomerRepositoryStub) Create(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.nextID++
	customer.ID = fmt.Sprintf("cust-%d", s.nextID)
	s.ByID[customer.ID] = customer
	return &customer, nil
}

// Update replaces contact details and keeps the stored balance.
func (s *CustomerRepositoryStub) Update(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored, ok := s.ByID[customer.ID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	customer.LoyaltyPoints = stored.LoyaltyPoints
	customer.CreatedAt = stored.CreatedAt
	s.ByID[customer.ID] = customer
	return &customer, nil
}

// LocationRepositoryStub returns a fixed list of locations.
type LocationRepositoryStub struct {
	Locations []model.Location
	Err       error
}

// List returns the configured locations.
func (s LocationRepositoryStub) List(ctx context.Context) ([]model.Location, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Location(nil), s.Locations...), nil
}

// ReportRepositoryStub returns canned aggregates and records requested periods.
type ReportRepositoryStub struct {
	Totals  model.OrderTotals
	Lines   model.LineSales
	Days    []model.DailySales
	Top     []model.ProductSales
	Err     error
	Periods []model.ReportPeriod
	Limits  []int
}

// OrderTotals returns Totals.
func (s *ReportRepositoryStub) OrderTotals(ctx context.Context, period model.ReportPeriod) (*model.OrderTotals, error) {
	s.Periods = append(s.Periods, period)
	if s.Err != nil {
		return nil, s.Err
	}
	totals := s.Totals
	return &totals, nil
}

// LineSales returns Lines.
func (s *ReportRepositoryStub) LineSales(ctx context.Context, period model.ReportPeriod) (*model.LineSales, error) {
	s.Periods = append(s.Periods, period)
	if s.Err != nil {
		return nil, s.Err
	}
	lines := s.Lines
	return &lines, nil
}

// DailySales returns Days.
func (s *ReportRepositoryStub) DailySales(ctx context.Context, period model.ReportPeriod) ([]model.DailySales, error) {
	s.Periods = append(s.Periods, period)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Days, nil
}

// TopProducts returns at most limit entries of Top.
func (s *ReportRepositoryStub) TopProducts(ctx context.Context, period model.ReportPeriod, limit int) ([]model.ProductSales, error) {
	s.Periods = append(s.Periods, period)
	s.Limits = append(s.Limits, limit)
	if s.Err != nil {
		return nil, s.Err
	}
	if limit < len(s.Top) {
		return s.Top[:limit], nil
	}
	return s.Top, nil
}

var (
	_ repository.UserRepository     = (*UserRepositoryStub)(nil)
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.CatalogRepository  = (*CatalogRepositoryStub)(nil)
	_ repository.SettingsRepository = SettingsRepositoryStub{}
	_ repository.OutboxRepository   = (*OutboxRepositoryStub)(nil)
	_ repository.CustomerRepository = (*CustomerRepositoryStub)(nil)
	_ repository.LocationRepository = LocationRepositoryStub{}
	_ repository.ReportRepository   = (*ReportRepositoryStub)(nil)
)
