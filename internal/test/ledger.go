package test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

// StockKey addresses one inventory level.
type StockKey struct {
	VariantID  string
	LocationID string
}

// MemoryLedger is an in-memory unit of work that restores its state when a settlement fails.
type MemoryLedger struct {
	mu sync.Mutex

	Locations map[string]bool
	Stock     map[StockKey]int
	Customers map[string]int64
	Counter   int64
	Orders    []model.Order
	LineItems []model.LineItem
	Payments  []model.Payment
	Events    []model.OutboxEvent

	// FailStep names a SettlementTx method that returns FailErr.
	FailStep string
	FailErr  error
	// Attempts counts WithinSettlement calls.
	Attempts int
	// OnCommit runs after a successful settlement while the ledger is locked.
	OnCommit func()
}

// NewMemoryLedger builds a ledger with one location.
func NewMemoryLedger(locationID string) *MemoryLedger {
	return &MemoryLedger{
		Locations: map[string]bool{locationID: true},
		Stock:     make(map[StockKey]int),
		Customers: make(map[string]int64),
	}
}

type ledgerState struct {
	stock     map[StockKey]int
	customers map[string]int64
	counter   int64
	orders    int
	lineItems int
	payments  int
	events    int
}

func (l *MemoryLedger) snapshot() ledgerState {
	s := ledgerState{
		stock:     make(map[StockKey]int, len(l.Stock)),
		customers: make(map[string]int64, len(l.Customers)),
		counter:   l.Counter,
		orders:    len(l.Orders),
		lineItems: len(l.LineItems),
		payments:  len(l.Payments),
		events:    len(l.Events),
	}
	for k, v := range l.Stock {
		s.stock[k] = v
	}
	for k, v := range l.Customers {
		s.customers[k] = v
	}
	return s
}

func (l *MemoryLedger) restore(s ledgerState) {
	l.Stock = s.stock
	l.Customers = s.customers
	l.Counter = s.counter
	l.Orders = l.Orders[:s.orders]
	l.LineItems = l.LineItems[:s.lineItems]
	l.Payments = l.Payments[:s.payments]
	l.Events = l.Events[:s.events]
}

// WithinSettlement runs fn atomically against the ledger.
func (l *MemoryLedger) WithinSettlement(ctx context.Context, fn func(repository.SettlementTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Attempts++

	state := l.snapshot()
	if err := fn(&memoryTx{l: l}); err != nil {
		l.restore(state)
		return err
	}
	if l.OnCommit != nil {
		l.OnCommit()
	}
	return nil
}

// StockOf returns the current quantity of a variant at a location.
func (l *MemoryLedger) StockOf(variantID, locationID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Stock[StockKey{variantID, locationID}]
}

// GetByID implements repository.OrderRepository.
func (l *MemoryLedger) GetByID(ctx context.Context, id string) (*model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, o := range l.Orders {
		if o.ID == id {
			order := o
			for _, item := range l.LineItems {
				if item.OrderID == id {
					order.Items = append(order.Items, item)
				}
			}
			for _, p := range l.Payments {
				if p.OrderID == id {
					order.Payments = append(order.Payments, p)
				}
			}
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListRecent implements repository.OrderRepository.
func (l *MemoryLedger) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	orders := append([]model.Order(nil), l.Orders...)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Number > orders[j].Number })
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// UpdateStatus implements repository.OrderRepository.
func (l *MemoryLedger) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.Orders {
		if l.Orders[i].ID == id {
			l.Orders[i].Status = status
			l.Orders[i].UpdatedAt = time.Now()
			order := l.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

var errInjected = errors.New("injected failure")

type memoryTx struct {
	l *MemoryLedger
}

func (t *memoryTx) fail(step string) error {
	if t.l.FailStep != step {
		return nil
	}
	if t.l.FailErr != nil {
		return t.l.FailErr
	}
	return errInjected
}

func (t *memoryTx) LocationExists(ctx context.Context, locationID string) (bool, error) {
	if err := t.fail("LocationExists"); err != nil {
		return false, err
	}
	return t.l.Locations[locationID], nil
}

func (t *memoryTx) LockCustomerPoints(ctx context.Context, customerID string) (int64, error) {
	if err := t.fail("LockCustomerPoints"); err != nil {
		return 0, err
	}
	points, ok := t.l.Customers[customerID]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	return points, nil
}

func (t *memoryTx) NextOrderSequence(ctx context.Context) (int64, error) {
	if err := t.fail("NextOrderSequence"); err != nil {
		return 0, err
	}
	t.l.Counter++
	return t.l.Counter, nil
}

func (t *memoryTx) InsertOrder(ctx context.Context, order *model.Order) error {
	if err := t.fail("InsertOrder"); err != nil {
		return err
	}
	for _, o := range t.l.Orders {
		if o.Number == order.Number {
			return domainErrors.ErrAlreadyExists
		}
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	t.l.Orders = append(t.l.Orders, *order)
	return nil
}

func (t *memoryTx) InsertLineItems(ctx context.Context, items []model.LineItem) error {
	if err := t.fail("InsertLineItems"); err != nil {
		return err
	}
	t.l.LineItems = append(t.l.LineItems, items...)
	return nil
}

func (t *memoryTx) InsertPayments(ctx context.Context, payments []model.Payment) error {
	if err := t.fail("InsertPayments"); err != nil {
		return err
	}
	t.l.Payments = append(t.l.Payments, payments...)
	return nil
}

func (t *memoryTx) DecrementStock(ctx context.Context, variantID, locationID string, quantity int) error {
	if err := t.fail("DecrementStock"); err != nil {
		return err
	}
	key := StockKey{variantID, locationID}
	current, ok := t.l.Stock[key]
	if !ok || current < quantity {
		return &domainErrors.InsufficientStockError{VariantID: variantID}
	}
	t.l.Stock[key] = current - quantity
	return nil
}

func (t *memoryTx) SetCustomerPoints(ctx context.Context, customerID string, points int64) error {
	if err := t.fail("SetCustomerPoints"); err != nil {
		return err
	}
	if _, ok := t.l.Customers[customerID]; !ok {
		return domainErrors.ErrNotFound
	}
	t.l.Customers[customerID] = points
	return nil
}

func (t *memoryTx) EnqueueEvent(ctx context.Context, event model.OutboxEvent) error {
	if err := t.fail("EnqueueEvent"); err != nil {
		return err
	}
	event.ID = int64(len(t.l.Events) + 1)
	event.CreatedAt = time.Now()
	t.l.Events = append(t.l.Events, event)
	return nil
}

var (
	_ repository.UnitOfWork      = (*MemoryLedger)(nil)
	_ repository.OrderRepository = (*MemoryLedger)(nil)
)
