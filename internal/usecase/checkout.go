package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/gopos/internal/config"
	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

// SettlementObserver receives the outcome of every settle call.
type SettlementObserver interface {
	ObserveSettlement(outcome string, duration time.Duration)
}

// Settlement outcomes reported to SettlementObserver.
const (
	OutcomeCompleted         = "completed"
	OutcomeInvalid           = "invalid"
	OutcomeUnauthenticated   = "unauthenticated"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeStoreFailure      = "store_failure"
)

type nopObserver struct{}

func (nopObserver) ObserveSettlement(string, time.Duration) {}

// CheckoutParams lists checkout dependencies.
type CheckoutParams struct {
	fx.In

	UnitOfWork repository.UnitOfWork
	Users      repository.UserRepository
	Settings   repository.SettingsRepository
	Config     *config.Config
	Logger     *slog.Logger
	Observer   SettlementObserver `optional:"true"`
}

// CheckoutUseCase settles sales against the ledger and inventory.
type CheckoutUseCase struct {
	uow      repository.UnitOfWork
	users    repository.UserRepository
	settings repository.SettingsRepository
	defaults model.LoyaltyRates
	logger   *slog.Logger
	observer SettlementObserver
	newID    func() string
	now      func() time.Time
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(p CheckoutParams) *CheckoutUseCase {
	observer := p.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	return &CheckoutUseCase{
		uow:      p.UnitOfWork,
		users:    p.Users,
		settings: p.Settings,
		defaults: model.LoyaltyRates{EarnRate: p.Config.LoyaltyEarnRate, RedeemValue: p.Config.LoyaltyRedeemValue},
		logger:   p.Logger,
		observer: observer,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Settle validates the request, then writes the order with its lines, payment, stock
// decrements, loyalty balance and settlement event in a single unit of work.
func (u *CheckoutUseCase) Settle(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error) {
	started := u.now()
	result, err := u.settle(ctx, req)
	elapsed := u.now().Sub(started)
	outcome := settlementOutcome(err)
	u.observer.ObserveSettlement(outcome, elapsed)

	if err != nil {
		u.logger.Warn("settlement failed",
			slog.String("staff_id", req.StaffID),
			slog.String("location_id", req.LocationID),
			slog.String("outcome", outcome),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	u.logger.Info("order settled",
		slog.String("order_number", result.Order.Number),
		slog.String("order_id", result.Order.ID),
		slog.String("staff_id", result.Order.StaffID),
		slog.String("status", string(result.Order.Status)),
		slog.String("total", result.Order.TotalAmount.StringFixed(moneyPlaces)),
		slog.Duration("duration", elapsed),
	)
	return result, nil
}

func (u *CheckoutUseCase) settle(ctx context.Context, req model.SettleRequest) (*model.SettleResult, error) {
	status, err := validateSettleRequest(req)
	if err != nil {
		return nil, err
	}

	if req.StaffID == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	if _, err := u.users.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, domainErrors.NewStoreFailure("load staff", err)
	}

	rates, err := u.loyaltyRates(ctx)
	if err != nil {
		return nil, err
	}
	quote := QuoteSale(req, rates)

	order := u.buildOrder(req, status, quote)
	items := u.buildLineItems(order.ID, req.Items)
	payments := u.buildPayments(order.ID, req.Payments, quote.Total)

	err = u.uow.WithinSettlement(ctx, func(tx repository.SettlementTx) error {
		return u.apply(ctx, tx, req, order, items, payments)
	})
	if err != nil {
		return nil, domainErrors.NewStoreFailure("commit", err)
	}

	order.Items = items
	order.Payments = payments
	return &model.SettleResult{Order: order, Change: quote.Change}, nil
}

// apply performs the transactional steps. It may run more than once when the unit of work retries.
func (u *CheckoutUseCase) apply(ctx context.Context, tx repository.SettlementTx, req model.SettleRequest,
	order *model.Order, items []model.LineItem, payments []model.Payment) error {
	ok, err := tx.LocationExists(ctx, req.LocationID)
	if err != nil {
		return domainErrors.NewStoreFailure("check location", err)
	}
	if !ok {
		return domainErrors.NewValidationError("locationId", "unknown location")
	}

	var balance int64
	if req.CustomerID != nil {
		balance, err = tx.LockCustomerPoints(ctx, *req.CustomerID)
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.NewValidationError("customerId", "unknown customer")
		}
		if err != nil {
			return domainErrors.NewStoreFailure("lock customer", err)
		}
	}

	seq, err := tx.NextOrderSequence(ctx)
	if err != nil {
		return domainErrors.NewStoreFailure("next order number", err)
	}
	order.Number = fmt.Sprintf("ORD-%04d", seq)

	if err := tx.InsertOrder(ctx, order); err != nil {
		return domainErrors.NewStoreFailure("insert order", err)
	}
	if err := tx.InsertLineItems(ctx, items); err != nil {
		return domainErrors.NewStoreFailure("insert line items", err)
	}
	if err := tx.InsertPayments(ctx, payments); err != nil {
		return domainErrors.NewStoreFailure("insert payments", err)
	}

	for _, item := range items {
		if err := tx.DecrementStock(ctx, item.VariantID, req.LocationID, item.Quantity); err != nil {
			return domainErrors.NewStoreFailure("decrement stock", err)
		}
	}

	if req.CustomerID != nil {
		next := balance + order.PointsEarned - order.PointsRedeemed
		if next < 0 {
			next = 0
		}
		if err := tx.SetCustomerPoints(ctx, *req.CustomerID, next); err != nil {
			return domainErrors.NewStoreFailure("update loyalty balance", err)
		}
	}

	event, err := u.settledEvent(order, len(items))
	if err != nil {
		return err
	}
	if err := tx.EnqueueEvent(ctx, event); err != nil {
		return domainErrors.NewStoreFailure("enqueue event", err)
	}
	return nil
}

func (u *CheckoutUseCase) loyaltyRates(ctx context.Context) (model.LoyaltyRates, error) {
	rates, err := u.settings.LoyaltyRates(ctx)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return u.defaults, nil
	}
	if err != nil {
		return model.LoyaltyRates{}, domainErrors.NewStoreFailure("load loyalty rates", err)
	}
	return *rates, nil
}

func (u *CheckoutUseCase) buildOrder(req model.SettleRequest, status model.OrderStatus, q model.Quote) *model.Order {
	kind := req.Discount.Kind
	if kind == "" {
		kind = model.DiscountNone
	}
	discountValue := req.Discount.Value
	if kind == model.DiscountNone {
		discountValue = decimal.Zero
	}
	return &model.Order{
		ID:             u.newID(),
		CustomerID:     req.CustomerID,
		StaffID:        req.StaffID,
		LocationID:     req.LocationID,
		Subtotal:       q.Subtotal,
		ShippingFee:    q.ShippingFee,
		DiscountKind:   kind,
		DiscountValue:  discountValue,
		DiscountAmount: q.DiscountAmount,
		LoyaltyValue:   q.LoyaltyValue,
		PointsRedeemed: q.PointsRedeemed,
		PointsEarned:   q.PointsEarned,
		TotalAmount:    q.Total,
		Status:         status,
	}
}

func (u *CheckoutUseCase) buildLineItems(orderID string, in []model.SettleItem) []model.LineItem {
	items := make([]model.LineItem, 0, len(in))
	for _, item := range in {
		items = append(items, model.LineItem{
			ID:            u.newID(),
			OrderID:       orderID,
			VariantID:     item.VariantID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			UnitCostPrice: item.UnitCostPrice,
			Description:   item.Description,
			Status:        model.LineItemStatusSold,
		})
	}
	return items
}

func (u *CheckoutUseCase) buildPayments(orderID string, in []model.PaymentInput, total decimal.Decimal) []model.Payment {
	payments := make([]model.Payment, 0, len(in))
	for _, p := range in {
		payments = append(payments, model.Payment{
			ID:      u.newID(),
			OrderID: orderID,
			Amount:  paymentAmount(p, total),
			Method:  p.Method.Persisted(),
		})
	}
	return payments
}

func (u *CheckoutUseCase) settledEvent(order *model.Order, items int) (model.OutboxEvent, error) {
	payload, err := json.Marshal(model.OrderSettledEvent{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		LocationID:  order.LocationID,
		StaffID:     order.StaffID,
		CustomerID:  order.CustomerID,
		Status:      string(order.Status),
		Total:       order.TotalAmount.StringFixed(moneyPlaces),
		Items:       items,
	})
	if err != nil {
		return model.OutboxEvent{}, fmt.Errorf("encode settlement event: %w", err)
	}
	return model.OutboxEvent{
		EventID: u.newID(),
		Type:    model.EventOrderSettled,
		Key:     order.ID,
		Payload: payload,
	}, nil
}

func settlementOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCompleted
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		return OutcomeUnauthenticated
	case errors.Is(err, domainErrors.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		return OutcomeInsufficientStock
	default:
		return OutcomeStoreFailure
	}
}
