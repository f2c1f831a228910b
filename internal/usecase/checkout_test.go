package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/gopos/internal/config"
	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	testhelpers "github.com/polkiloo/gopos/internal/test"
)

const (
	staffID    = "staff-1"
	locationID = "loc-1"
	variantID  = "V1"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveSettlement(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

type checkoutFixture struct {
	uc       *CheckoutUseCase
	ledger   *testhelpers.MemoryLedger
	observer *recordingObserver
	logs     *bytes.Buffer
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	ledger := testhelpers.NewMemoryLedger(locationID)
	ledger.Stock[testhelpers.StockKey{VariantID: variantID, LocationID: locationID}] = 5
	ledger.Customers["C1"] = 500

	users := testhelpers.NewUserRepositoryStub(model.User{ID: staffID, Email: "cashier@shop.test"})
	observer := &recordingObserver{}
	logs := &bytes.Buffer{}

	uc := NewCheckoutUseCase(CheckoutParams{
		UnitOfWork: ledger,
		Users:      users,
		Settings:   testhelpers.SettingsRepositoryStub{},
		Config:     &config.Config{LoyaltyEarnRate: dec("1"), LoyaltyRedeemValue: dec("0.01")},
		Logger:     slog.New(slog.NewJSONHandler(logs, nil)),
		Observer:   observer,
	})

	var seq int
	uc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}

	return &checkoutFixture{uc: uc, ledger: ledger, observer: observer, logs: logs}
}

func cashSale(quantity int) model.SettleRequest {
	return model.SettleRequest{
		StaffID:    staffID,
		LocationID: locationID,
		Items: []model.SettleItem{{
			VariantID: variantID, Quantity: quantity, UnitPrice: dec("10.00"), UnitCostPrice: dec("4.00"), Description: "Tee - M",
		}},
		Payments: []model.PaymentInput{{Method: model.PaymentMethodCash, Received: dec("50")}},
	}
}

func TestSettleSimpleSale(t *testing.T) {
	f := newCheckoutFixture(t)

	res, err := f.uc.Settle(context.Background(), cashSale(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := res.Order
	if order.Number != "ORD-0001" || order.Status != model.OrderStatusCompleted {
		t.Fatalf("unexpected order: %s %s", order.Number, order.Status)
	}
	if !order.TotalAmount.Equal(dec("20.00")) || !order.Subtotal.Equal(dec("20.00")) {
		t.Fatalf("unexpected totals: %s / %s", order.Subtotal, order.TotalAmount)
	}
	if !res.Change.Equal(dec("30")) {
		t.Fatalf("expected 30.00 change, got %s", res.Change)
	}
	if got := f.ledger.StockOf(variantID, locationID); got != 3 {
		t.Fatalf("expected stock 3, got %d", got)
	}
	if len(f.ledger.LineItems) != 1 || f.ledger.LineItems[0].Status != model.LineItemStatusSold {
		t.Fatalf("unexpected line items: %+v", f.ledger.LineItems)
	}
	if len(f.ledger.Payments) != 1 || !f.ledger.Payments[0].Amount.Equal(dec("20")) {
		t.Fatalf("expected single payment for the total, got %+v", f.ledger.Payments)
	}
	if order.PointsEarned != 0 {
		t.Fatalf("walk-in sale must not earn points, got %d", order.PointsEarned)
	}
	if len(order.Items) != 1 || len(order.Payments) != 1 {
		t.Fatalf("expected result to carry lines and payments")
	}
	if f.observer.outcomes[0] != OutcomeCompleted {
		t.Fatalf("unexpected outcome %v", f.observer.outcomes)
	}
	if !strings.Contains(f.logs.String(), `"order_number":"ORD-0001"`) {
		t.Fatalf("expected settlement log, got %s", f.logs.String())
	}
}

func TestSettlePercentDiscount(t *testing.T) {
	f := newCheckoutFixture(t)
	req := cashSale(2)
	req.Discount = model.Discount{Kind: model.DiscountPercent, Value: dec("10")}

	res, err := f.uc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Order.DiscountAmount.Equal(dec("2.00")) || !res.Order.TotalAmount.Equal(dec("18.00")) {
		t.Fatalf("unexpected discount %s total %s", res.Order.DiscountAmount, res.Order.TotalAmount)
	}
	if res.Order.DiscountKind != model.DiscountPercent || !res.Order.DiscountValue.Equal(dec("10")) {
		t.Fatalf("discount not recorded on order: %+v", res.Order)
	}
}

func TestSettleLoyaltyRedemption(t *testing.T) {
	f := newCheckoutFixture(t)
	req := cashSale(2)
	req.CustomerID = strPtr("C1")
	req.LoyaltyPointsToRedeem = 200

	res, err := f.uc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Order.LoyaltyValue.Equal(dec("2.00")) || !res.Order.TotalAmount.Equal(dec("18.00")) {
		t.Fatalf("unexpected loyalty %s total %s", res.Order.LoyaltyValue, res.Order.TotalAmount)
	}
	if res.Order.PointsRedeemed != 200 || res.Order.PointsEarned != 18 {
		t.Fatalf("unexpected points redeemed=%d earned=%d", res.Order.PointsRedeemed, res.Order.PointsEarned)
	}
	if got := f.ledger.Customers["C1"]; got != 500+18-200 {
		t.Fatalf("expected balance 318, got %d", got)
	}
}

func TestSettleLoyaltyBalanceNeverNegative(t *testing.T) {
	f := newCheckoutFixture(t)
	f.ledger.Customers["C1"] = 50
	req := cashSale(1)
	req.CustomerID = strPtr("C1")
	req.LoyaltyPointsToRedeem = 1000

	if _, err := f.uc.Settle(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.ledger.Customers["C1"]; got != 0 {
		t.Fatalf("expected clamped balance 0, got %d", got)
	}
}

func TestSettleInsufficientStockRollsBack(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Settle(context.Background(), cashSale(6))
	var stockErr *domainErrors.InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.VariantID != variantID {
		t.Fatalf("expected insufficient stock for %s, got %v", variantID, err)
	}
	if got := f.ledger.StockOf(variantID, locationID); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
	if len(f.ledger.Orders) != 0 || len(f.ledger.LineItems) != 0 || len(f.ledger.Payments) != 0 || len(f.ledger.Events) != 0 {
		t.Fatalf("nothing may persist after failed settlement")
	}
	if f.observer.outcomes[0] != OutcomeInsufficientStock {
		t.Fatalf("unexpected outcome %v", f.observer.outcomes)
	}
}

func TestSettleSecondItemOversoldRollsBackFirst(t *testing.T) {
	f := newCheckoutFixture(t)
	f.ledger.Stock[testhelpers.StockKey{VariantID: "V2", LocationID: locationID}] = 1
	req := cashSale(2)
	req.Items = append(req.Items, model.SettleItem{VariantID: "V2", Quantity: 3, UnitPrice: dec("5")})

	if _, err := f.uc.Settle(context.Background(), req); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if got := f.ledger.StockOf(variantID, locationID); got != 5 {
		t.Fatalf("first item decrement must be rolled back, got %d", got)
	}
}

func TestSettlePendingWithoutPayments(t *testing.T) {
	f := newCheckoutFixture(t)
	req := cashSale(1)
	req.Payments = nil
	req.RequestedStatus = model.OrderStatusPending

	res, err := f.uc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending, got %s", res.Order.Status)
	}
	if len(f.ledger.Payments) != 0 {
		t.Fatalf("expected no payments, got %d", len(f.ledger.Payments))
	}
	if got := f.ledger.StockOf(variantID, locationID); got != 4 {
		t.Fatalf("pending orders still reserve stock, got %d", got)
	}
}

func TestSettleDefaultsToCompletedWithoutPayments(t *testing.T) {
	f := newCheckoutFixture(t)
	req := cashSale(1)
	req.Payments = nil

	res, err := f.uc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Order.Status != model.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", res.Order.Status)
	}
	if len(f.ledger.Payments) != 0 || len(res.Order.Payments) != 0 {
		t.Fatalf("expected no payment rows, got %d", len(f.ledger.Payments))
	}
	if !res.Change.IsZero() {
		t.Fatalf("expected no change, got %s", res.Change)
	}
}

func TestSettleIsNotIdempotent(t *testing.T) {
	f := newCheckoutFixture(t)

	first, err := f.uc.Settle(context.Background(), cashSale(1))
	if err != nil {
		t.Fatalf("first settle: %v", err)
	}
	second, err := f.uc.Settle(context.Background(), cashSale(1))
	if err != nil {
		t.Fatalf("second settle: %v", err)
	}
	if first.Order.Number != "ORD-0001" || second.Order.Number != "ORD-0002" {
		t.Fatalf("expected sequential numbers, got %s and %s", first.Order.Number, second.Order.Number)
	}
	if first.Order.ID == second.Order.ID {
		t.Fatal("expected distinct orders")
	}
}

func TestSettleBankTransferStoredAsMobilePayment(t *testing.T) {
	f := newCheckoutFixture(t)
	req := cashSale(1)
	req.Payments = []model.PaymentInput{{Method: model.PaymentMethodBankTransfer, Amount: dec("10")}}

	res, err := f.uc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ledger.Payments[0].Method != model.PaymentMethodMobilePayment {
		t.Fatalf("expected MOBILE_PAYMENT, got %s", f.ledger.Payments[0].Method)
	}
	if !res.Change.IsZero() {
		t.Fatalf("non-cash tender must not produce change, got %s", res.Change)
	}
}

func TestSettleEnqueuesEvent(t *testing.T) {
	f := newCheckoutFixture(t)
	req := cashSale(2)
	req.CustomerID = strPtr("C1")

	res, err := f.uc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.ledger.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(f.ledger.Events))
	}
	event := f.ledger.Events[0]
	if event.Type != model.EventOrderSettled || event.Key != res.Order.ID {
		t.Fatalf("unexpected event: %+v", event)
	}

	var payload model.OrderSettledEvent
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.OrderNumber != "ORD-0001" || payload.Total != "20.00" || payload.Items != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.CustomerID == nil || *payload.CustomerID != "C1" {
		t.Fatalf("expected customer in payload")
	}
}

func TestSettleValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.SettleRequest)
		field  string
	}{
		{"missing location", func(r *model.SettleRequest) { r.LocationID = "" }, "locationId"},
		{"empty cart", func(r *model.SettleRequest) { r.Items = nil }, "items"},
		{"zero quantity", func(r *model.SettleRequest) { r.Items[0].Quantity = 0 }, "items[0].quantity"},
		{"missing variant", func(r *model.SettleRequest) { r.Items[0].VariantID = " " }, "items[0].variantId"},
		{"negative price", func(r *model.SettleRequest) { r.Items[0].UnitPrice = dec("-1") }, "items[0].unitPrice"},
		{"negative cost", func(r *model.SettleRequest) { r.Items[0].UnitCostPrice = dec("-1") }, "items[0].unitCostPrice"},
		{"two payments", func(r *model.SettleRequest) { r.Payments = append(r.Payments, r.Payments[0]) }, "payments"},
		{"unknown method", func(r *model.SettleRequest) { r.Payments[0].Method = "CHEQUE" }, "payments.method"},
		{"negative payment", func(r *model.SettleRequest) { r.Payments[0].Amount = dec("-5") }, "payments.amount"},
		{"negative received", func(r *model.SettleRequest) { r.Payments[0].Received = dec("-5") }, "payments.received"},
		{"unknown discount", func(r *model.SettleRequest) { r.Discount.Kind = "bogo" }, "discount.kind"},
		{"negative discount", func(r *model.SettleRequest) {
			r.Discount = model.Discount{Kind: model.DiscountFlat, Value: dec("-1")}
		}, "discount.value"},
		{"percent over 100", func(r *model.SettleRequest) {
			r.Discount = model.Discount{Kind: model.DiscountPercent, Value: dec("101")}
		}, "discount.value"},
		{"negative points", func(r *model.SettleRequest) { r.LoyaltyPointsToRedeem = -1 }, "loyaltyPointsToRedeem"},
		{"negative shipping", func(r *model.SettleRequest) { r.ShippingFee = dec("-0.01") }, "shippingFee"},
		{"pending with payment", func(r *model.SettleRequest) { r.RequestedStatus = model.OrderStatusPending }, "payments"},
		{"unsupported status", func(r *model.SettleRequest) { r.RequestedStatus = model.OrderStatusCancelled }, "requestedStatus"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(t)
			req := cashSale(1)
			tc.mutate(&req)

			_, err := f.uc.Settle(context.Background(), req)
			var vErr *domainErrors.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, vErr.Field)
			}
			if f.ledger.Attempts != 0 {
				t.Fatal("validation must reject before the unit of work starts")
			}
		})
	}
}

func TestSettleUnknownLocationOrCustomer(t *testing.T) {
	f := newCheckoutFixture(t)
	req := cashSale(1)
	req.LocationID = "elsewhere"
	if _, err := f.uc.Settle(context.Background(), req); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown location, got %v", err)
	}

	req = cashSale(1)
	req.CustomerID = strPtr("ghost")
	if _, err := f.uc.Settle(context.Background(), req); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for unknown customer, got %v", err)
	}
	if len(f.ledger.Orders) != 0 || f.ledger.Counter != 0 {
		t.Fatal("nothing may persist")
	}
}

func TestSettleUnauthenticated(t *testing.T) {
	f := newCheckoutFixture(t)

	req := cashSale(1)
	req.StaffID = ""
	if _, err := f.uc.Settle(context.Background(), req); !errors.Is(err, domainErrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	req.StaffID = "ghost"
	if _, err := f.uc.Settle(context.Background(), req); !errors.Is(err, domainErrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated for unknown staff, got %v", err)
	}
	if f.ledger.Attempts != 0 {
		t.Fatal("unauthenticated requests must not reach the store")
	}
	if f.observer.outcomes[0] != OutcomeUnauthenticated {
		t.Fatalf("unexpected outcome %v", f.observer.outcomes)
	}
}

func TestSettleStoreFailure(t *testing.T) {
	steps := []struct {
		step string
		op   string
	}{
		{"LocationExists", "check location"},
		{"NextOrderSequence", "next order number"},
		{"InsertOrder", "insert order"},
		{"InsertLineItems", "insert line items"},
		{"InsertPayments", "insert payments"},
		{"DecrementStock", "decrement stock"},
		{"EnqueueEvent", "enqueue event"},
	}

	for _, tc := range steps {
		t.Run(tc.step, func(t *testing.T) {
			f := newCheckoutFixture(t)
			f.ledger.FailStep = tc.step
			f.ledger.FailErr = errors.New("connection reset")

			_, err := f.uc.Settle(context.Background(), cashSale(1))
			var sf *domainErrors.StoreFailureError
			if !errors.As(err, &sf) {
				t.Fatalf("expected store failure, got %v", err)
			}
			if sf.Op != tc.op {
				t.Fatalf("expected op %q, got %q", tc.op, sf.Op)
			}
			if got := f.ledger.StockOf(variantID, locationID); got != 5 {
				t.Fatalf("stock must be untouched, got %d", got)
			}
			if len(f.ledger.Orders) != 0 {
				t.Fatal("order must not persist")
			}
		})
	}
}

func TestSettleStaffLookupFailure(t *testing.T) {
	f := newCheckoutFixture(t)
	f.uc.users = &testhelpers.UserRepositoryStub{Err: errors.New("db down")}

	if _, err := f.uc.Settle(context.Background(), cashSale(1)); !errors.Is(err, domainErrors.ErrStoreFailure) {
		t.Fatalf("expected store failure, got %v", err)
	}
}

func TestSettleUsesStoreLoyaltyRates(t *testing.T) {
	f := newCheckoutFixture(t)
	f.uc.settings = testhelpers.SettingsRepositoryStub{Rates: &model.LoyaltyRates{EarnRate: dec("2"), RedeemValue: dec("0.05")}}
	req := cashSale(2)
	req.CustomerID = strPtr("C1")
	req.LoyaltyPointsToRedeem = 20

	res, err := f.uc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Order.LoyaltyValue.Equal(dec("1")) || res.Order.PointsEarned != 38 {
		t.Fatalf("expected store rates, got value %s earned %d", res.Order.LoyaltyValue, res.Order.PointsEarned)
	}

	f.uc.settings = testhelpers.SettingsRepositoryStub{Err: errors.New("boom")}
	if _, err := f.uc.Settle(context.Background(), req); !errors.Is(err, domainErrors.ErrStoreFailure) {
		t.Fatalf("expected store failure, got %v", err)
	}
}

func TestSettleConcurrentNeverOversells(t *testing.T) {
	f := newCheckoutFixture(t)
	f.uc.newID = uuid.NewString
	f.uc.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, rejected int
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Settle(context.Background(), cashSale(1))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domainErrors.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 5 || rejected != 5 {
		t.Fatalf("expected 5 sales and 5 rejections, got %d and %d", ok, rejected)
	}
	if got := f.ledger.StockOf(variantID, locationID); got != 0 {
		t.Fatalf("expected stock 0, got %d", got)
	}
	numbers := map[string]bool{}
	for _, o := range f.ledger.Orders {
		if numbers[o.Number] {
			t.Fatalf("duplicate order number %s", o.Number)
		}
		numbers[o.Number] = true
	}
}
