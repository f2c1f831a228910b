package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
	testhelpers "github.com/polkiloo/gopos/internal/test"
)

func TestOrderUseCaseListRecentClampsLimit(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := NewOrderUseCase(repo)

	for _, limit := range []int{0, -3, 50, 501} {
		if _, err := uc.ListRecent(context.Background(), limit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []int{100, 100, 50, 500}
	for i, got := range repo.Limits {
		if got != want[i] {
			t.Fatalf("call %d: expected limit %d, got %d", i, want[i], got)
		}
	}
}

func TestOrderUseCaseGet(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{GetByIDFn: func(_ context.Context, id string) (*model.Order, error) {
		if id != "o-1" {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Order{ID: id, Number: "ORD-0001"}, nil
	}}
	uc := NewOrderUseCase(repo)

	order, err := uc.Get(context.Background(), "o-1")
	if err != nil || order.Number != "ORD-0001" {
		t.Fatalf("unexpected result %+v %v", order, err)
	}
	if _, err := uc.Get(context.Background(), "o-2"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseUpdateStatus(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	uc := NewOrderUseCase(repo)

	order, err := uc.UpdateStatus(context.Background(), "o-1", model.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusCancelled {
		t.Fatalf("unexpected status %s", order.Status)
	}

	if _, err := uc.UpdateStatus(context.Background(), "o-1", "SHIPPED"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if len(repo.UpdateCalls) != 1 {
		t.Fatalf("invalid status must not reach repository, got %d calls", len(repo.UpdateCalls))
	}
}

func TestOrderUseCaseAgainstLedger(t *testing.T) {
	f := newCheckoutFixture(t)
	if _, err := f.uc.Settle(context.Background(), cashSale(1)); err != nil {
		t.Fatalf("settle: %v", err)
	}
	if _, err := f.uc.Settle(context.Background(), cashSale(1)); err != nil {
		t.Fatalf("settle: %v", err)
	}

	uc := NewOrderUseCase(f.ledger)
	orders, err := uc.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 || orders[0].Number != "ORD-0002" {
		t.Fatalf("expected newest first, got %+v", orders)
	}

	detail, err := uc.Get(context.Background(), orders[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Items) != 1 || len(detail.Payments) != 1 {
		t.Fatalf("expected lines and payments, got %+v", detail)
	}

	updated, err := uc.UpdateStatus(context.Background(), detail.ID, model.OrderStatusReturned)
	if err != nil || updated.Status != model.OrderStatusReturned {
		t.Fatalf("update: %+v %v", updated, err)
	}
}
