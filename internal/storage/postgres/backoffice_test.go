package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/gopos/internal/domain/errors"
	"github.com/polkiloo/gopos/internal/domain/model"
)

var customerColumnNames = []string{"id", "name", "email", "phone", "address", "loyalty_points", "created_at"}

func TestCustomerRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Customers()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`FROM customers ORDER BY name, id`).
		WillReturnRows(pgxmockv3.NewRows(customerColumnNames).
			AddRow("c-1", "Ada", "ada@shop.test", "", "", int64(120), now).
			AddRow("c-2", "Bob", "", "555", "Main st", int64(0), now))

	customers, err := repo.List(ctx, "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 2 || customers[0].LoyaltyPoints != 120 || customers[1].Address != "Main st" {
		t.Fatalf("unexpected customers: %+v", customers)
	}

	mock.ExpectQuery(`WHERE name ILIKE \$1 OR email ILIKE \$1 OR phone ILIKE \$1 ORDER BY name`).
		WithArgs("%ada%").
		WillReturnRows(pgxmockv3.NewRows(customerColumnNames).AddRow("c-1", "Ada", "ada@shop.test", "", "", int64(120), now))

	customers, err = repo.List(ctx, " ada ")
	if err != nil || len(customers) != 1 {
		t.Fatalf("expected one match, got %+v err %v", customers, err)
	}

	mock.ExpectQuery(`FROM customers`).WillReturnError(errors.New("boom"))
	if _, err := repo.List(ctx, ""); err == nil {
		t.Fatal("expected query error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCustomerRepositoryWrites(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Customers()
	ctx := context.Background()
	now := time.Now()

	t.Run("create assigns id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers").
			WithArgs(pgxmockv3.AnyArg(), "Ada", "ada@shop.test", "555", "").
			WillReturnRows(pgxmockv3.NewRows(customerColumnNames).AddRow("c-9", "Ada", "ada@shop.test", "555", "", int64(0), now))

		c, err := repo.Create(ctx, model.Customer{Name: "Ada", Email: "ada@shop.test", Phone: "555"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ID != "c-9" || c.LoyaltyPoints != 0 || !c.CreatedAt.Equal(now) {
			t.Fatalf("unexpected customer: %+v", c)
		}
	})

	t.Run("create duplicate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO customers").WillReturnError(&pgconn.PgError{Code: "23505"})
		if _, err := repo.Create(ctx, model.Customer{ID: "c-1", Name: "Ada"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
			t.Fatalf("expected already exists, got %v", err)
		}
	})

	t.Run("update keeps balance", func(t *testing.T) {
		mock.ExpectQuery("UPDATE customers SET name").
			WithArgs("Ada L", "", "", "Main st", "c-1").
			WillReturnRows(pgxmockv3.NewRows(customerColumnNames).AddRow("c-1", "Ada L", "", "", "Main st", int64(120), now))

		c, err := repo.Update(ctx, model.Customer{ID: "c-1", Name: "Ada L", Address: "Main st", LoyaltyPoints: 9999})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.LoyaltyPoints != 120 {
			t.Fatalf("balance must come from the database, got %d", c.LoyaltyPoints)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		mock.ExpectQuery("UPDATE customers SET name").WillReturnError(pgx.ErrNoRows)
		if _, err := repo.Update(ctx, model.Customer{ID: "ghost", Name: "X"}); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		mock.ExpectQuery("FROM customers WHERE id").WithArgs("c-1").
			WillReturnRows(pgxmockv3.NewRows(customerColumnNames).AddRow("c-1", "Ada", "", "", "", int64(42), now))
		c, err := repo.GetByID(ctx, "c-1")
		if err != nil || c.LoyaltyPoints != 42 {
			t.Fatalf("unexpected customer %+v err %v", c, err)
		}

		mock.ExpectQuery("FROM customers WHERE id").WithArgs("ghost").WillReturnError(pgx.ErrNoRows)
		if _, err := repo.GetByID(ctx, "ghost"); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestLocationRepositoryList(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery("FROM store_locations ORDER BY name").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "name", "created_at"}).
			AddRow("loc-1", "Main store", now).
			AddRow("loc-2", "Warehouse", now))

	locations, err := storage.Locations().List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 || locations[1].Name != "Warehouse" {
		t.Fatalf("unexpected locations: %+v", locations)
	}

	mock.ExpectQuery("FROM store_locations").WillReturnError(errors.New("boom"))
	if _, err := storage.Locations().List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestReportRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Reports()
	ctx := context.Background()
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	period := model.ReportPeriod{From: from, To: to}

	t.Run("order totals exclude cancelled", func(t *testing.T) {
		mock.ExpectQuery(`FROM orders o\s+WHERE o.status <> 'CANCELLED' AND o.created_at >= \$1 AND o.created_at < \$2`).
			WithArgs(from, to).
			WillReturnRows(pgxmockv3.NewRows([]string{"count", "revenue", "discount", "shipping", "loyalty"}).
				AddRow(int64(3), "57.50", "2.00", "4.99", "1.50"))

		totals, err := repo.OrderTotals(ctx, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if totals.OrderCount != 3 || totals.Revenue.String() != "57.5" || totals.ShippingTotal.String() != "4.99" {
			t.Fatalf("unexpected totals: %+v", totals)
		}
	})

	t.Run("line sales carry cost", func(t *testing.T) {
		mock.ExpectQuery(`SUM\(li.unit_cost_price \* li.quantity\)`).
			WithArgs(from, to).
			WillReturnRows(pgxmockv3.NewRows([]string{"items", "gross", "cost"}).AddRow(int64(6), "60.00", "24.00"))

		sales, err := repo.LineSales(ctx, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sales.ItemsSold != 6 || sales.GrossSales.String() != "60" || sales.CostOfGoods.String() != "24" {
			t.Fatalf("unexpected line sales: %+v", sales)
		}
	})

	t.Run("daily sales", func(t *testing.T) {
		mock.ExpectQuery(`date_trunc\('day', o.created_at\)`).
			WithArgs(from, to).
			WillReturnRows(pgxmockv3.NewRows([]string{"day", "count", "revenue"}).
				AddRow(from, int64(2), "37.50").
				AddRow(from.AddDate(0, 0, 1), int64(1), "20.00"))

		days, err := repo.DailySales(ctx, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(days) != 2 || days[0].OrderCount != 2 || days[1].Revenue.String() != "20" {
			t.Fatalf("unexpected days: %+v", days)
		}
	})

	t.Run("top products", func(t *testing.T) {
		mock.ExpectQuery(`GROUP BY p.name\s+ORDER BY SUM\(li.quantity\) DESC, p.name\s+LIMIT \$3`).
			WithArgs(from, to, 5).
			WillReturnRows(pgxmockv3.NewRows([]string{"name", "quantity", "revenue"}).
				AddRow("Tee", int64(4), "40.00").
				AddRow("Cap", int64(2), "10.00"))

		top, err := repo.TopProducts(ctx, period, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(top) != 2 || top[0].ProductName != "Tee" || top[0].Quantity != 4 {
			t.Fatalf("unexpected ranking: %+v", top)
		}
	})

	t.Run("errors", func(t *testing.T) {
		mock.ExpectQuery("FROM orders o").WillReturnError(errors.New("boom"))
		if _, err := repo.OrderTotals(ctx, period); err == nil {
			t.Fatal("expected totals error")
		}
		mock.ExpectQuery("FROM order_line_items li").
			WillReturnRows(pgxmockv3.NewRows([]string{"items", "gross", "cost"}).AddRow(int64(1), "bad", "0"))
		if _, err := repo.LineSales(ctx, period); err == nil {
			t.Fatal("expected numeric parse error")
		}
		mock.ExpectQuery("date_trunc").WillReturnError(errors.New("boom"))
		if _, err := repo.DailySales(ctx, period); err == nil {
			t.Fatal("expected daily error")
		}
		mock.ExpectQuery("JOIN products p").WillReturnError(errors.New("boom"))
		if _, err := repo.TopProducts(ctx, period, 5); err == nil {
			t.Fatal("expected top products error")
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
