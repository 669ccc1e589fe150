package dao_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/simplepos/pos-api/internal/db"
	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/pkg/idgen"
	"github.com/simplepos/pos-api/internal/repository"
	"github.com/simplepos/pos-api/internal/repository/dao"
	"github.com/simplepos/pos-api/internal/service"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("dockertest.NewPool: %s, skipping postgres tests", err)
		os.Exit(m.Run())
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("docker unavailable: %s, skipping postgres tests", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=pos",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=pos_test",
			"listen_addresses = '*'",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %s", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://pos:secret@%s/pos_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 90 * time.Second
	if err = pool.Retry(func() error {
		var openErr error
		testDB, openErr = db.OpenPostgresWithURL(dsn)
		return openErr
	}); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not connect to postgres: %s", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres: %s", err)
	}

	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres not available")
	}

	require.NoError(t, testDB.Exec("TRUNCATE sale_lines, sales, stock_receipts, items, categories, employees CASCADE").Error)

	return testDB
}

type fixture struct {
	employee dao.Employee
	category dao.Category
}

func seed(t *testing.T, gdb *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()

	e, err := dao.NewEmployeeDAO(gdb).Insert(ctx, dao.Employee{
		ID:       "ADM-TESTER1",
		Name:     "Test Cashier",
		Username: "tester",
		Password: "hash",
		Role:     "employee",
	})
	require.NoError(t, err)

	c, err := dao.NewCategoryDAO(gdb).Insert(ctx, dao.Category{ID: "CAT-0001", Name: "Drinks"})
	require.NoError(t, err)

	return fixture{employee: e, category: c}
}

func insertItem(t *testing.T, gdb *gorm.DB, f fixture, id, name string, qty int64) dao.Item {
	t.Helper()

	code := "C-" + id
	item, err := dao.NewItemDAO(gdb).Insert(context.Background(), dao.Item{
		ID:         id,
		Code:       &code,
		Name:       name,
		CategoryID: f.category.ID,
		UnitPrice:  decimal.RequireFromString("2.50"),
		Unit:       "pcs",
		Quantity:   decimal.NewFromInt(qty),
	})
	require.NoError(t, err)

	return item
}

var errOutOfStock = errors.New("out of stock")

func sellOne(ctx context.Context, ledger *dao.LedgerDAO, saleID, employeeID, itemID string) error {
	return ledger.Transaction(ctx, func(tx *dao.LedgerDAO) error {
		item, err := tx.LockItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.Quantity.LessThan(decimal.NewFromInt(1)) {
			return errOutOfStock
		}
		if err = tx.AdjustItemQuantity(ctx, itemID, decimal.NewFromInt(-1)); err != nil {
			return err
		}
		if _, err = tx.InsertSale(ctx, dao.Sale{
			ID:           saleID,
			CashTendered: decimal.RequireFromString("2.50"),
			EmployeeID:   employeeID,
		}); err != nil {
			return err
		}
		_, err = tx.InsertSaleLine(ctx, dao.SaleLine{
			ID:        "L" + saleID[len(saleID)-8:],
			SaleID:    saleID,
			ItemID:    itemID,
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: item.UnitPrice,
		})
		return err
	})
}

func TestLedger_ConcurrentSalesNeverOversell(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	insertItem(t, gdb, f, "ITM-0001", "Cola", 5)

	ledger := dao.NewLedgerDAO(gdb)
	ctx := context.Background()

	const buyers = 12
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		outOfStock int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := sellOne(ctx, ledger, fmt.Sprintf("SALE-%08d", n), f.employee.ID, "ITM-0001")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, errOutOfStock):
				outOfStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, buyers-5, outOfStock)

	item, err := dao.NewItemDAO(gdb).FindByID(ctx, "ITM-0001")
	require.NoError(t, err)
	assert.True(t, item.Quantity.IsZero(), "quantity = %s", item.Quantity)

	var lines int64
	require.NoError(t, gdb.Table("sale_lines").Count(&lines).Error)
	assert.EqualValues(t, 5, lines)
}

func TestLedger_FailedTransactionRollsBack(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	insertItem(t, gdb, f, "ITM-0001", "Cola", 3)

	ledger := dao.NewLedgerDAO(gdb)
	ctx := context.Background()

	err := ledger.Transaction(ctx, func(tx *dao.LedgerDAO) error {
		if err := tx.AdjustItemQuantity(ctx, "ITM-0001", decimal.NewFromInt(-2)); err != nil {
			return err
		}
		_, err := tx.LockItem(ctx, "ITM-MISSING")
		return err
	})
	assert.ErrorIs(t, err, dao.ErrItemNotFound)

	item, err := dao.NewItemDAO(gdb).FindByID(ctx, "ITM-0001")
	require.NoError(t, err)
	assert.Equal(t, "3", item.Quantity.String())
}

func TestLedger_QuantityCheckConstraint(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	insertItem(t, gdb, f, "ITM-0001", "Cola", 1)

	err := dao.NewLedgerDAO(gdb).AdjustItemQuantity(context.Background(), "ITM-0001", decimal.NewFromInt(-2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chk_items_quantity")

	err = dao.NewLedgerDAO(gdb).AdjustItemQuantity(context.Background(), "ITM-MISSING", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, dao.ErrItemNotFound)
}

func TestLedger_StockReceiptLifecycle(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	insertItem(t, gdb, f, "ITM-0001", "Cola", 0)

	ledger := dao.NewLedgerDAO(gdb)
	ctx := context.Background()

	_, err := ledger.InsertStockReceipt(ctx, dao.StockReceipt{
		ID:         "RCPT-0001",
		ItemID:     "ITM-0001",
		EmployeeID: "ADM-NOBODY1",
		Quantity:   decimal.NewFromInt(4),
	})
	assert.ErrorIs(t, err, dao.ErrEmployeeNotFound)

	r, err := ledger.InsertStockReceipt(ctx, dao.StockReceipt{
		ID:         "RCPT-0001",
		ItemID:     "ITM-0001",
		EmployeeID: f.employee.ID,
		Quantity:   decimal.RequireFromString("4.5"),
	})
	require.NoError(t, err)

	err = ledger.Transaction(ctx, func(tx *dao.LedgerDAO) error {
		locked, err := tx.LockStockReceipt(ctx, r.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "4.5", locked.Quantity.String())
		return tx.DeleteStockReceipt(ctx, r.ID)
	})
	require.NoError(t, err)

	_, err = ledger.LockStockReceipt(ctx, r.ID)
	assert.ErrorIs(t, err, dao.ErrStockReceiptNotFound)
	assert.ErrorIs(t, ledger.DeleteStockReceipt(ctx, r.ID), dao.ErrStockReceiptNotFound)
}

func TestCatalog_ConstraintMapping(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	ctx := context.Background()
	items := dao.NewItemDAO(gdb)
	categories := dao.NewCategoryDAO(gdb)
	employees := dao.NewEmployeeDAO(gdb)

	_, err := categories.Insert(ctx, dao.Category{ID: "CAT-0002", Name: "Drinks"})
	assert.ErrorIs(t, err, dao.ErrCategoryNameExists)

	_, err = employees.Insert(ctx, dao.Employee{ID: "ADM-OTHER01", Name: "x", Username: "tester", Password: "h", Role: "employee"})
	assert.ErrorIs(t, err, dao.ErrUsernameExists)

	item := insertItem(t, gdb, f, "ITM-0001", "Cola", 2)

	dup := *item.Code
	_, err = items.Insert(ctx, dao.Item{
		ID: "ITM-0002", Code: &dup, Name: "Other", CategoryID: f.category.ID,
		UnitPrice: decimal.NewFromInt(1), Unit: "pcs",
	})
	assert.ErrorIs(t, err, dao.ErrItemCodeExists)

	_, err = items.Insert(ctx, dao.Item{
		ID: "ITM-0003", Name: "Orphan", CategoryID: "CAT-MISSING",
		UnitPrice: decimal.NewFromInt(1), Unit: "pcs",
	})
	assert.ErrorIs(t, err, dao.ErrCategoryNotFound)

	assert.ErrorIs(t, categories.Delete(ctx, f.category.ID), dao.ErrCategoryInUse)

	require.NoError(t, sellOne(ctx, dao.NewLedgerDAO(gdb), "SALE-00000001", f.employee.ID, item.ID))
	assert.ErrorIs(t, items.Delete(ctx, item.ID), dao.ErrItemInUse)
	assert.ErrorIs(t, employees.Delete(ctx, f.employee.ID), dao.ErrEmployeeInUse)

	assert.ErrorIs(t, items.Delete(ctx, "ITM-MISSING"), dao.ErrItemNotFound)
	assert.ErrorIs(t, categories.Delete(ctx, "CAT-MISSING"), dao.ErrCategoryNotFound)
}

func TestItemList_SearchEscapesWildcards(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	insertItem(t, gdb, f, "ITM-0001", "50% off soda", 1)
	insertItem(t, gdb, f, "ITM-0002", "500 ml water", 1)
	insertItem(t, gdb, f, "ITM-0003", "snack_bar", 1)
	insertItem(t, gdb, f, "ITM-0004", "snackbar", 1)

	items := dao.NewItemDAO(gdb)
	ctx := context.Background()

	got, total, err := items.List(ctx, dao.ListQuery{Search: "0%", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "ITM-0001", got[0].ID)

	got, total, err = items.List(ctx, dao.ListQuery{Search: "k_b", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "ITM-0003", got[0].ID)

	got, total, err = items.List(ctx, dao.ListQuery{Search: "DRINKS", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, got, 4)
	assert.Equal(t, "Drinks", got[0].Category.Name)

	got, total, err = items.List(ctx, dao.ListQuery{Limit: 3, Offset: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, got, 1)
}

func TestReports(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	insertItem(t, gdb, f, "ITM-0001", "Cola", 10)
	insertItem(t, gdb, f, "ITM-0002", "Chips", 10)

	ctx := context.Background()
	ledger := dao.NewLedgerDAO(gdb)
	reports := dao.NewReportDAO(gdb)

	_, err := ledger.InsertStockReceipt(ctx, dao.StockReceipt{
		ID: "RCPT-0001", ItemID: "ITM-0002", EmployeeID: f.employee.ID, Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	require.NoError(t, sellOne(ctx, ledger, "SALE-00000001", f.employee.ID, "ITM-0001"))
	require.NoError(t, sellOne(ctx, ledger, "SALE-00000002", f.employee.ID, "ITM-0001"))
	require.NoError(t, sellOne(ctx, ledger, "SALE-00000003", f.employee.ID, "ITM-0002"))

	inbound, total, err := reports.ListInbound(ctx, dao.ListQuery{Search: "chip", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, inbound, 1)
	assert.Equal(t, "C-ITM-0002", inbound[0].ItemCode)
	assert.Equal(t, "Test Cashier", inbound[0].EmployeeName)

	outbound, total, err := reports.ListOutbound(ctx, dao.ListQuery{Search: "cola", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, outbound, 2)

	sales, lines, total, err := reports.ListSales(ctx, dao.ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, sales, 2)
	assert.Len(t, lines, 2)
	for _, l := range lines {
		assert.Contains(t, []string{sales[0].SaleID, sales[1].SaleID}, l.SaleID)
	}

	sales, lines, total, err = reports.ListSales(ctx, dao.ListQuery{Search: "nobody", Limit: 2})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, sales)
	assert.Empty(t, lines)

	count, revenue, top, err := reports.SalesOverview(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Equal(t, "7.5", revenue.String())
	require.Len(t, top, 1)
	assert.Equal(t, "ITM-0001", top[0].ItemID)
	assert.Equal(t, "2", top[0].Quantity.String())
	assert.Equal(t, "5", top[0].Revenue.String())
}

func TestCheckout_ReceiptMatchesStoredLedger(t *testing.T) {
	gdb := requireDB(t)
	f := seed(t, gdb)
	insertItem(t, gdb, f, "ITM-0001", "Beras", 10)
	insertItem(t, gdb, f, "ITM-0002", "Gula", 10)

	ctx := context.Background()
	svc := service.NewSaleService(repository.NewLedgerRepository(dao.NewLedgerDAO(gdb)), idgen.NewGenerator(nil), nil)
	who := domain.Identity{SubjectID: f.employee.ID, Name: "Name From Token", Role: domain.RoleEmployee}

	receipt, err := svc.Checkout(ctx, who, domain.Checkout{
		Lines: []domain.CartLine{
			{ItemID: "ITM-0002", Quantity: decimal.RequireFromString("0.5")},
			{ItemID: "ITM-0001", Quantity: decimal.RequireFromString("1.5")},
			{ItemID: "ITM-0001", Quantity: decimal.RequireFromString("0.125")},
		},
		CashTendered: decimal.RequireFromString("10"),
	})
	require.NoError(t, err)

	var stored decimal.Decimal
	require.NoError(t, gdb.Table("sale_lines").
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Where("sale_id = ?", receipt.SaleID).
		Row().Scan(&stored))
	assert.True(t, stored.Equal(receipt.Total), "stored %s, receipt %s", stored, receipt.Total)
	assert.Equal(t, "5.3125", receipt.Total.String())
	assert.Equal(t, "4.6875", receipt.Change.String())
	assert.Equal(t, "Test Cashier", receipt.EmployeeName)

	items := dao.NewItemDAO(gdb)
	beras, err := items.FindByID(ctx, "ITM-0001")
	require.NoError(t, err)
	assert.Equal(t, "8.375", beras.Quantity.String())
	gula, err := items.FindByID(ctx, "ITM-0002")
	require.NoError(t, err)
	assert.Equal(t, "9.5", gula.Quantity.String())

	_, lines, _, err := dao.NewReportDAO(gdb).ListSales(ctx, dao.ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "ITM-0002", lines[0].ItemID)
	assert.Equal(t, "1.5", lines[1].Quantity.String())
	assert.Equal(t, "0.125", lines[2].Quantity.String())

	_, err = svc.Checkout(ctx, who, domain.Checkout{
		Lines:        []domain.CartLine{{ItemID: "ITM-0001", Quantity: decimal.RequireFromString("0.0004")}},
		CashTendered: decimal.RequireFromString("10"),
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	var count int64
	require.NoError(t, gdb.Table("sales").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
