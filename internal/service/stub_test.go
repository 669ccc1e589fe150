package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/simplepos/pos-api/internal/domain"
	"github.com/simplepos/pos-api/internal/pkg/idgen"
	"github.com/simplepos/pos-api/internal/repository"
)

// memState is an in-memory stock ledger. memLedger runs each transaction on
// a copy and only swaps it in when fn succeeds, so failed transactions leave
// no trace.
type memState struct {
	items     map[string]domain.Item
	receipts  map[string]domain.StockReceipt
	sales     map[string]domain.Sale
	lines     []domain.SaleLine
	employees map[string]string
}

func newMemState() *memState {
	return &memState{
		items:     make(map[string]domain.Item),
		receipts:  make(map[string]domain.StockReceipt),
		sales:     make(map[string]domain.Sale),
		employees: map[string]string{"ADM-CASHR1": "Siti Kasir", "ADM-OWNER1": "Pak Owner"},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		items:     make(map[string]domain.Item, len(s.items)),
		receipts:  make(map[string]domain.StockReceipt, len(s.receipts)),
		sales:     make(map[string]domain.Sale, len(s.sales)),
		lines:     append([]domain.SaleLine(nil), s.lines...),
		employees: make(map[string]string, len(s.employees)),
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}

	return c
}

type memLedger struct {
	mu    sync.Mutex
	state *memState
	// failAdjust makes AdjustItemQuantity fail for the given item id.
	failAdjust string
}

var _ LedgerRepository = (*memLedger)(nil)

func newMemLedger() *memLedger {
	return &memLedger{state: newMemState()}
}

func (l *memLedger) InTx(_ context.Context, fn func(tx repository.StockTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	work := l.state.clone()
	if err := fn(&memTx{s: work, failAdjust: l.failAdjust}); err != nil {
		return err
	}
	l.state = work

	return nil
}

func (l *memLedger) seedItem(t *testing.T, id, name string, price, qty string) domain.Item {
	t.Helper()

	item := domain.Item{
		ID:        id,
		Name:      name,
		Unit:      "pcs",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  decimal.RequireFromString(qty),
	}
	l.state.items[id] = item

	return item
}

func (l *memLedger) quantity(t *testing.T, id string) decimal.Decimal {
	t.Helper()

	item, ok := l.state.items[id]
	require.True(t, ok, "item %s not seeded", id)

	return item.Quantity
}

type memTx struct {
	s          *memState
	failAdjust string
}

func (t *memTx) LockItem(_ context.Context, itemID string) (domain.Item, error) {
	item, ok := t.s.items[itemID]
	if !ok {
		return domain.Item{}, fmt.Errorf("t.dao.LockItem -> %w", repository.ErrItemNotFound)
	}

	return item, nil
}

func (t *memTx) AdjustItemQuantity(_ context.Context, itemID string, delta decimal.Decimal) error {
	if itemID == t.failAdjust {
		return fmt.Errorf("connection reset")
	}

	item, ok := t.s.items[itemID]
	if !ok {
		return repository.ErrItemNotFound
	}
	item.Quantity = item.Quantity.Add(delta)
	if item.Quantity.IsNegative() {
		return fmt.Errorf("check constraint chk_items_quantity violated")
	}
	t.s.items[itemID] = item

	return nil
}

func (t *memTx) InsertSale(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	if _, ok := t.s.employees[sale.EmployeeID]; !ok {
		return domain.Sale{}, repository.ErrEmployeeNotFound
	}
	t.s.sales[sale.ID] = sale

	return sale, nil
}

func (t *memTx) EmployeeName(_ context.Context, employeeID string) (string, error) {
	name, ok := t.s.employees[employeeID]
	if !ok {
		return "", fmt.Errorf("t.dao.EmployeeName -> %w", repository.ErrEmployeeNotFound)
	}

	return name, nil
}

func (t *memTx) InsertSaleLine(_ context.Context, line domain.SaleLine) (domain.SaleLine, error) {
	if _, ok := t.s.sales[line.SaleID]; !ok {
		return domain.SaleLine{}, fmt.Errorf("foreign key violation on sale_id")
	}
	t.s.lines = append(t.s.lines, line)

	return line, nil
}

func (t *memTx) InsertStockReceipt(_ context.Context, r domain.StockReceipt) (domain.StockReceipt, error) {
	if _, ok := t.s.employees[r.EmployeeID]; !ok {
		return domain.StockReceipt{}, repository.ErrEmployeeNotFound
	}
	t.s.receipts[r.ID] = r

	return r, nil
}

func (t *memTx) LockStockReceipt(_ context.Context, id string) (domain.StockReceipt, error) {
	r, ok := t.s.receipts[id]
	if !ok {
		return domain.StockReceipt{}, fmt.Errorf("t.dao.LockStockReceipt -> %w", repository.ErrStockReceiptNotFound)
	}

	return r, nil
}

func (t *memTx) DeleteStockReceipt(_ context.Context, id string) error {
	if _, ok := t.s.receipts[id]; !ok {
		return repository.ErrStockReceiptNotFound
	}
	delete(t.s.receipts, id)

	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]domain.StockLevel
}

func (n *recordingNotifier) Publish(levels []domain.StockLevel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.batches = append(n.batches, levels)
}

// memPage applies search, sort by id and pagination the way the DAO does.
func memPage[T any](all []T, q domain.PageQuery, key func(T) string, match func(T, string) bool) domain.Page[T] {
	var filtered []T
	for _, v := range all {
		if q.Search == "" || match(v, strings.ToLower(q.Search)) {
			filtered = append(filtered, v)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return key(filtered[i]) < key(filtered[j]) })

	total := int64(len(filtered))
	start := q.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.NewPage(filtered[start:end], q, total)
}

var testIDs = idgen.NewGenerator(nil)

var cashier = domain.Identity{
	SubjectID: "ADM-CASHR1",
	Username:  "kasir",
	Name:      "Siti Kasir",
	Role:      domain.RoleEmployee,
}

var owner = domain.Identity{
	SubjectID: "ADM-OWNER1",
	Username:  "owner",
	Name:      "Pak Owner",
	Role:      domain.RoleAdmin,
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
