package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/simplepos/pos-api/internal/domain"
)

type posFeature struct {
	ledger  *memLedger
	sales   *SaleService
	stock   *StockService
	who     domain.Identity
	receipt domain.Receipt
	inbound domain.InboundResult
	err     error
}

func (f *posFeature) reset() {
	f.ledger = newMemLedger()
	f.sales = NewSaleService(f.ledger, testIDs, nil)
	f.stock = NewStockService(f.ledger, testIDs, nil)
	f.who = domain.Identity{}
	f.receipt = domain.Receipt{}
	f.inbound = domain.InboundResult{}
	f.err = nil
}

func itemID(name string) string {
	return "ITM-" + name
}

func (f *posFeature) signedIn(name string) error {
	f.who = domain.Identity{SubjectID: "ADM-CASHR1", Name: name, Role: domain.RoleEmployee}
	return nil
}

func (f *posFeature) itemWithStock(name string, price, qty int) error {
	f.ledger.state.items[itemID(name)] = domain.Item{
		ID:        itemID(name),
		Name:      name,
		Unit:      "pcs",
		UnitPrice: decimal.NewFromInt(int64(price)),
		Quantity:  decimal.NewFromInt(int64(qty)),
	}
	return nil
}

func (f *posFeature) sells(qty int, name string, cash int) error {
	f.receipt, f.err = f.sales.Checkout(context.Background(), f.who, domain.Checkout{
		Lines:        []domain.CartLine{{ItemID: itemID(name), Quantity: decimal.NewFromInt(int64(qty))}},
		CashTendered: decimal.NewFromInt(int64(cash)),
	})
	return nil
}

func (f *posFeature) sellsCart(table *godog.Table) error {
	var lines []domain.CartLine
	for _, row := range table.Rows[1:] {
		qty, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			return err
		}
		lines = append(lines, domain.CartLine{ItemID: itemID(row.Cells[0].Value), Quantity: qty})
	}

	f.receipt, f.err = f.sales.Checkout(context.Background(), f.who, domain.Checkout{
		Lines:        lines,
		CashTendered: decimal.NewFromInt(1_000_000),
	})
	return nil
}

func (f *posFeature) received(qty int, name string) error {
	f.inbound, f.err = f.stock.AddInbound(context.Background(), f.who, itemID(name), decimal.NewFromInt(int64(qty)))
	return f.err
}

func (f *posFeature) lastReceiptReversed() error {
	if f.inbound.Receipt == nil {
		return errors.New("no receipt was recorded")
	}
	_, f.err = f.stock.ReverseInbound(context.Background(), f.inbound.Receipt.ID)
	return nil
}

func (f *posFeature) saleSucceeds() error {
	return f.err
}

func (f *posFeature) failsWithInsufficientStock() error {
	if !errors.Is(f.err, ErrInsufficientStock) {
		return fmt.Errorf("expected insufficient stock, got %v", f.err)
	}
	return nil
}

func (f *posFeature) failsWithItemNotFound() error {
	if !errors.Is(f.err, ErrItemNotFound) {
		return fmt.Errorf("expected item not found, got %v", f.err)
	}
	return nil
}

func (f *posFeature) hasStock(name string, qty int) error {
	item, ok := f.ledger.state.items[itemID(name)]
	if !ok {
		return fmt.Errorf("unknown item %s", name)
	}
	if !item.Quantity.Equal(decimal.NewFromInt(int64(qty))) {
		return fmt.Errorf("item %s has %s in stock, expected %d", name, item.Quantity, qty)
	}
	return nil
}

func (f *posFeature) receiptTotal(total int) error {
	if !f.receipt.Total.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("receipt total is %s, expected %d", f.receipt.Total, total)
	}
	return nil
}

func (f *posFeature) totalIsSumOfLines() error {
	sum := decimal.Zero
	for _, l := range f.receipt.Lines {
		sum = sum.Add(l.Subtotal)
	}
	if !sum.Equal(f.receipt.Total) {
		return fmt.Errorf("line subtotals sum to %s, total is %s", sum, f.receipt.Total)
	}
	return nil
}

func (f *posFeature) noSaleRecorded() error {
	if n := len(f.ledger.state.sales); n != 0 {
		return fmt.Errorf("expected no sales, found %d", n)
	}
	if n := len(f.ledger.state.lines); n != 0 {
		return fmt.Errorf("expected no sale lines, found %d", n)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &posFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		f.reset()
		return ctx, nil
	})

	ctx.Step(`^the cashier "([^"]*)" is signed in$`, f.signedIn)
	ctx.Step(`^item "([^"]*)" priced (\d+) with (\d+) in stock$`, f.itemWithStock)
	ctx.Step(`^the cashier sells (\d+) of "([^"]*)" paying (\d+)$`, f.sells)
	ctx.Step(`^the cashier sells the cart:$`, f.sellsCart)
	ctx.Step(`^(\d+) units of "([^"]*)" are received$`, f.received)
	ctx.Step(`^the last receipt is reversed$`, f.lastReceiptReversed)
	ctx.Step(`^the sale succeeds$`, f.saleSucceeds)
	ctx.Step(`^the (?:sale|reversal) fails with insufficient stock$`, f.failsWithInsufficientStock)
	ctx.Step(`^the sale fails with item not found$`, f.failsWithItemNotFound)
	ctx.Step(`^item "([^"]*)" has (\d+) in stock$`, f.hasStock)
	ctx.Step(`^the receipt total is (\d+)$`, f.receiptTotal)
	ctx.Step(`^the receipt total equals the sum of its line subtotals$`, f.totalIsSumOfLines)
	ctx.Step(`^no sale was recorded$`, f.noSaleRecorded)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
