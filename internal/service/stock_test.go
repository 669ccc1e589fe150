package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplepos/pos-api/internal/domain"
)

func TestStockService_AddThenReverse(t *testing.T) {
	ledger := newMemLedger()
	ledger.seedItem(t, "ITM-Z", "Beras 5kg", "75000", "5")
	notifier := &recordingNotifier{}
	svc := NewStockService(ledger, testIDs, notifier)

	added, err := svc.AddInbound(context.Background(), owner, "ITM-Z", dec("20"))
	require.NoError(t, err)
	require.NotNil(t, added.Receipt)

	assert.True(t, dec("25").Equal(added.Quantity))
	assert.True(t, dec("25").Equal(ledger.quantity(t, "ITM-Z")))
	assert.Regexp(t, `^STK-IN-\d{8}-[A-Z0-9]{6}$`, added.Receipt.ID)
	assert.Equal(t, owner.SubjectID, added.Receipt.EmployeeID)
	assert.Contains(t, ledger.state.receipts, added.Receipt.ID)

	reversed, err := svc.ReverseInbound(context.Background(), added.Receipt.ID)
	require.NoError(t, err)

	assert.Equal(t, "ITM-Z", reversed.ItemID)
	assert.True(t, dec("5").Equal(reversed.Quantity))
	assert.True(t, dec("5").Equal(ledger.quantity(t, "ITM-Z")))
	assert.NotContains(t, ledger.state.receipts, added.Receipt.ID)

	require.Len(t, notifier.batches, 2)
	assert.True(t, dec("25").Equal(notifier.batches[0][0].Quantity))
	assert.True(t, dec("5").Equal(notifier.batches[1][0].Quantity))
}

func TestStockService_AddInbound_Errors(t *testing.T) {
	tests := []struct {
		name    string
		itemID  string
		qty     string
		wantErr error
	}{
		{name: "missing item", itemID: "ITM-NOPE", qty: "1", wantErr: ErrItemNotFound},
		{name: "blank item", itemID: " ", qty: "1", wantErr: ErrValidation},
		{name: "zero quantity", itemID: "ITM-Z", qty: "0", wantErr: ErrValidation},
		{name: "negative quantity", itemID: "ITM-Z", qty: "-3", wantErr: ErrValidation},
		{name: "quantity below the stored scale", itemID: "ITM-Z", qty: "0.0004", wantErr: ErrValidation},
		{name: "quantity beyond the stored range", itemID: "ITM-Z", qty: "100000000000", wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newMemLedger()
			ledger.seedItem(t, "ITM-Z", "Beras 5kg", "75000", "5")
			svc := NewStockService(ledger, testIDs, nil)

			_, err := svc.AddInbound(context.Background(), owner, tt.itemID, dec(tt.qty))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, dec("5").Equal(ledger.quantity(t, "ITM-Z")))
			assert.Empty(t, ledger.state.receipts)
		})
	}
}

func TestStockService_AddInbound_StockWouldOverflow(t *testing.T) {
	ledger := newMemLedger()
	ledger.seedItem(t, "ITM-Z", "Beras 5kg", "75000", "99999999999")
	svc := NewStockService(ledger, testIDs, nil)

	_, err := svc.AddInbound(context.Background(), owner, "ITM-Z", dec("1"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, dec("99999999999").Equal(ledger.quantity(t, "ITM-Z")))
	assert.Empty(t, ledger.state.receipts)
}

func TestStockService_ReverseInbound_NotFound(t *testing.T) {
	svc := NewStockService(newMemLedger(), testIDs, nil)

	_, err := svc.ReverseInbound(context.Background(), "STK-IN-20240101-AAAAAA")
	assert.ErrorIs(t, err, ErrStockReceiptNotFound)
}

func TestStockService_ReverseInbound_ItemGone(t *testing.T) {
	ledger := newMemLedger()
	ledger.state.receipts["STK-IN-1"] = domain.StockReceipt{ID: "STK-IN-1", ItemID: "ITM-GONE", Quantity: dec("2")}
	svc := NewStockService(ledger, testIDs, nil)

	_, err := svc.ReverseInbound(context.Background(), "STK-IN-1")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Contains(t, ledger.state.receipts, "STK-IN-1")
}

func TestStockService_ReverseInbound_AfterStockWasSold(t *testing.T) {
	ledger := newMemLedger()
	ledger.seedItem(t, "ITM-Z", "Beras 5kg", "75000", "0")
	stock := NewStockService(ledger, testIDs, nil)
	sales := NewSaleService(ledger, testIDs, nil)

	added, err := stock.AddInbound(context.Background(), owner, "ITM-Z", dec("10"))
	require.NoError(t, err)

	_, err = sales.Checkout(context.Background(), cashier, domain.Checkout{
		Lines:        []domain.CartLine{{ItemID: "ITM-Z", Quantity: dec("7")}},
		CashTendered: dec("525000"),
	})
	require.NoError(t, err)

	_, err = stock.ReverseInbound(context.Background(), added.Receipt.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, dec("3").Equal(ledger.quantity(t, "ITM-Z")))
	assert.Contains(t, ledger.state.receipts, added.Receipt.ID)
}
