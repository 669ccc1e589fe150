package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Formats(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	g := NewGenerator(jakarta)
	// 2024-05-01 20:00 UTC is already 2 May in Jakarta.
	g.now = func() time.Time { return time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		id      string
		pattern string
	}{
		{name: "sale", id: g.SaleID(), pattern: `^TRX-20240502-[A-Z0-9]{6}$`},
		{name: "sale line", id: g.SaleLineID(), pattern: `^ITR-[A-Z0-9]{8}$`},
		{name: "stock receipt", id: g.StockReceiptID(), pattern: `^STK-IN-20240502-[A-Z0-9]{6}$`},
		{name: "item", id: g.ItemID(), pattern: `^ITM-[A-Z0-9]{10}$`},
		{name: "category", id: g.CategoryID(), pattern: `^KAT-[A-Z0-9]{6}$`},
		{name: "employee", id: g.EmployeeID(), pattern: `^ADM-[A-Z0-9]{6}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.pattern), tt.id)
		})
	}
}

func TestGenerator_Unique(t *testing.T) {
	g := NewGenerator(nil)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := g.ItemID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestLoadGenerator_UnknownZone(t *testing.T) {
	g := LoadGenerator("Mars/Olympus_Mons")

	assert.Equal(t, time.UTC, g.loc)
}
