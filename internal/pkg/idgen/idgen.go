package idgen

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	PrefixSale         = "TRX"
	PrefixSaleLine     = "ITR"
	PrefixStockReceipt = "STK-IN"
	PrefixItem         = "ITM"
	PrefixCategory     = "KAT"
	PrefixEmployee     = "ADM"
)

// Generator builds identifiers such as TRX-20240501-7QK2ZD. Dated identifiers
// use the calendar day in the configured store timezone.
type Generator struct {
	loc *time.Location
	now func() time.Time
}

func NewGenerator(loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}

	return &Generator{loc: loc, now: time.Now}
}

// LoadGenerator resolves an IANA timezone name, falling back to UTC when the
// zone database does not know it.
func LoadGenerator(timezone string) *Generator {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return NewGenerator(loc)
}

func (g *Generator) SaleID() string         { return g.dated(PrefixSale, 6) }
func (g *Generator) SaleLineID() string     { return g.plain(PrefixSaleLine, 8) }
func (g *Generator) StockReceiptID() string { return g.dated(PrefixStockReceipt, 6) }
func (g *Generator) ItemID() string         { return g.plain(PrefixItem, 10) }
func (g *Generator) CategoryID() string     { return g.plain(PrefixCategory, 6) }
func (g *Generator) EmployeeID() string     { return g.plain(PrefixEmployee, 6) }

func (g *Generator) dated(prefix string, n int) string {
	return prefix + "-" + g.now().In(g.loc).Format("20060102") + "-" + random(n)
}

func (g *Generator) plain(prefix string, n int) string {
	return prefix + "-" + random(n)
}

func random(n int) string {
	var b strings.Builder
	b.Grow(n)

	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("idgen: crypto/rand unavailable: " + err.Error())
		}
		b.WriteByte(alphabet[idx.Int64()])
	}

	return b.String()
}
