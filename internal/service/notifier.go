package service

import "github.com/simplepos/pos-api/internal/domain"

// StockNotifier is told about new stock levels after a change commits.
// Publish must not block.
type StockNotifier interface {
	Publish(levels []domain.StockLevel)
}

type noopNotifier struct{}

func (noopNotifier) Publish([]domain.StockLevel) {}

func notifierOrNoop(n StockNotifier) StockNotifier {
	if n == nil {
		return noopNotifier{}
	}

	return n
}
