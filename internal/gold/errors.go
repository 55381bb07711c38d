package gold

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error kinds surfaced by the accounting core. Handlers translate these to
// HTTP statuses; everything else is passed through unchanged.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the shortfall so the caller can show
// available-vs-requested quantities.
type InsufficientStockError struct {
	CoinType  string
	Gram      decimal.Decimal
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %sg %s. Available: %d, requested: %d",
		e.Gram, e.CoinType, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
