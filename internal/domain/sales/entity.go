package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a transaction owned by the sales subsystem. This service only reads it.
type Sale struct {
	ID     string
	Seller string
	Date   time.Time
	Amount decimal.Decimal
}
