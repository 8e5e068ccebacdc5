package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/sales"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type salesRepositoryImpl struct {
	db *database.DB
}

func NewSalesRepository(db *database.DB) sales.SalesRepository {
	return &salesRepositoryImpl{db: db}
}

// ListByRange implements sales.SalesRepository.
func (s *salesRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, seller, date, amount::text
		FROM sales
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	result := make([]sales.Sale, 0)
	for rows.Next() {
		var sale sales.Sale
		var amount string
		if err := rows.Scan(&sale.ID, &sale.Seller, &sale.Date, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sale.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount for sale %s: %w", sale.ID, err)
		}
		result = append(result, sale)
	}
	return result, rows.Err()
}
