// Package fixtures seeds a memory-only session from spreadsheet files.
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/sales"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/sheet"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

var (
	rosterColumns = []string{"id", "full_name", "branch_id", "tax_id", "sales_alias"}
	salesColumns  = []string{"id", "seller", "date", "amount"}
)

// SaleAdder accepts sales owned by another subsystem.
type SaleAdder interface {
	Add(records ...sales.Sale)
}

// columnIndex maps each wanted column to its position in the header row.
func columnIndex(header []string, wanted []string) (map[string]int, error) {
	index := make(map[string]int, len(wanted))
	for i, cell := range header {
		index[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	for _, col := range wanted {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return index, nil
}

func cell(row []string, index map[string]int, col string) string {
	i := index[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// SeedRoster creates the employees listed in a roster file. Employees that
// already exist are left untouched. Returns how many were created.
func SeedRoster(ctx context.Context, employees employee.EmployeeRepository, filename string, data []byte) (int, error) {
	rows, err := sheet.ReadRows(filename, data)
	if err != nil {
		return 0, fmt.Errorf("failed to read roster: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	index, err := columnIndex(rows[0], rosterColumns)
	if err != nil {
		return 0, fmt.Errorf("invalid roster header: %w", err)
	}

	created := 0
	now := time.Now().UTC()
	for line, row := range rows[1:] {
		emp := employee.Employee{
			ID:        cell(row, index, "id"),
			FullName:  cell(row, index, "full_name"),
			BranchID:  cell(row, index, "branch_id"),
			TaxID:     cell(row, index, "tax_id"),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if emp.ID == "" || emp.FullName == "" {
			return created, fmt.Errorf("roster line %d: id and full_name are required", line+2)
		}
		if alias := cell(row, index, "sales_alias"); alias != "" {
			emp.SalesAlias = &alias
		}

		if _, err := employees.Create(ctx, emp); err != nil {
			if errors.Is(err, employee.ErrEmployeeExists) {
				continue
			}
			return created, fmt.Errorf("failed to create employee %s: %w", emp.ID, err)
		}
		created++
	}
	return created, nil
}

// SeedSales loads a sales file into target. Returns how many sales were added.
func SeedSales(target SaleAdder, filename string, data []byte) (int, error) {
	rows, err := sheet.ReadRows(filename, data)
	if err != nil {
		return 0, fmt.Errorf("failed to read sales: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	index, err := columnIndex(rows[0], salesColumns)
	if err != nil {
		return 0, fmt.Errorf("invalid sales header: %w", err)
	}

	var batch []sales.Sale
	for line, row := range rows[1:] {
		date, err := time.Parse(utils.DateLayout, cell(row, index, "date"))
		if err != nil {
			return 0, fmt.Errorf("sales line %d: invalid date: %w", line+2, err)
		}
		amount, err := decimal.NewFromString(cell(row, index, "amount"))
		if err != nil {
			return 0, fmt.Errorf("sales line %d: invalid amount: %w", line+2, err)
		}
		batch = append(batch, sales.Sale{
			ID:     cell(row, index, "id"),
			Seller: cell(row, index, "seller"),
			Date:   date,
			Amount: amount,
		})
	}
	target.Add(batch...)
	return len(batch), nil
}
