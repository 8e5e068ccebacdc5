package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRoster(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewEmployeeRepository()
	_, err := repo.Create(ctx, employee.Employee{ID: "emp-luis", FullName: "Luis Díaz", BranchID: "sur"})
	require.NoError(t, err)

	roster := "id,full_name,branch_id,tax_id,sales_alias\n" +
		"emp-ana,Ana Pérez,centro,20-28999888-1,Anita\n" +
		"emp-luis,Luis Díaz,norte,,\n"

	created, err := SeedRoster(ctx, repo, "roster.csv", []byte(roster))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	ana, err := repo.GetByID(ctx, "emp-ana")
	require.NoError(t, err)
	assert.Equal(t, "20-28999888-1", ana.TaxID)
	require.NotNil(t, ana.SalesAlias)
	assert.Equal(t, "Anita", *ana.SalesAlias)

	// Existing employees are not overwritten
	luis, err := repo.GetByID(ctx, "emp-luis")
	require.NoError(t, err)
	assert.Equal(t, "sur", luis.BranchID)
}

func TestSeedRoster_InvalidHeader(t *testing.T) {
	_, err := SeedRoster(context.Background(), memory.NewEmployeeRepository(), "roster.csv", []byte("id,name\nx,y\n"))
	assert.ErrorContains(t, err, "full_name")
}

func TestSeedSales(t *testing.T) {
	repo := memory.NewSalesRepository()
	data := "id,seller,date,amount\ns1,Anita,2024-03-04,1200.50\ns2,Luis,2024-03-05,300\n"

	added, err := SeedSales(repo, "sales.csv", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	list, err := repo.ListByRange(context.Background(), from, from)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1200.5", list[0].Amount.String())

	_, err = SeedSales(repo, "sales.csv", []byte("id,seller,date,amount\ns3,Ana,04/03/2024,1\n"))
	assert.Error(t, err)
}
