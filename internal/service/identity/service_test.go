package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopFlusher struct{}

func (noopFlusher) Flush(ctx context.Context) error { return nil }

type fixture struct {
	employees employee.EmployeeRepository
	aliases   identity.AliasRepository
	records   attendance.AttendanceRepository
	service   identity.IdentityService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		employees: memory.NewEmployeeRepository(),
		aliases:   memory.NewAliasRepository(),
		records:   memory.NewAttendanceRepository(),
	}
	f.service = NewIdentityService(f.aliases, f.employees, f.records, noopFlusher{}, &sync.Mutex{})

	ctx := context.Background()
	for _, e := range []employee.Employee{
		{ID: "emp-ana", FullName: "Ana Pérez", BranchID: "north", TaxID: "27-30111222-4"},
		{ID: "emp-luis", FullName: "Luis Gómez", BranchID: "south", TaxID: "20-28999888-1"},
	} {
		_, err := f.employees.Create(ctx, e)
		require.NoError(t, err)
	}
	return f
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func (f fixture) putRecord(t *testing.T, employeeID, rawName string, date time.Time, branch, in, out string) attendance.Record {
	t.Helper()
	r := attendance.Record{
		Key:        attendance.RecordKey(employeeID, date, branch),
		EmployeeID: employeeID,
		RawName:    rawName,
		Date:       date,
		Branch:     branch,
		Entrance1:  in,
		Exit1:      out,
		Source:     attendance.SourceImport,
	}
	r.Status = attendance.DeriveStatus(r)
	_, err := f.records.Upsert(context.Background(), r)
	require.NoError(t, err)
	return r
}

func TestResolver_Order(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.aliases.Create(ctx, identity.AliasMapping{
		RawName: "ANA P.", NormalizedName: identity.NormalizeName("ANA P."), EmployeeID: "emp-luis",
	})
	require.NoError(t, err)

	resolver, err := NewResolver(ctx, f.employees, f.aliases)
	require.NoError(t, err)

	taxMatch, ok := resolver.MatchTaxID("CUIL 27-30111222-4")
	require.True(t, ok)
	assert.Equal(t, "emp-ana", taxMatch)

	tests := []struct {
		name          string
		rawName       string
		taxEmployeeID string
		wantID        string
		wantMethod    identity.Method
	}{
		{"tax id beats alias", "ANA P.", taxMatch, "emp-ana", identity.MethodTaxID},
		{"alias when no tax id", "  ana  p. ", "", "emp-luis", identity.MethodAlias},
		{"virtual otherwise", "Pedro Ñandú", "", "virtual-pedro-nandu", identity.MethodVirtual},
		{"virtual is stable across spellings", "PEDRO  NANDU", "", "virtual-pedro-nandu", identity.MethodVirtual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolver.Resolve(ctx, tt.rawName, tt.taxEmployeeID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.EmployeeID)
			assert.Equal(t, tt.wantMethod, res.Method)
		})
	}

	_, err = resolver.Resolve(ctx, "  ", "")
	assert.ErrorIs(t, err, identity.ErrUnresolvable)
}

func TestResolver_MatchTaxID(t *testing.T) {
	f := newFixture(t)
	resolver, err := NewResolver(context.Background(), f.employees, f.aliases)
	require.NoError(t, err)

	tests := []struct {
		input  string
		wantID string
		wantOK bool
	}{
		{"20289998881", "emp-luis", true},
		{"20.28999888.1", "emp-luis", true},
		{"23-11111111-9", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		id, ok := resolver.MatchTaxID(tt.input)
		assert.Equal(t, tt.wantOK, ok, tt.input)
		assert.Equal(t, tt.wantID, id, tt.input)
	}

	assert.Equal(t, "27-30111222-4", FindTaxID("CUIL: 27-30111222-4"))
	assert.Empty(t, FindTaxID("Nombre: Ana"))
}

func TestRelink_MigratesRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	virtualID := identity.VirtualID("A. Perez")

	f.putRecord(t, virtualID, "A. Perez", day(4), "north", "09:00", "13:00")
	f.putRecord(t, virtualID, "a. pérez", day(5), "north", "09:00", "17:00")
	// Ana already has a record on the 5th at north; it must survive.
	existing := f.putRecord(t, "emp-ana", "Ana Pérez", day(5), "north", "08:00", "12:00")

	result, err := f.service.Relink(ctx, identity.RelinkRequest{VirtualID: virtualID, EmployeeID: "emp-ana"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.Equal(t, []string{attendance.RecordKey(virtualID, day(5), "north")}, result.Collisions)
	assert.Len(t, result.AliasesCreated, 1, "both spellings fold to one alias")

	virtualRecords, err := f.records.List(ctx, attendance.Filter{EmployeeID: &virtualID})
	require.NoError(t, err)
	assert.Empty(t, virtualRecords)

	kept, err := f.records.GetByKey(ctx, existing.Key)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "08:00", kept.Entrance1)

	moved, err := f.records.GetByKey(ctx, attendance.RecordKey("emp-ana", day(4), "north"))
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, "A. Perez", moved.RawName)

	// Future imports of the same name now resolve through the alias.
	resolver, err := NewResolver(ctx, f.employees, f.aliases)
	require.NoError(t, err)
	res, err := resolver.Resolve(ctx, "A. PEREZ", "")
	require.NoError(t, err)
	assert.Equal(t, "emp-ana", res.EmployeeID)
	assert.Equal(t, identity.MethodAlias, res.Method)
}

func TestRelink_AliasCoversEverySpellingOfTheVirtualID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	virtualID := identity.VirtualID("Perez, Juan")
	require.Equal(t, "virtual-perez-juan", virtualID)

	f.putRecord(t, virtualID, "Perez, Juan", day(4), "north", "09:00", "17:00")
	_, err := f.service.Relink(ctx, identity.RelinkRequest{VirtualID: virtualID, EmployeeID: "emp-luis"})
	require.NoError(t, err)

	resolver, err := NewResolver(ctx, f.employees, f.aliases)
	require.NoError(t, err)
	for _, spelling := range []string{"PEREZ JUAN", "Pérez; Juan", "perez-juan"} {
		require.Equal(t, virtualID, identity.VirtualID(spelling))
		res, err := resolver.Resolve(ctx, spelling, "")
		require.NoError(t, err)
		assert.Equal(t, "emp-luis", res.EmployeeID, spelling)
		assert.Equal(t, identity.MethodAlias, res.Method, spelling)
	}
}

func TestRelink_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Relink(ctx, identity.RelinkRequest{VirtualID: "emp-ana", EmployeeID: "emp-luis"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.service.Relink(ctx, identity.RelinkRequest{VirtualID: "virtual-nobody", EmployeeID: "emp-ana"})
	assert.ErrorIs(t, err, identity.ErrVirtualIdentityUnknown)

	_, err = f.service.Relink(ctx, identity.RelinkRequest{VirtualID: "virtual-nobody", EmployeeID: "emp-ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListVirtualIdentities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.putRecord(t, "virtual-pedro", "Pedro", day(6), "north", "09:00", "10:00")
	f.putRecord(t, "virtual-pedro", "PEDRO", day(2), "south", "", "")
	f.putRecord(t, "emp-ana", "Ana", day(2), "north", "09:00", "10:00")

	list, err := f.service.ListVirtualIdentities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "virtual-pedro", list[0].ID)
	assert.Equal(t, 2, list[0].RecordCount)
	assert.Equal(t, []string{"PEDRO", "Pedro"}, list[0].RawNames)
	assert.Equal(t, "2024-03-02", list[0].FirstDate)
	assert.Equal(t, "2024-03-06", list[0].LastDate)
}

func TestAliasAdministration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateAlias(ctx, identity.CreateAliasRequest{RawName: "Gómez, Luis", EmployeeID: "emp-luis"})
	require.NoError(t, err)
	assert.Equal(t, "gomez luis", created.NormalizedName)

	_, err = f.service.CreateAlias(ctx, identity.CreateAliasRequest{RawName: "GOMEZ,  LUIS", EmployeeID: "emp-ana"})
	assert.ErrorIs(t, err, identity.ErrAliasExists)

	_, err = f.service.CreateAlias(ctx, identity.CreateAliasRequest{RawName: "Someone", EmployeeID: "emp-ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	list, err := f.service.ListAliases(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.service.DeleteAlias(ctx, created.ID))
	assert.ErrorIs(t, f.service.DeleteAlias(ctx, created.ID), identity.ErrAliasNotFound)
}
