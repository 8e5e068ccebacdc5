package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timekeeping-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) leave.LeaveService {
	t.Helper()
	employees := memory.NewEmployeeRepository()
	_, err := employees.Create(context.Background(), employee.Employee{ID: "emp-ana", FullName: "Ana Pérez"})
	require.NoError(t, err)
	return NewLeaveService(memory.NewLicenseRepository(), memory.NewPermitRepository(), employees)
}

func TestLicenseWorkflow(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateLicense(ctx, leave.CreateLicenseRequest{
		EmployeeID: "emp-ana", Type: "vacation", StartDate: "2024-03-04", EndDate: "2024-03-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.Days)
	assert.Equal(t, leave.LicenseStatusWaitingApproval, created.Status)

	approved, err := svc.ApproveLicense(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LicenseStatusApproved, approved.Status)

	_, err = svc.RejectLicense(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLicenseAlreadyProcessed)

	status := "approved"
	list, err := svc.ListLicenses(ctx, leave.ListLicensesRequest{Status: &status})
	require.NoError(t, err)
	require.Len(t, list, 1)

	bogus := "maybe"
	_, err = svc.ListLicenses(ctx, leave.ListLicensesRequest{Status: &bogus})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	require.NoError(t, svc.DeleteLicense(ctx, created.ID))
	_, err = svc.ApproveLicense(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLicenseNotFound)
}

func TestCreateLicense_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  leave.CreateLicenseRequest
	}{
		{"unknown type", leave.CreateLicenseRequest{EmployeeID: "emp-ana", Type: "sabbatical", StartDate: "2024-03-04", EndDate: "2024-03-04"}},
		{"reversed range", leave.CreateLicenseRequest{EmployeeID: "emp-ana", Type: "medical", StartDate: "2024-03-08", EndDate: "2024-03-04"}},
		{"missing employee", leave.CreateLicenseRequest{Type: "medical", StartDate: "2024-03-04", EndDate: "2024-03-04"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLicense(ctx, tt.req)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}

	_, err := svc.CreateLicense(ctx, leave.CreateLicenseRequest{
		EmployeeID: "emp-ghost", Type: "medical", StartDate: "2024-03-04", EndDate: "2024-03-04",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLicenseCovers(t *testing.T) {
	l := leave.License{
		StartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		Status:    leave.LicenseStatusWaitingApproval,
	}
	mid := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	assert.False(t, l.Covers(mid), "pending licenses do not classify days")

	l.Status = leave.LicenseStatusApproved
	assert.True(t, l.Covers(mid))
	assert.True(t, l.Covers(l.EndDate))
	assert.False(t, l.Covers(l.EndDate.AddDate(0, 0, 1)))
}

func TestPermits(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreatePermit(ctx, leave.CreatePermitRequest{
		EmployeeID: "emp-ana", Date: "2024-03-05", From: "10:00", To: "11:30", Reason: "Dentist",
	})
	require.NoError(t, err)

	_, err = svc.CreatePermit(ctx, leave.CreatePermitRequest{
		EmployeeID: "emp-ana", Date: "2024-03-05", From: "11:30", To: "10:00", Reason: "Backwards",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	start, end := "2024-03-01", "2024-03-31"
	list, err := svc.ListPermits(ctx, leave.ListPermitsRequest{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dentist", list[0].Reason)

	require.NoError(t, svc.DeletePermit(ctx, created.ID))
	assert.ErrorIs(t, svc.DeletePermit(ctx, created.ID), leave.ErrPermitNotFound)
}
