package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/utils"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LicenseRepository
	leave.PermitRepository
	employee.EmployeeRepository
}

func NewLeaveService(
	licenses leave.LicenseRepository,
	permits leave.PermitRepository,
	employees employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LicenseRepository:  licenses,
		PermitRepository:   permits,
		EmployeeRepository: employees,
	}
}

// CreateLicense implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLicense(ctx context.Context, req leave.CreateLicenseRequest) (leave.LicenseResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LicenseResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LicenseResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LicenseResponse{}, fmt.Errorf("failed to generate license id: %w", err)
	}

	start, _ := time.Parse(utils.DateLayout, req.StartDate)
	end, _ := time.Parse(utils.DateLayout, req.EndDate)
	status := leave.LicenseStatusWaitingApproval
	if req.Approved {
		status = leave.LicenseStatusApproved
	}
	now := time.Now().UTC()

	created, err := s.LicenseRepository.Create(ctx, leave.License{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		Type:       leave.LicenseType(req.Type),
		StartDate:  start,
		EndDate:    end,
		Days:       utils.DaysInclusive(start, end),
		Status:     status,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return leave.LicenseResponse{}, fmt.Errorf("failed to create license: %w", err)
	}
	return leave.ToLicenseResponse(created), nil
}

// ApproveLicense implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLicense(ctx context.Context, id string) (leave.LicenseResponse, error) {
	return s.decide(ctx, id, leave.LicenseStatusApproved)
}

// RejectLicense implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLicense(ctx context.Context, id string) (leave.LicenseResponse, error) {
	return s.decide(ctx, id, leave.LicenseStatusRejected)
}

// decide moves a waiting license to status. Decided licenses are final.
func (s *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.LicenseStatus) (leave.LicenseResponse, error) {
	license, err := s.LicenseRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LicenseResponse{}, err
	}
	if license.Status != leave.LicenseStatusWaitingApproval {
		return leave.LicenseResponse{}, leave.ErrLicenseAlreadyProcessed
	}

	license.Status = status
	license.UpdatedAt = time.Now().UTC()
	if err := s.LicenseRepository.Update(ctx, license); err != nil {
		return leave.LicenseResponse{}, fmt.Errorf("failed to update license: %w", err)
	}

	slog.Info("License decided", "license_id", id, "employee_id", license.EmployeeID, "status", status)
	return leave.ToLicenseResponse(license), nil
}

// DeleteLicense implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteLicense(ctx context.Context, id string) error {
	return s.LicenseRepository.Delete(ctx, id)
}

// ListLicenses implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLicenses(ctx context.Context, req leave.ListLicensesRequest) ([]leave.LicenseResponse, error) {
	filter := leave.LicenseFilter{EmployeeID: req.EmployeeID}
	if req.Status != nil {
		status := leave.LicenseStatus(*req.Status)
		switch status {
		case leave.LicenseStatusWaitingApproval, leave.LicenseStatusApproved, leave.LicenseStatusRejected:
			filter.Status = &status
		default:
			return nil, validator.ValidationErrors{
				{Field: "status", Message: "status must be one of waiting_approval, approved, rejected"},
			}
		}
	}

	licenses, err := s.LicenseRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}

	responses := make([]leave.LicenseResponse, 0, len(licenses))
	for _, l := range licenses {
		responses = append(responses, leave.ToLicenseResponse(l))
	}
	return responses, nil
}

// CreatePermit implements leave.LeaveService.
func (s *LeaveServiceImpl) CreatePermit(ctx context.Context, req leave.CreatePermitRequest) (leave.PermitResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.PermitResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.PermitResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.PermitResponse{}, fmt.Errorf("failed to generate permit id: %w", err)
	}
	date, _ := time.Parse(utils.DateLayout, req.Date)

	created, err := s.PermitRepository.Create(ctx, leave.SpecialPermit{
		ID:         id.String(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		From:       req.From,
		To:         req.To,
		Reason:     req.Reason,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return leave.PermitResponse{}, fmt.Errorf("failed to create special permit: %w", err)
	}
	return leave.ToPermitResponse(created), nil
}

// DeletePermit implements leave.LeaveService.
func (s *LeaveServiceImpl) DeletePermit(ctx context.Context, id string) error {
	return s.PermitRepository.Delete(ctx, id)
}

// ListPermits implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPermits(ctx context.Context, req leave.ListPermitsRequest) ([]leave.PermitResponse, error) {
	filter := leave.PermitFilter{EmployeeID: req.EmployeeID}
	var errs validator.ValidationErrors
	if req.StartDate != nil {
		if d, ok := validator.IsValidDate(*req.StartDate); ok {
			filter.From = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if req.EndDate != nil {
		if d, ok := validator.IsValidDate(*req.EndDate); ok {
			filter.To = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	permits, err := s.PermitRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list special permits: %w", err)
	}

	responses := make([]leave.PermitResponse, 0, len(permits))
	for _, p := range permits {
		responses = append(responses, leave.ToPermitResponse(p))
	}
	return responses, nil
}
