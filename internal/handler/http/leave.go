package http

import (
	"net/http"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/leave"
	"github.com/cmlabs-hris/timekeeping-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateLicense(w http.ResponseWriter, r *http.Request)
	ListLicenses(w http.ResponseWriter, r *http.Request)
	ApproveLicense(w http.ResponseWriter, r *http.Request)
	RejectLicense(w http.ResponseWriter, r *http.Request)
	DeleteLicense(w http.ResponseWriter, r *http.Request)

	CreatePermit(w http.ResponseWriter, r *http.Request)
	ListPermits(w http.ResponseWriter, r *http.Request)
	DeletePermit(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateLicense implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateLicense(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLicenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	license, err := l.leaveService.CreateLicense(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "License created, waiting for approval", license)
}

// ListLicenses implements LeaveHandler.
func (l *LeaveHandlerImpl) ListLicenses(w http.ResponseWriter, r *http.Request) {
	req := leave.ListLicensesRequest{
		EmployeeID: queryParam(r, "employee_id"),
		Status:     queryParam(r, "status"),
	}

	licenses, err := l.leaveService.ListLicenses(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, licenses)
}

// ApproveLicense implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveLicense(w http.ResponseWriter, r *http.Request) {
	license, err := l.leaveService.ApproveLicense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License approved", license)
}

// RejectLicense implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectLicense(w http.ResponseWriter, r *http.Request) {
	license, err := l.leaveService.RejectLicense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License rejected", license)
}

// DeleteLicense implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteLicense(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeleteLicense(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "License deleted", nil)
}

// CreatePermit implements LeaveHandler.
func (l *LeaveHandlerImpl) CreatePermit(w http.ResponseWriter, r *http.Request) {
	var req leave.CreatePermitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	permit, err := l.leaveService.CreatePermit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Special permit created", permit)
}

// ListPermits implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPermits(w http.ResponseWriter, r *http.Request) {
	req := leave.ListPermitsRequest{
		EmployeeID: queryParam(r, "employee_id"),
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
	}

	permits, err := l.leaveService.ListPermits(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, permits)
}

// DeletePermit implements LeaveHandler.
func (l *LeaveHandlerImpl) DeletePermit(w http.ResponseWriter, r *http.Request) {
	if err := l.leaveService.DeletePermit(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Special permit deleted", nil)
}
