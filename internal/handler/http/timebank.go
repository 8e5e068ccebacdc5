package http

import (
	"net/http"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timekeeping-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimeBankHandler interface {
	Append(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type timeBankHandlerImpl struct {
	timeBankService timebank.TimeBankService
}

func NewTimeBankHandler(timeBankService timebank.TimeBankService) TimeBankHandler {
	return &timeBankHandlerImpl{timeBankService: timeBankService}
}

func listEntriesRequest(r *http.Request) timebank.ListEntriesRequest {
	return timebank.ListEntriesRequest{
		EmployeeID: queryParam(r, "employee_id"),
		StartDate:  queryParam(r, "start_date"),
		EndDate:    queryParam(r, "end_date"),
	}
}

// Append implements TimeBankHandler.
func (h *timeBankHandlerImpl) Append(w http.ResponseWriter, r *http.Request) {
	var req timebank.AppendEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.timeBankService.AppendEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time bank entry recorded", entry)
}

// List implements TimeBankHandler.
func (h *timeBankHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.timeBankService.ListEntries(r.Context(), listEntriesRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Delete implements TimeBankHandler.
func (h *timeBankHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.timeBankService.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time bank entry deleted", nil)
}

// Balance implements TimeBankHandler.
func (h *timeBankHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.timeBankService.Balance(r.Context(), listEntriesRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
