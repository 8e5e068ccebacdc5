package http

import (
	"net/http"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/identity"
	"github.com/cmlabs-hris/timekeeping-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type IdentityHandler interface {
	CreateAlias(w http.ResponseWriter, r *http.Request)
	ListAliases(w http.ResponseWriter, r *http.Request)
	DeleteAlias(w http.ResponseWriter, r *http.Request)
	ListVirtual(w http.ResponseWriter, r *http.Request)
	Relink(w http.ResponseWriter, r *http.Request)
}

type identityHandlerImpl struct {
	identityService identity.IdentityService
}

func NewIdentityHandler(identityService identity.IdentityService) IdentityHandler {
	return &identityHandlerImpl{identityService: identityService}
}

// CreateAlias implements IdentityHandler.
func (h *identityHandlerImpl) CreateAlias(w http.ResponseWriter, r *http.Request) {
	var req identity.CreateAliasRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	alias, err := h.identityService.CreateAlias(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Alias created", alias)
}

// ListAliases implements IdentityHandler.
func (h *identityHandlerImpl) ListAliases(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.identityService.ListAliases(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, aliases)
}

// DeleteAlias implements IdentityHandler.
func (h *identityHandlerImpl) DeleteAlias(w http.ResponseWriter, r *http.Request) {
	if err := h.identityService.DeleteAlias(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Alias deleted", nil)
}

// ListVirtual implements IdentityHandler.
func (h *identityHandlerImpl) ListVirtual(w http.ResponseWriter, r *http.Request) {
	identities, err := h.identityService.ListVirtualIdentities(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, identities)
}

// Relink implements IdentityHandler.
func (h *identityHandlerImpl) Relink(w http.ResponseWriter, r *http.Request) {
	var req identity.RelinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.identityService.Relink(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Virtual identity relinked", result)
}
