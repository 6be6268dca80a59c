package departmenthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/audit"
	"hrstore/internal/domain/department"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Store *department.Store
	Audit *audit.Service
}

func NewHandler(store *department.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/lookup", h.handleLookup)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	departments, err := h.Store.List(r.Context(), activeOnly)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload department.Department
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:      "department.create",
		PerformedBy: shared.Actor(r),
		Collection:  "departments",
		DocumentID:  created.ID,
		IP:          shared.ClientIP(r),
		UserAgent:   r.UserAgent(),
		RequestID:   middleware.GetRequestID(r.Context()),
	})
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

// handleLookup resolves a department by its human-readable code.
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	departmentID := r.URL.Query().Get("departmentId")
	if departmentID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_query",
			"departmentId is required", middleware.GetRequestID(r.Context()))
		return
	}
	dept, err := h.Store.GetByDepartmentID(r.Context(), departmentID)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dept, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	dept, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dept, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch department.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:      "department.update",
		PerformedBy: shared.Actor(r),
		Collection:  "departments",
		DocumentID:  updated.ID,
		IP:          shared.ClientIP(r),
		UserAgent:   r.UserAgent(),
		RequestID:   middleware.GetRequestID(r.Context()),
	})
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), id); err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:      "department.delete",
		PerformedBy: shared.Actor(r),
		Collection:  "departments",
		DocumentID:  id,
		IP:          shared.ClientIP(r),
		UserAgent:   r.UserAgent(),
		RequestID:   middleware.GetRequestID(r.Context()),
	})
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}
