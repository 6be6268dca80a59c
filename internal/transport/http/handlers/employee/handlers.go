package employeehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/audit"
	"hrstore/internal/domain/employee"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
	Audit *audit.Service
}

func NewHandler(store *employee.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/lookup", h.handleLookup)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListFilter{
		DepartmentID: r.URL.Query().Get("department"),
		Status:       r.URL.Query().Get("status"),
	}
	employees, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "employee.create", created.ID)
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

// handleLookup resolves an employee via one of its unique alternate keys.
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var (
		emp employee.Employee
		err error
	)
	switch {
	case query.Get("employeeId") != "":
		emp, err = h.Store.GetByEmployeeID(ctx, query.Get("employeeId"))
	case query.Get("email") != "":
		emp, err = h.Store.GetByEmail(ctx, query.Get("email"))
	case query.Get("biometricId") != "":
		emp, err = h.Store.GetByBiometricID(ctx, query.Get("biometricId"))
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_query",
			"one of employeeId, email or biometricId is required", middleware.GetRequestID(ctx))
		return
	}
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(ctx))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch employee.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "employee.update", updated.ID)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(r.Context(), id); err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "employee.delete", id)
	api.Success(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) audit(r *http.Request, action, documentID string) {
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:           action,
		PerformedBy:      shared.Actor(r),
		TargetEmployeeID: documentID,
		Collection:       "employees",
		DocumentID:       documentID,
		IP:               shared.ClientIP(r),
		UserAgent:        r.UserAgent(),
		RequestID:        middleware.GetRequestID(r.Context()),
	})
}
