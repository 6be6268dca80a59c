package attendancehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/attendance"
	"hrstore/internal/domain/audit"
	"hrstore/internal/domain/settings"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Store *attendance.Store
	Rules *settings.Provider
	Audit *audit.Service
}

func NewHandler(store *attendance.Store, rules *settings.Provider, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Rules: rules, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Patch("/{id}", h.handleUpdate)
	})
}

// handleList serves the two indexed access paths: a day roster filtered by
// status, or an employee's recent history.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if employeeID := query.Get("employee"); employeeID != "" {
		page := shared.ParsePagination(r, 31, 200)
		records, err := h.Store.ListForEmployee(ctx, employeeID, page.Limit, page.Offset)
		if err != nil {
			api.FromError(w, err, middleware.GetRequestID(ctx))
			return
		}
		api.Success(w, records, middleware.GetRequestID(ctx))
		return
	}

	date, err := shared.ParseDate(query.Get("date"))
	if err != nil || date.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_query",
			"date (YYYY-MM-DD) or employee is required", middleware.GetRequestID(ctx))
		return
	}
	records, err := h.Store.ListForDate(ctx, date, query.Get("status"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, records, middleware.GetRequestID(ctx))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload attendance.Attendance
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	attendance.Derive(&payload, h.Rules.DayRules(r.Context()))

	created, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:           "attendance.create",
		PerformedBy:      shared.Actor(r),
		TargetEmployeeID: created.EmployeeID,
		Collection:       "attendance",
		DocumentID:       created.ID,
		IP:               shared.ClientIP(r),
		UserAgent:        r.UserAgent(),
		RequestID:        middleware.GetRequestID(r.Context()),
	})
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch attendance.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.Update(r.Context(), chi.URLParam(r, "id"), patch, h.Rules.DayRules(r.Context()))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:           "attendance.update",
		PerformedBy:      shared.Actor(r),
		TargetEmployeeID: updated.EmployeeID,
		Collection:       "attendance",
		DocumentID:       updated.ID,
		IP:               shared.ClientIP(r),
		UserAgent:        r.UserAgent(),
		RequestID:        middleware.GetRequestID(r.Context()),
	})
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}
