package leavehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/audit"
	"hrstore/internal/domain/leave"
	"hrstore/internal/domain/settings"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Store  *leave.Store
	Policy *settings.Provider
	Audit  *audit.Service
}

func NewHandler(store *leave.Store, policy *settings.Provider, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Policy: policy, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/approve", h.handleDecision(leave.StatusApproved, "leave.approve"))
		r.Post("/{id}/reject", h.handleDecision(leave.StatusRejected, "leave.reject"))
		r.Post("/{id}/cancel", h.handleDecision(leave.StatusCancelled, "leave.cancel"))
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	page := shared.ParsePagination(r, 50, 200)

	var (
		requests []leave.Leave
		err      error
	)
	switch {
	case query.Get("employee") != "" && query.Get("overlapsFrom") != "" && query.Get("overlapsTo") != "":
		from, ferr := shared.ParseDate(query.Get("overlapsFrom"))
		to, terr := shared.ParseDate(query.Get("overlapsTo"))
		if ferr != nil || terr != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_query",
				"overlapsFrom and overlapsTo must be dates", middleware.GetRequestID(ctx))
			return
		}
		requests, err = h.Store.Overlapping(ctx, query.Get("employee"), from, to)
	case query.Get("employee") != "":
		requests, err = h.Store.ListForEmployee(ctx, query.Get("employee"), page.Limit, page.Offset)
	case query.Get("status") != "":
		requests, err = h.Store.ListByStatus(ctx, query.Get("status"), page.Limit, page.Offset)
	default:
		requests, err = h.Store.ListByStatus(ctx, leave.StatusPending, page.Limit, page.Offset)
	}
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(ctx))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload leave.Leave
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Store.Create(r.Context(), payload, h.Policy.LeavePolicy(r.Context()))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "leave.create", created)
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	request, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	ApproverID string `json:"approverId"`
	Comment    string `json:"comment"`
}

func (h *Handler) handleDecision(nextStatus, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload decisionPayload
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
				return
			}
		}

		updated, err := h.Store.Transition(r.Context(), chi.URLParam(r, "id"), nextStatus, payload.ApproverID, payload.Comment)
		if err != nil {
			api.FromError(w, err, middleware.GetRequestID(r.Context()))
			return
		}
		h.audit(r, action, updated)
		api.Success(w, updated, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) audit(r *http.Request, action string, request leave.Leave) {
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:           action,
		PerformedBy:      shared.Actor(r),
		TargetEmployeeID: request.EmployeeID,
		Collection:       "leaves",
		DocumentID:       request.ID,
		IP:               shared.ClientIP(r),
		UserAgent:        r.UserAgent(),
		RequestID:        middleware.GetRequestID(r.Context()),
	})
}
