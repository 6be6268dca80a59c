package payrollhandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/audit"
	"hrstore/internal/domain/payroll"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Store    *payroll.Store
	Renderer *payroll.SlipRenderer
	Audit    *audit.Service
}

func NewHandler(store *payroll.Store, renderer *payroll.SlipRenderer, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Renderer: renderer, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Get("/", h.handleListSalaries)
		r.Post("/", h.handleCreateSalary)
		r.Get("/{id}", h.handleGetSalary)
		r.Patch("/{id}", h.handleUpdateSalary)
		r.Post("/{id}/payment", h.handlePaymentTransition)
		r.Post("/{id}/slip", h.handleCreateSlip)
	})
	r.Route("/slips", func(r chi.Router) {
		r.Get("/", h.handleListSlips)
		r.Get("/{id}", h.handleGetSlip)
		r.Get("/by-number/{slipNumber}", h.handleGetSlipByNumber)
		r.Post("/{id}/email", h.handleEmailTransition)
		r.Post("/{id}/download", h.handleRecordDownload)
	})
}

func (h *Handler) handleListSalaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	page := shared.ParsePagination(r, 50, 200)

	if status := query.Get("paymentStatus"); status != "" {
		salaries, err := h.Store.ListSalariesByPaymentStatus(ctx, status, page.Limit, page.Offset)
		if err != nil {
			api.FromError(w, err, middleware.GetRequestID(ctx))
			return
		}
		api.Success(w, salaries, middleware.GetRequestID(ctx))
		return
	}

	month, _ := strconv.Atoi(query.Get("month"))
	year, _ := strconv.Atoi(query.Get("year"))
	salaries, err := h.Store.ListSalaries(ctx, month, year, page.Limit, page.Offset)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, salaries, middleware.GetRequestID(ctx))
}

func (h *Handler) handleCreateSalary(w http.ResponseWriter, r *http.Request) {
	var payload payroll.Salary
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Store.CreateSalary(r.Context(), payload)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "salary.create", "salaries", created.ID, created.EmployeeID)
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetSalary(w http.ResponseWriter, r *http.Request) {
	sal, err := h.Store.GetSalaryByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	var patch payroll.SalaryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.UpdateSalary(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "salary.update", "salaries", updated.ID, updated.EmployeeID)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

type statusPayload struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	By     string `json:"by"`
}

func (h *Handler) handlePaymentTransition(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.TransitionPayment(r.Context(), chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "salary.payment", "salaries", updated.ID, updated.EmployeeID)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateSlip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.Store.CreateSlip(r.Context(), chi.URLParam(r, "id"), h.Renderer)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "slip.create", "salary_slips", slip.ID, slip.EmployeeID)
	api.Created(w, slip, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSlips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	page := shared.ParsePagination(r, 50, 200)

	var (
		slips []payroll.SalarySlip
		err   error
	)
	switch {
	case query.Get("employee") != "":
		slips, err = h.Store.ListSlipsForEmployee(ctx, query.Get("employee"), page.Limit, page.Offset)
	case query.Get("emailStatus") != "":
		slips, err = h.Store.ListSlipsByEmailStatus(ctx, query.Get("emailStatus"), page.Limit, page.Offset)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_query",
			"employee or emailStatus is required", middleware.GetRequestID(ctx))
		return
	}
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, slips, middleware.GetRequestID(ctx))
}

func (h *Handler) handleGetSlip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.Store.GetSlipByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, slip, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetSlipByNumber(w http.ResponseWriter, r *http.Request) {
	slip, err := h.Store.GetSlipByNumber(r.Context(), chi.URLParam(r, "slipNumber"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, slip, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmailTransition(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.TransitionEmail(r.Context(), chi.URLParam(r, "id"), payload.Status, payload.Error)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.audit(r, "slip.email", "salary_slips", updated.ID, updated.EmployeeID)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecordDownload(w http.ResponseWriter, r *http.Request) {
	var payload statusPayload
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}
	if payload.By == "" {
		payload.By = shared.Actor(r)
	}

	updated, err := h.Store.RecordDownload(r.Context(), chi.URLParam(r, "id"), payload.By)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) audit(r *http.Request, action, collection, documentID, employeeID string) {
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:           action,
		PerformedBy:      shared.Actor(r),
		TargetEmployeeID: employeeID,
		Collection:       collection,
		DocumentID:       documentID,
		IP:               shared.ClientIP(r),
		UserAgent:        r.UserAgent(),
		RequestID:        middleware.GetRequestID(r.Context()),
	})
}
