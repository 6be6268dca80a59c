package biometrichandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/biometric"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Store      *biometric.Store
	Reconciler *biometric.Reconciler
}

func NewHandler(store *biometric.Store, reconciler *biometric.Reconciler) *Handler {
	return &Handler{Store: store, Reconciler: reconciler}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/biometric", func(r chi.Router) {
		r.Post("/logs", h.handleIngest)
		r.Get("/logs", h.handleList)
		r.Get("/logs/{id}", h.handleGet)
		r.Post("/reconcile", h.handleReconcile)
	})
}

// handleIngest accepts a raw device event. Nothing is matched or derived
// here; the reconciler picks the event up asynchronously.
func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	var payload biometric.Log
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Store.Create(r.Context(), payload)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	page := shared.ParsePagination(r, 100, 500)

	var (
		logs []biometric.Log
		err  error
	)
	switch {
	case query.Get("biometricId") != "":
		logs, err = h.Store.ListByBiometricID(ctx, query.Get("biometricId"), page.Limit, page.Offset)
	case query.Get("employee") != "":
		logs, err = h.Store.ListForEmployee(ctx, query.Get("employee"), page.Limit, page.Offset)
	case query.Get("unprocessed") == "true":
		logs, err = h.Store.ListUnprocessed(ctx, page.Limit)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_query",
			"biometricId, employee or unprocessed=true is required", middleware.GetRequestID(ctx))
		return
	}
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, logs, middleware.GetRequestID(ctx))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	logEntry, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, logEntry, middleware.GetRequestID(r.Context()))
}

// handleReconcile drains one batch synchronously, for operators who do not
// want to wait for the next tick.
func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	applied, err := h.Reconciler.RunOnce(r.Context())
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"applied": applied}, middleware.GetRequestID(r.Context()))
}
