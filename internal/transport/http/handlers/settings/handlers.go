package settingshandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/audit"
	"hrstore/internal/domain/settings"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Store *settings.Store
	Audit *audit.Service
}

func NewHandler(store *settings.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{category}", h.handleGet)
		r.Put("/{category}", h.handleUpsert)
		r.Delete("/{category}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Store.List(r.Context())
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Store.Get(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var data json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	category := chi.URLParam(r, "category")
	doc, err := h.Store.Upsert(r.Context(), category, data, shared.Actor(r))
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:      "settings.upsert",
		PerformedBy: shared.Actor(r),
		Collection:  "settings",
		DocumentID:  doc.ID,
		Changes:     data,
		IP:          shared.ClientIP(r),
		UserAgent:   r.UserAgent(),
		RequestID:   middleware.GetRequestID(r.Context()),
	})
	api.Success(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := h.Store.Delete(r.Context(), category); err != nil {
		api.FromError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	h.Audit.TryRecord(r.Context(), audit.Entry{
		Action:      "settings.delete",
		PerformedBy: shared.Actor(r),
		Collection:  "settings",
		DocumentID:  category,
		IP:          shared.ClientIP(r),
		UserAgent:   r.UserAgent(),
		RequestID:   middleware.GetRequestID(r.Context()),
	})
	api.Success(w, map[string]string{"category": category}, middleware.GetRequestID(r.Context()))
}
