package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrstore/internal/domain/audit"
	"hrstore/internal/transport/http/api"
	"hrstore/internal/transport/http/middleware"
	"hrstore/internal/transport/http/shared"
)

type Handler struct {
	Audit *audit.Service
}

func NewHandler(auditSvc *audit.Service) *Handler {
	return &Handler{Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audit-logs", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()
	page := shared.ParsePagination(r, 100, 500)

	filter := audit.Filter{
		PerformedBy:      query.Get("performedBy"),
		TargetEmployeeID: query.Get("targetEmployee"),
		Collection:       query.Get("collection"),
	}
	if since, err := shared.ParseDate(query.Get("since")); err == nil {
		filter.Since = since
	}
	if until, err := shared.ParseDate(query.Get("until")); err == nil {
		filter.Until = until
	}

	entries, err := h.Audit.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		api.FromError(w, err, middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(ctx))
}
