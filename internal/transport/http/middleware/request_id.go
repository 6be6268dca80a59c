package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"hrstore/internal/requestctx"
)

const requestIDHeader = "X-Request-ID"

// RequestID honors a caller-supplied correlation id and mints one otherwise.
// The id is echoed on the response and placed in the request context, where
// handlers and the audit trail pick it up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), reqID)))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
