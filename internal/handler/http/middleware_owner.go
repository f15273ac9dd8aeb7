package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
)

// owner is an HTTP middleware gating routes that target a single account,
// identified by the "id" URL parameter. It must run after [Handler.auth].
//
// The check is a pure comparison: the resolved identity's account ID,
// rendered as a string, must equal the path parameter exactly. Requests with
// no resolved identity or with a mismatching ID are rejected with HTTP 403
// Forbidden; the middleware has no side effects.
func (h *Handler) owner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		identity, ok := utils.GetIdentityFromContext(r.Context())
		if !ok {
			log.Error().Msg("no resolved identity in request context")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		targetID := chi.URLParam(r, "id")
		if strconv.FormatInt(identity.UserID, 10) != targetID {
			log.Error().
				Int64("identity_id", identity.UserID).
				Str("target_id", targetID).
				Msg("caller is not the owner of the target resource")
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
