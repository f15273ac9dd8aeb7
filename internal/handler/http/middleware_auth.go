// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Session resolution, ownership checks, logging, tracing,
// and compression concerns are all handled at this layer before requests
// are forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces session-based authentication.
//
// It extracts the session token from the inbound session cookie, resolves it
// to an account via [service.AuthService.ResolveSession], and — on success —
// stores the resolved identity in the request context under
// [utils.IdentityCtxKey] before delegating to the next handler. Downstream
// handlers receive the identity explicitly through the context instead of
// re-resolving the token.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the
// following cases:
//   - The session cookie is absent ([ErrNoSessionCookie]).
//   - The cookie is present but empty ([ErrEmptySessionToken]).
//   - The token does not resolve to any account
//     ([service.ErrUnauthenticated]).
//
// Any other resolution failure is logged and answered with a generic client
// error, disclosing nothing about the internal cause.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := getSessionToken(r, h.cookie.Name)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.ResolveSession(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnauthenticated):
				log.Err(err).Msg("session token did not resolve")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during session resolution")
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
		}

		// Store the resolved identity in the context so that downstream
		// handlers can retrieve it without touching the store again.
		ctx = context.WithValue(ctx, utils.IdentityCtxKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getSessionToken extracts the session token from the request's session
// cookie.
//
// It returns the following sentinel errors:
//   - [ErrNoSessionCookie] — if the request carries no cookie under
//     cookieName.
//   - [ErrEmptySessionToken] — if the cookie exists but its value is empty.
func getSessionToken(r *http.Request, cookieName string) (string, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return "", ErrNoSessionCookie
	}

	if cookie.Value == "" {
		return "", ErrEmptySessionToken
	}

	return cookie.Value, nil
}
