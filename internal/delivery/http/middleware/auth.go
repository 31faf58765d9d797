package middleware

import (
	"errors"
	"net/http"

	"labtrack/internal/application/auth"
	"labtrack/internal/delivery/http/cookie"
	"labtrack/internal/delivery/http/handler"
	domain "labtrack/internal/domain/auth"
	"labtrack/internal/logging"
)

// LoadSession resolves the session cookie and, when it names a live
// session, puts the user and session into the request context. Requests
// with a missing, forged or stale cookie continue as anonymous; forged and
// stale cookies are cleared.
func LoadSession(authService auth.Service, cookies *cookie.Codec, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logging.FromContext(ctx, logger)

			sid, err := cookies.Read(r)
			if errors.Is(err, cookie.ErrNoCookie) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Warn(ctx, "rejected session cookie", "error", err)
				cookies.Clear(w)
				next.ServeHTTP(w, r)
				return
			}

			u, session, err := authService.ResolveSession(ctx, sid)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(handler.WithSession(ctx, u, session)))
			case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionInvalid):
				log.Debug(ctx, "session no longer valid", "error", err)
				cookies.Clear(w)
				next.ServeHTTP(w, r)
			default:
				handler.SendInternalError(w, r, logger, "resolve session", err)
			}
		})
	}
}

// RequireAuthenticated redirects anonymous callers to the login page
func RequireAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler.GetUserFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// RequireAnonymous redirects callers that already hold a session to the home page
func RequireAnonymous(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler.GetUserFromContext(r.Context()) != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next(w, r)
	}
}
