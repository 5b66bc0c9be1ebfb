package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// SecurityHeaders sets the usual hardening headers. The CSP allows inline
// script and style because the Swagger UI needs them.
func SecurityHeaders(logger *slog.Logger, production bool) func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:",
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            31536000,
		IsDevelopment:         !production,
	})
	base := transport.NewBaseHandler(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				logger.WarnContext(r.Context(), "secure headers blocked request", "error", err)
				base.WriteError(w, http.StatusBadRequest, "Request blocked")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginRateLimit allows perMinute requests per client IP. Over the limit the
// client gets a JSON 429.
func LoginRateLimit(logger *slog.Logger, perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		perMinute = internal.DefaultLoginRateLimit
	}
	base := transport.NewBaseHandler(logger)

	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			base.WriteError(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
		}),
	)
}
