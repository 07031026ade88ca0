package httpapi

import (
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
)

// authGate rejects requests without a valid auth-token header and stores
// the token's user id in the request context. Missing, malformed, expired
// and mis-signed tokens all get the same 401.
func (s *HTTPServer) authGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AuthTokenHeaderName)
		if token == "" {
			respondError(w, http.StatusUnauthorized, msgUnauthorizedUser)
			return
		}

		identity, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			respondError(w, http.StatusUnauthorized, msgUnauthorizedUser)
			return
		}

		ctx := auth.ContextWithUserID(r.Context(), identity.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

var hostname, _ = os.Hostname()

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"hostname", hostname,
			"ip", clientIP(r),
			"method", r.Method,
			"url", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(r.Context(), "panic in handler", "panic", p, "stack", string(debug.Stack()))
				respondError(w, http.StatusInternalServerError, msgPanic)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
