package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/zeusync/sweepsensor/internal/core/observability/log"
)

// authenticate rejects requests that do not carry the configured token.
// Browsers cannot set headers on WebSocket handshakes, so the token is also
// accepted as a query parameter.
func (s *Server) authenticate(next http.Handler) http.Handler {
	if s.config.Token == "" {
		return next
	}
	want := []byte(s.config.Token)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if subtle.ConstantTimeCompare([]byte(token), want) != 1 {
			s.logger.Warn("Rejected unauthenticated request",
				log.String("path", r.URL.Path),
				log.String("remote_addr", r.RemoteAddr))
			http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
