package middleware

import (
	"net/http"
	"strings"
)

var localOrigins = []string{"http://localhost", "http://127.0.0.1"}

// AllowedOrigin accepts requests without an Origin header and any origin on
// the local host.
func AllowedOrigin(origin string) bool {
	if origin == "" {
		return true
	}
	for _, prefix := range localOrigins {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if !AllowedOrigin(origin) {
			if r.Method == http.MethodOptions {
				writeError(w, http.StatusForbidden, "Not allowed by CORS")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
