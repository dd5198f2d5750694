package auth

import (
	"net/http"
	"strings"
)

// Middleware extracts and decodes the bearer token, placing the resulting
// Sessao in the request context. Requests without a valid token get 401.
type Middleware struct {
	jwtSecret string
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// RequireSessao rejects requests without a decodable bearer token.
func (m *Middleware) RequireSessao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "autenticação necessária", http.StatusUnauthorized)
			return
		}

		sessao, err := ParseToken(token, m.jwtSecret)
		if err != nil {
			http.Error(w, "token inválido", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSessao(r.Context(), sessao)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	token := strings.Trim(fields[1], "\"'")
	return token, token != ""
}
