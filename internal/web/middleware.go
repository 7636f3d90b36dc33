package web

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/vbonduro/officepantry/internal/auth"
	"github.com/vbonduro/officepantry/internal/domain"
)

type claimsKey struct{}

// claimsFrom returns the caller's claims. Only valid behind requireAuth.
func claimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return c
}

// requireAuth checks the bearer token and, when roles are given, that the
// caller holds one of them.
func (s *Server) requireAuth(next http.HandlerFunc, roles ...domain.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := s.svc.Auth.Authenticate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
			writeError(w, http.StatusForbidden, "insufficient role")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}
