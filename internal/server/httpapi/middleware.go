package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
)

type ctxKey int

const memberCtxKey ctxKey = 0

// memberFromContext returns the admin member stored by requireAdmin.
func memberFromContext(ctx context.Context) (*models.Member, bool) {
	m, ok := ctx.Value(memberCtxKey).(*models.Member)
	return m, ok
}

// requireAdmin enforces Authorization: Bearer <JWT> and the admin allowlist.
// On success the resolved member is stored in the request context.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(authz, common.BearerPrefix) {
			writeError(w, common.ErrUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authz, common.BearerPrefix))
		if token == "" {
			writeError(w, common.ErrUnauthorized)
			return
		}

		member, err := s.auth.AuthorizeAdmin(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), memberCtxKey, member)))
	})
}
