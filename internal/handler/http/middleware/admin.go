package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timekeeping-go/internal/domain/auth"
	"github.com/cmlabs-hris/timekeeping-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		admin, ok := claims[jwt.ClaimIsAdmin].(bool)
		if !admin || !ok {
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
