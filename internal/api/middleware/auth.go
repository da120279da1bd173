package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/common/security"
	"algorithm_guessr/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserCtxKey contextKey = "user"

// UserLoader resolves a token subject to its current account state.
type UserLoader interface {
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is case-sensitive and anything else yields "".
func BearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Authenticator requires a verified token in the request context (see
// jwtauth.Verify) and loads the user it names. The stored account, not the
// token, is the source of truth for role and ban state.
func Authenticator(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
				common.RespondWithError(w, http.StatusUnauthorized, common.MsgTokenMissing)
				return
			}
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, common.MsgTokenInvalid)
				return
			}

			identity, err := security.IdentityFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, common.MsgTokenInvalid)
				return
			}

			user, err := users.UserByID(r.Context(), identity.UserID)
			if err != nil {
				common.RespondWithAppError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly must run after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			common.RespondWithError(w, http.StatusForbidden, common.MsgAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok && user != nil
}
