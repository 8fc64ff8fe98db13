package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"digilocker/internal/common"
	"digilocker/internal/common/security"
	"digilocker/internal/domain/authz"
	"digilocker/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	UsernameCtxKey  contextKey = "username"
	UserRolesCtxKey contextKey = "userRoles"
)

type Authenticator struct {
	userRepo repository.UserRepository
}

func NewAuthenticator(userRepo repository.UserRepository) *Authenticator {
	return &Authenticator{userRepo: userRepo}
}

// Handler rejects requests without a valid bearer token, then resolves the
// token subject to a stored principal and attaches id, username and roles
// to the request context.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		username, err := security.GetSubjectFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		user, err := a.userRepo.FindByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Unknown principal")
			} else {
				common.RespondWithError(w, http.StatusInternalServerError, common.ErrInternalServer.Error())
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID)
		ctx = context.WithValue(ctx, UsernameCtxKey, user.Username)
		ctx = context.WithValue(ctx, UserRolesCtxKey, user.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require gates a route group on the authorization table. Evaluated before
// the handler body; refusal touches no state.
func Require(op authz.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := GetUserRolesFromContext(r.Context())
			if !ok || !authz.Permitted(op, roles) {
				common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get username from context
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

// Helper to get the role set from context
func GetUserRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(UserRolesCtxKey).([]string)
	return roles, ok
}
