package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashankb2004/edublog/internal/domain"
	"github.com/shashankb2004/edublog/internal/jwt"
	"github.com/shashankb2004/edublog/internal/utils"
)

// Key to store the authenticated user id in the request context
type key int

const userIdKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid bearer token.
// On success the user id is attached to the request context; the wrapped
// handler is never invoked otherwise.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || tokenString == "" {
				utils.WriteJSONError(w, "No authentication token, access denied", http.StatusUnauthorized)
				return
			}

			uid, err := a.jwtService.DecodeToken(tokenString)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIdKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIdFromContext retrieves the authenticated user id from the context.
func GetUserIdFromContext(r *http.Request) (domain.UserId, bool) {
	uid, ok := r.Context().Value(userIdKey).(domain.UserId)
	return uid, ok
}

// WithUserId returns a copy of the request carrying uid in its context.
// Used by handler tests to simulate an authenticated request.
func WithUserId(r *http.Request, uid domain.UserId) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userIdKey, uid))
}
