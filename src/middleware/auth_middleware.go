package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"spendlog-server/src/auth"
	"spendlog-server/src/models"
	"spendlog-server/src/util"
)

const (
	AccessCookie  = "access_token_cookie"
	RefreshCookie = "refresh_token_cookie"
)

type contextKey string

const userKey contextKey = "user"

var errMissingToken = errors.New("missing token")

// UserResolver maps a token subject to its user.
type UserResolver interface {
	CurrentUser(ctx context.Context, login string) (*models.User, error)
}

// TokenFromRequest prefers the named cookie and falls back to an
// Authorization bearer header.
func TokenFromRequest(r *http.Request, cookieName string) (string, error) {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return token, nil
	}
	return "", errMissingToken
}

// JWTAuthMiddleware resolves the acting user from the access token and stores
// it in the request context. Requests without a valid token or whose user no
// longer exists get 401.
func JWTAuthMiddleware(tokens *auth.Issuer, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := TokenFromRequest(r, AccessCookie)
			if err != nil {
				util.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := tokens.Parse(raw, auth.AccessToken)
			if err != nil {
				slog.DebugContext(r.Context(), "rejected access token", "error", err)
				util.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := users.CurrentUser(r.Context(), claims.Subject)
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusUnauthorized, "user not found")
				return
			}
			if err != nil {
				slog.ErrorContext(r.Context(), "failed to resolve user", "login", claims.Subject, "error", err)
				util.WriteError(w, http.StatusInternalServerError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}
