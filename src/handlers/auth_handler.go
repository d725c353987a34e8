package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spendlog-server/src/auth"
	"spendlog-server/src/middleware"
	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/util"
)

// CookieConfig controls the attributes of the auth cookies.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
}

func (c CookieConfig) set(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// issuePair signs fresh access and refresh tokens and sets both cookies.
func issuePair(w http.ResponseWriter, tokens *auth.Issuer, cookies CookieConfig, login string) (access, refresh string, err error) {
	access, accessExp, err := tokens.Issue(login, auth.AccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, refreshExp, err := tokens.Issue(login, auth.RefreshToken)
	if err != nil {
		return "", "", err
	}
	cookies.set(w, middleware.AccessCookie, access, accessExp)
	cookies.set(w, middleware.RefreshCookie, refresh, refreshExp)
	return access, refresh, nil
}

func Register(users *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Login = strings.TrimSpace(req.Login)

		if !util.ValidateUsername(req.Login) {
			util.WriteError(w, http.StatusBadRequest, "login must be between 3 and 30 characters")
			return
		}
		if !util.ValidatePassword(req.Password) {
			util.WriteError(w, http.StatusBadRequest, "password must be at least 8 characters with uppercase, lowercase, digit, and special character")
			return
		}
		if req.Budget.IsNegative() {
			util.WriteError(w, http.StatusBadRequest, "budget cannot be negative")
			return
		}
		if !validMoney(w, "budget", req.Budget) {
			return
		}

		_, err := users.Register(r.Context(), req.Login, req.Password, req.Budget)
		if errors.Is(err, models.ErrDuplicate) {
			util.WriteError(w, http.StatusConflict, "login already exists")
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to register user", "login", req.Login, "error", err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}
		util.WriteJSON(w, http.StatusOK, statusOK)
	}
}

func Login(users *services.UserService, tokens *auth.Issuer, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Login = strings.TrimSpace(req.Login)

		ok, err := users.CheckPassword(r.Context(), req.Login, req.Password)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to check password", "login", req.Login, "error", err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			slog.WarnContext(r.Context(), "invalid login attempt", "login", req.Login, "remote_addr", r.RemoteAddr)
			util.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if _, _, err := issuePair(w, tokens, cookies, req.Login); err != nil {
			slog.ErrorContext(r.Context(), "failed to issue tokens", "login", req.Login, "error", err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}
		slog.InfoContext(r.Context(), "successful login", "login", req.Login)
		util.WriteJSON(w, http.StatusOK, map[string]string{"msg": "login successful"})
	}
}

func Logout(cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies.clear(w, middleware.AccessCookie)
		cookies.clear(w, middleware.RefreshCookie)
		util.WriteJSON(w, http.StatusOK, map[string]string{"msg": "logout successful"})
	}
}

// RefreshToken trades a valid refresh token for a new pair. The tokens are
// set as cookies and also returned in the body.
func RefreshToken(users *services.UserService, tokens *auth.Issuer, cookies CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := middleware.TokenFromRequest(r, middleware.RefreshCookie)
		if err != nil {
			util.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		claims, err := tokens.Parse(raw, auth.RefreshToken)
		if err != nil {
			util.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}

		if _, err := users.CurrentUser(r.Context(), claims.Subject); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				util.WriteError(w, http.StatusUnauthorized, "user not found")
				return
			}
			slog.ErrorContext(r.Context(), "failed to resolve user", "login", claims.Subject, "error", err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}

		access, refresh, err := issuePair(w, tokens, cookies, claims.Subject)
		if err != nil {
			slog.ErrorContext(r.Context(), "failed to issue tokens", "login", claims.Subject, "error", err)
			util.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]string{
			"auth_token":    access,
			"refresh_token": refresh,
		})
	}
}

func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{
			"login":  user.Username,
			"budget": user.Budget.InexactFloat64(),
		})
	}
}
