package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindwell-api/internal/auth"
	"mindwell-api/internal/store"
)

const (
	refreshCookie = "mindwell_refresh"
	refreshTTL    = 30 * 24 * time.Hour
)

// RESTAuth returns the plain-HTTP session endpoints. Browsers hold the refresh
// token in an HttpOnly cookie; only the short-lived access token ever reaches
// script-visible state.
func (h *Handler) RESTAuth() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/session", h.sessionLogin)
	mux.HandleFunc("POST /auth/refresh", h.sessionRefresh)
	mux.HandleFunc("POST /auth/logout", h.sessionLogout)
	return mux
}

type sessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
}

func (h *Handler) sessionLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.Email == "" || body.Password == "" {
		httpError(w, http.StatusBadRequest, "email and password required")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), body.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, body.Password) {
		httpError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	access, err := auth.MakeToken(u.ID, h.secret)
	if err != nil {
		h.log.Error("session login failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.log.Error("session login failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, hash, time.Now().Add(refreshTTL)); err != nil {
		h.log.Error("session login failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setRefreshCookie(w, raw, refreshTTL)
	writeJSON(w, http.StatusOK, sessionResponse{Token: access, UserID: u.ID, Name: u.Name})
}

func (h *Handler) sessionRefresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookie)
	if err != nil || c.Value == "" {
		httpError(w, http.StatusUnauthorized, "no session")
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpError(w, http.StatusUnauthorized, "no session")
			return
		}
		h.log.Error("session refresh failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// A revoked token showing up again means the cookie leaked somewhere.
	// Kill every session for the user rather than just this one.
	if rt.Revoked {
		h.log.Warn("revoked refresh token replayed", zap.String("user_id", rt.UserID))
		if err := h.store.RevokeAllRefreshTokens(r.Context(), rt.UserID); err != nil {
			h.log.Error("revoke all failed", zap.Error(err))
		}
		clearRefreshCookie(w)
		httpError(w, http.StatusUnauthorized, "session revoked")
		return
	}
	if time.Now().After(rt.ExpiresAt) {
		clearRefreshCookie(w)
		httpError(w, http.StatusUnauthorized, "session expired")
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.log.Error("session refresh failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, newHash, time.Now().Add(refreshTTL)); err != nil {
		h.log.Error("session refresh failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}

	access, err := auth.MakeToken(rt.UserID, h.secret)
	if err != nil {
		h.log.Error("session refresh failed", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
		return
	}

	setRefreshCookie(w, newRaw, refreshTTL)
	writeJSON(w, http.StatusOK, sessionResponse{Token: access, UserID: rt.UserID})
}

func (h *Handler) sessionLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(refreshCookie); err == nil && c.Value != "" {
		if rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value)); err == nil {
			if err := h.store.RevokeAllRefreshTokens(r.Context(), rt.UserID); err != nil {
				h.log.Error("logout revoke failed", zap.Error(err))
			}
		}
	}
	clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func setRefreshCookie(w http.ResponseWriter, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    value,
		Path:     "/auth",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
