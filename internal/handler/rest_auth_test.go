package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wirev1 "mindwell-api/internal/wire/v1"
)

func registerUser(t *testing.T, h *Handler) {
	t.Helper()
	_, err := h.Register(context.Background(), &wirev1.RegisterRequest{
		Email: "ada@example.test", Password: "hunter2hunter2", Name: "Ada",
	})
	require.NoError(t, err)
}

func doLogin(t *testing.T, mux http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/session",
		strings.NewReader(`{"email":"ada@example.test","password":"hunter2hunter2"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func refreshCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == refreshCookie {
			return c
		}
	}
	t.Fatal("no refresh cookie set")
	return nil
}

func TestSessionLogin(t *testing.T) {
	h, _ := newTestHandler()
	registerUser(t, h)
	mux := h.RESTAuth()

	w := doLogin(t, mux)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)

	c := refreshCookieFrom(t, w)
	assert.True(t, c.HttpOnly)
	assert.NotEmpty(t, c.Value)

	// bad password
	req := httptest.NewRequest(http.MethodPost, "/auth/session",
		strings.NewReader(`{"email":"ada@example.test","password":"nope"}`))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRefreshRotates(t *testing.T) {
	h, _ := newTestHandler()
	registerUser(t, h)
	mux := h.RESTAuth()

	first := refreshCookieFrom(t, doLogin(t, mux))

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(first)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	second := refreshCookieFrom(t, w)
	assert.NotEqual(t, first.Value, second.Value)

	// replaying the rotated-out cookie revokes the whole session family
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(first)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the replacement died with it
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(second)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionLogout(t *testing.T) {
	h, _ := newTestHandler()
	registerUser(t, h)
	mux := h.RESTAuth()

	c := refreshCookieFrom(t, doLogin(t, mux))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(c)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRefreshWithoutCookie(t *testing.T) {
	h, _ := newTestHandler()
	mux := h.RESTAuth()

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
