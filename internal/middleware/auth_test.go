package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/auth"
)

type staticVerifier struct {
	userID string
	err    error
}

func (v staticVerifier) Verify(string) (string, error) {
	return v.userID, v.err
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	handler := Authenticate(staticVerifier{userID: "user-1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	handler := Authenticate(staticVerifier{err: errors.New("bad token")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer nope")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticatePropagatesUserID(t *testing.T) {
	var got string
	handler := Authenticate(staticVerifier{userID: "user-1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.Header.Set("Authorization", "Bearer good")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != "user-1" {
		t.Fatalf("expected user-1 on context, got %q", got)
	}
}

func TestAuthenticateReadsCookieFallback(t *testing.T) {
	var got string
	handler := Authenticate(staticVerifier{userID: "user-2"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "good"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got != "user-2" {
		t.Fatalf("expected user-2 on context, got %q", got)
	}
}
