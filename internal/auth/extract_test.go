package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractFromBearerHeader(t *testing.T) {
	v := newTestVerifier(t)
	e := NewExtractor(v, "fo_session")

	token, err := v.Issue("u1", "orgA", "manager", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/v1/jobs/1", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	claims, err := e.Extract(r)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if claims == nil || claims.UserID() != "u1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExtractFallsBackToCookie(t *testing.T) {
	v := newTestVerifier(t)
	e := NewExtractor(v, "fo_session")

	token, err := v.Issue("u2", "", "", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/v1/jobs/1", nil)
	r.AddCookie(&http.Cookie{Name: "fo_session", Value: token})

	claims, err := e.Extract(r)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if claims == nil || claims.UserID() != "u2" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExtractHeaderTakesPriorityOverCookie(t *testing.T) {
	v := newTestVerifier(t)
	e := NewExtractor(v, "fo_session")

	headerToken, err := v.Issue("header-user", "", "", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	cookieToken, err := v.Issue("cookie-user", "", "", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/v1/jobs/1", nil)
	r.Header.Set("Authorization", "Bearer "+headerToken)
	r.AddCookie(&http.Cookie{Name: "fo_session", Value: cookieToken})

	claims, err := e.Extract(r)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if claims.UserID() != "header-user" {
		t.Fatalf("expected header token to win, got %s", claims.UserID())
	}
}

func TestExtractMalformedCredentialsAreAnonymous(t *testing.T) {
	v := newTestVerifier(t)
	e := NewExtractor(v, "fo_session")

	cases := []func(r *http.Request){
		func(r *http.Request) {},
		func(r *http.Request) { r.Header.Set("Authorization", "Basic dXNlcjpwYXNz") },
		func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.token") },
		func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "fo_session", Value: "garbage"}) },
	}
	for i, setup := range cases {
		r := httptest.NewRequest(http.MethodGet, "/v1/jobs/1", nil)
		setup(r)
		claims, err := e.Extract(r)
		if err != nil || claims != nil {
			t.Fatalf("case %d: expected anonymous, got claims=%v err=%v", i, claims, err)
		}
	}
}

func TestExtractSurfacesExpiry(t *testing.T) {
	v := newTestVerifier(t)
	e := NewExtractor(v, "fo_session")

	token, err := v.Issue("u1", "orgA", "", -time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/v1/jobs/1", nil)
	r.AddCookie(&http.Cookie{Name: "fo_session", Value: token})

	if _, err := e.Extract(r); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
