package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	cfg.Logger = zerolog.Nop()
	return New(cfg), srv
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, Config{Token: func() string { return "T1" }})

	if err := c.Get(context.Background(), "/annonces", nil); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if gotAuth != "Bearer T1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, Config{Token: func() string { return "" }})

	_ = c.Get(context.Background(), "/annonces", nil)
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestClient_Unauthorized_TriggersLogout(t *testing.T) {
	var logouts atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, Config{OnUnauthorized: func() { logouts.Add(1) }})

	err := c.Get(context.Background(), "/livraisons", nil)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindAuth {
		t.Fatalf("expected KindAuth error, got %v", err)
	}
	if logouts.Load() != 1 {
		t.Fatalf("expected 1 logout callback, got %d", logouts.Load())
	}
}

func TestClient_Forbidden_NoLogoutByDefault(t *testing.T) {
	var logouts atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, Config{OnUnauthorized: func() { logouts.Add(1) }})

	err := c.Get(context.Background(), "/admin/users", nil)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if logouts.Load() != 0 {
		t.Fatalf("403 must not clear the session unless configured, got %d logouts", logouts.Load())
	}
}

func TestClient_Forbidden_LogoutWhenConfigured(t *testing.T) {
	var logouts atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, Config{OnUnauthorized: func() { logouts.Add(1) }, LogoutOnForbidden: true})

	_ = c.Get(context.Background(), "/admin/users", nil)
	if logouts.Load() != 1 {
		t.Fatalf("expected logout on 403, got %d", logouts.Load())
	}
}

func TestClient_BackendMessageSurfaced(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"le titre est obligatoire"}`))
	}, Config{})

	err := c.Post(context.Background(), "/annonces", map[string]string{}, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindValidation || apiErr.Message != "le titre est obligatoire" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClient_ErrorFieldEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"code invalide"}`))
	}, Config{})

	err := c.Post(context.Background(), "/annonces/5/validate-code", map[string]string{"code": "x"}, nil)
	if got := MessageFor(err, "fallback"); got != "code invalide" {
		t.Fatalf("expected backend error field, got %q", got)
	}
}

func TestClient_ServerFailureGenericMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, Config{})

	err := c.Get(context.Background(), "/annonces", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer {
		t.Fatalf("expected KindServer, got %v", err)
	}
	if apiErr.Message == "" {
		t.Fatalf("expected a generic message for 5xx")
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := New(Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	err := c.Get(context.Background(), "/annonces", nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindTransport {
		t.Fatalf("expected KindTransport, got %v", err)
	}
}

func TestClient_DecodesResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"idAnnonce": 7, "titre": "Colis Paris-Lyon"}`))
	}, Config{})

	var a domain.Annonce
	if err := c.Get(context.Background(), "/annonces/7", &a); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if a.ID != 7 || a.Titre != "Colis Paris-Lyon" {
		t.Fatalf("unexpected annonce: %+v", a)
	}
}
