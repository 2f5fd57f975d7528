package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
	"github.com/ecodeli/ecodeli-go/internal/infrastructure/config"
)

func newBackend(t *testing.T, userType string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token":         "jeton-test",
			"idUtilisateur": 12,
			"prenom":        "Sophie",
			"nom":           "Martin",
			"email":         "sophie@ecodeli.fr",
			"userType":      userType,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		BaseURL:        baseURL,
		StorageBackend: "file",
		StoragePath:    t.TempDir(),
		SessionPrefix:  "session",
	}
}

func TestPortalWiresSessionAndGuard(t *testing.T) {
	backend := newBackend(t, domain.RoleClient)
	a, err := New(context.Background(), Portal, testConfig(t, backend.URL), zerolog.Nop())
	if err != nil {
		t.Fatalf("new portal: %v", err)
	}

	d := a.Guard.Check("/client")
	if d.Allowed || d.RedirectTo != "/login" {
		t.Errorf("anonymous on /client: %+v", d)
	}

	if _, err := a.Session.Login(context.Background(), "sophie@ecodeli.fr", "motdepasse"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !a.Session.IsAuthenticated() || a.Session.Role() != domain.RoleClient {
		t.Fatalf("session after login: role %q", a.Session.Role())
	}

	if d := a.Guard.Check("/client"); !d.Allowed {
		t.Errorf("authenticated CLIENT denied its home: %+v", d)
	}
	if d := a.Guard.Check("/livreur"); d.Allowed || d.RedirectTo != "/client" {
		t.Errorf("CLIENT on /livreur: %+v", d)
	}
	if d := a.Guard.Check("/login"); d.Allowed || d.RedirectTo != "/client" {
		t.Errorf("authenticated CLIENT on guest route: %+v", d)
	}
}

func TestAdminRejectsNonAdminSession(t *testing.T) {
	backend := newBackend(t, domain.RoleClient)
	a, err := New(context.Background(), Admin, testConfig(t, backend.URL), zerolog.Nop())
	if err != nil {
		t.Fatalf("new admin: %v", err)
	}

	if _, err := a.Session.Login(context.Background(), "sophie@ecodeli.fr", "motdepasse"); err == nil {
		t.Fatal("CLIENT credentials accepted by the back office")
	}
	if a.Session.IsAuthenticated() {
		t.Error("rejected login left a session behind")
	}
}

func TestPortalAndAdminSessionsIsolated(t *testing.T) {
	backend := newBackend(t, domain.RoleAdmin)
	cfg := testConfig(t, backend.URL)

	admin, err := New(context.Background(), Admin, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new admin: %v", err)
	}
	if _, err := admin.Session.Login(context.Background(), "root@ecodeli.fr", "motdepasse"); err != nil {
		t.Fatalf("admin login: %v", err)
	}

	// a fresh portal over the same storage directory must not see the
	// admin session
	portal, err := New(context.Background(), Portal, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new portal: %v", err)
	}
	if portal.Session.IsAuthenticated() {
		t.Error("portal adopted the back office session")
	}

	// and logging the portal out must not clear the admin one
	portal.Session.Logout()
	fresh, err := New(context.Background(), Admin, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new admin: %v", err)
	}
	if !fresh.Session.IsAuthenticated() {
		t.Error("admin session lost after a portal logout")
	}
}

func TestUnknownApplicationRefused(t *testing.T) {
	if _, err := New(context.Background(), "kiosk", testConfig(t, "http://localhost:1"), zerolog.Nop()); err == nil {
		t.Fatal("unknown application accepted")
	}
}
