package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
	"github.com/ecodeli/ecodeli-go/internal/storage"
)

// countingStorage wraps a real FileStorage and counts Clear calls.
type countingStorage struct {
	inner  *storage.FileStorage
	clears atomic.Int32
}

func (c *countingStorage) Save(token string, user []byte) error { return c.inner.Save(token, user) }
func (c *countingStorage) Load() (string, []byte, bool, error)  { return c.inner.Load() }
func (c *countingStorage) Clear() error {
	c.clears.Add(1)
	return c.inner.Clear()
}

func newTestSession(t *testing.T, handler http.HandlerFunc, opts Options) (*Store, *countingStorage, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	fs, err := storage.NewFileStorage(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	cs := &countingStorage{inner: fs}

	opts.Storage = cs
	opts.Logger = zerolog.Nop()
	store := New(opts)
	store.AttachClient(apiclient.New(apiclient.Config{
		BaseURL:        srv.URL,
		Logger:         zerolog.Nop(),
		Token:          store.Token,
		OnUnauthorized: store.Invalidate,
	}))
	return store, cs, srv
}

func authHandler(token, userType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":    token,
			"userType": userType,
			"prenom":   "A",
			"nom":      "B",
			"email":    "a@b.com",
		})
	}
}

func TestLogin_SetsTokenAndUserTogether(t *testing.T) {
	store, _, _ := newTestSession(t, authHandler("T1", domain.RoleClient), Options{})

	user, err := store.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.UserType != domain.RoleClient || user.Prenom != "A" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !store.IsAuthenticated() || store.Token() != "T1" {
		t.Fatalf("expected authenticated session with T1")
	}
	if store.DisplayName() != "A B" {
		t.Fatalf("unexpected display name %q", store.DisplayName())
	}
}

func TestLogin_EmptyCredentialsRejectedLocally(t *testing.T) {
	called := false
	store, _, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, Options{})

	if _, err := store.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if called {
		t.Fatalf("no request must be issued for empty credentials")
	}
}

func TestLoginLogout_LeavesNothingBehind(t *testing.T) {
	store, cs, _ := newTestSession(t, authHandler("T1", domain.RoleClient), Options{})

	if _, err := store.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	store.Logout()

	if store.IsAuthenticated() || store.Role() != "" {
		t.Fatalf("expected cleared session")
	}
	if _, _, ok, _ := cs.Load(); ok {
		t.Fatalf("durable storage must hold neither token nor user after logout")
	}
	// logout is idempotent
	store.Logout()
}

func TestRestore_ReproducesSession(t *testing.T) {
	fs, _ := storage.NewFileStorage(t.TempDir(), "test")
	user, _ := json.Marshal(&domain.Utilisateur{Prenom: "A", Nom: "B", UserType: domain.RoleLivreur})
	if err := fs.Save("T1", user); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	store := New(Options{Storage: fs, Logger: zerolog.Nop()})
	if err := store.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !store.IsAuthenticated() || store.Role() != domain.RoleLivreur {
		t.Fatalf("restored session mismatch: auth=%v role=%q", store.IsAuthenticated(), store.Role())
	}
}

func TestLogin_RequiredRoleRejectsAndKeepsPriorSession(t *testing.T) {
	var issued atomic.Int32
	store, _, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if issued.Add(1) == 1 {
			authHandler("T1", domain.RoleAdmin)(w, r)
			return
		}
		authHandler("T2", domain.RoleClient)(w, r)
	}, Options{RequiredRole: domain.RoleAdmin})

	if _, err := store.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("first login: %v", err)
	}

	_, err := store.Login(context.Background(), "c@d.com", "y")
	if !errors.Is(err, domain.ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
	if store.Token() != "T1" || store.Role() != domain.RoleAdmin {
		t.Fatalf("prior session must remain T1/ADMIN, got %q/%q", store.Token(), store.Role())
	}
}

func TestRegister_ForceRoleOverwritesPayload(t *testing.T) {
	var seenType string
	store, _, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		seenType, _ = body["userType"].(string)
		authHandler("T1", domain.RoleAdmin)(w, r)
	}, Options{ForceRole: domain.RoleAdmin})

	_, err := store.Register(context.Background(), domain.RegisterInput{
		Prenom:     "A",
		Nom:        "B",
		Email:      "a@b.com",
		MotDePasse: "longenough",
		UserType:   domain.RoleClient, // overwritten
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if seenType != domain.RoleAdmin {
		t.Fatalf("expected forced ADMIN userType, backend saw %q", seenType)
	}
}

func TestRegister_ValidatesPayload(t *testing.T) {
	store, _, _ := newTestSession(t, authHandler("T1", domain.RoleClient), Options{})

	_, err := store.Register(context.Background(), domain.RegisterInput{
		Prenom:     "A",
		Nom:        "B",
		Email:      "not-an-email",
		MotDePasse: "longenough",
		UserType:   domain.RoleClient,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad email, got %v", err)
	}
}

func TestUnauthorized_ClearsSessionExactlyOnce(t *testing.T) {
	var loggedIn atomic.Bool
	store, cs, srv := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if !loggedIn.Load() {
			authHandler("T1", domain.RoleClient)(w, r)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}, Options{})

	if _, err := store.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	loggedIn.Store(true)
	before := cs.clears.Load()

	client := apiclient.New(apiclient.Config{
		BaseURL:        srv.URL,
		Logger:         zerolog.Nop(),
		Token:          store.Token,
		OnUnauthorized: store.Invalidate,
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = client.Get(context.Background(), "/livraisons", nil)
		}()
	}
	wg.Wait()

	if store.IsAuthenticated() {
		t.Fatalf("session must be cleared after 401")
	}
	if got := cs.clears.Load() - before; got != 1 {
		t.Fatalf("session must be cleared exactly once, got %d clears", got)
	}
}

func TestTokenExpiry_PeeksUnverifiedClaims(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	fs, _ := storage.NewFileStorage(t.TempDir(), "test")
	user, _ := json.Marshal(&domain.Utilisateur{UserType: domain.RoleClient})
	_ = fs.Save(tok, user)

	store := New(Options{Storage: fs, Logger: zerolog.Nop()})
	_ = store.Restore()

	got, ok := store.TokenExpiry()
	if !ok || !got.Equal(exp) {
		t.Fatalf("expected expiry %v, got %v (ok=%v)", exp, got, ok)
	}
}
