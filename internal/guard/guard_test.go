package guard

import (
	"testing"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

type fakeSession struct {
	authenticated bool
	role          string
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) Role() string          { return f.role }

func newPortalGuard(s SessionReader) *Guard {
	return New(Config{
		Session:     s,
		Routes:      PortalRoutes(),
		Homes:       RoleHomes,
		LoginPath:   "/login",
		DefaultHome: "/",
	})
}

func TestGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	g := newPortalGuard(&fakeSession{})

	d := g.Check("/client/create-annonce")
	if d.Allowed || d.RedirectTo != "/login" {
		t.Fatalf("expected redirect to /login, got %+v", d)
	}
}

func TestGuard_WrongRoleRedirectsToOwnHome(t *testing.T) {
	g := newPortalGuard(&fakeSession{authenticated: true, role: domain.RoleClient})

	d := g.Check("/livreur/livraisons")
	if d.Allowed {
		t.Fatalf("CLIENT must never reach a LIVREUR route")
	}
	if d.RedirectTo != "/client" {
		t.Fatalf("expected redirect to /client, got %q", d.RedirectTo)
	}
}

func TestGuard_AdminRouteNeverAllowsClient(t *testing.T) {
	g := New(Config{
		Session:     &fakeSession{authenticated: true, role: domain.RoleClient},
		Routes:      AdminRoutes(),
		Homes:       AdminHomes,
		LoginPath:   "/admin/login",
		DefaultHome: "/admin/login",
	})

	for _, path := range []string{"/admin", "/admin/dashboard", "/admin/users", "/admin/users/4/edit"} {
		d := g.Check(path)
		if d.Allowed {
			t.Fatalf("CLIENT session allowed on %s", path)
		}
		if d.RedirectTo != "/admin/login" {
			t.Fatalf("expected role-appropriate destination for %s, got %q", path, d.RedirectTo)
		}
	}
}

func TestGuard_GuestRouteBouncesAuthenticated(t *testing.T) {
	g := newPortalGuard(&fakeSession{authenticated: true, role: domain.RolePrestataire})

	d := g.Check("/login")
	if d.Allowed || d.RedirectTo != "/prestataire" {
		t.Fatalf("expected bounce to /prestataire, got %+v", d)
	}
}

func TestGuard_GuestRouteAllowsAnonymous(t *testing.T) {
	g := newPortalGuard(&fakeSession{})

	if d := g.Check("/login"); !d.Allowed {
		t.Fatalf("anonymous session must reach /login, got %+v", d)
	}
}

func TestGuard_AllowsMatchingRole(t *testing.T) {
	g := newPortalGuard(&fakeSession{authenticated: true, role: domain.RoleLivreur})

	if d := g.Check("/livreur/partielles"); !d.Allowed {
		t.Fatalf("LIVREUR must reach its own space, got %+v", d)
	}
}

func TestGuard_UnknownRoleFallsBackToDefaultHome(t *testing.T) {
	g := newPortalGuard(&fakeSession{authenticated: true, role: "SUPPORT"})

	d := g.Check("/client")
	if d.Allowed || d.RedirectTo != "/" {
		t.Fatalf("unknown role must land on the generic home, got %+v", d)
	}
}

func TestGuard_ParameterizedRoutes(t *testing.T) {
	g := newPortalGuard(&fakeSession{})

	d := g.Check("/paiement/42")
	if d.Allowed || d.RedirectTo != "/login" {
		t.Fatalf("parameterized route must inherit its declaration, got %+v", d)
	}
}

func TestGuard_EvaluationOrderAuthBeforeRole(t *testing.T) {
	// an anonymous session on a role route must hit the auth rule first
	g := newPortalGuard(&fakeSession{})

	d := g.Check("/livreur")
	if d.RedirectTo != "/login" {
		t.Fatalf("auth requirement must be evaluated before role, got %+v", d)
	}
}

func TestGuard_UndeclaredPathAllowed(t *testing.T) {
	g := newPortalGuard(&fakeSession{})

	if d := g.Check("/mentions-legales"); !d.Allowed {
		t.Fatalf("undeclared public path must be allowed, got %+v", d)
	}
}
