// Package guard implements the navigation guard evaluated before every route
// transition: a synchronous decision made from currently cached session
// state, never re-validated against the backend.
package guard

import "strings"

// Route declares one navigable destination and its requirements.
type Route struct {
	Path string
	Name string
	// RequiresAuth gates the route behind an authenticated session.
	RequiresAuth bool
	// RequiresGuest marks login/register routes that authenticated
	// sessions are bounced away from.
	RequiresGuest bool
	// Role restricts the route to one userType. Empty means any
	// authenticated role (when RequiresAuth is set).
	Role string
}

// SessionReader is the slice of the credential store the guard consults.
type SessionReader interface {
	IsAuthenticated() bool
	Role() string
}

// Decision is the outcome of one transition check.
type Decision struct {
	Allowed bool
	// RedirectTo is the destination path when the transition is denied.
	RedirectTo string
}

// Guard evaluates route requirements against the cached session.
type Guard struct {
	session   SessionReader
	routes    map[string]Route
	homes     map[string]string
	loginPath string
	// defaultHome receives sessions whose role is unknown to the mapping.
	defaultHome string
}

// Config wires a Guard for one application.
type Config struct {
	Session SessionReader
	Routes  []Route
	// Homes maps a userType to its authenticated home route.
	Homes       map[string]string
	LoginPath   string
	DefaultHome string
}

// New builds a Guard from cfg.
func New(cfg Config) *Guard {
	routes := make(map[string]Route, len(cfg.Routes))
	for _, r := range cfg.Routes {
		routes[r.Path] = r
	}
	login := cfg.LoginPath
	if login == "" {
		login = "/login"
	}
	home := cfg.DefaultHome
	if home == "" {
		home = "/"
	}
	return &Guard{
		session:     cfg.Session,
		routes:      routes,
		homes:       cfg.Homes,
		loginPath:   login,
		defaultHome: home,
	}
}

// Lookup resolves a path to its declared route. Unknown paths resolve to an
// unrestricted route so the decision defaults to allow.
func (g *Guard) Lookup(path string) Route {
	if r, ok := g.routes[path]; ok {
		return r
	}
	// parameterized routes: match by prefix segments, ":" wildcards
	for _, r := range g.routes {
		if matchPattern(r.Path, path) {
			return r
		}
	}
	return Route{Path: path}
}

// Check is Lookup followed by Decide.
func (g *Guard) Check(path string) Decision {
	return g.Decide(g.Lookup(path))
}

// Decide evaluates the declared requirements in fixed order:
//  1. auth required, no session        → login
//  2. role required, session differs   → session role's home
//  3. guest-only route, session exists → session role's home
//  4. allow
func (g *Guard) Decide(route Route) Decision {
	authenticated := g.session.IsAuthenticated()

	if route.RequiresAuth && !authenticated {
		return Decision{RedirectTo: g.loginPath}
	}
	if route.Role != "" && g.session.Role() != route.Role {
		return Decision{RedirectTo: g.homeFor(g.session.Role())}
	}
	if route.RequiresGuest && authenticated {
		return Decision{RedirectTo: g.homeFor(g.session.Role())}
	}
	return Decision{Allowed: true}
}

func (g *Guard) homeFor(role string) string {
	if home, ok := g.homes[role]; ok {
		return home
	}
	return g.defaultHome
}

// matchPattern matches a declared path with ":param" segments against a
// concrete path.
func matchPattern(pattern, path string) bool {
	if !strings.Contains(pattern, ":") {
		return false
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	cs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(cs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			continue
		}
		if ps[i] != cs[i] {
			return false
		}
	}
	return true
}
