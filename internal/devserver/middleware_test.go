package devserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userType string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email":         "sophie@ecodeli.fr",
		"userType":      userType,
		"idUtilisateur": 12,
		"exp":           time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func protectedEcho() *echo.Echo {
	e := newEcho()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"userType":      c.Get("userType"),
			"idUtilisateur": c.Get("idUtilisateur"),
		})
	}, Auth(testSecret))
	e.GET("/livreur-only", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Auth(testSecret), RBAC(domain.RoleLivreur))
	return e
}

func get(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	e := protectedEcho()

	if rec := get(e, "/protected", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", rec.Code)
	}
	if rec := get(e, "/protected", "pas-un-jeton"); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token = %d, want 401", rec.Code)
	}

	otherSecret, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("autre-secret"))
	if rec := get(e, "/protected", otherSecret); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret = %d, want 401", rec.Code)
	}
}

func TestAuthInjectsClaims(t *testing.T) {
	e := protectedEcho()
	rec := get(e, "/protected", signToken(t, domain.RoleClient))
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !containsAll(body, `"userType":"CLIENT"`, `"idUtilisateur":12`) {
		t.Errorf("claims not injected: %s", body)
	}
}

func TestRBACKeyedOnUserType(t *testing.T) {
	e := protectedEcho()

	if rec := get(e, "/livreur-only", signToken(t, domain.RoleLivreur)); rec.Code != http.StatusOK {
		t.Errorf("LIVREUR = %d, want 200", rec.Code)
	}
	if rec := get(e, "/livreur-only", signToken(t, domain.RoleClient)); rec.Code != http.StatusForbidden {
		t.Errorf("CLIENT = %d, want 403", rec.Code)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
