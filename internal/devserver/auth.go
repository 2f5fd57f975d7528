package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

const tokenTTL = 24 * time.Hour

// AuthService implements registration and login over the user repository.
type AuthService struct {
	repo      *UserRepository
	jwtSecret string
}

func NewAuthService(repo *UserRepository, jwtSecret string) *AuthService {
	return &AuthService{repo: repo, jwtSecret: jwtSecret}
}

func (s *AuthService) Register(ctx context.Context, input *domain.RegisterInput) (*domain.Utilisateur, error) {
	if !domain.ValidRole(input.UserType) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.MotDePasse), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.Utilisateur{
		Prenom:     input.Prenom,
		Nom:        input.Nom,
		Email:      input.Email,
		UserType:   input.UserType,
		Telephone:  input.Telephone,
		Adresse:    input.Adresse,
		Ville:      input.Ville,
		CodePostal: input.CodePostal,
	}
	return s.repo.Create(ctx, u, string(hash))
}

func (s *AuthService) Login(ctx context.Context, email, motDePasse string) (string, *domain.Utilisateur, error) {
	if email == "" || motDePasse == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, hash, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// same answer for unknown account and wrong password
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(motDePasse)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.Utilisateur) (string, error) {
	claims := jwt.MapClaims{
		"email":         user.Email,
		"userType":      user.UserType,
		"idUtilisateur": user.ID,
		"exp":           time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

type AuthHandler struct {
	service *AuthService
}

func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

// authResponse flattens the profile fields next to the token, the shape the
// client adopts on login and register.
type authResponse struct {
	Token string `json:"token"`
	domain.Utilisateur
}

// Register creates an account and answers like a login.
func (h *AuthHandler) Register(c echo.Context) error {
	var req domain.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	token, err := h.service.generateToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, Utilisateur: *user})
}

// Login authenticates and returns the token plus flattened profile.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.MotDePasse)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, Utilisateur: *user})
}

// ProfileHandler serves /users/profile.
type ProfileHandler struct {
	repo *UserRepository
}

func NewProfileHandler(repo *UserRepository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	// a profile belongs to its owner
	if caller, _ := c.Get("idUtilisateur").(int); caller != id {
		return domain.ErrForbidden
	}

	var changes domain.Utilisateur
	if err := c.Bind(&changes); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}
	updated, err := h.repo.Update(c.Request().Context(), id, &changes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    updated,
		"message": "profil mis à jour",
	})
}
