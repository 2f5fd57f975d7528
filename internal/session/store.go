// Package session implements the credential store shared by every EcoDeli
// application: the pairing of a bearer token and the profile it was issued
// to, held in memory and mirrored to durable storage. Domain stores may read
// the profile but never mutate it; the session is the only writer.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
	"github.com/ecodeli/ecodeli-go/internal/core/ports"
)

// Options parameterizes a Store for one application.
type Options struct {
	Storage ports.SessionStorage
	Logger  zerolog.Logger
	// RequiredRole, when set, rejects logins whose issued profile carries a
	// different userType. This is a client-side convenience on already
	// issued credentials, not a security boundary; the backend enforces
	// the real check.
	RequiredRole string
	// ForceRole, when set, overwrites the userType field of every
	// registration payload before it is sent (the admin console registers
	// ADMIN accounts only).
	ForceRole string
}

// Store is the credential store. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	token   string
	user    *domain.Utilisateur
	client  *apiclient.Client
	storage ports.SessionStorage
	log     zerolog.Logger
	opts    Options
}

var validate = validator.New()

// New builds a Store. AttachClient must be called before Login/Register.
func New(opts Options) *Store {
	return &Store{storage: opts.Storage, log: opts.Logger, opts: opts}
}

// AttachClient wires the facade the store authenticates through. Split from
// New because the facade itself needs the store's Token and Invalidate
// callbacks at construction time.
func (s *Store) AttachClient(c *apiclient.Client) { s.client = c }

// authResponse is the backend login/register answer: the token plus the
// profile fields flattened alongside it.
type authResponse struct {
	Token string `json:"token"`
	domain.Utilisateur
}

type loginRequest struct {
	Email      string `json:"email"`
	MotDePasse string `json:"motDePasse"`
}

// Login authenticates against POST /auth/login. On success the token and
// profile are set together, persisted, and the facade picks the token up on
// the next request. On any failure the previous session state is untouched.
func (s *Store) Login(ctx context.Context, email, motDePasse string) (*domain.Utilisateur, error) {
	if email == "" || motDePasse == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var resp authResponse
	if err := s.client.Post(ctx, "/auth/login", loginRequest{Email: email, MotDePasse: motDePasse}, &resp); err != nil {
		return nil, err
	}

	return s.adopt(&resp)
}

// Register creates an account via POST /auth/register; the backend answers
// with the same token+profile shape as login.
func (s *Store) Register(ctx context.Context, input domain.RegisterInput) (*domain.Utilisateur, error) {
	if s.opts.ForceRole != "" {
		input.UserType = s.opts.ForceRole
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if !domain.ValidRole(input.UserType) {
		return nil, domain.ErrInvalidCredentials
	}

	var resp authResponse
	if err := s.client.Post(ctx, "/auth/register", input, &resp); err != nil {
		return nil, err
	}

	return s.adopt(&resp)
}

// adopt validates and installs a freshly issued session.
func (s *Store) adopt(resp *authResponse) (*domain.Utilisateur, error) {
	if resp.Token == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user := resp.Utilisateur
	if s.opts.RequiredRole != "" && user.UserType != s.opts.RequiredRole {
		s.log.Warn().Str("user_type", user.UserType).Msg("login rejected: role not allowed for this application")
		return nil, domain.ErrRoleNotAllowed
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = &user
	s.mu.Unlock()

	s.persist(resp.Token, &user)
	s.log.Info().Str("user_type", user.UserType).Msg("session established")

	u := user
	return &u, nil
}

// Logout clears in-memory and durable state synchronously. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	if had {
		s.log.Info().Msg("session cleared")
	}
}

// Invalidate is the facade's OnUnauthorized hook. The token comparison makes
// the clear happen at most once per issued token even when several
// concurrent requests each receive a 401.
func (s *Store) Invalidate() {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	s.log.Info().Msg("session invalidated by backend")
}

// Restore hydrates the session from durable storage at startup. The token is
// accepted optimistically; a stale credential surfaces as a 401 on the first
// request and clears the session then.
func (s *Store) Restore() error {
	token, raw, ok, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil
	}

	var user domain.Utilisateur
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn().Err(err).Msg("discarding unreadable persisted profile")
		_ = s.storage.Clear()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	s.log.Debug().Str("user_type", user.UserType).Msg("session restored from storage")
	return nil
}

// UpdateProfile replaces the cached profile after an explicit profile update
// and re-persists it. The token is untouched.
func (s *Store) UpdateProfile(updated *domain.Utilisateur) error {
	if updated == nil {
		return nil
	}
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return domain.ErrNotAuthenticated
	}
	u := *updated
	s.user = &u
	token := s.token
	s.mu.Unlock()

	s.persist(token, &u)
	return nil
}

func (s *Store) persist(token string, user *domain.Utilisateur) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to serialize profile")
		return
	}
	if err := s.storage.Save(token, raw); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
}

// Token returns the current bearer token ("" when logged out). Handed to the
// facade as its TokenFunc.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() bool { return s.Token() != "" }

// User returns a copy of the cached profile, or nil.
func (s *Store) User() *domain.Utilisateur {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Role returns the session's userType ("" when logged out).
func (s *Store) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.UserType
}

// DisplayName renders "prenom nom" for the application header.
func (s *Store) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.DisplayName()
}

// HasRole reports whether the session carries role r.
func (s *Store) HasRole(r string) bool { return s.Role() == r }
