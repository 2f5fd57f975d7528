package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// AdminUsers manages the back-office user directory.
type AdminUsers struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Utilisateur
}

func NewAdminUsers(api *apiclient.Client, log zerolog.Logger) *AdminUsers {
	return &AdminUsers{api: api, log: log}
}

func (s *AdminUsers) Items() []domain.Utilisateur {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Utilisateur, len(s.items))
	copy(out, s.items)
	return out
}

// List replaces the cached directory with every account.
func (s *AdminUsers) List(ctx context.Context) ([]domain.Utilisateur, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Utilisateur
	if err := s.api.Get(ctx, "/admin/users", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des utilisateurs")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Get fetches one account.
func (s *AdminUsers) Get(ctx context.Context, id int) (*domain.Utilisateur, error) {
	s.begin()
	defer s.finish()

	var u domain.Utilisateur
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/users/%d", id), &u); err != nil {
		return nil, s.fail(err, "erreur lors du chargement de l'utilisateur")
	}
	return &u, nil
}

// Create registers an account through the regular registration endpoint,
// then refetches the directory so the new entry carries its backend
// identifier.
func (s *AdminUsers) Create(ctx context.Context, input *domain.RegisterInput) ([]domain.Utilisateur, error) {
	s.begin()
	defer s.finish()

	if err := s.api.Post(ctx, "/auth/register", input, nil); err != nil {
		return nil, s.fail(err, "erreur lors de la création de l'utilisateur")
	}

	var items []domain.Utilisateur
	if err := s.api.Get(ctx, "/admin/users", &items); err != nil {
		return nil, s.fail(err, "utilisateur créé mais rechargement impossible")
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.log.Info().Str("email", input.Email).Str("role", input.UserType).Msg("account created")
	return items, nil
}

// Update edits an account, replacing the cached entity by identifier.
func (s *AdminUsers) Update(ctx context.Context, id int, changes *domain.Utilisateur) (*domain.Utilisateur, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Utilisateur
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/users/%d", id), changes, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour de l'utilisateur")
	}
	s.ifLatest(op, func() {
		for i := range s.items {
			if s.items[i].ID == updated.ID {
				s.items[i] = updated
				return
			}
		}
	})
	return &updated, nil
}

// Delete removes an account and filters it out of the cache.
func (s *AdminUsers) Delete(ctx context.Context, id int) error {
	op := s.begin()
	defer s.finish()

	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/users/%d", id), nil); err != nil {
		return s.fail(err, "erreur lors de la suppression de l'utilisateur")
	}
	s.ifLatest(op, func() {
		kept := s.items[:0]
		for _, u := range s.items {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		s.items = kept
	})
	s.log.Info().Int("id_utilisateur", id).Msg("account deleted")
	return nil
}

// Stats fetches the users dashboard aggregate. When the backend has no
// stats endpoint yet, the aggregate is computed from the cached directory.
func (s *AdminUsers) Stats(ctx context.Context) (*domain.UserStats, error) {
	s.begin()
	defer s.finish()

	var st domain.UserStats
	if err := s.api.Get(ctx, "/admin/users/stats", &st); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		local := domain.UserStats{Total: len(s.items)}
		for _, u := range s.items {
			switch u.UserType {
			case domain.RoleClient:
				local.Clients++
			case domain.RoleLivreur:
				local.Livreurs++
			case domain.RolePrestataire:
				local.Prestataires++
			case domain.RoleCommercant:
				local.Commercants++
			case domain.RoleAdmin:
				local.Admins++
			}
		}
		s.lastErr = ""
		return &local, nil
	}
	return &st, nil
}
