package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Users fetches and updates profiles outside the session's own lifecycle.
type Users struct {
	requestState
	api *apiclient.Client
	log zerolog.Logger
}

func NewUsers(api *apiclient.Client, log zerolog.Logger) *Users {
	return &Users{api: api, log: log}
}

// GetProfile fetches a user's profile.
func (s *Users) GetProfile(ctx context.Context, id int) (*domain.Utilisateur, error) {
	s.begin()
	defer s.finish()

	var u domain.Utilisateur
	if err := s.api.Get(ctx, fmt.Sprintf("/users/profile/%d", id), &u); err != nil {
		return nil, s.fail(err, "erreur lors du chargement du profil")
	}
	return &u, nil
}

type profileUpdateResponse struct {
	Success bool                `json:"success"`
	User    *domain.Utilisateur `json:"user"`
	Message string              `json:"message"`
}

// UpdateProfile submits profile changes. The backend wraps the updated user
// in a success envelope.
func (s *Users) UpdateProfile(ctx context.Context, id int, changes *domain.Utilisateur) (*domain.Utilisateur, error) {
	s.begin()
	defer s.finish()

	var res profileUpdateResponse
	if err := s.api.Put(ctx, fmt.Sprintf("/users/profile/%d", id), changes, &res); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour du profil")
	}
	if !res.Success || res.User == nil {
		msg := res.Message
		if msg == "" {
			msg = "erreur lors de la mise à jour du profil"
		}
		return nil, s.fail(fmt.Errorf("profile update rejected: %s", msg), msg)
	}
	s.log.Info().Int("id_utilisateur", id).Msg("profile updated")
	return res.User, nil
}
