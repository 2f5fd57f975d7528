package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// AdminPrestataires reviews provider profiles: category validations, hourly
// rates and supporting documents.
type AdminPrestataires struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Prestataire
}

func NewAdminPrestataires(api *apiclient.Client, log zerolog.Logger) *AdminPrestataires {
	return &AdminPrestataires{api: api, log: log}
}

func (s *AdminPrestataires) Items() []domain.Prestataire {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Prestataire, len(s.items))
	copy(out, s.items)
	return out
}

// List replaces the cached collection with every provider.
func (s *AdminPrestataires) List(ctx context.Context) ([]domain.Prestataire, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Prestataire
	if err := s.api.Get(ctx, "/admin/prestataires", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des prestataires")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Get fetches one provider.
func (s *AdminPrestataires) Get(ctx context.Context, prestataireID int) (*domain.Prestataire, error) {
	s.begin()
	defer s.finish()

	var p domain.Prestataire
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/prestataires/%d", prestataireID), &p); err != nil {
		return nil, s.fail(err, "erreur lors du chargement du prestataire")
	}
	return &p, nil
}

// Rechercher queries providers by free text.
func (s *AdminPrestataires) Rechercher(ctx context.Context, query string) ([]domain.Prestataire, error) {
	s.begin()
	defer s.finish()

	var items []domain.Prestataire
	path := "/admin/prestataires/recherche?q=" + url.QueryEscape(query)
	if err := s.api.Get(ctx, path, &items); err != nil {
		return nil, s.fail(err, "erreur lors de la recherche de prestataires")
	}
	return items, nil
}

// ValidationsEnAttente lists the category validations awaiting review.
func (s *AdminPrestataires) ValidationsEnAttente(ctx context.Context) ([]domain.CategorieValidation, error) {
	s.begin()
	defer s.finish()

	var items []domain.CategorieValidation
	if err := s.api.Get(ctx, "/admin/prestataires/validations/en-attente", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des validations en attente")
	}
	return items, nil
}

// ValiderCategorie approves a provider for a category and fixes the hourly
// rate the platform bills at.
func (s *AdminPrestataires) ValiderCategorie(ctx context.Context, validationID int, tarifHoraire float64, commentaire string) (*domain.CategorieValidation, error) {
	s.begin()
	defer s.finish()

	body := map[string]any{"tarifHoraire": tarifHoraire, "commentaire": commentaire}
	var updated domain.CategorieValidation
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/prestataires/validations/%d/valider", validationID), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la validation de la catégorie")
	}
	s.log.Info().Int("id_validation", validationID).Float64("tarif", tarifHoraire).Msg("category validated")
	return &updated, nil
}

// RefuserCategorie declines a provider's category validation.
func (s *AdminPrestataires) RefuserCategorie(ctx context.Context, validationID int, commentaire string) (*domain.CategorieValidation, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"commentaire": commentaire}
	var updated domain.CategorieValidation
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/prestataires/validations/%d/refuser", validationID), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors du refus de la catégorie")
	}
	return &updated, nil
}

// UpdateTarif adjusts a provider's hourly rate.
func (s *AdminPrestataires) UpdateTarif(ctx context.Context, prestataireID int, tarifHoraire float64) (*domain.Prestataire, error) {
	op := s.begin()
	defer s.finish()

	body := map[string]any{"tarifHoraire": tarifHoraire}
	var updated domain.Prestataire
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/prestataires/%d/tarif", prestataireID), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour du tarif")
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

// Justificatifs lists a provider's uploaded documents for review.
func (s *AdminPrestataires) Justificatifs(ctx context.Context, prestataireID int) ([]domain.Justificatif, error) {
	s.begin()
	defer s.finish()

	var items []domain.Justificatif
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/prestataires/%d/justificatifs", prestataireID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des justificatifs")
	}
	return items, nil
}

// ValiderJustificatif approves one supporting document.
func (s *AdminPrestataires) ValiderJustificatif(ctx context.Context, justificatifID int) (*domain.Justificatif, error) {
	s.begin()
	defer s.finish()

	var updated domain.Justificatif
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/justificatifs/%d/valider", justificatifID), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la validation du justificatif")
	}
	return &updated, nil
}

// RefuserJustificatif declines one supporting document with a reason.
func (s *AdminPrestataires) RefuserJustificatif(ctx context.Context, justificatifID int, commentaire string) (*domain.Justificatif, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"commentaire": commentaire}
	var updated domain.Justificatif
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/justificatifs/%d/refuser", justificatifID), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors du refus du justificatif")
	}
	return &updated, nil
}

// Stats fetches the providers dashboard aggregate.
func (s *AdminPrestataires) Stats(ctx context.Context) (*domain.PrestataireStats, error) {
	s.begin()
	defer s.finish()

	var st domain.PrestataireStats
	if err := s.api.Get(ctx, "/admin/prestataires/stats", &st); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des statistiques des prestataires")
	}
	return &st, nil
}
