package store

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// PrestataireStore drives the provider self-service surface: category
// validations, supporting documents, available requests and missions.
type PrestataireStore struct {
	requestState
	api      *apiclient.Client
	log      zerolog.Logger
	missions []domain.Mission
}

func NewPrestataire(api *apiclient.Client, log zerolog.Logger) *PrestataireStore {
	return &PrestataireStore{api: api, log: log}
}

func (s *PrestataireStore) Missions() []domain.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Mission, len(s.missions))
	copy(out, s.missions)
	return out
}

// Profil fetches the provider profile bound to a user account.
func (s *PrestataireStore) Profil(ctx context.Context, userID int) (*domain.Prestataire, error) {
	s.begin()
	defer s.finish()

	var p domain.Prestataire
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/utilisateur/%d", userID), &p); err != nil {
		return nil, s.fail(err, "erreur lors du chargement du profil prestataire")
	}
	return &p, nil
}

// Validations lists the provider's per-category validation states.
func (s *PrestataireStore) Validations(ctx context.Context, prestataireID int) ([]domain.CategorieValidation, error) {
	s.begin()
	defer s.finish()

	var items []domain.CategorieValidation
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/%d/validations", prestataireID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des validations")
	}
	return items, nil
}

// DemanderValidation requests validation for a service category.
func (s *PrestataireStore) DemanderValidation(ctx context.Context, prestataireID int, categorie string) (*domain.CategorieValidation, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"categorie": categorie}
	var created domain.CategorieValidation
	if err := s.api.Post(ctx, fmt.Sprintf("/prestataires/%d/validations", prestataireID), body, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la demande de validation")
	}
	return &created, nil
}

// Justificatifs lists the provider's uploaded documents.
func (s *PrestataireStore) Justificatifs(ctx context.Context, prestataireID int) ([]domain.Justificatif, error) {
	s.begin()
	defer s.finish()

	var items []domain.Justificatif
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/%d/justificatifs", prestataireID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des justificatifs")
	}
	return items, nil
}

// UploadJustificatif sends a supporting document as multipart form data.
func (s *PrestataireStore) UploadJustificatif(ctx context.Context, prestataireID int, typeJustificatif, filename string, file io.Reader) (*domain.Justificatif, error) {
	s.begin()
	defer s.finish()

	fields := map[string]string{"typeJustificatif": typeJustificatif}
	var created domain.Justificatif
	err := s.api.PostMultipart(ctx, fmt.Sprintf("/prestataires/%d/justificatifs", prestataireID),
		"file", filename, file, fields, &created)
	if err != nil {
		return nil, s.fail(err, "erreur lors de l'envoi du justificatif")
	}
	s.log.Info().Int("id_prestataire", prestataireID).Str("type", typeJustificatif).Msg("justificatif uploaded")
	return &created, nil
}

// DemandesDisponibles lists the open service requests matching the
// provider's validated categories.
func (s *PrestataireStore) DemandesDisponibles(ctx context.Context, prestataireID int) ([]domain.DemandeService, error) {
	s.begin()
	defer s.finish()

	var items []domain.DemandeService
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/%d/demandes-disponibles", prestataireID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des demandes disponibles")
	}
	return items, nil
}

// Candidater applies for a service request.
func (s *PrestataireStore) Candidater(ctx context.Context, prestataireID, demandeID int, message string) error {
	s.begin()
	defer s.finish()

	body := map[string]any{"demandeId": demandeID, "message": message}
	if err := s.api.Post(ctx, fmt.Sprintf("/prestataires/%d/candidatures", prestataireID), body, nil); err != nil {
		return s.fail(err, "erreur lors de la candidature")
	}
	return nil
}

// ListMissions replaces the cached mission collection.
func (s *PrestataireStore) ListMissions(ctx context.Context, prestataireID int) ([]domain.Mission, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Mission
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/%d/missions", prestataireID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des missions")
	}
	s.ifLatest(op, func() { s.missions = items })
	return items, nil
}

// TerminerMission marks a mission complete, replacing it in the cache.
func (s *PrestataireStore) TerminerMission(ctx context.Context, missionID int) (*domain.Mission, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Mission
	if err := s.api.Put(ctx, fmt.Sprintf("/missions/%d/terminer", missionID), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la finalisation de la mission")
	}
	s.ifLatest(op, func() {
		for i := range s.missions {
			if s.missions[i].ID == updated.ID {
				s.missions[i] = updated
				return
			}
		}
	})
	return &updated, nil
}

// MesCandidatures lists the provider's own applications for service requests.
func (s *PrestataireStore) MesCandidatures(ctx context.Context, prestataireID int) ([]domain.CandidaturePrestation, error) {
	s.begin()
	defer s.finish()

	var items []domain.CandidaturePrestation
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/%d/candidatures", prestataireID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des candidatures")
	}
	return items, nil
}

// SupprimerJustificatif removes a supporting document.
func (s *PrestataireStore) SupprimerJustificatif(ctx context.Context, prestataireID, justificatifID int) error {
	s.begin()
	defer s.finish()

	path := fmt.Sprintf("/prestataires/%d/justificatifs/%d", prestataireID, justificatifID)
	if err := s.api.Delete(ctx, path, nil); err != nil {
		return s.fail(err, "erreur lors de la suppression du justificatif")
	}
	return nil
}

// DemarrerMission moves a mission to EN_COURS, replacing the cached entity.
func (s *PrestataireStore) DemarrerMission(ctx context.Context, missionID int) (*domain.Mission, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Mission
	if err := s.api.Put(ctx, fmt.Sprintf("/missions/%d/commencer", missionID), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors du démarrage de la mission")
	}
	s.ifLatest(op, func() {
		for i := range s.missions {
			if s.missions[i].ID == updated.ID {
				s.missions[i] = updated
				return
			}
		}
	})
	return &updated, nil
}

// Statistiques fetches the provider's dashboard aggregate.
func (s *PrestataireStore) Statistiques(ctx context.Context, prestataireID int) (*domain.StatistiquesPrestataire, error) {
	s.begin()
	defer s.finish()

	var stats domain.StatistiquesPrestataire
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/%d/statistiques", prestataireID), &stats); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des statistiques")
	}
	return &stats, nil
}

// Evaluations lists the ratings clients left on the provider's missions.
func (s *PrestataireStore) Evaluations(ctx context.Context, prestataireID int) ([]domain.Evaluation, error) {
	s.begin()
	defer s.finish()

	var items []domain.Evaluation
	if err := s.api.Get(ctx, fmt.Sprintf("/prestataires/%d/evaluations", prestataireID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des évaluations")
	}
	return items, nil
}
