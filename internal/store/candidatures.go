package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Candidatures caches courier applications for delivery listings, including
// the partial-delivery segment flow.
type Candidatures struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Candidature
}

func NewCandidatures(api *apiclient.Client, log zerolog.Logger) *Candidatures {
	return &Candidatures{api: api, log: log}
}

// Items returns a copy of the cached collection.
func (s *Candidatures) Items() []domain.Candidature {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Candidature, len(s.items))
	copy(out, s.items)
	return out
}

// Postuler submits a courier's application for a listing.
func (s *Candidatures) Postuler(ctx context.Context, annonceID, livreurID int, message string) (*domain.Candidature, error) {
	s.begin()
	defer s.finish()

	body := map[string]any{"annonceId": annonceID, "livreurId": livreurID, "message": message}
	var created domain.Candidature
	if err := s.api.Post(ctx, "/candidatures-livraison", body, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la candidature")
	}
	s.log.Info().Int("id_annonce", annonceID).Int("id_livreur", livreurID).Msg("candidature submitted")
	return &created, nil
}

// ListByAnnonce fetches the applications received for one listing.
func (s *Candidatures) ListByAnnonce(ctx context.Context, annonceID int) ([]domain.Candidature, error) {
	s.begin()
	defer s.finish()

	var items []domain.Candidature
	if err := s.api.Get(ctx, fmt.Sprintf("/candidatures-livraison/annonce/%d", annonceID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des candidatures")
	}
	return items, nil
}

// ListByLivreur replaces the cached collection with a courier's own
// applications.
func (s *Candidatures) ListByLivreur(ctx context.Context, livreurID int) ([]domain.Candidature, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Candidature
	if err := s.api.Get(ctx, fmt.Sprintf("/candidatures-livraison/livreur/%d", livreurID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des candidatures")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Accepter accepts an application, then refetches the listing's applications
// so dependent state stays consistent (the backend refuses the concurrent
// ones as a side effect).
func (s *Candidatures) Accepter(ctx context.Context, candidatureID int, commentaire string, annonceID int) ([]domain.Candidature, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"commentaire": commentaire}
	if err := s.api.Put(ctx, fmt.Sprintf("/candidatures-livraison/%d/accepter", candidatureID), body, nil); err != nil {
		return nil, s.fail(err, "erreur lors de l'acceptation")
	}

	var items []domain.Candidature
	if err := s.api.Get(ctx, fmt.Sprintf("/candidatures-livraison/annonce/%d", annonceID), &items); err != nil {
		// the acceptance itself succeeded; surface the refetch failure
		return nil, s.fail(err, "candidature acceptée mais rechargement impossible")
	}
	return items, nil
}

// Refuser declines an application.
func (s *Candidatures) Refuser(ctx context.Context, candidatureID int, commentaire string) error {
	s.begin()
	defer s.finish()

	body := map[string]string{"commentaire": commentaire}
	if err := s.api.Put(ctx, fmt.Sprintf("/candidatures-livraison/%d/refuser", candidatureID), body, nil); err != nil {
		return s.fail(err, "erreur lors du refus")
	}
	return nil
}

// CandidaterPartielle applies for one segment of a partial delivery,
// optionally naming the preferred intermediate warehouse.
func (s *Candidatures) CandidaterPartielle(ctx context.Context, annonceID, livreurID, segment int, entrepotChoisi, message string) (*domain.Candidature, error) {
	s.begin()
	defer s.finish()

	body := map[string]any{
		"annonceId":      annonceID,
		"livreurId":      livreurID,
		"segment":        segment,
		"entrepotChoisi": entrepotChoisi,
		"messageLivreur": message,
	}
	var created domain.Candidature
	if err := s.api.Post(ctx, "/candidatures-livraison/partielle", body, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la candidature partielle")
	}
	return &created, nil
}

// EntrepotsDisponibles lists the warehouses a partial segment can route
// through.
func (s *Candidatures) EntrepotsDisponibles(ctx context.Context) ([]domain.Entrepot, error) {
	s.begin()
	defer s.finish()

	var items []domain.Entrepot
	if err := s.api.Get(ctx, "/candidatures-livraison/entrepots", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des entrepôts")
	}
	return items, nil
}

// ParSegment groups a partial listing's applications by delivery segment.
func (s *Candidatures) ParSegment(ctx context.Context, annonceID int) (*domain.SegmentCandidatures, error) {
	s.begin()
	defer s.finish()

	var grouped domain.SegmentCandidatures
	if err := s.api.Get(ctx, fmt.Sprintf("/candidatures-livraison/annonce/%d/segments", annonceID), &grouped); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des candidatures par segment")
	}
	return &grouped, nil
}

// AccepterPartielle accepts a segment application.
func (s *Candidatures) AccepterPartielle(ctx context.Context, candidatureID int, commentaire string) error {
	s.begin()
	defer s.finish()

	body := map[string]string{"commentaire": commentaire}
	if err := s.api.Put(ctx, fmt.Sprintf("/candidatures-livraison/%d/accepter-partielle", candidatureID), body, nil); err != nil {
		return s.fail(err, "erreur lors de l'acceptation de la candidature partielle")
	}
	return nil
}
