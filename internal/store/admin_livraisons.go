package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// AdminLivraisons supervises every delivery on the platform.
type AdminLivraisons struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Livraison
}

func NewAdminLivraisons(api *apiclient.Client, log zerolog.Logger) *AdminLivraisons {
	return &AdminLivraisons{api: api, log: log}
}

func (s *AdminLivraisons) Items() []domain.Livraison {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Livraison, len(s.items))
	copy(out, s.items)
	return out
}

// List replaces the cached collection, optionally filtered by status.
func (s *AdminLivraisons) List(ctx context.Context, statut string) ([]domain.Livraison, error) {
	op := s.begin()
	defer s.finish()

	path := "/admin/livraisons"
	if statut != "" {
		path += "?statut=" + url.QueryEscape(statut)
	}
	var items []domain.Livraison
	if err := s.api.Get(ctx, path, &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des livraisons")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Get fetches one delivery.
func (s *AdminLivraisons) Get(ctx context.Context, id int) (*domain.Livraison, error) {
	s.begin()
	defer s.finish()

	var l domain.Livraison
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/livraisons/%d", id), &l); err != nil {
		return nil, s.fail(err, "erreur lors du chargement de la livraison")
	}
	return &l, nil
}

// UpdateStatut forces a delivery into a status, replacing the cached entity
// by identifier.
func (s *AdminLivraisons) UpdateStatut(ctx context.Context, id int, statut string) (*domain.Livraison, error) {
	op := s.begin()
	defer s.finish()

	body := map[string]string{"statut": statut}
	var updated domain.Livraison
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/livraisons/%d/statut", id), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour du statut")
	}
	s.ifLatest(op, func() {
		for i := range s.items {
			if s.items[i].ID == updated.ID {
				s.items[i] = updated
				return
			}
		}
	})
	s.log.Info().Int("id_livraison", id).Str("statut", statut).Msg("delivery status forced")
	return &updated, nil
}

// Annuler cancels a delivery, replacing the cached entity.
func (s *AdminLivraisons) Annuler(ctx context.Context, id int, motif string) (*domain.Livraison, error) {
	op := s.begin()
	defer s.finish()

	body := map[string]string{"motif": motif}
	var updated domain.Livraison
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/livraisons/%d/annuler", id), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de l'annulation de la livraison")
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

// Stats fetches the deliveries dashboard aggregate.
func (s *AdminLivraisons) Stats(ctx context.Context) (*domain.LivraisonStats, error) {
	s.begin()
	defer s.finish()

	var st domain.LivraisonStats
	if err := s.api.Get(ctx, "/admin/livraisons/stats", &st); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des statistiques des livraisons")
	}
	return &st, nil
}
