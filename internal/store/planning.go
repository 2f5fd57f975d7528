package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Planning manages a provider's availability calendar.
type Planning struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Disponibilite
}

func NewPlanning(api *apiclient.Client, log zerolog.Logger) *Planning {
	return &Planning{api: api, log: log}
}

func (s *Planning) Items() []domain.Disponibilite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Disponibilite, len(s.items))
	copy(out, s.items)
	return out
}

// List replaces the cached collection with the provider's slots. Start and
// end bound the range when non-empty (ISO dates).
func (s *Planning) List(ctx context.Context, prestataireID int, start, end string) ([]domain.Disponibilite, error) {
	op := s.begin()
	defer s.finish()

	path := fmt.Sprintf("/planning/prestataire/%d", prestataireID)
	if start != "" || end != "" {
		q := url.Values{}
		if start != "" {
			q.Set("debut", start)
		}
		if end != "" {
			q.Set("fin", end)
		}
		path += "?" + q.Encode()
	}
	var items []domain.Disponibilite
	if err := s.api.Get(ctx, path, &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement du planning")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Create adds an availability slot and prepends it to the cache.
func (s *Planning) Create(ctx context.Context, slot *domain.Disponibilite) (*domain.Disponibilite, error) {
	op := s.begin()
	defer s.finish()

	var created domain.Disponibilite
	if err := s.api.Post(ctx, "/planning/disponibilites", slot, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la création du créneau")
	}
	s.ifLatest(op, func() {
		s.items = append([]domain.Disponibilite{created}, s.items...)
	})
	return &created, nil
}

// Update edits a slot, replacing the cached entity by identifier.
func (s *Planning) Update(ctx context.Context, id int, slot *domain.Disponibilite) (*domain.Disponibilite, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Disponibilite
	if err := s.api.Put(ctx, fmt.Sprintf("/planning/disponibilites/%d", id), slot, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour du créneau")
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

// Delete removes a slot and filters it out of the cache.
func (s *Planning) Delete(ctx context.Context, id int) error {
	op := s.begin()
	defer s.finish()

	if err := s.api.Delete(ctx, fmt.Sprintf("/planning/disponibilites/%d", id), nil); err != nil {
		return s.fail(err, "erreur lors de la suppression du créneau")
	}
	s.ifLatest(op, func() {
		kept := s.items[:0]
		for _, d := range s.items {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		s.items = kept
	})
	return nil
}

// Stats fetches the planning dashboard aggregate.
func (s *Planning) Stats(ctx context.Context, prestataireID int) (*domain.PlanningStats, error) {
	s.begin()
	defer s.finish()

	var st domain.PlanningStats
	if err := s.api.Get(ctx, fmt.Sprintf("/planning/prestataire/%d/stats", prestataireID), &st); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des statistiques du planning")
	}
	return &st, nil
}

// ProchainsCreneaux lists the provider's next open slots.
func (s *Planning) ProchainsCreneaux(ctx context.Context, prestataireID, limit int) ([]domain.Disponibilite, error) {
	s.begin()
	defer s.finish()

	var items []domain.Disponibilite
	path := fmt.Sprintf("/planning/prestataire/%d/prochains-creneaux?limit=%d", prestataireID, limit)
	if err := s.api.Get(ctx, path, &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des prochains créneaux")
	}
	return items, nil
}

// Types lists the slot types the backend accepts.
func (s *Planning) Types(ctx context.Context) ([]string, error) {
	s.begin()
	defer s.finish()

	var types []string
	if err := s.api.Get(ctx, "/planning/types", &types); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des types de créneaux")
	}
	return types, nil
}

// Statuts lists the slot statuses the backend accepts.
func (s *Planning) Statuts(ctx context.Context) ([]string, error) {
	s.begin()
	defer s.finish()

	var statuts []string
	if err := s.api.Get(ctx, "/planning/statuts", &statuts); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des statuts de créneaux")
	}
	return statuts, nil
}
