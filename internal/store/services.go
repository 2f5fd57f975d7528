package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Services caches a client's service requests (cleaning, gardening and the
// like) handled by providers.
type Services struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.DemandeService
}

func NewServices(api *apiclient.Client, log zerolog.Logger) *Services {
	return &Services{api: api, log: log}
}

func (s *Services) Items() []domain.DemandeService {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DemandeService, len(s.items))
	copy(out, s.items)
	return out
}

// ListByClient replaces the cached collection with a client's requests.
func (s *Services) ListByClient(ctx context.Context, clientID int) ([]domain.DemandeService, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.DemandeService
	if err := s.api.Get(ctx, fmt.Sprintf("/demandes-service/client/%d", clientID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des demandes de service")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Get fetches one request.
func (s *Services) Get(ctx context.Context, id int) (*domain.DemandeService, error) {
	s.begin()
	defer s.finish()

	var d domain.DemandeService
	if err := s.api.Get(ctx, fmt.Sprintf("/demandes-service/%d", id), &d); err != nil {
		return nil, s.fail(err, "erreur lors du chargement de la demande")
	}
	return &d, nil
}

// Create submits a new request and prepends it to the cached collection.
func (s *Services) Create(ctx context.Context, demande *domain.DemandeService) (*domain.DemandeService, error) {
	op := s.begin()
	defer s.finish()

	var created domain.DemandeService
	if err := s.api.Post(ctx, "/demandes-service", demande, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la création de la demande")
	}
	s.ifLatest(op, func() {
		s.items = append([]domain.DemandeService{created}, s.items...)
	})
	s.log.Info().Int("id_demande", created.ID).Msg("service request created")
	return &created, nil
}

// Update submits changes to a request, replacing the cached entity.
func (s *Services) Update(ctx context.Context, id int, changes *domain.DemandeService) (*domain.DemandeService, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.DemandeService
	if err := s.api.Put(ctx, fmt.Sprintf("/demandes-service/%d", id), changes, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour de la demande")
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

// Delete removes a request and filters it out of the cache.
func (s *Services) Delete(ctx context.Context, id int) error {
	op := s.begin()
	defer s.finish()

	if err := s.api.Delete(ctx, fmt.Sprintf("/demandes-service/%d", id), nil); err != nil {
		return s.fail(err, "erreur lors de la suppression de la demande")
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

// Cancel marks a request as cancelled and replaces the cached entity.
func (s *Services) Cancel(ctx context.Context, id int) (*domain.DemandeService, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.DemandeService
	if err := s.api.Put(ctx, fmt.Sprintf("/demandes-service/%d/annuler", id), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de l'annulation de la demande")
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

// Categories lists the service categories offered on the platform.
func (s *Services) Categories(ctx context.Context) ([]domain.ServiceCategory, error) {
	s.begin()
	defer s.finish()

	var cats []domain.ServiceCategory
	if err := s.api.Get(ctx, "/demandes-service/categories", &cats); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des catégories")
	}
	return cats, nil
}
