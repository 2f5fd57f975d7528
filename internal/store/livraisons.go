package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Livraisons caches a courier's deliveries and drives their lifecycle.
type Livraisons struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Livraison
}

func NewLivraisons(api *apiclient.Client, log zerolog.Logger) *Livraisons {
	return &Livraisons{api: api, log: log}
}

func (s *Livraisons) Items() []domain.Livraison {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Livraison, len(s.items))
	copy(out, s.items)
	return out
}

// ListByLivreur replaces the cached collection with the courier's deliveries.
func (s *Livraisons) ListByLivreur(ctx context.Context, livreurID int) ([]domain.Livraison, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Livraison
	if err := s.api.Get(ctx, fmt.Sprintf("/livraisons/livreur/%d", livreurID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des livraisons")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Get fetches one delivery.
func (s *Livraisons) Get(ctx context.Context, id int) (*domain.Livraison, error) {
	s.begin()
	defer s.finish()

	var l domain.Livraison
	if err := s.api.Get(ctx, fmt.Sprintf("/livraisons/%d", id), &l); err != nil {
		return nil, s.fail(err, "erreur lors du chargement de la livraison")
	}
	return &l, nil
}

// Start marks a delivery as picked up. The updated entity replaces its cached
// counterpart by identifier.
func (s *Livraisons) Start(ctx context.Context, id int) (*domain.Livraison, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Livraison
	if err := s.api.Put(ctx, fmt.Sprintf("/livraisons/%d/commencer", id), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors du démarrage de la livraison")
	}
	s.ifLatest(op, func() { s.replace(updated) })
	return &updated, nil
}

// Complete marks a delivery as delivered.
func (s *Livraisons) Complete(ctx context.Context, id int) (*domain.Livraison, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Livraison
	if err := s.api.Put(ctx, fmt.Sprintf("/livraisons/%d/terminer", id), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la finalisation de la livraison")
	}
	s.ifLatest(op, func() { s.replace(updated) })
	return &updated, nil
}

// ValidateOTP submits the recipient's one-time code for a delivery.
func (s *Livraisons) ValidateOTP(ctx context.Context, id int, code string) (*domain.OTPResult, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"otp": code}
	var res domain.OTPResult
	if err := s.api.Post(ctx, fmt.Sprintf("/livraisons/%d/valider-otp", id), body, &res); err != nil {
		return nil, s.fail(err, "erreur lors de la validation du code")
	}
	return &res, nil
}

// replace swaps the entity carrying the same identifier. Callers hold the
// state through ifLatest.
func (s *Livraisons) replace(updated domain.Livraison) {
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = updated
			return
		}
	}
}
