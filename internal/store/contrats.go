package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Contrats covers the merchant side of contract management plus the admin
// template and lifecycle operations.
type Contrats struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Contrat
}

func NewContrats(api *apiclient.Client, log zerolog.Logger) *Contrats {
	return &Contrats{api: api, log: log}
}

func (s *Contrats) Items() []domain.Contrat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Contrat, len(s.items))
	copy(out, s.items)
	return out
}

// ListByCommercant fetches a merchant's contracts.
func (s *Contrats) ListByCommercant(ctx context.Context, commercantID int) ([]domain.Contrat, error) {
	s.begin()
	defer s.finish()

	var items []domain.Contrat
	if err := s.api.Get(ctx, fmt.Sprintf("/contrats/commercant/%d", commercantID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des contrats")
	}
	return items, nil
}

// Signer accepts a contract awaiting the merchant's signature.
func (s *Contrats) Signer(ctx context.Context, contratID int) (*domain.Contrat, error) {
	s.begin()
	defer s.finish()

	var updated domain.Contrat
	if err := s.api.Put(ctx, fmt.Sprintf("/contrats/%d/signer", contratID), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la signature du contrat")
	}
	s.log.Info().Int("id_contrat", contratID).Msg("contract signed")
	return &updated, nil
}

// Refuser declines a contract awaiting signature.
func (s *Contrats) Refuser(ctx context.Context, contratID int, motif string) (*domain.Contrat, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"motif": motif}
	var updated domain.Contrat
	if err := s.api.Put(ctx, fmt.Sprintf("/contrats/%d/refuser", contratID), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors du refus du contrat")
	}
	return &updated, nil
}

// List replaces the cached collection with every contract. Admin only.
func (s *Contrats) List(ctx context.Context) ([]domain.Contrat, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Contrat
	if err := s.api.Get(ctx, "/admin/contrats", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des contrats")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Create issues a contract for a merchant from a template. Admin only. The
// new contract is prepended to the cache.
func (s *Contrats) Create(ctx context.Context, commercantID, templateID int, commission float64) (*domain.Contrat, error) {
	op := s.begin()
	defer s.finish()

	body := map[string]any{
		"idCommercant": commercantID,
		"idTemplate":   templateID,
		"commission":   commission,
	}
	var created domain.Contrat
	if err := s.api.Post(ctx, "/admin/contrats", body, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la création du contrat")
	}
	s.ifLatest(op, func() {
		s.items = append([]domain.Contrat{created}, s.items...)
	})
	return &created, nil
}

// Get fetches one contract. Admin only.
func (s *Contrats) Get(ctx context.Context, contratID int) (*domain.Contrat, error) {
	s.begin()
	defer s.finish()

	var c domain.Contrat
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/contrats/%d", contratID), &c); err != nil {
		return nil, s.fail(err, "erreur lors du chargement du contrat")
	}
	return &c, nil
}

// UpdateStatut changes a contract's status, replacing the cached entity.
// Admin only.
func (s *Contrats) UpdateStatut(ctx context.Context, contratID int, statut string) (*domain.Contrat, error) {
	op := s.begin()
	defer s.finish()

	body := map[string]string{"statut": statut}
	var updated domain.Contrat
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/contrats/%d/statut", contratID), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour du statut du contrat")
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

// Delete removes a draft contract and filters it out of the cache. Admin only.
func (s *Contrats) Delete(ctx context.Context, contratID int) error {
	op := s.begin()
	defer s.finish()

	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/contrats/%d", contratID), nil); err != nil {
		return s.fail(err, "erreur lors de la suppression du contrat")
	}
	s.ifLatest(op, func() {
		kept := s.items[:0]
		for _, c := range s.items {
			if c.ID != contratID {
				kept = append(kept, c)
			}
		}
		s.items = kept
	})
	return nil
}

// Resilier terminates an active contract, replacing the cached entity.
// Admin only.
func (s *Contrats) Resilier(ctx context.Context, contratID int, motif string) (*domain.Contrat, error) {
	op := s.begin()
	defer s.finish()

	body := map[string]string{"motif": motif}
	var updated domain.Contrat
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/contrats/%d/resilier", contratID), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la résiliation du contrat")
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

// Templates lists the reusable contract bodies. Admin only.
func (s *Contrats) Templates(ctx context.Context) ([]domain.ContratTemplate, error) {
	s.begin()
	defer s.finish()

	var items []domain.ContratTemplate
	if err := s.api.Get(ctx, "/admin/contrats/templates", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des modèles de contrat")
	}
	return items, nil
}

// CreateTemplate adds a reusable contract body. Admin only.
func (s *Contrats) CreateTemplate(ctx context.Context, tpl *domain.ContratTemplate) (*domain.ContratTemplate, error) {
	s.begin()
	defer s.finish()

	var created domain.ContratTemplate
	if err := s.api.Post(ctx, "/admin/contrats/templates", tpl, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la création du modèle")
	}
	return &created, nil
}

// Stats fetches the contracts dashboard aggregate. Admin only.
func (s *Contrats) Stats(ctx context.Context) (*domain.ContratStats, error) {
	s.begin()
	defer s.finish()

	var st domain.ContratStats
	if err := s.api.Get(ctx, "/admin/contrats/stats", &st); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des statistiques des contrats")
	}
	return &st, nil
}
