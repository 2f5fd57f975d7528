package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Annonces caches the delivery listings and exposes their lifecycle
// operations for clients (publish, pay, cancel) and couriers (take, start,
// complete, handover codes).
type Annonces struct {
	requestState
	api    *apiclient.Client
	log    zerolog.Logger
	items  []domain.Annonce
}

func NewAnnonces(api *apiclient.Client, log zerolog.Logger) *Annonces {
	return &Annonces{api: api, log: log}
}

// Items returns a copy of the cached collection.
func (s *Annonces) Items() []domain.Annonce {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Annonce, len(s.items))
	copy(out, s.items)
	return out
}

// List replaces the cached collection with GET /annonces.
func (s *Annonces) List(ctx context.Context) ([]domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Annonce
	if err := s.api.Get(ctx, "/annonces", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Create publishes a listing; the backend's returned entity (carrying the
// issued idAnnonce) is prepended to the cached collection.
func (s *Annonces) Create(ctx context.Context, a domain.Annonce) (*domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	var created domain.Annonce
	if err := s.api.Post(ctx, "/annonces", a, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la création de l'annonce")
	}
	s.ifLatest(op, func() {
		s.items = append([]domain.Annonce{created}, s.items...)
	})
	s.log.Info().Int("id_annonce", created.ID).Msg("annonce created")
	return &created, nil
}

// CalculateDistance asks the backend for a distance/price quote between two
// addresses.
func (s *Annonces) CalculateDistance(ctx context.Context, adresseDepart, adresseFin string) (*domain.DistanceQuote, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"adresseDepart": adresseDepart, "adresseFin": adresseFin}
	var quote domain.DistanceQuote
	if err := s.api.Post(ctx, "/annonces/calculate-distance", body, &quote); err != nil {
		return nil, s.fail(err, "erreur lors du calcul de la distance")
	}
	return &quote, nil
}

// ListByUser fetches the listings published by one user without touching the
// shared collection.
func (s *Annonces) ListByUser(ctx context.Context, userID int) ([]domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var items []domain.Annonce
	if err := s.api.Get(ctx, fmt.Sprintf("/annonces/user/%d", userID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces utilisateur")
	}
	return items, nil
}

// Cancel moves a listing to ANNULEE; the cached entry's statut is updated in
// place.
func (s *Annonces) Cancel(ctx context.Context, annonceID int) error {
	op := s.begin()
	defer s.finish()

	if err := s.api.Put(ctx, fmt.Sprintf("/annonces/%d/cancel", annonceID), nil, nil); err != nil {
		return s.fail(err, "erreur lors de l'annulation de l'annonce")
	}
	s.ifLatest(op, func() {
		for i := range s.items {
			if s.items[i].ID == annonceID {
				s.items[i].Statut = domain.AnnonceAnnulee
				break
			}
		}
	})
	return nil
}

// ListAvailable fetches the listings open for courier candidatures.
func (s *Annonces) ListAvailable(ctx context.Context) ([]domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var items []domain.Annonce
	if err := s.api.Get(ctx, "/annonces/available", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces disponibles")
	}
	return items, nil
}

// Take assigns an available listing to a courier.
func (s *Annonces) Take(ctx context.Context, annonceID, livreurID int) error {
	s.begin()
	defer s.finish()

	body := map[string]int{"livreurId": livreurID}
	if err := s.api.Put(ctx, fmt.Sprintf("/annonces/%d/take", annonceID), body, nil); err != nil {
		return s.fail(err, "erreur lors de la prise en charge")
	}
	s.log.Info().Int("id_annonce", annonceID).Int("id_livreur", livreurID).Msg("annonce taken")
	return nil
}

// StartDelivery moves a taken listing into EN_COURS.
func (s *Annonces) StartDelivery(ctx context.Context, annonceID int) error {
	s.begin()
	defer s.finish()

	if err := s.api.Put(ctx, fmt.Sprintf("/annonces/%d/start-delivery", annonceID), nil, nil); err != nil {
		return s.fail(err, "erreur lors du démarrage de la livraison")
	}
	return nil
}

// CompleteDelivery finishes the delivery attached to a listing.
func (s *Annonces) CompleteDelivery(ctx context.Context, annonceID int) error {
	s.begin()
	defer s.finish()

	if err := s.api.Put(ctx, fmt.Sprintf("/annonces/%d/complete", annonceID), nil, nil); err != nil {
		return s.fail(err, "erreur lors de la finalisation de la livraison")
	}
	return nil
}

// ListByLivreur fetches the listings a courier is assigned to.
func (s *Annonces) ListByLivreur(ctx context.Context, livreurID int) ([]domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var items []domain.Annonce
	if err := s.api.Get(ctx, fmt.Sprintf("/annonces/livreur/%d", livreurID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces du livreur")
	}
	return items, nil
}

// GenerateDeliveryCode issues a one-time handover code for a listing.
func (s *Annonces) GenerateDeliveryCode(ctx context.Context, annonceID int) (*domain.DeliveryCode, error) {
	s.begin()
	defer s.finish()

	var code domain.DeliveryCode
	if err := s.api.Post(ctx, fmt.Sprintf("/annonces/%d/generate-code", annonceID), nil, &code); err != nil {
		return nil, s.fail(err, "erreur lors de la génération du code")
	}
	return &code, nil
}

// ValidateDeliveryCode checks a handover code. The backend reports the
// outcome in the body, not only via the status code.
func (s *Annonces) ValidateDeliveryCode(ctx context.Context, annonceID int, code string) (*domain.DeliveryCode, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"code": code}
	var result domain.DeliveryCode
	if err := s.api.Post(ctx, fmt.Sprintf("/annonces/%d/validate-code", annonceID), body, &result); err != nil {
		return nil, s.fail(err, "erreur lors de la validation du code")
	}
	return &result, nil
}

// ValiderLivreursPartielle confirms the selected couriers of both segments
// of a partial delivery.
func (s *Annonces) ValiderLivreursPartielle(ctx context.Context, annonceID int) error {
	s.begin()
	defer s.finish()

	if err := s.api.Post(ctx, fmt.Sprintf("/annonces/partielle/%d/valider-livreurs", annonceID), nil, nil); err != nil {
		return s.fail(err, "erreur lors de la validation des livreurs")
	}
	return nil
}
