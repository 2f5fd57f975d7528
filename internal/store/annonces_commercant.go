package store

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// AnnoncesCommercant manages a merchant's listings, which go through an
// admin approval cycle before publication.
type AnnoncesCommercant struct {
	requestState
	api   *apiclient.Client
	log   zerolog.Logger
	items []domain.Annonce
}

func NewAnnoncesCommercant(api *apiclient.Client, log zerolog.Logger) *AnnoncesCommercant {
	return &AnnoncesCommercant{api: api, log: log}
}

func (s *AnnoncesCommercant) Items() []domain.Annonce {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Annonce, len(s.items))
	copy(out, s.items)
	return out
}

// List fetches every merchant listing.
func (s *AnnoncesCommercant) List(ctx context.Context) ([]domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var items []domain.Annonce
	if err := s.api.Get(ctx, "/annonces-commercant", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces commerçant")
	}
	return items, nil
}

// ListByCategorie fetches the listings of one category.
func (s *AnnoncesCommercant) ListByCategorie(ctx context.Context, categorie string) ([]domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var items []domain.Annonce
	path := "/annonces-commercant/categorie/" + url.PathEscape(categorie)
	if err := s.api.Get(ctx, path, &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces de la catégorie")
	}
	return items, nil
}

// ListByCommercant replaces the cached collection with a merchant's listings.
func (s *AnnoncesCommercant) ListByCommercant(ctx context.Context, commercantID int) ([]domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	var items []domain.Annonce
	if err := s.api.Get(ctx, fmt.Sprintf("/annonces-commercant/commercant/%d", commercantID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces commerçant")
	}
	s.ifLatest(op, func() { s.items = items })
	return items, nil
}

// Get fetches one merchant listing.
func (s *AnnoncesCommercant) Get(ctx context.Context, id int) (*domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var a domain.Annonce
	if err := s.api.Get(ctx, fmt.Sprintf("/annonces-commercant/%d", id), &a); err != nil {
		return nil, s.fail(err, "erreur lors du chargement de l'annonce")
	}
	return &a, nil
}

// Create submits a new listing and prepends it to the cache.
func (s *AnnoncesCommercant) Create(ctx context.Context, annonce *domain.Annonce) (*domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	var created domain.Annonce
	if err := s.api.Post(ctx, "/annonces-commercant", annonce, &created); err != nil {
		return nil, s.fail(err, "erreur lors de la création de l'annonce")
	}
	s.ifLatest(op, func() {
		s.items = append([]domain.Annonce{created}, s.items...)
	})
	s.log.Info().Int("id_annonce", created.ID).Msg("merchant listing created")
	return &created, nil
}

// Update edits a listing, replacing the cached entity.
func (s *AnnoncesCommercant) Update(ctx context.Context, id int, annonce *domain.Annonce) (*domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Annonce
	if err := s.api.Put(ctx, fmt.Sprintf("/annonces-commercant/%d", id), annonce, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour de l'annonce")
	}
	s.ifLatest(op, func() { s.replaceAnnonce(updated) })
	return &updated, nil
}

// Delete removes a listing and filters it out of the cache.
func (s *AnnoncesCommercant) Delete(ctx context.Context, id int) error {
	op := s.begin()
	defer s.finish()

	if err := s.api.Delete(ctx, fmt.Sprintf("/annonces-commercant/%d", id), nil); err != nil {
		return s.fail(err, "erreur lors de la suppression de l'annonce")
	}
	s.ifLatest(op, func() {
		kept := s.items[:0]
		for _, a := range s.items {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		s.items = kept
	})
	return nil
}

// Publish submits a draft listing for admin approval.
func (s *AnnoncesCommercant) Publish(ctx context.Context, id int) (*domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Annonce
	if err := s.api.Put(ctx, fmt.Sprintf("/annonces-commercant/%d/publier", id), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de la publication de l'annonce")
	}
	s.ifLatest(op, func() { s.replaceAnnonce(updated) })
	return &updated, nil
}

// Approve validates a pending listing. Admin only.
func (s *AnnoncesCommercant) Approve(ctx context.Context, id int) (*domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	var updated domain.Annonce
	if err := s.api.Put(ctx, fmt.Sprintf("/annonces-commercant/%d/approuver", id), nil, &updated); err != nil {
		return nil, s.fail(err, "erreur lors de l'approbation de l'annonce")
	}
	s.ifLatest(op, func() { s.replaceAnnonce(updated) })
	return &updated, nil
}

// Reject declines a pending listing with a reason. Admin only.
func (s *AnnoncesCommercant) Reject(ctx context.Context, id int, motif string) (*domain.Annonce, error) {
	op := s.begin()
	defer s.finish()

	body := map[string]string{"motif": motif}
	var updated domain.Annonce
	if err := s.api.Put(ctx, fmt.Sprintf("/annonces-commercant/%d/rejeter", id), body, &updated); err != nil {
		return nil, s.fail(err, "erreur lors du rejet de l'annonce")
	}
	s.ifLatest(op, func() { s.replaceAnnonce(updated) })
	return &updated, nil
}

// PendingApproval lists the listings awaiting admin review.
func (s *AnnoncesCommercant) PendingApproval(ctx context.Context) ([]domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var items []domain.Annonce
	if err := s.api.Get(ctx, "/annonces-commercant/en-attente-validation", &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des annonces en attente")
	}
	return items, nil
}

// Search queries listings by free text.
func (s *AnnoncesCommercant) Search(ctx context.Context, query string) ([]domain.Annonce, error) {
	s.begin()
	defer s.finish()

	var items []domain.Annonce
	path := "/annonces-commercant/recherche?q=" + url.QueryEscape(query)
	if err := s.api.Get(ctx, path, &items); err != nil {
		return nil, s.fail(err, "erreur lors de la recherche d'annonces")
	}
	return items, nil
}

// Categories lists the merchant listing categories.
func (s *AnnoncesCommercant) Categories(ctx context.Context) ([]string, error) {
	s.begin()
	defer s.finish()

	var cats []string
	if err := s.api.Get(ctx, "/annonces-commercant/categories", &cats); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des catégories")
	}
	return cats, nil
}

// Statistics fetches the merchant's listing aggregates.
func (s *AnnoncesCommercant) Statistics(ctx context.Context, commercantID int) (map[string]any, error) {
	s.begin()
	defer s.finish()

	var stats map[string]any
	if err := s.api.Get(ctx, fmt.Sprintf("/annonces-commercant/commercant/%d/statistiques", commercantID), &stats); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des statistiques")
	}
	return stats, nil
}

func (s *AnnoncesCommercant) replaceAnnonce(updated domain.Annonce) {
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = updated
			return
		}
	}
}
