package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Payments covers the payment intents a client confirms for a listing and
// the wallet a courier or provider withdraws from.
type Payments struct {
	requestState
	api *apiclient.Client
	log zerolog.Logger
}

func NewPayments(api *apiclient.Client, log zerolog.Logger) *Payments {
	return &Payments{api: api, log: log}
}

// CreateIntent asks the backend to create a payment intent for a listing.
func (s *Payments) CreateIntent(ctx context.Context, annonceID int, montant float64) (*domain.PaymentIntent, error) {
	s.begin()
	defer s.finish()

	body := map[string]any{"annonceId": annonceID, "montant": montant}
	var intent domain.PaymentIntent
	if err := s.api.Post(ctx, "/payments/create-intent", body, &intent); err != nil {
		return nil, s.fail(err, "erreur lors de la création du paiement")
	}
	s.log.Info().Int("id_annonce", annonceID).Str("intent", intent.ID).Msg("payment intent created")
	return &intent, nil
}

// Confirm finalizes a payment intent.
func (s *Payments) Confirm(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"paymentIntentId": intentID}
	var intent domain.PaymentIntent
	if err := s.api.Post(ctx, "/payments/confirm", body, &intent); err != nil {
		return nil, s.fail(err, "erreur lors de la confirmation du paiement")
	}
	return &intent, nil
}

// Refund reverses a confirmed payment.
func (s *Payments) Refund(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"paymentIntentId": intentID}
	var intent domain.PaymentIntent
	if err := s.api.Post(ctx, "/payments/refund", body, &intent); err != nil {
		return nil, s.fail(err, "erreur lors du remboursement")
	}
	return &intent, nil
}

// InfoByAnnonce fetches the payment state attached to a listing.
func (s *Payments) InfoByAnnonce(ctx context.Context, annonceID int) (*domain.PaymentIntent, error) {
	s.begin()
	defer s.finish()

	var intent domain.PaymentIntent
	if err := s.api.Get(ctx, fmt.Sprintf("/payments/annonce/%d", annonceID), &intent); err != nil {
		return nil, s.fail(err, "erreur lors du chargement du paiement")
	}
	return &intent, nil
}

// WalletBalance fetches the user's wallet.
func (s *Payments) WalletBalance(ctx context.Context, userID int) (*domain.Wallet, error) {
	s.begin()
	defer s.finish()

	var w domain.Wallet
	if err := s.api.Get(ctx, fmt.Sprintf("/wallet/%d", userID), &w); err != nil {
		return nil, s.fail(err, "erreur lors du chargement du portefeuille")
	}
	return &w, nil
}

// UpdateBankInfo registers the IBAN withdrawals get wired to.
func (s *Payments) UpdateBankInfo(ctx context.Context, userID int, iban, nomTitulaire string) (*domain.Wallet, error) {
	s.begin()
	defer s.finish()

	body := map[string]string{"iban": iban, "nomTitulaire": nomTitulaire}
	var w domain.Wallet
	if err := s.api.Put(ctx, fmt.Sprintf("/wallet/%d/bank-info", userID), body, &w); err != nil {
		return nil, s.fail(err, "erreur lors de la mise à jour des informations bancaires")
	}
	return &w, nil
}

// Transactions fetches one page of wallet history.
func (s *Payments) Transactions(ctx context.Context, userID, page, size int) (*domain.TransactionPage, error) {
	s.begin()
	defer s.finish()

	var p domain.TransactionPage
	path := fmt.Sprintf("/wallet/%d/transactions?page=%d&size=%d", userID, page, size)
	if err := s.api.Get(ctx, path, &p); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des transactions")
	}
	return &p, nil
}

// DemanderRetrait requests a withdrawal against the wallet balance.
func (s *Payments) DemanderRetrait(ctx context.Context, userID int, montant float64) (*domain.Retrait, error) {
	s.begin()
	defer s.finish()

	body := map[string]any{"montant": montant}
	var r domain.Retrait
	if err := s.api.Post(ctx, fmt.Sprintf("/wallet/%d/retraits", userID), body, &r); err != nil {
		return nil, s.fail(err, "erreur lors de la demande de retrait")
	}
	s.log.Info().Int("id_utilisateur", userID).Float64("montant", montant).Msg("withdrawal requested")
	return &r, nil
}

// Withdrawals lists the wallet's past withdrawal requests.
func (s *Payments) Withdrawals(ctx context.Context, userID int) ([]domain.Retrait, error) {
	s.begin()
	defer s.finish()

	var items []domain.Retrait
	if err := s.api.Get(ctx, fmt.Sprintf("/wallet/%d/retraits", userID), &items); err != nil {
		return nil, s.fail(err, "erreur lors du chargement des retraits")
	}
	return items, nil
}
