package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

const intentTTL = time.Hour

// IntentDeduper keeps payment intents in Redis so repeated create calls for
// the same listing return the same intent instead of charging twice.
type IntentDeduper struct {
	client *redis.Client
}

func NewIntentDeduper(client *redis.Client) *IntentDeduper {
	return &IntentDeduper{client: client}
}

func (d *IntentDeduper) key(annonceID int) string {
	return fmt.Sprintf("payment:intent:%d", annonceID)
}

// Existing returns the stored intent for a listing, if any.
func (d *IntentDeduper) Existing(ctx context.Context, annonceID int) (*domain.PaymentIntent, error) {
	raw, err := d.client.Get(ctx, d.key(annonceID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("intent lookup: %w", err)
	}
	var intent domain.PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("intent decode: %w", err)
	}
	return &intent, nil
}

// Store persists the intent for its TTL, indexed both by listing and by
// intent identifier.
func (d *IntentDeduper) Store(ctx context.Context, intent *domain.PaymentIntent) error {
	raw, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	pipe := d.client.TxPipeline()
	pipe.Set(ctx, d.key(intent.AnnonceID), raw, intentTTL)
	pipe.Set(ctx, "payment:intent:id:"+intent.ID, intent.AnnonceID, intentTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// ByIntentID resolves an intent from its identifier.
func (d *IntentDeduper) ByIntentID(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	annonceID, err := d.client.Get(ctx, "payment:intent:id:"+intentID).Int()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("intent index lookup: %w", err)
	}
	return d.Existing(ctx, annonceID)
}

// PaymentHandler implements the payment intent routes.
type PaymentHandler struct {
	dedup *IntentDeduper
	log   zerolog.Logger
}

func NewPaymentHandler(dedup *IntentDeduper, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{dedup: dedup, log: log}
}

type createIntentRequest struct {
	AnnonceID int     `json:"annonceId"`
	Montant   float64 `json:"montant"`
}

// CreateIntent issues a payment intent, deduplicated per listing.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}
	if req.AnnonceID == 0 || req.Montant <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "annonce et montant sont obligatoires")
	}

	ctx := c.Request().Context()
	if existing, err := h.dedup.Existing(ctx, req.AnnonceID); err != nil {
		return err
	} else if existing != nil {
		return c.JSON(http.StatusOK, existing)
	}

	intent := &domain.PaymentIntent{
		ID:           "pi_" + uuid.NewString(),
		ClientSecret: uuid.NewString(),
		AnnonceID:    req.AnnonceID,
		Montant:      req.Montant,
		Statut:       domain.PaymentPending,
	}
	if err := h.dedup.Store(ctx, intent); err != nil {
		return err
	}
	h.log.Info().Int("id_annonce", req.AnnonceID).Str("intent", intent.ID).Msg("payment intent issued")
	return c.JSON(http.StatusCreated, intent)
}

type confirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	AnnonceID       int    `json:"annonceId"`
}

// Confirm moves an intent to SUCCEEDED.
func (h *PaymentHandler) Confirm(c echo.Context) error {
	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}

	ctx := c.Request().Context()
	var intent *domain.PaymentIntent
	var err error
	if req.PaymentIntentID != "" {
		intent, err = h.dedup.ByIntentID(ctx, req.PaymentIntentID)
	} else {
		intent, err = h.dedup.Existing(ctx, req.AnnonceID)
	}
	if err != nil {
		return err
	}
	if intent == nil {
		return domain.ErrNotFound
	}
	intent.Statut = domain.PaymentSucceeded
	if err := h.dedup.Store(ctx, intent); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, intent)
}

// InfoByAnnonce returns the intent attached to a listing.
func (h *PaymentHandler) InfoByAnnonce(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	intent, err := h.dedup.Existing(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if intent == nil {
		return domain.ErrNotFound
	}
	return c.JSON(http.StatusOK, intent)
}
