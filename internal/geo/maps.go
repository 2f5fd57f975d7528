package geo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Delivery option types returned by the pricing endpoints.
const (
	PriceDirecte   = "DIRECTE"
	PricePartielle = "PARTIELLE"
)

// PriceRequest is the payload for a route pricing call.
type PriceRequest struct {
	Origin          string        `json:"origin"`
	Destination     string        `json:"destination"`
	Warehouse       string        `json:"warehouse,omitempty"`
	PartialDelivery bool          `json:"partialDelivery"`
	Urgent          bool          `json:"urgent"`
	Colis           *domain.Colis `json:"colis,omitempty"`
}

// PriceResult is the raw pricing answer, covering both direct and partial
// shapes.
type PriceResult struct {
	Type       string  `json:"type"`
	TotalPrice float64 `json:"totalPrice"`
	Distance   float64 `json:"distance,omitempty"`
	Duration   int     `json:"duration,omitempty"`

	// partial delivery fields
	Warehouse        string  `json:"warehouse,omitempty"`
	TotalDistance    float64 `json:"totalDistance,omitempty"`
	TotalDuration    int     `json:"totalDuration,omitempty"`
	Segment1Price    float64 `json:"segment1Price,omitempty"`
	Segment1Distance float64 `json:"segment1Distance,omitempty"`
	Segment1Duration int     `json:"segment1Duration,omitempty"`
	Segment2Price    float64 `json:"segment2Price,omitempty"`
	Segment2Distance float64 `json:"segment2Distance,omitempty"`
	Segment2Duration int     `json:"segment2Duration,omitempty"`
	DirectPrice      float64 `json:"directPrice,omitempty"`
	Savings          float64 `json:"savings,omitempty"`
	IsMoreExpensive  bool    `json:"isMoreExpensive,omitempty"`
}

// OptimalWarehouse names the warehouse minimizing the total partial route.
type OptimalWarehouse struct {
	Warehouse string  `json:"warehouse"`
	Detour    float64 `json:"detour,omitempty"`
}

// WarehouseSuggestion decorates a catalogue entry with the optimality flag.
type WarehouseSuggestion struct {
	domain.Entrepot
	IsOptimal bool `json:"isOptimal"`
}

// RouteEstimate is a distance/duration pair, from the provider when
// reachable, otherwise a great-circle estimate.
type RouteEstimate struct {
	Distance float64 `json:"distance"`
	Duration int     `json:"duration"`
}

// Maps talks to the backend routing endpoints.
type Maps struct {
	api *apiclient.Client
	log zerolog.Logger
}

func NewMaps(api *apiclient.Client, log zerolog.Logger) *Maps {
	return &Maps{api: api, log: log}
}

// CalculatePrice prices a route. Parcel dimensions get defaults so the
// backend never rejects an incomplete payload.
func (m *Maps) CalculatePrice(ctx context.Context, req PriceRequest) (*PriceResult, error) {
	if req.Colis == nil {
		req.Colis = &domain.Colis{}
	}
	if req.Colis.Poids == 0 {
		req.Colis.Poids = 1
	}
	if req.Colis.Longueur == 0 {
		req.Colis.Longueur = 10
	}
	if req.Colis.Largeur == 0 {
		req.Colis.Largeur = 10
	}
	if req.Colis.Hauteur == 0 {
		req.Colis.Hauteur = 10
	}

	var res PriceResult
	if err := m.api.Post(ctx, "/maps/calculate-price", req, &res); err != nil {
		return nil, fmt.Errorf("calculate price: %w", err)
	}
	return &res, nil
}

// OptimalWarehouse asks which warehouse minimizes the partial route.
func (m *Maps) OptimalWarehouse(ctx context.Context, origin, destination string) (*OptimalWarehouse, error) {
	var res OptimalWarehouse
	path := "/maps/optimal-warehouse?origin=" + url.QueryEscape(origin) +
		"&destination=" + url.QueryEscape(destination)
	if err := m.api.Get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("optimal warehouse: %w", err)
	}
	return &res, nil
}

// OptimalWarehouses ranks every warehouse for the route.
func (m *Maps) OptimalWarehouses(ctx context.Context, origin, destination string) ([]OptimalWarehouse, error) {
	var res []OptimalWarehouse
	path := "/maps/optimal-warehouses?origin=" + url.QueryEscape(origin) +
		"&destination=" + url.QueryEscape(destination)
	if err := m.api.Get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("optimal warehouses: %w", err)
	}
	return res, nil
}

// CompareDeliveryOptions prices the direct and partial alternatives side by
// side.
func (m *Maps) CompareDeliveryOptions(ctx context.Context, req PriceRequest) ([]PriceResult, error) {
	if req.Colis == nil {
		req.Colis = &domain.Colis{Poids: 1, Longueur: 10, Largeur: 10, Hauteur: 10}
	}
	var res []PriceResult
	if err := m.api.Post(ctx, "/maps/compare-delivery-options", req, &res); err != nil {
		return nil, fmt.Errorf("compare delivery options: %w", err)
	}
	return res, nil
}

// Warehouses fetches the warehouse catalogue, degrading to the embedded copy
// when the backend is unreachable.
func (m *Maps) Warehouses(ctx context.Context) ([]domain.Entrepot, error) {
	var res []domain.Entrepot
	if err := m.api.Get(ctx, "/maps/warehouses", &res); err != nil {
		m.log.Warn().Err(err).Msg("warehouse catalogue unreachable, using embedded copy")
		out := make([]domain.Entrepot, len(domain.Entrepots))
		copy(out, domain.Entrepots)
		return out, nil
	}
	return res, nil
}

// WarehouseSuggestions merges the catalogue with the optimal choice for the
// route. When the optimal lookup fails the catalogue is returned unflagged.
func (m *Maps) WarehouseSuggestions(ctx context.Context, origin, destination string) ([]WarehouseSuggestion, error) {
	warehouses, err := m.Warehouses(ctx)
	if err != nil {
		return nil, err
	}

	optimalName := ""
	if optimal, err := m.OptimalWarehouse(ctx, origin, destination); err == nil {
		optimalName = optimal.Warehouse
	} else {
		m.log.Warn().Err(err).Msg("optimal warehouse lookup failed")
	}

	out := make([]WarehouseSuggestion, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, WarehouseSuggestion{Entrepot: w, IsOptimal: w.Nom == optimalName})
	}
	return out, nil
}

// EstimateRoute asks the provider for a driving distance and duration, and
// falls back to the great-circle estimate when the call fails.
func (m *Maps) EstimateRoute(ctx context.Context, origin, destination domain.Coordinates) RouteEstimate {
	body := map[string]domain.Coordinates{"origin": origin, "destination": destination}
	var res RouteEstimate
	if err := m.api.Post(ctx, "/maps/distance", body, &res); err == nil && res.Distance > 0 {
		return res
	}
	d := Haversine(origin, destination)
	return RouteEstimate{Distance: d, Duration: EstimateDuration(d)}
}
