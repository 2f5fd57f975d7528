package geo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
	"github.com/ecodeli/ecodeli-go/internal/core/ports"
)

var _ ports.Geocoder = (*Maps)(nil)

// geocodeResponse mirrors the backend geocoding payload.
type geocodeResponse struct {
	Address   string  `json:"address"`
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocode resolves a free-form address through the backend provider.
func (m *Maps) Geocode(ctx context.Context, address string) (*ports.Place, error) {
	var res geocodeResponse
	path := "/maps/geocode?address=" + url.QueryEscape(address)
	if err := m.api.Get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	place := toPlace(res)
	return &place, nil
}

// Suggest returns address completions for a partial input.
func (m *Maps) Suggest(ctx context.Context, input string) ([]ports.Place, error) {
	var res []geocodeResponse
	path := "/maps/suggest?input=" + url.QueryEscape(input)
	if err := m.api.Get(ctx, path, &res); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	out := make([]ports.Place, 0, len(res))
	for _, r := range res {
		out = append(out, toPlace(r))
	}
	return out, nil
}

// AddressValidation is the outcome of a validate-and-improve pass.
type AddressValidation struct {
	IsValid         bool
	ImprovedAddress string
	Place           *ports.Place
}

// ValidateAddress geocodes an address and reports whether it resolved,
// carrying the provider's normalized form when it did.
func (m *Maps) ValidateAddress(ctx context.Context, address string) AddressValidation {
	place, err := m.Geocode(ctx, address)
	if err != nil {
		return AddressValidation{IsValid: false}
	}
	return AddressValidation{IsValid: true, ImprovedAddress: place.Address, Place: place}
}

func toPlace(r geocodeResponse) ports.Place {
	return ports.Place{
		Address:     r.Address,
		Name:        r.Name,
		Coordinates: domain.Coordinates{Lat: r.Latitude, Lng: r.Longitude},
	}
}
