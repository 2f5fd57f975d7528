package ports

import (
	"context"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// Place is a resolved address.
type Place struct {
	Address     string
	Name        string
	Coordinates domain.Coordinates
}

// Geocoder resolves free-form addresses through the third-party mapping
// provider. Callers degrade to local straight-line estimates when the
// provider is unconfigured or unavailable.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Place, error)
	Suggest(ctx context.Context, input string) ([]Place, error)
}
