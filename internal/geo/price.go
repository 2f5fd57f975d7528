package geo

import "fmt"

// PriceSegment is one leg of a partial delivery quote.
type PriceSegment struct {
	Number   int     `json:"number"`
	Price    float64 `json:"price"`
	Distance string  `json:"distance"`
	Duration string  `json:"duration"`
	Route    string  `json:"route"`
}

// PriceComparison weighs a partial quote against the direct alternative.
type PriceComparison struct {
	DirectPrice     float64 `json:"directPrice"`
	Savings         float64 `json:"savings"`
	IsMoreExpensive bool    `json:"isMoreExpensive"`
	Recommendation  string  `json:"recommendation"`
}

// PriceInfo is the display-ready reshaping of a PriceResult.
type PriceInfo struct {
	Type       string           `json:"type"`
	TotalPrice float64          `json:"totalPrice"`
	Distance   string           `json:"distance"`
	Duration   string           `json:"duration"`
	Warehouse  string           `json:"warehouse,omitempty"`
	Segments   []PriceSegment   `json:"segments"`
	Comparison *PriceComparison `json:"comparison,omitempty"`
}

// FormatPriceInfo reshapes a raw pricing answer for display. Partial quotes
// carry the per-segment breakdown and the savings verdict against the direct
// price.
func FormatPriceInfo(r *PriceResult) PriceInfo {
	switch r.Type {
	case PriceDirecte:
		return PriceInfo{
			Type:       "Livraison directe",
			TotalPrice: r.TotalPrice,
			Distance:   fmt.Sprintf("%g km", r.Distance),
			Duration:   fmt.Sprintf("%d min", r.Duration),
			Segments:   []PriceSegment{},
		}
	case PricePartielle:
		recommendation := "Plus cher que livraison directe"
		if r.Savings > 0 {
			recommendation = "Économie réalisée"
		}
		return PriceInfo{
			Type:       "Livraison partielle",
			TotalPrice: r.TotalPrice,
			Distance:   fmt.Sprintf("%g km", r.TotalDistance),
			Duration:   fmt.Sprintf("%d min", r.TotalDuration),
			Warehouse:  r.Warehouse,
			Segments: []PriceSegment{
				{
					Number:   1,
					Price:    r.Segment1Price,
					Distance: fmt.Sprintf("%g km", r.Segment1Distance),
					Duration: fmt.Sprintf("%d min", r.Segment1Duration),
					Route:    "Départ > Entrepôt",
				},
				{
					Number:   2,
					Price:    r.Segment2Price,
					Distance: fmt.Sprintf("%g km", r.Segment2Distance),
					Duration: fmt.Sprintf("%d min", r.Segment2Duration),
					Route:    "Entrepôt > Destination",
				},
			},
			Comparison: &PriceComparison{
				DirectPrice:     r.DirectPrice,
				Savings:         r.Savings,
				IsMoreExpensive: r.IsMoreExpensive,
				Recommendation:  recommendation,
			},
		}
	}
	return PriceInfo{
		Type:       "Prix calculé",
		TotalPrice: r.TotalPrice,
		Distance:   fmt.Sprintf("%g km", r.Distance),
		Duration:   fmt.Sprintf("%d min", r.Duration),
		Segments:   []PriceSegment{},
	}
}
