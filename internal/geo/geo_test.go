package geo

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

var (
	paris = domain.Coordinates{Lat: 48.8566, Lng: 2.3522}
	lyon  = domain.Coordinates{Lat: 45.7640, Lng: 4.8357}
)

func TestHaversineParisLyon(t *testing.T) {
	// great-circle Paris-Lyon is about 392 km
	d := Haversine(paris, lyon)
	if math.Abs(d-392) > 5 {
		t.Errorf("distance = %.1f km, want about 392", d)
	}
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	if d := Haversine(paris, paris); d != 0 {
		t.Errorf("distance to self = %f", d)
	}
}

func TestEstimateDuration(t *testing.T) {
	// 100 km at 50 km/h
	if got := EstimateDuration(100); got != 120 {
		t.Errorf("duration = %d min, want 120", got)
	}
}

func TestEstimateETAAppliesTrafficFactor(t *testing.T) {
	base := EstimateETA(paris, lyon, 1.0)
	congested := EstimateETA(paris, lyon, 0) // defaults to 1.2
	if congested <= base {
		t.Errorf("eta with traffic = %d, base = %d", congested, base)
	}
	want := int(math.Round(float64(Haversine(paris, lyon)) / 50 * 60 * 1.2))
	if congested != want {
		t.Errorf("eta = %d, want %d", congested, want)
	}
}

func newMaps(t *testing.T, handler http.Handler) *Maps {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := apiclient.New(apiclient.Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	return NewMaps(api, zerolog.Nop())
}

func TestCalculatePriceFillsParcelDefaults(t *testing.T) {
	var got PriceRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /maps/calculate-price", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(PriceResult{Type: PriceDirecte, TotalPrice: 25, Distance: 392, Duration: 470})
	})
	maps := newMaps(t, mux)

	res, err := maps.CalculatePrice(context.Background(), PriceRequest{Origin: "Paris", Destination: "Lyon"})
	if err != nil {
		t.Fatalf("calculate price: %v", err)
	}
	if res.TotalPrice != 25 {
		t.Errorf("total price = %g", res.TotalPrice)
	}
	if got.Colis == nil || got.Colis.Poids != 1 || got.Colis.Longueur != 10 {
		t.Errorf("parcel defaults not applied: %+v", got.Colis)
	}
}

func TestWarehousesFallBackToEmbeddedCatalogue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	api := apiclient.New(apiclient.Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	maps := NewMaps(api, zerolog.Nop())

	warehouses, err := maps.Warehouses(context.Background())
	if err != nil {
		t.Fatalf("warehouses: %v", err)
	}
	if len(warehouses) != 6 {
		t.Fatalf("embedded catalogue = %d entries, want 6", len(warehouses))
	}
	if warehouses[0].Nom != "Paris" {
		t.Errorf("first warehouse = %q", warehouses[0].Nom)
	}
}

func TestWarehouseSuggestionsFlagOptimal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /maps/warehouses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.Entrepots)
	})
	mux.HandleFunc("GET /maps/optimal-warehouse", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(OptimalWarehouse{Warehouse: "Lyon"})
	})
	maps := newMaps(t, mux)

	suggestions, err := maps.WarehouseSuggestions(context.Background(), "Paris", "Marseille")
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	optimalCount := 0
	for _, s := range suggestions {
		if s.IsOptimal {
			optimalCount++
			if s.Nom != "Lyon" {
				t.Errorf("optimal warehouse = %q, want Lyon", s.Nom)
			}
		}
	}
	if optimalCount != 1 {
		t.Errorf("optimal flags = %d, want exactly 1", optimalCount)
	}
}

func TestEstimateRouteDegradesToHaversine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	api := apiclient.New(apiclient.Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	maps := NewMaps(api, zerolog.Nop())

	est := maps.EstimateRoute(context.Background(), paris, lyon)
	if math.Abs(est.Distance-Haversine(paris, lyon)) > 0.01 {
		t.Errorf("distance = %.2f, want the great-circle figure", est.Distance)
	}
	if est.Duration != EstimateDuration(est.Distance) {
		t.Errorf("duration = %d, want the 50 km/h estimate", est.Duration)
	}
}

func TestFormatPriceInfoPartial(t *testing.T) {
	info := FormatPriceInfo(&PriceResult{
		Type:             PricePartielle,
		TotalPrice:       30,
		TotalDistance:    400,
		TotalDuration:    500,
		Warehouse:        "Lyon",
		Segment1Price:    18,
		Segment1Distance: 250,
		Segment1Duration: 300,
		Segment2Price:    12,
		Segment2Distance: 150,
		Segment2Duration: 200,
		DirectPrice:      35,
		Savings:          5,
	})
	if info.Type != "Livraison partielle" {
		t.Errorf("type = %q", info.Type)
	}
	if len(info.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(info.Segments))
	}
	if info.Segments[0].Price != 18 || info.Segments[1].Price != 12 {
		t.Errorf("segment prices = %g, %g", info.Segments[0].Price, info.Segments[1].Price)
	}
	if info.Comparison == nil || info.Comparison.Recommendation != "Économie réalisée" {
		t.Errorf("comparison = %+v", info.Comparison)
	}
}

func TestFormatPriceInfoDirectHasNoComparison(t *testing.T) {
	info := FormatPriceInfo(&PriceResult{Type: PriceDirecte, TotalPrice: 25, Distance: 392, Duration: 470})
	if info.Type != "Livraison directe" {
		t.Errorf("type = %q", info.Type)
	}
	if len(info.Segments) != 0 || info.Comparison != nil {
		t.Errorf("direct quote carries segments or comparison: %+v", info)
	}
}
