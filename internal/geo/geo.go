// Package geo provides great-circle distance and duration estimates plus the
// route pricing client. When the routing provider is unreachable the
// estimates degrade to Haversine figures instead of failing.
package geo

import (
	"math"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

const (
	earthRadiusKm = 6371
	// average urban driving speed used for duration estimates
	avgSpeedKmh = 50
	// DefaultTrafficFactor inflates raw driving time for congestion.
	DefaultTrafficFactor = 1.2
)

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// EstimateDuration converts a distance into driving minutes at the average
// urban speed.
func EstimateDuration(distanceKm float64) int {
	return int(math.Round(distanceKm / avgSpeedKmh * 60))
}

// EstimateETA returns the minutes to reach dest from pos under trafficFactor.
// A non-positive factor falls back to DefaultTrafficFactor.
func EstimateETA(pos, dest domain.Coordinates, trafficFactor float64) int {
	if trafficFactor <= 0 {
		trafficFactor = DefaultTrafficFactor
	}
	base := Haversine(pos, dest) / avgSpeedKmh * 60
	return int(math.Round(base * trafficFactor))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
