package domain

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Entrepot is one of the platform's intermediate warehouses used for partial
// deliveries.
type Entrepot struct {
	Nom         string      `json:"nom"`
	Ville       string      `json:"ville"`
	Coordinates Coordinates `json:"coordinates"`
}

// Entrepots is the fixed warehouse network. The backend owns the canonical
// list; this copy backs the client-side fallback when /maps is unreachable.
var Entrepots = []Entrepot{
	{Nom: "Paris", Ville: "Paris", Coordinates: Coordinates{Lat: 48.8566, Lng: 2.3522}},
	{Nom: "Marseille", Ville: "Marseille", Coordinates: Coordinates{Lat: 43.2965, Lng: 5.3698}},
	{Nom: "Lyon", Ville: "Lyon", Coordinates: Coordinates{Lat: 45.7640, Lng: 4.8357}},
	{Nom: "Lille", Ville: "Lille", Coordinates: Coordinates{Lat: 50.6292, Lng: 3.0573}},
	{Nom: "Montpellier", Ville: "Montpellier", Coordinates: Coordinates{Lat: 43.6108, Lng: 3.8767}},
	{Nom: "Rennes", Ville: "Rennes", Coordinates: Coordinates{Lat: 48.1173, Lng: -1.6778}},
}
