package domain

// Disponibilite statuses and types as served by /planning/statuts and
// /planning/types.
const (
	DisponibiliteLibre   = "DISPONIBLE"
	DisponibiliteOccupee = "OCCUPE"

	CreneauPonctuel  = "PONCTUELLE"
	CreneauRecurrent = "RECURRENTE"
)

// Disponibilite is one provider availability slot.
type Disponibilite struct {
	ID        int    `json:"idDisponibilite,omitempty"`
	Type      string `json:"type,omitempty"`
	Statut    string `json:"statut,omitempty"`
	DateDebut string `json:"dateDebut"`
	DateFin   string `json:"dateFin"`
	Titre     string `json:"titre,omitempty"`
}

// PlanningStats aggregates a provider's planning for the dashboard widget.
type PlanningStats struct {
	TotalCreneaux   int     `json:"totalCreneaux"`
	HeuresDisponibles float64 `json:"heuresDisponibles"`
	TauxOccupation  float64 `json:"tauxOccupation"`
}
