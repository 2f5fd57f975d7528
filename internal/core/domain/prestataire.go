package domain

// Justificatif validation states.
const (
	JustificatifEnAttente = "EN_ATTENTE"
	JustificatifValide    = "VALIDE"
	JustificatifRefuse    = "REFUSE"
)

// Prestataire is a service provider profile layered over a user account.
type Prestataire struct {
	ID              int     `json:"idPrestataire,omitempty"`
	Utilisateur     *Utilisateur `json:"utilisateur,omitempty"`
	NomEntreprise   string  `json:"nomEntreprise,omitempty"`
	DomaineExpertise string `json:"domaineExpertise,omitempty"`
	TarifHoraire    float64 `json:"tarifHoraire,omitempty"`
	NoteMoyenne     float64 `json:"noteMoyenne,omitempty"`
	Disponible      bool    `json:"disponible,omitempty"`
}

// CategorieValidation tracks the admin validation of a provider for one
// service category, including the hourly rate the admin fixed.
type CategorieValidation struct {
	ID           int     `json:"idValidation,omitempty"`
	Categorie    string  `json:"categorie"`
	Statut       string  `json:"statut"`
	TarifHoraire float64 `json:"tarifHoraire,omitempty"`
	Commentaire  string  `json:"commentaire,omitempty"`
}

// Justificatif is an uploaded supporting document pending admin review.
type Justificatif struct {
	ID         int    `json:"idJustificatif,omitempty"`
	Nom        string `json:"nomFichier,omitempty"`
	Type       string `json:"typeJustificatif,omitempty"`
	Statut     string `json:"statut,omitempty"`
	Commentaire string `json:"commentaire,omitempty"`
	DateDepot  string `json:"dateDepot,omitempty"`
}

// Evaluation is a client rating left on a completed mission.
type Evaluation struct {
	ID          int     `json:"idEvaluation,omitempty"`
	Note        float64 `json:"note"`
	Commentaire string  `json:"commentaire,omitempty"`
	DateEvaluation string `json:"dateEvaluation,omitempty"`
}

// StatistiquesPrestataire is the provider's own dashboard aggregate.
type StatistiquesPrestataire struct {
	MissionsTotal     int     `json:"missionsTotal"`
	MissionsEnCours   int     `json:"missionsEnCours"`
	MissionsTerminees int     `json:"missionsTerminees"`
	NoteMoyenne       float64 `json:"noteMoyenne"`
	GainsTotal        float64 `json:"gainsTotal"`
}

// PrestataireStats is the admin providers dashboard aggregate.
type PrestataireStats struct {
	Total       int `json:"total"`
	Valides     int `json:"valides"`
	EnAttente   int `json:"enAttente"`
	Disponibles int `json:"disponibles"`
}
