package domain

// Livraison statuses.
const (
	LivraisonValidee    = "VALIDEE"
	LivraisonEnCours    = "EN_COURS"
	LivraisonArriveeEntrepot = "ARRIVED"
	LivraisonTerminee   = "TERMINEE"
	LivraisonAnnulee    = "ANNULEE"
)

// Livraison is a delivery derived from an accepted listing.
type Livraison struct {
	ID           int          `json:"idLivraison,omitempty"`
	Statut       string       `json:"statut,omitempty"`
	TypeLivraison string      `json:"typeLivraison,omitempty"`
	AdresseDepart string      `json:"adresseEnvoi,omitempty"`
	AdresseFin   string       `json:"adresseDeLivraison,omitempty"`
	DateDebut    string       `json:"dateDebut,omitempty"`
	DateFin      string       `json:"dateFin,omitempty"`
	Annonce      *Annonce     `json:"annonce,omitempty"`
	Expediteur   *Utilisateur `json:"expediteur,omitempty"`
	Destinataire *Utilisateur `json:"destinataire,omitempty"`
	Livreur      *Utilisateur `json:"livreur,omitempty"`
	OTPRequired  bool         `json:"otpRequired,omitempty"`
}

// OTPResult reports the outcome of a handover code validation.
type OTPResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LivraisonStats is the admin dashboard aggregate.
type LivraisonStats struct {
	Total     int `json:"total"`
	EnCours   int `json:"enCours"`
	Terminees int `json:"terminees"`
	Annulees  int `json:"annulees"`
}
