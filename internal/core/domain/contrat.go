package domain

// Contrat statuses.
const (
	ContratBrouillon        = "BROUILLON"
	ContratAttenteSignature = "EN_ATTENTE_SIGNATURE"
	ContratActif            = "ACTIF"
	ContratRefuse           = "REFUSE"
	ContratResilie          = "RESILIE"
)

// Contrat binds a merchant to the platform.
type Contrat struct {
	ID            int          `json:"idContrat,omitempty"`
	Commercant    *Utilisateur `json:"commercant,omitempty"`
	CommercantID  int          `json:"idCommercant,omitempty"`
	Statut        string       `json:"statut,omitempty"`
	DateDebut     string       `json:"dateDebut,omitempty"`
	DateFin       string       `json:"dateFin,omitempty"`
	Commission    float64      `json:"commission,omitempty"`
	TemplateID    int          `json:"idTemplate,omitempty"`
	Contenu       string       `json:"contenu,omitempty"`
	DateSignature string       `json:"dateSignature,omitempty"`
}

// ContratTemplate is an admin-managed contract body reused across merchants.
type ContratTemplate struct {
	ID      int    `json:"idTemplate,omitempty"`
	Nom     string `json:"nom"`
	Contenu string `json:"contenu"`
}

// ContratStats is the admin contracts dashboard aggregate.
type ContratStats struct {
	Total             int `json:"total"`
	Actifs            int `json:"actifs"`
	AttenteSignature  int `json:"enAttenteSignature"`
	Refuses           int `json:"refuses"`
}
