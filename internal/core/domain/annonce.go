package domain

// Annonce lifecycle statuses as written by the backend.
const (
	AnnonceActive     = "ACTIVE"
	AnnonceValidee    = "VALIDEE"
	AnnonceEnCours    = "EN_COURS"
	AnnonceSegment1   = "SEGMENT_1_EN_COURS"
	AnnonceSegment2   = "SEGMENT_2_EN_COURS"
	AnnonceTerminee   = "TERMINEE"
	AnnonceAnnulee    = "ANNULEE"
	AnnonceEnAttente  = "EN_ATTENTE_VALIDATION"
	AnnoncePubliee    = "PUBLIEE"
	AnnonceApprouvee  = "APPROUVEE"
	AnnonceRejetee    = "REJETEE"
	AnnonceExpiree    = "EXPIREE"
)

// Annonce is a delivery listing published by a client or merchant.
type Annonce struct {
	ID                    int          `json:"idAnnonce,omitempty"`
	Titre                 string       `json:"titre"`
	Description           string       `json:"description,omitempty"`
	AdresseDepart         string       `json:"adresseDepart"`
	AdresseFin            string       `json:"adresseFin"`
	PrixUnitaire          float64      `json:"prixUnitaire,omitempty"`
	Statut                string       `json:"statut,omitempty"`
	TypeAnnonce           string       `json:"typeAnnonce,omitempty"`
	DateDebut             string       `json:"dateDebut,omitempty"`
	DateFin               string       `json:"dateFin,omitempty"`
	LivraisonPartielle    bool         `json:"livraisonPartielle,omitempty"`
	EntrepotIntermediaire string       `json:"entrepotIntermediaire,omitempty"`
	Colis                 *Colis       `json:"colis,omitempty"`
	Expediteur            *Utilisateur `json:"expediteur,omitempty"`
	Destinataire          *Utilisateur `json:"destinataire,omitempty"`
	Livreur               *Utilisateur `json:"livreur,omitempty"`
	EmailDestinataire     string       `json:"emailDestinataire,omitempty"`
}

// Colis describes the parcel attached to a listing.
type Colis struct {
	Poids       float64 `json:"poids"`
	Longueur    float64 `json:"longueur,omitempty"`
	Largeur     float64 `json:"largeur,omitempty"`
	Hauteur     float64 `json:"hauteur,omitempty"`
	Fragile     bool    `json:"fragile,omitempty"`
	Description string  `json:"description,omitempty"`
}

// DistanceQuote is the backend's answer to a distance/price estimation for a
// pair of addresses.
type DistanceQuote struct {
	Distance   float64 `json:"distance"`
	Prix       float64 `json:"prix"`
	TarifParKm float64 `json:"tarifParKm"`
}

// DeliveryCode is the one-time code exchanged at handover.
type DeliveryCode struct {
	Code    string `json:"code,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
