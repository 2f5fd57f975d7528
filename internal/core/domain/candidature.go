package domain

// Candidature statuses.
const (
	CandidatureEnAttente = "EN_ATTENTE"
	CandidatureAcceptee  = "ACCEPTEE"
	CandidatureRefusee   = "REFUSEE"
)

// Delivery segments for partial deliveries routed through a warehouse.
const (
	SegmentDepartEntrepot      = 1
	SegmentEntrepotDestination = 2
)

// Candidature is a courier's application for a delivery listing. For partial
// deliveries the candidature targets one of the two segments and may name the
// intermediate warehouse the courier prefers.
type Candidature struct {
	ID             int          `json:"idCandidature,omitempty"`
	AnnonceID      int          `json:"annonceId,omitempty"`
	Annonce        *Annonce     `json:"annonce,omitempty"`
	Livreur        *Utilisateur `json:"livreur,omitempty"`
	LivreurID      int          `json:"livreurId,omitempty"`
	Statut         string       `json:"statut,omitempty"`
	Segment        int          `json:"segment,omitempty"`
	EntrepotChoisi string       `json:"entrepotChoisi,omitempty"`
	MessageLivreur string       `json:"messageLivreur,omitempty"`
	Commentaire    string       `json:"commentaire,omitempty"`
	DateCandidature string      `json:"dateCandidature,omitempty"`
}

// SegmentCandidatures groups the candidatures received per delivery segment
// of a partial listing.
type SegmentCandidatures struct {
	Segment1 []Candidature `json:"segment1"`
	Segment2 []Candidature `json:"segment2"`
}
