package domain

// DemandeService statuses.
const (
	DemandePubliee   = "PUBLIEE"
	DemandeEnCours   = "EN_COURS"
	DemandeTerminee  = "TERMINEE"
	DemandeAnnulee   = "ANNULEE"
)

// Mission statuses (an accepted service request becomes a mission).
const (
	MissionEnCours  = "EN_COURS"
	MissionTerminee = "TERMINEE"
)

// DemandeService is a client's request for a personal service (transport,
// home services, courses, ...).
type DemandeService struct {
	ID               int          `json:"idDemande,omitempty"`
	Titre            string       `json:"titre"`
	Description      string       `json:"description,omitempty"`
	CategorieService string       `json:"categorieService,omitempty"`
	Statut           string       `json:"statut,omitempty"`
	DateSouhaitee    string       `json:"dateSouhaitee,omitempty"`
	CreneauHoraire   string       `json:"creneauHoraire,omitempty"`
	Adresse          string       `json:"adresseDepart,omitempty"`
	Budget           float64      `json:"budget,omitempty"`
	Client           *Utilisateur `json:"client,omitempty"`
}

// ServiceCategory is one of the backend-defined service categories.
type ServiceCategory struct {
	Code        string `json:"code"`
	Libelle     string `json:"libelle"`
	Description string `json:"description,omitempty"`
}

// CandidaturePrestation is a provider's application for a service request.
type CandidaturePrestation struct {
	ID              int             `json:"idCandidature,omitempty"`
	Demande         *DemandeService `json:"demandeService,omitempty"`
	Statut          string          `json:"statut,omitempty"`
	Message         string          `json:"message,omitempty"`
	DateCandidature string          `json:"dateCandidature,omitempty"`
}

// Mission is a provider-side view of an accepted service request.
type Mission struct {
	ID          int             `json:"idMission,omitempty"`
	Demande     *DemandeService `json:"demandeService,omitempty"`
	Statut      string          `json:"statut,omitempty"`
	DateDebut   string          `json:"dateDebut,omitempty"`
	DateFin     string          `json:"dateFin,omitempty"`
	NoteClient  float64         `json:"noteClient,omitempty"`
}
