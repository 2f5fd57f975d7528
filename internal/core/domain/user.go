package domain

// User roles as issued by the backend in the userType field.
const (
	RoleClient      = "CLIENT"
	RoleLivreur     = "LIVREUR"
	RolePrestataire = "PRESTATAIRE"
	RoleCommercant  = "COMMERCANT"
	RoleAdmin       = "ADMIN"
)

// Roles lists every role the backend can issue.
var Roles = []string{RoleClient, RoleLivreur, RolePrestataire, RoleCommercant, RoleAdmin}

// ValidRole reports whether r is a role known to the platform.
func ValidRole(r string) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Utilisateur is the backend user profile. Field names mirror the backend
// JSON contract verbatim; the client never invents identifiers.
type Utilisateur struct {
	ID         int    `json:"idUtilisateur,omitempty"`
	Prenom     string `json:"prenom"`
	Nom        string `json:"nom"`
	Email      string `json:"email"`
	UserType   string `json:"userType"`
	Telephone  string `json:"telephone,omitempty"`
	Adresse    string `json:"adresse,omitempty"`
	Ville      string `json:"ville,omitempty"`
	CodePostal string `json:"codePostal,omitempty"`
	Pays       string `json:"pays,omitempty"`
}

// DisplayName renders the profile as "prenom nom", the form every
// application shows in its header.
func (u *Utilisateur) DisplayName() string {
	if u == nil {
		return ""
	}
	return u.Prenom + " " + u.Nom
}

// UserStats is the admin users dashboard aggregate.
type UserStats struct {
	Total        int `json:"total"`
	Clients      int `json:"clients"`
	Livreurs     int `json:"livreurs"`
	Prestataires int `json:"prestataires"`
	Commercants  int `json:"commercants"`
	Admins       int `json:"admins"`
}

// RegisterInput is the registration payload. MotDePasse is write-only.
type RegisterInput struct {
	Prenom     string `json:"prenom" validate:"required"`
	Nom        string `json:"nom" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	MotDePasse string `json:"motDePasse" validate:"required,min=8"`
	UserType   string `json:"userType" validate:"required"`
	Telephone  string `json:"telephone,omitempty"`
	Adresse    string `json:"adresse,omitempty"`
	Ville      string `json:"ville,omitempty"`
	CodePostal string `json:"codePostal,omitempty"`
}
