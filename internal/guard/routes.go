package guard

import "github.com/ecodeli/ecodeli-go/internal/core/domain"

// RoleHomes maps each userType to its authenticated home route in the user
// portal: the lowercased role name, as the original applications derived it.
var RoleHomes = map[string]string{
	domain.RoleClient:      "/client",
	domain.RoleLivreur:     "/livreur",
	domain.RoleCommercant:  "/commercant",
	domain.RolePrestataire: "/prestataire",
	domain.RoleAdmin:       "/admin",
}

// PortalRoutes is the user portal route table.
func PortalRoutes() []Route {
	return []Route{
		{Path: "/", Name: "home"},
		{Path: "/login", Name: "login", RequiresGuest: true},
		{Path: "/register", Name: "register", RequiresGuest: true},
		{Path: "/profile", Name: "profile", RequiresAuth: true},

		{Path: "/client", Name: "client", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/client/annonces", Name: "client-annonces", RequiresAuth: true},
		{Path: "/client/create-annonce", Name: "client-create-annonce", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/client/candidatures-partielles/:id", Name: "client-candidatures-partielles", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/client/demande-service", Name: "client-demande-service", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/client/demandes-services", Name: "client-demandes-services", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/client/demandes-services/:id/candidatures", Name: "client-candidatures-recues", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/client/services", Name: "client-mes-services", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/client/mission/:id/validation", Name: "client-validation-mission", RequiresAuth: true, Role: domain.RoleClient},
		{Path: "/paiement/:annonceId", Name: "paiement-annonce", RequiresAuth: true, Role: domain.RoleClient},

		{Path: "/livreur", Name: "livreur", RequiresAuth: true, Role: domain.RoleLivreur},
		{Path: "/livreur/livraisons", Name: "livreur-livraisons", RequiresAuth: true, Role: domain.RoleLivreur},
		{Path: "/livreur/partielles", Name: "livreur-partielles", RequiresAuth: true, Role: domain.RoleLivreur},
		{Path: "/livreur/portefeuille", Name: "livreur-portefeuille", RequiresAuth: true, Role: domain.RoleLivreur},

		{Path: "/commercant", Name: "commercant", RequiresAuth: true, Role: domain.RoleCommercant},

		{Path: "/prestataire", Name: "prestataire", RequiresAuth: true, Role: domain.RolePrestataire},
		{Path: "/prestataire/profil", Name: "prestataire-profil", RequiresAuth: true, Role: domain.RolePrestataire},
		{Path: "/prestataire/demandes", Name: "prestataire-demandes", RequiresAuth: true, Role: domain.RolePrestataire},
		{Path: "/prestataire/candidatures", Name: "prestataire-candidatures", RequiresAuth: true, Role: domain.RolePrestataire},
		{Path: "/prestataire/missions", Name: "prestataire-missions", RequiresAuth: true, Role: domain.RolePrestataire},
		{Path: "/prestataire/evaluations", Name: "prestataire-evaluations", RequiresAuth: true, Role: domain.RolePrestataire},
		{Path: "/prestataire/portefeuille", Name: "prestataire-portefeuille", RequiresAuth: true, Role: domain.RolePrestataire},
	}
}

// AdminRoutes is the admin console route table: guest auth routes plus an
// ADMIN-only subtree.
func AdminRoutes() []Route {
	return []Route{
		{Path: "/admin/login", Name: "admin-login", RequiresGuest: true},
		{Path: "/admin/register", Name: "admin-register", RequiresGuest: true},

		{Path: "/admin", Name: "admin", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/dashboard", Name: "admin-dashboard", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/users", Name: "admin-users", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/users/create", Name: "admin-users-create", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/users/:id/edit", Name: "admin-users-edit", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/livraisons", Name: "admin-livraisons", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/prestataires", Name: "admin-prestataires", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/contrats", Name: "admin-contrats", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/stats", Name: "admin-stats", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/admin/settings", Name: "admin-settings", RequiresAuth: true, Role: domain.RoleAdmin},
	}
}

// AdminHomes routes every role of the admin console back to the login page
// except ADMIN itself: the console has no destination for other roles.
var AdminHomes = map[string]string{
	domain.RoleAdmin: "/admin/dashboard",
}
