package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

func newAdminLivraisonsStore(t *testing.T, handler http.Handler) *AdminLivraisons {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := apiclient.New(apiclient.Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	return NewAdminLivraisons(api, zerolog.Nop())
}

func TestUpdateStatutReplacesOnlyTargetDelivery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/livraisons", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Livraison{
			{ID: 4, Statut: domain.LivraisonEnCours},
			{ID: 5, Statut: domain.LivraisonEnCours},
			{ID: 6, Statut: domain.LivraisonValidee},
		})
	})
	mux.HandleFunc("PUT /admin/livraisons/5/statut", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(domain.Livraison{ID: 5, Statut: body["statut"]})
	})
	store := newAdminLivraisonsStore(t, mux)

	if _, err := store.List(context.Background(), ""); err != nil {
		t.Fatalf("list: %v", err)
	}
	updated, err := store.UpdateStatut(context.Background(), 5, domain.LivraisonTerminee)
	if err != nil {
		t.Fatalf("update statut: %v", err)
	}
	if updated.Statut != domain.LivraisonTerminee {
		t.Fatalf("returned statut = %q", updated.Statut)
	}

	items := store.Items()
	if len(items) != 3 {
		t.Fatalf("cached items = %d, want 3", len(items))
	}
	for _, l := range items {
		switch l.ID {
		case 5:
			if l.Statut != domain.LivraisonTerminee {
				t.Errorf("delivery 5 statut = %q, want %q", l.Statut, domain.LivraisonTerminee)
			}
		case 4:
			if l.Statut != domain.LivraisonEnCours {
				t.Errorf("delivery 4 was touched: %q", l.Statut)
			}
		case 6:
			if l.Statut != domain.LivraisonValidee {
				t.Errorf("delivery 6 was touched: %q", l.Statut)
			}
		}
	}
}

func TestListFiltersByStatut(t *testing.T) {
	var gotStatut string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/livraisons", func(w http.ResponseWriter, r *http.Request) {
		gotStatut = r.URL.Query().Get("statut")
		json.NewEncoder(w).Encode([]domain.Livraison{{ID: 9, Statut: domain.LivraisonEnCours}})
	})
	store := newAdminLivraisonsStore(t, mux)

	if _, err := store.List(context.Background(), domain.LivraisonEnCours); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotStatut != domain.LivraisonEnCours {
		t.Errorf("statut query = %q, want %q", gotStatut, domain.LivraisonEnCours)
	}
}
