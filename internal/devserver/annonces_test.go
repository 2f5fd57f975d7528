package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
	"github.com/ecodeli/ecodeli-go/internal/store"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = newValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerAnnonceRoutes(e *echo.Echo, h *AnnonceHandler) {
	e.GET("/annonces", h.List)
	e.POST("/annonces", h.Create)
	e.GET("/annonces/available", h.ListAvailable)
	e.GET("/annonces/livreur/:id", h.ListByLivreur)
	e.PUT("/annonces/:id/cancel", h.Cancel)
	e.PUT("/annonces/:id/take", h.Take)
	e.PUT("/annonces/:id/start-delivery", h.StartDelivery)
	e.PUT("/annonces/:id/complete", h.CompleteDelivery)
	e.POST("/annonces/:id/generate-code", h.GenerateDeliveryCode)
	e.POST("/annonces/:id/validate-code", h.ValidateDeliveryCode)
}

func TestAnnonceLifecycle(t *testing.T) {
	e := newEcho()
	registerAnnonceRoutes(e, NewAnnonceHandler(zerolog.Nop()))

	rec := doJSON(e, http.MethodPost, "/annonces",
		`{"titre":"colis","adresseDepart":"Paris","adresseFin":"Lyon"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Annonce
	json.Unmarshal(rec.Body.Bytes(), &created)
	if created.ID != 1 || created.Statut != domain.AnnonceActive {
		t.Fatalf("created = %+v", created)
	}

	if rec := doJSON(e, http.MethodPut, "/annonces/1/take", `{"livreurId":3}`); rec.Code != http.StatusOK {
		t.Fatalf("take = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(e, http.MethodPut, "/annonces/1/start-delivery", ""); rec.Code != http.StatusOK {
		t.Fatalf("start = %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(e, http.MethodPut, "/annonces/1/complete", ""); rec.Code != http.StatusOK {
		t.Fatalf("complete = %d: %s", rec.Code, rec.Body.String())
	}

	// terminal state refuses further transitions
	rec = doJSON(e, http.MethodPut, "/annonces/1/start-delivery", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("restart after completion = %d, want 422", rec.Code)
	}
}

func TestAnnonceCancelRefusedOnceEnCours(t *testing.T) {
	e := newEcho()
	registerAnnonceRoutes(e, NewAnnonceHandler(zerolog.Nop()))

	doJSON(e, http.MethodPost, "/annonces", `{"titre":"colis","adresseDepart":"Paris","adresseFin":"Lille"}`)
	doJSON(e, http.MethodPut, "/annonces/1/take", `{"livreurId":3}`)
	doJSON(e, http.MethodPut, "/annonces/1/start-delivery", "")

	rec := doJSON(e, http.MethodPut, "/annonces/1/cancel", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("cancel while EN_COURS = %d, want 422", rec.Code)
	}
}

func TestAvailableExcludesTakenListings(t *testing.T) {
	e := newEcho()
	registerAnnonceRoutes(e, NewAnnonceHandler(zerolog.Nop()))

	doJSON(e, http.MethodPost, "/annonces", `{"titre":"a","adresseDepart":"Paris","adresseFin":"Lyon"}`)
	doJSON(e, http.MethodPost, "/annonces", `{"titre":"b","adresseDepart":"Lille","adresseFin":"Rennes"}`)
	doJSON(e, http.MethodPut, "/annonces/1/take", `{"livreurId":3}`)
	doJSON(e, http.MethodPut, "/annonces/1/start-delivery", "")

	rec := doJSON(e, http.MethodGet, "/annonces/available", "")
	var items []domain.Annonce
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("available = %+v, want only listing 2", items)
	}
}

func TestDeliveryCodeRoundtrip(t *testing.T) {
	e := newEcho()
	registerAnnonceRoutes(e, NewAnnonceHandler(zerolog.Nop()))

	doJSON(e, http.MethodPost, "/annonces", `{"titre":"colis","adresseDepart":"Paris","adresseFin":"Lyon"}`)

	rec := doJSON(e, http.MethodPost, "/annonces/1/generate-code", "")
	var issued domain.DeliveryCode
	json.Unmarshal(rec.Body.Bytes(), &issued)
	if !issued.Success || len(issued.Code) != 6 {
		t.Fatalf("issued = %+v", issued)
	}

	rec = doJSON(e, http.MethodPost, "/annonces/1/validate-code", `{"code":"`+issued.Code+`"}`)
	var result domain.DeliveryCode
	json.Unmarshal(rec.Body.Bytes(), &result)
	if !result.Success {
		t.Errorf("valid code rejected: %+v", result)
	}

	// a consumed code no longer validates
	rec = doJSON(e, http.MethodPost, "/annonces/1/validate-code", `{"code":"`+issued.Code+`"}`)
	json.Unmarshal(rec.Body.Bytes(), &result)
	if result.Success {
		t.Error("consumed code accepted twice")
	}
}

// The courier store methods must resolve against the routes the server
// registers: a drift in either side breaks the local loop.
func TestCourierFlowReachableThroughStore(t *testing.T) {
	e := newEcho()
	registerAnnonceRoutes(e, NewAnnonceHandler(zerolog.Nop()))
	srv := httptest.NewServer(e)
	defer srv.Close()

	api := apiclient.New(apiclient.Config{BaseURL: srv.URL, Logger: zerolog.Nop()})
	annonces := store.NewAnnonces(api, zerolog.Nop())
	ctx := context.Background()

	created, err := annonces.Create(ctx, domain.Annonce{
		Titre: "colis", AdresseDepart: "Paris", AdresseFin: "Lyon",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := annonces.Take(ctx, created.ID, 3); err != nil {
		t.Fatalf("Take: %v", err)
	}
	if err := annonces.StartDelivery(ctx, created.ID); err != nil {
		t.Fatalf("StartDelivery: %v", err)
	}
	if err := annonces.CompleteDelivery(ctx, created.ID); err != nil {
		t.Fatalf("CompleteDelivery: %v", err)
	}
	if _, err := annonces.GenerateDeliveryCode(ctx, created.ID); err != nil {
		t.Fatalf("GenerateDeliveryCode: %v", err)
	}
	mine, err := annonces.ListByLivreur(ctx, 3)
	if err != nil {
		t.Fatalf("ListByLivreur: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Errorf("ListByLivreur = %+v, want the taken listing", mine)
	}
}

func TestErrorEnvelopeCarriesMessage(t *testing.T) {
	e := newEcho()
	registerAnnonceRoutes(e, NewAnnonceHandler(zerolog.Nop()))

	rec := doJSON(e, http.MethodPut, "/annonces/99/cancel", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown listing = %d, want 404", rec.Code)
	}
	var env map[string]string
	json.Unmarshal(rec.Body.Bytes(), &env)
	if env["message"] == "" {
		t.Errorf("error envelope = %s, want a message field", rec.Body.String())
	}
}
