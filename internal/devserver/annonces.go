package devserver

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "identifiant invalide")
	}
	return id, nil
}

// AnnonceHandler keeps listings in memory and drives their statut
// lifecycle. State is lost on restart, which is fine for development.
type AnnonceHandler struct {
	mu     sync.Mutex
	nextID int
	items  map[int]*domain.Annonce
	codes  map[int]string
	log    zerolog.Logger
}

func NewAnnonceHandler(log zerolog.Logger) *AnnonceHandler {
	return &AnnonceHandler{nextID: 1, items: make(map[int]*domain.Annonce), codes: make(map[int]string), log: log}
}

func (h *AnnonceHandler) List(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, h.collect(func(*domain.Annonce) bool { return true }))
}

func (h *AnnonceHandler) ListAvailable(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, h.collect(func(a *domain.Annonce) bool {
		return a.Statut == domain.AnnonceActive || a.Statut == domain.AnnonceValidee
	}))
}

func (h *AnnonceHandler) ListByUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, h.collect(func(a *domain.Annonce) bool {
		return a.Expediteur != nil && a.Expediteur.ID == id
	}))
}

func (h *AnnonceHandler) ListByLivreur(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, h.collect(func(a *domain.Annonce) bool {
		return a.Livreur != nil && a.Livreur.ID == id
	}))
}

func (h *AnnonceHandler) Create(c echo.Context) error {
	var a domain.Annonce
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}
	if a.Titre == "" || a.AdresseDepart == "" || a.AdresseFin == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "titre et adresses sont obligatoires")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	a.ID = h.nextID
	h.nextID++
	if a.Statut == "" {
		a.Statut = domain.AnnonceActive
	}
	if callerID, _ := c.Get("idUtilisateur").(int); callerID != 0 && a.Expediteur == nil {
		a.Expediteur = &domain.Utilisateur{ID: callerID}
	}
	h.items[a.ID] = &a
	h.log.Info().Int("id_annonce", a.ID).Msg("listing created")
	return c.JSON(http.StatusCreated, a)
}

func (h *AnnonceHandler) Cancel(c echo.Context) error {
	return h.transition(c, map[string]bool{
		domain.AnnonceActive:  true,
		domain.AnnonceValidee: true,
	}, domain.AnnonceAnnulee)
}

func (h *AnnonceHandler) Take(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body struct {
		LivreurID int `json:"livreurId"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Statut != domain.AnnonceActive {
		return fmt.Errorf("%w: annonce %d est %s", domain.ErrInvalidTransition, id, a.Statut)
	}
	a.Statut = domain.AnnonceValidee
	a.Livreur = &domain.Utilisateur{ID: body.LivreurID}
	return c.JSON(http.StatusOK, a)
}

func (h *AnnonceHandler) StartDelivery(c echo.Context) error {
	return h.transition(c, map[string]bool{domain.AnnonceValidee: true}, domain.AnnonceEnCours)
}

func (h *AnnonceHandler) CompleteDelivery(c echo.Context) error {
	return h.transition(c, map[string]bool{
		domain.AnnonceEnCours:  true,
		domain.AnnonceSegment2: true,
	}, domain.AnnonceTerminee)
}

// GenerateDeliveryCode issues the handover code for a listing.
func (h *AnnonceHandler) GenerateDeliveryCode(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.items[id]; !ok {
		return domain.ErrNotFound
	}
	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	h.codes[id] = code
	return c.JSON(http.StatusOK, domain.DeliveryCode{Code: code, Success: true})
}

// ValidateDeliveryCode checks the handover code; a valid code is consumed.
func (h *AnnonceHandler) ValidateDeliveryCode(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "charge utile invalide")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.items[id]; !ok {
		return domain.ErrNotFound
	}
	if h.codes[id] == "" || h.codes[id] != body.Code {
		return c.JSON(http.StatusOK, domain.DeliveryCode{Success: false, Message: "code invalide"})
	}
	delete(h.codes, id)
	return c.JSON(http.StatusOK, domain.DeliveryCode{Success: true, Message: "code validé"})
}

func (h *AnnonceHandler) transition(c echo.Context, from map[string]bool, to string) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !from[a.Statut] {
		return fmt.Errorf("%w: annonce %d est %s", domain.ErrInvalidTransition, id, a.Statut)
	}
	a.Statut = to
	return c.JSON(http.StatusOK, a)
}

// collect snapshots matching listings ordered newest first, the order the
// client renders. Callers hold the lock.
func (h *AnnonceHandler) collect(match func(*domain.Annonce) bool) []domain.Annonce {
	out := make([]domain.Annonce, 0, len(h.items))
	for id := h.nextID - 1; id >= 1; id-- {
		if a, ok := h.items[id]; ok && match(a) {
			out = append(out, *a)
		}
	}
	return out
}
