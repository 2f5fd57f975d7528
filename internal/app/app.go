// Package app assembles one application: storage, credential store, facade,
// domain stores and navigation guard share a single configuration surface.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ecodeli/ecodeli-go/internal/apiclient"
	"github.com/ecodeli/ecodeli-go/internal/core/domain"
	"github.com/ecodeli/ecodeli-go/internal/core/ports"
	"github.com/ecodeli/ecodeli-go/internal/geo"
	"github.com/ecodeli/ecodeli-go/internal/guard"
	"github.com/ecodeli/ecodeli-go/internal/infrastructure/config"
	"github.com/ecodeli/ecodeli-go/internal/session"
	"github.com/ecodeli/ecodeli-go/internal/storage"
	"github.com/ecodeli/ecodeli-go/internal/store"
)

// Application names.
const (
	Portal = "portal"
	Admin  = "admin"
)

// App is one assembled application.
type App struct {
	Name    string
	Session *session.Store
	Client  *apiclient.Client
	Guard   *guard.Guard

	Annonces           *store.Annonces
	AnnoncesCommercant *store.AnnoncesCommercant
	Candidatures       *store.Candidatures
	Livraisons         *store.Livraisons
	Users              *store.Users
	Services           *store.Services
	Prestataire        *store.PrestataireStore
	Payments           *store.Payments
	Planning           *store.Planning
	Contrats           *store.Contrats
	Maps               *geo.Maps

	AdminUsers        *store.AdminUsers
	AdminLivraisons   *store.AdminLivraisons
	AdminPrestataires *store.AdminPrestataires
}

// New assembles the named application. The admin console gets its own
// storage prefix, only accepts ADMIN sessions, and registers ADMIN accounts
// only.
func New(ctx context.Context, name string, cfg *config.Config, log zerolog.Logger) (*App, error) {
	if name != Portal && name != Admin {
		return nil, fmt.Errorf("unknown application %q", name)
	}

	prefix := cfg.SessionPrefix
	sessOpts := session.Options{Logger: log}
	if name == Admin {
		prefix = "admin_" + prefix
		sessOpts.RequiredRole = domain.RoleAdmin
		sessOpts.ForceRole = domain.RoleAdmin
	}

	st, err := newStorage(ctx, cfg, prefix)
	if err != nil {
		return nil, err
	}
	sessOpts.Storage = st
	sess := session.New(sessOpts)

	client := apiclient.New(apiclient.Config{
		BaseURL:           cfg.BaseURL,
		Logger:            log,
		Token:             sess.Token,
		OnUnauthorized:    sess.Invalidate,
		LogoutOnForbidden: cfg.LogoutOnForbidden,
	})
	sess.AttachClient(client)

	a := &App{
		Name:    name,
		Session: sess,
		Client:  client,

		Annonces:           store.NewAnnonces(client, log),
		AnnoncesCommercant: store.NewAnnoncesCommercant(client, log),
		Candidatures:       store.NewCandidatures(client, log),
		Livraisons:         store.NewLivraisons(client, log),
		Users:              store.NewUsers(client, log),
		Services:           store.NewServices(client, log),
		Prestataire:        store.NewPrestataire(client, log),
		Payments:           store.NewPayments(client, log),
		Planning:           store.NewPlanning(client, log),
		Contrats:           store.NewContrats(client, log),
		Maps:               geo.NewMaps(client, log),

		AdminUsers:        store.NewAdminUsers(client, log),
		AdminLivraisons:   store.NewAdminLivraisons(client, log),
		AdminPrestataires: store.NewAdminPrestataires(client, log),
	}

	switch name {
	case Admin:
		a.Guard = guard.New(guard.Config{
			Session:     sess,
			Routes:      guard.AdminRoutes(),
			Homes:       guard.AdminHomes,
			LoginPath:   "/admin/login",
			DefaultHome: "/admin/login",
		})
	default:
		a.Guard = guard.New(guard.Config{
			Session:     sess,
			Routes:      guard.PortalRoutes(),
			Homes:       guard.RoleHomes,
			LoginPath:   "/login",
			DefaultHome: "/",
		})
	}

	// an existing persisted session is adopted as-is; the first request
	// tells us whether the token still holds
	if err := sess.Restore(); err != nil {
		log.Warn().Err(err).Msg("session restore failed")
	}
	return a, nil
}

func newStorage(ctx context.Context, cfg *config.Config, prefix string) (ports.SessionStorage, error) {
	switch cfg.StorageBackend {
	case "redis":
		client, err := storage.Connect(ctx, storage.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis storage: %w", err)
		}
		return storage.NewRedisStorage(client, prefix, 0), nil
	case "file", "":
		fs, err := storage.NewFileStorage(cfg.StoragePath, prefix)
		if err != nil {
			return nil, fmt.Errorf("file storage: %w", err)
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
