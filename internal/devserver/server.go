// Package devserver is a local development backend implementing the HTTP
// contract the client consumes: /auth over mongo-backed accounts, an
// in-memory listing store with the full statut lifecycle, redis-deduplicated
// payment intents, profile routes and health probes. It exists so the client
// core can be exercised end to end; it is not a production backend.
package devserver

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecodeli/ecodeli-go/internal/core/domain"
)

// NewRouter builds the Echo instance with all routes registered. Every
// route lives under the /api prefix the client expects.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ecodeli_dev"))
	e.GET("/metrics", echoprometheus.NewHandler())

	users := NewUserRepository(db)
	authService := NewAuthService(users, jwtSecret)
	authHandler := NewAuthHandler(authService)
	annonces := NewAnnonceHandler(log)
	payments := NewPaymentHandler(NewIntentDeduper(rdb), log)
	profile := NewProfileHandler(users)

	authed := Auth(jwtSecret)

	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	a := api.Group("/annonces", authed)
	a.GET("", annonces.List)
	a.POST("", annonces.Create, RBAC(domain.RoleClient, domain.RoleCommercant, domain.RoleAdmin))
	a.GET("/available", annonces.ListAvailable)
	a.GET("/user/:id", annonces.ListByUser)
	a.GET("/livreur/:id", annonces.ListByLivreur)
	a.PUT("/:id/cancel", annonces.Cancel)
	a.PUT("/:id/take", annonces.Take, RBAC(domain.RoleLivreur))
	a.PUT("/:id/start-delivery", annonces.StartDelivery, RBAC(domain.RoleLivreur))
	a.PUT("/:id/complete", annonces.CompleteDelivery, RBAC(domain.RoleLivreur))
	a.POST("/:id/generate-code", annonces.GenerateDeliveryCode)
	a.POST("/:id/validate-code", annonces.ValidateDeliveryCode)

	p := api.Group("/payments", authed)
	p.POST("/create-intent", payments.CreateIntent)
	p.POST("/confirm", payments.Confirm)
	p.GET("/annonce/:id", payments.InfoByAnnonce)

	api.GET("/users/profile/:id", profile.Get, authed)
	api.PUT("/users/profile/:id", profile.Update, authed)

	health := NewHealthHandler(db, rdb)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)

	return e
}
