package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/diogo-costa-silva/portfolio/config"
	"github.com/diogo-costa-silva/portfolio/database"
	"github.com/diogo-costa-silva/portfolio/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Services are the long-lived collaborators the handlers share.
type Services struct {
	Loader *services.Loader
}

// cacheClearer drops every cached enrichment snapshot. *services.Loader
// satisfies it.
type cacheClearer interface {
	ClearCache() error
}

func NewServer(settings config.Settings, database database.Database, svc Services) (Server, error) {
	if svc.Loader == nil {
		return Server{}, fmt.Errorf("server needs a project loader")
	}

	address := fmt.Sprintf("0.0.0.0:%s", settings.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(database, withSettings(settings), withServices(svc), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
		IdleTimeout:  settings.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	settings    config.Settings
	services    Services
	startupTime time.Time
}

func withSettings(settings config.Settings) func(*router) {
	return func(r *router) {
		r.settings = settings
	}
}

func withServices(svc Services) func(*router) {
	return func(r *router) {
		r.services = svc
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	handlers := initializeHandlers(database, router.services, router.startupTime)

	authMiddleware := newAuthMiddleware(router.settings.AdminJWTSecret)

	acceptedOrigins := router.settings.AcceptedOrigins
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	setupPublicRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("HttpServer gracefully shut down")
	}
}
