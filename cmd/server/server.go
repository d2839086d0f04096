// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/golazoapp/golazo/internal/api"
	"github.com/golazoapp/golazo/internal/api/console"
	"github.com/golazoapp/golazo/internal/config"
	"github.com/golazoapp/golazo/internal/scorer"
)

func newServer(cfg *config.Config, svc *scorer.Service) *http.Server {
	console.InitHandlers(svc)

	router := http.NewServeMux()
	registerRoutes(router)

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithAuth,
	)

	// The console UI is served from another origin.
	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(handler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session routes
	mux.HandleFunc("POST /api/v1/matches/{id}/mount", console.HandleMount)
	mux.HandleFunc("POST /api/v1/matches/{id}/unmount", console.HandleUnmount)

	// Views
	mux.HandleFunc("GET /api/v1/matches/{id}", console.HandleScoreboard)
	mux.HandleFunc("GET /api/v1/matches/{id}/clock", console.HandleClock)
	mux.HandleFunc("GET /api/v1/matches/{id}/timeline", console.HandleTimeline)

	// Lifecycle
	mux.HandleFunc("POST /api/v1/matches/{id}/start", console.HandleStartMatch)
	mux.HandleFunc("POST /api/v1/matches/{id}/end-first-half", console.HandleEndFirstHalf)
	mux.HandleFunc("POST /api/v1/matches/{id}/start-second-half", console.HandleStartSecondHalf)
	mux.HandleFunc("POST /api/v1/matches/{id}/finalize", console.HandleFinalizeMatch)
	mux.HandleFunc("POST /api/v1/matches/{id}/suspend", console.HandleSuspendMatch)
	mux.HandleFunc("POST /api/v1/matches/{id}/shootout", console.HandleShootout)
	mux.HandleFunc("POST /api/v1/matches/{id}/sync", console.HandleSyncMatch)

	// Incidents
	mux.HandleFunc("POST /api/v1/matches/{id}/goals", console.HandleCreateGoal)
	mux.HandleFunc("PUT /api/v1/matches/{id}/goals/{goalID}", console.HandleUpdateGoal)
	mux.HandleFunc("DELETE /api/v1/matches/{id}/goals/{goalID}", console.HandleDeleteGoal)
	mux.HandleFunc("POST /api/v1/matches/{id}/cards", console.HandleCreateCard)
	mux.HandleFunc("PUT /api/v1/matches/{id}/cards/{cardID}", console.HandleUpdateCard)
	mux.HandleFunc("DELETE /api/v1/matches/{id}/cards/{cardID}", console.HandleDeleteCard)
	mux.HandleFunc("POST /api/v1/matches/{id}/substitutions", console.HandleCreateSubstitution)
	mux.HandleFunc("DELETE /api/v1/matches/{id}/substitutions/{substitutionID}", console.HandleDeleteSubstitution)

	// Observations
	mux.HandleFunc("GET /api/v1/matches/{id}/observations", console.HandleGetObservations)
	mux.HandleFunc("PUT /api/v1/matches/{id}/observations", console.HandleSaveObservations)
}
