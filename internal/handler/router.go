package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	dialogueHandler "github.com/aokiyuki/cocoro/backend/internal/handler/dialogue"
	qualityHandler "github.com/aokiyuki/cocoro/backend/internal/handler/quality"
	middlewarePkg "github.com/aokiyuki/cocoro/backend/internal/middleware"
	"github.com/aokiyuki/cocoro/backend/internal/service/engine"
	"github.com/aokiyuki/cocoro/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the dialogue engine.
func NewRouter(eng *engine.Engine) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	dlgHandler := dialogueHandler.New(eng)
	wsHandler := dialogueHandler.NewWebSocketHandler(eng)
	qltyHandler := qualityHandler.New(eng)

	r.Route("/api", func(api chi.Router) {
		dlgHandler.RegisterRoutes(api)
		wsHandler.RegisterWebSocketRoutes(api)
		qltyHandler.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
