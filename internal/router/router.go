package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"stamina-backend/internal/handlers"
	"stamina-backend/internal/middleware"
	"stamina-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	deckHandler *handlers.DeckHandler,
	studyHandler *handlers.StudyHandler,
	jobHandler *handlers.JobHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP); generation is limited
	// separately since each request costs a provider call.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	generateLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/guest", authHandler.Guest)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Deck Routes ────
		r.Route("/decks", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Group(func(r chi.Router) {
				r.Use(generateLimiter.Middleware)
				r.Post("/generate", deckHandler.Generate)
				r.Post("/upload", deckHandler.Upload)
			})

			r.Get("/", deckHandler.List)
			r.Get("/{id}", deckHandler.Get)
			r.Delete("/{id}", deckHandler.Delete)
			r.Put("/{id}/title", deckHandler.UpdateTitle)
		})

		// ──── Study Routes ────
		r.Route("/study", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/completions", studyHandler.RecordCompletion)
			r.Post("/sessions/finish", studyHandler.FinishSession)
			r.Get("/stamina", studyHandler.GetStamina)
			r.Get("/badges", studyHandler.GetBadges)
			r.Get("/activity", studyHandler.GetActivity)
		})

		// ──── Job Routes ────
		r.Route("/jobs", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/{id}", jobHandler.Get)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
