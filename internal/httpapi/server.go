package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/httpapi/middleware"
	"github.com/hamed0406/deusexludus/internal/i18n"
	"github.com/hamed0406/deusexludus/internal/repo"
	"github.com/hamed0406/deusexludus/internal/roller"
)

// Limits are requests per minute and burst sizes per client.
type Limits struct {
	PublicRPM   int
	PublicBurst int
	AdminRPM    int
	AdminBurst  int
}

type Server struct {
	Logger   *zap.Logger
	Actors   repo.ActorStore
	Registry *domain.Registry
	Roller   *roller.Service
	Messages *i18n.Catalog

	// Chat upgrades websocket clients; nil disables the stream.
	Chat           http.Handler
	Keys           middleware.Keys
	Limits         Limits
	AllowedOrigins []string
	DefaultLocale  language.Tag

	edits actorLocks
}

func NewServer(l *zap.Logger, actors repo.ActorStore, reg *domain.Registry, rs *roller.Service, msgs *i18n.Catalog) *Server {
	return &Server{
		Logger:        l,
		Actors:        actors,
		Registry:      reg,
		Roller:        rs,
		Messages:      msgs,
		DefaultLocale: language.English,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(s.Logger))
	r.Use(chimw.Recoverer)
	r.Use(s.cors())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Browsers cannot set headers on websocket handshakes, so the chat
	// stream sits outside the key check.
	r.Get("/api/chat/ws", s.handleChat)

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Use(middleware.RequireAny(s.Keys))
		r.Use(s.rateLimit())

		r.Get("/api/types", s.handleTypes)
		r.Post("/api/checks/resolve", s.handleResolve)

		r.Get("/api/actors", s.handleListActors)
		r.Get("/api/actors/{id}", s.handleGetActor)
		r.Get("/api/actors/{id}/sheet", s.handleSheet)
		r.Get("/api/actors/{id}/checks", s.handleHistory)
		r.Post("/api/actors/{id}/skills/{skill}/roll", s.handleRoll)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(s.Keys))
			r.Post("/api/actors", s.handleCreateActor)
			r.Put("/api/actors/{id}", s.handleUpdateActor)
			r.Delete("/api/actors/{id}", s.handleDeleteActor)
			r.Post("/api/actors/{id}/items", s.handleAddItem)
			r.Delete("/api/actors/{id}/items/{itemID}", s.handleRemoveItem)
			r.Post("/api/actors/{id}/attributes/{attr}/{direction}", s.handleAdjustAttribute)
			r.Post("/api/actors/{id}/effects", s.handleAddEffect)
			r.Delete("/api/actors/{id}/effects/{effectID}", s.handleRemoveEffect)
			r.Post("/api/actors/{id}/effects/{effectID}/toggle", s.handleToggleEffect)
		})
	})
	return r
}

func (s *Server) cors() func(http.Handler) http.Handler {
	if len(s.AllowedOrigins) == 0 {
		return cors.AllowAll().Handler
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}

// rateLimit applies the admin budget to admin keys and the public budget
// to everyone else.
func (s *Server) rateLimit() func(http.Handler) http.Handler {
	pub := middleware.RateLimit(s.Limits.PublicRPM, s.Limits.PublicBurst)
	adm := middleware.RateLimit(s.Limits.AdminRPM, s.Limits.AdminBurst)
	return func(next http.Handler) http.Handler {
		p, a := pub(next), adm(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if middleware.IsAdmin(s.Keys, r) {
				a.ServeHTTP(w, r)
				return
			}
			p.ServeHTTP(w, r)
		})
	}
}

// locale picks the response language from ?lang= or Accept-Language.
func (s *Server) locale(r *http.Request) language.Tag {
	accept := r.URL.Query().Get("lang")
	if accept == "" {
		accept = r.Header.Get("Accept-Language")
	}
	if accept == "" {
		return s.DefaultLocale
	}
	return s.Messages.Match(accept)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.Chat == nil {
		writeError(w, http.StatusNotFound, "chat stream disabled")
		return
	}
	s.Chat.ServeHTTP(w, r)
}
