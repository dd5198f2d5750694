package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/agendaparoquial/server/internal/api"
	"github.com/agendaparoquial/server/internal/auth"
	"github.com/agendaparoquial/server/internal/config"
	"github.com/agendaparoquial/server/internal/http/ratelimit"
	"github.com/agendaparoquial/server/internal/metrics"
	"github.com/agendaparoquial/server/internal/store"
)

// NewRouter wires the admin API, the public registration endpoints and the
// operational routes.
func NewRouter(cfg *config.Config, st *store.Store) http.Handler {
	r := chi.NewRouter()

	// Public registration: tight limit, these are unauthenticated.
	publicoLimiter := ratelimit.NewIPRateLimiter(rate.Limit(2), 5, 5*time.Minute, cfg.TrustedProxies)
	// Admin API: generous limit for interactive use.
	apiLimiter := ratelimit.NewIPRateLimiter(rate.Limit(20), 50, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.HealthCheck(ctx); err != nil {
			http.Error(w, "unready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	handlers := api.New(st)
	sessao := auth.NewMiddleware(cfg.Auth.JWTSecret)

	r.Route("/inscricao/{filialId}/{slug}", func(r chi.Router) {
		r.Use(publicoLimiter.Middleware())
		r.Get("/", handlers.VerEventoPublico)
		r.Post("/", handlers.CriarInscricaoPublica)
	})

	r.Route("/{filialId}", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())
		r.Use(sessao.RequireSessao)

		r.Get("/Calendario", handlers.VerCalendario)

		r.Route("/Eventos", func(r chi.Router) {
			r.Get("/", handlers.ListarEventos)
			r.Post("/", handlers.CriarEvento)
			r.Get("/{id}", handlers.BuscarEvento)
			r.Put("/{id}", handlers.AtualizarEvento)
			r.Delete("/{id}", handlers.ExcluirEvento)
			r.Get("/{id}/inscricoes", handlers.ListarInscricoes)
			r.Get("/{id}/reserva", handlers.BuscarReservaDoEvento)
		})

		r.Route("/Salas", func(r chi.Router) {
			r.Get("/", handlers.ListarSalas)
			r.Post("/", handlers.CriarSala)
			r.Get("/pendentes", handlers.ListarSalasPendentes)
			r.Get("/{id}", handlers.BuscarSala)
			r.Put("/{id}", handlers.AtualizarSala)
			r.Put("/{id}/situacao", handlers.AtualizarSituacaoSala)
			r.Delete("/{id}", handlers.ExcluirSala)
		})

		r.Route("/TiposEventos", func(r chi.Router) {
			r.Get("/", handlers.ListarTiposEvento)
			r.Post("/", handlers.CriarTipoEvento)
			r.Put("/{id}", handlers.AtualizarTipoEvento)
		})

		r.Route("/TiposDeSalas", func(r chi.Router) {
			r.Get("/", handlers.ListarTiposDeSala)
			r.Post("/", handlers.CriarTipoDeSala)
			r.Put("/{id}", handlers.AtualizarTipoDeSala)
		})

		r.Route("/Interessados", func(r chi.Router) {
			r.Get("/", handlers.ListarInteressados)
			r.Post("/", handlers.CriarInteressado)
			r.Get("/{id}", handlers.BuscarInteressado)
			r.Put("/{id}", handlers.AtualizarInteressado)
			r.Delete("/{id}", handlers.ExcluirInteressado)
		})

		r.Route("/Reservas", func(r chi.Router) {
			r.Get("/", handlers.ListarReservas)
			r.Post("/", handlers.CriarReserva)
			r.Get("/{id}", handlers.BuscarReserva)
			r.Put("/{id}", handlers.AtualizarReserva)
			r.Post("/{id}/confirmar", handlers.ConfirmarReserva)
			r.Post("/{id}/parcelas", handlers.AdicionarParcela)
			r.Delete("/{id}/parcelas/{numero}", handlers.RemoverParcela)
		})

		r.Route("/FichaInscricaoBatismos", func(r chi.Router) {
			r.Get("/", handlers.ListarFichasInscricao)
			r.Get("/{id}/export", handlers.ExportarInscricoes)
		})
	})

	return r
}
