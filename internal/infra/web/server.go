package web

import (
	"net/http"
	"strings"
	"time"

	"school-platform/internal/infra/api"
	"school-platform/internal/infra/redis"
	"school-platform/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	viewerUC    usecase.ViewerUseCase
	ticketUC    usecase.TicketUseCase
	catalogUC   usecase.CatalogUseCase
	cartUC      usecase.CartUseCase
	checkoutUC  usecase.CheckoutUseCase
	limiter      *redis.RateLimiter
	redeemLimit  int
	apiKey       string
	providerName string
	log          *zerolog.Logger
}

func NewServer(
	viewerUC usecase.ViewerUseCase,
	ticketUC usecase.TicketUseCase,
	catalogUC usecase.CatalogUseCase,
	cartUC usecase.CartUseCase,
	checkoutUC usecase.CheckoutUseCase,
	limiter *redis.RateLimiter,
	redeemLimit int,
	apiKey string,
	providerName string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		viewerUC:     viewerUC,
		ticketUC:     ticketUC,
		catalogUC:    catalogUC,
		cartUC:       cartUC,
		checkoutUC:   checkoutUC,
		limiter:      limiter,
		redeemLimit:  redeemLimit,
		apiKey:       apiKey,
		providerName: providerName,
		log:          logger,
	}
}

// Router assembles the full HTTP surface: the public viewer gateway, the
// storefront API and the operational endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(api.Recover(s.log))
	r.Use(api.TraceID(s.log))
	r.Use(api.RequestLog(s.log))
	r.Use(api.Timeout(15 * time.Second))

	r.Post("/redeem", s.redeemHandler)
	r.Get("/proxy", s.proxyHandler)
	r.Get("/viewer", s.viewerHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/books", s.booksListHandler)
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.cartGetHandler)
			r.Post("/items", s.cartAddHandler)
			r.Delete("/items/{bookID}", s.cartRemoveHandler)
		})
		r.Post("/checkout", s.checkoutHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.adminAuth)
			r.Post("/books", s.bookCreateHandler)
			r.Put("/books/{id}", s.bookUpdateHandler)
			r.Delete("/books/{id}", s.bookDeleteHandler)
			r.Post("/books/{id}/codes", s.codesGenerateHandler)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// adminAuth provides simple Bearer token authentication for the admin API.
func (s *Server) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("Admin API key is not configured")
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if parts[1] != s.apiKey {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}
