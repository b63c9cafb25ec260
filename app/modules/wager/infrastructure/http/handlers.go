package wagerhttp

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	wagerservice "github.com/Black-And-White-Club/wager-bot/app/modules/wager/application"
	"github.com/Black-And-White-Club/wager-bot/pkg/attr"
	"github.com/Black-And-White-Club/wager-bot/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Handlers serves the read-only wager API.
type Handlers struct {
	service wagerservice.Service
	logger  *slog.Logger
}

func NewHandlers(service wagerservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Options configure Mount.
type Options struct {
	RequestsPerSecond float64
	Burst             int
	AllowedOrigins    []string
	// Tokens, when set, puts every route behind bearer-token auth.
	Tokens jwt.Service
}

// Mount registers the wager routes under /api/wagers.
func Mount(router chi.Router, h *Handlers, opts Options) {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 10
	}
	limiter := NewIPRateLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst)

	router.Route("/api/wagers", func(r chi.Router) {
		r.Use(CORSMiddleware(opts.AllowedOrigins))
		r.Use(RateLimitMiddleware(limiter))
		if opts.Tokens != nil {
			r.Use(AuthMiddleware(opts.Tokens))
		}

		r.Get("/balances", h.HandleBalances)
		r.Get("/balances/{playerID}", h.HandleBalance)
		r.Get("/bets", h.HandleBets)
		r.Get("/chart.png", h.HandleChart)
	})
}

func (h *Handlers) HandleBalances(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, h.service.Balances(r.Context()))
}

func (h *Handlers) HandleBalance(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		http.Error(w, "invalid player id", http.StatusBadRequest)
		return
	}

	balance, err := h.service.Balance(r.Context(), playerID)
	if errors.Is(err, wagerservice.ErrUnknownPlayer) {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to load balance", attr.PlayerID(playerID), attr.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, r, balance)
}

func (h *Handlers) HandleBets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, h.service.Bets(r.Context()))
}

func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.BalanceChart(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render balance chart", attr.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to encode response", attr.Error(err))
	}
}
