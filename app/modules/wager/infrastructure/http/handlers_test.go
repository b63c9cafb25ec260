package wagerhttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	wagerservice "github.com/Black-And-White-Club/wager-bot/app/modules/wager/application"
	wagerdomain "github.com/Black-And-White-Club/wager-bot/app/modules/wager/domain"
	"github.com/Black-And-White-Club/wager-bot/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"
)

var (
	alice = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bob   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

func newTestRouter(t *testing.T, opts Options) (http.Handler, *wagerservice.WagerService) {
	t.Helper()
	svc := wagerservice.NewWagerService(nil, slog.Default(), wagerservice.NewNoop(), noop.NewTracerProvider().Tracer("test"), nil, wagerservice.Options{})
	ctx := context.Background()
	_, err := svc.AddPlayer(ctx, wagerdomain.Player{ID: alice, FirstName: "Alice"})
	require.NoError(t, err)
	_, err = svc.AddBet(ctx, &wagerdomain.PuttingLedgerBet{
		BetBase: wagerdomain.BetBase{BetID: uuid.New(), Name: "practice green"},
		Players: []wagerdomain.PlayerID{alice, bob},
		Stake:   decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	Mount(router, NewHandlers(svc, slog.Default()), opts)
	return router, svc
}

func TestHandlers(t *testing.T) {
	router, svc := newTestRouter(t, Options{RequestsPerSecond: 100, Burst: 100})
	bets := svc.Bets(context.Background())
	_, err := svc.RecordPuttingOutcome(context.Background(), bets[0].ID, "", []wagerdomain.PlayerID{alice})
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
		checkBody  func(t *testing.T, body []byte)
	}{
		{
			name:       "all balances",
			path:       "/api/wagers/balances",
			wantStatus: http.StatusOK,
			wantType:   "application/json",
			checkBody: func(t *testing.T, body []byte) {
				var balances []wagerdomain.Balance
				require.NoError(t, json.Unmarshal(body, &balances))
				require.Len(t, balances, 2)
				assert.Equal(t, "Alice", balances[0].Player.FirstName)
				assert.Equal(t, "2", balances[0].Side.String())
				assert.Equal(t, "-2", balances[1].Side.String())
			},
		},
		{
			name:       "one balance",
			path:       "/api/wagers/balances/" + bob.String(),
			wantStatus: http.StatusOK,
			wantType:   "application/json",
			checkBody: func(t *testing.T, body []byte) {
				var balance wagerdomain.Balance
				require.NoError(t, json.Unmarshal(body, &balance))
				assert.Equal(t, bob, balance.Player.ID)
			},
		},
		{
			name:       "unknown player",
			path:       "/api/wagers/balances/" + uuid.NewString(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed player id",
			path:       "/api/wagers/balances/nope",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bets",
			path:       "/api/wagers/bets",
			wantStatus: http.StatusOK,
			wantType:   "application/json",
			checkBody: func(t *testing.T, body []byte) {
				var summaries []wagerservice.BetSummary
				require.NoError(t, json.Unmarshal(body, &summaries))
				require.Len(t, summaries, 1)
				assert.Equal(t, "practice green", summaries[0].Name)
				assert.Equal(t, wagerdomain.KindPutting, summaries[0].Kind)
			},
		},
		{
			name:       "chart",
			path:       "/api/wagers/chart.png",
			wantStatus: http.StatusOK,
			wantType:   "image/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
			if tt.checkBody != nil {
				tt.checkBody(t, rec.Body.Bytes())
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	router, _ := newTestRouter(t, Options{RequestsPerSecond: 0.001, Burst: 1})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/wagers/bets", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/wagers/bets", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	other := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wagers/bets", nil)
	req.RemoteAddr = "10.0.0.9:4000"
	router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code, "limits are per client")
}

func TestCORS(t *testing.T) {
	router, _ := newTestRouter(t, Options{AllowedOrigins: []string{"https://club.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/wagers/balances", nil)
	req.Header.Set("Origin", "https://club.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://club.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/wagers/balances", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuth(t *testing.T) {
	tokens := jwt.NewService("secret", time.Hour)
	router, _ := newTestRouter(t, Options{RequestsPerSecond: 100, Burst: 100, Tokens: tokens})
	valid, err := tokens.GenerateToken("scorer", jwt.RoleViewer, 0)
	require.NoError(t, err)
	forged, err := jwt.NewService("other", time.Hour).GenerateToken("scorer", jwt.RoleViewer, 0)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "query token", query: "?t=" + valid, wantStatus: http.StatusOK},
		{name: "forged", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/wagers/bets"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestIPRateLimiterPrunesIdleEntries(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return start }
	for i := 0; i <= cleanupThreshold; i++ {
		limiter.GetLimiter(uuid.NewString())
	}

	limiter.now = func() time.Time { return start.Add(maxIdleAge + time.Minute) }
	limiter.GetLimiter("fresh")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.ips, 1)
}
