package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"settlement-reconciler/config"
	"settlement-reconciler/internal/adapter/connectivity"
	"settlement-reconciler/internal/adapter/guard"
	httpHandler "settlement-reconciler/internal/adapter/http/handler"
	redisStorage "settlement-reconciler/internal/adapter/storage/redis"
	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/madflojo/tasks"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walletBackend fakes the conversion API of the wallet backend.
type walletBackend struct {
	status    atomic.Value // string
	posts     atomic.Int32
	lookups   atomic.Int32
	server    *httptest.Server
	lastIdemp atomic.Value // string
}

func newWalletBackend(t *testing.T) *walletBackend {
	b := &walletBackend{}
	b.status.Store("pending")
	b.lastIdemp.Store("")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /conversions", func(w http.ResponseWriter, r *http.Request) {
		b.posts.Add(1)
		b.lastIdemp.Store(r.Header.Get("Idempotency-Key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"data":{"id":"conv-1","status":"pending",
			"sell_currency":"USD","buy_currency":"NGN","sell_amount":"100","buy_amount":"150000",
			"sell_balance_before":"500","buy_balance_before":"1000"}}`)
	})
	mux.HandleFunc("GET /conversions/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.lookups.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"status":%q}`, r.PathValue("id"), b.status.Load().(string))
	})
	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

type testApp struct {
	server  *httptest.Server
	tracker *service.TrackerService
	backend *walletBackend
	rdb     *goredis.Client
}

func newTestApp(t *testing.T, strategy domain.BalanceStrategy) *testApp {
	t.Helper()
	log := zerolog.Nop()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	backend := newWalletBackend(t)
	online := connectivity.Static{Connected: true, Reachability: domain.ReachabilityReachable}
	g := guard.New(config.GuardConfig{BaseURL: backend.server.URL, Timeout: 2 * time.Second}, backend.server.Client(), online, log)

	scheduler := tasks.New()
	t.Cleanup(scheduler.Stop)

	ledger := service.NewLedgerService(redisStorage.NewSettlementRepo(rdb, "pending_settlements"), nil, domain.SettlementTTL, log)
	resolver := service.NewSettlementResolver(g, backend.server.URL, log)
	tracker := service.NewTrackerService(ledger, resolver, nil, scheduler, service.TrackerConfig{
		PollInterval:   20 * time.Millisecond,
		SweepInterval:  time.Minute,
		Strategy:       strategy,
		PollingEnabled: true,
	}, log)
	require.NoError(t, tracker.Start(context.Background()))
	t.Cleanup(tracker.Stop)

	conversions := service.NewConversionService(g, tracker, redisStorage.NewReplayCache(rdb), backend.server.URL, log)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Tracker:        tracker,
		Conversions:    conversions,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		Logger:         log,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, tracker: tracker, backend: backend, rdb: rdb}
}

func (a *testApp) call(t *testing.T, method, path, body string, headers ...string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, a.server.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func data(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "no data in %v", resp)
	return d
}

func TestConversionLifecycle(t *testing.T) {
	app := newTestApp(t, domain.BalanceOptimistic)

	confirmed := make(chan struct{}, 1)
	app.tracker.OnConfirmed(func() { confirmed <- struct{}{} })

	// Step 1: convert; the backend settles asynchronously.
	body := `{"sell_currency":"usd","buy_currency":"ngn","sell_amount":"100"}`
	status, resp := app.call(t, http.MethodPost, "/api/v1/conversions", body, "Idempotency-Key", "idem-1")
	require.Equal(t, http.StatusCreated, status, resp)
	settlement := data(t, resp)["settlement"].(map[string]interface{})
	assert.Equal(t, "conv-1", settlement["conversion_id"])
	assert.Equal(t, "idem-1", app.backend.lastIdemp.Load())

	// A retried request is replayed without reaching the backend.
	status, resp = app.call(t, http.MethodPost, "/api/v1/conversions", body, "Idempotency-Key", "idem-1")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, settlement["id"], data(t, resp)["settlement"].(map[string]interface{})["id"])
	assert.Equal(t, int32(1), app.backend.posts.Load())

	// Step 2: balances anticipate the settlement.
	_, resp = app.call(t, http.MethodGet, "/api/v1/currencies/usd/pending", "")
	assert.Equal(t, true, data(t, resp)["has_pending"])

	_, resp = app.call(t, http.MethodGet, "/api/v1/currencies/USD/balance?balance=500", "")
	assert.Equal(t, "400", data(t, resp)["display_balance"])

	_, resp = app.call(t, http.MethodGet, "/api/v1/currencies/NGN/balance?balance=1000", "")
	assert.Equal(t, "151000", data(t, resp)["display_balance"])

	// Once the backend moved the balance the actual value is shown as-is.
	_, resp = app.call(t, http.MethodGet, "/api/v1/currencies/USD/balance?balance=400", "")
	assert.Equal(t, "400", data(t, resp)["display_balance"])

	// Step 3: the backend completes the conversion; polling clears the ledger.
	app.backend.status.Store("completed")

	select {
	case <-confirmed:
	case <-time.After(3 * time.Second):
		t.Fatal("confirmation callback not fired")
	}

	_, resp = app.call(t, http.MethodGet, "/api/v1/settlements", "")
	snap := data(t, resp)
	assert.Empty(t, snap["settlements"])
	assert.Equal(t, false, snap["polling"])

	_, resp = app.call(t, http.MethodGet, "/api/v1/currencies/USD/balance?balance=400", "")
	assert.Equal(t, "400", data(t, resp)["display_balance"])
	assert.Equal(t, false, data(t, resp)["has_pending"])
}

func TestConcurrentSettlementWrites(t *testing.T) {
	app := newTestApp(t, domain.BalanceActualOnly)
	app.tracker.SetPollingEnabled(false)

	const writers = 50
	var wg sync.WaitGroup
	var created atomic.Int32
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"sell_currency":"USD","buy_currency":"NGN","sell_amount":"%d","buy_amount":"1"}`, i+1)
			resp, err := http.Post(app.server.URL+"/api/v1/settlements", "application/json", bytes.NewBufferString(body))
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
			if resp.StatusCode == http.StatusCreated {
				created.Add(1)
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, int32(writers), created.Load())

	_, resp := app.call(t, http.MethodGet, "/api/v1/settlements", "")
	snap := data(t, resp)
	assert.Len(t, snap["settlements"], writers)
	usd := snap["by_currency"].(map[string]interface{})["USD"].(map[string]interface{})
	assert.Equal(t, "1275", usd["pending_debit"]) // 1 + 2 + ... + 50

	// Persisted, not only cached in memory.
	raw, err := app.rdb.Get(context.Background(), "pending_settlements").Bytes()
	require.NoError(t, err)
	var stored []domain.PendingSettlement
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, writers)

	// Clearing one currency removes every settlement touching it.
	status, resp := app.call(t, http.MethodDelete, "/api/v1/currencies/ngn/settlements", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(writers), data(t, resp)["removed"])
	assert.False(t, app.tracker.HasPendingForCurrency("USD"))
}
