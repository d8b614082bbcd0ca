package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/adapters/database/memory"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		LogLevel:           "info",
		RateLimit:          "1000-M",
		CORSAllowedOrigins: []string{"http://app.example"},
		IBANCountryCode:    "DE",
		IBANBankCode:       "12345123",
		ShutdownTimeout:    time.Second,
	}
}

func TestNewRouter(t *testing.T) {
	cfg := testConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	container, err := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{AccountRepo: memory.NewAccountRepository()})
	require.NoError(t, err)
	require.NoError(t, container.Seeder.Seed(context.Background()))

	r, err := newRouter(cfg, logger, container)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://app.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/account?accountTypes=SAVINGS,CHECKING,PRIVATE_LOAN", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PRIVATE_LOAN_ACCOUNT")
}

func TestNewRouterRejectsBadRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = "fast"
	container, err := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{AccountRepo: memory.NewAccountRepository()})
	require.NoError(t, err)

	_, err = newRouter(cfg, slog.Default(), container)
	assert.Error(t, err)
}

func TestCorsConfigAllowAll(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	c := corsConfig([]string{"http://a.example"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"http://a.example"}, c.AllowOrigins)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
