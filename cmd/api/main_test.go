package main

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Lelo88/items-api-golang/internal/config"
	"github.com/Lelo88/items-api-golang/internal/httpx"
)

type fakePool struct {
	pingCalled  bool
	closeCalled bool
}

func (pool *fakePool) Ping(ctx context.Context) error {
	pool.pingCalled = true
	return nil
}

func (pool *fakePool) Close() {
	pool.closeCalled = true
}

func (pool *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (pool *fakePool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (pool *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}

func withSeams(t *testing.T) {
	t.Helper()

	originalLoad := loadConfigFn
	originalMigrate := migrateFn
	originalNewPool := newPoolFn
	originalListen := listenAndServeFn
	originalLogf := logfFn
	originalFatal := fatalf
	t.Cleanup(func() {
		loadConfigFn = originalLoad
		migrateFn = originalMigrate
		newPoolFn = originalNewPool
		listenAndServeFn = originalListen
		logfFn = originalLogf
		fatalf = originalFatal
	})
}

func TestMain_FatalOnConfigError(t *testing.T) {
	withSeams(t)

	expectedErr := errors.New("config failed")
	loadConfigFn = func() (config.Config, error) {
		return config.Config{}, expectedErr
	}
	migrateFn = func(databaseURL string, files fs.FS) error {
		t.Fatal("migrate should not run without config")
		return nil
	}
	logfFn = func(format string, args ...any) {}

	fatalCalled := false
	var fatalArg any
	fatalf = func(args ...any) {
		fatalCalled = true
		if len(args) > 0 {
			fatalArg = args[0]
		}
	}

	main()

	require.True(t, fatalCalled)
	require.Equal(t, expectedErr, fatalArg)
}

func TestMain_FatalOnMigrateError(t *testing.T) {
	withSeams(t)

	loadConfigFn = func() (config.Config, error) {
		return config.Config{Port: "8080", DatabaseURL: "postgres://example"}, nil
	}
	expectedErr := errors.New("migration failed")
	migrateFn = func(databaseURL string, files fs.FS) error {
		require.Equal(t, "postgres://example", databaseURL)
		return expectedErr
	}
	newPoolFn = func(ctx context.Context, databaseURL string) (appPool, error) {
		t.Fatal("pool should not open when migrations fail")
		return nil, nil
	}
	logfFn = func(format string, args ...any) {}

	var fatalArg any
	fatalf = func(args ...any) {
		if len(args) > 0 {
			fatalArg = args[0]
		}
	}

	main()

	require.Equal(t, expectedErr, fatalArg)
}

func TestMain_FatalOnPoolError(t *testing.T) {
	withSeams(t)

	loadConfigFn = func() (config.Config, error) {
		return config.Config{Port: "8080", DatabaseURL: "postgres://example"}, nil
	}
	migrateFn = func(databaseURL string, files fs.FS) error { return nil }

	expectedErr := errors.New("pool failed")
	newPoolFn = func(ctx context.Context, databaseURL string) (appPool, error) {
		return nil, expectedErr
	}
	listenAndServeFn = func(addr string, handler http.Handler) error {
		t.Fatal("server should not start without a pool")
		return nil
	}
	logfFn = func(format string, args ...any) {}

	var fatalArg any
	fatalf = func(args ...any) {
		if len(args) > 0 {
			fatalArg = args[0]
		}
	}

	main()

	require.Equal(t, expectedErr, fatalArg)
}

func TestMain_ServesRouter(t *testing.T) {
	withSeams(t)

	loadConfigFn = func() (config.Config, error) {
		return config.Config{Port: "9090", DatabaseURL: "postgres://example"}, nil
	}
	migrateFn = func(databaseURL string, files fs.FS) error { return nil }

	pool := &fakePool{}
	newPoolFn = func(ctx context.Context, databaseURL string) (appPool, error) {
		return pool, nil
	}

	var capturedAddr string
	var capturedHandler http.Handler
	listenAndServeFn = func(addr string, handler http.Handler) error {
		capturedAddr = addr
		capturedHandler = handler
		return nil
	}
	logfFn = func(format string, args ...any) {}
	fatalf = func(args ...any) {
		t.Fatalf("unexpected fatal: %v", args)
	}

	main()

	require.Equal(t, ":9090", capturedAddr)
	require.NotNil(t, capturedHandler)
	require.True(t, pool.closeCalled, "pool must be closed on shutdown")

	t.Run("health is mounted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		capturedHandler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ready pings the pool", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rec := httptest.NewRecorder()

		capturedHandler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, pool.pingCalled)
	})

	t.Run("every response carries a request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		capturedHandler.ServeHTTP(rec, req)

		require.NotEmpty(t, rec.Header().Get(httpx.RequestIDHeader))
	})

	t.Run("unknown routes get the envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rec := httptest.NewRecorder()

		capturedHandler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp httpx.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		require.Equal(t, "not_found", resp.Error.Code)
	})

	t.Run("method not allowed gets the envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/items/1", nil)
		rec := httptest.NewRecorder()

		capturedHandler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
