package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Lelo88/items-api-golang/internal/config"
	"github.com/Lelo88/items-api-golang/internal/db"
	"github.com/Lelo88/items-api-golang/internal/docs"
	"github.com/Lelo88/items-api-golang/internal/health"
	"github.com/Lelo88/items-api-golang/internal/httpx"
	"github.com/Lelo88/items-api-golang/internal/items"
	"github.com/Lelo88/items-api-golang/migrations"
)

// appPool es lo que main necesita del pool: ping/cierre más la superficie
// de queries que consumen repos y health.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Seams para poder testear main sin DB ni sockets reales.
var (
	loadConfigFn = config.Load
	newPoolFn    = func(ctx context.Context, databaseURL string) (appPool, error) {
		return db.NewPool(ctx, databaseURL)
	}
	migrateFn        = db.Migrate
	listenAndServeFn = http.ListenAndServe
	logfFn           = log.Printf
	fatalf           = log.Fatal
)

func main() {
	cfg, err := loadConfigFn()
	if err != nil {
		fatalf(err)
		return
	}

	// Contexto raíz del proceso.
	ctx := context.Background()

	// Migrar antes de abrir el pool: si el schema no está, no arrancamos.
	if err := migrateFn(cfg.DatabaseURL, migrations.FS); err != nil {
		fatalf(err)
		return
	}

	pool, err := newPoolFn(ctx, cfg.DatabaseURL)
	if err != nil {
		fatalf(err)
		return
	}
	defer pool.Close()

	router := newRouter(pool)

	addr := ":" + cfg.Port
	logfFn("listening on %s", addr)
	if err := listenAndServeFn(addr, router); err != nil {
		fatalf(err)
	}
}

// newRouter arma el router completo: middlewares, errores de routing y rutas.
func newRouter(pool appPool) chi.Router {
	router := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	router.Use(httpx.EnsureRequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))

	// Errores de routing se manejan a nivel router.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool)
	router.Get("/health", healthHandler.Health)
	router.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(router)

	itemsRepository := items.NewRepository(pool)
	itemsService := items.NewService(itemsRepository)
	items.RegisterRoutes(router, items.NewHandler(itemsService))

	return router
}
