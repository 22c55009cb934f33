package db

import (
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var (
	openDB     = sql.Open
	gooseUp    = goose.Up
	setBaseFS  = goose.SetBaseFS
	setDialect = goose.SetDialect
)

// Migrate corre las migraciones goose pendientes desde un FS embebido.
// goose necesita database/sql, así que acá entramos por el driver stdlib de pgx
// en vez del pool; es una conexión corta solo para migrar.
func Migrate(databaseURL string, migrations fs.FS) error {
	database, err := openDB("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migrations: %w", err)
	}
	defer database.Close()

	setBaseFS(migrations)

	if err := setDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUp(database, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
