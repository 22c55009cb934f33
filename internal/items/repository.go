package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database es la superficie de pgxpool.Pool que usa el repo.
// Tenerla como interface permite testear el SQL con fakes.
type Database interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// sortColumns es la whitelist de columnas ordenables.
// El ORDER BY se arma por interpolación: nunca puede salir de acá.
var sortColumns = map[string]string{
	"id":       "id",
	"name":     "name",
	"price":    "price",
	"quantity": "quantity",
}

// Repository accede a la tabla items.
// Contiene SQL y mapeo DB → modelo.
type Repository struct {
	database Database
}

// NewRepository crea un repositorio de items.
func NewRepository(database Database) *Repository {
	return &Repository{database: database}
}

// Insert crea un item y devuelve el registro persistido.
// Usamos RETURNING para obtener id y timestamps generados por DB.
func (repository *Repository) Insert(ctx context.Context, input CreateItemInput) (Item, error) {
	const query = `
		INSERT INTO items (name, description, price, quantity)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING id, name, description, price::text, quantity, created_at, updated_at;
	`

	var item Item
	err := repository.database.QueryRow(ctx, query, input.Name, input.Description, input.Price, input.Quantity).
		Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

// buildFilters arma las condiciones WHERE con args posicionales.
// Se comparte entre List y Count para que paginen sobre el mismo conjunto.
func buildFilters(params ListParams) ([]string, []any) {
	var conditions []string
	var args []any

	appendCondition := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if params.MinPrice != nil {
		appendCondition("price >= $%d::numeric", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		appendCondition("price <= $%d::numeric", *params.MaxPrice)
	}
	if params.MinQuantity != nil {
		appendCondition("quantity >= $%d", *params.MinQuantity)
	}
	if params.MaxQuantity != nil {
		appendCondition("quantity <= $%d", *params.MaxQuantity)
	}
	if params.NameContains != "" {
		// ILIKE: el match por substring es case-insensitive.
		appendCondition("name ILIKE '%%' || $%d || '%%'", params.NameContains)
	}
	if params.InStockOnly {
		conditions = append(conditions, "quantity > 0")
	}

	return conditions, args
}

// List devuelve la página filtrada y ordenada.
// El service ya validó sort/orden/ventana; acá solo armamos SQL.
func (repository *Repository) List(ctx context.Context, params ListParams) ([]Item, error) {
	column, ok := sortColumns[params.SortBy]
	if !ok {
		return nil, ErrorInvalidInput
	}
	direction := "ASC"
	if params.SortOrder == "desc" {
		direction = "DESC"
	}

	var query strings.Builder
	query.WriteString("SELECT id, name, description, price::text, quantity, created_at, updated_at FROM items")

	conditions, args := buildFilters(params)
	if len(conditions) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
	}

	// Desempate por id ascendente para que el orden sea determinístico.
	if column == "id" {
		fmt.Fprintf(&query, " ORDER BY id %s", direction)
	} else {
		fmt.Fprintf(&query, " ORDER BY %s %s, id ASC", column, direction)
	}

	args = append(args, params.Limit)
	fmt.Fprintf(&query, " LIMIT $%d", len(args))
	args = append(args, params.Skip)
	fmt.Fprintf(&query, " OFFSET $%d", len(args))
	query.WriteString(";")

	rows, err := repository.database.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listed := make([]Item, 0)
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		listed = append(listed, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return listed, nil
}

// Count cuenta el conjunto filtrado completo (sin ventana), para paginación.
func (repository *Repository) Count(ctx context.Context, params ListParams) (int, error) {
	var query strings.Builder
	query.WriteString("SELECT COUNT(*) FROM items")

	conditions, args := buildFilters(params)
	if len(conditions) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(conditions, " AND "))
	}
	query.WriteString(";")

	var total int
	if err := repository.database.QueryRow(ctx, query.String(), args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

// GetByID devuelve un item por id. Propaga pgx.ErrNoRows tal cual;
// el service decide cómo traducirlo.
func (repository *Repository) GetByID(ctx context.Context, id int64) (Item, error) {
	const query = `
		SELECT id, name, description, price::text, quantity, created_at, updated_at
		FROM items
		WHERE id = $1;
	`

	var item Item
	err := repository.database.QueryRow(ctx, query, id).
		Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

// Update aplica solo los campos presentes y devuelve el registro resultante.
// updated_at se refresca siempre que se toque algo.
func (repository *Repository) Update(ctx context.Context, id int64, input UpdateItemInput) (Item, error) {
	var assignments []string
	var args []any

	appendAssignment := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.NamePresent {
		appendAssignment("name", input.Name)
	}
	if input.DescriptionPresent {
		// null explícito limpia la descripción.
		appendAssignment("description", input.Description)
	}
	if input.PricePresent {
		args = append(args, input.Price)
		assignments = append(assignments, fmt.Sprintf("price = $%d::numeric", len(args)))
	}
	if input.QuantityPresent {
		appendAssignment("quantity", input.Quantity)
	}

	assignments = append(assignments, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE items
		SET %s
		WHERE id = $%d
		RETURNING id, name, description, price::text, quantity, created_at, updated_at;
	`, strings.Join(assignments, ", "), len(args))

	var item Item
	err := repository.database.QueryRow(ctx, query, args...).
		Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}

	return item, nil
}

// Delete borra un item por id. Hard delete: no hay tombstones.
func (repository *Repository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM items WHERE id = $1;`

	tag, err := repository.database.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrorNotFound
	}

	return nil
}
