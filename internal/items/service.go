package items

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput = errors.New("invalid input")
	ErrorNotFound     = errors.New("item not found")
)

// Límites del listado. El default viene de la API original; el cap evita
// que un cliente pida la tabla entera.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
	MaxNameLength    = 50
	MaxDescription   = 500
)

// RepositoryAPI define lo que el service necesita del repo.
// Permite testear el service con fakes sin tocar DB.
type RepositoryAPI interface {
	Insert(ctx context.Context, input CreateItemInput) (Item, error)
	List(ctx context.Context, params ListParams) ([]Item, error)
	Count(ctx context.Context, params ListParams) (int, error)
	GetByID(ctx context.Context, id int64) (Item, error)
	Update(ctx context.Context, id int64, input UpdateItemInput) (Item, error)
	Delete(ctx context.Context, id int64) error
}

// Service contiene reglas de negocio de items.
type Service struct {
	repository RepositoryAPI
}

// NewService crea un service de items.
func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository}
}

// Create valida reglas y crea el item en DB.
func (service *Service) Create(ctx context.Context, input CreateItemInput) (Item, error) {
	// Normalización mínima.
	input.Name = strings.TrimSpace(input.Name)
	input.Price = strings.TrimSpace(input.Price)

	// Validaciones de negocio (refuerzan constraints DB).
	if input.Name == "" || len(input.Name) > MaxNameLength {
		return Item{}, ErrorInvalidInput
	}
	if input.Description != nil && len(*input.Description) > MaxDescription {
		return Item{}, ErrorInvalidInput
	}
	if !validPrice(input.Price) {
		return Item{}, ErrorInvalidInput
	}
	if input.Quantity < 0 {
		return Item{}, ErrorInvalidInput
	}

	return service.repository.Insert(ctx, input)
}

// List valida filtros/orden/ventana y devuelve la página más el total filtrado.
func (service *Service) List(ctx context.Context, params ListParams) ([]Item, int, error) {
	params, err := normalizeListParams(params)
	if err != nil {
		return nil, 0, err
	}

	listed, err := service.repository.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := service.repository.Count(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	return listed, total, nil
}

// normalizeListParams aplica defaults y rechaza combinaciones inválidas.
// Cotas invertidas (min > max) son error, no resultado vacío: un cliente que
// manda eso casi seguro tiene un bug y conviene que se entere.
func normalizeListParams(params ListParams) (ListParams, error) {
	if params.SortBy == "" {
		params.SortBy = "id"
	}
	if params.SortOrder == "" {
		params.SortOrder = "asc"
	}
	if _, ok := sortColumns[params.SortBy]; !ok {
		return ListParams{}, ErrorInvalidInput
	}
	if params.SortOrder != "asc" && params.SortOrder != "desc" {
		return ListParams{}, ErrorInvalidInput
	}

	if params.Skip < 0 {
		return ListParams{}, ErrorInvalidInput
	}
	if params.Limit == 0 {
		params.Limit = DefaultListLimit
	}
	if params.Limit < 0 {
		return ListParams{}, ErrorInvalidInput
	}
	if params.Limit > MaxListLimit {
		params.Limit = MaxListLimit
	}

	if params.MinPrice != nil {
		trimmed := strings.TrimSpace(*params.MinPrice)
		if !validPrice(trimmed) {
			return ListParams{}, ErrorInvalidInput
		}
		params.MinPrice = &trimmed
	}
	if params.MaxPrice != nil {
		trimmed := strings.TrimSpace(*params.MaxPrice)
		if !validPrice(trimmed) {
			return ListParams{}, ErrorInvalidInput
		}
		params.MaxPrice = &trimmed
	}
	if params.MinPrice != nil && params.MaxPrice != nil && comparePrices(*params.MinPrice, *params.MaxPrice) > 0 {
		return ListParams{}, ErrorInvalidInput
	}

	if params.MinQuantity != nil && *params.MinQuantity < 0 {
		return ListParams{}, ErrorInvalidInput
	}
	if params.MaxQuantity != nil && *params.MaxQuantity < 0 {
		return ListParams{}, ErrorInvalidInput
	}
	if params.MinQuantity != nil && params.MaxQuantity != nil && *params.MinQuantity > *params.MaxQuantity {
		return ListParams{}, ErrorInvalidInput
	}

	params.NameContains = strings.TrimSpace(params.NameContains)

	return params, nil
}

// Get obtiene un item por ID.
func (service *Service) Get(ctx context.Context, id int64) (Item, error) {
	item, err := service.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// Update valida reglas y actualiza parcialmente un item.
// Un update sin campos es un no-op exitoso: devuelve el registro tal cual está.
func (service *Service) Update(ctx context.Context, id int64, input UpdateItemInput) (Item, error) {
	if input.Empty() {
		return service.Get(ctx, id)
	}

	// Validaciones de negocio sobre lo que vino.
	if input.NamePresent {
		if input.Name == nil {
			return Item{}, ErrorInvalidInput
		}
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > MaxNameLength {
			return Item{}, ErrorInvalidInput
		}
		input.Name = &name
	}

	if input.DescriptionPresent && input.Description != nil && len(*input.Description) > MaxDescription {
		return Item{}, ErrorInvalidInput
	}

	if input.PricePresent {
		if input.Price == nil {
			return Item{}, ErrorInvalidInput
		}
		price := strings.TrimSpace(*input.Price)
		if !validPrice(price) {
			return Item{}, ErrorInvalidInput
		}
		input.Price = &price
	}

	if input.QuantityPresent {
		if input.Quantity == nil || *input.Quantity < 0 {
			return Item{}, ErrorInvalidInput
		}
	}

	item, err := service.repository.Update(ctx, id, input)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			return Item{}, ErrorNotFound
		}
		return Item{}, err
	}

	return item, nil
}

// Delete elimina un item por ID.
func (service *Service) Delete(ctx context.Context, id int64) error {
	return service.repository.Delete(ctx, id)
}
