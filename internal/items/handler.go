package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/items-api-golang/internal/httpx"
	"github.com/Lelo88/items-api-golang/internal/validate"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	Create(ctx context.Context, input CreateItemInput) (Item, error)
	List(ctx context.Context, params ListParams) ([]Item, int, error)
	Get(ctx context.Context, id int64) (Item, error)
	Update(ctx context.Context, id int64, input UpdateItemInput) (Item, error)
	Delete(ctx context.Context, id int64) error
}

// Handler HTTP para items.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

type pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Create maneja POST /items/.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateItemInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	// Validación de forma con detalle por campo; el service refuerza reglas de negocio.
	if err := validate.Struct(input); err != nil {
		httpx.FailWithDetails(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data", validate.FieldErrors(err))
		return
	}

	item, err := handler.service.Create(request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
		default:
			// No filtramos detalles internos.
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, request, http.StatusCreated, item)
}

// List maneja GET /items/ con filtros, orden y ventana.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	params, err := parseListParams(request)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_query", "invalid query parameters")
		return
	}

	listed, total, err := handler.service.List(request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid filter, sort or pagination parameters")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"items": listed,
		"pagination": pagination{
			Skip:  params.Skip,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// parseListParams parsea query params con defaults.
// Acá solo se valida que los valores parseen; rangos y enums los valida el service.
func parseListParams(request *http.Request) (ListParams, error) {
	query := request.URL.Query()

	params := ListParams{
		SortBy:    strings.TrimSpace(query.Get("sort_by")),
		SortOrder: strings.TrimSpace(query.Get("sort_order")),
		Limit:     DefaultListLimit,
	}

	if value := strings.TrimSpace(query.Get("skip")); value != "" {
		skip, err := strconv.Atoi(value)
		if err != nil {
			return ListParams{}, err
		}
		params.Skip = skip
	}

	if value := strings.TrimSpace(query.Get("limit")); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil {
			return ListParams{}, err
		}
		params.Limit = limit
	}

	if value := strings.TrimSpace(query.Get("min_price")); value != "" {
		params.MinPrice = &value
	}
	if value := strings.TrimSpace(query.Get("max_price")); value != "" {
		params.MaxPrice = &value
	}

	if value := strings.TrimSpace(query.Get("min_quantity")); value != "" {
		quantity, err := strconv.Atoi(value)
		if err != nil {
			return ListParams{}, err
		}
		params.MinQuantity = &quantity
	}
	if value := strings.TrimSpace(query.Get("max_quantity")); value != "" {
		quantity, err := strconv.Atoi(value)
		if err != nil {
			return ListParams{}, err
		}
		params.MaxQuantity = &quantity
	}

	params.NameContains = strings.TrimSpace(query.Get("name_contains"))

	if value := strings.TrimSpace(query.Get("in_stock_only")); value != "" {
		inStock, err := strconv.ParseBool(value)
		if err != nil {
			return ListParams{}, err
		}
		params.InStockOnly = inStock
	}

	return params, nil
}

// parseID valida que el id del path sea un entero (en DB es bigserial).
func parseID(request *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
}

// GetByID maneja GET /items/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be an integer")
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrorNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", "item not found")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, request, http.StatusOK, item)
}

// Update maneja PUT /items/{id} con semántica parcial.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be an integer")
		return
	}

	// Primero leemos raw para saber qué campos vinieron.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(request.Body).Decode(&raw); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	// Re-encode y decode al struct para reutilizar tags y tipos.
	rawJSON, _ := json.Marshal(raw)

	var input UpdateItemInput
	if err := json.Unmarshal(rawJSON, &input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	// Presencia explícita por campo:
	// - "campo": null  => setear (description admite NULL).
	// - campo ausente  => no tocar.
	_, input.NamePresent = raw["name"]
	_, input.DescriptionPresent = raw["description"]
	_, input.PricePresent = raw["price"]
	_, input.QuantityPresent = raw["quantity"]

	item, err := handler.service.Update(request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrorInvalidInput):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
		case errors.Is(err, ErrorNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", "item not found")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	httpx.OK(writer, request, http.StatusOK, item)
}

// Delete maneja DELETE /items/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be an integer")
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrorNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", "item not found")
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	// 204 No Content: respuesta vacía.
	writer.WriteHeader(http.StatusNoContent)
}
