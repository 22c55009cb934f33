package items

import "time"

// Item representa un registro persistido en DB.
// Price se modela como string para evitar errores de precisión con float.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateItemInput representa el payload para crear un item.
// Nota: Price es string por precisión (DB: numeric(10,2)).
type CreateItemInput struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       string  `json:"price" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// UpdateItemInput representa un update parcial.
// Cada campo lleva puntero + flag de presencia: "no vino" y "vino en null"
// son cosas distintas y el repo solo toca lo que vino.
type UpdateItemInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`

	NamePresent        bool `json:"-"`
	DescriptionPresent bool `json:"-"`
	PricePresent       bool `json:"-"`
	QuantityPresent    bool `json:"-"`
}

// Empty indica si el update no trae ningún campo.
func (input UpdateItemInput) Empty() bool {
	return !input.NamePresent && !input.DescriptionPresent && !input.PricePresent && !input.QuantityPresent
}

// ListParams agrupa filtros, orden y ventana del listado.
// Todos los filtros son opcionales y se combinan con AND.
type ListParams struct {
	MinPrice     *string
	MaxPrice     *string
	MinQuantity  *int
	MaxQuantity  *int
	NameContains string
	InStockOnly  bool

	SortBy    string
	SortOrder string

	Skip  int
	Limit int
}
