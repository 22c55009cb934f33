package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name     string `json:"name" validate:"required,max=5"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Struct(samplePayload{Name: "ok", Quantity: 1}))
	})

	t.Run("invalid", func(t *testing.T) {
		require.Error(t, Struct(samplePayload{Name: "", Quantity: -1}))
	})
}

func TestFieldErrors(t *testing.T) {
	t.Run("uses json names", func(t *testing.T) {
		err := Struct(samplePayload{Name: "", Quantity: -1})
		require.Error(t, err)

		fields := FieldErrors(err)
		require.Contains(t, fields, "name")
		require.Contains(t, fields, "quantity")
		require.Equal(t, "this field is required", fields["name"])
		require.Equal(t, "must be greater than or equal to 0", fields["quantity"])
	})

	t.Run("max carries the param", func(t *testing.T) {
		err := Struct(samplePayload{Name: "demasiado largo", Quantity: 0})
		require.Error(t, err)

		fields := FieldErrors(err)
		require.Equal(t, "maximum length is 5", fields["name"])
	})

	t.Run("non validation errors give empty map", func(t *testing.T) {
		fields := FieldErrors(nil)
		require.Empty(t, fields)
	})
}
