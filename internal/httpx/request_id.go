package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// Header estándar de correlación entre cliente, logs y respuesta.
const RequestIDHeader = "X-Request-Id"

// EnsureRequestID es un middleware que garantiza un request id por request.
// Si el cliente no mandó uno, generamos un UUID y lo devolvemos también en
// el header de la respuesta para que el cliente pueda correlacionar.
func EnsureRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// RequestIDFrom lee el request id desde el request para incluirlo en las respuestas.
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	return request.Header.Get(RequestIDHeader)
}
