package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestEnsureRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/", nil)
	rec := httptest.NewRecorder()

	EnsureRequestID(next).ServeHTTP(rec, req)

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	require.NoError(t, err, "generated request id should be a UUID")
	require.Equal(t, seen, rec.Header().Get(RequestIDHeader), "id must be echoed to the client")
}

func TestEnsureRequestID_KeepsClientID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/items/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	rec := httptest.NewRecorder()

	EnsureRequestID(next).ServeHTTP(rec, req)

	require.Equal(t, "client-id", seen)
	require.Equal(t, "client-id", rec.Header().Get(RequestIDHeader))
}

func TestRequestIDFrom_NilRequest(t *testing.T) {
	require.Empty(t, RequestIDFrom(nil))
}
