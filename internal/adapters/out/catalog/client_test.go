package catalog_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodorder/internal/adapters/out/catalog"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "svc-token"

func newClient(t *testing.T, handler http.Handler) *catalog.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := catalog.NewClient(srv.URL+"/", token, time.Second)
	require.NoError(t, err)
	return client
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := catalog.NewClient("catalog.local", token, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestClient_GetMenuItem(t *testing.T) {
	itemID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu-items/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		if r.PathValue("id") != itemID.String() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"name":"Ayam Geprek","price":22000,"restaurantId":%q,"restaurantName":"Geprek Bensu","available":true}`,
			itemID, restaurantID)
	})
	client := newClient(t, mux)

	got, err := client.GetMenuItem(t.Context(), itemID)
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, itemID, got.Item.ID())
	assert.Equal(t, "Ayam Geprek", got.Item.Name())
	assert.Equal(t, int64(22000), got.Item.UnitPrice().Amount())
	assert.Equal(t, restaurantID, got.Item.RestaurantID())
	assert.Equal(t, "Geprek Bensu", got.Item.RestaurantName())

	_, err = client.GetMenuItem(t.Context(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClient_GetMenuItem_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "database down", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":`))
		}},
		{"invalid item", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"not-a-uuid","name":"x","price":1}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newClient(t, tt.handler).GetMenuItem(t.Context(), kernel.NewUUID())
			require.ErrorIs(t, err, errs.ErrPersistenceUnavailable)
		})
	}
}

func TestClient_GetAddress(t *testing.T) {
	customerID := kernel.NewUUID()
	addressID := kernel.NewUUID()
	foreignID := kernel.NewUUID()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /customers/{cid}/addresses/{aid}", func(w http.ResponseWriter, r *http.Request) {
		owner := r.PathValue("cid")
		if r.PathValue("aid") == foreignID.String() {
			owner = kernel.NewUUID().String()
		}
		fmt.Fprintf(w, `{"id":%q,"customerId":%q,"label":"Home","line":"Jl. Kemang Raya 10"}`, r.PathValue("aid"), owner)
	})
	client := newClient(t, mux)

	got, err := client.GetAddress(t.Context(), customerID, addressID)
	require.NoError(t, err)
	assert.Equal(t, addressID, got.ID)
	assert.Equal(t, customerID, got.CustomerID)
	assert.Equal(t, "Home", got.Label)
	assert.Equal(t, "Jl. Kemang Raya 10", got.Line)

	_, err = client.GetAddress(t.Context(), customerID, foreignID)
	require.ErrorIs(t, err, errs.ErrObjectNotFound, "another customer's address is not found")
}
