package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aioutlet/variant-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProductClient(t *testing.T, handler http.HandlerFunc) ProductClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewProductClient(server.URL+"/", time.Second, zap.NewNop())
}

func TestProductClient_GetProduct(t *testing.T) {
	t.Run("Decodes product with variants", func(t *testing.T) {
		client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/products/prod-1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"prod-1","name":"Air","price":100,"variants":[{"sku":"NIK-RED-1","price":120,"stock":3,"options":{"Color":"Red"}}]}`))
		})

		product, err := client.GetProduct(context.Background(), "prod-1")

		require.NoError(t, err)
		assert.Equal(t, "Air", product.Name)
		require.Len(t, product.Variants, 1)
		assert.Equal(t, "Red", product.Variants[0].Options["Color"])
	})

	t.Run("Not found", func(t *testing.T) {
		client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetProduct(context.Background(), "missing")
		assert.ErrorIs(t, err, models.ErrProductNotFound)
	})

	t.Run("Server error", func(t *testing.T) {
		client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{}`))
		})

		_, err := client.GetProduct(context.Background(), "prod-1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrProductNotFound)
	})
}

func TestProductClient_CreateProduct(t *testing.T) {
	t.Run("Returns new id", func(t *testing.T) {
		client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/products", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var sub models.ProductSubmission
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
			assert.Equal(t, "Air", sub.Name)
			assert.Len(t, sub.Variants, 1)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"prod-9"}`))
		})

		id, err := client.CreateProduct(context.Background(), models.ProductSubmission{
			Name:     "Air",
			Variants: []models.SubmittedVariant{{SKU: "NIK-RED-1", Price: 10, Stock: 1}},
		})

		require.NoError(t, err)
		assert.Equal(t, "prod-9", id)
	})

	t.Run("Missing id", func(t *testing.T) {
		client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		_, err := client.CreateProduct(context.Background(), models.ProductSubmission{Name: "Air"})
		assert.Error(t, err)
	})

	t.Run("Rejected", func(t *testing.T) {
		client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.CreateProduct(context.Background(), models.ProductSubmission{Name: "Air"})
		assert.Error(t, err)
	})
}

func TestProductClient_UpdateProduct(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		expectErr error
		wantErr   bool
	}{
		{name: "Updated", status: http.StatusOK},
		{name: "No content", status: http.StatusNoContent},
		{name: "Not found", status: http.StatusNotFound, expectErr: models.ErrProductNotFound, wantErr: true},
		{name: "Server error", status: http.StatusBadGateway, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestProductClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/api/products/prod-1", r.URL.Path)
				w.WriteHeader(tt.status)
			})

			err := client.UpdateProduct(context.Background(), "prod-1", models.ProductSubmission{ProductID: "prod-1"})

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			}
		})
	}
}

func TestCategoryClient_GetCategoryName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/categories/cat-1":
			w.Write([]byte(`{"id":"cat-1","name":"Zapatillas deportivas"}`))
		case "/api/categories/blank":
			w.Write([]byte(`{"id":"blank","name":""}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewCategoryClient(server.URL, time.Second, zap.NewNop())

	name, err := client.GetCategoryName(context.Background(), "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Zapatillas deportivas", name)

	_, err = client.GetCategoryName(context.Background(), "blank")
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)

	_, err = client.GetCategoryName(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
}

func TestCategoryClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewCategoryClient(server.URL, time.Second, zap.NewNop())

	_, err := client.GetCategoryName(context.Background(), "cat-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrCategoryNotFound)
}
