package testutils

import (
	"time"

	"github.com/aioutlet/variant-service/internal/config"
	"github.com/aioutlet/variant-service/internal/models"
)

// CreateTestConfig creates a test configuration
func CreateTestConfig() *config.Config {
	return &config.Config{
		Name:        "variant-service",
		Version:     "test",
		Environment: "test",
		Server: config.ServerConfig{
			Port:         "1010",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		JWT: config.JWTConfig{
			SecretKey: "test-secret-key",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Draft: config.DraftConfig{
			TTL:                time.Hour,
			LockTTL:            30 * time.Second,
			MaxOptionTypes:     3,
			MaxValuesPerOption: 4,
			MaxVariants:        20,
		},
		Suggest: config.SuggestConfig{
			Threshold:          0.6,
			MinTokenSimilarity: 0.75,
		},
		Services: config.ServicesConfig{
			Timeout: 2 * time.Second,
		},
	}
}

// CreateTestDraft creates an empty draft
func CreateTestDraft(id, ownerID string) *models.ProductDraft {
	return models.NewProductDraft(id, ownerID, time.Hour)
}

// CreateShoeDraft creates a Nike draft with Talla [40, 41] and Color [Rojo]
// selected and no variants generated yet
func CreateShoeDraft(id, ownerID string) *models.ProductDraft {
	draft := CreateTestDraft(id, ownerID)
	draft.Name = "Air Zoom"
	draft.Brand = "Nike"
	draft.Category = "zapatillas deportivas"
	draft.Price = 100
	draft.Stock = 10
	draft.OptionTypes = []models.OptionType{
		{Name: "Talla", Values: []string{"40", "41"}},
		{Name: "Color", Values: []string{"Rojo"}},
	}
	return draft
}

// CreateTestVariant creates a variant for the given options
func CreateTestVariant(sku string, price float64, stock int, options map[string]string) models.Variant {
	return models.Variant{
		SKU:     sku,
		Price:   price,
		Stock:   stock,
		Options: models.OptionCombination(options),
	}
}

// CreateTestProductInfo creates a stored product with the given variants
func CreateTestProductInfo(id string, price float64, variants ...models.Variant) *models.ProductInfo {
	return &models.ProductInfo{
		ID:       id,
		Name:     "Product " + id,
		Brand:    "Nike",
		Category: "zapatillas",
		Price:    price,
		Stock:    5,
		Variants: variants,
	}
}

// FloatPtr returns a pointer to v
func FloatPtr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v
func StringPtr(v string) *string { return &v }

// BoolPtr returns a pointer to v
func BoolPtr(v bool) *bool { return &v }
