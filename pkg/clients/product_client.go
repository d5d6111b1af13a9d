package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aioutlet/variant-service/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

// ProductClient interface for product service communication
type ProductClient interface {
	GetProduct(ctx context.Context, productID string) (*models.ProductInfo, error)
	CreateProduct(ctx context.Context, product models.ProductSubmission) (string, error)
	UpdateProduct(ctx context.Context, productID string, product models.ProductSubmission) error
}

// productClient implements ProductClient over HTTP
type productClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewProductClient creates a new product client
func NewProductClient(baseURL string, timeout time.Duration, logger *zap.Logger) ProductClient {
	return &productClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GetProduct retrieves a stored product with its variants
func (c *productClient) GetProduct(ctx context.Context, productID string) (*models.ProductInfo, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))

	status, body, err := doJSON(ctx, c.httpClient, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to call product service",
			zap.String("productID", productID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to call product service: %w", err)
	}
	if status == http.StatusNotFound || len(body) == 0 {
		return nil, models.ErrProductNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("product service returned status %d", status)
	}

	var product models.ProductInfo
	if err := json.Unmarshal(body, &product); err != nil {
		c.logger.Error("Failed to unmarshal product response",
			zap.String("productID", productID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if product.ID == "" {
		return nil, models.ErrProductNotFound
	}

	return &product, nil
}

// CreateProduct hands a validated product to the product service and returns its id
func (c *productClient) CreateProduct(ctx context.Context, product models.ProductSubmission) (string, error) {
	endpoint := c.baseURL + "/api/products"

	status, body, err := doJSON(ctx, c.httpClient, http.MethodPost, endpoint, product)
	if err != nil {
		c.logger.Error("Failed to create product",
			zap.String("name", product.Name),
			zap.Error(err))
		return "", fmt.Errorf("failed to call product service: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", fmt.Errorf("product service returned status %d", status)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("product service returned no product id")
	}

	return created.ID, nil
}

// UpdateProduct replaces a stored product with the edited draft
func (c *productClient) UpdateProduct(ctx context.Context, productID string, product models.ProductSubmission) error {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))

	status, _, err := doJSON(ctx, c.httpClient, http.MethodPut, endpoint, product)
	if err != nil {
		c.logger.Error("Failed to update product",
			zap.String("productID", productID),
			zap.Error(err))
		return fmt.Errorf("failed to call product service: %w", err)
	}
	switch status {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return models.ErrProductNotFound
	default:
		return fmt.Errorf("product service returned status %d", status)
	}
}

// doJSON sends an optional JSON body with trace context headers and returns
// the status code and response body
func doJSON(ctx context.Context, client *http.Client, method, endpoint string, payload interface{}) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
