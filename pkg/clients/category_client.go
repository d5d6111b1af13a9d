package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aioutlet/variant-service/internal/models"
	"go.uber.org/zap"
)

// CategoryClient resolves category ids to their display names
type CategoryClient interface {
	GetCategoryName(ctx context.Context, categoryID string) (string, error)
}

type categoryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewCategoryClient creates a new category client
func NewCategoryClient(baseURL string, timeout time.Duration, logger *zap.Logger) CategoryClient {
	return &categoryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GetCategoryName returns the human-readable category name
func (c *categoryClient) GetCategoryName(ctx context.Context, categoryID string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/categories/%s", c.baseURL, url.PathEscape(categoryID))

	status, body, err := doJSON(ctx, c.httpClient, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to call category service",
			zap.String("categoryID", categoryID),
			zap.Error(err))
		return "", fmt.Errorf("failed to call category service: %w", err)
	}
	if status == http.StatusNotFound {
		return "", models.ErrCategoryNotFound
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("category service returned status %d", status)
	}

	var category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &category); err != nil {
		c.logger.Error("Failed to unmarshal category response",
			zap.String("categoryID", categoryID),
			zap.Error(err))
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if category.Name == "" {
		return "", models.ErrCategoryNotFound
	}

	return category.Name, nil
}
