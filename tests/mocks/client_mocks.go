package mocks

import (
	"context"

	"github.com/aioutlet/variant-service/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProductClient is a mock implementation of ProductClient
type MockProductClient struct {
	mock.Mock
}

func (m *MockProductClient) GetProduct(ctx context.Context, productID string) (*models.ProductInfo, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductInfo), args.Error(1)
}

func (m *MockProductClient) CreateProduct(ctx context.Context, product models.ProductSubmission) (string, error) {
	args := m.Called(ctx, product)
	return args.String(0), args.Error(1)
}

func (m *MockProductClient) UpdateProduct(ctx context.Context, productID string, product models.ProductSubmission) error {
	args := m.Called(ctx, productID, product)
	return args.Error(0)
}

// MockCategoryClient is a mock implementation of CategoryClient
type MockCategoryClient struct {
	mock.Mock
}

func (m *MockCategoryClient) GetCategoryName(ctx context.Context, categoryID string) (string, error) {
	args := m.Called(ctx, categoryID)
	return args.String(0), args.Error(1)
}

// MockSuggester is a mock implementation of OptionSuggester
type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) Suggest(category string) models.Suggestion {
	args := m.Called(category)
	return args.Get(0).(models.Suggestion)
}
