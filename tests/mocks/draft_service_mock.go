package mocks

import (
	"context"

	"github.com/aioutlet/variant-service/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDraftService is a mock implementation of DraftService
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) Suggest(ctx context.Context, category string) models.Suggestion {
	args := m.Called(ctx, category)
	return args.Get(0).(models.Suggestion)
}

func (m *MockDraftService) CreateDraft(ctx context.Context, userID string, request models.CreateDraftRequest) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, request)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) OpenProductForEdit(ctx context.Context, userID, productID string) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, productID)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) GetDraft(ctx context.Context, userID, draftID string) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, draftID)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) UpdateDraft(ctx context.Context, userID, draftID string, request models.UpdateDraftRequest) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, draftID, request)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) SetOptionTypes(ctx context.Context, userID, draftID string, request models.SetOptionTypesRequest) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, draftID, request)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) SetMode(ctx context.Context, userID, draftID string, request models.SetModeRequest) (*models.ProductDraft, []string, error) {
	args := m.Called(ctx, userID, draftID, request)
	var warnings []string
	if w := args.Get(1); w != nil {
		warnings = w.([]string)
	}
	return draftOrNil(args.Get(0)), warnings, args.Error(2)
}

func (m *MockDraftService) GenerateVariants(ctx context.Context, userID, draftID string) (*models.ProductDraft, []models.Variant, error) {
	args := m.Called(ctx, userID, draftID)
	var added []models.Variant
	if a := args.Get(1); a != nil {
		added = a.([]models.Variant)
	}
	return draftOrNil(args.Get(0)), added, args.Error(2)
}

func (m *MockDraftService) UpdateVariant(ctx context.Context, userID, draftID string, index int, request models.UpdateVariantRequest) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, draftID, index, request)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) RemoveVariant(ctx context.Context, userID, draftID string, index int) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, draftID, index)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) SelectMainVariant(ctx context.Context, userID, draftID string, index int) (*models.ProductDraft, error) {
	args := m.Called(ctx, userID, draftID, index)
	return draftOrNil(args.Get(0)), args.Error(1)
}

func (m *MockDraftService) SubmitDraft(ctx context.Context, userID, draftID string) (*models.SubmitResult, error) {
	args := m.Called(ctx, userID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitResult), args.Error(1)
}

func (m *MockDraftService) DeleteDraft(ctx context.Context, userID, draftID string) error {
	args := m.Called(ctx, userID, draftID)
	return args.Error(0)
}

func draftOrNil(v interface{}) *models.ProductDraft {
	if v == nil {
		return nil
	}
	return v.(*models.ProductDraft)
}
