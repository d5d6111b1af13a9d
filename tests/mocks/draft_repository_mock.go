package mocks

import (
	"context"
	"time"

	"github.com/aioutlet/variant-service/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockDraftRepository is a mock implementation of DraftRepository
type MockDraftRepository struct {
	mock.Mock
}

func (m *MockDraftRepository) GetDraft(ctx context.Context, draftID string) (*models.ProductDraft, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductDraft), args.Error(1)
}

func (m *MockDraftRepository) SaveDraft(ctx context.Context, draft *models.ProductDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepository) DeleteDraft(ctx context.Context, draftID string) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func (m *MockDraftRepository) AcquireLock(ctx context.Context, draftID string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, draftID, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockDraftRepository) ReleaseLock(ctx context.Context, draftID, token string) error {
	args := m.Called(ctx, draftID, token)
	return args.Error(0)
}
