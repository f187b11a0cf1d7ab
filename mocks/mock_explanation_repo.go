package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slidetutor/internal/domain"
)

// MockExplanationRepo is a mock implementation of port.ExplanationRepository.
type MockExplanationRepo struct {
	mock.Mock
}

func (m *MockExplanationRepo) Get(ctx context.Context, documentID string, pageNumber int) (*domain.Explanation, error) {
	args := m.Called(ctx, documentID, pageNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Explanation), args.Error(1)
}

func (m *MockExplanationRepo) ListByDocument(ctx context.Context, documentID string, beforePage int) ([]domain.Explanation, error) {
	args := m.Called(ctx, documentID, beforePage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Explanation), args.Error(1)
}

func (m *MockExplanationRepo) Upsert(ctx context.Context, exp *domain.Explanation) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}
