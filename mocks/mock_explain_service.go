package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slidetutor/internal/domain"
)

// MockExplainService is a mock implementation of service.ExplainService.
type MockExplainService struct {
	mock.Mock
}

func (m *MockExplainService) Explain(ctx context.Context, documentID string, pageNumber int) (*domain.Explanation, error) {
	args := m.Called(ctx, documentID, pageNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Explanation), args.Error(1)
}
