package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slidetutor/internal/domain"
	"slidetutor/internal/service"
)

// MockDeckService is a mock implementation of service.DeckService.
type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) Upload(ctx context.Context, input service.DeckUploadInput) (*service.DeckUploadResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeckUploadResult), args.Error(1)
}

func (m *MockDeckService) GetInfo(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
