package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRawGenerator is a mock implementation of port.RawGenerator.
type MockRawGenerator struct {
	mock.Mock
}

func (m *MockRawGenerator) Generate(ctx context.Context, image []byte, prompt string, pageNumber int) string {
	args := m.Called(ctx, image, prompt, pageNumber)
	return args.String(0)
}
