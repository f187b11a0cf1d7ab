package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slidetutor/internal/port"
)

// MockVisionModel is a mock implementation of port.VisionModel.
type MockVisionModel struct {
	mock.Mock
}

func (m *MockVisionModel) Generate(ctx context.Context, image []byte, prompt string, opts port.GenerateOptions) (*port.GenerateResult, error) {
	args := m.Called(ctx, image, prompt, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.GenerateResult), args.Error(1)
}
