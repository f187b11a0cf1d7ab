package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockPageRenderer is a mock implementation of port.PageRenderer.
type MockPageRenderer struct {
	mock.Mock
}

func (m *MockPageRenderer) PageCount(pdf []byte) (int, error) {
	args := m.Called(pdf)
	return args.Int(0), args.Error(1)
}

func (m *MockPageRenderer) RenderPage(pdf []byte, pageNumber int) ([]byte, error) {
	args := m.Called(pdf, pageNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
