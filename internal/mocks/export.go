package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitaltrack/backend/internal/service"
	"github.com/pageza/vitaltrack/backend/internal/types"
)

// MockExportService is a mock implementation of service.IExportService
type MockExportService struct {
	mock.Mock
}

var _ service.IExportService = (*MockExportService)(nil)

func (m *MockExportService) Export(ctx context.Context, sess *types.Session) (*service.ExportResult, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
