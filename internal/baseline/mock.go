package baseline

import (
	"context"

	"github.com/perfgate/perfgate/internal/contract"
	"github.com/perfgate/perfgate/schema"
	"github.com/stretchr/testify/mock"
)

// MockBaselineStore is a mock implementation of BaselineStore for testing.
type MockBaselineStore struct {
	mock.Mock
}

var _ contract.BaselineStore = &MockBaselineStore{} // Compile-time check

// Load implements the BaselineStore interface.
func (m *MockBaselineStore) Load(ctx context.Context, benchmarkID string) (*schema.BaselineRecord, error) {
	args := m.Called(ctx, benchmarkID)
	record, _ := args.Get(0).(*schema.BaselineRecord)
	return record, args.Error(1)
}

// LoadAt implements the BaselineStore interface.
func (m *MockBaselineStore) LoadAt(ctx context.Context, benchmarkID, tag string) (*schema.BaselineRecord, error) {
	args := m.Called(ctx, benchmarkID, tag)
	record, _ := args.Get(0).(*schema.BaselineRecord)
	return record, args.Error(1)
}

// List implements the BaselineStore interface.
func (m *MockBaselineStore) List(ctx context.Context, benchmarkID string) ([]schema.BaselineRecord, error) {
	args := m.Called(ctx, benchmarkID)
	records, _ := args.Get(0).([]schema.BaselineRecord)
	return records, args.Error(1)
}

// Save implements the BaselineStore interface.
func (m *MockBaselineStore) Save(ctx context.Context, record schema.BaselineRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Clear implements the BaselineStore interface.
func (m *MockBaselineStore) Clear(ctx context.Context, benchmarkID string) error {
	args := m.Called(ctx, benchmarkID)
	return args.Error(0)
}

// Status implements the BaselineStore interface.
func (m *MockBaselineStore) Status(ctx context.Context) (schema.StoreStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the BaselineStore interface.
func (m *MockBaselineStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
