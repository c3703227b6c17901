package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kapitalbot/internal/domain"
)

// MockUserRepository is a mock for repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetStatus(ctx context.Context, userID int64) (domain.Status, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Status), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) Register(ctx context.Context, userID int64, name, phone string) error {
	args := m.Called(ctx, userID, name, phone)
	return args.Error(0)
}

func (m *MockUserRepository) SetStatus(ctx context.Context, userID int64, status domain.Status) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

func (m *MockUserRepository) GetName(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.User, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockCatalogRepository is a mock for repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) AddCategory(ctx context.Context, name, emoji string) error {
	args := m.Called(ctx, name, emoji)
	return args.Error(0)
}

func (m *MockCatalogRepository) RenameCategory(ctx context.Context, oldName, newName string) error {
	args := m.Called(ctx, oldName, newName)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCategory(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListPayTypes(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) AddPayType(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCatalogRepository) RenamePayType(ctx context.Context, oldName, newName string) error {
	args := m.Called(ctx, oldName, newName)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeletePayType(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockRecordSink is a mock for sink.RecordSink
type MockRecordSink struct {
	mock.Mock
}

func (m *MockRecordSink) Append(ctx context.Context, rec domain.Record, userName string) error {
	args := m.Called(ctx, rec, userName)
	return args.Error(0)
}
