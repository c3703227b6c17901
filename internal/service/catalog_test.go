package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kapitalbot/internal/repository"
	"kapitalbot/internal/testutil"
)

func TestCatalogService_AddCategory_SplitsEmoji(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedEmoji string
		expectedName  string
	}{
		{
			name:          "emoji prefix",
			input:         "🟥 Doimiy Xarajat",
			expectedEmoji: "🟥",
			expectedName:  "Doimiy Xarajat",
		},
		{
			name:          "no emoji",
			input:         "Transport",
			expectedEmoji: "",
			expectedName:  "Transport",
		},
		{
			name:          "surrounding whitespace",
			input:         "  🟦 Ish Xaqi  ",
			expectedEmoji: "🟦",
			expectedName:  "Ish Xaqi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockCatalogRepository)
			mockRepo.On("AddCategory", mock.Anything, tt.expectedName, tt.expectedEmoji).Return(nil)

			svc := NewCatalogService(mockRepo)

			item, err := svc.AddCategory(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedName, item.Name)
			assert.Equal(t, tt.expectedEmoji, item.Emoji)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_AddCategory_EmptyName(t *testing.T) {
	mockRepo := new(testutil.MockCatalogRepository)

	svc := NewCatalogService(mockRepo)

	_, err := svc.AddCategory(context.Background(), "   ")

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "AddCategory")
}

func TestCatalogService_AddCategory_Duplicate(t *testing.T) {
	mockRepo := new(testutil.MockCatalogRepository)
	mockRepo.On("AddCategory", mock.Anything, "Qarz", "").Return(repository.ErrAlreadyExists)

	svc := NewCatalogService(mockRepo)

	_, err := svc.AddCategory(context.Background(), "Qarz")

	assert.True(t, errors.Is(err, repository.ErrAlreadyExists))
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_AddPayType_Trims(t *testing.T) {
	mockRepo := new(testutil.MockCatalogRepository)
	mockRepo.On("AddPayType", mock.Anything, "Click").Return(nil)

	svc := NewCatalogService(mockRepo)

	assert.NoError(t, svc.AddPayType(context.Background(), "  Click  "))
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_Rename_EmptyName(t *testing.T) {
	mockRepo := new(testutil.MockCatalogRepository)

	svc := NewCatalogService(mockRepo)

	assert.Error(t, svc.RenameCategory(context.Background(), "Qarz", " "))
	assert.Error(t, svc.RenamePayType(context.Background(), "Bank", ""))
	mockRepo.AssertNotCalled(t, "RenameCategory")
	mockRepo.AssertNotCalled(t, "RenamePayType")
}
