package testutil

import (
	"time"

	"go.uber.org/zap"

	"kapitalbot/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, name string, status domain.Status) domain.User {
	return domain.User{
		ID:           userID,
		Name:         name,
		Phone:        "+998901234567",
		Status:       status,
		RegisteredAt: time.Now(),
	}
}

// NewTestItem creates a test catalog item
func NewTestItem(id int, name, emoji string) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Name: name, Emoji: emoji}
}
