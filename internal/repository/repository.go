package repository

import (
	"context"

	"github.com/pkg/errors"

	"kapitalbot/internal/domain"
)

// ErrAlreadyExists is returned when an insert or rename collides with an
// existing name or id.
var ErrAlreadyExists = errors.New("already exists")

// UserRepository defines user directory operations
type UserRepository interface {
	// GetStatus returns the user's status. A missing row is reported via
	// found=false, not an error.
	GetStatus(ctx context.Context, userID int64) (status domain.Status, found bool, err error)
	// Register inserts a pending user row. Registering an existing id is
	// a no-op: the original name, phone and status are preserved.
	Register(ctx context.Context, userID int64, name, phone string) error
	SetStatus(ctx context.Context, userID int64, status domain.Status) error
	GetName(ctx context.Context, userID int64) (string, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.User, error)
}

// CatalogRepository defines category and payment-type operations
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.CatalogItem, error)
	AddCategory(ctx context.Context, name, emoji string) error
	RenameCategory(ctx context.Context, oldName, newName string) error
	DeleteCategory(ctx context.Context, name string) error

	ListPayTypes(ctx context.Context) ([]domain.CatalogItem, error)
	AddPayType(ctx context.Context, name string) error
	RenamePayType(ctx context.Context, oldName, newName string) error
	DeletePayType(ctx context.Context, name string) error
}
