package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/repository"
)

const uniqueViolation = "23505"

// CatalogRepo implements repository.CatalogRepository over the
// categories and pay_types tables.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// translateConflict maps a unique-constraint violation to ErrAlreadyExists
func translateConflict(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrAlreadyExists
	}
	return errors.Wrap(err, msg)
}

func (r *CatalogRepo) list(ctx context.Context, table string) ([]domain.CatalogItem, error) {
	query := `SELECT id, name, emoji FROM ` + table + ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", table)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var item domain.CatalogItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Emoji); err != nil {
			return nil, errors.Wrapf(err, "scanning %s row", table)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListCategories returns all categories in insertion order
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]domain.CatalogItem, error) {
	return r.list(ctx, "categories")
}

// AddCategory inserts a category with an optional display emoji
func (r *CatalogRepo) AddCategory(ctx context.Context, name, emoji string) error {
	query := `INSERT INTO categories (name, emoji) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, name, emoji)
	return translateConflict(err, "adding category")
}

// RenameCategory changes a category name in place
func (r *CatalogRepo) RenameCategory(ctx context.Context, oldName, newName string) error {
	query := `UPDATE categories SET name = $1 WHERE name = $2`
	_, err := r.db.ExecContext(ctx, query, newName, oldName)
	return translateConflict(err, "renaming category")
}

// DeleteCategory removes a category by name. Past records referencing the
// name are unaffected.
func (r *CatalogRepo) DeleteCategory(ctx context.Context, name string) error {
	query := `DELETE FROM categories WHERE name = $1`
	_, err := r.db.ExecContext(ctx, query, name)
	return errors.Wrap(err, "deleting category")
}

// ListPayTypes returns all payment types in insertion order
func (r *CatalogRepo) ListPayTypes(ctx context.Context) ([]domain.CatalogItem, error) {
	return r.list(ctx, "pay_types")
}

// AddPayType inserts a payment type
func (r *CatalogRepo) AddPayType(ctx context.Context, name string) error {
	query := `INSERT INTO pay_types (name) VALUES ($1)`
	_, err := r.db.ExecContext(ctx, query, name)
	return translateConflict(err, "adding pay type")
}

// RenamePayType changes a payment type name in place
func (r *CatalogRepo) RenamePayType(ctx context.Context, oldName, newName string) error {
	query := `UPDATE pay_types SET name = $1 WHERE name = $2`
	_, err := r.db.ExecContext(ctx, query, newName, oldName)
	return translateConflict(err, "renaming pay type")
}

// DeletePayType removes a payment type by name
func (r *CatalogRepo) DeletePayType(ctx context.Context, name string) error {
	query := `DELETE FROM pay_types WHERE name = $1`
	_, err := r.db.ExecContext(ctx, query, name)
	return errors.Wrap(err, "deleting pay type")
}
