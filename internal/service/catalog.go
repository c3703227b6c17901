package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/repository"
)

// CatalogService manages the admin-editable category and payment-type
// lists.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// Categories returns the live category list.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.catalogRepo.ListCategories(ctx)
}

// PayTypes returns the live payment-type list.
func (s *CatalogService) PayTypes(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.catalogRepo.ListPayTypes(ctx)
}

// AddCategory splits a leading emoji off the typed text and inserts the
// category. Returns repository.ErrAlreadyExists on a duplicate name.
func (s *CatalogService) AddCategory(ctx context.Context, text string) (domain.CatalogItem, error) {
	emoji, name := splitEmoji(strings.TrimSpace(text))
	if name == "" {
		return domain.CatalogItem{}, errors.New("category name cannot be empty")
	}
	if err := s.catalogRepo.AddCategory(ctx, name, emoji); err != nil {
		return domain.CatalogItem{}, err
	}
	return domain.CatalogItem{Name: name, Emoji: emoji}, nil
}

// RenameCategory changes a category name.
func (s *CatalogService) RenameCategory(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("category name cannot be empty")
	}
	return s.catalogRepo.RenameCategory(ctx, oldName, newName)
}

// DeleteCategory removes a category by name.
func (s *CatalogService) DeleteCategory(ctx context.Context, name string) error {
	return s.catalogRepo.DeleteCategory(ctx, name)
}

// AddPayType inserts a payment type. Returns repository.ErrAlreadyExists
// on a duplicate name.
func (s *CatalogService) AddPayType(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("pay type name cannot be empty")
	}
	return s.catalogRepo.AddPayType(ctx, name)
}

// RenamePayType changes a payment type name.
func (s *CatalogService) RenamePayType(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("pay type name cannot be empty")
	}
	return s.catalogRepo.RenamePayType(ctx, oldName, newName)
}

// DeletePayType removes a payment type by name.
func (s *CatalogService) DeletePayType(ctx context.Context, name string) error {
	return s.catalogRepo.DeletePayType(ctx, name)
}

// splitEmoji separates a leading emoji/symbol run from the rest of the
// text.
func splitEmoji(text string) (emoji, name string) {
	rest := strings.TrimLeftFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	emoji = strings.TrimSpace(strings.TrimSuffix(text, rest))
	return emoji, strings.TrimSpace(rest)
}
