package service

import (
	"context"

	"kapitalbot/internal/domain"
	"kapitalbot/internal/repository"
)

// AccessService decides, per inbound actor, whether an action may
// proceed, and drives the registration and approval workflow.
type AccessService struct {
	userRepo repository.UserRepository
	admins   map[int64]struct{}
}

// NewAccessService creates a new access service
func NewAccessService(userRepo repository.UserRepository, adminIDs []int64) *AccessService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AccessService{
		userRepo: userRepo,
		admins:   admins,
	}
}

// IsAdmin reports whether the actor is in the configured admin set.
func (s *AccessService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// AdminIDs returns the configured admin set.
func (s *AccessService) AdminIDs() []int64 {
	ids := make([]int64, 0, len(s.admins))
	for id := range s.admins {
		ids = append(ids, id)
	}
	return ids
}

// Disposition resolves the actor's access verdict. A missing user row
// maps to Unregistered.
func (s *AccessService) Disposition(ctx context.Context, userID int64) (domain.Disposition, error) {
	status, found, err := s.userRepo.GetStatus(ctx, userID)
	if err != nil {
		return domain.DispositionUnregistered, err
	}
	if !found {
		return domain.DispositionUnregistered, nil
	}

	switch status {
	case domain.StatusApproved:
		return domain.DispositionApproved, nil
	case domain.StatusDenied:
		return domain.DispositionDenied, nil
	default:
		return domain.DispositionPending, nil
	}
}

// Register creates a pending user row. Registering an already-registered
// id is an idempotent no-op.
func (s *AccessService) Register(ctx context.Context, userID int64, name, phone string) error {
	return s.userRepo.Register(ctx, userID, name, phone)
}

// Approve grants the user access.
func (s *AccessService) Approve(ctx context.Context, userID int64) error {
	return s.userRepo.SetStatus(ctx, userID, domain.StatusApproved)
}

// Deny revokes or refuses the user's access.
func (s *AccessService) Deny(ctx context.Context, userID int64) error {
	return s.userRepo.SetStatus(ctx, userID, domain.StatusDenied)
}

// UserName resolves the actor's registered display name, empty if the
// actor is unknown.
func (s *AccessService) UserName(ctx context.Context, userID int64) (string, error) {
	return s.userRepo.GetName(ctx, userID)
}

// ListApproved returns all approved users.
func (s *AccessService) ListApproved(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListByStatus(ctx, domain.StatusApproved)
}

// ListDenied returns all denied users.
func (s *AccessService) ListDenied(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListByStatus(ctx, domain.StatusDenied)
}
