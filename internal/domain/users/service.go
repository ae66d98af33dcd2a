package users

import (
	"context"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain/roles"
	"storefront/internal/domain/validation"
)

// Service holds the self-service profile mutations.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ToggleFakeAdmin flips USER <-> FAKE_ADMIN for the given user and returns
// the user as stored afterwards. Admins get roles.ErrRoleNotToggleable.
func (s *Service) ToggleFakeAdmin(ctx context.Context, userID int64) (*User, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := roles.ToggleFakeAdmin(user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateRole(ctx, userID, user.Role, next); err != nil {
		return nil, err
	}

	user.Role = next
	return user, nil
}

func (s *Service) SetDisplayName(ctx context.Context, userID int64, displayName string) (*User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, validation.Errorf("Please provide displayName")
	}
	if utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return nil, validation.Errorf("displayName must be at most %d characters", MaxDisplayNameLength)
	}

	if err := s.store.SetDisplayName(ctx, userID, displayName); err != nil {
		return nil, err
	}

	return s.store.GetByID(ctx, userID)
}
