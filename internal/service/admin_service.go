package service

import (
	"context"
	"fmt"
	"log"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

type AdminService interface {
	AddAdmin(ctx context.Context, caller, principal identity.Principal) error
	IsCallerAdmin(ctx context.Context, caller identity.Principal) (bool, error)
}

type adminService struct {
	*core
}

func NewAdminService(c *core) AdminService {
	return &adminService{core: c}
}

// AddAdmin lets anyone authenticated appoint the first admin. Once the set
// is non-empty only admins may extend it.
func (s *adminService) AddAdmin(ctx context.Context, caller, principal identity.Principal) error {
	if err := authenticate(caller); err != nil {
		return err
	}

	if principal.IsAnonymous() {
		return invalid("анонимный principal не может быть администратором")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.repo.Admin.Count(ctx)
	if err != nil {
		return err
	}

	// Another instance may claim the empty set after Count, so the
	// repository decides atomically and a lost race falls through.
	if count == 0 {
		added, err := s.repo.Admin.Bootstrap(ctx, principal, caller)
		if err != nil {
			return err
		}
		if added {
			log.Printf("Назначен первый администратор %s (by %s)", principal, caller)
			return nil
		}
	}

	admin, err := s.isAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("назначение администратора: %w", models.ErrForbidden)
	}

	return s.repo.Admin.Add(ctx, principal, caller)
}

func (s *adminService) IsCallerAdmin(ctx context.Context, caller identity.Principal) (bool, error) {
	if err := authenticate(caller); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isAdmin(ctx, caller)
}
