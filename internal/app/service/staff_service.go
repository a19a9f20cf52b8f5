package service

import (
	"context"
	"errors"
	"fmt"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"
	"staff_attendance/internal/domain/repository"
)

type StaffService struct {
	userRepo repository.UserRepository
}

func NewStaffService(userRepo repository.UserRepository) *StaffService {
	return &StaffService{userRepo: userRepo}
}

type StaffInfo struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (s *StaffService) ListStaff(ctx context.Context) ([]StaffInfo, error) {
	users, err := s.userRepo.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	staff := make([]StaffInfo, 0, len(users))
	for _, u := range users {
		staff = append(staff, StaffInfo{ID: u.ID, FullName: u.FullName, Email: u.Email})
	}
	return staff, nil
}

// DeleteStaff removes a staff user and, through the cascading foreign key,
// their attendance records. An unknown id and a non-staff id both read as
// not found, so admins can never be deleted through this path.
func (s *StaffService) DeleteStaff(ctx context.Context, id int64) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.Role != model.RoleStaff {
		return common.ErrNotFound
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}
