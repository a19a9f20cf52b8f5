package service

import (
	"context"
	"errors"
	"fmt"
	"staff_attendance/internal/common"
	"staff_attendance/internal/common/security"
	"staff_attendance/internal/domain/model"
	"staff_attendance/internal/domain/repository"
	"staff_attendance/internal/platform/metrics"
	"strings"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenService
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

type Profile struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Register creates a staff user. The requested role is never honored beyond
// the admin gate: admin accounts are seeded at startup, not registered.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if strings.EqualFold(req.Role, model.RoleAdmin) {
		return fmt.Errorf("admin registration not allowed: %w", common.ErrForbidden)
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         model.RoleStaff,
	}

	// Repo returns common.ErrConflict when the email is taken.
	return s.userRepo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same error as a wrong password, no user-existence oracle
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssued.Inc()
	return &LoginResult{AccessToken: token, TokenType: "bearer", Role: user.Role}, nil
}

// Me resolves the authenticated subject to their profile. A token whose
// subject no longer exists (staff deleted after issue) fails authentication.
func (s *AuthService) Me(ctx context.Context, email string) (*Profile, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &Profile{FullName: user.FullName, Role: user.Role}, nil
}

// ForgotPassword stores a fresh single-use reset token on the user,
// overwriting any prior pending token, and returns it to the caller.
// Delivery (e.g. email) is out of scope.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userRepo.SetResetToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token: re-hashes the credential and clears
// the token in the same update, so a second consume fails.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return common.ErrBadRequest
	}

	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashedPassword, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin seeds the configured admin account when no admin user
// exists yet. Reports whether a new account was created.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, fullName, email, password string) (bool, error) {
	admins, err := s.userRepo.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to check for admin users: %w", err)
	}
	if len(admins) > 0 {
		return false, nil
	}

	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		// Another instance may have seeded it between the check and here.
		if errors.Is(err, common.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("failed to seed default admin: %w", err)
	}
	return true, nil
}
