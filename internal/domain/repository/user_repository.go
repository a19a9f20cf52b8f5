package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByResetToken(ctx context.Context, token string) (*model.User, error)
	SetResetToken(ctx context.Context, userID int64, token string) error
	// UpdatePassword stores the new hash and clears any outstanding reset
	// token so the token cannot be replayed.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	// Delete removes the user row; attendance rows go with it via the
	// ON DELETE CASCADE foreign key.
	Delete(ctx context.Context, id int64) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (full_name, email, password_hash, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.FullName, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("email already registered: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, full_name, email, password_hash, role, reset_token, created_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role, &user.ResetToken, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, full_name, email, password_hash, role, reset_token, created_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role, &user.ResetToken, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	query := `SELECT id, full_name, email, password_hash, role, reset_token, created_at
	          FROM users WHERE reset_token = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role, &user.ResetToken, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByResetToken: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) SetResetToken(ctx context.Context, userID int64, token string) error {
	query := `UPDATE users SET reset_token = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return fmt.Errorf("pgUserRepository.SetResetToken: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, reset_token = NULL WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdatePassword: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	query := `SELECT id, full_name, email, password_hash, role, reset_token, created_at
	          FROM users WHERE role = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListByRole query: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.ResetToken, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListByRole scan: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListByRole rows.Err: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
