package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type AttendanceRepository interface {
	// Create inserts the record and fills in its generated ID. A second
	// record for the same (user, date) trips the unique constraint and
	// comes back as common.ErrAlreadyMarked, so concurrent check-ins
	// produce exactly one row.
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*model.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]model.AttendanceRecord, error)
	CountStatusesForDate(ctx context.Context, date time.Time) (present int, late int, err error)
	// AbsenteesForDate returns staff users with no record on the date.
	// Only ID, FullName and Email are populated.
	AbsenteesForDate(ctx context.Context, date time.Time) ([]model.User, error)
	StatusCountsByStaff(ctx context.Context) ([]model.StaffStatusCounts, error)
}

type pgAttendanceRepository struct {
	db *sql.DB
}

func NewPgAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &pgAttendanceRepository{db: db}
}

func (r *pgAttendanceRepository) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	query := `INSERT INTO attendance (user_id, date, check_in, status)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rec.UserID, rec.Date, rec.CheckIn, rec.Status).Scan(&rec.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint on (user_id, date)
			return common.ErrAlreadyMarked
		}
		return fmt.Errorf("pgAttendanceRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAttendanceRepository) FindByUserAndDate(ctx context.Context, userID int64, date time.Time) (*model.AttendanceRecord, error) {
	query := `SELECT id, user_id, date, check_in, status
	          FROM attendance WHERE user_id = $1 AND date = $2`
	rec := &model.AttendanceRecord{}
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAttendanceRepository.FindByUserAndDate: %w", err)
	}
	return rec, nil
}

func (r *pgAttendanceRepository) ListByUser(ctx context.Context, userID int64) ([]model.AttendanceRecord, error) {
	query := `SELECT id, user_id, date, check_in, status
	          FROM attendance WHERE user_id = $1 ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.Status); err != nil {
			return nil, fmt.Errorf("pgAttendanceRepository.ListByUser scan: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.ListByUser rows.Err: %w", err)
	}
	return records, nil
}

func (r *pgAttendanceRepository) CountStatusesForDate(ctx context.Context, date time.Time) (int, int, error) {
	query := `SELECT
	            COUNT(*) FILTER (WHERE status = 'Present'),
	            COUNT(*) FILTER (WHERE status = 'Late')
	          FROM attendance WHERE date = $1`
	var present, late int
	if err := r.db.QueryRowContext(ctx, query, date).Scan(&present, &late); err != nil {
		return 0, 0, fmt.Errorf("pgAttendanceRepository.CountStatusesForDate: %w", err)
	}
	return present, late, nil
}

func (r *pgAttendanceRepository) AbsenteesForDate(ctx context.Context, date time.Time) ([]model.User, error) {
	query := `SELECT u.id, u.full_name, u.email
	          FROM users u
	          WHERE u.role = 'staff'
	            AND NOT EXISTS (
	              SELECT 1 FROM attendance a WHERE a.user_id = u.id AND a.date = $1
	            )
	          ORDER BY u.id ASC`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.AbsenteesForDate query: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email); err != nil {
			return nil, fmt.Errorf("pgAttendanceRepository.AbsenteesForDate scan: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.AbsenteesForDate rows.Err: %w", err)
	}
	return users, nil
}

func (r *pgAttendanceRepository) StatusCountsByStaff(ctx context.Context) ([]model.StaffStatusCounts, error) {
	query := `SELECT u.id, u.full_name,
	            COUNT(a.id) FILTER (WHERE a.status = 'Present'),
	            COUNT(a.id) FILTER (WHERE a.status = 'Late')
	          FROM users u
	          LEFT JOIN attendance a ON a.user_id = u.id
	          WHERE u.role = 'staff'
	          GROUP BY u.id, u.full_name
	          ORDER BY u.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.StatusCountsByStaff query: %w", err)
	}
	defer rows.Close()

	entries := []model.StaffStatusCounts{}
	for rows.Next() {
		var e model.StaffStatusCounts
		if err := rows.Scan(&e.UserID, &e.FullName, &e.PresentDays, &e.LateDays); err != nil {
			return nil, fmt.Errorf("pgAttendanceRepository.StatusCountsByStaff scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttendanceRepository.StatusCountsByStaff rows.Err: %w", err)
	}
	return entries, nil
}
