package service

import (
	"context"
	"fmt"
	"sort"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"
	"sync"
	"time"
)

// In-memory repositories backing the service tests. They mirror the
// contracts of the pg implementations, including the unique-violation
// translation on attendance (user_id, date).

type fakeUserRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*model.User
	onDelete func(userID int64) // cascade hook, registered by the attendance fake
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return common.ErrConflict
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByResetToken(_ context.Context, token string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, userID int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	u.ResetToken = &token
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	return nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := []model.User{}
	for _, u := range f.users {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	if f.onDelete != nil {
		f.onDelete(id)
	}
	return nil
}

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[string]*model.AttendanceRecord
	users   *fakeUserRepo
}

// newFakeAttendanceRepo wires itself to the user fake so a user deletion
// cascades to attendance, like the ON DELETE CASCADE foreign key does.
func newFakeAttendanceRepo(users *fakeUserRepo) *fakeAttendanceRepo {
	f := &fakeAttendanceRepo{records: map[string]*model.AttendanceRecord{}, users: users}
	users.onDelete = f.deleteByUser
	return f
}

func (f *fakeAttendanceRepo) deleteByUser(userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, rec := range f.records {
		if rec.UserID == userID {
			delete(f.records, key)
		}
	}
}

func recordKey(userID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", userID, date.Format("2006-01-02"))
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec *model.AttendanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(rec.UserID, rec.Date)
	if _, exists := f.records[key]; exists {
		return common.ErrAlreadyMarked
	}
	f.nextID++
	rec.ID = f.nextID
	cp := *rec
	f.records[key] = &cp
	return nil
}

func (f *fakeAttendanceRepo) FindByUserAndDate(_ context.Context, userID int64, date time.Time) (*model.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[recordKey(userID, date)]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID int64) ([]model.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := []model.AttendanceRecord{}
	for _, rec := range f.records {
		if rec.UserID == userID {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	return records, nil
}

func (f *fakeAttendanceRepo) CountStatusesForDate(_ context.Context, date time.Time) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := date.Format("2006-01-02")
	var present, late int
	for _, rec := range f.records {
		if rec.Date.Format("2006-01-02") != day {
			continue
		}
		switch rec.Status {
		case model.StatusPresent:
			present++
		case model.StatusLate:
			late++
		}
	}
	return present, late, nil
}

func (f *fakeAttendanceRepo) AbsenteesForDate(ctx context.Context, date time.Time) ([]model.User, error) {
	staff, err := f.users.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	absentees := []model.User{}
	for _, u := range staff {
		if _, marked := f.records[recordKey(u.ID, date)]; !marked {
			absentees = append(absentees, model.User{ID: u.ID, FullName: u.FullName, Email: u.Email})
		}
	}
	return absentees, nil
}

func (f *fakeAttendanceRepo) StatusCountsByStaff(ctx context.Context) ([]model.StaffStatusCounts, error) {
	staff, err := f.users.ListByRole(ctx, model.RoleStaff)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	counts := []model.StaffStatusCounts{}
	for _, u := range staff {
		entry := model.StaffStatusCounts{UserID: u.ID, FullName: u.FullName}
		for _, rec := range f.records {
			if rec.UserID != u.ID {
				continue
			}
			switch rec.Status {
			case model.StatusPresent:
				entry.PresentDays++
			case model.StatusLate:
				entry.LateDays++
			}
		}
		counts = append(counts, entry)
	}
	return counts, nil
}
