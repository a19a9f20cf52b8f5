package service

import (
	"context"
	"staff_attendance/internal/common"
	"staff_attendance/internal/domain/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStaff(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewStaffService(users)

	require.NoError(t, users.Create(context.Background(), &model.User{
		FullName: "System Admin", Email: "admin@school.com", PasswordHash: "x", Role: model.RoleAdmin,
	}))
	a := seedStaff(t, users, "a@school.com")
	b := seedStaff(t, users, "b@school.com")

	staff, err := svc.ListStaff(context.Background())
	require.NoError(t, err)
	require.Len(t, staff, 2)

	// Admins never show up in the staff listing.
	assert.Equal(t, a.ID, staff[0].ID)
	assert.Equal(t, "a@school.com", staff[0].Email)
	assert.Equal(t, b.ID, staff[1].ID)
}

func TestDeleteStaff(t *testing.T) {
	users := newFakeUserRepo()
	records := newFakeAttendanceRepo(users)
	svc := NewStaffService(users)

	require.NoError(t, users.Create(context.Background(), &model.User{
		FullName: "System Admin", Email: "admin@school.com", PasswordHash: "x", Role: model.RoleAdmin,
	}))
	admin, err := users.FindByEmail(context.Background(), "admin@school.com")
	require.NoError(t, err)
	staff := seedStaff(t, users, "staff@school.com")

	checkIn := time.Date(2025, 3, 10, 7, 5, 0, 0, time.Local)
	seedRecord(t, records, staff.ID, checkIn, model.StatusPresent)
	seedRecord(t, records, staff.ID, checkIn.AddDate(0, 0, 1), model.StatusLate)

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "unknown_id", id: 9999, wantErr: common.ErrNotFound},
		{name: "admin_id_reads_as_not_found", id: admin.ID, wantErr: common.ErrNotFound},
		{name: "staff_id_deleted", id: staff.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.DeleteStaff(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	// The user and, via cascade, their attendance are gone.
	_, err = users.FindByID(context.Background(), staff.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	remaining, err := records.ListByUser(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Deleting twice reads the same as never existing.
	assert.ErrorIs(t, svc.DeleteStaff(context.Background(), staff.ID), common.ErrNotFound)
}
