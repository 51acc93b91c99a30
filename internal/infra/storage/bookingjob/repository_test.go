package bookingjob

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.WrapPlain(db)), mock
}

func jobRow(id string, daysOfWeek string) *sqlmock.Rows {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(jobColumns).AddRow(
		id,                  // id
		"resident@example.com", // user_email
		"Ivanov",            // user_last_name
		"412",               // user_unit_number
		"amenity-1",         // amenity_id
		"Pool",              // amenity_name
		"recurring",         // booking_type
		"active",            // status
		nil,                 // target_date
		nil,                 // target_time
		"weekly",            // recurrence_frequency
		"18:00",             // preferred_time
		daysOfWeek,          // preferred_days_of_week
		nil,                 // end_date
		1,                   // party_size
		0,                   // successful_bookings
		0,                   // failed_attempts
		nil,                 // last_attempt
		nil,                 // last_successful_booking
		nil,                 // error_message
		true,                // is_active
		now,                 // created_at
		now,                 // updated_at
	)
}

func TestListActiveEligible(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM booking_jobs WHERE is_active = \\$1 AND status = \\$2 ORDER BY created_at ASC").
		WithArgs(true, "active").
		WillReturnRows(jobRow("job-1", "1,4"))

	mock.ExpectQuery("SELECT .+ FROM booked_slots WHERE job_id IN \\(\\$1\\)").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_id", "reservation_id", "access_code", "booked_date", "booked_time", "created_at",
		}).AddRow("slot-1", "job-1", "res-1", "1234", "2026-09-01", "18:00", time.Now()))

	jobs, err := repo.ListActiveEligible(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, domain.FrequencyWeekly, job.RecurrenceFrequency)
	assert.Equal(t, []int{1, 4}, job.PreferredDaysOfWeek)
	require.Len(t, job.BookedSlots, 1)
	assert.Equal(t, types.DateString("2026-09-01"), job.BookedSlots[0].BookedDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListActiveEligible_QuotedDaysCoercion(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Исторические записи хранят дни как строки с кавычками
	mock.ExpectQuery("SELECT .+ FROM booking_jobs").
		WillReturnRows(jobRow("job-1", `"1", "4"`))

	mock.ExpectQuery("SELECT .+ FROM booked_slots").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "job_id", "reservation_id", "access_code", "booked_date", "booked_time", "created_at",
		}))

	jobs, err := repo.ListActiveEligible(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, []int{1, 4}, jobs[0].PreferredDaysOfWeek)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM booking_jobs WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(jobColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestSave_UpdatesJobAndInsertsNewSlots(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	job := &domain.BookingJob{
		ID:                 "job-1",
		Status:             domain.StatusActive,
		SuccessfulBookings: 1,
		IsActive:           true,
		LastAttempt:        &now,
		BookedSlots: []domain.BookedSlot{
			{ID: "slot-1", JobID: "job-1", BookedDate: "2026-08-25", BookedTime: "18:00"},
			{ReservationID: "res-2", AccessCode: "4321", BookedDate: "2026-09-01", BookedTime: "18:00"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE booking_jobs SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Вставляется только новый слот (без ID)
	mock.ExpectQuery("INSERT INTO booked_slots .+ RETURNING created_at").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), job)
	require.NoError(t, err)

	assert.NotEmpty(t, job.BookedSlots[1].ID, "new slot gets an ID assigned on save")
	assert.Equal(t, "job-1", job.BookedSlots[1].JobID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_JobNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE booking_jobs SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), &domain.BookingJob{ID: "missing"})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM booking_jobs WHERE id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestDeleteSlot_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM booked_slots WHERE id = \\$1").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteSlot(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestJoinDaysOfWeek(t *testing.T) {
	assert.Equal(t, "1,4", joinDaysOfWeek([]int{1, 4}))
	assert.Equal(t, "", joinDaysOfWeek(nil))
}

func TestParseDaysOfWeek(t *testing.T) {
	assert.Equal(t, []int{1, 4}, parseDaysOfWeek("1,4"))
	assert.Equal(t, []int{1, 4}, parseDaysOfWeek(`"1","4"`))
	assert.Equal(t, []int{1, 4}, parseDaysOfWeek(" 1 , 4 "))
	assert.Nil(t, parseDaysOfWeek(""))
}
