package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

// 2026-08-31 — понедельник
var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	jobs    []*domain.BookingJob
	saved   []*domain.BookingJob
	listErr error
}

func (f *fakeRepo) ListActiveEligible(ctx context.Context) ([]*domain.BookingJob, error) {
	return f.jobs, f.listErr
}

func (f *fakeRepo) Save(ctx context.Context, job *domain.BookingJob) error {
	copied := *job
	f.saved = append(f.saved, &copied)
	return nil
}

type fakeClient struct {
	amenity      *respage.Amenity
	amenityErr   error
	residentID   string
	residentErr  error
	reserveRes   *respage.ReservationResult
	reserveCalls []respage.ReservationRequest
}

func (f *fakeClient) GetAmenity(ctx context.Context, amenityID string) (*respage.Amenity, error) {
	if f.amenityErr != nil {
		return nil, f.amenityErr
	}
	if f.amenity != nil {
		return f.amenity, nil
	}
	return &respage.Amenity{ID: amenityID, TermsOfUse: "terms"}, nil
}

func (f *fakeClient) ResolveResidentID(ctx context.Context, lastName, unitNumber string) (string, error) {
	if f.residentErr != nil {
		return "", f.residentErr
	}
	if f.residentID != "" {
		return f.residentID, nil
	}
	return "resident-1", nil
}

func (f *fakeClient) Reserve(ctx context.Context, req respage.ReservationRequest, residentID, termsOfUse string) *respage.ReservationResult {
	f.reserveCalls = append(f.reserveCalls, req)
	if f.reserveRes != nil {
		return f.reserveRes
	}
	return &respage.ReservationResult{
		Success:       true,
		ReservationID: "res-1",
		AccessCode:    "1234",
	}
}

type fakeAvailability struct {
	available map[types.DateString]bool
	err       error
	calls     []types.DateString
}

func (f *fakeAvailability) IsAvailable(ctx context.Context, amenityID string, date types.DateString, unitNumber string) (bool, error) {
	f.calls = append(f.calls, date)
	if f.err != nil {
		return false, f.err
	}
	return f.available[date], nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestProcessor(repo *fakeRepo, client *fakeClient, avail *fakeAvailability) *Processor {
	return NewProcessor(repo, client, avail, fixedTime{testNow}, NopMetrics{}, nopLogger{})
}

func oneTimeJob() domain.BookingJob {
	targetDate := testNow.AddDate(0, 0, 2)
	return domain.BookingJob{
		ID:             "job-1",
		UserEmail:      "resident@example.com",
		UserLastName:   "Ivanov",
		UserUnitNumber: "412",
		AmenityID:      "amenity-1",
		BookingType:    domain.TypeOneTime,
		Status:         domain.StatusActive,
		IsActive:       true,
		TargetDate:     &targetDate,
		TargetTime:     types.TimeString("18:00"),
		PartySize:      2,
	}
}

func TestProcess_OneTimeSuccess(t *testing.T) {
	client := &fakeClient{}
	targetDate := types.NewDateString(testNow.AddDate(0, 0, 2))
	avail := &fakeAvailability{available: map[types.DateString]bool{targetDate: true}}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), oneTimeJob())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 1, updated.SuccessfulBookings)
	require.Len(t, updated.BookedSlots, 1)
	assert.Equal(t, "res-1", updated.BookedSlots[0].ReservationID)
	assert.Equal(t, targetDate, updated.BookedSlots[0].BookedDate)
	require.Len(t, client.reserveCalls, 1)
	assert.Equal(t, "412", client.reserveCalls[0].UnitNumber)
}

func TestProcess_OneTimeAlreadyBooked_NoNetworkCalls(t *testing.T) {
	job := oneTimeJob()
	job.BookedSlots = []domain.BookedSlot{{
		JobID:      job.ID,
		BookedDate: types.NewDateString(*job.TargetDate),
		BookedTime: job.TargetTime,
	}}

	client := &fakeClient{}
	avail := &fakeAvailability{}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Empty(t, avail.calls, "availability must not be checked for an already booked slot")
	assert.Empty(t, client.reserveCalls)
}

func TestProcess_OneTimeExpired_CompletesWithoutBooking(t *testing.T) {
	job := oneTimeJob()
	expired := testNow.AddDate(0, 0, -1)
	job.TargetDate = &expired

	client := &fakeClient{}
	avail := &fakeAvailability{}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, 0, updated.SuccessfulBookings)
	require.NotNil(t, updated.ErrorMessage)
	assert.Contains(t, *updated.ErrorMessage, "has passed")
	assert.Empty(t, avail.calls)
	assert.Empty(t, client.reserveCalls)
}

func TestProcess_OneTimeUnavailable_StaysActive(t *testing.T) {
	client := &fakeClient{}
	avail := &fakeAvailability{available: map[types.DateString]bool{}}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), oneTimeJob())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.True(t, updated.IsActive)
	assert.Empty(t, client.reserveCalls)
}

func TestProcess_OneTimeReserveFailure_ReturnsError(t *testing.T) {
	client := &fakeClient{reserveRes: &respage.ReservationResult{
		Success:      false,
		ErrorMessage: "No available time slots found for the requested date and time",
	}}
	targetDate := types.NewDateString(testNow.AddDate(0, 0, 2))
	avail := &fakeAvailability{available: map[types.DateString]bool{targetDate: true}}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), oneTimeJob())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReservationFailed)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, 0, updated.SuccessfulBookings)
}

func TestProcess_OneTimeMissingFields(t *testing.T) {
	job := oneTimeJob()
	job.TargetDate = nil

	proc := newTestProcessor(&fakeRepo{}, &fakeClient{}, &fakeAvailability{})

	_, err := proc.Process(context.Background(), job)
	assert.ErrorIs(t, err, ErrMissingOneTimeFields)
}

func TestProcess_TerminalJobUntouched(t *testing.T) {
	job := oneTimeJob()
	job.Status = domain.StatusFailed
	job.IsActive = false

	client := &fakeClient{}
	avail := &fakeAvailability{}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, updated.Status)
	assert.Empty(t, avail.calls)
	assert.Empty(t, client.reserveCalls)
}

func TestProcess_SetsLastAttempt(t *testing.T) {
	job := oneTimeJob()
	job.Status = domain.StatusPaused

	proc := newTestProcessor(&fakeRepo{}, &fakeClient{}, &fakeAvailability{})

	updated, err := proc.Process(context.Background(), job)
	require.NoError(t, err)
	require.NotNil(t, updated.LastAttempt)
	assert.Equal(t, testNow, *updated.LastAttempt)
}

func recurringWeeklyJob() domain.BookingJob {
	return domain.BookingJob{
		ID:                  "job-2",
		UserEmail:           "resident@example.com",
		UserLastName:        "Ivanov",
		UserUnitNumber:      "412",
		AmenityID:           "amenity-1",
		BookingType:         domain.TypeRecurring,
		Status:              domain.StatusActive,
		IsActive:            true,
		RecurrenceFrequency: domain.FrequencyWeekly,
		PreferredTime:       types.TimeString("18:00"),
		PreferredDaysOfWeek: []int{2}, // вторник
		PartySize:           1,
	}
}

func TestProcess_RecurringWeekly_BooksFirstAvailableTuesday(t *testing.T) {
	// testNow — понедельник, ближайший вторник 2026-09-01
	firstTuesday := types.DateString("2026-09-01")

	client := &fakeClient{}
	avail := &fakeAvailability{available: map[types.DateString]bool{firstTuesday: true}}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), recurringWeeklyJob())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, updated.Status, "recurring job stays active after a success")
	assert.Equal(t, 1, updated.SuccessfulBookings)
	require.Len(t, updated.BookedSlots, 1)
	assert.Equal(t, firstTuesday, updated.BookedSlots[0].BookedDate)
	assert.Equal(t, types.TimeString("18:00"), updated.BookedSlots[0].BookedTime)
}

func TestProcess_RecurringSkipsAlreadyBookedDate(t *testing.T) {
	job := recurringWeeklyJob()
	firstTuesday := types.DateString("2026-09-01")
	secondTuesday := types.DateString("2026-09-08")
	job.BookedSlots = []domain.BookedSlot{{
		JobID:      job.ID,
		BookedDate: firstTuesday,
		BookedTime: job.PreferredTime,
	}}

	client := &fakeClient{}
	avail := &fakeAvailability{available: map[types.DateString]bool{
		firstTuesday:  true,
		secondTuesday: true,
	}}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), job)
	require.NoError(t, err)

	require.Len(t, updated.BookedSlots, 2)
	assert.Equal(t, secondTuesday, updated.BookedSlots[1].BookedDate)
	assert.NotContains(t, avail.calls, firstTuesday, "booked date must be skipped before the availability check")
}

func TestProcess_RecurringNoAvailability_NoError(t *testing.T) {
	client := &fakeClient{}
	avail := &fakeAvailability{available: map[types.DateString]bool{}}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), recurringWeeklyJob())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Empty(t, client.reserveCalls)
	assert.Len(t, avail.calls, 4, "four Tuesdays in the 28-day horizon")
}

func TestProcess_RecurringEndDatePassed_Completes(t *testing.T) {
	job := recurringWeeklyJob()
	endDate := testNow.AddDate(0, 0, -1)
	job.EndDate = &endDate

	avail := &fakeAvailability{}
	proc := newTestProcessor(&fakeRepo{}, &fakeClient{}, avail)

	updated, err := proc.Process(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Empty(t, avail.calls)
}

func TestProcess_RecurringReserveFailure_TriesNextCandidate(t *testing.T) {
	firstTuesday := types.DateString("2026-09-01")
	secondTuesday := types.DateString("2026-09-08")

	client := &fakeClient{reserveRes: &respage.ReservationResult{
		Success:      false,
		ErrorMessage: "slot taken",
	}}
	avail := &fakeAvailability{available: map[types.DateString]bool{
		firstTuesday:  true,
		secondTuesday: true,
	}}
	proc := newTestProcessor(&fakeRepo{}, client, avail)

	updated, err := proc.Process(context.Background(), recurringWeeklyJob())
	require.NoError(t, err, "recurring reserve failures are soft")

	assert.Len(t, client.reserveCalls, 4, "every available candidate is attempted")
	require.NotNil(t, updated.ErrorMessage)
	assert.Contains(t, *updated.ErrorMessage, "slot taken")
	assert.Equal(t, 0, updated.SuccessfulBookings)
}

func TestProcess_RecurringMissingFields(t *testing.T) {
	job := recurringWeeklyJob()
	job.PreferredTime = ""

	proc := newTestProcessor(&fakeRepo{}, &fakeClient{}, &fakeAvailability{})

	_, err := proc.Process(context.Background(), job)
	assert.ErrorIs(t, err, ErrMissingRecurringFields)
}

func TestProcessEligible_FailureAccounting(t *testing.T) {
	job := oneTimeJob()
	job.FailedAttempts = 3

	repo := &fakeRepo{jobs: []*domain.BookingJob{&job}}
	targetDate := types.NewDateString(*job.TargetDate)
	client := &fakeClient{residentErr: errors.New("resident service down")}
	avail := &fakeAvailability{available: map[types.DateString]bool{targetDate: true}}
	proc := newTestProcessor(repo, client, avail)

	err := proc.ProcessEligible(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, 4, saved.FailedAttempts)
	assert.Equal(t, domain.StatusActive, saved.Status)
	require.NotNil(t, saved.ErrorMessage)
	assert.Contains(t, *saved.ErrorMessage, "resident")
}

func TestProcessEligible_TenthFailureMarksFailed(t *testing.T) {
	job := oneTimeJob()
	job.FailedAttempts = 9

	repo := &fakeRepo{jobs: []*domain.BookingJob{&job}}
	targetDate := types.NewDateString(*job.TargetDate)
	client := &fakeClient{residentErr: errors.New("resident service down")}
	avail := &fakeAvailability{available: map[types.DateString]bool{targetDate: true}}
	proc := newTestProcessor(repo, client, avail)

	err := proc.ProcessEligible(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, 10, saved.FailedAttempts)
	assert.Equal(t, domain.StatusFailed, saved.Status)
	assert.False(t, saved.IsActive)
}

func TestProcessEligible_SavesEveryJob(t *testing.T) {
	first := oneTimeJob()
	second := recurringWeeklyJob()

	repo := &fakeRepo{jobs: []*domain.BookingJob{&first, &second}}
	avail := &fakeAvailability{available: map[types.DateString]bool{}}
	proc := newTestProcessor(repo, &fakeClient{}, avail)

	err := proc.ProcessEligible(context.Background())
	require.NoError(t, err)

	assert.Len(t, repo.saved, 2)
}
