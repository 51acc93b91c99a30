package create_job

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingAgent/internal/service/jobs"
)

type fakeService struct {
	resp *jobs.JobResponse
	err  error
	got  *jobs.CreateJobRequest
}

func (f *fakeService) Create(ctx context.Context, req *jobs.CreateJobRequest) (*jobs.JobResponse, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc JobService, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking-jobs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{resp: &jobs.JobResponse{
		ID:          "job-1",
		UserEmail:   "resident@example.com",
		BookingType: "one_time",
		Status:      "active",
	}}

	body := `{
		"userEmail": "resident@example.com",
		"userLastName": "Ivanov",
		"userUnitNumber": "412",
		"amenityId": "amenity-1",
		"bookingType": "one_time",
		"targetDate": "2026-09-10",
		"targetTime": "18:00"
	}`

	rec := doRequest(t, svc, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, "resident@example.com", svc.got.UserEmail)

	var resp jobs.JobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "job-1", resp.ID)
}

func TestHandle_DaysOfWeekAsStrings(t *testing.T) {
	svc := &fakeService{resp: &jobs.JobResponse{ID: "job-1"}}

	body := `{
		"userEmail": "resident@example.com",
		"bookingType": "recurring",
		"recurrenceFrequency": "weekly",
		"preferredTime": "18:00",
		"preferredDaysOfWeek": ["1", 4]
	}`

	rec := doRequest(t, svc, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.got)
	require.Len(t, svc.got.PreferredDaysOfWeek, 2)
	assert.EqualValues(t, 1, svc.got.PreferredDaysOfWeek[0])
	assert.EqualValues(t, 4, svc.got.PreferredDaysOfWeek[1])
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &fakeService{}, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid type", jobs.ErrInvalidBookingType},
		{"missing one-time fields", jobs.ErrMissingOneTimeData},
		{"missing recurring fields", jobs.ErrMissingRecurringData},
		{"invalid frequency", jobs.ErrInvalidFrequency},
		{"invalid date", jobs.ErrInvalidDate},
		{"invalid time", jobs.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeService{err: tt.err}, `{"bookingType": "one_time"}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	rec := doRequest(t, &fakeService{err: errors.New("db down")}, `{"bookingType": "one_time"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
