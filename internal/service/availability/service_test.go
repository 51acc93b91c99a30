package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingAgent/internal/domain"
	"github.com/m04kA/SMC-BookingAgent/internal/integrations/respage"
	"github.com/m04kA/SMC-BookingAgent/pkg/types"
)

type fakeSlotLister struct {
	slots        []respage.TimeSlot
	err          error
	lastIdentity domain.RequestIdentity
}

func (f *fakeSlotLister) GetTimeSlots(
	ctx context.Context,
	amenityID string,
	date types.DateString,
	partySize int,
	unitNumber string,
	identity domain.RequestIdentity,
) ([]respage.TimeSlot, error) {
	f.lastIdentity = identity
	return f.slots, f.err
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func TestIsAvailable(t *testing.T) {
	lister := &fakeSlotLister{slots: []respage.TimeSlot{{Timeslot: "2026-09-01T18:00:00", AvailableCapacity: 1}}}
	svc := NewService(lister, nopLogger{})

	available, err := svc.IsAvailable(context.Background(), "amenity-1", types.DateString("2026-09-01"), "412")
	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, domain.IdentityPlaceholder, lister.lastIdentity, "background checks must use the placeholder identity")
}

func TestIsAvailable_NoSlots(t *testing.T) {
	svc := NewService(&fakeSlotLister{}, nopLogger{})

	available, err := svc.IsAvailable(context.Background(), "amenity-1", types.DateString("2026-09-01"), "412")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestIsAvailable_UpstreamUnavailableIsSoft(t *testing.T) {
	lister := &fakeSlotLister{err: fmt.Errorf("%w: connection refused", respage.ErrUpstreamUnavailable)}
	svc := NewService(lister, nopLogger{})

	available, err := svc.IsAvailable(context.Background(), "amenity-1", types.DateString("2026-09-01"), "412")
	require.NoError(t, err, "upstream outage is treated as unavailable, not as a fault")
	assert.False(t, available)
}

func TestIsAvailable_OtherErrorPropagates(t *testing.T) {
	cause := errors.New("boom")
	svc := NewService(&fakeSlotLister{err: cause}, nopLogger{})

	_, err := svc.IsAvailable(context.Background(), "amenity-1", types.DateString("2026-09-01"), "412")
	assert.ErrorIs(t, err, cause)
}
