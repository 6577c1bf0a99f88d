package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VH-BookingService/internal/config"
	"github.com/m04kA/VH-BookingService/internal/domain"
)

type fakeBookingRepo struct {
	taken         bool
	err           error
	gotDate       time.Time
	gotShift      domain.Shift
	gotExcludedID *int64
}

func (f *fakeBookingRepo) ExistsBySlot(_ context.Context, date time.Time, shift domain.Shift, excludeID *int64) (bool, error) {
	f.gotDate = date
	f.gotShift = shift
	f.gotExcludedID = excludeID
	return f.taken, f.err
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBookingConfig() config.BookingConfig {
	return config.BookingConfig{
		MinLeadTimeDays:         7,
		EditFreezeDays:          3,
		ScheduleWindowStartDays: 7,
		ScheduleWindowEndDays:   21,
	}
}

func TestCheckSlotFree(t *testing.T) {
	repo := &fakeBookingRepo{}
	guard := NewGuard(repo, testBookingConfig(), nopLogger{})

	date := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

	err := guard.CheckSlotFree(context.Background(), date, domain.ShiftEvening, nil)
	require.NoError(t, err)
	assert.Equal(t, date, repo.gotDate)
	assert.Equal(t, domain.ShiftEvening, repo.gotShift)
	assert.Nil(t, repo.gotExcludedID)

	repo.taken = true
	err = guard.CheckSlotFree(context.Background(), date, domain.ShiftEvening, nil)
	assert.ErrorIs(t, err, ErrSlotTaken)

	repo.taken = false
	repo.err = errors.New("connection reset")
	err = guard.CheckSlotFree(context.Background(), date, domain.ShiftEvening, nil)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCheckSlotFree_PassesExcludeID(t *testing.T) {
	repo := &fakeBookingRepo{}
	guard := NewGuard(repo, testBookingConfig(), nopLogger{})

	excludeID := int64(42)
	err := guard.CheckSlotFree(context.Background(), time.Now(), domain.ShiftMorning, &excludeID)
	require.NoError(t, err)
	require.NotNil(t, repo.gotExcludedID)
	assert.Equal(t, excludeID, *repo.gotExcludedID)
}

func TestCheckEditWindow_Boundaries(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	guard := NewGuard(&fakeBookingRepo{}, testBookingConfig(), nopLogger{}).
		WithTimeProvider(fixedTime{now: now})

	tests := []struct {
		name     string
		daysOut  int
		expected error
	}{
		{"far in the future", 30, nil},
		{"exactly lead time", 7, nil},
		{"one day inside lead time", 6, ErrTooSoonToBook},
		{"one day outside freeze", 4, ErrTooSoonToBook},
		{"exactly freeze window", 3, ErrTooSoonToEdit},
		{"inside freeze window", 2, ErrTooSoonToEdit},
		{"today", 0, ErrTooSoonToEdit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := now.AddDate(0, 0, tt.daysOut)
			err := guard.CheckEditWindow(target)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestCheckEditWindow_IgnoresTimeOfDay(t *testing.T) {
	// Мероприятие ровно через 7 календарных дней проходит проверку
	// независимо от времени суток в отметках
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	guard := NewGuard(&fakeBookingRepo{}, testBookingConfig(), nopLogger{}).
		WithTimeProvider(fixedTime{now: now})

	target := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, guard.CheckEditWindow(target))
}
