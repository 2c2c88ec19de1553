package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-market-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

func collect(n int, out *[]DeadlineSnapshot) func(DeadlineSnapshot) error {
	return func(s DeadlineSnapshot) error {
		*out = append(*out, s)
		if len(*out) == n {
			return errStop
		}
		return nil
	}
}

func TestRunCountdownTicksFromClock(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 10, 23, 16, 59, 57, 0, pacific), step: time.Second}

	var snaps []DeadlineSnapshot
	err := RunCountdown(context.Background(), clock, domain.FridayClose(pacific), time.Millisecond, collect(3, &snaps))
	require.ErrorIs(t, err, errStop)

	require.Len(t, snaps, 3)
	assert.Equal(t, "00h 00m 03s", snaps[0].Countdown.String())
	assert.Equal(t, "00h 00m 02s", snaps[1].Countdown.String())
	assert.Equal(t, "00h 00m 01s", snaps[2].Countdown.String())
	for _, s := range snaps {
		assert.Equal(t, "Fri Oct 23, 5:00 PM PDT", s.Label)
	}
}

func TestRunCountdownRollsOverAtDeadline(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 10, 23, 16, 59, 59, 0, pacific), step: time.Second}

	var snaps []DeadlineSnapshot
	err := RunCountdown(context.Background(), clock, domain.FridayClose(pacific), time.Millisecond, collect(2, &snaps))
	require.ErrorIs(t, err, errStop)

	assert.Equal(t, "00h 00m 01s", snaps[0].Countdown.String())
	assert.Equal(t, "7d 00h 00m 00s", snaps[1].Countdown.String())
	assert.Equal(t, "Fri Oct 30, 5:00 PM PDT", snaps[1].Label)
}

func TestRunCountdownStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err := RunCountdown(ctx, fixedClock(testNow), domain.FridayClose(pacific), time.Hour, func(DeadlineSnapshot) error {
		calls++
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRunCountdownAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunCountdown(ctx, fixedClock(testNow), domain.FridayClose(pacific), time.Millisecond, func(DeadlineSnapshot) error {
		t.Fatal("emit must not be called")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCountdownCalculatorError(t *testing.T) {
	err := RunCountdown(context.Background(), fixedClock(testNow), domain.WeeklySchedule{Weekday: time.Friday, Hour: 17}, time.Millisecond, func(DeadlineSnapshot) error {
		t.Fatal("emit must not be called")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrZoneUnavailable)
}

func TestRunCountdownRequiresEmit(t *testing.T) {
	err := RunCountdown(context.Background(), nil, domain.FridayClose(pacific), 0, nil)
	assert.Error(t, err)
}
