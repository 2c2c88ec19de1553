package services

import (
	"context"
	"errors"
	"time"

	"campus-market-service/internal/domain"
)

const DefaultCountdownInterval = time.Second

// RunCountdown calls emit with a fresh snapshot right away and then on every
// tick. Each snapshot is computed from clock.Now(), so nothing is carried
// between ticks. It returns ctx.Err() on cancellation, or the first error
// from the calculator or emit. The ticker is stopped on every return path.
func RunCountdown(
	ctx context.Context,
	clock Clock,
	schedule domain.WeeklySchedule,
	interval time.Duration,
	emit func(DeadlineSnapshot) error,
) error {
	if emit == nil {
		return errors.New("run countdown: emit is nil")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultCountdownInterval
	}

	tick := func() error {
		snap, err := SnapshotAt(clock.Now(), schedule)
		if err != nil {
			return err
		}
		return emit(snap)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tick(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := tick(); err != nil {
				return err
			}
		}
	}
}
