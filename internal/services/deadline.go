package services

import (
	"context"
	"fmt"
	"time"

	"campus-market-service/internal/domain"
)

// DeadlineSnapshot is the weekly deadline as seen at one instant.
type DeadlineSnapshot struct {
	Now       time.Time
	Deadline  time.Time
	Label     string
	Countdown domain.Countdown
}

// SnapshotAt computes the next deadline of schedule after now and the
// countdown to it.
func SnapshotAt(now time.Time, schedule domain.WeeklySchedule) (DeadlineSnapshot, error) {
	deadline, err := schedule.Next(now)
	if err != nil {
		return DeadlineSnapshot{}, fmt.Errorf("deadline snapshot: %w", err)
	}

	label, err := schedule.Label(deadline)
	if err != nil {
		return DeadlineSnapshot{}, fmt.Errorf("deadline snapshot: %w", err)
	}

	return DeadlineSnapshot{
		Now:       now,
		Deadline:  deadline,
		Label:     label,
		Countdown: domain.NewCountdown(now, deadline),
	}, nil
}

type DeadlineService struct {
	clock    Clock
	schedule domain.WeeklySchedule
}

func NewDeadlineService(clock Clock, schedule domain.WeeklySchedule) *DeadlineService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DeadlineService{clock: clock, schedule: schedule}
}

func (s *DeadlineService) Snapshot() (DeadlineSnapshot, error) {
	return SnapshotAt(s.clock.Now(), s.schedule)
}

// Stream emits a snapshot immediately and then once per interval until ctx
// is done or emit fails.
func (s *DeadlineService) Stream(ctx context.Context, interval time.Duration, emit func(DeadlineSnapshot) error) error {
	return RunCountdown(ctx, s.clock, s.schedule, interval, emit)
}
