package domain

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultZone is the civil zone the weekly market deadline is expressed in.
const DefaultZone = "America/Los_Angeles"

// LabelLayout renders a deadline for humans, e.g. "Fri Oct 23, 5:00 PM PDT".
const LabelLayout = "Mon Jan 2, 3:04 PM MST"

var (
	ErrZoneUnavailable = errors.New("time zone unavailable")
	ErrInvalidInstant  = errors.New("invalid instant")
)

// WeeklySchedule is a deadline that recurs at the same civil wall-clock time
// on the same weekday every week. The wall-clock time is always interpreted
// with the offset in effect on the target date, so daylight-saving changes
// between "now" and the deadline do not shift it.
type WeeklySchedule struct {
	Weekday  time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

// FridayClose returns the Friday 17:00 schedule in loc.
func FridayClose(loc *time.Location) WeeklySchedule {
	return WeeklySchedule{
		Weekday:  time.Friday,
		Hour:     17,
		Minute:   0,
		Location: loc,
	}
}

// LoadFridayClose resolves an IANA zone name and returns its Friday 17:00 schedule.
func LoadFridayClose(zone string) (WeeklySchedule, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return WeeklySchedule{}, fmt.Errorf("load schedule zone %q: %w: %w", zone, ErrZoneUnavailable, err)
	}

	return FridayClose(loc), nil
}

func (s WeeklySchedule) validate() error {
	if s.Location == nil {
		return ErrZoneUnavailable
	}

	if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
		return fmt.Errorf("weekday %d out of range", s.Weekday)
	}

	if s.Hour < 0 || s.Hour > 23 || s.Minute < 0 || s.Minute > 59 {
		return fmt.Errorf("wall clock %02d:%02d out of range", s.Hour, s.Minute)
	}

	return nil
}

// Next returns the first occurrence of the schedule strictly after now.
// An instant exactly on an occurrence rolls to the following week.
func (s WeeklySchedule) Next(now time.Time) (time.Time, error) {
	if err := s.validate(); err != nil {
		return time.Time{}, fmt.Errorf("next deadline: %w", err)
	}

	if now.IsZero() {
		return time.Time{}, fmt.Errorf("next deadline: %w", ErrInvalidInstant)
	}

	local := now.In(s.Location)
	days := (int(s.Weekday) - int(local.Weekday()) + 7) % 7

	// time.Date normalises the day overflow and picks the zone offset of the
	// target date, not the offset of now.
	target := time.Date(local.Year(), local.Month(), local.Day()+days, s.Hour, s.Minute, 0, 0, s.Location)
	if !target.After(now) {
		target = time.Date(local.Year(), local.Month(), local.Day()+days+7, s.Hour, s.Minute, 0, 0, s.Location)
	}

	return target, nil
}

// Label formats deadline as civil time in the schedule's zone. A schedule
// without a zone is an error, never a fallback to the deadline's own zone.
func (s WeeklySchedule) Label(deadline time.Time) (string, error) {
	if s.Location == nil {
		return "", fmt.Errorf("deadline label: %w", ErrZoneUnavailable)
	}
	return deadline.In(s.Location).Format(LabelLayout), nil
}

// NextFridayClose returns the next Friday 17:00 in loc strictly after now.
func NextFridayClose(now time.Time, loc *time.Location) (time.Time, error) {
	return FridayClose(loc).Next(now)
}
