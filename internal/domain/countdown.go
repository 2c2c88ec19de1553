package domain

import (
	"fmt"
	"time"
)

// Countdown is the display-only remaining time until a deadline, in whole seconds.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// NewCountdown returns the time left from now until deadline.
// Past deadlines yield a zero countdown.
func NewCountdown(now, deadline time.Time) Countdown {
	return CountdownFromDuration(deadline.Sub(now))
}

// CountdownFromDuration floors d to whole seconds and splits it into
// days, hours, minutes and seconds. Negative durations clamp to zero.
func CountdownFromDuration(d time.Duration) Countdown {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)

	return Countdown{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// Remaining converts the countdown back to a duration.
func (c Countdown) Remaining() time.Duration {
	return time.Duration(c.Days)*24*time.Hour +
		time.Duration(c.Hours)*time.Hour +
		time.Duration(c.Minutes)*time.Minute +
		time.Duration(c.Seconds)*time.Second
}

// String renders "2d 07h 00m 00s", dropping the day part when it is zero.
func (c Countdown) String() string {
	hms := fmt.Sprintf("%02dh %02dm %02ds", c.Hours, c.Minutes, c.Seconds)
	if c.Days > 0 {
		return fmt.Sprintf("%dd %s", c.Days, hms)
	}
	return hms
}
