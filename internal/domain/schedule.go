package domain

import (
	"fmt"
	"time"
)

type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", raw)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTimeOfDay, raw)
	}

	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the wall-clock instant of t on the calendar day of day, in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Next returns the first occurrence of t that is not before now.
func (t TimeOfDay) Next(now time.Time, loc *time.Location) time.Time {
	candidate := t.On(now, loc)
	if now.After(candidate) {
		local := now.In(loc)
		candidate = t.On(time.Date(local.Year(), local.Month(), local.Day()+1, 12, 0, 0, 0, loc), loc)
	}
	return candidate
}

// After returns the first occurrence of t on a calendar day later than ref.
func (t TimeOfDay) After(ref time.Time, loc *time.Location) time.Time {
	local := ref.In(loc)
	return t.On(time.Date(local.Year(), local.Month(), local.Day()+1, 12, 0, 0, 0, loc), loc)
}

type ScheduleState struct {
	Active  bool      `json:"active"`
	At      string    `json:"at,omitempty"`
	NextRun time.Time `json:"next_run,omitempty"`
	LastRun time.Time `json:"last_run,omitempty"`
}
