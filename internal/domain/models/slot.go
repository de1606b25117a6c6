package models

import (
	"fmt"
	"time"
)

// InterviewSlot is a computed meeting time. Timezone is the IANA name the
// slot was computed in and is always shown next to the local time.
type InterviewSlot struct {
	Start    time.Time
	Duration time.Duration
	Timezone string
}

func (s InterviewSlot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// LocalTime renders the start in the slot's own timezone, e.g. "Monday, 02 Jan 2006 at 11:00 IST (Asia/Kolkata)".
func (s InterviewSlot) LocalTime() string {
	return fmt.Sprintf("%s (%s)", s.Start.Format("Monday, 02 Jan 2006 at 15:04 MST"), s.Timezone)
}

func (s InterviewSlot) DurationMinutes() int {
	return int(s.Duration / time.Minute)
}
