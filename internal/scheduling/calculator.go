package scheduling

import (
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/config"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"time"
	_ "time/tzdata"
)

// Calculator places interview slots inside a local business window. It never
// talks to a calendar provider.
type Calculator struct {
	startHour   int
	endHour     int
	defaultHour int
	now         func() time.Time
}

func NewCalculator(cfg config.SchedulingConfig) *Calculator {
	return &Calculator{
		startHour:   cfg.BusinessStartHour,
		endHour:     cfg.BusinessEndHour,
		defaultHour: cfg.DefaultHour,
		now:         time.Now,
	}
}

func (c *Calculator) SetClock(now func() time.Time) {
	c.now = now
}

// ComputeSlot returns a slot of durationMinutes on the next calendar day at the
// same local clock time. When that time does not fit the business window the
// slot moves to the default hour of that day, then to the window start. Slots
// landing on a weekend roll forward to Monday.
func (c *Calculator) ComputeSlot(durationMinutes int, timezone string) (models.InterviewSlot, error) {
	if durationMinutes <= 0 {
		return models.InterviewSlot{}, fmt.Errorf("%w: duration must be positive, got %d",
			models.ErrSchedulingFailed, durationMinutes)
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return models.InterviewSlot{}, fmt.Errorf("%w: unknown timezone %q: %v",
			models.ErrSchedulingFailed, timezone, err)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	if time.Duration(c.endHour-c.startHour)*time.Hour < duration {
		return models.InterviewSlot{}, fmt.Errorf("%w: %d minutes don't fit into %02d:00-%02d:00",
			models.ErrSchedulingFailed, durationMinutes, c.startHour, c.endHour)
	}

	now := c.now().In(location)

	hour, minute := now.Hour(), now.Minute()
	if now.Second() > 0 || now.Nanosecond() > 0 {
		minute++
	}
	day := dateOf(now).AddDate(0, 0, 1)

	start := at(day, hour, minute)
	if !c.fits(start, duration) {
		hour, minute = c.defaultHour, 0
		start = at(day, hour, minute)
	}
	if !c.fits(start, duration) {
		hour, minute = c.startHour, 0
		start = at(day, hour, minute)
	}

	for isWeekend(start) {
		day = day.AddDate(0, 0, 1)
		start = at(day, hour, minute)
	}

	return models.InterviewSlot{
		Start:    start,
		Duration: duration,
		Timezone: location.String(),
	}, nil
}

func (c *Calculator) fits(start time.Time, duration time.Duration) bool {
	windowStart := at(start, c.startHour, 0)
	windowEnd := at(start, c.endHour, 0)
	return !start.Before(windowStart) && !start.Add(duration).After(windowEnd)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// at builds a wall-clock time on t's date; minute overflow carries into the hour.
func at(t time.Time, hour int, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
