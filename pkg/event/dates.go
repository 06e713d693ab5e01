package event

import (
	"fmt"
	"strings"
	"time"
)

const hoursPerDay = 24

// Breakdown is the calendar span between an event and now, split into components.
type Breakdown struct {
	Years  int
	Months int
	Days   int
	Hours  int
	// TotalDays is |DaysRemaining| for countdowns and DaysElapsed for countups.
	TotalDays int
}

// IsZero reports whether every calendar component is zero, e.g. for a same-day event.
func (b Breakdown) IsZero() bool {
	return b.Years == 0 && b.Months == 0 && b.Days == 0 && b.Hours == 0
}

// String renders the non-zero components, e.g. "1y 2m 3d 4h". An all-zero
// breakdown renders as "0d".
func (b Breakdown) String() string {
	if b.IsZero() {
		return "0d"
	}

	parts := []string{}

	if b.Years > 0 {
		parts = append(parts, fmt.Sprintf("%dy", b.Years))
	}

	if b.Months > 0 {
		parts = append(parts, fmt.Sprintf("%dm", b.Months))
	}

	if b.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", b.Days))
	}

	if b.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", b.Hours))
	}

	return strings.Join(parts, " ")
}

// Tone is the display state of an event relative to now.
type Tone int

// Tones used to color the day count of an event.
const (
	Today Tone = iota
	Upcoming
	Overdue
	Elapsed
)

func (t Tone) String() string {
	switch t {
	case Today:
		return "today"
	case Upcoming:
		return "upcoming"
	case Overdue:
		return "overdue"
	case Elapsed:
		return "elapsed"
	}

	return fmt.Sprintf("tone(%d)", int(t))
}

// DaysRemaining is the number of calendar days from now until the event date. Both
// instants are taken as dates in now's location, so an event later today is 0 days
// away and one at any time tomorrow is 1. Past dates give negative values.
func (e Event) DaysRemaining(now time.Time) int {
	return dayNumber(e.Date.In(now.Location())) - dayNumber(now)
}

// DaysElapsed is the number of calendar days from the event date until now.
func (e Event) DaysElapsed(now time.Time) int {
	return -e.DaysRemaining(now)
}

// Breakdown splits the span between now and the event date into years, months, days
// and hours. Countdowns measure from now to the date, countups from the date to now;
// the components are always non-negative.
func (e Event) Breakdown(now time.Time) Breakdown {
	date := e.Date.In(now.Location())

	var b Breakdown

	switch e.Kind {
	case Countdown:
		b.TotalDays = abs(e.DaysRemaining(now))
	case Countup:
		b.TotalDays = e.DaysElapsed(now)
	default:
		panic(fmt.Sprintf("invalid event kind %d", int(e.Kind)))
	}

	from, to := now, date
	if to.Before(from) {
		from, to = to, from
	}

	b.Years, b.Months, b.Days, b.Hours = calendarSpan(from, to)

	return b
}

// Tone returns how the day count of the event should be presented.
func (e Event) Tone(now time.Time) Tone {
	switch e.Kind {
	case Countdown:
		days := e.DaysRemaining(now)

		switch {
		case days == 0:
			return Today
		case days > 0:
			return Upcoming
		default:
			return Overdue
		}
	case Countup:
		if e.DaysElapsed(now) == 0 {
			return Today
		}

		return Elapsed
	}

	panic(fmt.Sprintf("invalid event kind %d", int(e.Kind)))
}

// dayNumber returns the days since the unix epoch of the civil date of t in its own location.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()

	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / (hoursPerDay * 60 * 60))
}

// calendarSpan returns the whole years, months, days and hours from 'from' to 'to',
// which must not be before 'from'.
func calendarSpan(from, to time.Time) (years, months, days, hours int) {
	total := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())

	for total > 0 && addMonths(from, total).After(to) {
		total--
	}

	cursor := addMonths(from, total)

	days = int(to.Sub(cursor) / (hoursPerDay * time.Hour))

	// daylight saving shifts can leave the estimate a day off in either direction
	for cursor.AddDate(0, 0, days+1).Before(to) || cursor.AddDate(0, 0, days+1).Equal(to) {
		days++
	}

	for days > 0 && cursor.AddDate(0, 0, days).After(to) {
		days--
	}

	hours = int(to.Sub(cursor.AddDate(0, 0, days)) / time.Hour)

	return total / 12, total % 12, days, hours
}

// addMonths adds n months to t, clamping the day to the length of the target month
// so that Jan 31 plus one month is the last day of February.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hour, minute, sec := t.Clock()

	first := time.Date(y, m+time.Month(n), 1, hour, minute, sec, t.Nanosecond(), t.Location())
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	if d > last {
		d = last
	}

	return time.Date(first.Year(), first.Month(), d, hour, minute, sec, t.Nanosecond(), t.Location())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
