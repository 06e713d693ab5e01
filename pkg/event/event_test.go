package event_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/matt-steen/day-tracker/pkg/event"
	"github.com/stretchr/testify/assert"
)

func getNow() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func newEvent(assert *assert.Assertions, title string, date time.Time) event.Event {
	ev, err := event.New(title, date, getNow(), "#FF9999")
	assert.Nil(err)

	return ev
}

func TestNewCountdown(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ev := newEvent(assert, "Exam", getNow().AddDate(0, 0, 1))
	assert.Equal(event.Countdown, ev.Kind)
	assert.Equal("Exam", ev.Title)
	assert.Equal("#FF9999", ev.Color)
}

func TestNewCountup(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(event.Countup, newEvent(assert, "Moved in", getNow().AddDate(0, 0, -1)).Kind)
	// a date equal to now is not in the future
	assert.Equal(event.Countup, newEvent(assert, "Now", getNow()).Kind)
}

func TestNewEmptyTitle(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, err := event.New("", getNow(), getNow(), "#FF9999")
	assert.True(errors.Is(err, event.ErrEmptyTitle))

	_, err = event.New("   ", getNow(), getNow(), "#FF9999")
	assert.True(errors.Is(err, event.ErrEmptyTitle))
}

func TestNewInvalidColor(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	_, err := event.New("Exam", getNow(), getNow(), "red")
	assert.True(errors.Is(err, event.ErrInvalidColor))
	assert.Equal("error creating event 'Exam' with color 'red': color must be of the form #RRGGBB", err.Error())
}

func TestValidColor(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	for _, c := range event.DefaultPalette() {
		assert.True(event.ValidColor(c), c)
	}

	assert.True(event.ValidColor("#a0b1c2"))
	assert.False(event.ValidColor("#FFF"))
	assert.False(event.ValidColor("FF9999"))
	assert.False(event.ValidColor("#GG9999"))
	assert.False(event.ValidColor("#FF99999"))
}

func TestKindNeverChanges(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ev := newEvent(assert, "Exam", getNow().AddDate(0, 0, 1))
	later := getNow().AddDate(0, 0, 10)

	assert.Equal(event.Countdown, ev.Kind)
	assert.Equal(-9, ev.DaysRemaining(later))
	assert.Equal(event.Overdue, ev.Tone(later))
}

func TestDaysRemainingToday(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := getNow()

	earlier := event.Event{Title: "a", Date: time.Date(2024, time.March, 15, 0, 5, 0, 0, time.UTC), Kind: event.Countup}
	later := event.Event{Title: "b", Date: time.Date(2024, time.March, 15, 23, 55, 0, 0, time.UTC), Kind: event.Countdown}

	assert.Equal(0, earlier.DaysRemaining(now))
	assert.Equal(0, earlier.DaysElapsed(now))
	assert.Equal(0, later.DaysRemaining(now))
}

func TestDaysRemainingCalendarDays(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := getNow()

	// less than 24 hours away but on the next calendar day
	tomorrow := event.Event{Date: time.Date(2024, time.March, 16, 1, 0, 0, 0, time.UTC), Kind: event.Countdown}
	assert.Equal(1, tomorrow.DaysRemaining(now))

	nextMonth := event.Event{Date: time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC), Kind: event.Countdown}
	assert.Equal(31, nextMonth.DaysRemaining(now))

	past := event.Event{Date: time.Date(2024, time.March, 5, 23, 0, 0, 0, time.UTC), Kind: event.Countup}
	assert.Equal(-10, past.DaysRemaining(now))
	assert.Equal(10, past.DaysElapsed(now))
}

func TestDaysRemainingUsesNowLocation(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-03-15 20:00 UTC is already 2024-03-16 in Tokyo
	now := time.Date(2024, time.March, 16, 5, 0, 0, 0, tokyo)
	ev := event.Event{Date: time.Date(2024, time.March, 15, 20, 0, 0, 0, time.UTC), Kind: event.Countdown}

	assert.Equal(0, ev.DaysRemaining(now))
}

func TestBreakdownCountdown(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	ev := event.Event{Date: time.Date(2025, time.March, 1, 15, 0, 0, 0, time.UTC), Kind: event.Countdown}

	b := ev.Breakdown(now)
	assert.Equal(event.Breakdown{Years: 1, Months: 1, Days: 1, Hours: 3, TotalDays: 395}, b)
	assert.Equal("1y 1m 1d 3h", b.String())
}

func TestBreakdownCountup(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC)
	ev := event.Event{Date: time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC), Kind: event.Countup}

	b := ev.Breakdown(now)
	assert.Equal(event.Breakdown{Days: 2, Hours: 2, TotalDays: 2}, b)
	assert.Equal("2d 2h", b.String())
}

func TestBreakdownOverdueCountdownIsAbsolute(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	ev := event.Event{Date: time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC), Kind: event.Countdown}

	b := ev.Breakdown(now)
	assert.Equal(event.Breakdown{Months: 2, TotalDays: 61}, b)
}

func TestBreakdownSameDay(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := getNow()
	ev := event.Event{Date: now.Add(30 * time.Minute), Kind: event.Countdown}

	b := ev.Breakdown(now)
	assert.True(b.IsZero())
	assert.Equal(0, b.TotalDays)
	assert.Equal("0d", b.String())
}

func TestTone(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	now := getNow()

	assert.Equal(event.Today, event.Event{Date: now, Kind: event.Countdown}.Tone(now))
	assert.Equal(event.Upcoming, event.Event{Date: now.AddDate(0, 0, 3), Kind: event.Countdown}.Tone(now))
	assert.Equal(event.Overdue, event.Event{Date: now.AddDate(0, 0, -3), Kind: event.Countdown}.Tone(now))
	assert.Equal(event.Today, event.Event{Date: now, Kind: event.Countup}.Tone(now))
	assert.Equal(event.Elapsed, event.Event{Date: now.AddDate(0, 0, -3), Kind: event.Countup}.Tone(now))
}

func TestKindJSON(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	ev := newEvent(assert, "Exam", getNow().AddDate(0, 0, 1))

	data, err := json.Marshal(ev)
	assert.Nil(err)
	assert.Contains(string(data), `"type":"countdown"`)
	assert.Contains(string(data), `"color":"#FF9999"`)

	var decoded event.Event

	err = json.Unmarshal([]byte(`{"title":"x","date":"2024-03-15T10:30:00Z","type":"sideways","color":"#FF9999"}`), &decoded)
	assert.NotNil(err)
}
