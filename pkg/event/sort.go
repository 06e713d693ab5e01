package event

import (
	"fmt"
	"sort"
	"time"
)

// Less is the default ordering of events: every countdown comes before every countup,
// countdowns are soonest first and countups are most recent first.
func Less(a, b Event, now time.Time) bool {
	switch a.Kind {
	case Countdown:
		switch b.Kind {
		case Countdown:
			return a.DaysRemaining(now) < b.DaysRemaining(now)
		case Countup:
			return true
		}
	case Countup:
		switch b.Kind {
		case Countdown:
			return false
		case Countup:
			return a.DaysElapsed(now) < b.DaysElapsed(now)
		}
	}

	panic(fmt.Sprintf("invalid event kinds %d, %d", int(a.Kind), int(b.Kind)))
}

// SortDefault sorts events in place by Less, keeping the relative order of ties.
func SortDefault(events []Event, now time.Time) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(events[i], events[j], now)
	})
}

// SortByDate sorts events in place by ascending date.
func SortByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}

// SortByTitle sorts events in place by title.
func SortByTitle(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Title < events[j].Title
	})
}
