package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/day-tracker/pkg/event"
)

const (
	dateLayout = "2006-01-02"
	titleRatio = 3
)

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

// dayLabel is the short day count shown in the list.
func dayLabel(ev event.Event, now time.Time) string {
	tone := ev.Tone(now)

	switch tone {
	case event.Today:
		return "today"
	case event.Upcoming:
		return plural(ev.DaysRemaining(now), "day") + " left"
	case event.Overdue:
		return plural(-ev.DaysRemaining(now), "day") + " ago"
	case event.Elapsed:
		return plural(ev.DaysElapsed(now), "day")
	}

	panic(fmt.Sprintf("unhandled tone %s", tone))
}

func toneColor(tone event.Tone) tcell.Color {
	switch tone {
	case event.Today:
		return tcell.ColorOrange
	case event.Upcoming:
		return tcell.ColorGreen
	case event.Overdue:
		return tcell.ColorRed
	case event.Elapsed:
		return tcell.ColorDodgerBlue
	}

	panic(fmt.Sprintf("unhandled tone %s", tone))
}

// detailText is the breakdown shown when details are toggled on.
func detailText(ev event.Event, now time.Time) string {
	b := ev.Breakdown(now)

	return fmt.Sprintf("%s\ntotal: %s", b, plural(b.TotalDays, "day"))
}

func selectionMark(selecting, selected bool) string {
	switch {
	case !selecting:
		return ""
	case selected:
		return "[x]"
	default:
		return "[ ]"
	}
}

// parseDate parses a YYYY-MM-DD date in the local timezone.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	date, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s': expected YYYY-MM-DD: %w", s, err)
	}

	return date, nil
}
