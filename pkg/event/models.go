package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyTitle is returned when an event is created without a title.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrInvalidColor is returned when a color is not of the form #RRGGBB.
	ErrInvalidColor = errors.New("color must be of the form #RRGGBB")
)

// DefaultPalette lists the colors new events are assigned from.
func DefaultPalette() []string {
	return []string{
		"#FF9999",
		"#99FF99",
		"#9999FF",
		"#FFFF99",
		"#FF99FF",
		"#99FFFF",
	}
}

// Kind says whether an event counts down to a future date or up from a past one.
type Kind int

// These constants are the only valid kinds.
const (
	Countdown Kind = iota
	Countup
)

const (
	countdownText = "countdown"
	countupText   = "countup"
)

func (k Kind) String() string {
	switch k {
	case Countdown:
		return countdownText
	case Countup:
		return countupText
	}

	panic(fmt.Sprintf("invalid event kind %d", int(k)))
}

// MarshalText encodes the kind as "countdown" or "countup".
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Countdown, Countup:
		return []byte(k.String()), nil
	}

	return nil, fmt.Errorf("invalid event kind %d", int(k))
}

// UnmarshalText decodes "countdown" or "countup"; anything else is an error.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case countdownText:
		*k = Countdown
	case countupText:
		*k = Countup
	default:
		return fmt.Errorf("unknown event type '%s'", text)
	}

	return nil
}

// Event is a named date that is either being counted down to or counted up from.
type Event struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	// Kind is fixed when the event is created and is never recomputed, even once
	// a countdown date has passed.
	Kind  Kind   `json:"type"`
	Color string `json:"color"`
}

// New creates an event. The kind is Countdown if date is after now, Countup otherwise.
func New(title string, date, now time.Time, color string) (Event, error) {
	if strings.TrimSpace(title) == "" {
		return Event{}, ErrEmptyTitle
	}

	if !ValidColor(color) {
		return Event{}, fmt.Errorf("error creating event '%s' with color '%s': %w", title, color, ErrInvalidColor)
	}

	kind := Countup
	if date.After(now) {
		kind = Countdown
	}

	return Event{
		Title: title,
		Date:  date,
		Kind:  kind,
		Color: color,
	}, nil
}

// ValidColor reports whether s is a hex color of the form #RRGGBB.
func ValidColor(s string) bool {
	if len(s) != len("#RRGGBB") || s[0] != '#' {
		return false
	}

	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}

	return true
}
