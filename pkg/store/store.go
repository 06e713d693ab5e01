package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/matt-steen/day-tracker/pkg/event"
	"github.com/rs/zerolog/log"
)

// DefaultKey is the storage key the event collection is kept under.
const DefaultKey = "date_events"

var (
	// ErrIndexOutOfRange is returned when an index does not refer to a stored event.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownCriterion is returned for a sort criterion that is not supported.
	ErrUnknownCriterion = errors.New("unknown sort criterion")
	// ErrNotSaved matches errors from changes that were applied in memory but could
	// not be written to storage.
	ErrNotSaved = errors.New("events not saved")
)

// SaveError reports a failed write of the event collection.
type SaveError struct {
	err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("error saving events: %s", e.err)
}

func (e *SaveError) Unwrap() error {
	return e.err
}

// Is reports whether target is ErrNotSaved.
func (e *SaveError) Is(target error) bool {
	return target == ErrNotSaved
}

// Storage is a key-value settings store.
type Storage interface {
	// Get returns the value stored under key; ok is false if there is none.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Criterion selects how SortBy orders the events.
type Criterion int

// These constants are the supported sort criteria.
const (
	ByDate Criterion = iota
	ByTitle
	ByType
)

func (c Criterion) String() string {
	switch c {
	case ByDate:
		return "date"
	case ByTitle:
		return "title"
	case ByType:
		return "type"
	}

	return fmt.Sprintf("criterion(%d)", int(c))
}

// ParseCriterion parses "date", "title" or "type".
func ParseCriterion(s string) (Criterion, error) {
	for _, c := range []Criterion{ByDate, ByTitle, ByType} {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("error parsing '%s': %w", s, ErrUnknownCriterion)
}

// Store owns the ordered collection of events and writes all of it back to storage
// after every change.
type Store struct {
	storage Storage
	key     string
	now     func() time.Time
	palette []string
	pick    func(n int) int
	events  []event.Event
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key used for the collection.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithPalette sets the colors new events are assigned from.
func WithPalette(palette []string) Option {
	return func(s *Store) {
		if len(palette) > 0 {
			s.palette = append([]string{}, palette...)
		}
	}
}

// WithPicker sets how a palette index is chosen; it is called with the palette length.
func WithPicker(pick func(n int) int) Option {
	return func(s *Store) {
		s.pick = pick
	}
}

// New creates an empty Store backed by storage. Call Load to read the persisted events.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		now:     time.Now,
		palette: event.DefaultPalette(),
		pick:    rand.Intn,
		events:  []event.Event{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory events with the persisted ones, sorted in the default
// order. Unreadable or corrupt data is logged and results in an empty collection.
func (s *Store) Load(ctx context.Context) []event.Event {
	s.events = []event.Event{}

	data, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("error loading events")

		return s.Events()
	}

	if !ok {
		log.Debug().Str("key", s.key).Msg("no stored events")

		return s.Events()
	}

	var events []event.Event

	if err = json.Unmarshal(data, &events); err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("error decoding events; starting with an empty list")

		return s.Events()
	}

	if events != nil {
		s.events = events
	}

	event.SortDefault(s.events, s.now())

	log.Info().Int("count", len(s.events)).Msg("loaded events")

	return s.Events()
}

// Save writes the full collection to storage. A failure is logged and returned as a
// *SaveError; the in-memory events are left as they are.
func (s *Store) Save(ctx context.Context) error {
	data, err := json.Marshal(s.events)
	if err != nil {
		log.Error().Err(err).Msg("error encoding events")

		return &SaveError{err: fmt.Errorf("error encoding events: %w", err)}
	}

	if err = s.storage.Set(ctx, s.key, data); err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("error saving events")

		return &SaveError{err: err}
	}

	return nil
}

// Events returns a copy of the events in their current order.
func (s *Store) Events() []event.Event {
	return append([]event.Event{}, s.events...)
}

// Len returns the number of events.
func (s *Store) Len() int {
	return len(s.events)
}

// At returns the event at index i.
func (s *Store) At(i int) (event.Event, error) {
	if i < 0 || i >= len(s.events) {
		return event.Event{}, fmt.Errorf("error getting event %d of %d: %w", i, len(s.events), ErrIndexOutOfRange)
	}

	return s.events[i], nil
}

// Create builds a new event dated date with a color from the palette and adds it.
func (s *Store) Create(ctx context.Context, title string, date time.Time) (event.Event, error) {
	color := s.palette[s.pick(len(s.palette))]

	ev, err := event.New(title, date, s.now(), color)
	if err != nil {
		return event.Event{}, err
	}

	return ev, s.Add(ctx, ev)
}

// Add appends ev, restores the default order and saves.
func (s *Store) Add(ctx context.Context, ev event.Event) error {
	s.events = append(s.events, ev)
	event.SortDefault(s.events, s.now())

	log.Debug().Str("title", ev.Title).Stringer("type", ev.Kind).Msg("added event")

	return s.Save(ctx)
}

// Remove deletes the events at the given indices in one operation and saves. Repeated
// indices are ignored. If any index is out of range nothing is removed.
func (s *Store) Remove(ctx context.Context, indices ...int) error {
	doomed := map[int]bool{}

	for _, i := range indices {
		if i < 0 || i >= len(s.events) {
			return fmt.Errorf("error removing event %d of %d: %w", i, len(s.events), ErrIndexOutOfRange)
		}

		doomed[i] = true
	}

	if len(doomed) == 0 {
		return nil
	}

	kept := make([]event.Event, 0, len(s.events)-len(doomed))

	for i, ev := range s.events {
		if !doomed[i] {
			kept = append(kept, ev)
		}
	}

	s.events = kept

	log.Debug().Int("removed", len(doomed)).Int("remaining", len(kept)).Msg("removed events")

	return s.Save(ctx)
}

// Move relocates the event at index from so that it ends up at index to, then saves.
// The default order is not reapplied.
func (s *Store) Move(ctx context.Context, from, to int) error {
	n := len(s.events)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("error moving event from %d to %d of %d: %w", from, to, n, ErrIndexOutOfRange)
	}

	if from == to {
		return nil
	}

	ev := s.events[from]

	if from < to {
		copy(s.events[from:to], s.events[from+1:to+1])
	} else {
		copy(s.events[to+1:from+1], s.events[to:from])
	}

	s.events[to] = ev

	return s.Save(ctx)
}

// SortBy orders the events by the given criterion and saves. ByType uses the default order.
func (s *Store) SortBy(ctx context.Context, criterion Criterion) error {
	switch criterion {
	case ByDate:
		event.SortByDate(s.events)
	case ByTitle:
		event.SortByTitle(s.events)
	case ByType:
		event.SortDefault(s.events, s.now())
	default:
		return fmt.Errorf("error sorting by %s: %w", criterion, ErrUnknownCriterion)
	}

	log.Debug().Stringer("criterion", criterion).Msg("sorted events")

	return s.Save(ctx)
}
