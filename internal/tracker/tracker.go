// Package tracker is the entry point the user interface talks to. It takes
// user-typed text, validates it, converts dates to their stored form and
// drives the storage layer.
package tracker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"routine/internal/dates"
	"routine/internal/recurrence"
	"routine/internal/storage"
)

type Tracker struct {
	store  *storage.Store
	layout dates.Layout
	today  func() dates.Date
	log    *slog.Logger
}

type Option func(*Tracker)

// WithToday replaces the clock, for tests.
func WithToday(fn func() dates.Date) Option {
	return func(t *Tracker) { t.today = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

func New(store *storage.Store, layout dates.Layout, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		layout: layout,
		today:  dates.Today,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Layout is the user date layout in effect.
func (t *Tracker) Layout() dates.Layout {
	return t.layout
}

// TodayText is today's date in the user layout.
func (t *Tracker) TodayText() string {
	return t.layout.Format(t.today())
}

type NewTask struct {
	Description  string
	Category     string
	Freq         int
	Unit         recurrence.Unit
	TrackHistory bool
	InitialDue   string
}

// SubmitNewTask registers a task and schedules its first due date.
func (t *Tracker) SubmitNewTask(in NewTask) error {
	desc := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if desc == "" {
		return ErrEmptyDescription
	}

	inUse, err := t.store.DescriptionInUse(desc)
	if err != nil {
		return dbErr("check description", err)
	}
	if inUse {
		return fmt.Errorf("%w: %q", ErrCollision, desc)
	}
	due, err := t.parse(in.InitialDue)
	if err != nil {
		return err
	}
	if hasApostrophe(desc) || hasApostrophe(category) {
		return ErrApostrophe
	}
	if in.Freq <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrequency, in.Freq)
	}
	if _, err := recurrence.ParseUnit(string(in.Unit)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, err)
	}

	task := storage.Task{
		Description:  desc,
		Category:     category,
		Freq:         in.Freq,
		Unit:         in.Unit,
		TrackHistory: in.TrackHistory,
	}
	if err := t.store.AddTask(task); err != nil {
		return dbErr("add task", err)
	}
	if err := t.store.AddUpcoming(desc, due, category); err != nil {
		return dbErr("add upcoming", err)
	}
	t.log.Info("task submitted", "description", desc, "due", due)
	return nil
}

// MarkComplete records a completion on dateText and advances the schedule.
func (t *Tracker) MarkComplete(description, dateText, category string) error {
	date, err := t.parse(dateText)
	if err != nil {
		return err
	}
	if err := t.store.RecordCompletion(description, date, category); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			return fmt.Errorf("%w: %v", ErrTrackingLookup, err)
		}
		return dbErr("mark complete", err)
	}
	return nil
}

// Snooze moves the due date without recording a completion.
func (t *Tracker) Snooze(description, dateText string) error {
	date, err := t.parse(dateText)
	if err != nil {
		return err
	}
	return dbErr("snooze", t.store.Snooze(description, date))
}

func (t *Tracker) ChangeDueDate(description, dateText, category string) error {
	date, err := t.parse(dateText)
	if err != nil {
		return err
	}
	return dbErr("change due date", t.store.ChangeDueDate(description, date, category))
}

func (t *Tracker) ChangeFrequency(description string, freq int, unit recurrence.Unit) error {
	if freq <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrequency, freq)
	}
	if _, err := recurrence.ParseUnit(string(unit)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, err)
	}
	return dbErr("change frequency", t.store.ChangeFrequency(description, freq, unit))
}

// ChangeCategory updates the category everywhere it is copied.
func (t *Tracker) ChangeCategory(description, category string) error {
	category = strings.TrimSpace(category)
	if hasApostrophe(category) {
		return ErrApostrophe
	}
	return dbErr("change category", t.store.ChangeCategory(description, category))
}

func (t *Tracker) RemoveFromUpcoming(description string) error {
	return dbErr("remove from upcoming", t.store.RemoveFromUpcoming(description))
}

func (t *Tracker) Purge(description string) error {
	return dbErr("purge", t.store.Purge(description))
}

// ChangeCompletionDate edits a history entry. oldDate is the entry's date as
// displayed; newDateText is what the user typed.
func (t *Tracker) ChangeCompletionDate(description, oldDate, newDateText string) error {
	newDate, err := t.parse(newDateText)
	if err != nil {
		return err
	}
	old, err := t.parse(oldDate)
	if err != nil {
		return err
	}
	return dbErr("change completion date", t.store.ChangeCompletionDate(description, old, newDate))
}

// RemoveCompletion deletes the history entry displayed with date.
func (t *Tracker) RemoveCompletion(description, date string) error {
	d, err := t.parse(date)
	if err != nil {
		return err
	}
	return dbErr("remove completion", t.store.RemoveCompletion(description, d))
}

func (t *Tracker) parse(text string) (string, error) {
	canonical, err := t.layout.ToCanonical(text)
	if err != nil {
		if errors.Is(err, dates.ErrInvalid) {
			return "", fmt.Errorf("%w: %q (expected %s)", ErrInvalidDate, text, t.layout.Explain())
		}
		return "", err
	}
	return canonical, nil
}

// Apostrophes stay banned in descriptions and categories even though every
// query is parameterized.
func hasApostrophe(s string) bool {
	return strings.ContainsRune(s, '\'')
}
