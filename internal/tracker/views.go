package tracker

import (
	"fmt"
	"time"

	"routine/internal/dates"
	"routine/internal/recurrence"
	"routine/internal/storage"
)

// Row is a dated entry with its date already in the user layout.
type Row struct {
	Description string
	Date        string
	Category    string
}

type TaskRow struct {
	Description  string
	Category     string
	Freq         int
	Unit         recurrence.Unit
	TrackHistory bool
}

// TaskView is a task with its due date in the user layout, empty when the
// task is not scheduled.
type TaskView struct {
	TaskRow
	DueDate string
}

type Direction string

const (
	Ahead Direction = "ahead"
	Back  Direction = "back"
)

// Window is an inclusive range of canonical dates.
type Window struct {
	Start string
	End   string
}

// RangeView holds what is due and what was completed inside a window.
type RangeView struct {
	Due       []Row
	Completed []Row
}

// Today lists every scheduled task due today or earlier.
func (t *Tracker) Today() ([]Row, error) {
	items, err := t.store.DueOnOrBefore(t.today().Canonical())
	if err != nil {
		return nil, dbErr("load today", err)
	}
	return t.upcomingRows(items), nil
}

// Between builds a window from two user-typed dates.
func (t *Tracker) Between(fromText, toText string) (Window, error) {
	start, err := t.parse(fromText)
	if err != nil {
		return Window{}, err
	}
	end, err := t.parse(toText)
	if err != nil {
		return Window{}, err
	}
	if start > end {
		return Window{}, fmt.Errorf("%w: %s > %s", ErrStartAfterEnd, fromText, toText)
	}
	return Window{Start: start, End: end}, nil
}

// Look builds a window of qty units starting tomorrow (ahead) or ending
// yesterday (back).
func (t *Tracker) Look(dir Direction, qty int, unit recurrence.Unit) (Window, error) {
	if qty <= 0 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidLookAmount, qty)
	}
	off, err := recurrence.OffsetFor(qty, unit)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", ErrInvalidFrequency, err)
	}
	today := t.today().Time()
	day := recurrence.Offset{Count: 1, Unit: recurrence.Days}
	var near, far time.Time
	switch dir {
	case Ahead:
		near, far = day.Apply(today), off.Apply(today)
	case Back:
		near, far = day.Negate().Apply(today), off.Negate().Apply(today)
	default:
		return Window{}, fmt.Errorf("unknown direction %q", dir)
	}
	if !dates.FromTime(far).Valid() {
		return Window{}, fmt.Errorf("%w: %d %s reaches past the calendar", ErrInvalidLookAmount, qty, unit)
	}
	if dir == Ahead {
		return Window{Start: canonical(near), End: canonical(far)}, nil
	}
	return Window{Start: canonical(far), End: canonical(near)}, nil
}

// Range returns the due and completed entries inside w.
func (t *Tracker) Range(w Window) (RangeView, error) {
	due, err := t.store.DueBetween(w.Start, w.End)
	if err != nil {
		return RangeView{}, dbErr("load range", err)
	}
	done, err := t.store.CompletedBetween(w.Start, w.End)
	if err != nil {
		return RangeView{}, dbErr("load range", err)
	}
	return RangeView{Due: t.upcomingRows(due), Completed: t.historyRows(done)}, nil
}

func (t *Tracker) Tasks() ([]TaskRow, error) {
	tasks, err := t.store.Tasks()
	if err != nil {
		return nil, dbErr("load tasks", err)
	}
	rows := make([]TaskRow, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, taskRow(task))
	}
	return rows, nil
}

func (t *Tracker) Detail(description string) (TaskView, error) {
	d, err := t.store.TaskDetail(description)
	if err != nil {
		return TaskView{}, dbErr("load task", err)
	}
	view := TaskView{TaskRow: taskRow(d.Task)}
	if d.DueDate != "" {
		view.DueDate = t.userDate(d.DueDate)
	}
	return view, nil
}

// History lists the completions of one task, newest first.
func (t *Tracker) History(description string) ([]Row, error) {
	items, err := t.store.History(description)
	if err != nil {
		return nil, dbErr("load history", err)
	}
	return t.historyRows(items), nil
}

// Suggestions returns known descriptions and categories for autocompletion.
func (t *Tracker) Suggestions() (descriptions, categories []string, err error) {
	descriptions, err = t.store.Descriptions()
	if err != nil {
		return nil, nil, dbErr("load suggestions", err)
	}
	categories, err = t.store.Categories()
	if err != nil {
		return nil, nil, dbErr("load suggestions", err)
	}
	return descriptions, categories, nil
}

// Describe renders w in the user layout for headings.
func (t *Tracker) Describe(w Window) (from, to string) {
	return t.userDate(w.Start), t.userDate(w.End)
}

func (t *Tracker) upcomingRows(items []storage.Upcoming) []Row {
	rows := make([]Row, 0, len(items))
	for _, u := range items {
		rows = append(rows, Row{Description: u.Description, Date: t.userDate(u.Date), Category: u.Category})
	}
	return rows
}

func (t *Tracker) historyRows(items []storage.Completion) []Row {
	rows := make([]Row, 0, len(items))
	for _, c := range items {
		rows = append(rows, Row{Description: c.Description, Date: t.userDate(c.Date), Category: c.Category})
	}
	return rows
}

// userDate shows a stored date in the user layout. Rows that do not hold a
// valid canonical date are shown as stored.
func (t *Tracker) userDate(canonical string) string {
	s, err := t.layout.CanonicalToUser(canonical)
	if err != nil {
		t.log.Warn("unreadable stored date", "date", canonical, "err", err)
		return canonical
	}
	return s
}

func taskRow(task storage.Task) TaskRow {
	return TaskRow{
		Description:  task.Description,
		Category:     task.Category,
		Freq:         task.Freq,
		Unit:         task.Unit,
		TrackHistory: task.TrackHistory,
	}
}

func canonical(tm time.Time) string {
	return dates.FromTime(tm).Canonical()
}
