package tracker

import (
	"errors"
	"path/filepath"
	"testing"

	"routine/internal/dates"
	"routine/internal/recurrence"
	"routine/internal/storage"
)

var fixedToday = dates.Date{Month: 6, Day: 10, Year: 2024}

func newTestTracker(t *testing.T) (*Tracker, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "routine.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	tr := New(store, dates.DefaultLayout, WithToday(func() dates.Date { return fixedToday }))
	return tr, store
}

func submit(t *testing.T, tr *Tracker, in NewTask) {
	t.Helper()
	if err := tr.SubmitNewTask(in); err != nil {
		t.Fatalf("submit %q: %v", in.Description, err)
	}
}

func dueOf(t *testing.T, store *storage.Store, desc string) string {
	t.Helper()
	due, ok, err := store.DueDate(desc)
	if err != nil {
		t.Fatalf("due date %q: %v", desc, err)
	}
	if !ok {
		return ""
	}
	return due
}

func TestSubmitNewTaskStoresCanonicalDue(t *testing.T) {
	tr, store := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Pay Rent", Category: "bills", Freq: 1, Unit: recurrence.Months, TrackHistory: true, InitialDue: "7/1/2024"})

	if got := dueOf(t, store, "Pay Rent"); got != "2024-07-01" {
		t.Fatalf("expected 2024-07-01, got %q", got)
	}
	task, err := store.GetTask("Pay Rent")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if task.Category != "bills" || task.Freq != 1 || task.Unit != recurrence.Months || !task.TrackHistory {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestSubmitNewTaskValidation(t *testing.T) {
	tr, store := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Pay Rent", Freq: 1, Unit: recurrence.Months, InitialDue: "7/1/2024"})

	tests := []struct {
		name string
		in   NewTask
		want error
	}{
		{"collision ignores case", NewTask{Description: "pay rent", Freq: 1, Unit: recurrence.Months, InitialDue: "7/1/2024"}, ErrCollision},
		{"invalid date", NewTask{Description: "Vacuum", Freq: 1, Unit: recurrence.Weeks, InitialDue: "2/30/2024"}, ErrInvalidDate},
		{"wrong delimiter", NewTask{Description: "Vacuum", Freq: 1, Unit: recurrence.Weeks, InitialDue: "2-3-2024"}, ErrInvalidDate},
		{"apostrophe in description", NewTask{Description: "Mom's birthday", Freq: 1, Unit: recurrence.Years, InitialDue: "5/4/2024"}, ErrApostrophe},
		{"apostrophe in category", NewTask{Description: "Birthday", Category: "mom's", Freq: 1, Unit: recurrence.Years, InitialDue: "5/4/2024"}, ErrApostrophe},
		{"zero frequency", NewTask{Description: "Vacuum", Freq: 0, Unit: recurrence.Weeks, InitialDue: "6/1/2024"}, ErrInvalidFrequency},
		{"unknown unit", NewTask{Description: "Vacuum", Freq: 1, Unit: "fortnights", InitialDue: "6/1/2024"}, ErrInvalidFrequency},
		{"empty description", NewTask{Description: "  ", Freq: 1, Unit: recurrence.Days, InitialDue: "6/1/2024"}, ErrEmptyDescription},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tr.SubmitNewTask(tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("rejected submissions must not write, found %d tasks", len(tasks))
	}
}

func TestMarkCompleteAdvancesAndHolds(t *testing.T) {
	tr, store := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Mow lawn", Category: "yard", Freq: 1, Unit: recurrence.Weeks, TrackHistory: true, InitialDue: "6/1/2024"})

	if err := tr.MarkComplete("Mow lawn", "6/3/2024", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := dueOf(t, store, "Mow lawn"); got != "2024-06-10" {
		t.Fatalf("expected advance to 2024-06-10, got %q", got)
	}
	if err := tr.MarkComplete("Mow lawn", "5/20/2024", ""); err != nil {
		t.Fatalf("backdated complete: %v", err)
	}
	if got := dueOf(t, store, "Mow lawn"); got != "2024-06-10" {
		t.Fatalf("backdated completion must not move due date, got %q", got)
	}
	hist, err := tr.History("Mow lawn")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 2 || hist[0].Date != "6/3/2024" || hist[1].Date != "5/20/2024" {
		t.Fatalf("unexpected history %+v", hist)
	}
	if hist[0].Category != "yard" {
		t.Fatalf("expected task category on completion, got %q", hist[0].Category)
	}
}

func TestMarkCompleteErrors(t *testing.T) {
	tr, _ := newTestTracker(t)
	if err := tr.MarkComplete("Ghost", "6/1/2024", ""); !errors.Is(err, ErrTrackingLookup) {
		t.Fatalf("expected ErrTrackingLookup, got %v", err)
	}
	if err := tr.MarkComplete("Ghost", "13/1/2024", ""); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	hist, err := tr.History("Ghost")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("unknown task must not gain history, got %+v", hist)
	}
}

func TestRejectedDatesWriteNothing(t *testing.T) {
	tr, store := newTestTracker(t)
	for _, in := range []string{"1/1/10000", "+6/1/2024", "6/-1/2024"} {
		err := tr.SubmitNewTask(NewTask{Description: "Far", Freq: 1, Unit: recurrence.Days, TrackHistory: true, InitialDue: in})
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("submit due %q: expected ErrInvalidDate, got %v", in, err)
		}
	}
	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("rejected submissions must not register tasks, got %+v", tasks)
	}

	submit(t, tr, NewTask{Description: "Far", Freq: 1, Unit: recurrence.Days, TrackHistory: true, InitialDue: "12/31/9999"})
	rows, err := tr.Today()
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("a 9999 due date is not due on 2024-06-10, got %+v", rows)
	}
	if err := tr.MarkComplete("Far", "1/1/10000", ""); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	hist, err := tr.History("Far")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("rejected completion must not write history, got %+v", hist)
	}
}

func TestSnoozeAndChangeDueDate(t *testing.T) {
	tr, store := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Dentist", Freq: 6, Unit: recurrence.Months, TrackHistory: true, InitialDue: "6/1/2024"})

	if err := tr.Snooze("Dentist", "6/20/2024"); err != nil {
		t.Fatalf("snooze: %v", err)
	}
	if got := dueOf(t, store, "Dentist"); got != "2024-06-20" {
		t.Fatalf("expected snoozed date, got %q", got)
	}
	hist, err := tr.History("Dentist")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("snooze must not record history, got %+v", hist)
	}

	if err := tr.RemoveFromUpcoming("Dentist"); err != nil {
		t.Fatalf("unschedule: %v", err)
	}
	if err := tr.ChangeDueDate("Dentist", "7/4/2024", "health"); err != nil {
		t.Fatalf("change due: %v", err)
	}
	if got := dueOf(t, store, "Dentist"); got != "2024-07-04" {
		t.Fatalf("expected rescheduled date, got %q", got)
	}
}

func TestChangeCategoryAndFrequency(t *testing.T) {
	tr, _ := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Filter", Category: "home", Freq: 3, Unit: recurrence.Months, TrackHistory: true, InitialDue: "6/1/2024"})

	if err := tr.ChangeCategory("Filter", "o'clock"); !errors.Is(err, ErrApostrophe) {
		t.Fatalf("expected ErrApostrophe, got %v", err)
	}
	if err := tr.ChangeCategory("Filter", "hvac"); err != nil {
		t.Fatalf("change category: %v", err)
	}
	if err := tr.ChangeFrequency("Filter", 0, recurrence.Months); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
	if err := tr.ChangeFrequency("Filter", 90, recurrence.Days); err != nil {
		t.Fatalf("change frequency: %v", err)
	}

	view, err := tr.Detail("Filter")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if view.Category != "hvac" || view.Freq != 90 || view.Unit != recurrence.Days || view.DueDate != "6/1/2024" {
		t.Fatalf("unexpected detail %+v", view)
	}
}

func TestDetailUnscheduledAndPurge(t *testing.T) {
	tr, _ := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Passport", Freq: 1, Unit: recurrence.NoRepeat, TrackHistory: true, InitialDue: "6/1/2024"})
	if err := tr.MarkComplete("Passport", "6/2/2024", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	view, err := tr.Detail("Passport")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if view.DueDate != "" {
		t.Fatalf("no_repeat task should be unscheduled, got %q", view.DueDate)
	}

	if err := tr.Purge("Passport"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	var dbe *DatabaseError
	if _, err := tr.Detail("Passport"); !errors.As(err, &dbe) || !errors.Is(err, storage.ErrTaskNotFound) {
		t.Fatalf("expected wrapped ErrTaskNotFound, got %v", err)
	}
}

func TestEditHistory(t *testing.T) {
	tr, _ := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Run", Freq: 2, Unit: recurrence.Days, TrackHistory: true, InitialDue: "6/1/2024"})
	for _, d := range []string{"6/1/2024", "6/3/2024"} {
		if err := tr.MarkComplete("Run", d, ""); err != nil {
			t.Fatalf("complete %s: %v", d, err)
		}
	}

	if err := tr.ChangeCompletionDate("Run", "6/1/2024", "6/2/2024"); err != nil {
		t.Fatalf("change completion: %v", err)
	}
	if err := tr.ChangeCompletionDate("Run", "6/3/2024", "junk"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err := tr.RemoveCompletion("Run", "6/3/2024"); err != nil {
		t.Fatalf("remove completion: %v", err)
	}
	hist, err := tr.History("Run")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 1 || hist[0].Date != "6/2/2024" {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestBulkActionsReportPerRow(t *testing.T) {
	tr, store := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Dishes", Freq: 1, Unit: recurrence.Days, TrackHistory: true, InitialDue: "6/9/2024"})
	submit(t, tr, NewTask{Description: "Trash", Freq: 1, Unit: recurrence.Weeks, TrackHistory: false, InitialDue: "6/10/2024"})

	errs := tr.MarkCompleteAll([]Selection{
		{Description: "Dishes", Date: "6/10/2024"},
		{Description: "Trash", Date: "bogus"},
		{Description: "Ghost", Date: "6/10/2024"},
	})
	if len(errs) != 2 {
		t.Fatalf("expected two row errors, got %+v", errs)
	}
	if errs[0].Description != "Trash" || !errors.Is(errs[0].Err, ErrInvalidDate) {
		t.Fatalf("unexpected first row error %+v", errs[0])
	}
	if errs[1].Description != "Ghost" || !errors.Is(errs[1].Err, ErrTrackingLookup) {
		t.Fatalf("unexpected second row error %+v", errs[1])
	}
	if got := dueOf(t, store, "Dishes"); got != "2024-06-11" {
		t.Fatalf("good row should still apply, got %q", got)
	}

	if errs := tr.SnoozeAll([]Selection{{Description: "Trash", Date: "6/12/2024"}}); len(errs) != 0 {
		t.Fatalf("snooze all: %+v", errs)
	}
	if got := dueOf(t, store, "Trash"); got != "2024-06-12" {
		t.Fatalf("expected snoozed trash, got %q", got)
	}

	if errs := tr.ChangeCompletionDates([]Selection{{Description: "Dishes", Date: "6/10/2024", NewDate: "6/9/2024"}}); len(errs) != 0 {
		t.Fatalf("change completion dates: %+v", errs)
	}
	if errs := tr.RemoveCompletions([]Selection{{Description: "Dishes", Date: "6/9/2024"}}); len(errs) != 0 {
		t.Fatalf("remove completions: %+v", errs)
	}
	hist, err := tr.History("Dishes")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 0 {
		t.Fatalf("expected empty history, got %+v", hist)
	}
}

func TestTodayIncludesOverdue(t *testing.T) {
	tr, _ := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Overdue", Freq: 1, Unit: recurrence.Days, InitialDue: "6/1/2024"})
	submit(t, tr, NewTask{Description: "Due today", Freq: 1, Unit: recurrence.Days, InitialDue: "6/10/2024"})
	submit(t, tr, NewTask{Description: "Tomorrow", Freq: 1, Unit: recurrence.Days, InitialDue: "6/11/2024"})

	rows, err := tr.Today()
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if len(rows) != 2 || rows[0].Description != "Overdue" || rows[1].Description != "Due today" {
		t.Fatalf("unexpected today rows %+v", rows)
	}
	if rows[0].Date != "6/1/2024" {
		t.Fatalf("expected user layout date, got %q", rows[0].Date)
	}
}

func TestLookWindows(t *testing.T) {
	tr, _ := newTestTracker(t)
	tests := []struct {
		dir   Direction
		qty   int
		unit  recurrence.Unit
		start string
		end   string
	}{
		{Ahead, 3, recurrence.Days, "2024-06-11", "2024-06-13"},
		{Ahead, 2, recurrence.Weeks, "2024-06-11", "2024-06-24"},
		{Ahead, 1, recurrence.Months, "2024-06-11", "2024-07-10"},
		{Back, 1, recurrence.Weeks, "2024-06-03", "2024-06-09"},
		{Back, 1, recurrence.Months, "2024-05-10", "2024-06-09"},
	}
	for _, tc := range tests {
		w, err := tr.Look(tc.dir, tc.qty, tc.unit)
		if err != nil {
			t.Fatalf("look %s %d %s: %v", tc.dir, tc.qty, tc.unit, err)
		}
		if w.Start != tc.start || w.End != tc.end {
			t.Errorf("look %s %d %s: got %+v, want %s..%s", tc.dir, tc.qty, tc.unit, w, tc.start, tc.end)
		}
	}
	if _, err := tr.Look(Ahead, 0, recurrence.Days); !errors.Is(err, ErrInvalidLookAmount) {
		t.Fatalf("expected ErrInvalidLookAmount, got %v", err)
	}
	w, err := tr.Look(Ahead, 7975, recurrence.Years)
	if err != nil || w.End != "9999-06-10" {
		t.Fatalf("expected window ending 9999-06-10, got %+v (%v)", w, err)
	}
	for _, dir := range []Direction{Ahead, Back} {
		if _, err := tr.Look(dir, 10000, recurrence.Years); !errors.Is(err, ErrInvalidLookAmount) {
			t.Fatalf("look %s 10000 years: expected ErrInvalidLookAmount, got %v", dir, err)
		}
	}
}

func TestRangeBetween(t *testing.T) {
	tr, _ := newTestTracker(t)
	submit(t, tr, NewTask{Description: "Gutters", Freq: 6, Unit: recurrence.Months, TrackHistory: true, InitialDue: "6/5/2024"})
	submit(t, tr, NewTask{Description: "Taxes", Freq: 1, Unit: recurrence.Years, TrackHistory: true, InitialDue: "4/15/2025"})
	if err := tr.MarkComplete("Gutters", "6/5/2024", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := tr.Between("6/30/2024", "6/1/2024"); !errors.Is(err, ErrStartAfterEnd) {
		t.Fatalf("expected ErrStartAfterEnd, got %v", err)
	}
	if _, err := tr.Between("6/1/2024", "nope"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	w, err := tr.Between("6/1/2024", "12/31/2024")
	if err != nil {
		t.Fatalf("between: %v", err)
	}
	view, err := tr.Range(w)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(view.Due) != 1 || view.Due[0].Description != "Gutters" || view.Due[0].Date != "12/5/2024" {
		t.Fatalf("unexpected due rows %+v", view.Due)
	}
	if len(view.Completed) != 1 || view.Completed[0].Date != "6/5/2024" {
		t.Fatalf("unexpected completed rows %+v", view.Completed)
	}
	from, to := tr.Describe(w)
	if from != "6/1/2024" || to != "12/31/2024" {
		t.Fatalf("unexpected description %s..%s", from, to)
	}
}

func TestSuggestions(t *testing.T) {
	tr, _ := newTestTracker(t)
	submit(t, tr, NewTask{Description: "B task", Category: "work", Freq: 1, Unit: recurrence.Days, InitialDue: "6/1/2024"})
	submit(t, tr, NewTask{Description: "A task", Freq: 1, Unit: recurrence.Days, InitialDue: "6/1/2024"})

	descs, cats, err := tr.Suggestions()
	if err != nil {
		t.Fatalf("suggestions: %v", err)
	}
	if len(descs) != 2 || len(cats) != 1 || cats[0] != "work" {
		t.Fatalf("unexpected suggestions %v %v", descs, cats)
	}
}

func TestSpanishLayoutRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "routine.db"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()
	tr := New(store, dates.Layout{Order: dates.DMY, Delimiter: "-"}, WithToday(func() dates.Date { return fixedToday }))

	submit(t, tr, NewTask{Description: "Limpiar", Freq: 1, Unit: recurrence.Weeks, InitialDue: "25-12-2024"})
	if got := dueOf(t, store, "Limpiar"); got != "2024-12-25" {
		t.Fatalf("expected canonical date, got %q", got)
	}
	if tr.TodayText() != "10-6-2024" {
		t.Fatalf("unexpected today text %q", tr.TodayText())
	}
}
