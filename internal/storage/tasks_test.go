package storage

import (
	"errors"
	"testing"

	"routine/internal/recurrence"
)

func TestDescriptionInUseIgnoresCase(t *testing.T) {
	store := newTestStore(t)
	seedTask(t, store, Task{Description: "Pay Rent", Category: "bills", Freq: 1, Unit: recurrence.Months, TrackHistory: true}, "2024-07-01")

	for _, desc := range []string{"Pay Rent", "pay rent", "PAY RENT"} {
		used, err := store.DescriptionInUse(desc)
		if err != nil {
			t.Fatalf("check %q: %v", desc, err)
		}
		if !used {
			t.Fatalf("expected %q to collide", desc)
		}
	}
	used, err := store.DescriptionInUse("Pay rent late fee")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if used {
		t.Fatalf("expected distinct description to be free")
	}
}

func TestChangeCategoryPropagatesToAllTables(t *testing.T) {
	store := newTestStore(t)
	task := Task{Description: "Clean gutters", Category: "outside", Freq: 6, Unit: recurrence.Months, TrackHistory: true}
	seedTask(t, store, task, "2024-10-01")
	for _, d := range []string{"2023-10-01", "2024-04-01"} {
		if err := store.AddCompletion(task.Description, d, task.Category); err != nil {
			t.Fatalf("seed history: %v", err)
		}
	}

	if err := store.ChangeCategory(task.Description, "house"); err != nil {
		t.Fatalf("change category: %v", err)
	}

	got, err := store.GetTask(task.Description)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Category != "house" {
		t.Fatalf("expected attributes category house, got %q", got.Category)
	}
	history, err := store.History(task.Description)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	for _, h := range history {
		if h.Category != "house" {
			t.Fatalf("expected history category house, got %+v", h)
		}
	}
	due, err := store.DueBetween("2024-10-01", "2024-10-01")
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 1 || due[0].Category != "house" {
		t.Fatalf("expected upcoming category house, got %+v", due)
	}
}

func TestChangeFrequency(t *testing.T) {
	store := newTestStore(t)
	seedTask(t, store, Task{Description: "Descale kettle", Freq: 1, Unit: recurrence.Months, TrackHistory: true}, "2024-06-01")

	if err := store.ChangeFrequency("Descale kettle", 3, recurrence.Weeks); err != nil {
		t.Fatalf("change frequency: %v", err)
	}
	got, err := store.GetTask("Descale kettle")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Freq != 3 || got.Unit != recurrence.Weeks {
		t.Fatalf("unexpected frequency %d %s", got.Freq, got.Unit)
	}
	if err := store.RecordCompletion("Descale kettle", "2024-06-01", ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if due := mustDue(t, store, "Descale kettle"); due != "2024-06-22" {
		t.Fatalf("expected 2024-06-22, got %s", due)
	}
}

func TestPurgeRemovesEverything(t *testing.T) {
	store := newTestStore(t)
	task := Task{Description: "Old chore", Category: "misc", Freq: 2, Unit: recurrence.Days, TrackHistory: true}
	seedTask(t, store, task, "2024-06-01")
	seedTask(t, store, Task{Description: "Keep me", Category: "misc", Freq: 2, Unit: recurrence.Days, TrackHistory: true}, "2024-06-01")
	if err := store.AddCompletion(task.Description, "2024-05-30", task.Category); err != nil {
		t.Fatalf("seed history: %v", err)
	}

	if err := store.Purge(task.Description); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, err := store.GetTask(task.Description); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, ok, _ := store.DueDate(task.Description); ok {
		t.Fatalf("expected upcoming row to be gone")
	}
	history, err := store.History(task.Description)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected no history, got %d", len(history))
	}
	if _, err := store.GetTask("Keep me"); err != nil {
		t.Fatalf("other task was purged: %v", err)
	}
}

func TestTasksAndDetail(t *testing.T) {
	store := newTestStore(t)
	seedTask(t, store, Task{Description: "b task", Category: "x", Freq: 1, Unit: recurrence.Days, TrackHistory: true}, "")
	seedTask(t, store, Task{Description: "a task", Category: "y", Freq: 2, Unit: recurrence.Years, TrackHistory: false}, "2025-01-01")

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Description != "a task" || tasks[1].Description != "b task" {
		t.Fatalf("expected tasks ordered by description, got %+v", tasks)
	}

	detail, err := store.TaskDetail("a task")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.DueDate != "2025-01-01" || detail.TrackHistory {
		t.Fatalf("unexpected detail %+v", detail)
	}
	detail, err = store.TaskDetail("b task")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.DueDate != "" {
		t.Fatalf("expected no due date, got %q", detail.DueDate)
	}
	if _, err := store.TaskDetail("nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestSuggestions(t *testing.T) {
	store := newTestStore(t)
	seedTask(t, store, Task{Description: "Mop", Category: "floors", Freq: 1, Unit: recurrence.Weeks}, "")
	seedTask(t, store, Task{Description: "Vacuum", Category: "floors", Freq: 1, Unit: recurrence.Weeks}, "")
	seedTask(t, store, Task{Description: "Dust", Category: "", Freq: 1, Unit: recurrence.Weeks}, "")

	descs, err := store.Descriptions()
	if err != nil {
		t.Fatalf("descriptions: %v", err)
	}
	if len(descs) != 3 {
		t.Fatalf("expected 3 descriptions, got %v", descs)
	}
	cats, err := store.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 1 || cats[0] != "floors" {
		t.Fatalf("expected [floors], got %v", cats)
	}
}
