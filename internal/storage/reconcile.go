package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"routine/internal/recurrence"
)

var errNoDate = errors.New("date engine returned no result")

// RecordCompletion applies a completion on date (canonical) to a task.
//
// Tracked tasks get a history entry first. A no_repeat task then leaves the
// schedule. Any other task moves its due date to date plus its frequency,
// unless it is tracked and date is earlier than a completion already on
// record: a backdated entry must not pull the schedule backwards.
//
// Steps are not rolled back when a later one fails.
func (s *Store) RecordCompletion(description, date, category string) error {
	task, err := s.GetTask(description)
	if err != nil {
		return err
	}
	if category == "" {
		category = task.Category
	}

	if task.TrackHistory {
		if err := s.AddCompletion(description, date, category); err != nil {
			return err
		}
	}

	last, found, err := s.LastCompletion(description)
	if err != nil {
		return err
	}

	if task.Unit == recurrence.NoRepeat {
		return s.RemoveFromUpcoming(description)
	}

	if task.TrackHistory && found && date < last {
		s.log.Info("due date held for backdated completion",
			"description", description, "new_date", date, "last_completed", last)
		return nil
	}

	offset, err := recurrence.OffsetFor(task.Freq, task.Unit)
	if err != nil {
		return fmt.Errorf("next due date %q: %w", description, err)
	}
	next, err := s.addOffset(date, offset)
	if err != nil {
		return err
	}
	if err := s.setDueDate(description, next, task.Category); err != nil {
		return err
	}
	s.log.Info("due date advanced",
		"description", description, "new_date", date, "last_completed", last, "next_due", next)
	return nil
}

// ChangeDueDate sets the due date directly, creating the upcoming row when
// the task is not scheduled.
func (s *Store) ChangeDueDate(description, date, category string) error {
	if err := s.setDueDate(description, date, category); err != nil {
		return err
	}
	s.log.Info("due date changed", "description", description, "date", date)
	return nil
}

// Snooze overwrites the due date of a scheduled task. It never looks at
// history or frequency.
func (s *Store) Snooze(description, date string) error {
	_, err := s.db.Exec(`UPDATE upcoming SET date = ? WHERE description = ?;`, date, description)
	if err != nil {
		s.log.Error("snooze failed", "description", description, "err", err)
		return fmt.Errorf("snooze %q: %w", description, err)
	}
	s.log.Info("snoozed", "description", description, "date", date)
	return nil
}

// addOffset lets SQLite do the calendar arithmetic.
func (s *Store) addOffset(date string, offset recurrence.Offset) (string, error) {
	var next sql.NullString
	err := s.db.QueryRow(`SELECT DATE(?, ?);`, date, offset.Modifier()).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("compute %s %s: %w", date, offset.Modifier(), err)
	}
	if !next.Valid {
		return "", fmt.Errorf("compute %s %s: %w", date, offset.Modifier(), errNoDate)
	}
	return next.String, nil
}

func (s *Store) setDueDate(description, date, category string) error {
	res, err := s.db.Exec(`UPDATE upcoming SET date = ? WHERE description = ?;`, date, description)
	if err != nil {
		s.log.Error("update due date failed", "description", description, "err", err)
		return fmt.Errorf("update due date %q: %w", description, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update due date %q: %w", description, err)
	}
	if n > 0 {
		return nil
	}
	return s.AddUpcoming(description, date, category)
}
