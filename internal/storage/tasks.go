package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"routine/internal/recurrence"
)

// Task is one row of the attributes table.
type Task struct {
	Description  string
	Category     string
	Freq         int
	Unit         recurrence.Unit
	TrackHistory bool
}

// TaskDetail is a task with its current due date. DueDate is empty when the
// task has no upcoming entry.
type TaskDetail struct {
	Task
	DueDate string
}

func (s *Store) AddTask(t Task) error {
	_, err := s.db.Exec(`INSERT INTO attributes (description, category, freq, freq_type, track_history) VALUES (?, ?, ?, ?, ?);`,
		t.Description, t.Category, t.Freq, string(t.Unit), boolToInt(t.TrackHistory))
	if err != nil {
		s.log.Error("add task failed", "description", t.Description, "err", err)
		return fmt.Errorf("add task %q: %w", t.Description, err)
	}
	s.log.Debug("task added", "description", t.Description, "freq", t.Freq, "unit", t.Unit, "track_history", t.TrackHistory)
	return nil
}

func (s *Store) GetTask(description string) (Task, error) {
	var t Task
	var unit string
	var tracked int
	err := s.db.QueryRow(`SELECT description, category, freq, freq_type, track_history FROM attributes WHERE description = ?;`, description).
		Scan(&t.Description, &t.Category, &t.Freq, &unit, &tracked)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, fmt.Errorf("%q: %w", description, ErrTaskNotFound)
	}
	if err != nil {
		return Task{}, fmt.Errorf("get task %q: %w", description, err)
	}
	t.Unit = recurrence.Unit(unit)
	t.TrackHistory = tracked == 1
	return t, nil
}

// DescriptionInUse compares case-insensitively against registered tasks.
func (s *Store) DescriptionInUse(description string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM attributes WHERE UPPER(description) = UPPER(?);`, description).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check description %q: %w", description, err)
	}
	return n > 0, nil
}

// Tasks lists every registered task by description.
func (s *Store) Tasks() ([]Task, error) {
	rows, err := s.db.Query(`SELECT description, category, freq, freq_type, track_history FROM attributes ORDER BY description;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var unit string
		var tracked int
		if err := rows.Scan(&t.Description, &t.Category, &t.Freq, &unit, &tracked); err != nil {
			return nil, err
		}
		t.Unit = recurrence.Unit(unit)
		t.TrackHistory = tracked == 1
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) TaskDetail(description string) (TaskDetail, error) {
	t, err := s.GetTask(description)
	if err != nil {
		return TaskDetail{}, err
	}
	due, _, err := s.DueDate(description)
	if err != nil {
		return TaskDetail{}, err
	}
	return TaskDetail{Task: t, DueDate: due}, nil
}

func (s *Store) ChangeFrequency(description string, freq int, unit recurrence.Unit) error {
	_, err := s.db.Exec(`UPDATE attributes SET freq = ?, freq_type = ? WHERE description = ?;`, freq, string(unit), description)
	if err != nil {
		s.log.Error("change frequency failed", "description", description, "err", err)
		return fmt.Errorf("change frequency %q: %w", description, err)
	}
	s.log.Debug("frequency changed", "description", description, "freq", freq, "unit", unit)
	return nil
}

// ChangeCategory rewrites the category on the history, attributes and
// upcoming rows of a task. The updates are not transactional: a failure
// leaves the earlier tables already changed.
func (s *Store) ChangeCategory(description, category string) error {
	queries := []string{
		`UPDATE history SET category = ? WHERE description = ?;`,
		`UPDATE attributes SET category = ? WHERE description = ?;`,
		`UPDATE upcoming SET category = ? WHERE description = ?;`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q, category, description); err != nil {
			s.log.Error("change category failed", "description", description, "err", err)
			return fmt.Errorf("change category %q: %w", description, err)
		}
	}
	s.log.Debug("category changed", "description", description, "category", category)
	return nil
}

// Purge deletes every trace of a task.
func (s *Store) Purge(description string) error {
	queries := []string{
		`DELETE FROM upcoming WHERE description = ?;`,
		`DELETE FROM history WHERE description = ?;`,
		`DELETE FROM attributes WHERE description = ?;`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q, description); err != nil {
			s.log.Error("purge failed", "description", description, "err", err)
			return fmt.Errorf("purge %q: %w", description, err)
		}
	}
	s.log.Info("task purged", "description", description)
	return nil
}

// Descriptions and Categories feed input suggestions.
func (s *Store) Descriptions() ([]string, error) {
	return s.distinct(`SELECT DISTINCT description FROM attributes ORDER BY description;`)
}

func (s *Store) Categories() ([]string, error) {
	return s.distinct(`SELECT DISTINCT category FROM attributes WHERE category <> '' ORDER BY category;`)
}

func (s *Store) distinct(query string) ([]string, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
