package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Upcoming is the outstanding due date of a task.
type Upcoming struct {
	Description string
	Date        string
	Category    string
}

// AddUpcoming inserts a row without checking for an existing one. Use
// ChangeDueDate when a row may already exist.
func (s *Store) AddUpcoming(description, date, category string) error {
	_, err := s.db.Exec(`INSERT INTO upcoming (description, date, category) VALUES (?, ?, ?);`, description, date, category)
	if err != nil {
		s.log.Error("add upcoming failed", "description", description, "err", err)
		return fmt.Errorf("add upcoming %q: %w", description, err)
	}
	s.log.Debug("upcoming added", "description", description, "date", date)
	return nil
}

// DueDate returns the stored due date. ok is false when the task has no
// upcoming row or the row has no date.
func (s *Store) DueDate(description string) (string, bool, error) {
	var date sql.NullString
	err := s.db.QueryRow(`SELECT date FROM upcoming WHERE description = ? LIMIT 1;`, description).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get due date %q: %w", description, err)
	}
	return date.String, date.Valid && date.String != "", nil
}

func (s *Store) RemoveFromUpcoming(description string) error {
	_, err := s.db.Exec(`DELETE FROM upcoming WHERE description = ?;`, description)
	if err != nil {
		s.log.Error("remove from upcoming failed", "description", description, "err", err)
		return fmt.Errorf("remove from upcoming %q: %w", description, err)
	}
	s.log.Debug("removed from upcoming", "description", description)
	return nil
}

// DueOnOrBefore lists items due on or before date (canonical), which is
// today's list when date is today.
func (s *Store) DueOnOrBefore(date string) ([]Upcoming, error) {
	return s.queryUpcoming(`SELECT description, date, category FROM upcoming WHERE date <= ? ORDER BY date, description;`, date)
}

// DueBetween lists items due in the inclusive range.
func (s *Store) DueBetween(start, end string) ([]Upcoming, error) {
	return s.queryUpcoming(`SELECT description, date, category FROM upcoming WHERE date >= ? AND date <= ? ORDER BY date, description;`, start, end)
}

func (s *Store) queryUpcoming(query string, args ...any) ([]Upcoming, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Upcoming
	for rows.Next() {
		var u Upcoming
		var date, category sql.NullString
		if err := rows.Scan(&u.Description, &date, &category); err != nil {
			return nil, err
		}
		u.Date = date.String
		u.Category = category.String
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
