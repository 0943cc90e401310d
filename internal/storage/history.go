package storage

import (
	"database/sql"
	"fmt"
)

// Completion is one row of the history ledger.
type Completion struct {
	Description string
	Date        string
	Category    string
}

func (s *Store) AddCompletion(description, date, category string) error {
	_, err := s.db.Exec(`INSERT INTO history (description, date, category) VALUES (?, ?, ?);`, description, date, category)
	if err != nil {
		s.log.Error("add completion failed", "description", description, "date", date, "err", err)
		return fmt.Errorf("add completion %q: %w", description, err)
	}
	s.log.Debug("completion added", "description", description, "date", date)
	return nil
}

// LastCompletion returns the latest completion date on record. Rows are not
// stored in date order, so this is a MAX over all of them. ok is false when
// the task has no history.
func (s *Store) LastCompletion(description string) (string, bool, error) {
	var last sql.NullString
	err := s.db.QueryRow(`SELECT MAX(date) FROM history WHERE description = ?;`, description).Scan(&last)
	if err != nil {
		return "", false, fmt.Errorf("get last completion %q: %w", description, err)
	}
	if !last.Valid {
		return "", false, nil
	}
	return last.String, true, nil
}

// ChangeCompletionDate moves every entry of description on oldDate to newDate.
func (s *Store) ChangeCompletionDate(description, oldDate, newDate string) error {
	_, err := s.db.Exec(`UPDATE history SET date = ? WHERE description = ? AND date = ?;`, newDate, description, oldDate)
	if err != nil {
		s.log.Error("change completion date failed", "description", description, "err", err)
		return fmt.Errorf("change completion %q %s: %w", description, oldDate, err)
	}
	s.log.Debug("completion date changed", "description", description, "old", oldDate, "new", newDate)
	return nil
}

func (s *Store) RemoveCompletion(description, date string) error {
	_, err := s.db.Exec(`DELETE FROM history WHERE description = ? AND date = ?;`, description, date)
	if err != nil {
		s.log.Error("remove completion failed", "description", description, "err", err)
		return fmt.Errorf("remove completion %q %s: %w", description, date, err)
	}
	s.log.Debug("completion removed", "description", description, "date", date)
	return nil
}

// History lists completions of one task, newest first.
func (s *Store) History(description string) ([]Completion, error) {
	return s.queryHistory(`SELECT description, date, category FROM history WHERE description = ? ORDER BY date DESC;`, description)
}

// CompletedBetween lists completions in the inclusive range.
func (s *Store) CompletedBetween(start, end string) ([]Completion, error) {
	return s.queryHistory(`SELECT description, date, category FROM history WHERE date >= ? AND date <= ? ORDER BY date, description;`, start, end)
}

func (s *Store) queryHistory(query string, args ...any) ([]Completion, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Completion
	for rows.Next() {
		var c Completion
		var category sql.NullString
		if err := rows.Scan(&c.Description, &c.Date, &category); err != nil {
			return nil, err
		}
		c.Category = category.String
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
