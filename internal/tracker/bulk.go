package tracker

// Selection is one checked row in a list. Date is the row's date as displayed
// or entered; NewDate is only used when editing completions.
type Selection struct {
	Description string
	Category    string
	Date        string
	NewDate     string
}

// MarkCompleteAll completes each selected row with its own entered date.
// A failing row does not stop the rest.
func (t *Tracker) MarkCompleteAll(sel []Selection) []RowError {
	return t.each(sel, func(s Selection) error {
		return t.MarkComplete(s.Description, s.Date, s.Category)
	})
}

func (t *Tracker) SnoozeAll(sel []Selection) []RowError {
	return t.each(sel, func(s Selection) error {
		return t.Snooze(s.Description, s.Date)
	})
}

// ChangeCompletionDates moves each selected history entry from Date to NewDate.
func (t *Tracker) ChangeCompletionDates(sel []Selection) []RowError {
	return t.each(sel, func(s Selection) error {
		return t.ChangeCompletionDate(s.Description, s.Date, s.NewDate)
	})
}

func (t *Tracker) RemoveCompletions(sel []Selection) []RowError {
	return t.each(sel, func(s Selection) error {
		return t.RemoveCompletion(s.Description, s.Date)
	})
}

func (t *Tracker) each(sel []Selection, fn func(Selection) error) []RowError {
	var errs []RowError
	for _, s := range sel {
		if err := fn(s); err != nil {
			t.log.Warn("row failed", "description", s.Description, "err", err)
			errs = append(errs, RowError{Description: s.Description, Err: err})
		}
	}
	return errs
}
