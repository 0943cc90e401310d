package ui

import "routine/internal/tracker"

// entry is a listed row plus the date an action on it will use.
type entry struct {
	row      tracker.Row
	date     string
	selected bool
}

type rowList struct {
	entries []entry
	cursor  int
}

// newRowList seeds each entry's action date. Today's list uses today's date;
// history uses the completion date itself.
func newRowList(rows []tracker.Row, date func(tracker.Row) string) rowList {
	l := rowList{entries: make([]entry, 0, len(rows))}
	for _, r := range rows {
		l.entries = append(l.entries, entry{row: r, date: date(r)})
	}
	return l
}

func (l *rowList) move(delta int) {
	l.cursor = clampCursor(l.cursor+delta, len(l.entries))
}

func (l *rowList) toggle() {
	if len(l.entries) == 0 {
		return
	}
	l.entries[l.cursor].selected = !l.entries[l.cursor].selected
}

func (l *rowList) setDate(v string) {
	if len(l.entries) == 0 {
		return
	}
	l.entries[l.cursor].date = v
}

func (l rowList) current() (entry, bool) {
	if len(l.entries) == 0 {
		return entry{}, false
	}
	return l.entries[clampCursor(l.cursor, len(l.entries))], true
}

// targets returns the checked entries, or the one under the cursor when
// nothing is checked.
func (l rowList) targets() []entry {
	var out []entry
	for _, e := range l.entries {
		if e.selected {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		if e, ok := l.current(); ok {
			out = append(out, e)
		}
	}
	return out
}

func (l rowList) selections() []tracker.Selection {
	targets := l.targets()
	sel := make([]tracker.Selection, 0, len(targets))
	for _, e := range targets {
		sel = append(sel, tracker.Selection{Description: e.row.Description, Category: e.row.Category, Date: e.date})
	}
	return sel
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
