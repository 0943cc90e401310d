package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"routine/internal/locale"
	"routine/internal/tracker"
)

func (m Model) openTasks() (tea.Model, tea.Cmd) {
	tasks, err := m.tr.Tasks()
	if err != nil {
		m.fail(locale.LoadFailed, err)
		return m, nil
	}
	m.tasks = tasks
	m.taskCursor = clampCursor(m.taskCursor, len(m.visibleTasks()))
	m.detail = nil
	m.mode = modeTasks
	return m, nil
}

// visibleTasks applies the search filter to description and category.
func (m Model) visibleTasks() []tracker.TaskRow {
	if m.filter == "" {
		return m.tasks
	}
	needle := strings.ToLower(m.filter)
	var out []tracker.TaskRow
	for _, t := range m.tasks {
		if strings.Contains(strings.ToLower(t.Description), needle) || strings.Contains(strings.ToLower(t.Category), needle) {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) updateTasks(k string) (tea.Model, tea.Cmd) {
	visible := m.visibleTasks()
	switch k {
	case m.keys.Down, "down":
		m.taskCursor = clampCursor(m.taskCursor+1, len(visible))
	case m.keys.Up, "up":
		m.taskCursor = clampCursor(m.taskCursor-1, len(visible))
	case m.keys.Edit, "/":
		descs, _, _ := m.tr.Suggestions()
		return m, m.startPrompt(promptFilter, m.filter, descs)
	case m.keys.Confirm, "enter":
		if len(visible) == 0 {
			return m, nil
		}
		return m.openDetail(visible[clampCursor(m.taskCursor, len(visible))].Description)
	case m.keys.Add:
		return m.openAddForm()
	case m.keys.Cancel:
		if m.filter != "" {
			m.filter = ""
			m.taskCursor = 0
			return m, nil
		}
		m.mode = modeToday
		m.reloadToday()
	case m.keys.Quit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) openDetail(description string) (tea.Model, tea.Cmd) {
	m.mode = modeDetail
	m.reloadDetail(description)
	return m, nil
}

func (m *Model) reloadDetail(description string) {
	view, err := m.tr.Detail(description)
	if err != nil {
		m.fail(locale.LoadFailed, err)
		return
	}
	m.detail = &view
	hist, err := m.tr.History(description)
	if err != nil {
		m.fail(locale.LoadFailed, err)
		return
	}
	cursor := m.history.cursor
	m.history = newRowList(hist, func(r tracker.Row) string { return r.Date })
	m.history.cursor = clampCursor(cursor, len(m.history.entries))
}

func (m Model) updateDetail(k string) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		return m.openTasks()
	}
	d := m.detail
	switch k {
	case m.keys.Down, "down":
		m.history.move(1)
	case m.keys.Up, "up":
		m.history.move(-1)
	case m.keys.Select:
		m.history.toggle()
	case m.keys.Due:
		due := d.DueDate
		if due == "" {
			due = m.tr.TodayText()
		}
		return m, m.startPrompt(promptDue, due, nil)
	case m.keys.Freq:
		return m, m.startPrompt(promptFreq, fmt.Sprintf("%d %s", d.Freq, m.unitName(d.Unit)), m.unitNames())
	case m.keys.Category:
		_, cats, _ := m.tr.Suggestions()
		return m, m.startPrompt(promptCategory, d.Category, cats)
	case m.keys.Unsched:
		if err := m.tr.RemoveFromUpcoming(d.Description); err != nil {
			m.fail(locale.RemoveUpcomingFail, err)
			return m, nil
		}
		m.succeed(locale.RemoveFromUpcoming)
		m.reloadDetail(d.Description)
	case m.keys.Edit:
		e, ok := m.history.current()
		if !ok {
			return m, nil
		}
		return m, m.startPrompt(promptHistDate, e.row.Date, nil)
	case m.keys.Remove:
		if len(m.history.entries) == 0 {
			return m, nil
		}
		errs := m.tr.RemoveCompletions(m.history.selections())
		m.reportRows(locale.Remove, locale.RemoveHistFailed, errs)
		m.reloadDetail(d.Description)
	case m.keys.Purge:
		m.confirmPurge = true
		m.setStatus(m.loc.T(locale.PurgeWarn), false)
	case m.keys.Cancel:
		return m.openTasks()
	case m.keys.Quit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) applyDetailPrompt(kind promptKind, value string) {
	if m.detail == nil {
		return
	}
	desc := m.detail.Description
	switch kind {
	case promptDue:
		if err := m.tr.ChangeDueDate(desc, value, m.detail.Category); err != nil {
			m.fail(locale.ChangeDueDateFail, err)
			return
		}
		m.succeed(locale.ChangeDueDate)
	case promptFreq:
		n, unit, err := m.parseFrequency(value)
		if err == nil {
			err = m.tr.ChangeFrequency(desc, n, unit)
		}
		if err != nil {
			m.fail(locale.FreqFailed, err)
			return
		}
		m.succeed(locale.ChangeFreq)
	case promptCategory:
		if err := m.tr.ChangeCategory(desc, value); err != nil {
			m.fail(locale.ChangeCategoryFail, err)
			return
		}
		m.succeed(locale.ChangeCategory)
	case promptHistDate:
		sel := m.history.selections()
		for i := range sel {
			sel[i].NewDate = value
		}
		m.reportRows(locale.ChangeDate, locale.EditHistFailed, m.tr.ChangeCompletionDates(sel))
	}
	m.reloadDetail(desc)
}

func (m Model) updatePurgeConfirm(k string) (tea.Model, tea.Cmd) {
	m.confirmPurge = false
	if m.detail == nil {
		return m, nil
	}
	switch strings.ToLower(k) {
	case "y", "s":
		if err := m.tr.Purge(m.detail.Description); err != nil {
			m.fail(locale.PurgeFailed, err)
			return m, nil
		}
		next, cmd := m.openTasks()
		nm := next.(Model)
		nm.setStatus(m.loc.T(locale.PurgeSuccess), false)
		return nm, cmd
	default:
		m.setStatus("", false)
		return m, nil
	}
}
