package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"routine/internal/locale"
	"routine/internal/recurrence"
	"routine/internal/tracker"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (m Model) View() string {
	var b strings.Builder

	switch m.mode {
	case modeAdd:
		b.WriteString(titleStyle.Render(m.loc.T(locale.Add)))
		b.WriteString("\n\n")
		b.WriteString(m.renderForm())
	case modeLook:
		b.WriteString(titleStyle.Render(m.loc.T(locale.LookAheadBack)))
		b.WriteString("\n\n")
		b.WriteString(m.renderForm())
	case modeRange:
		b.WriteString(m.renderRange())
	case modeTasks:
		b.WriteString(m.renderTasks())
	case modeDetail:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(titleStyle.Render(m.loc.T(locale.TodayHeading)))
		b.WriteString("\n\n")
		if len(m.due.entries) == 0 {
			b.WriteString(m.loc.T(locale.NoItemsDue))
			b.WriteString("\n")
		} else {
			b.WriteString(m.renderDueRows())
		}
	}

	if m.prompt != promptNone {
		b.WriteString("\n")
		b.WriteString(m.promptLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.failed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.helpBindings()))
	return b.String()
}

func bind(k, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(k), key.WithHelp(selectKeyName(k), desc))
}

func (m Model) helpBindings() []key.Binding {
	k := m.keys
	t := m.loc.T
	move := key.NewBinding(key.WithKeys(k.Up, k.Down), key.WithHelp(k.Up+"/"+k.Down, "move"))
	switch m.mode {
	case modeAdd, modeLook:
		return []key.Binding{
			key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab/shift+tab", "move")),
			bind(k.Confirm, t(locale.Submit)),
			bind("ctrl+y", "accept suggestion"),
			bind(k.Cancel, t(locale.Back)),
		}
	case modeTasks:
		return []key.Binding{move, bind(k.Confirm, "open"), bind(k.Edit, t(locale.EditSearch)), bind(k.Add, t(locale.Add)), bind(k.Cancel, t(locale.Back))}
	case modeDetail:
		return []key.Binding{
			bind(k.Due, t(locale.ChangeDueDate)),
			bind(k.Freq, t(locale.ChangeFreq)),
			bind(k.Category, t(locale.ChangeCategory)),
			bind(k.Unsched, t(locale.RemoveFromUpcoming)),
			move,
			bind(k.Select, "select"),
			bind(k.Edit, t(locale.ChangeDate)),
			bind(k.Remove, t(locale.Remove)),
			bind(k.Purge, t(locale.PurgeItem)),
			bind(k.Cancel, t(locale.Back)),
		}
	}
	rows := []key.Binding{
		move,
		bind(k.Select, "select"),
		bind(k.Edit, t(locale.CompletedOrPushBack)),
		bind(k.Complete, t(locale.MarkCompleted)),
		bind(k.Snooze, t(locale.Snooze)),
	}
	if m.mode == modeRange {
		return append(rows, bind(k.Cancel, t(locale.Back)))
	}
	return append(rows,
		bind(k.Add, t(locale.Add)),
		bind(k.Look, t(locale.LookAheadBack)),
		bind(k.Tasks, t(locale.EditSearch)),
		bind(k.Quit, "quit"),
	)
}

func selectKeyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (m Model) renderDueRows() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("    %-28s %-12s %-12s %s",
		m.loc.T(locale.Description), m.loc.T(locale.Due), m.loc.T(locale.CompletedOrPushBack), m.loc.T(locale.Category))))
	b.WriteString("\n")
	for i, e := range m.due.entries {
		line := fmt.Sprintf("%s %-28s %-12s %-12s %s", checkbox(e.selected), e.row.Description, e.row.Date, e.date, e.row.Category)
		b.WriteString(m.cursorLine(line, i == m.due.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRange() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.rangeHeading))
	b.WriteString("\n\n")
	if len(m.due.entries) == 0 && len(m.done) == 0 {
		b.WriteString(m.loc.T(locale.NoItemsInRange))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(headerStyle.Render(m.loc.T(locale.ItemsDueInRange)))
	b.WriteString("\n")
	if len(m.due.entries) == 0 {
		b.WriteString(dimStyle.Render(m.loc.T(locale.NoItemsInRange)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderDueRows())
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(m.loc.T(locale.ItemsDoneInRange)))
	b.WriteString("\n")
	if len(m.done) == 0 {
		b.WriteString(dimStyle.Render(m.loc.T(locale.NoHistInRange)))
		b.WriteString("\n")
	}
	for _, r := range m.done {
		b.WriteString(fmt.Sprintf("    %-28s %-12s %s\n", r.Description, r.Date, r.Category))
	}
	return b.String()
}

func (m Model) renderTasks() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.loc.T(locale.Tasks)))
	if m.filter != "" {
		b.WriteString(dimStyle.Render(" /" + m.filter))
	}
	b.WriteString("\n\n")
	visible := m.visibleTasks()
	if len(visible) == 0 {
		b.WriteString(m.loc.T(locale.NoItemsInRange))
		b.WriteString("\n")
		return b.String()
	}
	for i, t := range visible {
		line := fmt.Sprintf("%-28s %-14s %s", t.Description, t.Category, m.repeatText(t))
		b.WriteString(m.cursorLine(line, i == m.taskCursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	d := m.detail
	due := d.DueDate
	if due == "" {
		due = m.loc.T(locale.NotDue)
	}
	track := m.loc.T(locale.No)
	if d.TrackHistory {
		track = m.loc.T(locale.Yes)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Description))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%-16s: %s\n", m.loc.T(locale.Due), due))
	b.WriteString(fmt.Sprintf("%-16s: %s\n", m.loc.T(locale.RepeatEvery), m.repeatText(d.TaskRow)))
	b.WriteString(fmt.Sprintf("%-16s: %s\n", m.loc.T(locale.Category), emptyPlaceholder(d.Category)))
	b.WriteString(fmt.Sprintf("%-16s: %s\n", m.loc.T(locale.TrackHistory), track))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(m.loc.T(locale.History)))
	b.WriteString("\n")
	if len(m.history.entries) == 0 {
		b.WriteString(dimStyle.Render("-"))
		b.WriteString("\n")
	}
	for i, e := range m.history.entries {
		line := fmt.Sprintf("%s %s %-12s %s", checkbox(e.selected), m.loc.T(locale.CompletedOn), e.row.Date, e.row.Category)
		b.WriteString(m.cursorLine(line, i == m.history.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) repeatText(t tracker.TaskRow) string {
	if t.Unit == recurrence.NoRepeat {
		return m.loc.T(locale.NoRepeat)
	}
	return fmt.Sprintf("%d %s", t.Freq, m.unitName(t.Unit))
}

func (m Model) cursorLine(line string, active bool) string {
	if active && m.prompt == promptNone {
		return cursorStyle.Render("> " + line)
	}
	return "  " + line
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
