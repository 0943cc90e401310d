package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"routine/internal/config"
	"routine/internal/locale"
	"routine/internal/tracker"
)

type mode int

const (
	modeToday mode = iota
	modeAdd
	modeLook
	modeRange
	modeTasks
	modeDetail
)

// promptKind names what the single-line input is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptRowDate
	promptDue
	promptFreq
	promptCategory
	promptHistDate
	promptFilter
)

type Model struct {
	tr     *tracker.Tracker
	loc    locale.Locale
	keys   config.Keymap
	mode   mode
	input  textinput.Model
	help   help.Model
	prompt promptKind
	status string
	failed bool

	due          rowList
	done         []tracker.Row
	window       tracker.Window
	rangeHeading string

	form *form

	tasks      []tracker.TaskRow
	filter     string
	taskCursor int

	detail       *tracker.TaskView
	history      rowList
	confirmPurge bool
}

func New(tr *tracker.Tracker, keys config.Keymap, loc locale.Locale) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.ShowSuggestions = true
	ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+y"))

	m := Model{
		tr:    tr,
		loc:   loc,
		keys:  keys,
		mode:  modeToday,
		input: ti,
		help:  help.New(),
	}
	m.reloadToday()
	return m
}

func Run(tr *tracker.Tracker, cfg config.Config, loc locale.Locale) error {
	program := tea.NewProgram(New(tr, cfg.Keys, loc))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirmPurge {
			return m.updatePurgeConfirm(msg.String())
		}
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		switch m.mode {
		case modeAdd, modeLook:
			return m.updateForm(msg)
		case modeRange:
			return m.updateRange(msg.String())
		case modeTasks:
			return m.updateTasks(msg.String())
		case modeDetail:
			return m.updateDetail(msg.String())
		default:
			return m.updateToday(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) updateToday(k string) (tea.Model, tea.Cmd) {
	if handled, cmd := m.updateDueRows(k); handled {
		return m, cmd
	}
	switch k {
	case m.keys.Quit:
		return m, tea.Quit
	case m.keys.Add:
		return m.openAddForm()
	case m.keys.Look:
		return m.openLookForm()
	case m.keys.Tasks:
		return m.openTasks()
	}
	return m, nil
}

func (m Model) updateRange(k string) (tea.Model, tea.Cmd) {
	if handled, cmd := m.updateDueRows(k); handled {
		return m, cmd
	}
	switch k {
	case m.keys.Cancel, m.keys.Quit:
		m.mode = modeToday
		m.reloadToday()
	}
	return m, nil
}

// updateDueRows handles the keys shared by the today list and the due part
// of the range view.
func (m *Model) updateDueRows(k string) (bool, tea.Cmd) {
	switch k {
	case m.keys.Down, "down":
		m.due.move(1)
	case m.keys.Up, "up":
		m.due.move(-1)
	case m.keys.Select:
		m.due.toggle()
	case m.keys.Edit:
		e, ok := m.due.current()
		if !ok {
			return true, nil
		}
		return true, m.startPrompt(promptRowDate, e.date, nil)
	case m.keys.Complete:
		if len(m.due.entries) == 0 {
			return true, nil
		}
		errs := m.tr.MarkCompleteAll(m.due.selections())
		m.reportRows(locale.MarkCompleted, locale.MarkCompleteFailed, errs)
		m.reloadDue()
	case m.keys.Snooze:
		if len(m.due.entries) == 0 {
			return true, nil
		}
		errs := m.tr.SnoozeAll(m.due.selections())
		m.reportRows(locale.Snooze, locale.SnoozeFailed, errs)
		m.reloadDue()
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) reloadDue() {
	if m.mode == modeRange {
		m.reloadRange()
		return
	}
	m.reloadToday()
}

func (m *Model) reloadToday() {
	rows, err := m.tr.Today()
	if err != nil {
		m.fail(locale.LoadFailed, err)
		return
	}
	today := m.tr.TodayText()
	m.due = newRowList(rows, func(tracker.Row) string { return today })
}

func (m *Model) reloadRange() {
	view, err := m.tr.Range(m.window)
	if err != nil {
		m.fail(locale.LoadFailed, err)
		return
	}
	today := m.tr.TodayText()
	m.due = newRowList(view.Due, func(tracker.Row) string { return today })
	m.done = view.Completed
}

func (m *Model) startPrompt(kind promptKind, value string, suggestions []string) tea.Cmd {
	m.prompt = kind
	m.input.SetValue(value)
	m.input.SetSuggestions(suggestions)
	m.input.Placeholder = m.promptLabel()
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) endPrompt() {
	m.prompt = promptNone
	m.input.SetValue("")
	m.input.SetSuggestions(nil)
	m.input.Blur()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.keys.Cancel, "esc":
		m.endPrompt()
		return m, nil
	case m.keys.Confirm, "enter":
		kind, value := m.prompt, strings.TrimSpace(m.input.Value())
		m.endPrompt()
		m.applyPrompt(kind, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyPrompt(kind promptKind, value string) {
	switch kind {
	case promptRowDate:
		if _, err := m.loc.Layout.Parse(value); err != nil {
			m.setStatus(m.loc.InvalidDateMessage(), true)
			return
		}
		m.due.setDate(value)
		m.setStatus("", false)
	case promptFilter:
		m.filter = value
		m.taskCursor = 0
	default:
		m.applyDetailPrompt(kind, value)
	}
}

func (m Model) promptLabel() string {
	switch m.prompt {
	case promptRowDate:
		return m.loc.T(locale.CompletedOrPushBack) + " (" + m.loc.Layout.Explain() + ")"
	case promptDue:
		return m.loc.T(locale.ChangeDueDate) + " (" + m.loc.Layout.Explain() + ")"
	case promptFreq:
		return m.loc.T(locale.RepeatEvery)
	case promptCategory:
		return m.loc.T(locale.Category)
	case promptHistDate:
		return m.loc.T(locale.ChangeDate) + " (" + m.loc.Layout.Explain() + ")"
	case promptFilter:
		return m.loc.T(locale.EditSearch)
	}
	return ""
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}

func (m *Model) succeed(op locale.Key) {
	m.setStatus(m.loc.T(op)+": "+m.loc.T(locale.Success), false)
}

func (m *Model) fail(op locale.Key, err error) {
	m.setStatus(m.errText(op, err), true)
}

// reportRows summarizes a bulk action, naming each row that failed.
func (m *Model) reportRows(op, failed locale.Key, errs []tracker.RowError) {
	if len(errs) == 0 {
		m.succeed(op)
		return
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Description+": "+m.errText(failed, e.Err))
	}
	m.setStatus(strings.Join(parts, "\n"), true)
}

func (m Model) errText(op locale.Key, err error) string {
	switch {
	case errors.Is(err, tracker.ErrInvalidDate):
		return m.loc.InvalidDateMessage()
	case errors.Is(err, tracker.ErrCollision):
		return m.loc.T(locale.DescriptionTaken)
	case errors.Is(err, tracker.ErrApostrophe):
		return m.loc.T(locale.NoApostrophes)
	case errors.Is(err, tracker.ErrInvalidFrequency), errors.Is(err, tracker.ErrInvalidLookAmount):
		return m.loc.T(locale.InvalidFrequency)
	case errors.Is(err, tracker.ErrTrackingLookup):
		return m.loc.T(locale.TrackingFailed)
	case errors.Is(err, tracker.ErrStartAfterEnd):
		return m.loc.T(locale.StartBeforeEnd)
	}
	var dbe *tracker.DatabaseError
	if errors.As(err, &dbe) {
		return fmt.Sprintf("%s %s (%v)", m.loc.T(op), m.loc.T(locale.DatabaseError), dbe.Err)
	}
	return fmt.Sprintf("%s (%v)", m.loc.T(op), err)
}
