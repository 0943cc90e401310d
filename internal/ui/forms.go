package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"routine/internal/locale"
	"routine/internal/recurrence"
	"routine/internal/tracker"
)

// form is a list of labelled text fields edited one at a time through the
// shared input.
type form struct {
	labels      []string
	values      []string
	suggestions [][]string
	index       int
}

func (f *form) setCurrent(v string) {
	f.values[f.index] = v
}

func (f form) current() string {
	return f.values[f.index]
}

const (
	addDescription = iota
	addCategory
	addFreq
	addUnit
	addTrack
	addDue
)

const (
	lookDirection = iota
	lookQty
	lookUnit
	lookFrom
	lookTo
)

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	descs, cats, err := m.tr.Suggestions()
	if err != nil {
		m.fail(locale.LoadFailed, err)
	}
	m.form = &form{
		labels: []string{
			m.loc.T(locale.Description),
			m.loc.T(locale.Category),
			m.loc.T(locale.Frequency),
			m.loc.T(locale.RepeatEvery),
			m.loc.T(locale.TrackHistory),
			m.loc.T(locale.InitiallyDue) + " (" + m.loc.Layout.Explain() + ")",
		},
		values:      []string{"", "", "1", m.unitName(recurrence.Weeks), m.loc.T(locale.Yes), m.tr.TodayText()},
		suggestions: [][]string{descs, cats, nil, m.unitNames(), {m.loc.T(locale.Yes), m.loc.T(locale.No)}, nil},
	}
	m.mode = modeAdd
	return m, m.focusField()
}

func (m Model) openLookForm() (tea.Model, tea.Cmd) {
	m.form = &form{
		labels: []string{
			m.loc.T(locale.Look),
			m.loc.T(locale.Frequency),
			m.loc.T(locale.RepeatEvery),
			m.loc.T(locale.From) + " (" + m.loc.Layout.Explain() + ")",
			m.loc.T(locale.To) + " (" + m.loc.Layout.Explain() + ")",
		},
		values: []string{m.loc.T(locale.Ahead), "1", m.unitName(recurrence.Weeks), "", ""},
		suggestions: [][]string{
			{m.loc.T(locale.Ahead), m.loc.T(locale.Back)},
			nil,
			{m.unitName(recurrence.Days), m.unitName(recurrence.Weeks), m.unitName(recurrence.Months)},
			nil,
			nil,
		},
	}
	m.mode = modeLook
	return m, m.focusField()
}

func (m *Model) focusField() tea.Cmd {
	m.input.SetValue(m.form.current())
	m.input.SetSuggestions(m.form.suggestions[m.form.index])
	m.input.Placeholder = m.form.labels[m.form.index]
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = modeToday
	m.input.SetValue("")
	m.input.SetSuggestions(nil)
	m.input.Blur()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeToday
		return m, nil
	}
	switch msg.String() {
	case m.keys.Cancel, "esc":
		m.closeForm()
		m.reloadToday()
		return m, nil
	case "tab", "down":
		m.form.setCurrent(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(m.form.values))
		return m, m.focusField()
	case "shift+tab", "up":
		m.form.setCurrent(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(m.form.values))
		return m, m.focusField()
	case m.keys.Confirm, "enter":
		m.form.setCurrent(m.input.Value())
		if m.form.index < len(m.form.values)-1 {
			m.form.index++
			return m, m.focusField()
		}
		if m.mode == modeLook {
			return m.submitLook()
		}
		return m.submitAdd()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	v := m.form.values
	freq, err := strconv.Atoi(strings.TrimSpace(v[addFreq]))
	if err != nil {
		m.setStatus(m.loc.T(locale.InvalidFrequency), true)
		return m, nil
	}
	unit, err := m.parseUnit(v[addUnit])
	if err != nil {
		m.setStatus(m.loc.T(locale.InvalidFrequency), true)
		return m, nil
	}
	err = m.tr.SubmitNewTask(tracker.NewTask{
		Description:  v[addDescription],
		Category:     v[addCategory],
		Freq:         freq,
		Unit:         unit,
		TrackHistory: m.parseYN(v[addTrack]),
		InitialDue:   v[addDue],
	})
	if err != nil {
		m.fail(locale.AddFailed, err)
		return m, nil
	}
	m.closeForm()
	m.reloadToday()
	m.succeed(locale.Add)
	return m, nil
}

func (m Model) submitLook() (tea.Model, tea.Cmd) {
	v := m.form.values
	var (
		w   tracker.Window
		err error
	)
	from, to := strings.TrimSpace(v[lookFrom]), strings.TrimSpace(v[lookTo])
	if from != "" || to != "" {
		w, err = m.tr.Between(from, to)
		if err == nil {
			m.rangeHeading = fmt.Sprintf("%s %s %s %s", m.loc.T(locale.From), from, m.loc.T(locale.To), to)
		}
	} else {
		w, err = m.simpleWindow(v[lookDirection], v[lookQty], v[lookUnit])
	}
	if err != nil {
		m.fail(locale.LoadFailed, err)
		return m, nil
	}

	m.closeForm()
	m.window = w
	m.mode = modeRange
	m.reloadRange()
	return m, nil
}

func (m *Model) simpleWindow(dirText, qtyText, unitText string) (tracker.Window, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(qtyText))
	if err != nil {
		return tracker.Window{}, fmt.Errorf("%w: %q", tracker.ErrInvalidLookAmount, qtyText)
	}
	unit, err := m.parseUnit(unitText)
	if err != nil {
		return tracker.Window{}, fmt.Errorf("%w: %v", tracker.ErrInvalidFrequency, err)
	}
	dir := tracker.Ahead
	if isWord(dirText, "back", m.loc.T(locale.Back)) {
		dir = tracker.Back
	}
	w, err := m.tr.Look(dir, qty, unit)
	if err != nil {
		return tracker.Window{}, err
	}
	m.rangeHeading = fmt.Sprintf("%s %s %d %s", m.loc.T(locale.Look), m.loc.T(localeDirection(dir)), qty, m.unitName(unit))
	return w, nil
}

func localeDirection(d tracker.Direction) locale.Key {
	if d == tracker.Back {
		return locale.Back
	}
	return locale.Ahead
}

var unitKeys = map[recurrence.Unit]locale.Key{
	recurrence.Days:     locale.Days,
	recurrence.Weeks:    locale.Weeks,
	recurrence.Months:   locale.Months,
	recurrence.Years:    locale.Years,
	recurrence.NoRepeat: locale.NoRepeat,
}

func (m Model) unitName(u recurrence.Unit) string {
	if k, ok := unitKeys[u]; ok {
		return m.loc.T(k)
	}
	return string(u)
}

func (m Model) unitNames() []string {
	names := make([]string, 0, len(unitKeys))
	for _, u := range recurrence.Units() {
		names = append(names, m.unitName(u))
	}
	return names
}

// parseUnit accepts a localized unit name or a stored one.
func (m Model) parseUnit(v string) (recurrence.Unit, error) {
	v = strings.TrimSpace(v)
	for _, u := range recurrence.Units() {
		if strings.EqualFold(v, m.unitName(u)) {
			return u, nil
		}
	}
	return recurrence.ParseUnit(v)
}

// parseFrequency reads "<count> <unit>", e.g. "2 weeks".
func (m Model) parseFrequency(v string) (int, recurrence.Unit, error) {
	fields := strings.Fields(v)
	if len(fields) < 2 {
		return 0, "", fmt.Errorf("%w: %q", tracker.ErrInvalidFrequency, v)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", tracker.ErrInvalidFrequency, v)
	}
	unit, err := m.parseUnit(strings.Join(fields[1:], " "))
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", tracker.ErrInvalidFrequency, err)
	}
	return n, unit, nil
}

func (m Model) parseYN(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "1" || v == "true" || isWord(v, "yes", m.loc.T(locale.Yes))
}

func isWord(v string, words ...string) bool {
	v = strings.TrimSpace(v)
	for _, w := range words {
		if strings.EqualFold(v, w) {
			return true
		}
	}
	return false
}

func (m Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	for i, label := range m.form.labels {
		if i == m.form.index {
			b.WriteString(fmt.Sprintf("> %-28s: %s\n", label, m.input.View()))
			continue
		}
		b.WriteString(fmt.Sprintf("  %-28s: %s\n", label, emptyPlaceholder(m.form.values[i])))
	}
	return b.String()
}
