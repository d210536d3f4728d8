// Package tui provides the embeddable autocomplete input control for fault
// entry: debounced suggestion queries, keyboard navigation and fuzzy match
// highlighting, built as a bubbletea model.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inspectd/faultserve/pkg/suggest"
)

// DefaultDebounce is the idle window after the last keystroke before a
// suggestion computation runs.
const DefaultDebounce = 150 * time.Millisecond

// State is the control's dropdown state.
type State int

const (
	// StateClosed - dropdown hidden.
	StateClosed State = iota
	// StateLoading - open, waiting on the debounce window.
	StateLoading
	// StateResults - open with at least one candidate.
	StateResults
	// StateEmpty - open, computation returned zero matches. Reserved for
	// "computed nothing", never for "no query".
	StateEmpty
)

// debounceMsg fires when a debounce window elapses. The sequence number
// cancels stale windows: only the newest keystroke's message survives.
type debounceMsg struct{ seq int }

// Styles are the control's lipgloss style overrides.
type Styles struct {
	Item        lipgloss.Style
	ActiveItem  lipgloss.Style
	Match       lipgloss.Style
	ActiveMatch lipgloss.Style
	Empty       lipgloss.Style
}

// DefaultStyles returns the stock look.
func DefaultStyles() Styles {
	return Styles{
		Item:        lipgloss.NewStyle().PaddingLeft(2),
		ActiveItem:  lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("75")),
		Match:       lipgloss.NewStyle().Bold(true).Underline(true),
		ActiveMatch: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("75")),
		Empty:       lipgloss.NewStyle().PaddingLeft(2).Faint(true),
	}
}

// QueryFunc computes suggestions for a section and raw query.
type QueryFunc func(section, query string, limit int) []string

// Model is the autocomplete input control. The host owns the value through
// Value/SetValue, receives edits via OnChange and committed candidates via
// OnSelect, and reports outside pointer-downs by calling Blur.
type Model struct {
	Input    textinput.Model
	OnChange func(text string)
	OnSelect func(text string)
	Disabled bool
	Styles   Styles

	// Query computes candidates; injected so tests can count computations.
	Query QueryFunc

	section    string
	limit      int
	maxVisible int
	debounce   time.Duration

	state    State
	results  []string
	active   int
	seq      int
	computes int
}

// New creates the control bound to an engine section.
func New(engine *suggest.Engine, section string) Model {
	input := textinput.New()
	input.Placeholder = "Describe the fault..."
	input.Focus()

	m := Model{
		Input:      input,
		Styles:     DefaultStyles(),
		section:    section,
		maxVisible: 8,
		debounce:   DefaultDebounce,
	}
	if engine != nil {
		m.Query = engine.GetSuggestions
	}
	return m
}

// SetDebounce overrides the debounce window; non-positive keeps the default.
func (m *Model) SetDebounce(d time.Duration) {
	if d > 0 {
		m.debounce = d
	}
}

// SetLimit overrides the per-query candidate limit; 0 uses the engine default.
func (m *Model) SetLimit(limit int) { m.limit = limit }

// SetMaxVisible bounds how many rows the dropdown renders.
func (m *Model) SetMaxVisible(n int) {
	if n > 0 {
		m.maxVisible = n
	}
}

// Value returns the current typed text.
func (m Model) Value() string { return m.Input.Value() }

// SetValue replaces the typed text without opening the dropdown.
func (m *Model) SetValue(text string) {
	m.Input.SetValue(text)
	m.Input.CursorEnd()
}

// State returns the dropdown state.
func (m Model) State() State { return m.state }

// Results returns the current candidate list.
func (m Model) Results() []string { return m.results }

// ActiveIndex returns the keyboard cursor position in the candidate list.
func (m Model) ActiveIndex() int { return m.active }

// ComputeCount returns how many suggestion computations have run. Test hook.
func (m Model) ComputeCount() int { return m.computes }

// Init returns the control's initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Focus gives the input focus; a non-blank value re-opens the dropdown
// through a fresh debounce window.
func (m *Model) Focus() tea.Cmd {
	cmd := m.Input.Focus()
	if strings.TrimSpace(m.Input.Value()) != "" {
		return tea.Batch(cmd, m.scheduleQuery())
	}
	return cmd
}

// Blur closes the dropdown without altering the typed text. The host calls
// this on pointer-down outside the control's root and on teardown; bumping
// the sequence abandons any in-flight debounce window.
func (m *Model) Blur() {
	m.seq++
	m.closeDropdown()
	m.Input.Blur()
}

// Update is the control's message loop.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.Disabled {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case debounceMsg:
		// Only the window scheduled by the final keystroke in a burst may
		// compute; earlier windows died when seq moved on.
		if msg.seq != m.seq {
			return m, nil
		}
		m.compute()
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.seq++
		m.closeDropdown()
		return m, nil

	case tea.KeyDown:
		if m.state == StateResults && len(m.results) > 0 {
			m.active = (m.active + 1) % len(m.results)
		}
		return m, nil

	case tea.KeyUp:
		if m.state == StateResults && len(m.results) > 0 {
			m.active = (m.active - 1 + len(m.results)) % len(m.results)
		}
		return m, nil

	case tea.KeyEnter:
		if m.state == StateResults && m.active < len(m.results) {
			return m.commit(m.results[m.active])
		}
		return m, nil
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.onEdit())
}

// onEdit reacts to the typed value changing: notifies the host, cancels any
// pending window, and either closes on blank or schedules a fresh query.
func (m *Model) onEdit() tea.Cmd {
	value := m.Input.Value()
	if m.OnChange != nil {
		m.OnChange(value)
	}
	if strings.TrimSpace(value) == "" {
		// Blank never opens the dropdown; bump seq so a pending window
		// cannot resurrect stale results.
		m.seq++
		m.closeDropdown()
		return nil
	}
	return m.scheduleQuery()
}

// scheduleQuery opens the control in its loading state and starts a new
// debounce window, invalidating any previous one.
func (m *Model) scheduleQuery() tea.Cmd {
	m.seq++
	m.state = StateLoading
	seq := m.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// compute runs the synchronous suggestion computation for the current value.
func (m *Model) compute() {
	query := m.Input.Value()
	if strings.TrimSpace(query) == "" || m.Query == nil {
		m.closeDropdown()
		return
	}
	m.results = m.Query(m.section, query, m.limit)
	m.computes++
	m.active = 0
	if len(m.results) == 0 {
		m.state = StateEmpty
	} else {
		m.state = StateResults
	}
}

// commit applies a selected candidate: callbacks fire with the exact text,
// the dropdown closes, and focus returns to the input.
func (m Model) commit(text string) (Model, tea.Cmd) {
	m.Input.SetValue(text)
	m.Input.CursorEnd()
	if m.OnChange != nil {
		m.OnChange(text)
	}
	if m.OnSelect != nil {
		m.OnSelect(text)
	}
	m.seq++
	m.closeDropdown()
	cmd := m.Input.Focus()
	return m, cmd
}

func (m *Model) closeDropdown() {
	m.state = StateClosed
	m.results = nil
	m.active = 0
}

// View renders the input and, when open, the dropdown.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.Input.View())

	switch m.state {
	case StateResults:
		first, last := m.visibleWindow()
		for i := first; i < last; i++ {
			b.WriteByte('\n')
			b.WriteString(m.renderRow(i))
		}
	case StateEmpty:
		b.WriteByte('\n')
		b.WriteString(m.Styles.Empty.Render("no matching faults"))
	}
	return b.String()
}

// visibleWindow slides a maxVisible-row window so the active row stays on
// screen.
func (m Model) visibleWindow() (int, int) {
	first := 0
	if m.active >= m.maxVisible {
		first = m.active - m.maxVisible + 1
	}
	last := first + m.maxVisible
	if last > len(m.results) {
		last = len(m.results)
	}
	return first, last
}

// renderRow renders one candidate with its query highlight spans.
func (m Model) renderRow(i int) string {
	text := m.results[i]
	itemStyle, matchStyle := m.Styles.Item, m.Styles.Match
	if i == m.active {
		itemStyle, matchStyle = m.Styles.ActiveItem, m.Styles.ActiveMatch
	}

	var row strings.Builder
	for _, span := range suggest.BuildHighlightParts(text, m.Input.Value()) {
		if span.Matched {
			row.WriteString(matchStyle.Render(span.Text))
		} else {
			row.WriteString(span.Text)
		}
	}
	return itemStyle.Render(row.String())
}
