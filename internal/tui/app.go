package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inspectd/faultserve/pkg/suggest"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	sectionStyle = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Faint(true).PaddingTop(1)
	learnedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).PaddingTop(1)
)

// App is the interactive fault entry screen: one autocomplete control bound
// to a section, with Enter on free text confirming it into the learned
// store.
type App struct {
	engine  *suggest.Engine
	control Model
	section string
	status  string
}

// NewApp creates the fault entry screen for a section.
func NewApp(engine *suggest.Engine, section string) App {
	control := New(engine, section)
	return App{
		engine:  engine,
		control: control,
		section: section,
	}
}

// SetDebounce forwards the debounce window to the embedded control.
func (a *App) SetDebounce(d time.Duration) { a.control.SetDebounce(d) }

// SetMaxVisible forwards the dropdown row bound to the embedded control.
func (a *App) SetMaxVisible(n int) { a.control.SetMaxVisible(n) }

// Init starts the control.
func (a App) Init() tea.Cmd {
	return a.control.Init()
}

// Update routes messages: quit keys first, then confirmation of free text,
// then the autocomplete control.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit
		case tea.KeyEnter:
			// With the dropdown closed, Enter confirms the typed text as a
			// finding; with it open, the control commits the selection.
			if a.control.State() != StateResults && strings.TrimSpace(a.control.Value()) != "" {
				a.learn(a.control.Value())
				return a, nil
			}
		}
	}

	var cmd tea.Cmd
	a.control.OnSelect = func(text string) {
		a.status = fmt.Sprintf("selected: %s", text)
	}
	a.control, cmd = a.control.Update(msg)
	return a, cmd
}

func (a *App) learn(text string) {
	result := a.engine.Learn(a.section, text)
	if result.Learned {
		a.status = fmt.Sprintf("recorded new phrase: %s", text)
	} else {
		a.status = fmt.Sprintf("not recorded (%s)", result.Reason)
	}
	a.control.SetValue("")
	a.control.Blur()
	a.control.Focus()
}

// View renders the screen.
func (a App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FaultServe"))
	b.WriteString(sectionStyle.Render(fmt.Sprintf("  section: %s", a.section)))
	b.WriteString("\n\n")
	b.WriteString(a.control.View())
	if a.status != "" {
		if strings.HasPrefix(a.status, "recorded") {
			b.WriteString("\n" + learnedStyle.Render(a.status))
		} else {
			b.WriteString("\n" + statusStyle.Render(a.status))
		}
	}
	b.WriteString("\n" + statusStyle.Render("enter to select or confirm - esc to dismiss - ctrl+c to quit"))
	return b.String()
}
