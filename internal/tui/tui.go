package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func NewApp(mode string) *Model {
	client := NewPlanClient()

	return &Model{
		state:   StateWelcome,
		mode:    mode,
		client:  client,
		welcome: NewWelcome(mode),
		form:    NewFormModel(client),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// any key dismisses an error
		if m.err != nil {
			m.err = nil
			return m, nil
		}

		if msg.String() == "ctrl+c" {
			switch m.state {
			case StateWelcome:
				return m, tea.Quit
			case StateForm:
				m.state = StateWelcome
				return m, nil
			case StateResults:
				m.state = StateForm
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.form, _ = m.form.Update(msg)
		if m.results != nil {
			m.results, _ = m.results.Update(msg)
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterFormMsg:
		m.state = StateForm
		return m, m.form.Init()

	case PlanResultMsg:
		m.form, _ = m.form.Update(msg)
		m.results = NewResultsModel(msg.plan, m.width, m.height)
		m.state = StateResults
		return m, nil

	case BackToFormMsg:
		m.state = StateForm
		return m, nil
	}

	switch m.state {
	case StateWelcome:
		var cmd tea.Cmd
		m.welcome, cmd = m.welcome.Update(msg)
		return m, cmd

	case StateForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case StateResults:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateForm:
		return m.form.View()

	case StateResults:
		return m.results.View()

	default:
		return "Unknown state"
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  %s\n\n  Press any key to continue\n", errorStyle.Render(fmt.Sprintf("Error: %v", err)))
}
