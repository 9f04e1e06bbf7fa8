package tui

import (
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/placewise/server/api/rest/plans"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldBudget = iota
	fieldCostPerClick
	fieldInsertion
	fieldTargetCPA
	fieldHorizon
	fieldCategory
	fieldAdvertiser
	fieldTopics
	fieldKeywords
	fieldInclude
	fieldExclude
	fieldCount
)

const defaultHorizonDays = 30

var fieldLabels = [fieldCount]string{
	"budget",
	"cost per click",
	"insertion id",
	"target cpa",
	"horizon days",
	"category",
	"advertiser id",
	"target topics",
	"target keywords",
	"include accounts",
	"exclude accounts",
}

var fieldPlaceholders = [fieldCount]string{
	"5000",
	"1.50 (or use insertion id)",
	"",
	"optional",
	"30",
	"Gaming (or use advertiser id)",
	"",
	"comma separated",
	"comma separated",
	"comma separated acct ids",
	"comma separated acct ids",
}

// returns a new plan form
func NewFormModel(client *PlanClient) *FormModel {
	inputs := make([]textinput.Model, fieldCount)

	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 512
		ti.Width = 48
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)
		inputs[i] = ti
	}

	inputs[fieldBudget].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorLightGray)

	return &FormModel{
		inputs:  inputs,
		spinner: sp,
		client:  client,
	}
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.isFetching {
			return m, nil
		}

		switch msg.String() {
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil

		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil

		case "enter", "ctrl+s":
			req, err := m.request()
			if err != nil {
				m.lastErr = err
				return m, nil
			}

			m.lastErr = nil
			m.isFetching = true
			return m, tea.Batch(m.spinner.Tick, m.client.CreatePlanCmd(req))

		case "ctrl+l":
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			m.lastErr = nil
			m.setFocus(fieldBudget)
			return m, nil
		}

	case PlanErrorMsg:
		m.isFetching = false
		m.lastErr = msg.err
		return m, nil

	case PlanResultMsg:
		m.isFetching = false
		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m *FormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
}

func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("NEW PLAN"))
	b.WriteString("\n\n")

	var rows strings.Builder
	for i, input := range m.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = labelFocusedStyle.Render(fieldLabels[i])
		}

		rows.WriteString(label + " " + input.View())
		if i < len(m.inputs)-1 {
			rows.WriteString("\n")
		}
	}

	b.WriteString(borderStyle.Render(rows.String()))
	b.WriteString("\n\n")

	switch {
	case m.isFetching:
		b.WriteString(m.spinner.View() + infoStyle.Render(" building plan..."))
	case m.lastErr != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.lastErr)))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[Tab/Shift+Tab: Move] [Enter: Submit] [Ctrl+L: Clear] [Ctrl+C: Back]"))

	return b.String()
}

func (m *FormModel) request() (plans.CreatePlanRequest, error) {
	var values [fieldCount]string
	for i, input := range m.inputs {
		values[i] = strings.TrimSpace(input.Value())
	}

	return buildRequest(values)
}

// converts raw form values into an API request; domain rules are left to the server
func buildRequest(values [fieldCount]string) (plans.CreatePlanRequest, error) {
	var req plans.CreatePlanRequest

	if values[fieldBudget] == "" {
		return req, fmt.Errorf("budget is required")
	}

	budget, err := strconv.ParseFloat(values[fieldBudget], 64)
	if err != nil {
		return req, fmt.Errorf("budget must be a number")
	}
	req.Budget = budget

	if req.CostPerClick, err = optionalFloat(fieldLabels[fieldCostPerClick], values[fieldCostPerClick]); err != nil {
		return req, err
	}

	if req.TargetCPA, err = optionalFloat(fieldLabels[fieldTargetCPA], values[fieldTargetCPA]); err != nil {
		return req, err
	}

	req.HorizonDays = defaultHorizonDays
	if raw := values[fieldHorizon]; raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("horizon days must be a whole number")
		}
		req.HorizonDays = days
	}

	req.InsertionID = values[fieldInsertion]
	req.Category = values[fieldCategory]
	req.AdvertiserID = values[fieldAdvertiser]
	req.IncludeAcctIDs = values[fieldInclude]
	req.ExcludeAcctIDs = values[fieldExclude]

	req.TargetTopics = splitList(values[fieldTopics])
	req.TargetKeywords = splitList(values[fieldKeywords])

	return req, nil
}

func splitList(raw string) []string {
	var items []string

	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

func optionalFloat(label, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", label)
	}

	return &v, nil
}
