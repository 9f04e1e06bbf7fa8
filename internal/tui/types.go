package tui

import (
	"codeberg.org/placewise/server/api/rest/plans"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateForm
	StateResults
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	client  *PlanClient
	welcome *Welcome
	form    *FormModel
	results *ResultsModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the plan form
type EnterFormMsg struct{}

// sent to go back from results to the form
type BackToFormMsg struct{}

// sent when the API returns a plan
type PlanResultMsg struct {
	plan *plans.PlanResponse
}

// sent when the plan request fails
type PlanErrorMsg struct {
	err error
}

// sent when the server starts
type ServerStartedMsg struct{}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}

// plan request form
type FormModel struct {
	inputs     []textinput.Model
	focus      int
	width      int
	isFetching bool
	spinner    spinner.Model
	client     *PlanClient
	lastErr    error
}

// allocation table plus rendered summary for one plan
type ResultsModel struct {
	plan        *plans.PlanResponse
	table       table.Model
	viewport    viewport.Model
	renderer    *glamour.TermRenderer
	showSummary bool
	width       int
	height      int
}
