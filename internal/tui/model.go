package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/subtrack/internal/tracker"
	"github.com/julianstephens/subtrack/internal/tui/components/sublist"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateSubscriptions
	StateInsights
	StateCategories
	StateHistory
	StateEditing
	StateConfirmDelete
)

// tabCount covers the cycling tabs only; editing and confirmation
// overlays sit outside the cycle.
const tabCount = 5

type RecordFormModel struct {
	Name      string
	Price     string
	Category  string
	Date      string
	StartDate string
	Notes     string
}

type Model struct {
	tracker       *tracker.Tracker
	currency      string
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	subList       sublist.Model
	form          *huh.Form
	recordForm    *RecordFormModel
	editingID     string
	deleteID      string
	errMsg        string
	quitting      bool
	width         int
	height        int
}

func NewModel(t *tracker.Tracker, currency string) Model {
	return Model{
		tracker:  t,
		currency: currency,
		state:    StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		subList:  sublist.New(t.List(), currency, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateSubscriptions:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case StateHistory:
		keys = append(keys, m.keys.Backfill)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case StateSubscriptions:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case StateHistory:
		actions = []key.Binding{m.keys.Backfill}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
