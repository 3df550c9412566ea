package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/models"
	"github.com/julianstephens/subtrack/internal/tui/components/sublist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.subList.SetSize(msg.Width-4, msg.Height-6)

	case sublist.AddMsg:
		m.recordForm = &RecordFormModel{
			Category: string(models.CategoryOther),
			Date:     time.Now().Format(constants.DateLayout),
		}
		m.editingID = ""
		m.errMsg = ""
		m.form = newRecordForm(m.recordForm)
		m.previousState = m.state
		m.state = StateEditing
		return m, m.form.Init()

	case sublist.EditMsg:
		m.recordForm = formFromSubscription(msg.Subscription)
		m.editingID = msg.Subscription.ID
		m.errMsg = ""
		m.form = newRecordForm(m.recordForm)
		m.previousState = m.state
		m.state = StateEditing
		return m, m.form.Init()

	case sublist.DeleteMsg:
		m.deleteID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateEditing(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(keyMsg, m.keys.Tab), key.Matches(keyMsg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab), key.Matches(keyMsg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(keyMsg, m.keys.Backfill):
			if m.state == StateHistory {
				m.tracker.Backfill()
				return m, nil
			}
		}
	}

	if m.state == StateSubscriptions {
		var cmd tea.Cmd
		m.subList, cmd = m.subList.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submitRecord(), nil
	}

	return m, cmd
}

// submitRecord applies the completed form. Field-level validation has
// already run, but the record can still have been deleted behind the
// form, so failures surface as a message instead of silently dropping
// the edit.
func (m Model) submitRecord() Model {
	in := m.recordForm.input()
	var err error
	if m.editingID == "" {
		_, err = m.tracker.Add(in)
	} else {
		_, err = m.tracker.Update(m.editingID, in)
	}
	if err != nil {
		m.errMsg = err.Error()
	} else {
		m.errMsg = ""
	}
	m.subList.SetSubscriptions(m.tracker.List())
	m.state = m.previousState
	m.form = nil
	return m
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			m.tracker.Remove(m.deleteID)
			m.subList.SetSubscriptions(m.tracker.List())
			m.deleteID = ""
			m.state = m.previousState
		case "n", "N", "esc", "q":
			m.deleteID = ""
			m.state = m.previousState
		}
	}
	return m, nil
}
