package sublist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/subtrack/internal/models"
)

type AddMsg struct{}

type EditMsg struct {
	Subscription models.Subscription
}

type DeleteMsg struct {
	ID string
}

type Item struct {
	Subscription models.Subscription
	Currency     string
}

func (i Item) Title() string {
	return fmt.Sprintf("%s - %s%.2f/mo", i.Subscription.Name, i.Currency, i.Subscription.Price)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | renews %s", i.Subscription.Category, i.Subscription.Date)
	if i.Subscription.Notes != "" {
		desc += " | " + i.Subscription.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return i.Subscription.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	currency string
}

func New(subs []models.Subscription, currency string, width, height int) Model {
	l := list.New(toItems(subs, currency), list.NewDefaultDelegate(), width, height)
	l.Title = "Subscriptions"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // Help is handled globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys, currency: currency}
}

func toItems(subs []models.Subscription, currency string) []list.Item {
	items := make([]list.Item, len(subs))
	for i, sub := range subs {
		items[i] = Item{Subscription: sub, Currency: currency}
	}
	return items
}

func (m *Model) SetSubscriptions(subs []models.Subscription) {
	m.list.SetItems(toItems(subs, m.currency))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditMsg{Subscription: i.Subscription} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteMsg{ID: i.Subscription.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No subscriptions yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
