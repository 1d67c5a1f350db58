package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	Search      key.Binding
	Account     key.Binding
	Severity    key.Binding
	SeverityTo  key.Binding
	Status      key.Binding
	NextRisky   key.Binding
	PrevRisky   key.Binding
	Sort        key.Binding
	Copy        key.Binding
	ClearFilter key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Account: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "account"),
	),
	Severity: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "severity"),
	),
	SeverityTo: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4"),
		key.WithHelp("1-4", "only severity"),
	),
	Status: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "status"),
	),
	NextRisky: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next risky"),
	),
	PrevRisky: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "prev risky"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
}

// footerBindings lists the bindings shown in the footer, in display order.
func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{
		k.Quit, k.Search, k.Account, k.Severity, k.Status,
		k.NextRisky, k.Sort, k.Copy, k.ClearFilter,
	}
}
