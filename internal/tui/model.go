package tui

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ppiankov/secwatch/internal/models"
)

// mode represents the current UI interaction mode.
type mode int

const (
	modeNormal mode = iota
	modeSearch
	modePickAccount
)

const defaultTableHeight = 15

// Data is the input to the findings browser.
type Data struct {
	Title     string
	Findings  []models.Finding
	Scores    models.SeverityScores
	Threshold float64
}

// Model is the Bubble Tea model for browsing findings.
type Model struct {
	title     string
	threshold float64
	stats     stats
	all       []models.Finding

	table     table.Model
	search    textinput.Model
	picker    accountPicker
	visible   []models.Finding
	filters   filterState
	sortBy    sortField
	mode      mode
	width     int
	height    int
	statusMsg string
	// clipboard keeps the last copied text for tests
	clipboard string
}

// action handles one key in normal mode.
type action struct {
	binding key.Binding
	run     func(m *Model, msg tea.KeyMsg) tea.Cmd
}

// normalActions is checked in order; the first matching binding wins.
var normalActions = []action{
	{keys.Quit, func(*Model, tea.KeyMsg) tea.Cmd { return tea.Quit }},
	{keys.Search, (*Model).startSearch},
	{keys.Account, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.mode = modePickAccount
		m.picker.show(m.filters.Account)
		return nil
	}},
	{keys.Severity, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.setFilters(func(f *filterState) { f.Severity = nextSeverity(f.Severity) })
		return nil
	}},
	{keys.SeverityTo, func(m *Model, msg tea.KeyMsg) tea.Cmd {
		if sev, ok := severityForKey(msg.String()); ok {
			m.setFilters(func(f *filterState) { f.Severity = sev })
		}
		return nil
	}},
	{keys.Status, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.setFilters(func(f *filterState) { f.Status = nextStatus(f.Status) })
		return nil
	}},
	{keys.NextRisky, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.jumpRisky(1)
		return nil
	}},
	{keys.PrevRisky, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.jumpRisky(-1)
		return nil
	}},
	{keys.Sort, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.sortBy = (m.sortBy + 1) % sortField(sortFieldCount)
		m.refresh()
		m.statusMsg = "Sort: " + sortFieldName(m.sortBy)
		return nil
	}},
	{keys.Copy, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.copySelectedFinding()
		return nil
	}},
	{keys.ClearFilter, func(m *Model, _ tea.KeyMsg) tea.Cmd {
		m.filters = filterState{}
		m.search.SetValue("")
		m.statusMsg = ""
		m.refresh()
		return nil
	}},
}

// New builds the browser over a copy of data.Findings.
func New(data Data) Model {
	findings := make([]models.Finding, len(data.Findings))
	copy(findings, data.Findings)
	sortFindings(findings, sortBySeverity)

	scores := data.Scores
	if scores == nil {
		scores = models.DefaultSeverityScores()
	}

	search := textinput.New()
	search.Placeholder = "id, title, account, status..."
	search.CharLimit = 64

	return Model{
		title:     data.Title,
		threshold: data.Threshold,
		stats:     computeStats(findings, scores, data.Threshold),
		all:       findings,
		visible:   findings,
		table:     newTable(buildRows(findings), defaultTableHeight),
		search:    search,
		picker:    accountPicker{accounts: uniqueAccounts(findings)},
		sortBy:    sortBySeverity,
		width:     80,
		height:    24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			cmd = m.searchKey(msg)
		case modePickAccount:
			m.pickerKey(msg)
		default:
			cmd = m.normalKey(msg)
		}
	default:
		if m.mode == modeSearch {
			m.search, cmd = m.search.Update(msg)
		} else {
			m.table, cmd = m.table.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.table.SetWidth(width)
	m.table.SetHeight(max(height-headerHeight-detailHeight-3, 3))
}

func (m *Model) normalKey(msg tea.KeyMsg) tea.Cmd {
	for _, a := range normalActions {
		if key.Matches(msg, a.binding) {
			return a.run(m, msg)
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) startSearch(tea.KeyMsg) tea.Cmd {
	m.mode = modeSearch
	m.search.SetValue(m.filters.SearchText)
	m.search.Focus()
	return textinput.Blink
}

func (m *Model) searchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeNormal
		m.search.Blur()
		text := m.search.Value()
		m.setFilters(func(f *filterState) { f.SearchText = text })
		return nil
	case tea.KeyEsc:
		m.mode = modeNormal
		m.search.Blur()
		m.search.SetValue("")
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) pickerKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up", "k":
		m.picker.move(-1)
	case "down", "j":
		m.picker.move(1)
	case "enter":
		m.mode = modeNormal
		account := m.picker.choice()
		m.setFilters(func(f *filterState) { f.Account = account })
	case "esc":
		m.mode = modeNormal
	}
}

// setFilters applies change, rebuilds the table and reports the result.
func (m *Model) setFilters(change func(*filterState)) {
	change(&m.filters)
	m.refresh()
	m.statusMsg = m.filters.describe()
}

func (m *Model) refresh() {
	visible := applyFilters(m.all, m.filters)
	sortFindings(visible, m.sortBy)
	m.visible = visible
	m.table.SetRows(buildRows(visible))
	if c := m.table.Cursor(); c >= len(visible) && len(visible) > 0 {
		m.table.SetCursor(len(visible) - 1)
	}
}

// jumpRisky moves the cursor to the next visible finding whose risk meets the
// threshold, wrapping around. dir is 1 or -1.
func (m *Model) jumpRisky(dir int) {
	n := len(m.visible)
	if m.threshold <= 0 || n == 0 {
		m.statusMsg = "No risk threshold set"
		return
	}
	start := m.table.Cursor()
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if f := m.visible[i]; f.Status == models.StatusOpen && f.RiskScore >= m.threshold {
			m.table.SetCursor(i)
			m.statusMsg = fmt.Sprintf("%s risk %.2f", f.ID, f.RiskScore)
			return
		}
	}
	m.statusMsg = fmt.Sprintf("No open findings at or above %.1f", m.threshold)
}

func (m *Model) selectedFinding() *models.Finding {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return nil
	}
	return &m.visible[cursor]
}

// copySelectedFinding puts a one-line ticket for the selected finding on the
// clipboard via OSC 52.
func (m *Model) copySelectedFinding() {
	f := m.selectedFinding()
	if f == nil {
		m.statusMsg = "Nothing to copy"
		return
	}
	text := ticketLine(*f)
	m.clipboard = text
	m.statusMsg = "Copied " + f.ID
	fmt.Printf("\033]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
}

func ticketLine(f models.Finding) string {
	text := fmt.Sprintf("[%s] %s %s (%s): %s, risk %.2f, %s",
		strings.ToUpper(string(f.Severity)), f.AccountID, f.ID, f.InstanceID, f.Title, f.RiskScore, f.Status)
	if f.Recommendation != "" {
		text += ". Fix: " + f.Recommendation
	}
	return text
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(renderHeader(m.title, m.stats, m.threshold, m.width))
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(styleSearchPrompt.Render("/ "))
		b.WriteString(m.search.View())
		b.WriteString("\n")
	case modePickAccount:
		b.WriteString(m.picker.view())
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(renderDetail(m.selectedFinding(), m.threshold, m.width))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) footer() string {
	help := make([]string, 0, len(keys.footerBindings()))
	for _, kb := range keys.footerBindings() {
		h := kb.Help()
		help = append(help, h.Key+":"+h.Desc)
	}
	left := strings.Join(help, "  ")

	right := fmt.Sprintf("%d/%d findings", len(m.visible), len(m.all))
	if m.statusMsg != "" {
		right = m.statusMsg + "  " + right
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styleFooter.Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the browser in the alternate screen and blocks until quit.
func Run(data Data) error {
	_, err := tea.NewProgram(New(data), tea.WithAltScreen()).Run()
	return err
}
