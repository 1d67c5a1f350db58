package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ppiankov/secwatch/internal/models"
)

func testFindings() []models.Finding {
	base := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	return []models.Finding{
		{
			ID: "EC2-001", InstanceID: "i-1", Title: "Unencrypted EBS Volume", Severity: models.SeverityHigh,
			Description: "EBS volume is not encrypted", Recommendation: "Enable EBS encryption",
			AccountID: "prod-account-456", Timestamp: base.Add(-48 * time.Hour), Status: models.StatusOpen, RiskScore: 6.5,
		},
		{
			ID: "S3-001", InstanceID: "i-2", Title: "Public S3 Bucket", Severity: models.SeverityCritical,
			Description: "S3 bucket is publicly accessible", Recommendation: "Restrict bucket access",
			AccountID: "dev-account-123", Timestamp: base, Status: models.StatusOpen, RiskScore: 9.1,
		},
		{
			ID: "VPC-001", InstanceID: "i-3", Title: "Open Security Group", Severity: models.SeverityHigh,
			Description: "Security group allows unrestricted inbound access", Recommendation: "Restrict security group rules",
			AccountID: "dev-account-123", Timestamp: base.Add(-24 * time.Hour), Status: models.StatusResolved, RiskScore: 3.2,
		},
		{
			ID: "KMS-001", InstanceID: "i-4", Title: "KMS Key Rotation Disabled", Severity: models.SeverityCritical,
			Description: "KMS key rotation is not enabled", Recommendation: "Enable automatic key rotation",
			AccountID: "staging-account-789", Timestamp: base.Add(-72 * time.Hour), Status: models.StatusOpen, RiskScore: 7.4,
		},
	}
}

func testData() Data {
	return Data{
		Title:     "all accounts",
		Findings:  testFindings(),
		Threshold: 7.0,
	}
}

// --- Filter tests ---

func TestApplyFiltersNoFilter(t *testing.T) {
	findings := testFindings()
	result := applyFilters(findings, filterState{})
	if len(result) != len(findings) {
		t.Errorf("expected %d findings, got %d", len(findings), len(result))
	}
}

func TestApplyFiltersAccountFilter(t *testing.T) {
	result := applyFilters(testFindings(), filterState{Account: "dev-account-123"})
	if len(result) != 2 {
		t.Errorf("expected 2 dev findings, got %d", len(result))
	}
	for _, r := range result {
		if r.AccountID != "dev-account-123" {
			t.Errorf("expected dev-account-123, got %s", r.AccountID)
		}
	}
}

func TestApplyFiltersSeverityFilter(t *testing.T) {
	result := applyFilters(testFindings(), filterState{Severity: models.SeverityCritical})
	if len(result) != 2 {
		t.Errorf("expected 2 critical findings, got %d", len(result))
	}
}

func TestApplyFiltersSearchText(t *testing.T) {
	result := applyFilters(testFindings(), filterState{SearchText: "bucket"})
	if len(result) != 1 {
		t.Fatalf("expected 1 finding matching 'bucket', got %d", len(result))
	}
	if result[0].ID != "S3-001" {
		t.Errorf("expected S3-001, got %s", result[0].ID)
	}
}

func TestApplyFiltersCombined(t *testing.T) {
	result := applyFilters(testFindings(), filterState{Account: "dev-account-123", SearchText: "resolved"})
	if len(result) != 1 || result[0].ID != "VPC-001" {
		t.Errorf("expected VPC-001 only, got %v", result)
	}
}

func TestApplyFiltersCaseInsensitive(t *testing.T) {
	result := applyFilters(testFindings(), filterState{SearchText: "KMS KEY"})
	if len(result) != 1 {
		t.Errorf("expected 1 finding matching 'KMS KEY' case-insensitive, got %d", len(result))
	}
}

func TestApplyFiltersNoMatch(t *testing.T) {
	result := applyFilters(testFindings(), filterState{SearchText: "nonexistent"})
	if len(result) != 0 {
		t.Errorf("expected 0 findings, got %d", len(result))
	}
}

// --- Sort tests ---

func TestSortFindings(t *testing.T) {
	tests := []struct {
		field sortField
		first string
	}{
		{sortBySeverity, "S3-001"},
		{sortByAccount, "S3-001"},
		{sortByRisk, "S3-001"},
		{sortByNewest, "S3-001"},
		{sortByID, "EC2-001"},
	}
	for _, tt := range tests {
		findings := testFindings()
		sortFindings(findings, tt.field)
		if findings[0].ID != tt.first {
			t.Errorf("sort %s: expected %s first, got %s", sortFieldName(tt.field), tt.first, findings[0].ID)
		}
	}
}

func TestSortBySeverityKeepsOrderWithinSeverity(t *testing.T) {
	findings := testFindings()
	sortFindings(findings, sortBySeverity)
	want := []string{"S3-001", "KMS-001", "EC2-001", "VPC-001"}
	for i, id := range want {
		if findings[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, findings[i].ID)
		}
	}
}

func TestSortByRiskDescending(t *testing.T) {
	findings := testFindings()
	sortFindings(findings, sortByRisk)
	if findings[len(findings)-1].RiskScore != 3.2 {
		t.Errorf("expected lowest risk last, got %v", findings[len(findings)-1].RiskScore)
	}
}

func TestUniqueAccounts(t *testing.T) {
	accounts := uniqueAccounts(testFindings())
	want := []string{"dev-account-123", "prod-account-456", "staging-account-789"}
	if len(accounts) != len(want) {
		t.Fatalf("expected %v, got %v", want, accounts)
	}
	for i := range want {
		if accounts[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, accounts[i])
		}
	}
}

func TestUniqueAccountsEmpty(t *testing.T) {
	if accounts := uniqueAccounts(nil); len(accounts) != 0 {
		t.Errorf("expected no accounts, got %v", accounts)
	}
}

func TestNextSeverity(t *testing.T) {
	seq := []models.Severity{
		models.SeverityCritical, models.SeverityHigh, models.SeverityMedium, models.SeverityLow, "",
	}
	var cur models.Severity
	for _, want := range seq {
		cur = nextSeverity(cur)
		if cur != want {
			t.Fatalf("expected %q, got %q", want, cur)
		}
	}
}

func TestSortFieldName(t *testing.T) {
	names := map[sortField]string{
		sortBySeverity: "severity",
		sortByAccount:  "account",
		sortByRisk:     "risk",
		sortByNewest:   "newest",
		sortByID:       "id",
		sortField(99):  "unknown",
	}
	for f, want := range names {
		if got := sortFieldName(f); got != want {
			t.Errorf("sortFieldName(%d) = %q, want %q", f, got, want)
		}
	}
}

// --- Rendering tests ---

func TestBuildRows(t *testing.T) {
	rows := buildRows(testFindings())
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "HIGH" || rows[0][1] != "EC2-001" || rows[0][5] != "6.50" {
		t.Errorf("unexpected first row %v", rows[0])
	}
}

func TestBuildRowsEmpty(t *testing.T) {
	if rows := buildRows(nil); len(rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(rows))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	s := computeStats(testFindings(), models.DefaultSeverityScores(), 7.0)
	if s.Total != 4 || s.Accounts != 3 {
		t.Errorf("unexpected totals %+v", s)
	}
	if s.Open != 3 || s.Resolved != 1 {
		t.Errorf("unexpected status split open=%d resolved=%d", s.Open, s.Resolved)
	}
	if s.BySeverity[models.SeverityCritical] != 2 || s.BySeverity[models.SeverityHigh] != 2 {
		t.Errorf("unexpected severity counts %v", s.BySeverity)
	}
	if s.AboveThreshold != 2 {
		t.Errorf("expected 2 findings above 7.0, got %d", s.AboveThreshold)
	}
	// 2*9 + 2*7
	if s.Weighted != 32 {
		t.Errorf("expected weighted 32, got %v", s.Weighted)
	}
	if s.AvgRisk < 6.54 || s.AvgRisk > 6.56 {
		t.Errorf("expected avg risk 6.55, got %v", s.AvgRisk)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := computeStats(nil, models.DefaultSeverityScores(), 7.0)
	if s.Total != 0 || s.AvgRisk != 0 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestRenderHeader(t *testing.T) {
	s := computeStats(testFindings(), models.DefaultSeverityScores(), 7.0)
	out := renderHeader("all accounts", s, 7.0, 100)

	for _, frag := range []string{
		"secwatch", "all accounts", "Avg risk: 6.55",
		"Findings: 4", "Accounts: 3", "Open: 3", "Resolved: 1",
		"C:2", "H:2", "Above 7.0: 2", "Weighted: 32.0",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("expected header to contain %q\n%s", frag, out)
		}
	}
}

func TestRenderHeaderNoThreshold(t *testing.T) {
	out := renderHeader("x", computeStats(testFindings(), models.DefaultSeverityScores(), 0), 0, 100)
	if strings.Contains(out, "Above") {
		t.Error("threshold line should be omitted when disabled")
	}
}

func TestRenderDetailNil(t *testing.T) {
	out := renderDetail(nil, 7.0, 80)
	if !strings.Contains(out, "No finding selected") {
		t.Error("expected placeholder for nil finding")
	}
}

func TestRenderDetailShowsFields(t *testing.T) {
	f := testFindings()[1]
	out := renderDetail(&f, 7.0, 120)

	for _, frag := range []string{
		"CRITICAL", "S3-001", "Public S3 Bucket",
		"Account: dev-account-123", "Status: open", "Risk: 9.10", "Detected: 2026-02-15",
		"Description: S3 bucket is publicly accessible",
		"Fix: Restrict bucket access",
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("expected detail to contain %q\n%s", frag, out)
		}
	}
}

func TestRenderDetailZeroTimestamp(t *testing.T) {
	f := models.Finding{ID: "X-1", Severity: models.SeverityLow}
	if out := renderDetail(&f, 0, 80); strings.Contains(out, "Detected") {
		t.Error("expected no detected date for zero timestamp")
	}
}

func TestSeverityAndRiskStyles(t *testing.T) {
	for _, sev := range []models.Severity{"critical", "high", "medium", "low", "unknown"} {
		_ = severityStyle(sev).Render("test")
	}
	for _, score := range []float64{1, 5.5, 9} {
		_ = riskStyle(score, 7).Render("test")
	}
}

// --- Model tests ---

func TestModelInit(t *testing.T) {
	m := New(testData())
	if cmd := m.Init(); cmd != nil {
		t.Error("Init should return nil cmd")
	}
}

func TestModelInitialSort(t *testing.T) {
	m := New(testData())
	if len(m.visible) != 4 {
		t.Fatalf("expected 4 findings, got %d", len(m.visible))
	}
	if m.visible[0].Severity != models.SeverityCritical {
		t.Errorf("expected critical first after initial sort, got %s", m.visible[0].Severity)
	}
}

func TestModelWindowResize(t *testing.T) {
	m := New(testData())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(Model)
	if model.width != 120 || model.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", model.width, model.height)
	}
}

func TestModelWindowResizeSmall(t *testing.T) {
	m := New(testData())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if model := updated.(Model); model.width != 40 {
		t.Errorf("expected width 40, got %d", model.width)
	}
}

func TestModelQuit(t *testing.T) {
	m := New(testData())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command, got nil")
	}
}

func TestModelEnterSearch(t *testing.T) {
	m := New(testData())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if model := updated.(Model); model.mode != modeSearch {
		t.Errorf("expected modeSearch, got %d", model.mode)
	}
}

func TestModelSearchEnter(t *testing.T) {
	m := New(testData())
	m.mode = modeSearch
	m.search.SetValue("dev-account")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	if model.mode != modeNormal {
		t.Errorf("expected modeNormal after enter, got %d", model.mode)
	}
	if model.filters.SearchText != "dev-account" {
		t.Errorf("expected search text 'dev-account', got %q", model.filters.SearchText)
	}
	if len(model.visible) != 2 {
		t.Errorf("expected 2 filtered findings, got %d", len(model.visible))
	}
}

func TestModelSearchEscape(t *testing.T) {
	m := New(testData())
	m.mode = modeSearch

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if model := updated.(Model); model.mode != modeNormal {
		t.Errorf("expected modeNormal after esc in search, got %d", model.mode)
	}
}

func TestModelCycleSort(t *testing.T) {
	m := New(testData())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	model := updated.(Model)
	if model.sortBy != sortByAccount {
		t.Errorf("expected sort by account after one cycle, got %d", model.sortBy)
	}
	if !strings.Contains(model.statusMsg, "account") {
		t.Errorf("expected status to mention sort field, got %q", model.statusMsg)
	}
}

func TestModelCycleSeverity(t *testing.T) {
	m := New(testData())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	model := updated.(Model)
	if model.filters.Severity != models.SeverityCritical {
		t.Fatalf("expected critical filter, got %q", model.filters.Severity)
	}
	if len(model.visible) != 2 {
		t.Errorf("expected 2 critical findings, got %d", len(model.visible))
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	model = updated.(Model)
	if model.filters.Severity != models.SeverityHigh {
		t.Errorf("expected high filter, got %q", model.filters.Severity)
	}
}

func TestModelOpenAccountPicker(t *testing.T) {
	m := New(testData())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if model := updated.(Model); model.mode != modePickAccount {
		t.Errorf("expected account picker, got %d", model.mode)
	}
}

func TestModelAccountPickerNavigate(t *testing.T) {
	m := New(testData())
	m.mode = modePickAccount

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model := updated.(Model)
	if model.picker.cursor != 1 {
		t.Errorf("expected cursor 1 after down, got %d", model.picker.cursor)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(Model)
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(Model)
	if model.picker.cursor != 0 {
		t.Errorf("expected cursor stays at 0, got %d", model.picker.cursor)
	}

	for i := 0; i < 10; i++ {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
		model = updated.(Model)
	}
	if model.picker.cursor != len(model.picker.accounts) {
		t.Errorf("expected cursor clamped at %d, got %d", len(model.picker.accounts), model.picker.cursor)
	}
}

func TestModelAccountPickerSelect(t *testing.T) {
	m := New(testData())
	m.mode = modePickAccount
	m.picker.cursor = 1

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	if model.mode != modeNormal {
		t.Errorf("expected modeNormal after enter, got %d", model.mode)
	}
	if model.filters.Account != "dev-account-123" {
		t.Errorf("expected dev-account-123 filter, got %q", model.filters.Account)
	}
	if len(model.visible) != 2 {
		t.Errorf("expected 2 findings, got %d", len(model.visible))
	}
	if !strings.Contains(model.statusMsg, "dev-account-123") {
		t.Errorf("unexpected status %q", model.statusMsg)
	}
}

func TestModelAccountPickerSelectAll(t *testing.T) {
	m := New(testData())
	m.mode = modePickAccount
	m.filters.Account = "dev-account-123"

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model := updated.(Model); model.filters.Account != "" {
		t.Errorf("expected empty account filter for All, got %q", model.filters.Account)
	}
}

func TestModelAccountPickerEscape(t *testing.T) {
	m := New(testData())
	m.mode = modePickAccount

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if model := updated.(Model); model.mode != modeNormal {
		t.Errorf("expected modeNormal after esc, got %d", model.mode)
	}
}

func TestModelClearFilter(t *testing.T) {
	m := New(testData())
	m.filters = filterState{Account: "dev-account-123", Severity: models.SeverityHigh}
	m.statusMsg = "Account: dev-account-123"
	m.refresh()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	model := updated.(Model)
	if model.filters != (filterState{}) {
		t.Errorf("expected filters cleared, got %+v", model.filters)
	}
	if model.statusMsg != "" {
		t.Errorf("expected status cleared, got %q", model.statusMsg)
	}
	if len(model.visible) != 4 {
		t.Errorf("expected all 4 findings after clear, got %d", len(model.visible))
	}
}

func TestModelView(t *testing.T) {
	m := New(testData())
	m.width = 120
	m.height = 30
	output := m.View()

	if !strings.Contains(output, "secwatch") {
		t.Error("expected secwatch in view")
	}
	if !strings.Contains(output, "q:quit") {
		t.Error("expected keybinds in footer")
	}
	if !strings.Contains(output, "4/4 findings") {
		t.Error("expected 4/4 findings in footer")
	}
}

func TestModelViewFilterMode(t *testing.T) {
	m := New(testData())
	m.mode = modePickAccount
	output := m.View()
	if !strings.Contains(output, "Filter by account:") {
		t.Error("expected account filter list in view")
	}
	if !strings.Contains(output, "All") {
		t.Error("expected All option in account filter")
	}
}

func TestModelViewSearchMode(t *testing.T) {
	m := New(testData())
	m.mode = modeSearch
	if output := m.View(); !strings.Contains(output, "/") {
		t.Error("expected search prompt in view when in search mode")
	}
}

func TestModelCopyNoSelection(t *testing.T) {
	m := New(testData())
	m.visible = nil
	m.table.SetRows(nil)

	m.copySelectedFinding()
	if m.statusMsg != "Nothing to copy" {
		t.Errorf("expected 'Nothing to copy', got %q", m.statusMsg)
	}
}

func TestModelCopySelection(t *testing.T) {
	m := New(testData())
	m.copySelectedFinding()
	if !strings.Contains(m.clipboard, "S3-001") || !strings.Contains(m.clipboard, "Restrict bucket access") {
		t.Errorf("unexpected clipboard %q", m.clipboard)
	}
	if m.statusMsg != "Copied S3-001" {
		t.Errorf("expected Copied S3-001, got %q", m.statusMsg)
	}
	for _, frag := range []string{"[CRITICAL]", "risk 9.10", "open", "Fix: Restrict bucket access"} {
		if !strings.Contains(m.clipboard, frag) {
			t.Errorf("expected clipboard to contain %q, got %q", frag, m.clipboard)
		}
	}
}

func TestModelDoesNotMutateInput(t *testing.T) {
	data := testData()
	firstID := data.Findings[0].ID
	m := New(data)

	m.filters = filterState{Account: "dev-account-123"}
	m.refresh()

	if len(m.all) != 4 {
		t.Errorf("all mutated: got %d", len(m.all))
	}
	if data.Findings[0].ID != firstID {
		t.Error("input slice was reordered")
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSeverityForKey(t *testing.T) {
	tests := []struct {
		key  string
		want models.Severity
		ok   bool
	}{
		{"0", "", true},
		{"1", models.SeverityCritical, true},
		{"2", models.SeverityHigh, true},
		{"3", models.SeverityMedium, true},
		{"4", models.SeverityLow, true},
		{"5", "", false},
		{"x", "", false},
		{"12", "", false},
	}
	for _, tt := range tests {
		got, ok := severityForKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("severityForKey(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNextStatus(t *testing.T) {
	seq := []string{models.StatusOpen, models.StatusResolved, ""}
	var cur string
	for _, want := range seq {
		cur = nextStatus(cur)
		if cur != want {
			t.Fatalf("expected %q, got %q", want, cur)
		}
	}
}

func TestApplyFiltersStatus(t *testing.T) {
	result := applyFilters(testFindings(), filterState{Status: models.StatusResolved})
	if len(result) != 1 || result[0].ID != "VPC-001" {
		t.Errorf("expected VPC-001 only, got %v", result)
	}
}

func TestFilterStateDescribe(t *testing.T) {
	tests := []struct {
		name string
		f    filterState
		want string
	}{
		{"none", filterState{}, "No filters"},
		{"severity", filterState{Severity: models.SeverityHigh}, "Filter: severity high"},
		{"all", filterState{Severity: models.SeverityLow, Status: "open", Account: "a1", SearchText: "kms"},
			`Filter: severity low, status open, account a1, search "kms"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.describe(); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModelSeverityShortcut(t *testing.T) {
	tests := []struct {
		key     string
		want    models.Severity
		visible int
	}{
		{"1", models.SeverityCritical, 2},
		{"2", models.SeverityHigh, 2},
		{"3", models.SeverityMedium, 0},
		{"0", "", 4},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := New(testData())
			m.filters.Severity = models.SeverityLow
			updated, _ := m.Update(runes(tt.key))
			model := updated.(Model)
			if model.filters.Severity != tt.want {
				t.Errorf("severity = %q, want %q", model.filters.Severity, tt.want)
			}
			if len(model.visible) != tt.visible {
				t.Errorf("expected %d findings, got %d", tt.visible, len(model.visible))
			}
		})
	}
}

func TestModelCycleStatus(t *testing.T) {
	m := New(testData())
	want := []struct {
		status  string
		visible int
	}{
		{models.StatusOpen, 3},
		{models.StatusResolved, 1},
		{"", 4},
	}
	var model tea.Model = m
	for _, w := range want {
		model, _ = model.Update(runes("o"))
		got := model.(Model)
		if got.filters.Status != w.status || len(got.visible) != w.visible {
			t.Fatalf("status %q with %d findings, want %q with %d",
				got.filters.Status, len(got.visible), w.status, w.visible)
		}
	}
}

func TestModelJumpRisky(t *testing.T) {
	// sorted by severity: S3-001 9.1, KMS-001 7.4, EC2-001 6.5, VPC-001 3.2 (resolved)
	tests := []struct {
		name  string
		keys  []string
		want  string
		start int
	}{
		{"next from top", []string{"n"}, "KMS-001", 0},
		{"next wraps", []string{"n", "n"}, "S3-001", 0},
		{"prev wraps", []string{"N"}, "KMS-001", 0},
		{"next skips low risk", []string{"n"}, "S3-001", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(testData())
			m.table.SetCursor(tt.start)
			var model tea.Model = m
			for _, k := range tt.keys {
				model, _ = model.Update(runes(k))
			}
			got := model.(Model)
			if f := got.selectedFinding(); f == nil || f.ID != tt.want {
				t.Errorf("selected %v, want %s", f, tt.want)
			}
			if !strings.Contains(got.statusMsg, tt.want) {
				t.Errorf("unexpected status %q", got.statusMsg)
			}
		})
	}
}

func TestModelJumpRiskyNoMatch(t *testing.T) {
	data := testData()
	data.Threshold = 9.5
	m := New(data)
	updated, _ := m.Update(runes("n"))
	model := updated.(Model)
	if model.table.Cursor() != 0 {
		t.Errorf("cursor moved to %d", model.table.Cursor())
	}
	if !strings.Contains(model.statusMsg, "No open findings") {
		t.Errorf("unexpected status %q", model.statusMsg)
	}

	data.Threshold = 0
	m = New(data)
	updated, _ = m.Update(runes("n"))
	if model := updated.(Model); model.statusMsg != "No risk threshold set" {
		t.Errorf("unexpected status %q", model.statusMsg)
	}
}

func TestModelAccountPickerStartsOnCurrentFilter(t *testing.T) {
	m := New(testData())
	m.filters.Account = "prod-account-456"
	updated, _ := m.Update(runes("a"))
	model := updated.(Model)
	if model.picker.cursor != 2 {
		t.Errorf("expected cursor on prod-account-456 (2), got %d", model.picker.cursor)
	}
	if model.picker.choice() != "prod-account-456" {
		t.Errorf("unexpected choice %q", model.picker.choice())
	}
}

func TestModelFilterShrinksCursor(t *testing.T) {
	m := New(testData())
	m.table.SetCursor(3)
	updated, _ := m.Update(runes("1"))
	model := updated.(Model)
	if model.selectedFinding() == nil {
		t.Error("cursor should stay on a visible row after filtering")
	}
}

func TestModelFooterListsActions(t *testing.T) {
	m := New(testData())
	m.width = 200
	out := m.footer()
	for _, frag := range []string{"q:quit", "o:status", "n:next risky", "a:account", "v:severity"} {
		if !strings.Contains(out, frag) {
			t.Errorf("expected footer to contain %q\n%s", frag, out)
		}
	}
}
