package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/alexanderramin/timelog/internal/app"
	"github.com/alexanderramin/timelog/internal/cli/formatter"
	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/report"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type reportKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Span key.Binding
	Quit key.Binding
}

var reportKeys = reportKeyMap{
	Prev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier")),
	Next: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later")),
	Span: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "week/month")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var reportSpans = []int{7, 30}

var (
	reportPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(formatter.ColorDim).
				Padding(1, 2)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(formatter.ColorHeader).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(formatter.ColorHeader).
			Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(formatter.ColorDim).
				Padding(0, 2)
)

// reportModel is the interactive daily report: a bar per day colored by
// its status, over a week or a month window that can be paged back.
type reportModel struct {
	ctx   context.Context
	uc    *app.UseCases
	today time.Time

	width  int
	height int

	span   int // index into reportSpans
	offset int // windows back from the one ending today

	days []domain.DailySummary
	err  error

	chart barchart.Model
}

type reportDataMsg struct {
	days []domain.DailySummary
	err  error
}

func newReportModel(ctx context.Context, uc *app.UseCases, today time.Time) reportModel {
	return reportModel{
		ctx:    ctx,
		uc:     uc,
		today:  domain.NormalizeDate(today),
		width:  80,
		height: 24,
		chart:  barchart.New(60, 12),
	}
}

// dateRange returns the inclusive first and last day of the window.
func (m reportModel) dateRange() (time.Time, time.Time) {
	n := reportSpans[m.span]
	last := m.today.AddDate(0, 0, -n*m.offset)
	return last.AddDate(0, 0, 1-n), last
}

func (m reportModel) load() tea.Cmd {
	from, to := m.dateRange()
	return func() tea.Msg {
		days, err := m.uc.DailySummaryBetween(m.ctx, from, to).Unpack()
		return reportDataMsg{days: days, err: err}
	}
}

func (m reportModel) Init() tea.Cmd {
	return m.load()
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.buildChart()
		return m, nil

	case reportDataMsg:
		m.days, m.err = msg.days, msg.err
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, reportKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, reportKeys.Prev):
			m.offset++
			return m, m.load()
		case key.Matches(msg, reportKeys.Next):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.load()
		case key.Matches(msg, reportKeys.Span):
			m.span = (m.span + 1) % len(reportSpans)
			m.offset = 0
			return m, m.load()
		}
	}
	return m, nil
}

func (m *reportModel) buildChart() {
	w := max(m.width-8, 2*reportSpans[m.span])
	h := 12
	if m.height > 30 {
		h = 16
	}
	m.chart = barchart.New(w, h)

	byDate := make(map[string]domain.DailySummary, len(m.days))
	for _, d := range m.days {
		byDate[d.Date.Format(domain.DateLayout)] = d
	}

	labelLayout := "Mon 02"
	if reportSpans[m.span] > 7 {
		labelLayout = "02"
	}

	from, to := m.dateRange()
	var bars []barchart.BarData
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		s, ok := byDate[d.Format(domain.DateLayout)]
		if !ok {
			s = report.Summarize(d, 0)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format(labelLayout),
			Values: []barchart.BarValue{{
				Name:  string(s.Status),
				Value: s.TotalHours,
				Style: formatter.StatusStyle(s.Status),
			}},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m reportModel) View() string {
	weekTab, monthTab := inactiveTabStyle.Render("Week"), inactiveTabStyle.Render("Month")
	if reportSpans[m.span] == 7 {
		weekTab = activeTabStyle.Render("Week")
	} else {
		monthTab = activeTabStyle.Render("Month")
	}

	from, to := m.dateRange()
	rangeLabel := formatter.Dim(fmt.Sprintf("%s to %s", from.Format("Jan 02"), to.Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		formatter.StyleHeader.Render("DAILY REPORT"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, weekTab, monthTab), "  ",
		rangeLabel,
	)

	var body string
	if m.err != nil {
		body = formatter.StyleRed.Render("  " + m.err.Error())
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.chart.View(), "", m.legend(), "", m.table())
	}

	nav := formatter.Dim(fmt.Sprintf("  %s  %s  %s  %s",
		helpText(reportKeys.Prev), helpText(reportKeys.Next), helpText(reportKeys.Span), helpText(reportKeys.Quit)))

	return reportPanelStyle.Width(max(m.width-4, 40)).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", nav),
	)
}

func (m reportModel) legend() string {
	total, counts := report.Totals(m.days)
	items := make([]string, 0, 4)
	for _, s := range []domain.DayStatus{domain.DaySufficient, domain.DayInsufficient, domain.DayExcessive} {
		dot := formatter.StatusStyle(s).Render("●")
		items = append(items, fmt.Sprintf("%s %s %d", dot, s, counts[s]))
	}
	items = append(items, formatter.Bold(total.String()+"h"))
	return "  " + strings.Join(items, "  ")
}

func (m reportModel) table() string {
	if len(m.days) == 0 {
		return formatter.Dim("  No hours logged in this period")
	}
	rows := make([][]string, 0, len(m.days))
	for _, d := range m.days {
		rows = append(rows, []string{
			d.Date.Format("Mon 2006-01-02"),
			formatter.FormatHours(d.TotalHours),
			formatter.StatusIndicator(d.Status),
		})
	}
	return formatter.Table{
		Headers:    []string{"DAY", "TOTAL", "STATUS"},
		Rows:       rows,
		RightAlign: map[int]bool{1: true},
	}.Render()
}

func helpText(b key.Binding) string {
	h := b.Help()
	return h.Key + ": " + h.Desc
}
