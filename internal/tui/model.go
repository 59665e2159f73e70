// Package tui implements the interactive dashboard: a bubbletea program
// that recomputes the yearly and monthly view models from the immutable
// dataset on every state change.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/salescope/salescope/internal/analytics"
	"github.com/salescope/salescope/internal/cli"
	"github.com/salescope/salescope/internal/dataset"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/viewmodel"
)

type viewTab int

const (
	tabYearly viewTab = iota
	tabMonthly
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	data *dataset.Dataset
	keys KeyMap
	help help.Model

	tab     viewTab
	board   viewmodel.BoardState
	monthly viewmodel.MonthlyState

	regions          []string
	categories       []string
	customers        []string
	monthlyRegions   []string
	monthlyCategories []string
	monthlyCustomers []string
	months           []int

	boardView   viewmodel.BoardView
	monthlyView viewmodel.MonthlyView

	table    table.Model
	width    int
	height   int
	showHelp bool
}

// New builds the initial model from a loaded dataset.
func New(data *dataset.Dataset) Model {
	m := Model{
		data:             data,
		keys:             DefaultKeyMap(),
		help:             help.New(),
		board:            viewmodel.DefaultBoardState(),
		monthly:          viewmodel.DefaultMonthlyState(data.DefaultMonth(time.Now())),
		regions:          withAll(data.Regions()),
		categories:       withAll(data.Categories()),
		customers:        withAll(data.Customers()),
		monthlyRegions:   withAll(data.MonthlyRegions()),
		monthlyCategories: withAll(data.MonthlyCategories()),
		monthlyCustomers: withAll(data.MonthlyCustomers()),
		months:           data.AvailableMonths(),
	}
	m.table = table.New(table.WithFocused(true), table.WithHeight(12))
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(6, msg.Height-18))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.ToggleView):
			if m.tab == tabYearly {
				m.tab = tabMonthly
			} else {
				m.tab = tabYearly
			}
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.NextMetric):
			m.cycleMetric(1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.PrevMetric):
			m.cycleMetric(-1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.NextMonth):
			m.cycleMonth(1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.PrevMonth):
			m.cycleMonth(-1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.CycleSort):
			m.cycleSortKey()
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.ToggleOrder):
			if m.tab == tabYearly {
				m.board.SortDesc = !m.board.SortDesc
				m.recompute()
			}
			return m, nil

		case key.Matches(msg, m.keys.CycleRegion):
			c := m.criteria()
			c.Region = cycleOption(m.regionOptions(), c.Region)
			m.setCriteria(c)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.CycleCategory):
			c := m.criteria()
			c.Category = cycleOption(m.categoryOptions(), c.Category)
			m.setCriteria(c)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.CycleCustomer):
			c := m.criteria()
			c.Customer = cycleOption(m.customerOptions(), c.Customer)
			m.setCriteria(c)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.setCriteria(analytics.DefaultCriteria())
			m.recompute()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.summaryView())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

func (m Model) headerView() string {
	title := "Yearly Sales Board"
	if m.tab == tabMonthly {
		title = fmt.Sprintf("Monthly Sales Board, %s 2026", viewmodel.MonthName(m.monthly.Month))
	}
	c := m.criteria()
	filters := fmt.Sprintf("region: %s   category: %s   customer: %s", c.Region, c.Category, c.Customer)
	if m.tab == tabYearly {
		filters += fmt.Sprintf("   metric: %s", m.board.Metric.Label())
	} else {
		filters += fmt.Sprintf("   metric: %s", m.monthly.Metric.Label())
	}
	return cli.TitleStyle.UnsetMargins().Render(title) + "\n" + cli.SubtleStyle.Render(filters)
}

func (m Model) summaryView() string {
	if m.tab == tabYearly {
		parts := make([]string, 0, len(m.boardView.Totals))
		for _, t := range m.boardView.Totals {
			parts = append(parts, fmt.Sprintf("%s %s", cli.SubtleStyle.Render(t.Name), cli.BoldStyle.Render(cli.FormatShort(t.Value))))
		}
		return strings.Join(parts, "   ")
	}
	parts := make([]string, 0, len(m.monthlyView.KPIs))
	for _, c := range m.monthlyView.KPIs {
		parts = append(parts, fmt.Sprintf("%s %s", cli.SubtleStyle.Render(c.Label), cli.BoldStyle.Render(cli.FormatShort(c.Value))))
	}
	return strings.Join(parts, "   ")
}

// recompute rebuilds the active view model and refreshes the data table.
// The dataset itself is never mutated.
func (m *Model) recompute() {
	if m.tab == tabYearly {
		m.boardView = viewmodel.BuildBoard(m.data, m.board)
		m.setYearlyTable()
		return
	}
	m.monthlyView = viewmodel.BuildMonthly(m.data, m.monthly)
	m.setMonthlyTable()
}

func (m *Model) setYearlyTable() {
	t := m.boardView.Table
	columns := make([]table.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		width := len(c.Label) + 2
		if width < 14 {
			width = 14
		}
		columns = append(columns, table.Column{Title: c.Label, Width: width})
	}

	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, table.Row{
			r.CustomerCode,
			r.CustomerName,
			r.CustomerNameNormalized,
			r.CustomerCategory,
			r.Region,
			cli.Currency(r.Sales2025EstGross.Float()),
			cli.Currency(r.Sales2025EstNet.Float()),
			cli.Currency(r.Sales2024Gross.Float()),
			cli.Currency(r.Sales2024Net.Float()),
			cli.Currency(r.Sales2025Forecast.Float()),
			cli.Currency(r.Sales2026GrossPositive.Float()),
		})
	}
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) setMonthlyTable() {
	t := m.monthlyView.MonthTable
	columns := make([]table.Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		width := len(c.Label) + 2
		if width < 12 {
			width = 12
		}
		columns = append(columns, table.Column{Title: c.Label, Width: width})
	}

	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, table.Row{
			r.CustomerCode,
			r.CustomerName,
			r.CustomerCategory,
			r.Region,
			cli.Currency(r.Gross2026),
			cli.Currency(r.Net2026),
			cli.Percent(r.GrossMargin2026),
			cli.Percent(r.NetMargin2026),
			cli.Currency(r.Gross2025),
			cli.Currency(r.Net2025),
			cli.Percent(r.GrossMargin2025),
			cli.Percent(r.NetMargin2025),
			cli.Currency(r.ForecastGross),
			cli.Currency(r.ForecastNet),
			cli.Percent(r.ForecastGrossMargin),
			cli.Percent(r.ForecastNetMargin),
		})
	}
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) cycleMetric(step int) {
	if m.tab == tabMonthly {
		if m.monthly.Metric == model.MonthlyGross {
			m.monthly.Metric = model.MonthlyNet
		} else {
			m.monthly.Metric = model.MonthlyGross
		}
		return
	}
	metrics := model.AllMetrics()
	idx := 0
	for i, metric := range metrics {
		if metric == m.board.Metric {
			idx = i
			break
		}
	}
	idx = (idx + step + len(metrics)) % len(metrics)
	m.board.Metric = metrics[idx]
	m.board.SortKey = metrics[idx].Key()
}

// cycleSortKey advances the yearly table sort through the column list,
// independently of the selected metric.
func (m *Model) cycleSortKey() {
	if m.tab != tabYearly {
		return
	}
	keys := viewmodel.SortKeys()
	idx := -1
	for i, k := range keys {
		if k == m.board.SortKey {
			idx = i
			break
		}
	}
	m.board.SortKey = keys[(idx+1)%len(keys)]
}

func (m *Model) cycleMonth(step int) {
	if m.tab != tabMonthly || len(m.months) == 0 {
		return
	}
	idx := 0
	for i, month := range m.months {
		if month == m.monthly.Month {
			idx = i
			break
		}
	}
	idx = (idx + step + len(m.months)) % len(m.months)
	m.monthly.Month = m.months[idx]
}

func (m Model) criteria() analytics.Criteria {
	if m.tab == tabMonthly {
		return m.monthly.Criteria
	}
	return m.board.Criteria
}

func (m *Model) setCriteria(c analytics.Criteria) {
	if m.tab == tabMonthly {
		m.monthly.Criteria = c
		return
	}
	m.board.Criteria = c
}

func (m Model) regionOptions() []string {
	if m.tab == tabMonthly {
		return m.monthlyRegions
	}
	return m.regions
}

func (m Model) categoryOptions() []string {
	if m.tab == tabMonthly {
		return m.monthlyCategories
	}
	return m.categories
}

func (m Model) customerOptions() []string {
	if m.tab == tabMonthly {
		return m.monthlyCustomers
	}
	return m.customers
}

func withAll(options []string) []string {
	return append([]string{analytics.All}, options...)
}

func cycleOption(options []string, current string) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) == 0 {
		return analytics.All
	}
	return options[0]
}

var _ tea.Model = Model{}
