// Package tui is a terminal front end over a browser.Session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okian/trailboard/internal/adapters/client"
	"github.com/okian/trailboard/internal/browser"
	"github.com/okian/trailboard/internal/domain/paging"
	"github.com/okian/trailboard/internal/domain/types"
)

// chromeLines is the vertical space used by everything but the table rows.
const chromeLines = 9

// Fetcher loads the dataset of a distance.
type Fetcher interface {
	Runners(ctx context.Context, d types.Distance) (types.Dataset, error)
}

// loadedMsg carries the outcome of a dataset fetch.
type loadedMsg struct {
	distance types.Distance
	dataset  types.Dataset
	err      error
}

// Model is the Bubble Tea model of the runner browser.
type Model struct {
	ctx     context.Context
	fetcher Fetcher
	session *browser.Session

	table     table.Model
	search    textinput.Model
	spinner   spinner.Model
	searching bool

	width  int
	height int
}

// New returns a model that starts by loading the session's distance.
func New(ctx context.Context, fetcher Fetcher, session *browser.Session) Model {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "name or bib"
	ti.CharLimit = 128

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(paging.DefaultPageSize+3),
	)
	ApplyTableStyles(&t)

	return Model{
		ctx:     ctx,
		fetcher: fetcher,
		session: session,
		table:   t,
		search:  ti,
		spinner: NewSpinner(),
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.session.Distance()))
}

func (m Model) load(d types.Distance) tea.Cmd {
	return func() tea.Msg {
		ds, err := m.fetcher.Runners(m.ctx, d)
		return loadedMsg{distance: d, dataset: ds, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetColumns(columns(msg.Width))
		if h := msg.Height - chromeLines; h > 2 {
			m.table.SetHeight(h)
		}
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			_ = m.session.LoadFailed(m.ctx, msg.distance, msg.err)
		} else {
			_ = m.session.Loaded(msg.distance, msg.dataset)
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.session.State() != browser.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.session.Search() {
		m.session.SetSearch(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.table.Blur()
		return m, m.search.Focus()
	case "g":
		m.session.CycleGender()
	case "n":
		m.session.CycleNationality()
	case "c":
		m.session.CycleCategory()
	case "x":
		m.session.ClearFilters()
		m.session.SetSearch("")
		m.search.SetValue("")
	case "right", "l", "pgdown":
		m.session.NextPage()
	case "left", "h", "pgup":
		m.session.PrevPage()
	case "home":
		m.session.SetPage(1)
	case "end":
		m.session.SetPage(m.session.View().PageCount)
	case "d":
		ticking := m.session.State() == browser.Loading
		next := nextDistance(m.session.Distance())
		m.session.BeginLoad(next)
		m.refresh()
		if ticking {
			return m, m.load(next)
		}
		return m, tea.Batch(m.spinner.Tick, m.load(next))
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

// nextDistance cycles default -> 75k -> 55k -> 75k.
func nextDistance(d types.Distance) types.Distance {
	all := types.Distances()
	for i, x := range all {
		if x == d {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// refresh rebuilds the table rows from the session view.
func (m *Model) refresh() {
	v := m.session.View()
	rows := make([]table.Row, len(v.Rows))
	for i, e := range v.Rows {
		rows[i] = table.Row{
			strconv.Itoa(e.Rank),
			e.Runner.Bib,
			runnerLabel(e.Runner),
			e.Runner.Nationality,
			strconv.FormatFloat(e.Runner.PI, 'f', -1, 64),
			e.Category,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func runnerLabel(r types.Runner) string {
	if club, ok := r.Club.Get(); ok {
		return r.Name + " · " + club
	}
	return r.Name
}

func columns(width int) []table.Column {
	fixed := 6 + 6 + 5 + 6 + 8
	runner := width - fixed - 14
	if runner < 20 {
		runner = 20
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Bib", Width: 6},
		{Title: "Runner", Width: runner},
		{Title: "Nat", Width: 5},
		{Title: "PI", Width: 6},
		{Title: "Category", Width: 8},
	}
}

// View renders the screen.
func (m Model) View() string {
	v := m.session.View()
	var b strings.Builder

	b.WriteString(TitleStyle.Render("trailboard · " + distanceLabel(v.Distance)))
	b.WriteString("\n")
	b.WriteString(filterLine(v))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	switch v.Status {
	case browser.StatusLoading:
		b.WriteString(m.spinner.View() + " Loading runners...")
	case browser.StatusNoData:
		b.WriteString("No runner data available.")
		if v.Err != nil {
			b.WriteString("\n")
			b.WriteString(ErrorStyle.Render(errorLine(v.Err)))
		}
	case browser.StatusNoMatches:
		b.WriteString("No runners match the current filters.")
	case browser.StatusPopulated:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(windowLine(v.Window))
		b.WriteString(HintStyle.Render(fmt.Sprintf("  %d runners", v.Total)))
	}

	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("/ search · g gender · n nationality · c category · x clear · ←/→ page · d distance · q quit"))
	return b.String()
}

func distanceLabel(d types.Distance) string {
	if d == "" {
		return "all runners"
	}
	return string(d)
}

func filterLine(v browser.View) string {
	show := func(label, val string) string {
		if val == "" {
			val = "any"
		} else {
			val = AccentStyle.Render(val)
		}
		return label + ": " + val
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		show("Gender", string(v.Selection.Gender)), "   ",
		show("Nationality", v.Selection.Nationality), "   ",
		show("Category", v.Selection.Category),
	)
}

func windowLine(items []paging.Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch {
		case it.Ellipsis:
			parts = append(parts, "…")
		case it.Current:
			parts = append(parts, CurrentPageStyle.Render(" "+strconv.Itoa(it.Page)+" "))
		default:
			parts = append(parts, strconv.Itoa(it.Page))
		}
	}
	return strings.Join(parts, " ")
}

func errorLine(err error) string {
	var verr *client.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
