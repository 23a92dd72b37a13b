package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hamrotrack/internal/episode"
	"hamrotrack/internal/show"
)

type showState int

const (
	showStateCatalog showState = iota
	showStateEpisodes
)

// epItem wraps an episode to implement list.Item.
type epItem struct {
	ep episode.Episode
}

func (i epItem) Title() string {
	mark := "[ ]"
	if i.ep.Watched {
		mark = "[x]"
	}

	return fmt.Sprintf("%s S%02dE%02d  %s", mark, i.ep.SeasonNumber, i.ep.EpisodeNumber, i.ep.Title)
}

func (i epItem) Description() string {
	if i.ep.AirDate == nil {
		return ""
	}

	return fmt.Sprintf("Aired %s", FormatDate(*i.ep.AirDate))
}

func (i epItem) FilterValue() string { return i.ep.Title }

type ShowsModel struct {
	CommonModel
	shows    *show.Store
	episodes *episode.Store

	state        showState
	cursor       int
	selectedShow show.Show
	epList       list.Model

	loading bool
	err     error
	status  string
}

func NewShowsModel(shows *show.Store, episodes *episode.Store) ShowsModel {
	l := list.New([]list.Item{}, epItemDelegate{}, 80, 20)
	l.Title = "Episodes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return ShowsModel{
		shows:    shows,
		episodes: episodes,
		epList:   l,
		loading:  true,
	}
}

func (m ShowsModel) Title() string { return "Shows" }

func (m ShowsModel) ShortHelp() string {
	if m.state == showStateEpisodes {
		return "Esc: back | Space: toggle watched | /: filter | r: refresh"
	}

	return "Esc: back | Enter: open | r: refresh"
}

func (m ShowsModel) Init() tea.Cmd {
	return m.loadShowsCmd()
}

func (m ShowsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case showsLoadedMsg:
		m.loading = false
		m.err = msg.err

		return m, nil

	case episodesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.refreshEpisodeList()

		return m, nil

	case watchToggledMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = ""
		}

		m.refreshEpisodeList()

		return m, nil

	case tea.WindowSizeMsg:
		m.epList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil
	}

	switch m.state {
	case showStateCatalog:
		return m.updateCatalog(msg)
	case showStateEpisodes:
		return m.updateEpisodes(msg)
	}

	return m, nil
}

func (m ShowsModel) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := m.shows.Items()

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadShowsCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < 0 || m.cursor >= len(items) {
			return m, nil
		}

		m.selectedShow = items[m.cursor]
		m.state = showStateEpisodes
		m.loading = true
		m.status = ""

		return m, m.loadEpisodesCmd()
	}

	return m, nil
}

func (m ShowsModel) updateEpisodes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			if m.epList.FilterState() == list.Filtering {
				break // let the list close the filter
			}

			m.state = showStateCatalog
			m.status = ""

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadEpisodesCmd()
		case " ":
			if m.epList.FilterState() == list.Filtering {
				break
			}

			return m, m.toggleCmd()
		}
	}

	var cmd tea.Cmd
	m.epList, cmd = m.epList.Update(msg)

	return m, cmd
}

func (m ShowsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.state {
	case showStateCatalog:
		return m.viewCatalog()
	case showStateEpisodes:
		return m.viewEpisodes()
	}

	return ""
}

func (m ShowsModel) viewCatalog() string {
	items := m.shows.Items()
	if len(items) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No shows in the catalog.")
	}

	s := "Pick a show:\n\n"

	for i, sh := range items {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, sh.Title)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ShowsModel) viewEpisodes() string {
	progress := m.episodes.Progress()

	header := fmt.Sprintf("%s — %d/%d watched (%.1f%%)",
		m.selectedShow.Title, progress.Watched, progress.Total, progress.Percent)

	seasonLine := ""
	for _, sp := range progress.Seasons {
		seasonLine += fmt.Sprintf("S%02d %d/%d (%.0f%%)  ", sp.Season, sp.Watched, sp.Total, sp.Percent)
	}

	content := activeStyle(header) + "\n" + faint(seasonLine) + "\n\n" + m.epList.View()

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ShowsModel) refreshEpisodeList() {
	eps := m.episodes.Items()

	items := make([]list.Item, len(eps))
	for i, e := range eps {
		items[i] = epItem{ep: e}
	}

	m.epList.SetItems(items)
}

// Messages

type showsLoadedMsg struct {
	err error
}

func (m ShowsModel) loadShowsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		return showsLoadedMsg{err: m.shows.Fetch(ctx)}
	}
}

type episodesLoadedMsg struct {
	err error
}

func (m ShowsModel) loadEpisodesCmd() tea.Cmd {
	showID := m.selectedShow.ID
	store := m.episodes

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		return episodesLoadedMsg{err: store.Fetch(ctx, showID)}
	}
}

type watchToggledMsg struct {
	err error
}

func (m ShowsModel) toggleCmd() tea.Cmd {
	selected, ok := m.epList.SelectedItem().(epItem)
	if !ok {
		return nil
	}

	id := selected.ep.ID
	store := m.episodes

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		return watchToggledMsg{err: store.Toggle(ctx, id)}
	}
}

// epItemDelegate renders episodes in the list.
type epItemDelegate struct{}

func (d epItemDelegate) Height() int                             { return 2 }
func (d epItemDelegate) Spacing() int                            { return 0 }
func (d epItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d epItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(epItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	desc := i.Description()
	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "      %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
