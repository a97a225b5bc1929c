package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	DetailView
)

// Searcher receives query edits and detail requests. Results come back as [Msg] values.
type Searcher interface {
	Submit(query models.SearchQuery)
	LoadTracks(albumID int64)
}

// Model represents the TUI application state.
type Model struct {
	view     ViewState
	searcher Searcher
	scope    models.Scope
	query    models.SearchQuery
	input    textinput.Model
	albums   []models.Album
	results  list.Model
	selected *models.Album
	tracks   list.Model
	loading  bool
	notice   string
	width    int
	height   int
	help     help.Model
	keys     keyMap
	now      func() time.Time
	open     func(url string) error
}

// NewModel creates a new TUI model that sends queries to searcher, starting in scope.
func NewModel(searcher Searcher, scope models.Scope) *Model {
	input := textinput.New()
	input.Placeholder = "Search albums"
	input.Prompt = "› "
	input.CharLimit = 200
	input.Focus()

	m := &Model{
		view:     SearchView,
		searcher: searcher,
		scope:    scope,
		query:    models.NewSearchQuery("", scope),
		input:    input,
		results:  newList("Albums"),
		tracks:   newList("Tracks"),
		help:     help.New(),
		keys:     newKeyMap(),
		now:      time.Now,
		open:     shared.OpenBrowser,
	}
	m.syncPlaceholder()
	return m
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}

		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgResultsChanged:
		albums, _ := msg.data.([]models.Album)
		m.albums = albums
		m.notice = ""
		cmd := m.results.SetItems(albumItems(albums))
		m.results.ResetSelected()
		return m, cmd

	case MsgCatalogError:
		e, _ := msg.data.(catalogError)
		m.notice = fmt.Sprintf("%s (%s)", e.message, e.kind)
		m.loading = false
		return m, nil

	case MsgTracksLoaded:
		loaded, _ := msg.data.(tracksLoaded)
		if m.selected == nil || m.selected.ID != loaded.albumID {
			return m, nil
		}
		m.loading = false
		cmd := m.tracks.SetItems(trackItems(loaded.tracks))
		m.tracks.ResetSelected()
		return m, cmd

	case MsgNotice:
		m.notice, _ = msg.data.(string)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		m.results, cmd = m.results.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.scope):
		m.scope = m.scope.Toggle()
		m.syncPlaceholder()
		m.submit(true)
		return m, nil

	case key.Matches(msg, m.keys.enter):
		item, ok := m.results.SelectedItem().(albumItem)
		if !ok {
			return m, nil
		}
		m.openDetail(item.album)
		return m, nil

	case key.Matches(msg, m.keys.back):
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.submit(false)
		}
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	m.submit(false)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		m.view = SearchView
		m.selected = nil
		m.loading = false
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.artwork):
		if m.selected == nil || m.selected.Artwork() == "" {
			return m, nil
		}
		return m, m.openArtwork(m.selected.Artwork())
	}

	var cmd tea.Cmd
	m.tracks, cmd = m.tracks.Update(msg)
	return m, cmd
}

// submit hands the current input to the searcher when the query changed. force resubmits an
// unchanged query, which a scope switch needs.
func (m *Model) submit(force bool) {
	q := models.NewSearchQuery(m.input.Value(), m.scope)
	if !force && q == m.query {
		return
	}
	m.query = q
	m.searcher.Submit(q)
}

func (m *Model) openDetail(album models.Album) {
	m.selected = &album
	m.view = DetailView
	m.loading = true
	m.input.Blur()
	m.tracks.SetItems(nil)
	m.tracks.Title = album.CollectionName
	m.searcher.LoadTracks(album.ID)
}

func (m *Model) openArtwork(url string) tea.Cmd {
	open := m.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return noticeMsg(err.Error())
		}
		return nil
	}
}

func (m *Model) syncPlaceholder() {
	if m.scope == models.ByArtist {
		m.input.Placeholder = "Search artists"
	} else {
		m.input.Placeholder = "Search albums"
	}
}

func (m *Model) resize() {
	listHeight := max(m.height-8, 0)
	m.results.SetSize(m.width, listHeight)
	m.tracks.SetSize(m.width, max(listHeight-4, 0))
	m.input.Width = max(m.width-4, 0)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DetailView:
		return m.renderDetail()
	default:
		return m.renderSearch()
	}
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return styles.notice.Render(m.notice) + "\n"
}

func (m *Model) renderSearch() string {
	var b strings.Builder

	title := "Search by album"
	if m.scope == models.ByArtist {
		title = "Search by artist"
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderNotice())

	switch {
	case len(m.albums) > 0:
		b.WriteString(m.results.View())
	case !m.query.IsEmpty():
		b.WriteString(styles.muted.Render("No albums yet."))
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.scope, m.keys.quit}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}
	a := m.selected

	var b strings.Builder
	b.WriteString(styles.title.Render(a.CollectionName))
	b.WriteString("\n")
	b.WriteString(styles.ok.Render(a.ArtistName))
	b.WriteString("\n")
	if line := formatter.ReleaseLine(a.ReleaseDate); line != "" {
		b.WriteString(styles.muted.Render(fmt.Sprintf("%s • %s", line, formatter.ReleaseAge(a.ReleaseDate, m.now()))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderNotice())

	if m.loading {
		b.WriteString(styles.warn.Render("Loading tracks..."))
	} else {
		b.WriteString(m.tracks.View())
	}

	if c := formatter.CopyrightLine(a.Copyright); c != "" {
		b.WriteString("\n")
		b.WriteString(styles.help.Render(c))
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.artwork, m.keys.back, m.keys.quit}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}
