package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/scout/internal/api"
	"github.com/user/scout/internal/config"
	"github.com/user/scout/internal/model"
	"github.com/user/scout/internal/snapshot"
	"github.com/user/scout/internal/store"
	scoutsync "github.com/user/scout/internal/sync"
)

type appModel struct {
	handlers *scoutsync.Handlers
	list     list.Model

	postings      []model.Posting
	sources       []model.Source
	selected      model.SelectedSource
	notifications []model.Notification

	width      int
	height     int
	refreshing bool
	err        error
}

type postingItem struct {
	posting model.Posting
	source  string
}

func (p postingItem) Title() string {
	marks := ""
	if !p.posting.Seen {
		marks += "*"
	}
	if p.posting.Bookmarked {
		marks += "#"
	}
	if p.posting.IsMatch != nil {
		if *p.posting.IsMatch {
			marks += "+"
		} else {
			marks += "-"
		}
	}
	if marks != "" {
		return fmt.Sprintf("%s %s", marks, p.posting.Title)
	}
	return p.posting.Title
}

func (p postingItem) Description() string {
	desc := p.posting.Description
	if len(desc) > 80 {
		desc = desc[:80] + "..."
	}
	if p.source != "" {
		return fmt.Sprintf("%s | %s", p.source, desc)
	}
	return desc
}

func (p postingItem) FilterValue() string {
	return p.posting.Title + " " + p.posting.Description
}

func initialModel(handlers *scoutsync.Handlers) appModel {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Scout"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	m := appModel{
		handlers: handlers,
		list:     l,
		selected: model.SelectAll,
	}
	// seed from the working copies, which the snapshot may have filled
	if handlers.Postings != nil {
		m.postings = handlers.Postings.Postings()
	}
	if handlers.Sources != nil {
		m.sources = handlers.Sources.Sources()
		m.selected = handlers.Sources.SelectedSource()
	}
	m.list.SetItems(m.visibleItems())
	return m
}

type postingsMsg []model.Posting

type sourcesMsg []model.Source

type selectedMsg model.SelectedSource

type notificationsMsg []model.Notification

type refreshDoneMsg struct{ message string }

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.refreshSources, m.refreshPostings(true))
}

func (m appModel) refreshSources() tea.Msg {
	m.handlers.Sources.Refresh(context.Background())
	return nil
}

// refreshPostings pulls postings for the current selection. The visible
// update arrives through the store subscription, not the returned message.
func (m appModel) refreshPostings(useCached bool) tea.Cmd {
	selected := m.selected
	return func() tea.Msg {
		var sourceID *int
		if id, ok := selected.SourceID(); ok {
			sourceID = &id
		}
		res := m.handlers.Postings.Refresh(context.Background(), useCached, sourceID)
		if !res.Successful() {
			return refreshDoneMsg{message: res.Message}
		}
		return refreshDoneMsg{}
	}
}

func (m appModel) togglePosting(toggle func(context.Context, int) api.Result[model.Posting]) tea.Cmd {
	item, ok := m.list.SelectedItem().(postingItem)
	if !ok || item.posting.ID == nil {
		return nil
	}
	id := *item.posting.ID
	return func() tea.Msg {
		toggle(context.Background(), id)
		return nil
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.refreshing = true
			return m, m.refreshPostings(true)
		case "R":
			// full server-side re-scrape
			m.refreshing = true
			return m, m.refreshPostings(false)
		case "s":
			m.handlers.Sources.SetSelectedSource(m.nextSelection())
			return m, nil
		case "o":
			if item, ok := m.list.SelectedItem().(postingItem); ok {
				openBrowser(item.posting.URL)
				if item.posting.ID != nil {
					id := *item.posting.ID
					return m, func() tea.Msg {
						m.handlers.Postings.MarkAsRead(context.Background(), []int{id})
						return nil
					}
				}
			}
		case "enter":
			if item, ok := m.list.SelectedItem().(postingItem); ok && item.posting.ID != nil {
				id := *item.posting.ID
				return m, func() tea.Msg {
					m.handlers.Postings.MarkAsRead(context.Background(), []int{id})
					return nil
				}
			}
		case "b":
			return m, m.togglePosting(m.handlers.Postings.Bookmark)
		case "l":
			return m, m.togglePosting(m.handlers.Postings.Like)
		case "x":
			return m, m.togglePosting(m.handlers.Postings.Dislike)
		case "d":
			if len(m.notifications) > 0 {
				n := m.notifications[0]
				return m, func() tea.Msg {
					m.handlers.Notifications.Remove(n)
					return nil
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)

	case postingsMsg:
		m.postings = msg
		m.list.SetItems(m.visibleItems())

	case sourcesMsg:
		m.sources = msg
		m.list.SetItems(m.visibleItems())

	case selectedMsg:
		m.selected = model.SelectedSource(msg)
		m.list.SetItems(m.visibleItems())

	case notificationsMsg:
		m.notifications = msg

	case refreshDoneMsg:
		m.refreshing = false
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// nextSelection cycles all → today → bookmarked → each source → all.
func (m appModel) nextSelection() model.SelectedSource {
	cycle := []model.SelectedSource{model.SelectAll, model.SelectToday, model.SelectBookmarked}
	for _, s := range m.sources {
		if s.ID != nil {
			cycle = append(cycle, model.SelectSourceID(*s.ID))
		}
	}
	for i, s := range cycle {
		if s == m.selected {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return model.SelectAll
}

func (m appModel) visiblePostings() []model.Posting {
	switch m.selected {
	case model.SelectAll, "":
		return m.postings
	case model.SelectToday:
		return m.handlers.Postings.TodaysPostings()
	case model.SelectBookmarked:
		var bookmarked []model.Posting
		for _, p := range m.postings {
			if p.Bookmarked {
				bookmarked = append(bookmarked, p)
			}
		}
		return bookmarked
	}
	id, ok := m.selected.SourceID()
	if !ok {
		return m.postings
	}
	var filtered []model.Posting
	for _, p := range m.postings {
		if p.SourceID != nil && *p.SourceID == id {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (m appModel) visibleItems() []list.Item {
	postings := m.visiblePostings()
	items := make([]list.Item, 0, len(postings))
	for _, p := range postings {
		items = append(items, postingItem{posting: p, source: m.sourceName(p.SourceID)})
	}
	return items
}

func (m appModel) sourceName(id *int) string {
	if id == nil {
		return ""
	}
	for _, s := range m.sources {
		if s.ID != nil && *s.ID == *id {
			return s.Name
		}
	}
	return ""
}

func (m appModel) selectionLabel() string {
	if id, ok := m.selected.SourceID(); ok {
		if name := m.sourceName(&id); name != "" {
			return name
		}
	}
	return string(m.selected)
}

func (m appModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Bold(true)

	header := fmt.Sprintf("Source: %s", m.selectionLabel())
	if m.refreshing {
		header += "  (refreshing...)"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	b.WriteString(m.list.View())

	if len(m.notifications) > 0 {
		noteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		n := m.notifications[0]
		b.WriteString("\n")
		b.WriteString(noteStyle.Render(fmt.Sprintf("[%s] %s (d to dismiss)", n.Severity, n.Message)))
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		MarginTop(1)

	help := "[r]efresh [R]escrape [s]ource [o]pen [Enter]read [b]ookmark [l]ike [x]dislike [q]uit"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		cmd.Start()
	}
}

// Run starts the TUI application.
func Run(cfg *config.Config) error {
	client := api.NewClient(cfg.ServerURL, cfg.APIVersion, cfg.Timeout())
	reg := store.NewRegistry()

	snap, err := snapshot.NewStore(cfg.SnapshotPath())
	if err == nil {
		defer snap.Close()
		// last known server state, shown until the first refresh lands
		if err := snapshot.Restore(snap, reg); err != nil {
			return fmt.Errorf("failed to restore snapshot: %w", err)
		}
		defer snapshot.Persist(snap, reg)()
	}

	handlers := scoutsync.NewHandlers(reg, client)
	defer handlers.Close()

	p := tea.NewProgram(initialModel(handlers), tea.WithAltScreen())

	unsubs := []func(){
		reg.Postings.Subscribe(func(v []model.Posting) { p.Send(postingsMsg(v)) }),
		reg.Sources.Subscribe(func(v []model.Source) { p.Send(sourcesMsg(v)) }),
		reg.SelectedSource.Subscribe(func(v model.SelectedSource) { p.Send(selectedMsg(v)) }),
		reg.Notifications.Subscribe(func(v []model.Notification) { p.Send(notificationsMsg(v)) }),
	}
	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	_, err = p.Run()
	return err
}
