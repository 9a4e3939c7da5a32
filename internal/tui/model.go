package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitaminmoo/cmisw-tool/internal/ble"
	"github.com/vitaminmoo/cmisw-tool/internal/cmis"
	"github.com/vitaminmoo/cmisw-tool/internal/render"
	"github.com/vitaminmoo/cmisw-tool/internal/store"
)

// View represents different screens in the TUI.
type View int

const (
	ViewMain View = iota
	ViewStore
	ViewStoreDetail
	ViewRead
)

// MenuItem represents a main menu option.
type MenuItem struct {
	Title       string
	Description string
}

// Model is the main Bubbletea model for the TUI.
type Model struct {
	// State
	view      View
	cursor    int
	menuItems []MenuItem
	width     int
	height    int

	// Store data
	profiles     []store.Entry
	selectedHash string
	detail       string
	detailMeta   *store.Metadata

	// Module read state
	reading    bool
	readResult string

	errorMsg  string
	statusMsg string

	// Components
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	styles   Styles
}

// NewModel creates the initial TUI model.
func NewModel() Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Highlight

	return Model{
		view: ViewMain,
		menuItems: []MenuItem{
			{Title: "Profiles", Description: "Browse stored module profiles"},
			{Title: "Read module", Description: "Read the inserted module over BLE"},
			{Title: "Quit", Description: "Exit cmisw"},
		},
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		styles:  styles,
	}
}

// --- Custom messages for async operations ---

// profilesMsg delivers the store listing.
type profilesMsg struct {
	entries []store.Entry
	err     error
}

// detailMsg delivers one profile's decoded report.
type detailMsg struct {
	hash   string
	report string
	meta   *store.Metadata
	err    error
}

// readDoneMsg signals a finished BLE module read.
type readDoneMsg struct {
	hash  string
	size  int
	isNew bool
	err   error
}

// --- Commands ---

func loadProfiles() tea.Msg {
	s, err := store.OpenDefault()
	if err != nil {
		return profilesMsg{err: err}
	}
	entries, err := s.List()
	return profilesMsg{entries: entries, err: err}
}

func loadDetail(hash string) tea.Cmd {
	return func() tea.Msg {
		s, err := store.OpenDefault()
		if err != nil {
			return detailMsg{hash: hash, err: err}
		}
		data, err := s.Get(hash)
		if err != nil {
			return detailMsg{hash: hash, err: err}
		}
		mod, err := cmis.Decode(data)
		if err != nil {
			return detailMsg{hash: hash, err: err}
		}
		meta, _ := s.GetMetadata(hash)
		return detailMsg{hash: hash, report: render.Module(mod), meta: meta}
	}
}

func readModule() tea.Msg {
	device, err := ble.Find()
	if err != nil {
		return readDoneMsg{err: err}
	}
	defer device.Disconnect()

	ctx, err := ble.Setup(device)
	if err != nil {
		return readDoneMsg{err: err}
	}

	data, err := ble.ReadModuleMemory(ctx)
	if err != nil {
		return readDoneMsg{err: err}
	}

	s, err := store.OpenDefault()
	if err != nil {
		return readDoneMsg{err: err}
	}
	hash, isNew, err := s.Import(data, store.Source{
		Timestamp: time.Now(),
		Method:    "module_read",
	})
	if err != nil {
		return readDoneMsg{err: err}
	}
	return readDoneMsg{hash: hash, size: len(data), isNew: isNew}
}

// --- Bubbletea interface ---

func (m Model) Init() tea.Cmd {
	return loadProfiles
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport = viewport.New(msg.Width-4, msg.Height-8)
		if m.detail != "" {
			m.viewport.SetContent(m.detail)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.reading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case profilesMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.errorMsg = ""
		m.profiles = msg.entries
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			return m, nil
		}
		m.errorMsg = ""
		m.selectedHash = msg.hash
		m.detail = msg.report
		m.detailMeta = msg.meta
		m.viewport.SetContent(m.detail)
		m.viewport.GotoTop()
		m.view = ViewStoreDetail
		return m, nil

	case readDoneMsg:
		m.reading = false
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			m.readResult = ""
			return m, nil
		}
		m.errorMsg = ""
		state := "existing profile"
		if msg.isNew {
			state = "new"
		}
		m.readResult = fmt.Sprintf("Read %d bytes, saved as %s (%s)",
			msg.size, store.ShortHash(msg.hash), state)
		return m, tea.Cmd(loadProfiles)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.view {
	case ViewMain:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.menuItems)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			return m.selectMain()
		}

	case ViewStore:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.profiles)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.profiles) > 0 {
				return m, loadDetail(m.profiles[m.cursor].Hash)
			}
		case key.Matches(msg, m.keys.Refresh):
			return m, tea.Cmd(loadProfiles)
		case key.Matches(msg, m.keys.Back):
			m.view = ViewMain
			m.cursor = 0
		}

	case ViewStoreDetail:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.view = ViewStore
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case ViewRead:
		switch {
		case key.Matches(msg, m.keys.Read), key.Matches(msg, m.keys.Select):
			if !m.reading {
				m.reading = true
				m.readResult = ""
				m.errorMsg = ""
				return m, tea.Batch(m.spinner.Tick, tea.Cmd(readModule))
			}
		case key.Matches(msg, m.keys.Back):
			if !m.reading {
				m.view = ViewMain
				m.cursor = 0
			}
		}
	}

	return m, nil
}

func (m Model) selectMain() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0:
		m.view = ViewStore
		m.cursor = 0
		return m, tea.Cmd(loadProfiles)
	case 1:
		m.view = ViewRead
		return m, nil
	case 2:
		return m, tea.Quit
	}
	return m, nil
}

// --- Views ---

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("cmisw") + " " +
		m.styles.Subtitle.Render("CMIS module tool"))
	b.WriteString("\n\n")

	switch m.view {
	case ViewMain:
		b.WriteString(m.viewMain())
	case ViewStore:
		b.WriteString(m.viewStore())
	case ViewStoreDetail:
		b.WriteString(m.viewDetail())
	case ViewRead:
		b.WriteString(m.viewRead())
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + m.styles.Error.Render("Error: "+m.errorMsg))
	}

	b.WriteString("\n" + m.styles.Help.Render(m.help.View(m.keys)))

	return m.styles.App.Render(b.String())
}

func (m Model) viewMain() string {
	var b strings.Builder
	for i, item := range m.menuItems {
		if i == m.cursor {
			b.WriteString(m.styles.MenuItemSelected.Render("> "+item.Title) + "\n")
		} else {
			b.WriteString(m.styles.MenuItem.Render("  "+item.Title) + "\n")
		}
		b.WriteString(m.styles.MenuItemDim.Render(item.Description) + "\n")
	}
	return b.String()
}

func (m Model) viewStore() string {
	if len(m.profiles) == 0 {
		return m.styles.Muted.Render("No profiles in store. Read a module or import a file.")
	}

	var b strings.Builder
	b.WriteString(m.styles.TitleBar.Render(fmt.Sprintf("Profiles (%d)", len(m.profiles))) + "\n")
	for i, p := range m.profiles {
		line := fmt.Sprintf("%s  %-16s  %-20s  %s",
			store.ShortHash(p.Hash), p.VendorName, p.PartNumber, p.SerialNumber)
		if i == m.cursor {
			b.WriteString(m.styles.MenuItemSelected.Render("> "+line) + "\n")
		} else {
			b.WriteString(m.styles.MenuItem.Render("  "+line) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewDetail() string {
	var b strings.Builder
	title := store.ShortHash(m.selectedHash)
	if m.detailMeta != nil {
		title = fmt.Sprintf("%s - %s %s", title,
			m.detailMeta.Identity.VendorName, m.detailMeta.Identity.PartNumber)
	}
	b.WriteString(m.styles.TitleBar.Render(title) + "\n")
	b.WriteString(m.viewport.View())
	return b.String()
}

func (m Model) viewRead() string {
	var b strings.Builder
	b.WriteString(m.styles.TitleBar.Render("Read module") + "\n")
	if m.reading {
		b.WriteString(m.spinner.View() + " Reading module memory over BLE...")
	} else if m.readResult != "" {
		b.WriteString(m.styles.Success.Render(m.readResult))
	} else {
		b.WriteString(m.styles.Muted.Render("Press enter to scan for the XCVR Wizard and read the inserted module."))
	}
	return b.String()
}
