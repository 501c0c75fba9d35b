package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/libpanel/pkg/detail"
	"github.com/matzehuels/libpanel/pkg/library"
	"github.com/matzehuels/libpanel/pkg/registry"
)

var (
	footerStyle = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Messages
// =============================================================================

// lookupMsg tells the model to re-read the lookup state.
type lookupMsg struct{}

// openedMsg reports the result of opening a target.
type openedMsg struct {
	url string
	err error
}

// =============================================================================
// PanelModel - Interactive library detail panel
// =============================================================================

// PanelModel is the bubbletea model for the library detail panel. It renders
// immediately with whatever author is known and re-renders when the lookup
// reports a change.
type PanelModel struct {
	ctx    context.Context
	lib    *library.Library
	opts   detail.Options
	lookup *registry.Lookup
	opener detail.Opener

	state   registry.State
	panel   detail.Panel
	targets []detail.Target
	cursor  int
	width   int
	status  string
}

// NewPanelModel creates a panel model. The author lookup starts in Init.
func NewPanelModel(ctx context.Context, lib *library.Library, opts detail.Options, lookup *registry.Lookup, opener detail.Opener) PanelModel {
	m := PanelModel{
		ctx:    ctx,
		lib:    lib,
		opts:   opts,
		lookup: lookup,
		opener: opener,
		width:  60,
	}
	return m.rebuild()
}

// rebuild recomputes the panel from the current author state.
func (m PanelModel) rebuild() PanelModel {
	m.panel = detail.NewPanel(m.lib, m.state.AuthorName(), m.opts)
	m.targets = m.panel.Metadata.Targets()
	if m.cursor >= len(m.targets) {
		m.cursor = max(len(m.targets)-1, 0)
	}
	return m
}

// Init starts the author lookup. Request must not run before the program
// does, since completion is delivered through Program.Send.
func (m PanelModel) Init() tea.Cmd {
	return func() tea.Msg {
		m.lookup.Request(m.ctx, m.lib.NpmPkg)
		return lookupMsg{}
	}
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case lookupMsg:
		m.state = m.lookup.State()
		return m.rebuild(), nil
	case openedMsg:
		if msg.err != nil {
			m.status = "open failed: " + msg.err.Error()
		} else {
			m.status = "opened " + msg.url
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k", "shift+tab":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "tab":
			if m.cursor < len(m.targets)-1 {
				m.cursor++
			}
		case "enter", "o":
			if t, ok := m.selected(); ok {
				return m, m.open(t.Action)
			}
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
	}
	return m, nil
}

func (m PanelModel) selected() (detail.Target, bool) {
	if m.cursor < 0 || m.cursor >= len(m.targets) {
		return detail.Target{}, false
	}
	return m.targets[m.cursor], true
}

func (m PanelModel) open(a detail.Action) tea.Cmd {
	opener, ctx := m.opener, m.ctx
	return func() tea.Msg {
		return openedMsg{url: a.URL, err: opener.Open(ctx, a)}
	}
}

func (m PanelModel) View() string {
	var b strings.Builder

	var sel *detail.Target
	if t, ok := m.selected(); ok {
		sel = &t
	}
	b.WriteString(renderPanel(m.panel, sel, m.width))
	b.WriteString("\n\n")

	switch m.state.Status {
	case registry.StatusIdle, registry.StatusPending:
		b.WriteString(statusStyle.Render("resolving author of " + m.lib.NpmPkg + "…"))
		b.WriteString("\n")
	case registry.StatusFailed:
		b.WriteString(StyleWarning.Render("author unavailable: " + m.state.Err.Error()))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("↑/↓ select  ⏎ open  q quit  [%d/%d]", min(m.cursor+1, len(m.targets)), len(m.targets))))
	return b.String()
}
