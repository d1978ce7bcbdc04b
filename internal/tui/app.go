package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/fluidcss/internal/config"
	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/generate"
	"github.com/pders01/fluidcss/internal/preset"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/storage"
)

// Parameter form field order.
const (
	fieldMinBase = iota
	fieldMaxBase
	fieldMinViewport
	fieldMaxViewport
	fieldMinRatio
	fieldMaxRatio
	paramFieldCount
)

var paramLabels = [paramFieldCount]string{
	"min size (px)",
	"max size (px)",
	"min viewport (px)",
	"max viewport (px)",
	"min scale ratio",
	"max scale ratio",
}

type App struct {
	config     *config.Config
	store      *storage.Store
	controller *generate.Controller
	keyHandler *KeyHandler

	entryList   list.Model
	presetList  list.Model
	textInput   textinput.Model
	paramInputs []textinput.Model
	paramFocus  int
	viewport    viewport.Model

	view         View
	previousView View
	renameID     int
	rowCSS       string
	ratioTarget  int // param field a picked ratio preset lands in

	presets []preset.Preset

	width  int
	height int

	err        error
	status     string
	statusSeq  int
	undoActive bool
	latestCSS  string

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

// NewApp wires the TUI around a controller. The store may be nil (tests
// run without persistence).
func NewApp(store *storage.Store, ctrl *generate.Controller, cfg *config.Config, presets []preset.Preset) *App {
	entryList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	entryList.SetShowStatusBar(false)
	entryList.SetFilteringEnabled(true)
	entryList.SetShowHelp(true) // Let Charm show native help

	presetList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	presetList.Title = "› scale ratio presets"
	presetList.SetShowStatusBar(false)
	presetList.SetFilteringEnabled(false)
	presetList.SetShowHelp(false)

	presetItems := make([]list.Item, len(presets))
	for i, p := range presets {
		presetItems[i] = presetItem{preset: p}
	}
	presetList.SetItems(presetItems)

	ti := textinput.New()
	ti.Placeholder = "size-name"
	ti.CharLimit = 64

	inputs := make([]textinput.Model, paramFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = paramLabels[i]
		in.CharLimit = 12
		in.Width = 16
		inputs[i] = in
	}

	vp := viewport.New(0, 0)

	app := &App{
		config:      cfg,
		store:       store,
		controller:  ctrl,
		entryList:   entryList,
		presetList:  presetList,
		textInput:   ti,
		paramInputs: inputs,
		viewport:    vp,
		view:        ViewEntries,
		presets:     presets,
	}

	app.keyHandler = NewKeyHandler(app, cfg)
	ctrl.SetPrefix(cssgen.KindClass, cfg.Generator.ClassPrefix)
	ctrl.SetPrefix(cssgen.KindVariable, cfg.Generator.VariablePrefix)
	for _, t := range ctrl.Tables() {
		t.SetUndoWindow(cfg.Generator.UndoWindow)
	}
	ctrl.SetTarget(app)
	app.refreshEntries()

	return app
}

// Render receives regenerated CSS from the controller. The app is the
// render-target collaborator; the preview pane picks the text up from
// here.
func (a *App) Render(css string) {
	a.latestCSS = css
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wrapWidth := (a.width * 9) / 10
	if wrapWidth > 120 {
		wrapWidth = 120
	}
	if wrapWidth < 40 {
		wrapWidth = 40
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.entryList.SetSize(msg.Width, msg.Height-5)
		a.presetList.SetSize(msg.Width, msg.Height-5)
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 5

		inputWidth := msg.Width - 4
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.textInput.Width = inputWidth

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case savedMsg:
		if msg.err != nil {
			a.err = msg.err
		}

	case copiedMsg:
		if msg.err != nil {
			a.err = msg.err
		} else if msg.row {
			cmds = append(cmds, a.setStatus(MsgRowCopied))
		} else {
			cmds = append(cmds, a.setStatus(MsgCopied))
		}

	case previewMsg:
		if msg.err != nil {
			a.err = msg.err
		} else if a.view == ViewPreview {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
		}

	case undoTickMsg:
		deadline, pending := a.controller.ActiveTable().PendingUndo()
		if pending {
			remaining := int(time.Until(deadline).Seconds() + 0.5)
			if remaining < 0 {
				remaining = 0
			}
			a.status = MsgUndoCountdown(remaining)
			cmds = append(cmds, undoTick())
		} else if a.undoActive {
			a.undoActive = false
			a.status = ""
		}

	case statusExpiredMsg:
		if msg.seq == a.statusSeq && !a.undoActive {
			a.status = ""
		}
	}

	switch a.view {
	case ViewEntries:
		newListModel, cmd := a.entryList.Update(msg)
		a.entryList = newListModel
		cmds = append(cmds, cmd)
	case ViewRatioPick:
		newListModel, cmd := a.presetList.Update(msg)
		a.presetList = newListModel
		cmds = append(cmds, cmd)
	case ViewPreview, ViewRowCSS:
		switch msg.(type) {
		case tea.KeyMsg, tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	case ViewAddEntry, ViewRenameEntry:
		newTextInput, cmd := a.textInput.Update(msg)
		a.textInput = newTextInput
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// setStatus flashes a transient message in the status bar.
func (a *App) setStatus(s string) tea.Cmd {
	a.status = s
	a.err = nil
	a.statusSeq++
	return expireStatus(a.statusSeq, 4*time.Second)
}

// refreshEntries rebuilds the entry list items from the controller's
// current table and bounds.
func (a *App) refreshEntries() {
	entries := a.controller.Entries()
	params := a.controller.Parameters()
	anchorID := a.controller.ActiveTable().AnchorID()

	items := make([]list.Item, len(entries))
	for i, e := range entries {
		b := a.controller.EntryBounds(e.ID)
		clamp := scale.BuildClamp(float64(b.Min), float64(b.Max), params.MinViewport, params.MaxViewport, params.Unit)
		items[i] = entryItem{entry: e, bounds: b, clamp: clamp, anchor: e.ID == anchorID}
	}
	a.entryList.SetItems(items)
	a.entryList.Title = "› " + strings.ToLower(a.controller.ActiveKind().Title())
}

// selectedEntry returns the entry under the list cursor.
func (a *App) selectedEntry() (entryItem, bool) {
	i, ok := a.entryList.SelectedItem().(entryItem)
	return i, ok
}

// openParams seeds the form from the live parameters and focuses the
// first field.
func (a *App) openParams() {
	p := a.controller.Parameters()
	values := [paramFieldCount]string{
		strconv.FormatFloat(p.MinBaseValue, 'f', -1, 64),
		strconv.FormatFloat(p.MaxBaseValue, 'f', -1, 64),
		strconv.Itoa(p.MinViewport),
		strconv.Itoa(p.MaxViewport),
		strconv.FormatFloat(p.MinScaleRatio, 'f', -1, 64),
		strconv.FormatFloat(p.MaxScaleRatio, 'f', -1, 64),
	}
	for i := range a.paramInputs {
		a.paramInputs[i].SetValue(values[i])
		a.paramInputs[i].Blur()
	}
	a.paramFocus = 0
	a.paramInputs[0].Focus()
	a.view = ViewParams
}

// applyParams parses the form and hands the result to the controller.
// Out-of-range values come back as corrections, not failures.
func (a *App) applyParams() ([]scale.Correction, error) {
	parseFloat := func(idx int) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(a.paramInputs[idx].Value()), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: not a number", paramLabels[idx])
		}
		return v, nil
	}
	parseInt := func(idx int) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(a.paramInputs[idx].Value()))
		if err != nil {
			return 0, fmt.Errorf("%s: not a whole number", paramLabels[idx])
		}
		return v, nil
	}

	p := a.controller.Parameters()
	var err error
	if p.MinBaseValue, err = parseFloat(fieldMinBase); err != nil {
		return nil, err
	}
	if p.MaxBaseValue, err = parseFloat(fieldMaxBase); err != nil {
		return nil, err
	}
	if p.MinViewport, err = parseInt(fieldMinViewport); err != nil {
		return nil, err
	}
	if p.MaxViewport, err = parseInt(fieldMaxViewport); err != nil {
		return nil, err
	}
	if p.MinScaleRatio, err = parseFloat(fieldMinRatio); err != nil {
		return nil, err
	}
	if p.MaxScaleRatio, err = parseFloat(fieldMaxRatio); err != nil {
		return nil, err
	}

	return a.controller.SetParameters(p), nil
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewEntries:
		content = lipgloss.JoinVertical(lipgloss.Top, a.renderTabs(), a.entryList.View())

	case ViewParams:
		content = a.renderParamsForm()

	case ViewPreview:
		content = a.viewport.View()

	case ViewAddEntry:
		content = renderCentered(a.width, a.height-3,
			lipgloss.JoinVertical(
				lipgloss.Center,
				TitleStyle.Render("› add entry"),
				"",
				renderInputFrame(a.textInput.View(), a.textInput.Focused(), minInt(a.width-8, 40)),
				"",
				HelpStyle.Render("Press Enter to add, Esc to cancel"),
			),
		)

	case ViewRenameEntry:
		content = renderCentered(a.width, a.height-3,
			lipgloss.JoinVertical(
				lipgloss.Center,
				TitleStyle.Render("› rename entry"),
				"",
				renderInputFrame(a.textInput.View(), a.textInput.Focused(), minInt(a.width-8, 40)),
				"",
				HelpStyle.Render("Press Enter to rename, Esc to cancel"),
			),
		)

	case ViewClearConfirm:
		content = a.renderClearConfirm()

	case ViewRowCSS:
		content = renderCentered(a.width, a.height-3, CSSBlockStyle.Render(a.rowCSS))

	case ViewRatioPick:
		header := HeaderStyle.Render("› pick a ratio for " + paramLabels[a.ratioTarget])
		content = lipgloss.JoinVertical(lipgloss.Top, header, a.presetList.View())
	}

	statusBar := a.renderStatusBar()
	if statusBar != "" {
		separatorWidth := a.width - 2
		if separatorWidth < 0 {
			separatorWidth = 0
		}
		separator := SeparatorStyle.Render(strings.Repeat("─", separatorWidth+1))
		return lipgloss.JoinVertical(lipgloss.Top, content, separator, statusBar)
	}

	return content
}

func (a *App) renderTabs() string {
	unit := a.controller.Parameters().Unit
	tabs := make([]string, 0, 5)
	tabs = append(tabs, lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).Padding(0, 1).Render(CompactLogo))
	for _, kind := range cssgen.Kinds() {
		if kind == a.controller.ActiveKind() {
			tabs = append(tabs, ActiveTabStyle.Render(kind.Title()))
		} else {
			tabs = append(tabs, TabStyle.Render(kind.Title()))
		}
	}
	tabs = append(tabs, renderMuted(fmt.Sprintf("  unit: %s", unit)))
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

func (a *App) renderParamsForm() string {
	rows := make([]string, 0, paramFieldCount*2+3)
	rows = append(rows, TitleStyle.Render("› generation parameters"), "")
	for i := range a.paramInputs {
		label := paramLabels[i]
		if a.paramFocus == i {
			label = HeaderStyle.Render(label)
		} else {
			label = renderMuted(label)
		}
		rows = append(rows, label, a.paramInputs[i].View())
	}
	rows = append(rows, "", HelpStyle.Render("Tab/↓: next • Shift+Tab/↑: previous • Enter: apply • Esc: cancel"))

	return renderCentered(a.width, a.height-3, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a *App) renderClearConfirm() string {
	kind := a.controller.ActiveKind()
	count := len(a.controller.Entries())
	window := int(a.config.Generator.UndoWindow.Seconds())

	return renderCentered(a.width, a.height-3,
		lipgloss.JoinVertical(
			lipgloss.Center,
			ErrorMessageStyle.Render("⚠ Clear All Entries"),
			"",
			ModalTextStyle.Render(fmt.Sprintf("Remove all %d entries from the %s table?", count, kind)),
			"",
			ModalHighlightStyle.Render(fmt.Sprintf("Undo stays available for %d seconds.", window)),
			"",
			"",
			HelpStyle.Render("Enter: confirm • Esc: cancel"),
		),
	)
}

func (a *App) renderStatusBar() string {
	if a.err != nil {
		msg := ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err))
		return lipgloss.NewStyle().Width(a.width).Padding(0, 1).Render(msg)
	}

	if a.status != "" {
		msg := SuccessMessageStyle.Render(a.status)
		return lipgloss.NewStyle().Width(a.width).Padding(0, 1).Render(msg)
	}

	commands := a.keyHandler.GetHelpForCurrentView()
	if len(commands) == 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Padding(0, 1).
		Foreground(MutedColor).
		Render(strings.Join(commands, " • "))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
