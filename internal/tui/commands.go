package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/fluidcss/internal/debuglog"
)

type savedMsg struct {
	err error
}

type copiedMsg struct {
	err error
	row bool
}

type previewMsg struct {
	content string
	err     error
}

type undoTickMsg struct{}

type statusExpiredMsg struct {
	seq int
}

// saveState persists the parameters and all three tables in the
// background. The settings blob is small; writes are cheap enough to
// run after every mutation.
func (a *App) saveState() tea.Cmd {
	if a.store == nil {
		return nil
	}
	params := a.controller.Parameters()
	tables := a.controller.Tables()
	store := a.store
	return func() tea.Msg {
		if err := store.SaveAll(params, tables); err != nil {
			debuglog.Errorf("saving state: %v", err)
			return savedMsg{err: wrapErr("saving", err)}
		}
		return savedMsg{}
	}
}

// copyCSS hands generated text to the system clipboard.
func copyCSS(css string, row bool) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(css); err != nil {
			return copiedMsg{err: wrapErr("clipboard", err), row: row}
		}
		return copiedMsg{row: row}
	}
}

// renderPreview runs the generated CSS through glamour as a fenced code
// block so the preview pane gets syntax-highlighted text.
func (a *App) renderPreview() tea.Cmd {
	renderer, err := a.getRenderer()
	if err != nil {
		return func() tea.Msg { return previewMsg{err: wrapErr("preview renderer", err)} }
	}
	css := a.latestCSS
	return func() tea.Msg {
		out, err := renderer.Render(fmt.Sprintf("```css\n%s```\n", css))
		if err != nil {
			return previewMsg{err: wrapErr("rendering preview", err)}
		}
		return previewMsg{content: out}
	}
}

// undoTick drives the clear-all countdown shown in the status bar.
func undoTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return undoTickMsg{} })
}

// expireStatus clears a transient status message after a delay. The
// sequence number keeps a stale timer from wiping a newer message.
func expireStatus(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return statusExpiredMsg{seq: seq} })
}
