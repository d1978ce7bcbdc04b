package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/fluidcss/internal/config"
	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/table"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{app: app, config: cfg, modifierKey: modifierKey}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	// Let the list's own filter input see every key while filtering.
	if kh.app.view == ViewEntries && kh.app.entryList.FilterState() == list.Filtering {
		return kh.delegateToCharm(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewAddEntry, ViewRenameEntry:
		return kh.app.textInput.Focused()
	case ViewParams:
		return true
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		return kh.navigateBack()
	case "ctrl+c":
		return kh.app, tea.Quit
	case "enter":
		return kh.handleTextInputEnter()
	}

	if kh.app.view == ViewParams {
		return kh.handleParamsKey(msg)
	}

	newTextInput, cmd := kh.app.textInput.Update(msg)
	kh.app.textInput = newTextInput
	return kh.app, cmd
}

// handleParamsKey navigates and edits the parameter form.
func (kh *KeyHandler) handleParamsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		kh.focusParamField(kh.app.paramFocus + 1)
		return kh.app, nil
	case "shift+tab", "up":
		kh.focusParamField(kh.app.paramFocus - 1)
		return kh.app, nil
	case kh.modifierKey + kh.config.Keys.Bindings.RenameEntry:
		// Ratio fields get a preset picker.
		if kh.app.paramFocus == fieldMinRatio || kh.app.paramFocus == fieldMaxRatio {
			kh.app.ratioTarget = kh.app.paramFocus
			kh.app.previousView = ViewParams
			kh.app.view = ViewRatioPick
			return kh.app, nil
		}
		kh.app.err = errors.New("presets apply to the scale ratio fields")
		return kh.app, nil
	}

	in, cmd := kh.app.paramInputs[kh.app.paramFocus].Update(msg)
	kh.app.paramInputs[kh.app.paramFocus] = in
	return kh.app, cmd
}

func (kh *KeyHandler) focusParamField(idx int) {
	if idx < 0 {
		idx = paramFieldCount - 1
	}
	if idx >= paramFieldCount {
		idx = 0
	}
	kh.app.paramInputs[kh.app.paramFocus].Blur()
	kh.app.paramFocus = idx
	kh.app.paramInputs[idx].Focus()
}

func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	a := kh.app

	switch a.view {
	case ViewAddEntry:
		name := a.textInput.Value()
		if _, err := a.controller.AddEntry(name); err != nil {
			a.err = wrapErr("adding entry", err)
			return a, nil
		}
		a.view = ViewEntries
		a.refreshEntries()
		a.entryList.Select(len(a.entryList.Items()) - 1)
		return a, tea.Batch(a.setStatus(MsgEntryAdded(name)), a.saveState())

	case ViewRenameEntry:
		if err := a.controller.EditEntry(a.renameID, a.textInput.Value()); err != nil {
			a.err = wrapErr("renaming entry", err)
			return a, nil
		}
		a.view = ViewEntries
		a.refreshEntries()
		return a, tea.Batch(a.setStatus(MsgEntryRenamed), a.saveState())

	case ViewParams:
		corrections, err := a.applyParams()
		if err != nil {
			a.err = err
			return a, nil
		}
		a.view = ViewEntries
		a.refreshEntries()
		return a, tea.Batch(a.setStatus(MsgCorrections(corrections)), a.saveState())
	}

	return a, nil
}

// handleCustomKeys handles only our custom action keys
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "ctrl+c", kh.config.Keys.Bindings.Quit:
		return kh.app, tea.Quit, true
	case kh.config.Keys.Bindings.Back:
		model, cmd := kh.navigateBack()
		return model, cmd, true
	}

	switch kh.app.view {
	case ViewEntries:
		return kh.handleEntriesCustomKeys(key)
	case ViewClearConfirm:
		return kh.handleClearConfirmKeys(key)
	case ViewPreview:
		if key == kh.modifierKey+kh.config.Keys.Bindings.CopyCSS {
			return kh.app, copyCSS(kh.app.latestCSS, false), true
		}
	case ViewRowCSS:
		if key == kh.modifierKey+kh.config.Keys.Bindings.CopyCSS {
			return kh.app, copyCSS(kh.app.rowCSS, true), true
		}
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleEntriesCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	b := kh.config.Keys.Bindings

	switch key {
	case b.NextKind:
		next := cssgen.Kind((int(a.controller.ActiveKind()) + 1) % len(cssgen.Kinds()))
		a.controller.SetActiveKind(next)
		a.refreshEntries()
		a.entryList.Select(0)
		return a, nil, true

	case b.MoveUp:
		if i, ok := a.selectedEntry(); ok {
			idx := a.entryList.Index()
			if err := a.controller.MoveEntryUp(i.entry.ID); err != nil {
				a.err = wrapErr("moving entry", err)
				return a, nil, true
			}
			a.refreshEntries()
			if idx > 0 {
				a.entryList.Select(idx - 1)
			}
			return a, a.saveState(), true
		}

	case b.MoveDown:
		if i, ok := a.selectedEntry(); ok {
			idx := a.entryList.Index()
			if err := a.controller.MoveEntryDown(i.entry.ID); err != nil {
				a.err = wrapErr("moving entry", err)
				return a, nil, true
			}
			a.refreshEntries()
			if idx < len(a.entryList.Items())-1 {
				a.entryList.Select(idx + 1)
			}
			return a, a.saveState(), true
		}

	case kh.modifierKey + b.AddEntry:
		a.previousView = ViewEntries
		a.view = ViewAddEntry
		a.textInput.Reset()
		a.textInput.Focus()
		return a, nil, true

	case kh.modifierKey + b.RenameEntry:
		if i, ok := a.selectedEntry(); ok {
			a.renameID = i.entry.ID
			a.previousView = ViewEntries
			a.view = ViewRenameEntry
			a.textInput.SetValue(i.entry.Name)
			a.textInput.Focus()
			return a, nil, true
		}

	case kh.modifierKey + b.DeleteEntry:
		if i, ok := a.selectedEntry(); ok {
			if err := a.controller.DeleteEntry(i.entry.ID); err != nil {
				a.err = wrapErr("deleting entry", err)
				return a, nil, true
			}
			a.refreshEntries()
			return a, tea.Batch(a.setStatus(MsgEntryDeleted), a.saveState()), true
		}

	case kh.modifierKey + b.ClearAll:
		if len(a.controller.Entries()) > 0 {
			a.previousView = ViewEntries
			a.view = ViewClearConfirm
			return a, nil, true
		}

	case kh.modifierKey + b.UndoClear:
		return kh.undoClear()

	case kh.modifierKey + b.RestoreDefaults:
		a.controller.RestoreDefaults()
		a.undoActive = false
		a.refreshEntries()
		return a, tea.Batch(a.setStatus(MsgDefaults), a.saveState()), true

	case kh.modifierKey + b.SetAnchor:
		if i, ok := a.selectedEntry(); ok {
			if err := a.controller.SetAnchor(i.entry.ID); err != nil {
				a.err = wrapErr("setting anchor", err)
				return a, nil, true
			}
			a.refreshEntries()
			return a, tea.Batch(a.setStatus(MsgAnchorSet), a.saveState()), true
		}

	case kh.modifierKey + b.ToggleUnit:
		unit := scale.UnitPx
		if a.controller.Parameters().Unit == scale.UnitPx {
			unit = scale.UnitRem
		}
		a.controller.SetUnit(unit)
		a.refreshEntries()
		return a, tea.Batch(a.setStatus(fmt.Sprintf("Output unit: %s", unit)), a.saveState()), true

	case kh.modifierKey + b.CopyCSS:
		return a, copyCSS(a.latestCSS, false), true

	case kh.modifierKey + b.Preview:
		a.previousView = ViewEntries
		a.view = ViewPreview
		return a, a.renderPreview(), true

	case kh.modifierKey + b.EditParams:
		a.openParams()
		return a, nil, true

	case kh.modifierKey + b.RowCSS:
		return kh.openRowCSS()
	}

	return a, nil, false
}

func (kh *KeyHandler) handleClearConfirmKeys(key string) (tea.Model, tea.Cmd, bool) {
	a := kh.app
	if key != "enter" {
		return a, nil, false
	}

	removed := a.controller.ClearEntries()
	a.view = ViewEntries
	a.undoActive = true
	a.refreshEntries()
	window := int(kh.config.Generator.UndoWindow.Seconds())
	a.status = MsgCleared(len(removed), window)
	a.err = nil
	return a, tea.Batch(undoTick(), a.saveState()), true
}

func (kh *KeyHandler) undoClear() (tea.Model, tea.Cmd, bool) {
	a := kh.app
	err := a.controller.UndoClear()
	switch {
	case errors.Is(err, table.ErrNothingToUndo):
		return a, a.setStatus(MsgNothingToUndo), true
	case errors.Is(err, table.ErrUndoExpired):
		a.undoActive = false
		return a, a.setStatus(MsgUndoExpired), true
	case err != nil:
		a.err = wrapErr("undoing clear", err)
		return a, nil, true
	}
	a.undoActive = false
	a.refreshEntries()
	return a, tea.Batch(a.setStatus(MsgUndone), a.saveState()), true
}

func (kh *KeyHandler) openRowCSS() (tea.Model, tea.Cmd, bool) {
	a := kh.app
	i, ok := a.selectedEntry()
	if !ok {
		return a, a.setStatus(MsgDeleteLastEdit), true
	}
	css, err := a.controller.EntryCSS(i.entry.ID)
	if err != nil {
		a.err = wrapErr("row CSS", err)
		return a, nil, true
	}
	a.rowCSS = css
	a.previousView = ViewEntries
	a.view = ViewRowCSS
	return a, nil, true
}

// delegateToCharm lets Charm handle all keys we don't intercept
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a := kh.app

	switch a.view {
	case ViewEntries:
		a.entryList, cmd = a.entryList.Update(msg)
		// Enter opens the selected row's CSS.
		if msg.String() == "enter" && a.entryList.FilterState() != list.Filtering {
			model, rowCmd, _ := kh.openRowCSS()
			return model, rowCmd
		}
		return a, cmd

	case ViewPreview, ViewRowCSS:
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case ViewRatioPick:
		a.presetList, cmd = a.presetList.Update(msg)
		if msg.String() == "enter" {
			if i, ok := a.presetList.SelectedItem().(presetItem); ok {
				a.paramInputs[a.ratioTarget].SetValue(strconv.FormatFloat(i.preset.Ratio, 'f', 3, 64))
				a.view = ViewParams
			}
		}
		return a, cmd
	}

	return a, nil
}

func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	a := kh.app

	switch a.view {
	case ViewRatioPick:
		a.view = ViewParams
	case ViewEntries:
		// Nothing above the entry table.
	default:
		a.view = ViewEntries
	}
	a.err = nil
	return a, nil
}

// GetHelpForCurrentView returns key hints for the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	mod := kh.config.Keys.Modifier
	b := kh.config.Keys.Bindings

	switch kh.app.view {
	case ViewEntries:
		return []string{
			fmt.Sprintf("%s+%s: add", mod, b.AddEntry),
			fmt.Sprintf("%s+%s: rename", mod, b.RenameEntry),
			fmt.Sprintf("%s+%s: delete", mod, b.DeleteEntry),
			fmt.Sprintf("%s+%s: anchor", mod, b.SetAnchor),
			"shift+↑/↓: move",
			"tab: kind",
			fmt.Sprintf("%s+%s: params", mod, b.EditParams),
			fmt.Sprintf("%s+%s: preview", mod, b.Preview),
			fmt.Sprintf("%s+%s: copy", mod, b.CopyCSS),
			fmt.Sprintf("%s: quit", b.Quit),
		}
	case ViewPreview:
		return []string{fmt.Sprintf("%s+%s: copy", mod, b.CopyCSS), "esc: back"}
	case ViewRowCSS:
		return []string{fmt.Sprintf("%s+%s: copy row", mod, b.CopyCSS), "esc: back"}
	case ViewRatioPick:
		return []string{"enter: apply", "esc: back"}
	case ViewParams:
		return []string{fmt.Sprintf("%s+%s: ratio presets (on a ratio field)", mod, b.RenameEntry)}
	}
	return nil
}

// wrapErr prefixes a mutation or render failure with the action that
// produced it, so the status line reads "deleting entry: not found"
// rather than a bare sentinel.
func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
