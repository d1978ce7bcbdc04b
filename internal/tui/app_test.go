package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/fluidcss/internal/config"
	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/generate"
	"github.com/pders01/fluidcss/internal/preset"
	"github.com/pders01/fluidcss/internal/scale"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.TestConfig()
	ctrl := generate.NewController(scale.DefaultParameters(), nil, nil)
	presets, err := preset.Defaults()
	require.NoError(t, err)
	return NewApp(nil, ctrl, cfg, presets)
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)

	assert.NotNil(t, app.keyHandler)
	assert.Equal(t, ViewEntries, app.view)
	assert.Len(t, app.entryList.Items(), 6, "entry list should carry the default seed")
	assert.NotEmpty(t, app.latestCSS, "the app is the render target and receives the initial CSS")
	assert.Contains(t, app.latestCSS, ".space-md {")
}

func TestViewStateTransitions(t *testing.T) {
	tests := []struct {
		name         string
		initialView  View
		msg          tea.Msg
		expectedView View
	}{
		{
			name:         "ViewEntries to ViewAddEntry on ctrl+n",
			initialView:  ViewEntries,
			msg:          tea.KeyMsg{Type: tea.KeyCtrlN},
			expectedView: ViewAddEntry,
		},
		{
			name:         "ViewEntries to ViewRenameEntry on ctrl+r",
			initialView:  ViewEntries,
			msg:          tea.KeyMsg{Type: tea.KeyCtrlR},
			expectedView: ViewRenameEntry,
		},
		{
			name:         "ViewEntries to ViewClearConfirm on ctrl+d",
			initialView:  ViewEntries,
			msg:          tea.KeyMsg{Type: tea.KeyCtrlD},
			expectedView: ViewClearConfirm,
		},
		{
			name:         "ViewClearConfirm to ViewEntries on Escape",
			initialView:  ViewClearConfirm,
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			expectedView: ViewEntries,
		},
		{
			name:         "ViewEntries to ViewPreview on ctrl+v",
			initialView:  ViewEntries,
			msg:          tea.KeyMsg{Type: tea.KeyCtrlV},
			expectedView: ViewPreview,
		},
		{
			name:         "ViewPreview to ViewEntries on Escape",
			initialView:  ViewPreview,
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			expectedView: ViewEntries,
		},
		{
			name:         "ViewEntries to ViewParams on ctrl+p",
			initialView:  ViewEntries,
			msg:          tea.KeyMsg{Type: tea.KeyCtrlP},
			expectedView: ViewParams,
		},
		{
			name:         "ViewParams to ViewEntries on Escape",
			initialView:  ViewParams,
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			expectedView: ViewEntries,
		},
		{
			name:         "ViewEntries to ViewRowCSS on ctrl+o",
			initialView:  ViewEntries,
			msg:          tea.KeyMsg{Type: tea.KeyCtrlO},
			expectedView: ViewRowCSS,
		},
		{
			name:         "ViewEntries to ViewRowCSS on Enter",
			initialView:  ViewEntries,
			msg:          tea.KeyMsg{Type: tea.KeyEnter},
			expectedView: ViewRowCSS,
		},
		{
			name:         "ViewRowCSS to ViewEntries on Escape",
			initialView:  ViewRowCSS,
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			expectedView: ViewEntries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.view = tt.initialView
			if tt.initialView == ViewParams {
				app.openParams()
			}

			updatedModel, _ := app.Update(tt.msg)
			updatedApp := updatedModel.(*App)

			assert.Equal(t, tt.expectedView, updatedApp.view)
		})
	}
}

func TestAddEntryFlow(t *testing.T) {
	app := newTestApp(t)

	// Open the add modal, type a name, confirm.
	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = updatedModel.(*App)
	require.Equal(t, ViewAddEntry, app.view)
	require.True(t, app.textInput.Focused())

	app.textInput.SetValue("hero")
	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)

	assert.Equal(t, ViewEntries, app.view)
	assert.Len(t, app.entryList.Items(), 7)
	assert.Contains(t, app.latestCSS, ".space-hero {")
	assert.NoError(t, app.err)
}

func TestAddEntryFlow_RejectionKeepsModalOpen(t *testing.T) {
	app := newTestApp(t)

	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	app = updatedModel.(*App)

	app.textInput.SetValue("md") // duplicate
	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)

	assert.Equal(t, ViewAddEntry, app.view, "a rejected name keeps the modal open")
	assert.Error(t, app.err)
	assert.Len(t, app.entryList.Items(), 6)
}

func TestRenameEntryFlow(t *testing.T) {
	app := newTestApp(t)

	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	app = updatedModel.(*App)
	require.Equal(t, ViewRenameEntry, app.view)
	// The modal is pre-filled with the selected entry's name.
	assert.Equal(t, "xs", app.textInput.Value())

	app.textInput.SetValue("tiny")
	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)

	assert.Equal(t, ViewEntries, app.view)
	assert.Contains(t, app.latestCSS, ".space-tiny {")
	assert.NotContains(t, app.latestCSS, ".space-xs {")
}

func TestClearConfirmAndUndo(t *testing.T) {
	app := newTestApp(t)

	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	app = updatedModel.(*App)
	require.Equal(t, ViewClearConfirm, app.view)

	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)

	assert.Equal(t, ViewEntries, app.view)
	assert.Empty(t, app.entryList.Items())
	assert.True(t, app.undoActive)

	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	app = updatedModel.(*App)

	assert.Len(t, app.entryList.Items(), 6)
	assert.False(t, app.undoActive)
	assert.Equal(t, MsgUndone, app.status)
}

func TestUndoWithNothingPending(t *testing.T) {
	app := newTestApp(t)

	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	app = updatedModel.(*App)

	assert.Equal(t, MsgNothingToUndo, app.status)
	assert.Len(t, app.entryList.Items(), 6)
}

func TestParamsFormApply(t *testing.T) {
	app := newTestApp(t)
	app.openParams()

	require.Equal(t, ViewParams, app.view)
	require.Equal(t, "8", app.paramInputs[fieldMinBase].Value())

	app.paramInputs[fieldMinBase].SetValue("10")
	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)

	assert.Equal(t, ViewEntries, app.view)
	assert.Equal(t, float64(10), app.controller.Parameters().MinBaseValue)
}

func TestParamsFormCorrections(t *testing.T) {
	app := newTestApp(t)
	app.openParams()

	app.paramInputs[fieldMinBase].SetValue("-3")
	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)

	// Out-of-range input is clamped, not rejected; the status reports it.
	assert.Equal(t, ViewEntries, app.view)
	assert.Equal(t, float64(1), app.controller.Parameters().MinBaseValue)
	assert.Contains(t, app.status, "Adjusted:")
}

func TestParamsFormParseErrorStays(t *testing.T) {
	app := newTestApp(t)
	app.openParams()

	app.paramInputs[fieldMinBase].SetValue("not-a-number")
	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)

	assert.Equal(t, ViewParams, app.view, "unparseable input keeps the form open")
	assert.Error(t, app.err)
}

func TestParamsFieldNavigation(t *testing.T) {
	app := newTestApp(t)
	app.openParams()

	require.Equal(t, fieldMinBase, app.paramFocus)

	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = updatedModel.(*App)
	assert.Equal(t, fieldMaxBase, app.paramFocus)

	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app = updatedModel.(*App)
	assert.Equal(t, fieldMinBase, app.paramFocus)

	// Navigation wraps around.
	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app = updatedModel.(*App)
	assert.Equal(t, fieldMaxRatio, app.paramFocus)
}

func TestRatioPresetPicker(t *testing.T) {
	app := newTestApp(t)
	app.openParams()

	// ctrl+r on a non-ratio field is refused.
	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	app = updatedModel.(*App)
	assert.Equal(t, ViewParams, app.view)
	assert.Error(t, app.err)
	app.err = nil

	// Focus the min ratio field and open the picker.
	app.paramInputs[app.paramFocus].Blur()
	app.paramFocus = fieldMinRatio
	app.paramInputs[fieldMinRatio].Focus()

	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	app = updatedModel.(*App)
	require.Equal(t, ViewRatioPick, app.view)
	assert.Equal(t, fieldMinRatio, app.ratioTarget)

	// Picking the first preset writes its ratio into the field.
	updatedModel, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updatedModel.(*App)
	assert.Equal(t, ViewParams, app.view)
	assert.Equal(t, "1.067", app.paramInputs[fieldMinRatio].Value())
}

func TestRenderUpdatesLatestCSS(t *testing.T) {
	app := newTestApp(t)

	app.Render(":root {}\n")
	assert.Equal(t, ":root {}\n", app.latestCSS)
}

func TestWindowResize(t *testing.T) {
	app := newTestApp(t)

	updatedModel, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = updatedModel.(*App)

	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}

func TestViewRendersWithoutPanic(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 30

	views := []View{ViewEntries, ViewParams, ViewPreview, ViewAddEntry, ViewRenameEntry, ViewClearConfirm, ViewRowCSS, ViewRatioPick}
	for _, v := range views {
		app.view = v
		if v == ViewParams || v == ViewRatioPick {
			app.openParams()
			app.view = v
		}
		assert.NotPanics(t, func() { _ = app.View() }, "View %v", v)
	}
}

func TestKindTabSwitch(t *testing.T) {
	app := newTestApp(t)

	updatedModel, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = updatedModel.(*App)

	assert.Equal(t, cssgen.KindVariable, app.controller.ActiveKind())
	assert.Contains(t, app.latestCSS, ":root {")
	assert.Equal(t, "› variables", app.entryList.Title)
}
