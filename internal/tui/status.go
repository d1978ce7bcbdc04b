package tui

import (
	"fmt"
	"strings"

	"github.com/pders01/fluidcss/internal/scale"
)

// Canonical short status messages used across the app.
const (
	MsgCopied         = "CSS copied to clipboard"
	MsgRowCopied      = "Row CSS copied to clipboard"
	MsgDefaults       = "Defaults restored"
	MsgUndone         = "Entries restored"
	MsgUndoExpired    = "Undo window expired"
	MsgNothingToUndo  = "Nothing to undo"
	MsgAnchorSet      = "Base anchor moved"
	MsgEntryDeleted   = "Entry deleted"
	MsgEntryRenamed   = "Entry renamed"
	MsgParamsApplied  = "Parameters applied"
	MsgDeleteLastEdit = "Nothing selected"
)

func MsgEntryAdded(name string) string {
	return fmt.Sprintf("Added entry '%s'", strings.TrimSpace(name))
}

func MsgCleared(n int, window int) string {
	noun := "entries"
	if n == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("Cleared %d %s — undo within %ds", n, noun, window)
}

func MsgUndoCountdown(remaining int) string {
	return fmt.Sprintf("Undo available for %ds", remaining)
}

// MsgCorrections summarizes parameter clamping so auto-corrected input
// is never silently dropped.
func MsgCorrections(cs []scale.Correction) string {
	if len(cs) == 0 {
		return MsgParamsApplied
	}
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.String())
	}
	return "Adjusted: " + strings.Join(parts, "; ")
}
