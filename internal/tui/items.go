package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/fluidcss/internal/preset"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/table"
)

type entryItem struct {
	entry  table.Entry
	bounds scale.Bounds
	clamp  string
	anchor bool
}

func (i entryItem) Title() string {
	if i.anchor {
		return AnchorItemStyle.Render("◆ " + i.entry.Name + " (anchor)")
	}
	return i.entry.Name
}

func (i entryItem) Description() string {
	desc := fmt.Sprintf("%dpx – %dpx • %s", i.bounds.Min, i.bounds.Max, truncateEnd(i.clamp, 48))
	return lipgloss.NewStyle().Foreground(MutedColor).Render(desc)
}

func (i entryItem) FilterValue() string { return i.entry.Name }

type presetItem struct {
	preset preset.Preset
}

func (i presetItem) Title() string { return i.preset.Name }

func (i presetItem) Description() string {
	return lipgloss.NewStyle().
		Foreground(MutedColor).
		Render(fmt.Sprintf("ratio %.3f per step", i.preset.Ratio))
}

func (i presetItem) FilterValue() string { return i.preset.Name }
