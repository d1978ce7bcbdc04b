package tui

type View int

const (
	ViewEntries View = iota
	ViewParams
	ViewPreview
	ViewAddEntry
	ViewRenameEntry
	ViewClearConfirm
	ViewRowCSS
	ViewRatioPick
)
