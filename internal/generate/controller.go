package generate

import (
	"github.com/pders01/fluidcss/internal/cssgen"
	"github.com/pders01/fluidcss/internal/debuglog"
	"github.com/pders01/fluidcss/internal/scale"
	"github.com/pders01/fluidcss/internal/table"
)

// DefaultPrefix names generated classes and custom properties when the
// config does not override it per kind.
const DefaultPrefix = "space"

// Controller orchestrates the derived-state recomputation protocol: any
// parameter, ordering, naming or anchor change re-runs the scale engine
// over every entry of the active table, feeds the results to the active
// format generator and hands the text to the render target.
//
// Recomputation is pull-based and fully synchronous; there is no dirty
// tracking and no internal parallelism. Every mutating method either
// fully applies and regenerates, or returns a typed validation error
// with all state untouched.
type Controller struct {
	params   scale.Parameters
	tables   map[cssgen.Kind]*table.Table
	active   cssgen.Kind
	prefixes map[cssgen.Kind]string
	target   RenderTarget
	lastCSS  string
}

// NewController assembles a controller over the shared parameters and
// the per-kind tables. Missing tables are seeded with defaults; the
// parameters are normalized up front so the first render is valid.
func NewController(params scale.Parameters, tables map[cssgen.Kind]*table.Table, target RenderTarget) *Controller {
	params.Normalize()
	if tables == nil {
		tables = make(map[cssgen.Kind]*table.Table, 3)
	}
	for _, kind := range cssgen.Kinds() {
		if tables[kind] == nil {
			tables[kind] = table.NewWithDefaults()
		}
	}
	if target == nil {
		target = discardTarget{}
	}
	c := &Controller{
		params:   params,
		tables:   tables,
		active:   cssgen.KindClass,
		prefixes: make(map[cssgen.Kind]string),
		target:   target,
	}
	c.Regenerate()
	return c
}

// SetTarget swaps the render target and replays the current CSS to it.
func (c *Controller) SetTarget(target RenderTarget) {
	if target == nil {
		target = discardTarget{}
	}
	c.target = target
	c.target.Render(c.lastCSS)
}

// SetPrefix overrides the naming prefix for one kind. The utility kind
// ignores prefixes entirely.
func (c *Controller) SetPrefix(kind cssgen.Kind, prefix string) {
	if prefix == "" {
		delete(c.prefixes, kind)
	} else {
		c.prefixes[kind] = prefix
	}
	if kind == c.active {
		c.Regenerate()
	}
}

func (c *Controller) prefix(kind cssgen.Kind) string {
	if p, ok := c.prefixes[kind]; ok {
		return p
	}
	return DefaultPrefix
}

// Parameters returns a copy of the shared settings record.
func (c *Controller) Parameters() scale.Parameters {
	return c.params
}

// SetParameters replaces the settings record. Out-of-range values are
// clamped, never rejected; the applied corrections are returned so the
// caller can surface them.
func (c *Controller) SetParameters(p scale.Parameters) []scale.Correction {
	corrections := p.Normalize()
	c.params = p
	c.Regenerate()
	return corrections
}

// SetUnit switches display units without touching the pixel math.
func (c *Controller) SetUnit(u scale.Unit) {
	c.params.Unit = u
	c.Regenerate()
}

// ActiveKind reports the kind whose table and generator are live.
func (c *Controller) ActiveKind() cssgen.Kind {
	return c.active
}

// SetActiveKind switches the active table/generator pairing.
func (c *Controller) SetActiveKind(kind cssgen.Kind) {
	c.active = kind
	c.Regenerate()
}

// Tables exposes the per-kind tables for persistence.
func (c *Controller) Tables() map[cssgen.Kind]*table.Table {
	return c.tables
}

// ActiveTable returns the table backing the active kind.
func (c *Controller) ActiveTable() *table.Table {
	return c.tables[c.active]
}

// Entries lists the active table's current order.
func (c *Controller) Entries() []table.Entry {
	return c.ActiveTable().Entries()
}

// AddEntry appends a new entry to the active table.
func (c *Controller) AddEntry(name string) (int, error) {
	id, err := c.ActiveTable().Add(name)
	if err != nil {
		return 0, err
	}
	c.Regenerate()
	return id, nil
}

// EditEntry renames an entry; bounds are unaffected, output text is not.
func (c *Controller) EditEntry(id int, name string) error {
	if err := c.ActiveTable().Edit(id, name); err != nil {
		return err
	}
	c.Regenerate()
	return nil
}

// DeleteEntry removes an entry from the active table.
func (c *Controller) DeleteEntry(id int) error {
	if err := c.ActiveTable().Delete(id); err != nil {
		return err
	}
	c.Regenerate()
	return nil
}

// ReorderEntries moves draggedID before or after targetID. Reordering
// is a first-class scale-affecting operation: it changes bounds without
// touching any parameter or name.
func (c *Controller) ReorderEntries(draggedID, targetID int, insertBefore bool) error {
	if err := c.ActiveTable().Reorder(draggedID, targetID, insertBefore); err != nil {
		return err
	}
	c.Regenerate()
	return nil
}

// MoveEntryUp shifts an entry one position toward the anchor-most end.
func (c *Controller) MoveEntryUp(id int) error {
	if err := c.ActiveTable().MoveUp(id); err != nil {
		return err
	}
	c.Regenerate()
	return nil
}

// MoveEntryDown shifts an entry one position toward the back.
func (c *Controller) MoveEntryDown(id int) error {
	if err := c.ActiveTable().MoveDown(id); err != nil {
		return err
	}
	c.Regenerate()
	return nil
}

// ClearEntries empties the active table, returning the removed set. The
// table keeps a bounded undo slot; see UndoClear.
func (c *Controller) ClearEntries() []table.Entry {
	removed := c.ActiveTable().ClearAll()
	c.Regenerate()
	return removed
}

// UndoClear restores the last cleared set if the window has not lapsed.
func (c *Controller) UndoClear() error {
	if err := c.ActiveTable().UndoClear(); err != nil {
		return err
	}
	c.Regenerate()
	return nil
}

// RestoreDefaults resets the active table to the canonical seed.
func (c *Controller) RestoreDefaults() {
	c.ActiveTable().RestoreDefaults()
	c.Regenerate()
}

// SetAnchor designates the base-anchor entry of the active table.
func (c *Controller) SetAnchor(id int) error {
	if err := c.ActiveTable().SetAnchor(id); err != nil {
		return err
	}
	c.Regenerate()
	return nil
}

// CSS returns the last generated text.
func (c *Controller) CSS() string {
	return c.lastCSS
}

// EntryBounds computes one entry's bounds, substituting the documented
// fallback when the anchor or target reference is stale.
func (c *Controller) EntryBounds(id int) scale.Bounds {
	t := c.ActiveTable()
	b, err := scale.ComputeBounds(t, id, c.params)
	if err != nil {
		debuglog.Warnf("bounds for entry %d unresolved, using fallback: %v", id, err)
		return scale.FallbackBounds
	}
	return b
}

// EntryCSS renders the CSS for a single row, byte-compatible with the
// corresponding fragment of the bulk output.
func (c *Controller) EntryCSS(id int) (string, error) {
	t := c.ActiveTable()
	e, ok := t.Get(id)
	if !ok {
		return "", table.ErrNotFound
	}
	b := c.EntryBounds(id)
	clamp := scale.BuildClamp(float64(b.Min), float64(b.Max), c.params.MinViewport, c.params.MaxViewport, c.params.Unit)
	return cssgen.GenerateSingle(c.active, cssgen.EntryCSS{Name: e.Name, Clamp: clamp}, c.prefix(c.active)), nil
}

// Regenerate re-runs the scale engine over every entry of the active
// table, feeds the active generator and hands the text to the render
// target. Rendering never halts: unresolved references fall back to
// the documented bounds with a warning.
func (c *Controller) Regenerate() string {
	t := c.ActiveTable()
	entries := t.Entries()
	list := make([]cssgen.EntryCSS, 0, len(entries))
	for _, e := range entries {
		b, err := scale.ComputeBounds(t, e.ID, c.params)
		if err != nil {
			debuglog.Warnf("bounds for entry %d (%s) unresolved, using fallback: %v", e.ID, e.Name, err)
			b = scale.FallbackBounds
		}
		clamp := scale.BuildClamp(float64(b.Min), float64(b.Max), c.params.MinViewport, c.params.MaxViewport, c.params.Unit)
		list = append(list, cssgen.EntryCSS{Name: e.Name, Clamp: clamp})
	}

	c.lastCSS = cssgen.Generate(c.active, list, c.prefix(c.active))
	c.target.Render(c.lastCSS)
	return c.lastCSS
}
