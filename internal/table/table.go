package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/pders01/fluidcss/internal/validation"
)

// DefaultAnchorID is the base-anchor entry when none has been chosen:
// the third entry of the canonical seed.
const DefaultAnchorID = 3

// DefaultUndoWindow bounds how long a cleared table can be restored.
const DefaultUndoWindow = 10 * time.Second

// DefaultNames is the canonical 6-entry seed, assigned IDs 1–6 in order.
var DefaultNames = []string{"xs", "sm", "md", "lg", "xl", "xxl"}

// reservedNames are the UI's textinput placeholder strings; accepting
// them would persist a hint the user never typed.
var reservedNames = map[string]struct{}{
	"name":      {},
	"new-name":  {},
	"size-name": {},
}

// Entry is one row of a table. Its position in the table's order is
// itself data: it determines the exponential step distance from the
// anchor.
type Entry struct {
	ID   int    `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`
}

// State is the serializable form of a table, used by storage and export.
type State struct {
	Entries  []Entry `json:"entries" toml:"entries"`
	AnchorID int     `json:"anchor_id" toml:"anchor_id"`
}

// Table is an ordered, mutable collection of uniquely named, uniquely
// identified size entries with a single base-anchor designation. All
// mutations are atomic: they fully apply or return a typed error with
// the table untouched.
type Table struct {
	entries  []Entry
	anchorID int
	lastID   int
	pending  *undoBuffer

	undoWindow time.Duration
	now        func() time.Time
	names      *validation.NameValidator
}

type undoBuffer struct {
	entries   []Entry
	anchorID  int
	expiresAt time.Time
}

// New returns an empty table.
func New() *Table {
	return &Table{
		anchorID:   DefaultAnchorID,
		undoWindow: DefaultUndoWindow,
		now:        time.Now,
		names:      validation.NewNameValidator(),
	}
}

// NewWithDefaults returns a table seeded with the canonical entries
// xs..xxl at IDs 1–6, anchored at the default.
func NewWithDefaults() *Table {
	t := New()
	t.seedDefaults()
	return t
}

// FromState rebuilds a table from its serialized form, enforcing the
// table invariants (unique ids, unique names).
func FromState(s State) (*Table, error) {
	t := New()
	seenID := make(map[int]struct{}, len(s.Entries))
	seenName := make(map[string]struct{}, len(s.Entries))
	for _, e := range s.Entries {
		if _, dup := seenID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entry id %d", e.ID)
		}
		if _, dup := seenName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate entry name %q: %w", e.Name, ErrDuplicateName)
		}
		seenID[e.ID] = struct{}{}
		seenName[e.Name] = struct{}{}
		if e.ID > t.lastID {
			t.lastID = e.ID
		}
	}
	t.entries = append(t.entries, s.Entries...)
	if s.AnchorID != 0 {
		t.anchorID = s.AnchorID
	}
	// A stored anchor pointing at no entry would leave every row on the
	// reference fallback; apply the deletion policy instead.
	if _, ok := t.IndexOf(t.anchorID); !ok {
		t.reassignAnchor()
	}
	return t, nil
}

// State returns a deep copy of the table's serializable form.
func (t *Table) State() State {
	return State{Entries: t.Entries(), AnchorID: t.anchorID}
}

// SetUndoWindow overrides the clear-all recovery window.
func (t *Table) SetUndoWindow(d time.Duration) {
	t.undoWindow = d
}

// SetClock overrides the time source; tests use this to drive expiry.
func (t *Table) SetClock(now func() time.Time) {
	t.now = now
}

// Entries returns a copy of the current order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Get looks up an entry by id.
func (t *Table) Get(id int) (Entry, bool) {
	for _, e := range t.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// IndexOf reports the position of the entry with the given id within
// the current order. Implements scale.Ordering.
func (t *Table) IndexOf(id int) (int, bool) {
	for i, e := range t.entries {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

// AnchorID returns the id of the base-anchor entry. Implements
// scale.Ordering.
func (t *Table) AnchorID() int {
	return t.anchorID
}

// SetAnchor designates the entry with the given id as the base anchor.
func (t *Table) SetAnchor(id int) error {
	if _, ok := t.IndexOf(id); !ok {
		return ErrNotFound
	}
	t.anchorID = id
	return nil
}

// Add validates the name and appends a new entry with the next id.
// IDs increase monotonically and are never reused after deletion.
func (t *Table) Add(name string) (int, error) {
	clean, err := t.validateName(name, 0)
	if err != nil {
		return 0, err
	}
	id := t.nextID()
	t.entries = append(t.entries, Entry{ID: id, Name: clean})
	return id, nil
}

// Edit renames an entry in place; its position and id are unaffected.
// Renaming an entry to its own current name is a no-op success.
func (t *Table) Edit(id int, newName string) error {
	idx, ok := t.IndexOf(id)
	if !ok {
		return ErrNotFound
	}
	clean := strings.TrimSpace(newName)
	if clean == t.entries[idx].Name {
		return nil
	}
	clean, err := t.validateName(newName, id)
	if err != nil {
		return err
	}
	t.entries[idx].Name = clean
	return nil
}

// Delete removes an entry. Other entries keep their ids. When the
// anchor itself is deleted it falls back to the first remaining entry;
// an emptied table reverts to the default anchor id.
func (t *Table) Delete(id int) error {
	idx, ok := t.IndexOf(id)
	if !ok {
		return ErrNotFound
	}
	t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	if t.anchorID == id {
		t.reassignAnchor()
	}
	return nil
}

// ClearAll empties the table into a single pending-undo slot and
// returns the removed set. A second ClearAll before expiry replaces the
// slot unconditionally: the last destructive action wins.
func (t *Table) ClearAll() []Entry {
	removed := t.Entries()
	t.pending = &undoBuffer{
		entries:   removed,
		anchorID:  t.anchorID,
		expiresAt: t.now().Add(t.undoWindow),
	}
	t.entries = nil
	t.anchorID = DefaultAnchorID
	out := make([]Entry, len(removed))
	copy(out, removed)
	return out
}

// UndoClear restores the exact pre-clear id/name/order set if invoked
// before the undo window expires.
func (t *Table) UndoClear() error {
	if t.pending == nil {
		return ErrNothingToUndo
	}
	if t.now().After(t.pending.expiresAt) {
		t.pending = nil
		return ErrUndoExpired
	}
	t.entries = t.pending.entries
	t.anchorID = t.pending.anchorID
	t.pending = nil
	return nil
}

// DiscardUndo drops the pending clear buffer (explicit dismissal).
func (t *Table) DiscardUndo() {
	t.pending = nil
}

// PendingUndo reports the expiry deadline of the pending clear buffer,
// if one exists and has not lapsed.
func (t *Table) PendingUndo() (time.Time, bool) {
	if t.pending == nil || t.now().After(t.pending.expiresAt) {
		return time.Time{}, false
	}
	return t.pending.expiresAt, true
}

// RestoreDefaults replaces the entire table with the canonical seed,
// discarding custom entries and any pending undo. Irreversible.
func (t *Table) RestoreDefaults() {
	t.seedDefaults()
	t.pending = nil
}

func (t *Table) seedDefaults() {
	t.entries = make([]Entry, 0, len(DefaultNames))
	for i, name := range DefaultNames {
		t.entries = append(t.entries, Entry{ID: i + 1, Name: name})
	}
	t.anchorID = DefaultAnchorID
	t.lastID = len(DefaultNames)
}

// nextID issues ids from a high-water mark rather than the current
// members, so ids freed by Delete or a committed ClearAll never come
// back.
func (t *Table) nextID() int {
	t.lastID++
	return t.lastID
}

// reassignAnchor implements the anchor-deletion policy: fall back to
// the first remaining entry, or to the default id when none remain.
func (t *Table) reassignAnchor() {
	if len(t.entries) > 0 {
		t.anchorID = t.entries[0].ID
		return
	}
	t.anchorID = DefaultAnchorID
}

// validateName enforces the naming contract shared by Add and Edit.
// excludeID carries the entry whose own current name is exempt from the
// duplicate check (0 for Add).
func (t *Table) validateName(name string, excludeID int) (string, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "", ErrBlankName
	}
	if _, reserved := reservedNames[clean]; reserved {
		return "", fmt.Errorf("%q: %w", clean, ErrReservedName)
	}
	clean, err := t.names.ValidateAndNormalize(clean)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	for _, e := range t.entries {
		if e.Name == clean && e.ID != excludeID {
			return "", fmt.Errorf("%q: %w", clean, ErrDuplicateName)
		}
	}
	return clean, nil
}
