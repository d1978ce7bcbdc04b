package table

// Reorder moves the dragged entry immediately before or after the
// target entry, adjusting for the index shift caused by the removal.
// Dropping an entry onto itself is a no-op success. Reordering changes
// no id and no name, yet it changes derived scale bounds: callers must
// treat it as a scale-affecting operation and regenerate.
func (t *Table) Reorder(draggedID, targetID int, insertBefore bool) error {
	if draggedID == targetID {
		return nil
	}

	srcIdx, ok := t.IndexOf(draggedID)
	if !ok {
		return ErrNotFound
	}
	tgtIdx, ok := t.IndexOf(targetID)
	if !ok {
		return ErrNotFound
	}

	dragged := t.entries[srcIdx]
	t.entries = append(t.entries[:srcIdx], t.entries[srcIdx+1:]...)

	// Removing an earlier item shifts every later index down by one.
	if srcIdx < tgtIdx {
		tgtIdx--
	}

	insertAt := tgtIdx
	if !insertBefore {
		insertAt = tgtIdx + 1
	}

	t.entries = append(t.entries, Entry{})
	copy(t.entries[insertAt+1:], t.entries[insertAt:])
	t.entries[insertAt] = dragged
	return nil
}

// MoveUp swaps the entry one position toward the front of the order.
// Already-first entries stay put.
func (t *Table) MoveUp(id int) error {
	idx, ok := t.IndexOf(id)
	if !ok {
		return ErrNotFound
	}
	if idx == 0 {
		return nil
	}
	return t.Reorder(id, t.entries[idx-1].ID, true)
}

// MoveDown swaps the entry one position toward the back of the order.
func (t *Table) MoveDown(id int) error {
	idx, ok := t.IndexOf(id)
	if !ok {
		return ErrNotFound
	}
	if idx == len(t.entries)-1 {
		return nil
	}
	return t.Reorder(id, t.entries[idx+1].ID, false)
}
