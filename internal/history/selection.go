package history

import "sort"

// Selection tracks selection mode and the set of selected conversation IDs.
// IDs are not validated against the store; a selected conversation that has
// since disappeared simply never resolves. The zero value is ready to use.
type Selection struct {
	active bool
	ids    map[string]bool
}

// Active reports whether selection mode is on.
func (s *Selection) Active() bool {
	return s.active
}

// ToggleMode flips selection mode. Turning it off always clears the set;
// turning it on leaves any prior set untouched.
func (s *Selection) ToggleMode() {
	s.active = !s.active
	if !s.active {
		s.Clear()
	}
}

// Toggle flips membership of id in the selection set.
func (s *Selection) Toggle(id string) {
	if s.ids == nil {
		s.ids = make(map[string]bool)
	}
	if s.ids[id] {
		delete(s.ids, id)
	} else {
		s.ids[id] = true
	}
}

// SelectAllVisible applies select-all against the currently visible IDs.
// If every visible ID is already selected, the visible IDs are deselected;
// otherwise all visible IDs are added. Selected IDs that are not visible
// (filtered out by search) are never touched, and an empty visible set is a
// no-op.
func (s *Selection) SelectAllVisible(visible []string) {
	if len(visible) == 0 {
		return
	}
	if s.ids == nil {
		s.ids = make(map[string]bool)
	}

	allSelected := true
	for _, id := range visible {
		if !s.ids[id] {
			allSelected = false
			break
		}
	}

	for _, id := range visible {
		if allSelected {
			delete(s.ids, id)
		} else {
			s.ids[id] = true
		}
	}
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

// Count returns the number of selected IDs.
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected IDs as a sorted copy.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear empties the selection set without changing the mode.
func (s *Selection) Clear() {
	s.ids = nil
}
