package configurator

import "github.com/google/uuid"

// SelectionSet tracks the options chosen during one configuration session.
// Selections are bucketed per option group so the single-select rule is a
// property of the structure: a group with allowMultiple=false holds at most
// one option at any time, no matter what sequence of toggles produced it.
type SelectionSet struct {
	groups map[uuid.UUID]*groupSelection
	order  []uuid.UUID
}

type groupSelection struct {
	allowMultiple bool
	optionIDs     []uuid.UUID
}

// NewSelectionSet returns an empty selection.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{groups: make(map[uuid.UUID]*groupSelection)}
}

// Toggle flips the membership of optionID within its group:
//   - selected option → removed, nothing else changes
//   - unselected option in a single-select group → replaces any sibling
//   - unselected option in a multi-select group → added
func (s *SelectionSet) Toggle(optionID, groupID uuid.UUID, allowMultiple bool) {
	bucket, ok := s.groups[groupID]
	if !ok {
		bucket = &groupSelection{allowMultiple: allowMultiple}
		s.groups[groupID] = bucket
	}
	bucket.allowMultiple = allowMultiple

	if bucket.remove(optionID) {
		s.dropFromOrder(optionID)
		return
	}

	if !allowMultiple {
		for _, sibling := range bucket.optionIDs {
			s.dropFromOrder(sibling)
		}
		bucket.optionIDs = bucket.optionIDs[:0]
	}

	bucket.optionIDs = append(bucket.optionIDs, optionID)
	s.order = append(s.order, optionID)
}

// Has reports whether the option is currently selected.
func (s *SelectionSet) Has(optionID uuid.UUID) bool {
	for _, bucket := range s.groups {
		for _, id := range bucket.optionIDs {
			if id == optionID {
				return true
			}
		}
	}
	return false
}

// SelectedInGroup returns the selected option IDs for one group.
func (s *SelectionSet) SelectedInGroup(groupID uuid.UUID) []uuid.UUID {
	bucket, ok := s.groups[groupID]
	if !ok {
		return nil
	}
	out := make([]uuid.UUID, len(bucket.optionIDs))
	copy(out, bucket.optionIDs)
	return out
}

// IDs returns every selected option ID in insertion order.
func (s *SelectionSet) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of selected options.
func (s *SelectionSet) Len() int {
	return len(s.order)
}

func (s *SelectionSet) dropFromOrder(optionID uuid.UUID) {
	for i, id := range s.order {
		if id == optionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (g *groupSelection) remove(optionID uuid.UUID) bool {
	for i, id := range g.optionIDs {
		if id == optionID {
			g.optionIDs = append(g.optionIDs[:i], g.optionIDs[i+1:]...)
			return true
		}
	}
	return false
}
