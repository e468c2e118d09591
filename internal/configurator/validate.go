package configurator

import "github.com/google/uuid"

// CanFinalize reports whether every required group has at least one selected
// option. Optional groups impose no constraint. The predicate is recomputed
// on demand; group/option sets are small enough that caching would buy
// nothing.
func CanFinalize(groups []OptionGroup, sel *SelectionSet) bool {
	return len(MissingRequiredGroups(groups, sel)) == 0
}

// MissingRequiredGroups returns the IDs of required groups with no selection,
// in display order.
func MissingRequiredGroups(groups []OptionGroup, sel *SelectionSet) []uuid.UUID {
	var missing []uuid.UUID
	for _, group := range groups {
		if !group.IsRequired {
			continue
		}
		if sel == nil || len(sel.SelectedInGroup(group.ID)) == 0 {
			missing = append(missing, group.ID)
		}
	}
	return missing
}
