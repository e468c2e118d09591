package configurator

import (
	"testing"

	"github.com/google/uuid"
)

func TestSelectionSet_SingleSelectReplacesSibling(t *testing.T) {
	groupID := uuid.New()
	small := uuid.New()
	large := uuid.New()

	sel := NewSelectionSet()
	sel.Toggle(small, groupID, false)
	if !sel.Has(small) {
		t.Fatalf("expected small to be selected")
	}

	sel.Toggle(large, groupID, false)
	if sel.Has(small) {
		t.Fatalf("expected small to be replaced")
	}
	if !sel.Has(large) {
		t.Fatalf("expected large to be selected")
	}
	if got := len(sel.SelectedInGroup(groupID)); got != 1 {
		t.Fatalf("expected 1 selection in group, got %d", got)
	}
}

func TestSelectionSet_SingleSelectToggleOffLeavesGroupEmpty(t *testing.T) {
	groupID := uuid.New()
	optionID := uuid.New()

	sel := NewSelectionSet()
	sel.Toggle(optionID, groupID, false)
	sel.Toggle(optionID, groupID, false)

	if sel.Has(optionID) {
		t.Fatalf("expected option to be deselected")
	}
	if got := sel.Len(); got != 0 {
		t.Fatalf("expected empty selection, got %d", got)
	}
}

func TestSelectionSet_MultiSelectAccumulates(t *testing.T) {
	groupID := uuid.New()
	bacon := uuid.New()
	cheese := uuid.New()
	onion := uuid.New()

	sel := NewSelectionSet()
	sel.Toggle(bacon, groupID, true)
	sel.Toggle(cheese, groupID, true)
	sel.Toggle(onion, groupID, true)

	if got := len(sel.SelectedInGroup(groupID)); got != 3 {
		t.Fatalf("expected 3 selections, got %d", got)
	}

	sel.Toggle(cheese, groupID, true)
	if sel.Has(cheese) {
		t.Fatalf("expected cheese to be deselected")
	}
	if !sel.Has(bacon) || !sel.Has(onion) {
		t.Fatalf("expected other selections to survive the toggle")
	}
}

func TestSelectionSet_GroupsAreIndependent(t *testing.T) {
	sizeGroup := uuid.New()
	extrasGroup := uuid.New()
	sizeLarge := uuid.New()
	extraBacon := uuid.New()

	sel := NewSelectionSet()
	sel.Toggle(sizeLarge, sizeGroup, false)
	sel.Toggle(extraBacon, extrasGroup, true)

	if got := sel.Len(); got != 2 {
		t.Fatalf("expected 2 selections across groups, got %d", got)
	}

	sel.Toggle(uuid.New(), sizeGroup, false)
	if !sel.Has(extraBacon) {
		t.Fatalf("replacing in one group must not touch another group")
	}
}

func TestSelectionSet_IDsPreserveInsertionOrder(t *testing.T) {
	groupID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	sel := NewSelectionSet()
	sel.Toggle(first, groupID, true)
	sel.Toggle(second, groupID, true)

	ids := sel.IDs()
	if len(ids) != 2 || ids[0] != first || ids[1] != second {
		t.Fatalf("unexpected order: %v", ids)
	}
}
