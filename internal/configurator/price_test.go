package configurator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", value, err)
	}
	return d
}

func buildPizza(t *testing.T) (Product, []OptionGroup) {
	t.Helper()
	product := Product{
		ID:        uuid.New(),
		Name:      "Pizza Margherita",
		BasePrice: dec(t, "80.00"),
	}
	sizeGroup := OptionGroup{
		ID:         uuid.New(),
		Name:       "Size",
		IsRequired: true,
		Options: []Option{
			{ID: uuid.New(), Name: "Medium", AdditionalPrice: dec(t, "0.00")},
			{ID: uuid.New(), Name: "Large", AdditionalPrice: dec(t, "15.00")},
		},
	}
	extrasGroup := OptionGroup{
		ID:            uuid.New(),
		Name:          "Extras",
		AllowMultiple: true,
		Options: []Option{
			{ID: uuid.New(), Name: "Bacon", AdditionalPrice: dec(t, "8.00")},
			{ID: uuid.New(), Name: "Cheese", AdditionalPrice: dec(t, "5.50")},
		},
	}
	return product, []OptionGroup{sizeGroup, extrasGroup}
}

func TestTotalPrice_BaseOnly(t *testing.T) {
	product, groups := buildPizza(t)
	total := TotalPrice(product, groups, NewSelectionSet(), 1)
	if !total.Equal(dec(t, "80.00")) {
		t.Fatalf("expected 80.00, got %s", total)
	}
}

func TestTotalPrice_SurchargeTimesQuantity(t *testing.T) {
	product, groups := buildPizza(t)
	size := groups[0]
	large := size.Options[1]

	sel := NewSelectionSet()
	sel.Toggle(large.ID, size.ID, size.AllowMultiple)

	total := TotalPrice(product, groups, sel, 2)
	if !total.Equal(dec(t, "190.00")) {
		t.Fatalf("expected 190.00, got %s", total)
	}
}

func TestTotalPrice_MultiSelectSurchargesStack(t *testing.T) {
	product, groups := buildPizza(t)
	extras := groups[1]

	sel := NewSelectionSet()
	sel.Toggle(extras.Options[0].ID, extras.ID, true)
	sel.Toggle(extras.Options[1].ID, extras.ID, true)

	total := TotalPrice(product, groups, sel, 1)
	if !total.Equal(dec(t, "93.50")) {
		t.Fatalf("expected 93.50, got %s", total)
	}
}

func TestTotalPrice_DeselectRemovesSurcharge(t *testing.T) {
	product, groups := buildPizza(t)
	extras := groups[1]
	bacon := extras.Options[0]

	sel := NewSelectionSet()
	sel.Toggle(bacon.ID, extras.ID, true)
	sel.Toggle(bacon.ID, extras.ID, true)

	total := TotalPrice(product, groups, sel, 1)
	if !total.Equal(product.BasePrice) {
		t.Fatalf("expected base price %s, got %s", product.BasePrice, total)
	}
}

func TestTotalPrice_NilSelectionClampedQuantity(t *testing.T) {
	product, groups := buildPizza(t)
	total := TotalPrice(product, groups, nil, 0)
	if !total.Equal(product.BasePrice) {
		t.Fatalf("expected quantity clamped to 1, got %s", total)
	}
}

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{7, 7},
	}
	for _, tc := range cases {
		if got := ClampQuantity(tc.in); got != tc.want {
			t.Fatalf("ClampQuantity(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMissingRequiredGroups(t *testing.T) {
	_, groups := buildPizza(t)
	size := groups[0]

	sel := NewSelectionSet()
	missing := MissingRequiredGroups(groups, sel)
	if len(missing) != 1 || missing[0] != size.ID {
		t.Fatalf("expected missing=[%s], got %v", size.ID, missing)
	}
	if CanFinalize(groups, sel) {
		t.Fatalf("expected finalize blocked with empty required group")
	}

	sel.Toggle(size.Options[0].ID, size.ID, size.AllowMultiple)
	if !CanFinalize(groups, sel) {
		t.Fatalf("expected finalize allowed once required group has a selection")
	}
}

func TestCanFinalize_NoRequiredGroups(t *testing.T) {
	groups := []OptionGroup{{ID: uuid.New(), Name: "Extras", AllowMultiple: true}}
	if !CanFinalize(groups, NewSelectionSet()) {
		t.Fatalf("expected finalize allowed when nothing is required")
	}
	if !CanFinalize(nil, NewSelectionSet()) {
		t.Fatalf("expected finalize allowed for a product with no groups")
	}
}
