package configurator

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/pkg/errors"
)

func readySession(t *testing.T) (*Session, Product, []OptionGroup) {
	t.Helper()
	product, groups := buildPizza(t)
	sess := newSession(product, time.Now())
	sess.deliverLoad(groups, nil)
	if got := sess.State(); got != StateReady {
		t.Fatalf("expected ready session, got %s", got)
	}
	return sess, product, groups
}

func assertCode(t *testing.T, err error, code errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	typed := errors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestSession_RejectsMutationsWhileLoading(t *testing.T) {
	product, _ := buildPizza(t)
	sess := newSession(product, time.Now())

	assertCode(t, sess.Toggle(uuid.New()), errors.CodeStateConflict)
	assertCode(t, sess.SetQuantity(2), errors.CodeStateConflict)
	_, err := sess.Finalize()
	assertCode(t, err, errors.CodeStateConflict)
}

func TestSession_LoadFailureSurfacesDependencyError(t *testing.T) {
	product, _ := buildPizza(t)
	sess := newSession(product, time.Now())
	sess.deliverLoad(nil, fmt.Errorf("connection refused"))

	if got := sess.State(); got != StateFailed {
		t.Fatalf("expected failed state, got %s", got)
	}
	assertCode(t, sess.Toggle(uuid.New()), errors.CodeDependency)
	_, err := sess.Finalize()
	assertCode(t, err, errors.CodeDependency)
}

func TestSession_LateLoadResultIsDiscarded(t *testing.T) {
	product, groups := buildPizza(t)
	sess := newSession(product, time.Now())
	sess.Close()

	sess.deliverLoad(groups, nil)
	if got := sess.State(); got != StateClosed {
		t.Fatalf("late load must not resurrect a closed session, got %s", got)
	}
}

func TestSession_ToggleUnknownOption(t *testing.T) {
	sess, _, _ := readySession(t)
	assertCode(t, sess.Toggle(uuid.New()), errors.CodeValidation)
}

func TestSession_ToggleAppliesGroupSemantics(t *testing.T) {
	sess, _, groups := readySession(t)
	size := groups[0]

	if err := sess.Toggle(size.Options[0].ID); err != nil {
		t.Fatalf("toggle medium: %v", err)
	}
	if err := sess.Toggle(size.Options[1].ID); err != nil {
		t.Fatalf("toggle large: %v", err)
	}

	v := sess.view()
	if len(v.SelectedOptionIDs) != 1 || v.SelectedOptionIDs[0] != size.Options[1].ID {
		t.Fatalf("expected only large selected, got %v", v.SelectedOptionIDs)
	}
}

func TestSession_QuantityClamped(t *testing.T) {
	sess, _, _ := readySession(t)

	if err := sess.SetQuantity(3); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := sess.SetQuantity(0); err != nil {
		t.Fatalf("set quantity below one must not fail: %v", err)
	}
	if got := sess.view().Quantity; got != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", got)
	}
}

func TestSession_FinalizeBlockedUntilRequiredSelected(t *testing.T) {
	sess, _, groups := readySession(t)
	size := groups[0]

	_, err := sess.Finalize()
	assertCode(t, err, errors.CodeStateConflict)
	if got := sess.State(); got != StateReady {
		t.Fatalf("failed finalize must not close the session, got %s", got)
	}

	if err := sess.Toggle(size.Options[1].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := sess.SetQuantity(2); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	result, err := sess.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !result.TotalPrice.Equal(dec(t, "190.00")) {
		t.Fatalf("expected total 190.00, got %s", result.TotalPrice)
	}
	if result.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", result.Quantity)
	}
	if got := sess.State(); got != StateClosed {
		t.Fatalf("expected session closed after finalize, got %s", got)
	}

	_, err = sess.Finalize()
	assertCode(t, err, errors.CodeStateConflict)
}

func TestSession_ViewDerivesTotalsAndGate(t *testing.T) {
	sess, product, groups := readySession(t)
	extras := groups[1]

	v := sess.view()
	if v.CanFinalize {
		t.Fatalf("expected finalize gate closed while required group is empty")
	}
	if !v.Total.Equal(product.BasePrice) {
		t.Fatalf("expected base total, got %s", v.Total)
	}

	if err := sess.Toggle(extras.Options[0].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	v = sess.view()
	if !v.Total.Equal(dec(t, "88.00")) {
		t.Fatalf("expected 88.00, got %s", v.Total)
	}
	if v.CanFinalize {
		t.Fatalf("optional selection must not satisfy the required group")
	}
}

func TestManager_OpenGetRemove(t *testing.T) {
	product, _ := buildPizza(t)
	mgr := NewManager(time.Minute, 10)

	sess, err := mgr.Open(product)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := mgr.Get(sess.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sess {
		t.Fatalf("expected the same session instance")
	}

	mgr.Remove(sess.ID())
	_, err = mgr.Get(sess.ID())
	assertCode(t, err, errors.CodeNotFound)
}

func TestManager_ExpiredSessionsAreSwept(t *testing.T) {
	product, _ := buildPizza(t)
	mgr := NewManager(time.Minute, 10)

	current := time.Now()
	mgr.now = func() time.Time { return current }

	sess, err := mgr.Open(product)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	current = current.Add(2 * time.Minute)
	_, err = mgr.Get(sess.ID())
	assertCode(t, err, errors.CodeNotFound)
	if got := mgr.Len(); got != 0 {
		t.Fatalf("expected expired session removed, got %d", got)
	}
}

func TestManager_CapacityLimit(t *testing.T) {
	product, _ := buildPizza(t)
	mgr := NewManager(time.Minute, 2)

	for i := 0; i < 2; i++ {
		if _, err := mgr.Open(product); err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
	}
	_, err := mgr.Open(product)
	assertCode(t, err, errors.CodeRateLimit)
}

func TestManager_ClosedSessionsAreSwept(t *testing.T) {
	product, _ := buildPizza(t)
	mgr := NewManager(time.Minute, 10)

	sess, err := mgr.Open(product)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sess.Close()

	_, err = mgr.Get(sess.ID())
	assertCode(t, err, errors.CodeNotFound)
}
