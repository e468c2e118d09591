package configurator

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lacomanda/comanda-backend/pkg/errors"
)

// State is the lifecycle phase of a configuration session.
type State string

const (
	// StateLoading means option groups are still being fetched. Mutations
	// and finalize are rejected until the load settles.
	StateLoading State = "loading"
	// StateReady means the session accepts toggles and can be finalized.
	StateReady State = "ready"
	// StateFailed means the option load failed. The session is unusable.
	StateFailed State = "failed"
	// StateClosed means the session was finalized or abandoned.
	StateClosed State = "closed"
)

// Session is one in-flight product configuration. All access goes through the
// session mutex; callers hold a *Session and the methods serialize.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	product   Product
	state     State
	groups    []OptionGroup
	selection *SelectionSet
	quantity  int
	loadErr   error
	createdAt time.Time
	touchedAt time.Time
}

func newSession(product Product, now time.Time) *Session {
	return &Session{
		id:        uuid.New(),
		product:   product,
		state:     StateLoading,
		selection: NewSelectionSet(),
		quantity:  1,
		createdAt: now,
		touchedAt: now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// deliverLoad hands the async load result to the session. A result that
// arrives after the session left the loading state is discarded: the caller
// already closed or re-opened, and a stale snapshot must not resurrect it.
func (s *Session) deliverLoad(groups []OptionGroup, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return
	}
	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		return
	}
	s.groups = groups
	s.state = StateReady
}

// Toggle flips the selection state of the given option. The option must
// belong to one of the session's groups.
func (s *Session) Toggle(optionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireReady(); err != nil {
		return err
	}
	group, ok := FindGroupForOption(s.groups, optionID)
	if !ok {
		return errors.New(errors.CodeValidation, "option does not belong to this product").
			WithDetails(map[string]any{"option_id": optionID})
	}
	s.selection.Toggle(optionID, group.ID, group.AllowMultiple)
	return nil
}

// SetQuantity updates the quantity, clamped to a minimum of one.
func (s *Session) SetQuantity(quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireReady(); err != nil {
		return err
	}
	s.quantity = ClampQuantity(quantity)
	return nil
}

// Finalize validates required groups, computes the total, and closes the
// session. The returned Result is the only artifact; the session itself
// cannot be reused.
func (s *Session) Finalize() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireReady(); err != nil {
		return Result{}, err
	}
	if missing := MissingRequiredGroups(s.groups, s.selection); len(missing) > 0 {
		return Result{}, errors.New(errors.CodeStateConflict, "required option groups have no selection").
			WithDetails(map[string]any{"missing_group_ids": missing})
	}

	result := Result{
		ProductID:       s.product.ID,
		Quantity:        s.quantity,
		TotalPrice:      TotalPrice(s.product, s.groups, s.selection, s.quantity),
		SelectedOptions: s.selection.IDs(),
	}
	s.state = StateClosed
	return result, nil
}

// Close abandons the session. Closing an already closed session is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) requireReady() error {
	switch s.state {
	case StateReady:
		return nil
	case StateLoading:
		return errors.New(errors.CodeStateConflict, "product options are still loading").
			WithDetails(map[string]any{"state": string(s.state)})
	case StateFailed:
		return errors.Wrap(errors.CodeDependency, s.loadErr, "product options could not be loaded")
	default:
		return errors.New(errors.CodeStateConflict, "session is closed").
			WithDetails(map[string]any{"state": string(s.state)})
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.touchedAt = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.touchedAt) > ttl
}

// view builds a consistent snapshot for DTO rendering.
func (s *Session) view() sessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := sessionView{
		ID:       s.id,
		State:    s.state,
		Product:  s.product,
		Quantity: s.quantity,
	}
	if s.state == StateReady {
		v.Groups = s.groups
		v.SelectedOptionIDs = s.selection.IDs()
		v.Missing = MissingRequiredGroups(s.groups, s.selection)
		v.CanFinalize = len(v.Missing) == 0
		v.Total = TotalPrice(s.product, s.groups, s.selection, s.quantity)
	} else {
		v.Total = TotalPrice(s.product, nil, nil, s.quantity)
	}
	return v
}

type sessionView struct {
	ID                uuid.UUID
	State             State
	Product           Product
	Groups            []OptionGroup
	SelectedOptionIDs []uuid.UUID
	Missing           []uuid.UUID
	CanFinalize       bool
	Quantity          int
	Total             decimal.Decimal
}
