package configurator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/pkg/config"
	"github.com/lacomanda/comanda-backend/pkg/errors"
	"github.com/lacomanda/comanda-backend/pkg/logger"
)

// CatalogSource supplies the read-only catalog data a session needs. The
// catalog package provides the production implementation.
type CatalogSource interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (Product, error)
	LoadProductOptions(ctx context.Context, productID uuid.UUID) ([]OptionGroup, error)
}

// Service drives product configuration sessions and stateless quotes.
type Service interface {
	OpenSession(ctx context.Context, productID uuid.UUID) (SessionDTO, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (SessionDTO, error)
	ToggleOption(ctx context.Context, sessionID, optionID uuid.UUID) (SessionDTO, error)
	SetQuantity(ctx context.Context, sessionID uuid.UUID, quantity int) (SessionDTO, error)
	Finalize(ctx context.Context, sessionID uuid.UUID) (ResultDTO, error)
	CloseSession(ctx context.Context, sessionID uuid.UUID) error
	Quote(ctx context.Context, req QuoteRequest) (QuoteDTO, error)
}

type service struct {
	source      CatalogSource
	manager     *Manager
	log         *logger.Logger
	loadTimeout time.Duration
}

// NewService wires the configuration service.
func NewService(source CatalogSource, manager *Manager, log *logger.Logger, cfg config.ConfiguratorConfig) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("configurator service requires a catalog source")
	}
	if manager == nil {
		return nil, fmt.Errorf("configurator service requires a session manager")
	}
	if log == nil {
		return nil, fmt.Errorf("configurator service requires a logger")
	}
	loadTimeout := cfg.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = 5 * time.Second
	}
	return &service{
		source:      source,
		manager:     manager,
		log:         log,
		loadTimeout: loadTimeout,
	}, nil
}

// OpenSession creates a session for the product and kicks off the option
// load in the background. The returned snapshot is in the loading state; the
// client polls or re-fetches until the session turns ready.
func (s *service) OpenSession(ctx context.Context, productID uuid.UUID) (SessionDTO, error) {
	product, err := s.source.GetProduct(ctx, productID)
	if err != nil {
		return SessionDTO{}, err
	}

	sess, err := s.manager.Open(product)
	if err != nil {
		return SessionDTO{}, err
	}

	// The load outlives the opening request. Detach from the request
	// context but keep its values for logging.
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
	go func() {
		defer cancel()
		groups, loadErr := s.source.LoadProductOptions(loadCtx, product.ID)
		if loadErr != nil {
			logCtx := s.log.WithFields(loadCtx, map[string]any{
				"product_id":        product.ID.String(),
				"config_session_id": sess.ID().String(),
			})
			s.log.Error(logCtx, "option load failed", loadErr)
			sess.deliverLoad(nil, loadErr)
			return
		}
		sess.deliverLoad(groups, nil)
	}()

	return newSessionDTO(sess.view()), nil
}

func (s *service) GetSession(ctx context.Context, sessionID uuid.UUID) (SessionDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return SessionDTO{}, err
	}
	return newSessionDTO(sess.view()), nil
}

func (s *service) ToggleOption(ctx context.Context, sessionID, optionID uuid.UUID) (SessionDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return SessionDTO{}, err
	}
	if err := sess.Toggle(optionID); err != nil {
		return SessionDTO{}, err
	}
	return newSessionDTO(sess.view()), nil
}

func (s *service) SetQuantity(ctx context.Context, sessionID uuid.UUID, quantity int) (SessionDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return SessionDTO{}, err
	}
	if err := sess.SetQuantity(quantity); err != nil {
		return SessionDTO{}, err
	}
	return newSessionDTO(sess.view()), nil
}

func (s *service) Finalize(ctx context.Context, sessionID uuid.UUID) (ResultDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return ResultDTO{}, err
	}
	result, err := sess.Finalize()
	if err != nil {
		return ResultDTO{}, err
	}
	s.manager.Remove(sessionID)

	view := sess.view()
	return ResultDTO{
		ProductID:         result.ProductID,
		ProductName:       view.Product.Name,
		Quantity:          result.Quantity,
		TotalPrice:        result.TotalPrice,
		SelectedOptionIDs: result.SelectedOptions,
	}, nil
}

func (s *service) CloseSession(ctx context.Context, sessionID uuid.UUID) error {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return err
	}
	sess.Close()
	s.manager.Remove(sessionID)
	return nil
}

// Quote prices a configuration in one shot, without session state. Selections
// are validated against the group semantics: unknown options and double
// selections inside a single-select group are rejected.
func (s *service) Quote(ctx context.Context, req QuoteRequest) (QuoteDTO, error) {
	product, err := s.source.GetProduct(ctx, req.ProductID)
	if err != nil {
		return QuoteDTO{}, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()
	groups, err := s.source.LoadProductOptions(loadCtx, req.ProductID)
	if err != nil {
		return QuoteDTO{}, errors.Wrap(errors.CodeDependency, err, "product options could not be loaded")
	}

	sel := NewSelectionSet()
	for _, optionID := range req.OptionIDs {
		group, ok := FindGroupForOption(groups, optionID)
		if !ok {
			return QuoteDTO{}, errors.New(errors.CodeValidation, "option does not belong to this product").
				WithDetails(map[string]any{"option_id": optionID})
		}
		if !group.AllowMultiple && len(sel.SelectedInGroup(group.ID)) > 0 {
			return QuoteDTO{}, errors.New(errors.CodeValidation, "multiple options selected in a single-select group").
				WithDetails(map[string]any{"group_id": group.ID})
		}
		if sel.Has(optionID) {
			return QuoteDTO{}, errors.New(errors.CodeValidation, "duplicate option in selection").
				WithDetails(map[string]any{"option_id": optionID})
		}
		sel.Toggle(optionID, group.ID, group.AllowMultiple)
	}

	quantity := ClampQuantity(req.Quantity)
	missing := MissingRequiredGroups(groups, sel)
	return QuoteDTO{
		ProductID:         product.ID,
		Quantity:          quantity,
		TotalPrice:        TotalPrice(product, groups, sel, quantity),
		CanFinalize:       len(missing) == 0,
		MissingGroupIDs:   missing,
		SelectedOptionIDs: sel.IDs(),
	}, nil
}
