package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/internal/configurator"
	pkgerrors "github.com/lacomanda/comanda-backend/pkg/errors"
)

type stubConfigurator struct {
	opened    []uuid.UUID
	toggled   []uuid.UUID
	session   configurator.SessionDTO
	result    configurator.ResultDTO
	quote     configurator.QuoteDTO
	err       error
	closedIDs []uuid.UUID
}

func (s *stubConfigurator) OpenSession(ctx context.Context, productID uuid.UUID) (configurator.SessionDTO, error) {
	s.opened = append(s.opened, productID)
	return s.session, s.err
}

func (s *stubConfigurator) GetSession(ctx context.Context, sessionID uuid.UUID) (configurator.SessionDTO, error) {
	return s.session, s.err
}

func (s *stubConfigurator) ToggleOption(ctx context.Context, sessionID, optionID uuid.UUID) (configurator.SessionDTO, error) {
	s.toggled = append(s.toggled, optionID)
	return s.session, s.err
}

func (s *stubConfigurator) SetQuantity(ctx context.Context, sessionID uuid.UUID, quantity int) (configurator.SessionDTO, error) {
	return s.session, s.err
}

func (s *stubConfigurator) Finalize(ctx context.Context, sessionID uuid.UUID) (configurator.ResultDTO, error) {
	return s.result, s.err
}

func (s *stubConfigurator) CloseSession(ctx context.Context, sessionID uuid.UUID) error {
	s.closedIDs = append(s.closedIDs, sessionID)
	return s.err
}

func (s *stubConfigurator) Quote(ctx context.Context, req configurator.QuoteRequest) (configurator.QuoteDTO, error) {
	return s.quote, s.err
}

func sessionRouter(svc configurator.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/sessions", SessionOpen(svc, nil))
	r.Get("/sessions/{sessionId}", SessionDetail(svc, nil))
	r.Post("/sessions/{sessionId}/options/{optionId}/toggle", SessionToggleOption(svc, nil))
	r.Put("/sessions/{sessionId}/quantity", SessionSetQuantity(svc, nil))
	r.Post("/sessions/{sessionId}/finalize", SessionFinalize(svc, nil))
	r.Delete("/sessions/{sessionId}", SessionClose(svc, nil))
	return r
}

func TestSessionOpen(t *testing.T) {
	svc := &stubConfigurator{}
	router := sessionRouter(svc)
	productID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"product_id":"`+productID.String()+`"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.opened) != 1 || svc.opened[0] != productID {
		t.Fatalf("expected open call with %s, got %v", productID, svc.opened)
	}
}

func TestSessionOpen_MissingProductID(t *testing.T) {
	router := sessionRouter(&stubConfigurator{})

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionToggle_InvalidOptionID(t *testing.T) {
	svc := &stubConfigurator{}
	router := sessionRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+uuid.NewString()+"/options/not-a-uuid/toggle", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(svc.toggled) != 0 {
		t.Fatalf("service must not be called on invalid input")
	}
}

func TestSessionSetQuantity_RejectsZero(t *testing.T) {
	router := sessionRouter(&stubConfigurator{})

	req := httptest.NewRequest(http.MethodPut, "/sessions/"+uuid.NewString()+"/quantity", strings.NewReader(`{"quantity":0}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionFinalize_SurfacesStateConflict(t *testing.T) {
	svc := &stubConfigurator{
		err: pkgerrors.New(pkgerrors.CodeStateConflict, "required option groups are incomplete"),
	}
	router := sessionRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+uuid.NewString()+"/finalize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("unexpected code %q", payload.Error.Code)
	}
}

func TestSessionClose(t *testing.T) {
	svc := &stubConfigurator{}
	router := sessionRouter(svc)
	sessionID := uuid.New()

	req := httptest.NewRequest(http.MethodDelete, "/sessions/"+sessionID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.closedIDs) != 1 || svc.closedIDs[0] != sessionID {
		t.Fatalf("expected close call with %s, got %v", sessionID, svc.closedIDs)
	}
}

func TestCatalogQuote_DecodesRequest(t *testing.T) {
	svc := &stubConfigurator{}
	r := chi.NewRouter()
	r.Post("/quote", CatalogQuote(svc, nil))

	body := `{"product_id":"` + uuid.NewString() + `","option_ids":["` + uuid.NewString() + `"],"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
