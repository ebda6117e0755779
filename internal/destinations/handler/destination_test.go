package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"trailhead/internal/destinations/repository"
	"trailhead/pkg/logger"
	"trailhead/pkg/model"
)

// Mock service for testing
type mockDestinationService struct {
	getAllFunc    func(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, int64, error)
	getBySlugFunc func(ctx context.Context, slug string) (*model.Destination, error)
	generateFunc  func(ctx context.Context, name string) (*model.Destination, error)
}

func (m *mockDestinationService) Create(ctx context.Context, d *model.Destination) error {
	return nil
}

func (m *mockDestinationService) GetByID(ctx context.Context, id string) (*model.Destination, error) {
	return nil, nil
}

func (m *mockDestinationService) GetBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	if m.getBySlugFunc != nil {
		return m.getBySlugFunc(ctx, slug)
	}
	return &model.Destination{}, nil
}

func (m *mockDestinationService) GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, filter, limit, offset)
	}
	return []*model.Destination{}, 0, nil
}

func (m *mockDestinationService) Update(ctx context.Context, id string, updates *model.DestinationUpdate) error {
	return nil
}

func (m *mockDestinationService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockDestinationService) GenerateDraft(ctx context.Context, name string) (*model.Destination, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, name)
	}
	return &model.Destination{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func newTestRouter(svc *mockDestinationService) *httprouter.Router {
	h := NewDestinationHandler(svc, testLogger())
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreate_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockDestinationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/destinations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetAll_InvalidLimitParameter(t *testing.T) {
	router := newTestRouter(&mockDestinationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destinations?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetAll_PassesFilter(t *testing.T) {
	var received repository.ListFilter
	svc := &mockDestinationService{
		getAllFunc: func(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, int64, error) {
			received = filter
			return []*model.Destination{}, 0, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destinations?category=trekking&featured=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if received.Category != "trekking" {
		t.Errorf("category = %q", received.Category)
	}
	if !received.FeaturedOnly {
		t.Error("featured filter not passed through")
	}
}

func TestGetBySlug_OrdersThingsToDo(t *testing.T) {
	svc := &mockDestinationService{
		getBySlugFunc: func(ctx context.Context, slug string) (*model.Destination, error) {
			return &model.Destination{
				Name: "Valley of Flowers",
				Slug: slug,
				ThingsToDo: map[string]model.Activity{
					"b": {ID: "b", Title: "2. Village walk"},
					"a": {ID: "a", Title: "1. Summit hike"},
					"c": {ID: "c", Title: "Stargazing"},
				},
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destinations/slug/valley-of-flowers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Data DestinationPage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	got := body.Data.ThingsToDoOrdered
	if len(got) != 3 {
		t.Fatalf("ordered entries = %d, want 3", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Errorf("order = %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestGenerate_PassesName(t *testing.T) {
	var receivedName string
	svc := &mockDestinationService{
		generateFunc: func(ctx context.Context, name string) (*model.Destination, error) {
			receivedName = name
			return &model.Destination{Name: name, Slug: "valley-of-flowers"}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/destinations/generate", strings.NewReader(`{"name":"Valley of Flowers"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if receivedName != "Valley of Flowers" {
		t.Errorf("name = %q", receivedName)
	}
}
