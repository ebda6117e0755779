package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	destinationserrors "trailhead/internal/destinations/errors"
	"trailhead/internal/destinations/repository"
	"trailhead/internal/destinations/validator"
	"trailhead/pkg/config"
	mongotx "trailhead/pkg/db/mongo"
	apperrors "trailhead/pkg/errors"
	"trailhead/pkg/logger"
	"trailhead/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// Mock repository for testing
// ────────────────────────────────────────────────

type mockDestinationRepository struct {
	createFunc       func(ctx context.Context, d *model.Destination) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Destination, error)
	findBySlugFunc   func(ctx context.Context, slug string) (*model.Destination, error)
	findAllFunc      func(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, error)
	countFunc        func(ctx context.Context, filter repository.ListFilter) (int64, error)
	existsBySlugFunc func(ctx context.Context, slug string) (bool, error)
	updateFunc       func(ctx context.Context, id string, d *model.Destination) (*mongo.UpdateResult, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockDestinationRepository) Create(ctx context.Context, d *model.Destination) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, d)
	}
	d.ID = "65f000000000000000000001"
	return nil
}

func (m *mockDestinationRepository) FindByID(ctx context.Context, id string) (*model.Destination, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockDestinationRepository) FindBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockDestinationRepository) FindAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter, limit, offset)
	}
	return []*model.Destination{}, nil
}

func (m *mockDestinationRepository) Count(ctx context.Context, filter repository.ListFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockDestinationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.existsBySlugFunc != nil {
		return m.existsBySlugFunc(ctx, slug)
	}
	return false, nil
}

func (m *mockDestinationRepository) Update(ctx context.Context, id string, d *model.Destination) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, d)
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockDestinationRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockDestinationRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (m *mockDestinationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockGenerator struct {
	generateFunc func(ctx context.Context, name string) (*model.GeneratedContent, error)
}

func (m *mockGenerator) GenerateContent(ctx context.Context, name string) (*model.GeneratedContent, error) {
	return m.generateFunc(ctx, name)
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
}

func newTestService(repo repository.DestinationRepository, gen ContentGenerator) DestinationService {
	return NewDestinationService(repo, validator.NewDestinationValidator(), testConfig(), nil, gen, nil)
}

func validInput() *model.Destination {
	return &model.Destination{
		Name:        "Valley of Flowers",
		Description: "Alpine valley famed for its meadows",
		Duration:    "6 days",
		Difficulty:  "Moderate",
		BestTime:    "July to September",
		Category:    "Trekking",
	}
}

// ────────────────────────────────────────────────
// Tests for Create()
// ────────────────────────────────────────────────

func TestCreate_DerivesSlug(t *testing.T) {
	var created *model.Destination
	mockRepo := &mockDestinationRepository{
		createFunc: func(ctx context.Context, d *model.Destination) error {
			d.ID = "65f000000000000000000001"
			created = d
			return nil
		},
	}

	svc := newTestService(mockRepo, nil)

	d := validInput()
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("repository Create was not called")
	}
	if created.Slug != "valley-of-flowers" {
		t.Errorf("slug = %q, want %q", created.Slug, "valley-of-flowers")
	}
	if d.ID == "" {
		t.Error("created id not propagated back to caller")
	}
}

func TestCreate_KeepsProvidedSlug(t *testing.T) {
	var created *model.Destination
	mockRepo := &mockDestinationRepository{
		createFunc: func(ctx context.Context, d *model.Destination) error {
			created = d
			return nil
		},
	}

	svc := newTestService(mockRepo, nil)

	d := validInput()
	d.Slug = "custom-slug"
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Slug != "custom-slug" {
		t.Errorf("slug = %q, want %q", created.Slug, "custom-slug")
	}
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	svc := newTestService(&mockDestinationRepository{}, nil)

	d := validInput()
	d.Duration = ""
	d.Category = ""

	err := svc.Create(context.Background(), d)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Fatalf("code = %s, want %s", appErr.Code, apperrors.CodeValidation)
	}

	missing, ok := appErr.Details["missing_fields"].([]string)
	if !ok {
		t.Fatalf("missing_fields detail absent: %v", appErr.Details)
	}
	want := []string{"duration", "category"}
	if len(missing) != len(want) || missing[0] != want[0] || missing[1] != want[1] {
		t.Errorf("missing fields = %v, want %v", missing, want)
	}
}

func TestCreate_DuplicateSlugFromExistenceCheck(t *testing.T) {
	mockRepo := &mockDestinationRepository{
		existsBySlugFunc: func(ctx context.Context, slug string) (bool, error) {
			return true, nil
		},
	}

	svc := newTestService(mockRepo, nil)

	err := svc.Create(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected conflict error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
	if appErr.Details["field"] != "slug" {
		t.Errorf("conflict field = %v, want slug", appErr.Details["field"])
	}
}

func TestCreate_DuplicateSlugFromUniqueIndex(t *testing.T) {
	mockRepo := &mockDestinationRepository{
		createFunc: func(ctx context.Context, d *model.Destination) error {
			return fmt.Errorf("%w: %s", destinationserrors.ErrDuplicateSlug, d.Slug)
		},
	}

	svc := newTestService(mockRepo, nil)

	err := svc.Create(context.Background(), validInput())
	if err == nil {
		t.Fatal("expected conflict error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeConflict)
	}
	if appErr.Details["field"] != "slug" {
		t.Errorf("conflict field = %v, want slug", appErr.Details["field"])
	}
}

func TestCreate_SanitizesInput(t *testing.T) {
	var created *model.Destination
	mockRepo := &mockDestinationRepository{
		createFunc: func(ctx context.Context, d *model.Destination) error {
			created = d
			return nil
		},
	}

	svc := newTestService(mockRepo, nil)

	d := validInput()
	d.Name = "  Valley   of Flowers "
	d.Category = "  Trekking "
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Name != "Valley of Flowers" {
		t.Errorf("Name = %q", created.Name)
	}
	if created.Category != "trekking" {
		t.Errorf("Category = %q", created.Category)
	}
}

// ────────────────────────────────────────────────
// Tests for GetAll()
// ────────────────────────────────────────────────

func TestGetAll_ConcurrentCountAndFind(t *testing.T) {
	mockRepo := &mockDestinationRepository{
		countFunc: func(ctx context.Context, filter repository.ListFilter) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Destination{
				{ID: "1", Name: "Valley of Flowers"},
				{ID: "2", Name: "Roopkund"},
			}, nil
		},
	}

	svc := newTestService(mockRepo, nil)

	for i := 0; i < 10; i++ {
		destinations, count, err := svc.GetAll(context.Background(), repository.ListFilter{}, 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: count = %d, want 42", i, count)
		}
		if len(destinations) != 2 {
			t.Errorf("iteration %d: results = %d, want 2", i, len(destinations))
		}
	}
}

func TestGetAll_LimitNormalization(t *testing.T) {
	mockRepo := &mockDestinationRepository{
		findAllFunc: func(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, error) {
			if limit <= 0 || limit > 100 {
				t.Errorf("limit not normalized: %d", limit)
			}
			if offset < 0 {
				t.Errorf("offset not normalized: %d", offset)
			}
			return []*model.Destination{}, nil
		},
	}

	svc := newTestService(mockRepo, nil)

	for _, limit := range []int{-5, 0, 10, 5000} {
		if _, _, err := svc.GetAll(context.Background(), repository.ListFilter{}, limit, -3); err != nil {
			t.Fatalf("limit %d: unexpected error: %v", limit, err)
		}
	}
}

// ────────────────────────────────────────────────
// Tests for Update()
// ────────────────────────────────────────────────

func TestUpdate_PreservesSlugAndCreatedAt(t *testing.T) {
	createdAt := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	existing := &model.Destination{
		ID:          "65f000000000000000000001",
		Name:        "Valley of Flowers",
		Description: "Alpine valley",
		Duration:    "6 days",
		Difficulty:  "moderate",
		BestTime:    "July to September",
		Category:    "trekking",
		Slug:        "valley-of-flowers",
		CreatedAt:   createdAt,
	}

	var updated *model.Destination
	mockRepo := &mockDestinationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Destination, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, d *model.Destination) (*mongo.UpdateResult, error) {
			updated = d
			return &mongo.UpdateResult{MatchedCount: 1}, nil
		},
	}

	svc := newTestService(mockRepo, nil)

	err := svc.Update(context.Background(), existing.ID, &model.DestinationUpdate{
		Name: "Valley of Flowers National Park",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "Valley of Flowers National Park" {
		t.Errorf("Name = %q", updated.Name)
	}
	if updated.Slug != "valley-of-flowers" {
		t.Errorf("slug changed on update: %q", updated.Slug)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt changed on update: %v", updated.CreatedAt)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	mockRepo := &mockDestinationRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Destination, error) {
			return nil, fmt.Errorf("%w: %s", destinationserrors.ErrNotFound, id)
		},
	}

	svc := newTestService(mockRepo, nil)

	err := svc.Update(context.Background(), "65f000000000000000000009", &model.DestinationUpdate{Name: "X Y"})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeNotFound)
	}
}

// ────────────────────────────────────────────────
// Tests for GenerateDraft()
// ────────────────────────────────────────────────

func TestGenerateDraft_MergesThroughEditor(t *testing.T) {
	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, name string) (*model.GeneratedContent, error) {
			return &model.GeneratedContent{
				Description: "Generated description",
				Duration:    "6 days",
				Difficulty:  "moderate",
				BestTime:    "July to September",
				Category:    "trekking",
				PlacesToVisit: []model.Place{
					{Name: "Ghangaria", Description: "Base village"},
				},
				FAQs: []model.FAQ{
					{Question: "Permits?", Answer: "At the forest gate"},
				},
			}, nil
		},
	}

	svc := newTestService(&mockDestinationRepository{}, gen)

	draft, err := svc.GenerateDraft(context.Background(), "Valley of Flowers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.ID != "" {
		t.Error("draft must not be persisted")
	}
	if draft.Slug != "valley-of-flowers" {
		t.Errorf("Slug = %q", draft.Slug)
	}
	if len(draft.PlacesToVisit) != 1 {
		t.Fatalf("places = %d, want 1", len(draft.PlacesToVisit))
	}
	for id, p := range draft.PlacesToVisit {
		if p.ID == "" || p.ID != id {
			t.Errorf("generated place missing editor-assigned id: %+v", p)
		}
	}
}

func TestGenerateDraft_GeneratorUnavailable(t *testing.T) {
	svc := newTestService(&mockDestinationRepository{}, nil)

	_, err := svc.GenerateDraft(context.Background(), "Valley of Flowers")
	if err == nil {
		t.Fatal("expected error with no generator configured")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeUnavailable {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeUnavailable)
	}
}

func TestGenerateDraft_RejectsConcurrentGeneration(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	gen := &mockGenerator{
		generateFunc: func(ctx context.Context, name string) (*model.GeneratedContent, error) {
			close(started)
			<-release
			return &model.GeneratedContent{}, nil
		},
	}

	svc := newTestService(&mockDestinationRepository{}, gen)

	done := make(chan error, 1)
	go func() {
		_, err := svc.GenerateDraft(context.Background(), "Valley of Flowers")
		done <- err
	}()

	<-started
	_, err := svc.GenerateDraft(context.Background(), "valley OF flowers")
	if err == nil {
		t.Error("expected conflict for in-flight generation of the same name")
	} else if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeConflict)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
}
