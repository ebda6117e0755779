package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"trailhead/internal/destinations/editor"
	destinationserrors "trailhead/internal/destinations/errors"
	"trailhead/internal/destinations/repository"
	"trailhead/internal/destinations/validator"
	"trailhead/pkg/cache"
	"trailhead/pkg/config"
	apperrors "trailhead/pkg/errors"
	"trailhead/pkg/kafka"
	"trailhead/pkg/model"
	"trailhead/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const cacheKeyPrefix = "destinations:slug:"

// ContentGenerator proposes draft content for a destination given its name.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, name string) (*model.GeneratedContent, error)
}

// EventPublisher emits domain events. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type DestinationService interface {
	Create(ctx context.Context, d *model.Destination) error
	GetByID(ctx context.Context, id string) (*model.Destination, error)
	GetBySlug(ctx context.Context, slug string) (*model.Destination, error)
	GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, int64, error)
	Update(ctx context.Context, id string, updates *model.DestinationUpdate) error
	Delete(ctx context.Context, id string) error

	GenerateDraft(ctx context.Context, name string) (*model.Destination, error)
}

type destinationService struct {
	repo      repository.DestinationRepository
	validator *validator.DestinationValidator
	cfg       *config.Config
	cache     *cache.Cache
	generator ContentGenerator
	events    EventPublisher

	mu       sync.Mutex
	inflight map[string]bool
}

func NewDestinationService(
	repo repository.DestinationRepository,
	validator *validator.DestinationValidator,
	cfg *config.Config,
	cache *cache.Cache,
	generator ContentGenerator,
	events EventPublisher,
) DestinationService {
	return &destinationService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		cache:     cache,
		generator: generator,
		events:    events,
		inflight:  make(map[string]bool),
	}
}

func (s *destinationService) Create(ctx context.Context, d *model.Destination) error {
	s.sanitize(d)

	ed := editor.Load(*d)
	if missing := ed.ValidateRequired(); len(missing) > 0 {
		return apperrors.Validation("Destination is missing required fields", map[string]any{
			"missing_fields": missing,
		})
	}
	ed.DeriveSlugIfEmpty()
	doc := ed.Serialize()

	if err := s.validator.Validate(&doc); err != nil {
		s.cfg.Log.Warn("Destination validation failed",
			"name", doc.Name,
			"slug", doc.Slug,
			"error", err,
		)
		return apperrors.Validation("Destination validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		exists, err := s.repo.ExistsBySlug(sessCtx, doc.Slug)
		if err != nil {
			return fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if exists {
			return apperrors.ConflictOnField("slug", doc.Slug)
		}

		if err := s.repo.Create(sessCtx, &doc); err != nil {
			return fmt.Errorf("failed to create destination: %w", err)
		}
		return nil
	})

	if err != nil {
		// The unique index catches writers that raced past the existence
		// check; both paths report the same conflict.
		if errors.Is(err, destinationserrors.ErrDuplicateSlug) {
			return apperrors.ConflictOnField("slug", doc.Slug)
		}
		s.cfg.Log.Error("Failed to create destination",
			"name", doc.Name,
			"slug", doc.Slug,
			"error", err,
		)
		return err
	}

	*d = doc
	s.publishEvent(ctx, kafka.EventDestinationCreated, d.ID, d.Slug)

	s.cfg.Log.Info("Destination created successfully",
		"id", d.ID,
		"name", d.Name,
		"slug", d.Slug,
	)

	return nil
}

func (s *destinationService) GetByID(ctx context.Context, id string) (*model.Destination, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Destination ID cannot be empty")
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, destinationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Destination", id)
		}
		if errors.Is(err, destinationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid destination ID format")
		}
		s.cfg.Log.Error("Failed to get destination by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve destination", err)
	}

	return d, nil
}

func (s *destinationService) GetBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	if slug == "" {
		return nil, apperrors.InvalidInput("Destination slug cannot be empty")
	}

	if cached, ok := s.cache.Get(ctx, cacheKeyPrefix+slug); ok {
		var d model.Destination
		if err := json.Unmarshal([]byte(cached), &d); err == nil {
			return &d, nil
		}
		s.cache.Delete(ctx, cacheKeyPrefix+slug)
	}

	d, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, destinationserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Destination")
		}
		s.cfg.Log.Error("Failed to get destination by slug",
			"slug", slug,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve destination", err)
	}

	if data, err := json.Marshal(d); err == nil {
		s.cache.Set(ctx, cacheKeyPrefix+slug, string(data))
	}

	return d, nil
}

func (s *destinationService) GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Destination, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	filter.Category = sanitizer.NormalizeCategory(filter.Category)

	var count int64
	var destinations []*model.Destination
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count destinations", "error", err)
			errCount = apperrors.Internal("Failed to count destinations", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
		defer cancel()
		destinations, err = s.repo.FindAll(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get all destinations",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve destinations", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return destinations, count, nil
}

func (s *destinationService) Update(ctx context.Context, id string, updates *model.DestinationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Destination ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, destinationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Destination", id)
		}
		if errors.Is(err, destinationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid destination ID format")
		}
		return apperrors.Internal("Failed to check destination existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeUpdates(existing, updates)

	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Destination validation failed",
			"id", id,
			"name", merged.Name,
			"error", err,
		)
		return apperrors.Validation("Destination validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, destinationserrors.ErrDuplicateSlug) {
			return apperrors.ConflictOnField("slug", merged.Slug)
		}
		s.cfg.Log.Error("Failed to update destination",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to update destination", err)
	}

	s.cache.Delete(ctx, cacheKeyPrefix+existing.Slug)
	s.publishEvent(ctx, kafka.EventDestinationUpdated, id, merged.Slug)

	s.cfg.Log.Info("Destination updated successfully",
		"id", id,
		"name", merged.Name,
	)

	return nil
}

func (s *destinationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Destination ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, destinationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Destination", id)
		}
		if errors.Is(err, destinationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid destination ID format")
		}
		return apperrors.Internal("Failed to check destination existence", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, destinationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Destination", id)
		}
		s.cfg.Log.Error("Failed to delete destination",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete destination", err)
	}

	s.cache.Delete(ctx, cacheKeyPrefix+existing.Slug)
	s.publishEvent(ctx, kafka.EventDestinationDeleted, id, existing.Slug)

	s.cfg.Log.Info("Destination deleted successfully", "id", id)

	return nil
}

// GenerateDraft asks the content service for a proposal and merges it into a
// fresh document. The draft is returned unsaved; the admin reviews and then
// creates it through the normal path. One generation per name at a time.
func (s *destinationService) GenerateDraft(ctx context.Context, name string) (*model.Destination, error) {
	name = sanitizer.NormalizeName(name)
	if name == "" {
		return nil, apperrors.InvalidInput("Destination name cannot be empty")
	}
	if s.generator == nil {
		return nil, apperrors.Unavailable("Content generation")
	}

	key := editor.Slugify(name)

	s.mu.Lock()
	if s.inflight[key] {
		s.mu.Unlock()
		return nil, apperrors.Conflict(fmt.Sprintf("Generation already in progress for %q", name))
	}
	s.inflight[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, key)
		s.mu.Unlock()
	}()

	gen, err := s.generator.GenerateContent(ctx, name)
	if err != nil {
		s.cfg.Log.Error("Content generation failed",
			"name", name,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Unavailable("Content generation")
	}

	ed := editor.New()
	ed.SetScalars(model.Destination{Name: name})
	ed.ApplyGenerated(*gen)
	ed.DeriveSlugIfEmpty()

	draft := ed.Serialize()

	s.cfg.Log.Info("Destination draft generated",
		"name", name,
		"slug", draft.Slug,
		"places", len(draft.PlacesToVisit),
		"activities", len(draft.ThingsToDo),
		"days", len(draft.Itinerary),
		"faqs", len(draft.FAQs),
	)

	return &draft, nil
}

func (s *destinationService) publishEvent(ctx context.Context, eventType, id, slug string) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(id).
		WithValue(map[string]string{"id": id, "slug": slug}).
		WithEventType(eventType).
		WithSource("cms").
		Build()

	// Best effort: a dropped event never fails the write that caused it.
	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish destination event",
			"event_type", eventType,
			"id", id,
			"error", err,
		)
	}
}

func (s *destinationService) sanitize(d *model.Destination) {
	d.Name = sanitizer.NormalizeName(d.Name)
	d.Description = sanitizer.TrimAndNormalize(d.Description)
	d.Duration = sanitizer.TrimAndNormalize(d.Duration)
	d.Difficulty = sanitizer.NormalizeDifficulty(d.Difficulty)
	d.BestTime = sanitizer.TrimAndNormalize(d.BestTime)
	d.Category = sanitizer.NormalizeCategory(d.Category)
	d.Altitude = sanitizer.TrimAndNormalize(d.Altitude)
	d.HeroImageURL = sanitizer.NormalizeURL(d.HeroImageURL)
	d.CardImageURL = sanitizer.NormalizeURL(d.CardImageURL)
	d.TravelTips = sanitizer.NormalizeTips(d.TravelTips)
}

func (s *destinationService) sanitizeUpdate(updates *model.DestinationUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Description != "" {
		updates.Description = sanitizer.TrimAndNormalize(updates.Description)
	}
	if updates.Duration != "" {
		updates.Duration = sanitizer.TrimAndNormalize(updates.Duration)
	}
	if updates.Difficulty != "" {
		updates.Difficulty = sanitizer.NormalizeDifficulty(updates.Difficulty)
	}
	if updates.BestTime != "" {
		updates.BestTime = sanitizer.TrimAndNormalize(updates.BestTime)
	}
	if updates.Category != "" {
		updates.Category = sanitizer.NormalizeCategory(updates.Category)
	}
	if updates.Altitude != nil {
		normalized := sanitizer.TrimAndNormalize(*updates.Altitude)
		updates.Altitude = &normalized
	}
	if updates.HeroImageURL != nil {
		normalized := sanitizer.NormalizeURL(*updates.HeroImageURL)
		updates.HeroImageURL = &normalized
	}
	if updates.CardImageURL != nil {
		normalized := sanitizer.NormalizeURL(*updates.CardImageURL)
		updates.CardImageURL = &normalized
	}
	if updates.TravelTips != nil {
		normalized := sanitizer.NormalizeTips(*updates.TravelTips)
		updates.TravelTips = &normalized
	}
}

// mergeUpdates applies the partial update onto the existing document. The
// slug is never changed after creation; published URLs stay stable.
func (s *destinationService) mergeUpdates(existing *model.Destination, updates *model.DestinationUpdate) *model.Destination {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Duration != "" {
		merged.Duration = updates.Duration
	}
	if updates.Difficulty != "" {
		merged.Difficulty = updates.Difficulty
	}
	if updates.BestTime != "" {
		merged.BestTime = updates.BestTime
	}
	if updates.Category != "" {
		merged.Category = updates.Category
	}
	if updates.Altitude != nil {
		merged.Altitude = *updates.Altitude
	}
	if updates.Overview != nil {
		merged.Overview = *updates.Overview
	}
	if updates.HeroImageURL != nil {
		merged.HeroImageURL = *updates.HeroImageURL
	}
	if updates.CardImageURL != nil {
		merged.CardImageURL = *updates.CardImageURL
	}
	if updates.TravelTips != nil {
		merged.TravelTips = *updates.TravelTips
	}
	if updates.Featured != nil {
		merged.Featured = *updates.Featured
	}

	if updates.PlacesToVisit != nil {
		merged.PlacesToVisit = updates.PlacesToVisit
	}
	if updates.ThingsToDo != nil {
		merged.ThingsToDo = updates.ThingsToDo
	}
	if updates.Itinerary != nil {
		merged.Itinerary = updates.Itinerary
	}
	if updates.FAQs != nil {
		merged.FAQs = updates.FAQs
	}

	if updates.HowToReach != nil {
		merged.HowToReach = *updates.HowToReach
	}
	if updates.BestTimeDetails != nil {
		merged.BestTimeDetails = *updates.BestTimeDetails
	}
	if updates.WhereToStay != nil {
		merged.WhereToStay = *updates.WhereToStay
	}

	merged.ID = existing.ID
	merged.Slug = existing.Slug
	merged.CreatedAt = existing.CreatedAt

	return &merged
}
