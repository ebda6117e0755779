package service

import (
	"context"
	"errors"

	enquirieserrors "trailhead/internal/enquiries/errors"
	"trailhead/internal/enquiries/repository"
	"trailhead/internal/enquiries/validator"
	"trailhead/pkg/config"
	apperrors "trailhead/pkg/errors"
	"trailhead/pkg/kafka"
	"trailhead/pkg/model"
	"trailhead/pkg/sanitizer"
)

// EventPublisher emits domain events. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type EnquiryService interface {
	Create(ctx context.Context, e *model.Enquiry) error
	GetByID(ctx context.Context, id string) (*model.Enquiry, error)
	GetAll(ctx context.Context, destinationSlug string, limit int, offset int64) ([]*model.Enquiry, int64, error)
	Delete(ctx context.Context, id string) error
}

type enquiryService struct {
	repo      repository.EnquiryRepository
	validator *validator.EnquiryValidator
	cfg       *config.Config
	events    EventPublisher
}

func NewEnquiryService(
	repo repository.EnquiryRepository,
	validator *validator.EnquiryValidator,
	cfg *config.Config,
	events EventPublisher,
) EnquiryService {
	return &enquiryService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		events:    events,
	}
}

func (s *enquiryService) Create(ctx context.Context, e *model.Enquiry) error {
	s.sanitize(e)

	if err := s.validator.Validate(e); err != nil {
		s.cfg.Log.Warn("Enquiry validation failed",
			"email", e.Email,
			"destination_slug", e.DestinationSlug,
			"error", err,
		)
		return apperrors.Validation("Enquiry validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.cfg.Log.Error("Failed to create enquiry",
			"email", e.Email,
			"error", err,
		)
		return apperrors.Internal("Failed to submit enquiry", err)
	}

	s.publishCreated(ctx, e)

	s.cfg.Log.Info("Enquiry submitted",
		"id", e.ID,
		"destination_slug", e.DestinationSlug,
	)

	return nil
}

func (s *enquiryService) GetByID(ctx context.Context, id string) (*model.Enquiry, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Enquiry ID cannot be empty")
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, enquirieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Enquiry", id)
		}
		if errors.Is(err, enquirieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid enquiry ID format")
		}
		s.cfg.Log.Error("Failed to get enquiry by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve enquiry", err)
	}

	return e, nil
}

func (s *enquiryService) GetAll(ctx context.Context, destinationSlug string, limit int, offset int64) ([]*model.Enquiry, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	enquiries, err := s.repo.FindAll(ctx, destinationSlug, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to get enquiries",
			"destination_slug", destinationSlug,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve enquiries", err)
	}

	count, err := s.repo.Count(ctx, destinationSlug)
	if err != nil {
		s.cfg.Log.Error("Failed to count enquiries", "error", err)
		return nil, 0, apperrors.Internal("Failed to count enquiries", err)
	}

	return enquiries, count, nil
}

func (s *enquiryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Enquiry ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, enquirieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Enquiry", id)
		}
		if errors.Is(err, enquirieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid enquiry ID format")
		}
		s.cfg.Log.Error("Failed to delete enquiry",
			"id", id,
			"error", err,
		)
		return apperrors.Internal("Failed to delete enquiry", err)
	}

	s.cfg.Log.Info("Enquiry deleted", "id", id)

	return nil
}

func (s *enquiryService) sanitize(e *model.Enquiry) {
	e.Name = sanitizer.NormalizeName(e.Name)
	e.Email = sanitizer.TrimAndNormalize(e.Email)
	e.Phone = sanitizer.NormalizePhone(e.Phone)
	e.DestinationSlug = sanitizer.TrimAndNormalize(e.DestinationSlug)
	e.Message = sanitizer.TrimAndNormalize(e.Message)
}

func (s *enquiryService) publishCreated(ctx context.Context, e *model.Enquiry) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(e.ID).
		WithValue(e).
		WithEventType(kafka.EventEnquiryCreated).
		WithSource("cms").
		Build()

	// Best effort: the enquiry is stored regardless of notification delivery.
	if err := s.events.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish enquiry event",
			"id", e.ID,
			"error", err,
		)
	}
}
