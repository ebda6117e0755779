package service

import (
	"context"
	"testing"
	"time"

	"trailhead/internal/enquiries/validator"
	"trailhead/pkg/config"
	apperrors "trailhead/pkg/errors"
	"trailhead/pkg/kafka"
	"trailhead/pkg/logger"
	"trailhead/pkg/model"
)

type mockEnquiryRepository struct {
	createFunc func(ctx context.Context, e *model.Enquiry) error
}

func (m *mockEnquiryRepository) Create(ctx context.Context, e *model.Enquiry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, e)
	}
	e.ID = "65f000000000000000000002"
	return nil
}

func (m *mockEnquiryRepository) FindByID(ctx context.Context, id string) (*model.Enquiry, error) {
	return nil, nil
}

func (m *mockEnquiryRepository) FindAll(ctx context.Context, destinationSlug string, limit int, offset int64) ([]*model.Enquiry, error) {
	return []*model.Enquiry{}, nil
}

func (m *mockEnquiryRepository) Count(ctx context.Context, destinationSlug string) (int64, error) {
	return 0, nil
}

func (m *mockEnquiryRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout: 5 * time.Second,
	}
}

func validEnquiry() *model.Enquiry {
	return &model.Enquiry{
		Name:            "Asha Rawat",
		Email:           "asha@example.com",
		Phone:           "+91 98765 43210",
		DestinationSlug: "valley-of-flowers",
		Message:         "Looking for a July departure for two people.",
	}
}

func TestCreate_NormalizesPhone(t *testing.T) {
	var stored *model.Enquiry
	repo := &mockEnquiryRepository{
		createFunc: func(ctx context.Context, e *model.Enquiry) error {
			e.ID = "65f000000000000000000002"
			stored = e
			return nil
		},
	}

	svc := NewEnquiryService(repo, validator.NewEnquiryValidator(), testConfig(), nil)

	if err := svc.Create(context.Background(), validEnquiry()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Phone != "+919876543210" {
		t.Errorf("Phone = %q, want %q", stored.Phone, "+919876543210")
	}
}

func TestCreate_RejectsInvalidEmail(t *testing.T) {
	svc := NewEnquiryService(&mockEnquiryRepository{}, validator.NewEnquiryValidator(), testConfig(), nil)

	e := validEnquiry()
	e.Email = "not-an-email"

	err := svc.Create(context.Background(), e)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("code = %s, want %s", apperrors.AsAppError(err).Code, apperrors.CodeValidation)
	}
}

func TestCreate_PublishesEvent(t *testing.T) {
	pub := &mockPublisher{}
	svc := NewEnquiryService(&mockEnquiryRepository{}, validator.NewEnquiryValidator(), testConfig(), pub)

	if err := svc.Create(context.Background(), validEnquiry()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("published = %d messages, want 1", len(pub.published))
	}
	msg := pub.published[0]
	if msg.GetEventType() != kafka.EventEnquiryCreated {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.Key == "" {
		t.Error("event key should carry the enquiry id")
	}
}

func TestCreate_PublishFailureDoesNotFailCreate(t *testing.T) {
	svc := NewEnquiryService(&mockEnquiryRepository{}, validator.NewEnquiryValidator(), testConfig(), failingPublisher{})

	if err := svc.Create(context.Background(), validEnquiry()); err != nil {
		t.Fatalf("create failed because of event publish: %v", err)
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	return kafka.ErrProducerClosed
}
