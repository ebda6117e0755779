package main

import (
	"context"

	"github.com/joho/godotenv"

	destinationshandler "trailhead/internal/destinations/handler"
	destinationsrepository "trailhead/internal/destinations/repository"
	destinationsservice "trailhead/internal/destinations/service"
	destinationsvalidator "trailhead/internal/destinations/validator"
	enquirieshandler "trailhead/internal/enquiries/handler"
	enquiriesrepository "trailhead/internal/enquiries/repository"
	enquiriesservice "trailhead/internal/enquiries/service"
	enquiriesvalidator "trailhead/internal/enquiries/validator"
	"trailhead/internal/generate"
	"trailhead/internal/media"
	"trailhead/pkg/app"
	"trailhead/pkg/cache"
	"trailhead/pkg/config"
	"trailhead/pkg/kafka"
	kafkaconfig "trailhead/pkg/kafka/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load("cms")
	cfg.SetMongo()
	cfg.SetRedis()

	destinationRepo := destinationsrepository.NewMongoDestinationRepository(cfg)
	if err := destinationRepo.EnsureIndexes(context.Background()); err != nil {
		cfg.Log.Fatal("Failed to ensure destination indexes", "error", err)
	}

	events := initEvents(cfg)

	contentCache := cache.New(cfg.Client.Redis, cfg.CacheTTL, cfg.Log)

	destinationService := destinationsservice.NewDestinationService(
		destinationRepo,
		destinationsvalidator.NewDestinationValidator(),
		cfg,
		contentCache,
		generatorOrNil(cfg),
		events.destinations,
	)
	destinationHandler := destinationshandler.NewDestinationHandler(destinationService, cfg.Log)

	enquiryService := enquiriesservice.NewEnquiryService(
		enquiriesrepository.NewMongoEnquiryRepository(cfg),
		enquiriesvalidator.NewEnquiryValidator(),
		cfg,
		events.enquiries,
	)
	enquiryHandler := enquirieshandler.NewEnquiryHandler(enquiryService, cfg.Log)

	mediaHandler := media.NewHandler(media.NewService(cfg), cfg.MediaDir, cfg.MediaBaseURL, cfg.Log)

	application := app.NewApplication(cfg)
	application.SetApp(mediaHandler, destinationHandler, enquiryHandler)
	application.OnShutdown(events.close)
	application.Run()
}

type eventProducers struct {
	destinations destinationsservice.EventPublisher
	enquiries    enquiriesservice.EventPublisher
	closers      []*kafka.Producer
}

func (e *eventProducers) close() {
	for _, p := range e.closers {
		_ = p.Close()
	}
}

// initEvents builds the Kafka producers. The CMS runs fine without a broker;
// missing configuration just disables event publishing.
func initEvents(cfg *config.Config) *eventProducers {
	events := &eventProducers{}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Warn("Kafka disabled, events will not be published", "error", err)
		return events
	}

	destProducer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.TopicDestinations, kafkaCfg.TopicDLQ)
	if err != nil {
		cfg.Log.Warn("Failed to create destination event producer", "error", err)
	} else {
		events.destinations = destProducer
		events.closers = append(events.closers, destProducer)
	}

	enqProducer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.TopicEnquiries, kafkaCfg.TopicDLQ)
	if err != nil {
		cfg.Log.Warn("Failed to create enquiry event producer", "error", err)
	} else {
		events.enquiries = enqProducer
		events.closers = append(events.closers, enqProducer)
	}

	return events
}

func generatorOrNil(cfg *config.Config) destinationsservice.ContentGenerator {
	client := generate.NewClient(cfg)
	if client == nil {
		cfg.Log.Warn("Content generation disabled, no service URL configured")
		return nil
	}
	return client
}
