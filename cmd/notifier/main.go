// The notifier consumes enquiry events and alerts the operations team so
// fresh leads get a same-day response. Delivery is currently a structured
// log line scraped by the alerting pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trailhead/pkg/kafka"
	kafkaconfig "trailhead/pkg/kafka/config"
	"trailhead/pkg/logger"
	"trailhead/pkg/model"
)

const consumerGroup = "trailhead-notifier"

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:     logger.INFO,
		Format:    logger.JSON,
		AddSource: true,
		Service:   "notifier",
	})

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		log.Fatal("Invalid Kafka configuration", "error", err)
	}

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		kafkaCfg.TopicEnquiries,
		consumerGroup,
		kafkaCfg.TopicDLQ,
		handleEnquiry(log),
	)
	if err != nil {
		log.Fatal("Failed to create consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	consumerErrors := make(chan error, 1)
	go func() {
		log.Info("Notifier started", "topic", kafkaCfg.TopicEnquiries, "group", consumerGroup)
		consumerErrors <- consumer.Start(ctx)
	}()

	select {
	case err := <-consumerErrors:
		if err != nil {
			log.Error("Consumer stopped with error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)
		cancel()
		<-consumerErrors
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	log.Info("Notifier stopped")
}

func handleEnquiry(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		if msg.GetEventType() != kafka.EventEnquiryCreated {
			log.Debug("Skipping event", "event_type", msg.GetEventType())
			return nil
		}

		var e model.Enquiry
		if err := msg.DecodeValue(&e); err != nil {
			return fmt.Errorf("failed to decode enquiry %s: %w", msg.GetEventID(), err)
		}

		log.Info("New enquiry received",
			"enquiry_id", e.ID,
			"name", e.Name,
			"email", e.Email,
			"destination_slug", e.DestinationSlug,
			"event_id", msg.GetEventID(),
		)
		return nil
	}
}
