package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	destinationserrors "trailhead/internal/destinations/errors"
	"trailhead/pkg/config"
	mongotx "trailhead/pkg/db/mongo"
	"trailhead/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "destinations"
)

// ListFilter narrows public listing queries. Zero value lists everything.
type ListFilter struct {
	Category     string
	FeaturedOnly bool
}

type mongoDestinationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type DestinationRepository interface {
	Create(ctx context.Context, d *model.Destination) error
	FindByID(ctx context.Context, id string) (*model.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*model.Destination, error)
	FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Destination, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, id string, d *model.Destination) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error

	EnsureIndexes(ctx context.Context) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoDestinationRepository(cfg *config.Config) DestinationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDestinationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics, so
// inside a transaction the original context is returned with a no-op cancel.
func (r *mongoDestinationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// EnsureIndexes creates the unique slug index and the listing indexes. The
// unique index is the backstop behind the proactive slug existence check.
func (r *mongoDestinationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_slug"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "featured", Value: -1}},
			Options: options.Index().SetName("category_featured"),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create destination indexes: %w", err)
	}
	return nil
}

func (r *mongoDestinationRepository) Create(ctx context.Context, d *model.Destination) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	d.CreatedAt = now
	d.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, d)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", destinationserrors.ErrDuplicateSlug, d.Slug)
		}
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid.Hex()
	}

	return nil
}

func (r *mongoDestinationRepository) FindByID(ctx context.Context, id string) (*model.Destination, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", destinationserrors.ErrInvalidID, id)
	}

	var d model.Destination
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", destinationserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find destination: %w", err)
	}
	return &d, nil
}

func (r *mongoDestinationRepository) FindBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var d model.Destination
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: slug %s", destinationserrors.ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to find destination by slug: %w", err)
	}
	return &d, nil
}

func (r *mongoDestinationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return count > 0, nil
}

func listFilterQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.FeaturedOnly {
		query["featured"] = true
	}
	return query
}

func (r *mongoDestinationRepository) FindAll(ctx context.Context, filter ListFilter, limit int, offset int64) ([]*model.Destination, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, listFilterQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer cursor.Close(ctx)

	var destinations []*model.Destination
	if err = cursor.All(ctx, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}

	return destinations, nil
}

func (r *mongoDestinationRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, listFilterQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count destinations: %w", err)
	}
	return count, nil
}

func (r *mongoDestinationRepository) Update(ctx context.Context, id string, d *model.Destination) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", destinationserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":              d.Name,
			"description":       d.Description,
			"duration":          d.Duration,
			"difficulty":        d.Difficulty,
			"best_time":         d.BestTime,
			"category":          d.Category,
			"slug":              d.Slug,
			"altitude":          d.Altitude,
			"overview":          d.Overview,
			"hero_image_url":    d.HeroImageURL,
			"card_image_url":    d.CardImageURL,
			"travel_tips":       d.TravelTips,
			"featured":          d.Featured,
			"places_to_visit":   d.PlacesToVisit,
			"things_to_do":      d.ThingsToDo,
			"itinerary":         d.Itinerary,
			"faqs":              d.FAQs,
			"how_to_reach":      d.HowToReach,
			"best_time_details": d.BestTimeDetails,
			"where_to_stay":     d.WhereToStay,
			"updated_at":        time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", destinationserrors.ErrDuplicateSlug, d.Slug)
		}
		return nil, fmt.Errorf("failed to update destination: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", destinationserrors.ErrNotFound, id)
	}

	return result, nil
}

func (r *mongoDestinationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", destinationserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", destinationserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoDestinationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
