package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SortOrder is the direction a collection is listed in by "order".
type SortOrder int

const (
	Ascending  SortOrder = 1
	Descending SortOrder = -1
)

// Schema describes where a resource is stored and how it is listed.
// GlobalSortOrder applies to the unscoped listing and defaults to SortOrder.
type Schema struct {
	Collection      string
	SortOrder       SortOrder
	GlobalSortOrder SortOrder
}

// ListOrder returns the direction for a listing scoped to customerID, or the
// global listing when customerID is empty.
func (s Schema) ListOrder(customerID string) SortOrder {
	if customerID == "" && s.GlobalSortOrder != 0 {
		return s.GlobalSortOrder
	}
	return s.SortOrder
}

var (
	ExperienceSchema = Schema{Collection: "experience", SortOrder: Descending, GlobalSortOrder: Ascending}
	ProjectSchema    = Schema{Collection: "project", SortOrder: Ascending}
	SkillSchema      = Schema{Collection: "skill", SortOrder: Ascending}
	SocialSchema     = Schema{Collection: "social", SortOrder: Descending}
)

// Fields is implemented by resource inputs. It returns every client-writable
// field, so writing it replaces the previous values including cleared optionals.
type Fields interface {
	Fields() bson.D
}

// Update is one element of a bulk update.
type Update[I Fields] struct {
	ID    string
	Input I
}

// ResourceRepository defines the storage operations shared by every customer-owned resource.
// An empty customerID on List lists across all customers; every write is scoped to customerID.
type ResourceRepository[T any, I Fields] interface {
	List(ctx context.Context, customerID string, page Page) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, customerID string, input I) (bson.ObjectID, error)
	UpdateByID(ctx context.Context, customerID, id string, input I) (*T, error)
	UpdateMany(ctx context.Context, customerID string, items []Update[I]) ([]T, error)
	DeleteByID(ctx context.Context, customerID, id string) (*T, error)
}

type resourceMongoRepository[T any, I Fields] struct {
	collection *mongo.Collection
	schema     Schema
	now        func() time.Time
}

func NewResourceMongoRepository[T any, I Fields](
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
	schema Schema,
) ResourceRepository[T, I] {
	collection := db.Collection(schema.Collection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "order", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Str("collection", schema.Collection).Msg("failed to create resource indexes")
	}

	return &resourceMongoRepository[T, I]{
		collection: collection,
		schema:     schema,
		now:        time.Now,
	}
}

func (r *resourceMongoRepository[T, I]) List(ctx context.Context, customerID string, page Page) ([]T, error) {
	filter := bson.D{}
	if customerID != "" {
		objectID, err := ParseID(customerID)
		if err != nil {
			return nil, err
		}
		filter = bson.D{{Key: "customer_id", Value: objectID}}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "order", Value: int(r.schema.ListOrder(customerID))}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.schema.Collection, err)
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.schema.Collection, err)
	}
	return items, nil
}

func (r *resourceMongoRepository[T, I]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var item T
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item); err != nil {
		return nil, mapMongoError(err)
	}

	return &item, nil
}

func (r *resourceMongoRepository[T, I]) Create(ctx context.Context, customerID string, input I) (bson.ObjectID, error) {
	customerObjectID, err := ParseID(customerID)
	if err != nil {
		return bson.NilObjectID, err
	}

	doc := bson.D{{Key: "customer_id", Value: customerObjectID}}
	doc = append(doc, input.Fields()...)
	doc = append(doc, bson.E{Key: "created_at", Value: r.now().UTC().Truncate(time.Millisecond)})

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return bson.NilObjectID, mapMongoError(err)
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, errors.New("failed to convert inserted ID to ObjectID")
	}

	return objectID, nil
}

func (r *resourceMongoRepository[T, I]) UpdateByID(
	ctx context.Context,
	customerID, id string,
	input I,
) (*T, error) {
	filter, err := ownedFilter(customerID, id)
	if err != nil {
		return nil, err
	}

	var item T
	err = r.collection.FindOneAndUpdate(
		ctx,
		filter,
		bson.D{{Key: "$set", Value: input.Fields()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err != nil {
		return nil, mapMongoError(err)
	}

	return &item, nil
}

func (r *resourceMongoRepository[T, I]) UpdateMany(
	ctx context.Context,
	customerID string,
	items []Update[I],
) ([]T, error) {
	if _, err := ParseID(customerID); err != nil {
		return nil, err
	}

	updated := make([]T, 0, len(items))
	for _, it := range items {
		item, err := r.UpdateByID(ctx, customerID, it.ID, it.Input)
		switch {
		case errors.Is(err, ErrInvalidID), errors.Is(err, ErrNotFound):
			continue
		case err != nil:
			return nil, err
		}
		updated = append(updated, *item)
	}

	if len(updated) == 0 {
		return nil, ErrNoUpdates
	}

	return updated, nil
}

func (r *resourceMongoRepository[T, I]) DeleteByID(ctx context.Context, customerID, id string) (*T, error) {
	filter, err := ownedFilter(customerID, id)
	if err != nil {
		return nil, err
	}

	var item T
	if err := r.collection.FindOneAndDelete(ctx, filter).Decode(&item); err != nil {
		return nil, mapMongoError(err)
	}

	return &item, nil
}

func ownedFilter(customerID, id string) (bson.D, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	customerObjectID, err := ParseID(customerID)
	if err != nil {
		return nil, err
	}

	return bson.D{{Key: "_id", Value: objectID}, {Key: "customer_id", Value: customerObjectID}}, nil
}
