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

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetCustomerByAPIKey(ctx context.Context, apiKey string) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id string, params UpdateCustomerParams) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context, page Page) ([]*model.Customer, error)
}

// UpdateCustomerParams holds the full set of profile fields. Nil optionals are cleared.
type UpdateCustomerParams struct {
	Name           string
	Email          string
	Phone          *string
	WaLink         *string
	Intro          *string
	About          *string
	ProfilePicture *string
}

func (p UpdateCustomerParams) fields() bson.D {
	return bson.D{
		{Key: "name", Value: p.Name},
		{Key: "email", Value: p.Email},
		{Key: "phone", Value: p.Phone},
		{Key: "wa_link", Value: p.WaLink},
		{Key: "intro", Value: p.Intro},
		{Key: "about", Value: p.About},
		{Key: "profile_picture", Value: p.ProfilePicture},
	}
}

const customerCollection = "customer"

type customerMongoRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewCustomerMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) CustomerRepository {
	collection := db.Collection(customerCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "api_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create customer indexes")
	}

	return &customerMongoRepository{collection: collection, now: time.Now}
}

func (r *customerMongoRepository) CreateCustomer(
	ctx context.Context,
	customer *model.Customer,
) (*model.Customer, error) {
	customer.ID = bson.NilObjectID
	customer.CreatedAt = r.now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		return nil, mapMongoError(err)
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	customer.ID = objectID

	return customer, nil
}

func (r *customerMongoRepository) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *customerMongoRepository) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *customerMongoRepository) GetCustomerByAPIKey(ctx context.Context, apiKey string) (*model.Customer, error) {
	if apiKey == "" {
		return nil, ErrNotFound
	}

	return r.findOne(ctx, bson.M{"api_key": apiKey})
}

func (r *customerMongoRepository) UpdateCustomer(
	ctx context.Context,
	id string,
	params UpdateCustomerParams,
) (*model.Customer, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var customer model.Customer
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.D{{Key: "$set", Value: params.fields()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&customer)
	if err != nil {
		return nil, mapMongoError(err)
	}

	return &customer, nil
}

func (r *customerMongoRepository) DeleteCustomer(ctx context.Context, id string) (*model.Customer, error) {
	objectID, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var customer model.Customer
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&customer); err != nil {
		return nil, mapMongoError(err)
	}

	return &customer, nil
}

func (r *customerMongoRepository) ListCustomers(ctx context.Context, page Page) ([]*model.Customer, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(page.Limit)

	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer cursor.Close(ctx)

	customers := make([]*model.Customer, 0)
	for cursor.Next(ctx) {
		var customer model.Customer
		if err := cursor.Decode(&customer); err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *customerMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Customer, error) {
	var customer model.Customer
	if err := r.collection.FindOne(ctx, filter).Decode(&customer); err != nil {
		return nil, mapMongoError(err)
	}

	return &customer, nil
}
