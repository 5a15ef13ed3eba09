// Package repotest provides in-memory repositories for tests. Documents go
// through real BSON marshalling so decoding behaves like the Mongo driver.
package repotest

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/payload"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
)

type record struct {
	id         bson.ObjectID
	customerID bson.ObjectID
	fields     bson.D
	createdAt  time.Time
}

func (rec record) order() int32 {
	for _, e := range rec.fields {
		if e.Key == "order" {
			if v, ok := e.Value.(int32); ok {
				return v
			}
		}
	}
	return 0
}

func (rec record) document() bson.D {
	doc := bson.D{{Key: "_id", Value: rec.id}, {Key: "customer_id", Value: rec.customerID}}
	doc = append(doc, rec.fields...)
	return append(doc, bson.E{Key: "created_at", Value: rec.createdAt})
}

// ResourceRepository is an in-memory repository.ResourceRepository.
// Setting Err makes every call fail with it.
type ResourceRepository[T any, I repository.Fields] struct {
	Err error

	mu      sync.Mutex
	schema  repository.Schema
	records []record
}

func NewResourceRepository[T any, I repository.Fields](schema repository.Schema) *ResourceRepository[T, I] {
	return &ResourceRepository[T, I]{schema: schema}
}

func (r *ResourceRepository[T, I]) List(_ context.Context, customerID string, page repository.Page) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	var owner bson.ObjectID
	if customerID != "" {
		id, err := repository.ParseID(customerID)
		if err != nil {
			return nil, err
		}
		owner = id
	}

	matched := make([]record, 0, len(r.records))
	for _, rec := range r.records {
		if customerID == "" || rec.customerID == owner {
			matched = append(matched, rec)
		}
	}

	ascending := r.schema.ListOrder(customerID) == repository.Ascending
	slices.SortStableFunc(matched, func(a, b record) int {
		if a.order() != b.order() {
			if (a.order() < b.order()) == ascending {
				return -1
			}
			return 1
		}
		return bytes.Compare(a.id[:], b.id[:])
	})

	items := make([]T, 0)
	skip := page.Skip()
	for i := skip; i < int64(len(matched)) && int64(len(items)) < page.Limit; i++ {
		item, err := decode[T](matched[i].document())
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, nil
}

func (r *ResourceRepository[T, I]) FindByID(_ context.Context, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	objectID, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	for _, rec := range r.records {
		if rec.id == objectID {
			return decode[T](rec.document())
		}
	}

	return nil, repository.ErrNotFound
}

func (r *ResourceRepository[T, I]) Create(_ context.Context, customerID string, input I) (bson.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return bson.NilObjectID, r.Err
	}

	owner, err := repository.ParseID(customerID)
	if err != nil {
		return bson.NilObjectID, err
	}

	rec := record{
		id:         bson.NewObjectID(),
		customerID: owner,
		fields:     input.Fields(),
		createdAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	r.records = append(r.records, rec)

	return rec.id, nil
}

func (r *ResourceRepository[T, I]) UpdateByID(_ context.Context, customerID, id string, input I) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	return r.update(customerID, id, input)
}

func (r *ResourceRepository[T, I]) UpdateMany(
	_ context.Context,
	customerID string,
	items []repository.Update[I],
) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	if _, err := repository.ParseID(customerID); err != nil {
		return nil, err
	}

	updated := make([]T, 0, len(items))
	for _, it := range items {
		item, err := r.update(customerID, it.ID, it.Input)
		switch {
		case errors.Is(err, repository.ErrInvalidID), errors.Is(err, repository.ErrNotFound):
			continue
		case err != nil:
			return nil, err
		}
		updated = append(updated, *item)
	}

	if len(updated) == 0 {
		return nil, repository.ErrNoUpdates
	}

	return updated, nil
}

func (r *ResourceRepository[T, I]) DeleteByID(_ context.Context, customerID, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	i, err := r.indexOwned(customerID, id)
	if err != nil {
		return nil, err
	}

	rec := r.records[i]
	r.records = slices.Delete(r.records, i, i+1)

	return decode[T](rec.document())
}

// Len returns the number of stored documents.
func (r *ResourceRepository[T, I]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}

func (r *ResourceRepository[T, I]) update(customerID, id string, input I) (*T, error) {
	i, err := r.indexOwned(customerID, id)
	if err != nil {
		return nil, err
	}

	r.records[i].fields = input.Fields()

	return decode[T](r.records[i].document())
}

func (r *ResourceRepository[T, I]) indexOwned(customerID, id string) (int, error) {
	objectID, err := repository.ParseID(id)
	if err != nil {
		return -1, err
	}

	owner, err := repository.ParseID(customerID)
	if err != nil {
		return -1, err
	}

	for i, rec := range r.records {
		if rec.id == objectID && rec.customerID == owner {
			return i, nil
		}
	}

	return -1, repository.ErrNotFound
}

// CustomerRepository is an in-memory repository.CustomerRepository enforcing
// the unique e-mail and API key indexes. Setting Err makes every call fail with it.
type CustomerRepository struct {
	Err error

	mu        sync.Mutex
	customers []model.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) CreateCustomer(_ context.Context, customer *model.Customer) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	for _, c := range r.customers {
		if c.Email == customer.Email || (customer.APIKey != "" && c.APIKey == customer.APIKey) {
			return nil, repository.ErrDuplicateKey
		}
	}

	customer.ID = bson.NewObjectID()
	customer.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	stored, err := roundTrip(customer)
	if err != nil {
		return nil, err
	}
	r.customers = append(r.customers, *stored)

	return customer, nil
}

func (r *CustomerRepository) GetCustomer(_ context.Context, id string) (*model.Customer, error) {
	objectID, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	return r.find(func(c model.Customer) bool { return c.ID == objectID })
}

func (r *CustomerRepository) GetCustomerByEmail(_ context.Context, email string) (*model.Customer, error) {
	return r.find(func(c model.Customer) bool { return c.Email == email })
}

func (r *CustomerRepository) GetCustomerByAPIKey(_ context.Context, apiKey string) (*model.Customer, error) {
	if apiKey == "" {
		return nil, repository.ErrNotFound
	}

	return r.find(func(c model.Customer) bool { return c.APIKey == apiKey })
}

func (r *CustomerRepository) UpdateCustomer(
	_ context.Context,
	id string,
	params repository.UpdateCustomerParams,
) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	objectID, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	for _, c := range r.customers {
		if c.ID != objectID && c.Email == params.Email {
			return nil, repository.ErrDuplicateKey
		}
	}

	for i := range r.customers {
		c := &r.customers[i]
		if c.ID != objectID {
			continue
		}

		c.Name = params.Name
		c.Email = params.Email
		c.Phone = params.Phone
		c.WaLink = params.WaLink
		c.Intro = params.Intro
		c.About = params.About
		c.ProfilePicture = params.ProfilePicture

		return roundTrip(c)
	}

	return nil, repository.ErrNotFound
}

func (r *CustomerRepository) DeleteCustomer(_ context.Context, id string) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	objectID, err := repository.ParseID(id)
	if err != nil {
		return nil, err
	}

	for i, c := range r.customers {
		if c.ID == objectID {
			r.customers = slices.Delete(r.customers, i, i+1)
			return roundTrip(&c)
		}
	}

	return nil, repository.ErrNotFound
}

func (r *CustomerRepository) ListCustomers(_ context.Context, page repository.Page) ([]*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	customers := make([]*model.Customer, 0)
	for i := page.Skip(); i < int64(len(r.customers)) && int64(len(customers)) < page.Limit; i++ {
		c, err := roundTrip(&r.customers[i])
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, nil
}

func (r *CustomerRepository) find(match func(model.Customer) bool) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}

	for _, c := range r.customers {
		if match(c) {
			return roundTrip(&c)
		}
	}

	return nil, repository.ErrNotFound
}

func decode[T any](doc bson.D) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var item T
	if err := bson.Unmarshal(raw, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func roundTrip[T any](v *T) (*T, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

var (
	_ repository.CustomerRepository = (*CustomerRepository)(nil)
	_ repository.ResourceRepository[model.Skill, payload.SkillInput] = (*ResourceRepository[model.Skill, payload.SkillInput])(nil)
)
