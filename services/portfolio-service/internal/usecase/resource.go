package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
)

// ResourceUsecase defines the operations on one kind of customer-owned resource.
type ResourceUsecase[T any, I repository.Fields] interface {
	// List lists across every customer.
	List(ctx context.Context, page repository.Page) ([]T, error)
	ListByCustomer(ctx context.Context, customerID string, page repository.Page) ([]T, error)
	ListByEmail(ctx context.Context, email string, page repository.Page) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, customerID string, input I) (bson.ObjectID, error)
	Update(ctx context.Context, customerID, id string, input I) (*T, error)
	UpdateMany(ctx context.Context, customerID string, items []repository.Update[I]) ([]T, error)
	Delete(ctx context.Context, customerID, id string) (*T, error)
}

type validator interface {
	Validate() error
}

type resourceUsecase[T any, I repository.Fields] struct {
	repo         repository.ResourceRepository[T, I]
	customerRepo repository.CustomerRepository
}

func NewResourceUsecase[T any, I repository.Fields](
	repo repository.ResourceRepository[T, I],
	customerRepo repository.CustomerRepository,
) ResourceUsecase[T, I] {
	return &resourceUsecase[T, I]{repo: repo, customerRepo: customerRepo}
}

func (u *resourceUsecase[T, I]) List(ctx context.Context, page repository.Page) ([]T, error) {
	return u.ListByCustomer(ctx, "", page)
}

func (u *resourceUsecase[T, I]) ListByCustomer(
	ctx context.Context,
	customerID string,
	page repository.Page,
) ([]T, error) {
	page, err := checkPage(page)
	if err != nil {
		return nil, err
	}

	return u.repo.List(ctx, customerID, page)
}

func (u *resourceUsecase[T, I]) ListByEmail(ctx context.Context, email string, page repository.Page) ([]T, error) {
	page, err := checkPage(page)
	if err != nil {
		return nil, err
	}

	customer, err := u.customerRepo.GetCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}

		return nil, err
	}

	return u.repo.List(ctx, customer.ID.Hex(), page)
}

func (u *resourceUsecase[T, I]) Get(ctx context.Context, id string) (*T, error) {
	return u.repo.FindByID(ctx, id)
}

func (u *resourceUsecase[T, I]) Create(ctx context.Context, customerID string, input I) (bson.ObjectID, error) {
	if err := validate(input); err != nil {
		return bson.NilObjectID, err
	}

	return u.repo.Create(ctx, customerID, input)
}

func (u *resourceUsecase[T, I]) Update(ctx context.Context, customerID, id string, input I) (*T, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	return u.repo.UpdateByID(ctx, customerID, id, input)
}

func (u *resourceUsecase[T, I]) UpdateMany(
	ctx context.Context,
	customerID string,
	items []repository.Update[I],
) ([]T, error) {
	for i, it := range items {
		if err := validate(it.Input); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	return u.repo.UpdateMany(ctx, customerID, items)
}

func (u *resourceUsecase[T, I]) Delete(ctx context.Context, customerID, id string) (*T, error) {
	return u.repo.DeleteByID(ctx, customerID, id)
}

func validate(input any) error {
	v, ok := input.(validator)
	if !ok {
		return nil
	}

	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
