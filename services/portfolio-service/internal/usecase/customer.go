package usecase

import (
	"context"
	"errors"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
)

// CustomerUsecase defines the profile operations. Only GetProfile, UpdateProfile
// and DeleteProfile return the owner view with the API key.
type CustomerUsecase interface {
	GetProfile(ctx context.Context, id string) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.PublicCustomer, error)
	GetPublicProfileByEmail(ctx context.Context, email string) (*model.PublicCustomer, error)
	ListCustomers(ctx context.Context, page repository.Page) ([]*model.PublicCustomer, error)
	UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*model.Customer, error)
	DeleteProfile(ctx context.Context, id string) (*model.Customer, error)
}

// UpdateProfileParams replaces every profile field. Nil optionals are cleared.
type UpdateProfileParams struct {
	Name           string
	Email          string
	Phone          *string
	WaLink         *string
	Intro          *string
	About          *string
	ProfilePicture *string
}

type customerUsecase struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerUsecase(customerRepo repository.CustomerRepository) CustomerUsecase {
	return &customerUsecase{customerRepo: customerRepo}
}

func (u *customerUsecase) GetProfile(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := u.customerRepo.GetCustomer(ctx, id)
	if err != nil {
		return nil, customerError(err)
	}

	return customer, nil
}

func (u *customerUsecase) GetCustomer(ctx context.Context, id string) (*model.PublicCustomer, error) {
	customer, err := u.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	return customer.Public(), nil
}

func (u *customerUsecase) GetPublicProfileByEmail(ctx context.Context, email string) (*model.PublicCustomer, error) {
	customer, err := u.customerRepo.GetCustomerByEmail(ctx, email)
	if err != nil {
		return nil, customerError(err)
	}

	return customer.Public(), nil
}

func (u *customerUsecase) ListCustomers(ctx context.Context, page repository.Page) ([]*model.PublicCustomer, error) {
	page, err := checkPage(page)
	if err != nil {
		return nil, err
	}

	customers, err := u.customerRepo.ListCustomers(ctx, page)
	if err != nil {
		return nil, err
	}

	public := make([]*model.PublicCustomer, 0, len(customers))
	for _, c := range customers {
		public = append(public, c.Public())
	}

	return public, nil
}

func (u *customerUsecase) UpdateProfile(
	ctx context.Context,
	id string,
	params UpdateProfileParams,
) (*model.Customer, error) {
	existing, err := u.customerRepo.GetCustomerByEmail(ctx, params.Email)
	switch {
	case err == nil && existing.ID.Hex() != id:
		return nil, ErrCustomerAlreadyExists
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	customer, err := u.customerRepo.UpdateCustomer(ctx, id, repository.UpdateCustomerParams{
		Name:           params.Name,
		Email:          params.Email,
		Phone:          params.Phone,
		WaLink:         params.WaLink,
		Intro:          params.Intro,
		About:          params.About,
		ProfilePicture: params.ProfilePicture,
	})
	if err != nil {
		return nil, customerError(err)
	}

	return customer, nil
}

func (u *customerUsecase) DeleteProfile(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := u.customerRepo.DeleteCustomer(ctx, id)
	if err != nil {
		return nil, customerError(err)
	}

	return customer, nil
}

func customerError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrCustomerNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrCustomerAlreadyExists
	default:
		return err
	}
}
