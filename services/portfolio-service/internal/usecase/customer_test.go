package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository/repotest"
)

func seedCustomers(t *testing.T) (*repotest.CustomerRepository, *model.Customer, *model.Customer) {
	t.Helper()

	repo := repotest.NewCustomerRepository()
	ada, err := repo.CreateCustomer(t.Context(), &model.Customer{
		Name: "Ada", Email: "ada@example.com", APIKey: "key-ada", PasswordHash: "h1",
	})
	require.NoError(t, err)
	bob, err := repo.CreateCustomer(t.Context(), &model.Customer{
		Name: "Bob", Email: "bob@example.com", APIKey: "key-bob", PasswordHash: "h2",
	})
	require.NoError(t, err)

	return repo, ada, bob
}

func TestCustomerUsecase_Views(t *testing.T) {
	repo, ada, _ := seedCustomers(t)
	customers := NewCustomerUsecase(repo)

	profile, err := customers.GetProfile(t.Context(), ada.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "key-ada", profile.APIKey)

	public, err := customers.GetCustomer(t.Context(), ada.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ada", public.Name)

	byEmail, err := customers.GetPublicProfileByEmail(t.Context(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, byEmail.ID)

	_, err = customers.GetPublicProfileByEmail(t.Context(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = customers.GetCustomer(t.Context(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	list, err := customers.ListCustomers(t.Context(), repository.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = customers.ListCustomers(t.Context(), repository.Page{Number: 0, Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidPagination)
}

func TestCustomerUsecase_UpdateProfile(t *testing.T) {
	repo, ada, _ := seedCustomers(t)
	customers := NewCustomerUsecase(repo)

	intro := "Hello"
	updated, err := customers.UpdateProfile(t.Context(), ada.ID.Hex(), UpdateProfileParams{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Intro: &intro,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "key-ada", updated.APIKey)
	require.NotNil(t, updated.Intro)

	_, err = customers.UpdateProfile(t.Context(), ada.ID.Hex(), UpdateProfileParams{
		Name:  "Ada",
		Email: "bob@example.com",
	})
	assert.ErrorIs(t, err, ErrCustomerAlreadyExists)

	_, err = customers.UpdateProfile(t.Context(), bson.NewObjectID().Hex(), UpdateProfileParams{
		Name:  "Ghost",
		Email: "ghost@example.com",
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerUsecase_DeleteProfile(t *testing.T) {
	repo, ada, _ := seedCustomers(t)
	customers := NewCustomerUsecase(repo)

	deleted, err := customers.DeleteProfile(t.Context(), ada.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", deleted.Email)

	_, err = customers.GetProfile(t.Context(), ada.ID.Hex())
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = customers.DeleteProfile(t.Context(), ada.ID.Hex())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
