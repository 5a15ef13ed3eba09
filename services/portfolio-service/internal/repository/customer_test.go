package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
)

func TestCustomerRepository_CreateAndLookup(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := t.Context()
			repo := b.customers(t)

			created, err := repo.CreateCustomer(ctx, &model.Customer{
				Name:         "Ada",
				Email:        "ada@example.com",
				APIKey:       "key-ada",
				PasswordHash: "hash",
			})
			require.NoError(t, err)
			assert.False(t, created.ID.IsZero())
			assert.False(t, created.CreatedAt.IsZero())

			byID, err := repo.GetCustomer(ctx, created.ID.Hex())
			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", byID.Email)
			assert.Equal(t, "hash", byID.PasswordHash)

			byEmail, err := repo.GetCustomerByEmail(ctx, "ada@example.com")
			require.NoError(t, err)
			assert.Equal(t, created.ID, byEmail.ID)

			byKey, err := repo.GetCustomerByAPIKey(ctx, "key-ada")
			require.NoError(t, err)
			assert.Equal(t, created.ID, byKey.ID)

			_, err = repo.GetCustomerByAPIKey(ctx, "")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			_, err = repo.GetCustomerByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			_, err = repo.GetCustomer(ctx, "bad")
			assert.ErrorIs(t, err, repository.ErrInvalidID)
		})
	}
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := t.Context()
			repo := b.customers(t)

			_, err := repo.CreateCustomer(ctx, &model.Customer{Name: "A", Email: "a@example.com", APIKey: "k1"})
			require.NoError(t, err)

			_, err = repo.CreateCustomer(ctx, &model.Customer{Name: "B", Email: "a@example.com", APIKey: "k2"})
			assert.ErrorIs(t, err, repository.ErrDuplicateKey)
		})
	}
}

func TestCustomerRepository_UpdateReplacesProfile(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := t.Context()
			repo := b.customers(t)

			phone := "+66 81 234 5678"
			created, err := repo.CreateCustomer(ctx, &model.Customer{
				Name:   "Ada",
				Email:  "ada@example.com",
				APIKey: "key-ada",
				Phone:  &phone,
			})
			require.NoError(t, err)

			about := "Engineer"
			updated, err := repo.UpdateCustomer(ctx, created.ID.Hex(), repository.UpdateCustomerParams{
				Name:  "Ada L.",
				Email: "ada@example.com",
				About: &about,
			})
			require.NoError(t, err)
			assert.Equal(t, "Ada L.", updated.Name)
			assert.Nil(t, updated.Phone)
			require.NotNil(t, updated.About)
			assert.Equal(t, "Engineer", *updated.About)
			assert.Equal(t, "key-ada", updated.APIKey)
			assert.Equal(t, created.CreatedAt, updated.CreatedAt)

			_, err = repo.UpdateCustomer(ctx, bson.NewObjectID().Hex(), repository.UpdateCustomerParams{
				Name: "Ghost", Email: "ghost@example.com",
			})
			assert.ErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestCustomerRepository_DeleteAndList(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := t.Context()
			repo := b.customers(t)

			a, err := repo.CreateCustomer(ctx, &model.Customer{Name: "A", Email: "a@example.com", APIKey: "ka"})
			require.NoError(t, err)
			_, err = repo.CreateCustomer(ctx, &model.Customer{Name: "B", Email: "b@example.com", APIKey: "kb"})
			require.NoError(t, err)

			all, err := repo.ListCustomers(ctx, repository.Page{Number: 1, Limit: 10})
			require.NoError(t, err)
			assert.Len(t, all, 2)

			deleted, err := repo.DeleteCustomer(ctx, a.ID.Hex())
			require.NoError(t, err)
			assert.Equal(t, "a@example.com", deleted.Email)

			_, err = repo.GetCustomer(ctx, a.ID.Hex())
			assert.ErrorIs(t, err, repository.ErrNotFound)

			rest, err := repo.ListCustomers(ctx, repository.Page{Number: 1, Limit: 10})
			require.NoError(t, err)
			require.Len(t, rest, 1)
			assert.Equal(t, "b@example.com", rest[0].Email)
		})
	}
}
