package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository/repotest"
	"github.com/vasapolrittideah/portfolio-api/shared/auth"
)

func TestIdentityUsecase_ResolveToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	jwtAuth, err := auth.NewJWTAuthenticator("secret", "portfolio", "portfolio", auth.WithClock(clock))
	require.NoError(t, err)
	other, err := auth.NewJWTAuthenticator("other-secret", "portfolio", "portfolio", auth.WithClock(clock))
	require.NoError(t, err)

	customers := repotest.NewCustomerRepository()
	created, err := customers.CreateCustomer(t.Context(), &model.Customer{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	identity := NewIdentityUsecase(customers, jwtAuth)
	subject := created.ID.Hex()

	valid, err := jwtAuth.IssueToken(subject)
	require.NoError(t, err)
	forged, err := other.IssueToken(subject)
	require.NoError(t, err)
	notAnID, err := jwtAuth.IssueToken("ada@example.com")
	require.NoError(t, err)
	unknown, err := jwtAuth.IssueToken(bson.NewObjectID().Hex())
	require.NoError(t, err)

	got, err := identity.ResolveToken(t.Context(), valid)
	require.NoError(t, err)
	assert.Equal(t, subject, got)

	for _, token := range []string{forged, notAnID, unknown, "", "garbage"} {
		_, err := identity.ResolveToken(t.Context(), token)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}

	now = now.Add(auth.DefaultTokenTTL + time.Second)
	_, err = identity.ResolveToken(t.Context(), valid)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIdentityUsecase_ResolveTokenAfterProfileDeleted(t *testing.T) {
	customers := repotest.NewCustomerRepository()
	created, err := customers.CreateCustomer(t.Context(), &model.Customer{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	jwtAuth, err := auth.NewJWTAuthenticator("secret", "portfolio", "portfolio")
	require.NoError(t, err)
	identity := NewIdentityUsecase(customers, jwtAuth)

	valid, err := jwtAuth.IssueToken(created.ID.Hex())
	require.NoError(t, err)

	_, err = identity.ResolveToken(t.Context(), valid)
	require.NoError(t, err)

	_, err = customers.DeleteCustomer(t.Context(), created.ID.Hex())
	require.NoError(t, err)
	_, err = identity.ResolveToken(t.Context(), valid)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestIdentityUsecase_ResolveAPIKey(t *testing.T) {
	customers := repotest.NewCustomerRepository()
	created, err := customers.CreateCustomer(t.Context(), &model.Customer{
		Name: "Ada", Email: "ada@example.com", APIKey: "key-ada",
	})
	require.NoError(t, err)

	jwtAuth, err := auth.NewJWTAuthenticator("secret", "portfolio", "portfolio")
	require.NoError(t, err)
	identity := NewIdentityUsecase(customers, jwtAuth)

	got, err := identity.ResolveAPIKey(t.Context(), "key-ada")
	require.NoError(t, err)
	assert.Equal(t, created.ID.Hex(), got)

	for _, key := range []string{"", "key-bob"} {
		_, err := identity.ResolveAPIKey(t.Context(), key)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	}
}
