package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository/repotest"
	"github.com/vasapolrittideah/portfolio-api/shared/auth"
	"github.com/vasapolrittideah/portfolio-api/shared/mailer"
	"github.com/vasapolrittideah/portfolio-api/shared/provider"
	"github.com/vasapolrittideah/portfolio-api/shared/security"
)

type recordingNotifier struct {
	sent []mailer.Email
	err  error
}

func (n *recordingNotifier) Send(email mailer.Email) error {
	n.sent = append(n.sent, email)
	return n.err
}

type stubGoogle struct {
	identity *provider.GoogleIdentity
	err      error
}

func (g stubGoogle) ValidateIDToken(context.Context, string) (*provider.GoogleIdentity, error) {
	return g.identity, g.err
}

type authFixture struct {
	usecase   AuthUsecase
	customers *repotest.CustomerRepository
	jwt       *auth.JWTAuthenticator
	notifier  *recordingNotifier
}

func newAuthFixture(t *testing.T, google GoogleVerifier) authFixture {
	t.Helper()

	jwtAuth, err := auth.NewJWTAuthenticator("test-secret", "portfolio", "portfolio")
	require.NoError(t, err)

	hasher, err := security.NewHasher(security.AlgorithmBcrypt)
	require.NoError(t, err)

	logger := zerolog.Nop()
	customers := repotest.NewCustomerRepository()
	notifier := &recordingNotifier{}

	return authFixture{
		usecase:   NewAuthUsecase(customers, jwtAuth, hasher, notifier, google, &logger),
		customers: customers,
		jwt:       jwtAuth,
		notifier:  notifier,
	}
}

func TestAuthUsecase_Register(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := t.Context()

	result, err := f.usecase.Register(ctx, RegisterParams{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := f.jwt.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.CustomerID.Hex(), claims.Subject)

	stored, err := f.customers.GetCustomer(ctx, result.CustomerID.Hex())
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.Len(t, stored.APIKey, 2*security.APIKeyBytes)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, []string{"ada@example.com"}, f.notifier.sent[0].To)

	_, err = f.usecase.Register(ctx, RegisterParams{Name: "Other", Email: "ada@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrCustomerAlreadyExists)
}

func TestAuthUsecase_RegisterSurvivesMailFailure(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.notifier.err = errors.New("smtp down")

	_, err := f.usecase.Register(t.Context(), RegisterParams{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
}

func TestAuthUsecase_Login(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := t.Context()

	registered, err := f.usecase.Register(ctx, RegisterParams{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = f.customers.CreateCustomer(ctx, &model.Customer{
		Name:         "Broken",
		Email:        "broken@example.com",
		APIKey:       "broken-key",
		PasswordHash: "not-a-hash",
	})
	require.NoError(t, err)

	token, err := f.usecase.Login(ctx, LoginParams{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := f.jwt.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.CustomerID.Hex(), claims.Subject)

	tests := []struct {
		name   string
		params LoginParams
	}{
		{"wrong password", LoginParams{Email: "ada@example.com", Password: "battery staple"}},
		{"unknown email", LoginParams{Email: "nobody@example.com", Password: "correct horse"}},
		{"malformed stored hash", LoginParams{Email: "broken@example.com", Password: "anything"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.Login(ctx, tt.params)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthUsecase_LoginWithGoogle(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		f := newAuthFixture(t, nil)

		_, err := f.usecase.LoginWithGoogle(t.Context(), "id-token")
		assert.ErrorIs(t, err, ErrGoogleLoginDisabled)
	})

	t.Run("existing customer", func(t *testing.T) {
		f := newAuthFixture(t, stubGoogle{identity: &provider.GoogleIdentity{UserID: "1", Email: "ada@example.com"}})
		registered, err := f.usecase.Register(t.Context(), RegisterParams{
			Name: "Ada", Email: "ada@example.com", Password: "correct horse",
		})
		require.NoError(t, err)

		token, err := f.usecase.LoginWithGoogle(t.Context(), "id-token")
		require.NoError(t, err)

		claims, err := f.jwt.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, registered.CustomerID.Hex(), claims.Subject)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newAuthFixture(t, stubGoogle{identity: &provider.GoogleIdentity{UserID: "1", Email: "ghost@example.com"}})

		_, err := f.usecase.LoginWithGoogle(t.Context(), "id-token")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejected token", func(t *testing.T) {
		f := newAuthFixture(t, stubGoogle{err: provider.ErrInvalidGoogleAudience})

		_, err := f.usecase.LoginWithGoogle(t.Context(), "id-token")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
