package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/model"
	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
	"github.com/vasapolrittideah/portfolio-api/shared/mailer"
	"github.com/vasapolrittideah/portfolio-api/shared/provider"
	"github.com/vasapolrittideah/portfolio-api/shared/security"
)

// AuthUsecase defines the interface for registration and login.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*RegisterResult, error)
	Login(ctx context.Context, params LoginParams) (string, error)
	LoginWithGoogle(ctx context.Context, idToken string) (string, error)
}

// RegisterParams defines the parameters for customer registration.
type RegisterParams struct {
	Name           string
	Email          string
	Password       string
	Phone          *string
	WaLink         *string
	Intro          *string
	About          *string
	ProfilePicture *string
}

// LoginParams defines the parameters for customer login.
type LoginParams struct {
	Email    string
	Password string
}

type RegisterResult struct {
	CustomerID bson.ObjectID
	Token      string
}

type TokenIssuer interface {
	IssueToken(subject string) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// Notifier delivers e-mail. A nil Notifier disables the welcome mail.
type Notifier interface {
	Send(email mailer.Email) error
}

// GoogleVerifier checks Google ID tokens. A nil GoogleVerifier disables Google login.
type GoogleVerifier interface {
	ValidateIDToken(ctx context.Context, idToken string) (*provider.GoogleIdentity, error)
}

type authUsecase struct {
	customerRepo repository.CustomerRepository
	tokens       TokenIssuer
	hasher       PasswordHasher
	notifier     Notifier
	google       GoogleVerifier
	logger       *zerolog.Logger
}

func NewAuthUsecase(
	customerRepo repository.CustomerRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	notifier Notifier,
	google GoogleVerifier,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		customerRepo: customerRepo,
		tokens:       tokens,
		hasher:       hasher,
		notifier:     notifier,
		google:       google,
		logger:       logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	_, err := u.customerRepo.GetCustomerByEmail(ctx, params.Email)
	switch {
	case err == nil:
		return nil, ErrCustomerAlreadyExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	apiKey, err := security.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	customer, err := u.customerRepo.CreateCustomer(ctx, &model.Customer{
		APIKey:         apiKey,
		Name:           params.Name,
		Email:          params.Email,
		Phone:          params.Phone,
		WaLink:         params.WaLink,
		Intro:          params.Intro,
		About:          params.About,
		ProfilePicture: params.ProfilePicture,
		PasswordHash:   passwordHash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCustomerAlreadyExists
		}

		return nil, err
	}

	u.sendWelcome(customer)

	token, err := u.tokens.IssueToken(customer.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &RegisterResult{CustomerID: customer.ID, Token: token}, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	customer, err := u.customerRepo.GetCustomerByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	ok, err := u.hasher.Verify(params.Password, customer.PasswordHash)
	if err != nil {
		u.logger.Warn().Err(err).Str("customer_id", customer.ID.Hex()).Msg("stored password hash is unusable")
		return "", ErrInvalidCredentials
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return u.tokens.IssueToken(customer.ID.Hex())
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, idToken string) (string, error) {
	if u.google == nil {
		return "", ErrGoogleLoginDisabled
	}

	identity, err := u.google.ValidateIDToken(ctx, idToken)
	if err != nil {
		u.logger.Debug().Err(err).Msg("google id token rejected")
		return "", ErrInvalidCredentials
	}

	customer, err := u.customerRepo.GetCustomerByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	return u.tokens.IssueToken(customer.ID.Hex())
}

func (u *authUsecase) sendWelcome(customer *model.Customer) {
	if u.notifier == nil {
		return
	}

	err := u.notifier.Send(mailer.Email{
		To:       []string{customer.Email},
		Subject:  "Welcome to your portfolio",
		Body:     "Your portfolio account is ready. Your API key is available from your profile.",
		HTMLBody: fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your portfolio account is ready. Your API key is available from your profile.</p>
	`, html.EscapeString(customer.Name)),
	})
	if err != nil {
		u.logger.Warn().Err(err).Str("customer_id", customer.ID.Hex()).Msg("failed to send welcome email")
	}
}
