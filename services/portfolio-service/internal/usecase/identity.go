package usecase

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
)

// IdentityUsecase turns a presented credential into the id of the customer it belongs to.
// Every failure wraps ErrUnauthenticated.
type IdentityUsecase interface {
	ResolveToken(ctx context.Context, token string) (string, error)
	ResolveAPIKey(ctx context.Context, apiKey string) (string, error)
}

type TokenVerifier interface {
	VerifyToken(token string) (*jwt.RegisteredClaims, error)
}

type identityUsecase struct {
	customerRepo repository.CustomerRepository
	tokens       TokenVerifier
}

func NewIdentityUsecase(customerRepo repository.CustomerRepository, tokens TokenVerifier) IdentityUsecase {
	return &identityUsecase{customerRepo: customerRepo, tokens: tokens}
}

// ResolveToken accepts a token only while its subject is still a stored customer,
// so deleting a profile revokes the tokens issued for it.
func (u *identityUsecase) ResolveToken(ctx context.Context, token string) (string, error) {
	claims, err := u.tokens.VerifyToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	customer, err := u.customerRepo.GetCustomer(ctx, claims.Subject)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	return customer.ID.Hex(), nil
}

func (u *identityUsecase) ResolveAPIKey(ctx context.Context, apiKey string) (string, error) {
	customer, err := u.customerRepo.GetCustomerByAPIKey(ctx, apiKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	return customer.ID.Hex(), nil
}
