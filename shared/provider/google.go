package provider

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrInvalidGoogleAudience = errors.New("invalid google audience")
	ErrUnverifiedGoogleEmail = errors.New("google email is not verified")
)

// GoogleIdentity is the verified identity carried by a Google ID token.
type GoogleIdentity struct {
	UserID string
	Email  string
}

// GoogleOAuthProvider verifies Google ID tokens issued for one OAuth client.
type GoogleOAuthProvider struct {
	clientID   string
	httpClient *http.Client
	endpoint   string
}

// GoogleOption configures a GoogleOAuthProvider.
type GoogleOption func(*GoogleOAuthProvider)

// WithEndpoint points the provider at a different tokeninfo endpoint, mainly for tests.
func WithEndpoint(endpoint string, httpClient *http.Client) GoogleOption {
	return func(p *GoogleOAuthProvider) {
		p.endpoint = endpoint
		p.httpClient = httpClient
	}
}

// NewGoogleOAuthProvider creates a provider accepting tokens whose audience is clientID.
func NewGoogleOAuthProvider(clientID string, opts ...GoogleOption) *GoogleOAuthProvider {
	p := &GoogleOAuthProvider{
		clientID:   clientID,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ValidateIDToken checks the token with Google and returns the identity it asserts.
func (p *GoogleOAuthProvider) ValidateIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	opts := []option.ClientOption{option.WithHTTPClient(p.httpClient)}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	oauth2Service, err := oauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	tokenInfo, err := oauth2Service.Tokeninfo().IdToken(idToken).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if tokenInfo.Audience != p.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	if !tokenInfo.VerifiedEmail {
		return nil, ErrUnverifiedGoogleEmail
	}

	return &GoogleIdentity{
		UserID: tokenInfo.UserId,
		Email:  tokenInfo.Email,
	}, nil
}
