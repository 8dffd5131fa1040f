// Package oauth2 implements third-party sign-in. Providers only need to
// prove who the user is; access tokens are discarded once the account
// info has been fetched.
package oauth2

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
)

var ErrProviderNotFound = errors.New("provider not registered")

// ProviderConfig contains the configuration needed for OAuth2 authorization
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Scopes       []string
}

// TokenResponse contains tokens returned from the OAuth2 provider
type TokenResponse struct {
	AccessToken string
	TokenType   string
	Scope       string
}

// AccountInfo identifies the authenticated user at the provider.
type AccountInfo struct {
	AccountID string
	Name      string
	Email     string
}

// Provider defines the interface for OAuth2 sign-in providers
type Provider interface {
	// Name returns the provider identifier (e.g., "github")
	Name() string

	// Config returns the provider's OAuth2 configuration
	Config() ProviderConfig

	// BuildAuthURL constructs the authorization URL for the OAuth2 flow
	// with the given state parameter for CSRF protection.
	BuildAuthURL(redirectURL, state string) (string, error)

	// ExchangeCode exchanges an authorization code for tokens
	ExchangeCode(ctx context.Context, code, redirectURL string) (*TokenResponse, error)

	// GetAccountInfo retrieves the account identity for the authenticated user
	GetAccountInfo(ctx context.Context, accessToken string) (*AccountInfo, error)
}

// GenerateState creates a random state parameter for CSRF protection
func GenerateState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// Registry manages registered OAuth2 providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// Get retrieves a provider by name
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}
	return p, nil
}

// List returns all registered provider names
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
