package oauth2

import (
	"context"
	"testing"
)

type fakeProvider struct {
	name string
}

func (f *fakeProvider) Name() string           { return f.name }
func (f *fakeProvider) Config() ProviderConfig { return ProviderConfig{} }
func (f *fakeProvider) BuildAuthURL(redirectURL, state string) (string, error) {
	return "https://example.com/authorize?state=" + state, nil
}
func (f *fakeProvider) ExchangeCode(ctx context.Context, code, redirectURL string) (*TokenResponse, error) {
	return &TokenResponse{AccessToken: "token"}, nil
}
func (f *fakeProvider) GetAccountInfo(ctx context.Context, accessToken string) (*AccountInfo, error) {
	return &AccountInfo{AccountID: "1"}, nil
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeProvider{name: "github"})

	p, err := registry.Get("github")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.Name() != "github" {
		t.Errorf("Name() = %q, want github", p.Name())
	}

	_, err = registry.Get("gitlab")
	if err == nil {
		t.Error("Get(unregistered) expected error")
	}

	names := registry.List()
	if len(names) != 1 || names[0] != "github" {
		t.Errorf("List() = %v, want [github]", names)
	}
}

func TestGenerateState(t *testing.T) {
	state1, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	if state1 == "" {
		t.Error("GenerateState() returned empty state")
	}

	state2, err := GenerateState()
	if err != nil {
		t.Fatalf("Second GenerateState() error = %v", err)
	}
	if state1 == state2 {
		t.Error("Generated states should be unique")
	}
}
