package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/satya0dev/getitdone/internal/oauth2"
)

const (
	githubAuthURL  = "https://github.com/login/oauth/authorize"
	githubTokenURL = "https://github.com/login/oauth/access_token"
	githubAPIURL   = "https://api.github.com"
)

// GitHubProvider implements OAuth2 sign-in with GitHub
type GitHubProvider struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// NewGitHubProvider creates a new GitHub OAuth2 provider
func NewGitHubProvider(clientID, clientSecret string) *GitHubProvider {
	return &GitHubProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *GitHubProvider) Name() string {
	return "github"
}

func (p *GitHubProvider) Config() oauth2.ProviderConfig {
	return oauth2.ProviderConfig{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		AuthURL:      githubAuthURL,
		TokenURL:     githubTokenURL,
		Scopes:       []string{"read:user", "user:email"},
	}
}

func (p *GitHubProvider) BuildAuthURL(redirectURL, state string) (string, error) {
	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("scope", strings.Join(p.Config().Scopes, " "))
	params.Set("state", state)

	if redirectURL != "" {
		params.Set("redirect_uri", redirectURL)
	}

	return githubAuthURL + "?" + params.Encode(), nil
}

func (p *GitHubProvider) ExchangeCode(ctx context.Context, code, redirectURL string) (*oauth2.TokenResponse, error) {
	data := url.Values{}
	data.Set("client_id", p.clientID)
	data.Set("client_secret", p.clientSecret)
	data.Set("code", code)

	if redirectURL != "" {
		data.Set("redirect_uri", redirectURL)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", githubTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken      string `json:"access_token"`
		TokenType        string `json:"token_type"`
		Scope            string `json:"scope"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}

	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	// GitHub reports errors with a 200 status
	if tokenResp.Error != "" {
		return nil, fmt.Errorf("token exchange failed: %s - %s", tokenResp.Error, tokenResp.ErrorDescription)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("no access token in response")
	}

	return &oauth2.TokenResponse{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		Scope:       tokenResp.Scope,
	}, nil
}

func (p *GitHubProvider) GetAccountInfo(ctx context.Context, accessToken string) (*oauth2.AccountInfo, error) {
	var userResp struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := p.getJSON(ctx, accessToken, "/user", &userResp); err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}

	name := userResp.Name
	if name == "" {
		name = userResp.Login
	}

	email := userResp.Email
	if email == "" {
		// The profile email is often hidden; ask the emails endpoint
		email = p.primaryEmail(ctx, accessToken)
	}

	return &oauth2.AccountInfo{
		AccountID: strconv.FormatInt(userResp.ID, 10),
		Name:      name,
		Email:     email,
	}, nil
}

// primaryEmail fetches the user's primary verified email. Returns an empty
// string when none is available; sign-in still works without one.
func (p *GitHubProvider) primaryEmail(ctx context.Context, accessToken string) string {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := p.getJSON(ctx, accessToken, "/user/emails", &emails); err != nil {
		return ""
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}

func (p *GitHubProvider) getJSON(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", githubAPIURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
