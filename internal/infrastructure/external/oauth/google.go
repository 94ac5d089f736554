package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	calendarapi "google.golang.org/api/calendar/v3"
)

// GoogleProvider handles the Google OAuth2 flow for Calendar access.
// Tokens are persisted to a file so the grant survives restarts.
type GoogleProvider struct {
	config    *oauth2.Config
	tokenFile string
}

// NewGoogleProvider creates a new Google OAuth provider with calendar scope
func NewGoogleProvider(clientID, clientSecret, redirectURL, tokenFile string) *GoogleProvider {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			calendarapi.CalendarScope,
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleProvider{
		config:    config,
		tokenFile: tokenFile,
	}
}

// GetAuthURL returns the OAuth authorization URL
func (g *GoogleProvider) GetAuthURL(state string) string {
	return g.config.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode exchanges the authorization code for tokens and persists them
func (g *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	if err := g.SaveToken(token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}
	return token, nil
}

// SaveToken writes the OAuth token to the configured token file
func (g *GoogleProvider) SaveToken(token *oauth2.Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return os.WriteFile(g.tokenFile, b, 0600)
}

// LoadToken reads a previously saved OAuth token from disk
func (g *GoogleProvider) LoadToken() (*oauth2.Token, error) {
	b, err := os.ReadFile(g.tokenFile)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(b, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// HasToken reports whether a saved token exists on disk
func (g *GoogleProvider) HasToken() bool {
	_, err := os.Stat(g.tokenFile)
	return err == nil
}

// TokenSource returns a self-refreshing token source backed by the saved
// token. Refreshed tokens are written back to disk.
func (g *GoogleProvider) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	token, err := g.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("no saved token: %w", err)
	}

	src := g.config.TokenSource(ctx, token)
	return &persistingTokenSource{provider: g, src: src, last: token}, nil
}

// persistingTokenSource saves tokens to disk whenever they are refreshed
type persistingTokenSource struct {
	provider *GoogleProvider
	src      oauth2.TokenSource
	last     *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	if token.AccessToken != p.last.AccessToken {
		if err := p.provider.SaveToken(token); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		p.last = token
	}
	return token, nil
}
