// Package auth drives the OAuth2 authorization-code exchange against Google.
package auth

import (
	"context"

	"github.com/brizzai/calbook/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Flow wraps the oauth2 client configuration for the authorization-code dance.
type Flow struct {
	config *oauth2.Config
	scopes []string
}

// NewFlow creates a Flow from the service configuration.
func NewFlow(cfg *config.Config) *Flow {
	return &Flow{
		config: &oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.OAuth.RedirectURL,
			Scopes:       cfg.OAuth.Scopes,
		},
		scopes: cfg.OAuth.Scopes,
	}
}

// AuthCodeURL returns the Google consent page URL. Offline access is requested
// so a refresh token is issued; consent is forced so repeat authorizations
// also return one.
func (f *Flow) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token.
func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return f.config.Exchange(ctx, code)
}

// OAuth2Config exposes the underlying config, used by the token store to
// build refresh token sources.
func (f *Flow) OAuth2Config() *oauth2.Config {
	return f.config
}

// Scopes returns the scopes requested during authorization.
func (f *Flow) Scopes() []string {
	return f.scopes
}
