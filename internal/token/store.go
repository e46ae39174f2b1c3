// Package token persists the single OAuth credential record this service
// holds and refreshes it when it has gone stale.
package token

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
)

var (
	// ErrNoCredentials is returned by Load when nothing has been persisted yet.
	// The caller should start the authorization flow.
	ErrNoCredentials = errors.New("no credentials stored")

	// ErrAuthExpired is returned when the record has expired and no refresh
	// token is available to renew it.
	ErrAuthExpired = errors.New("credentials expired and no refresh token available")
)

// Credentials is the persisted OAuth2 record. At most one valid record exists
// at a time; it is overwritten on every refresh and never deleted.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// FromToken converts an oauth2 token into a Credentials record.
func FromToken(tok *oauth2.Token, scopes []string) *Credentials {
	return &Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       scopes,
	}
}

// Token converts the record back into an oauth2 token.
func (c *Credentials) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.Expiry,
	}
}

// Expired reports whether the record's expiry has passed. A zero expiry means
// the token never expires.
func (c *Credentials) Expired() bool {
	return !c.Expiry.IsZero() && c.Expiry.Before(time.Now())
}

// Store is the credential persistence abstraction. Implementations must make
// Save atomic with respect to concurrent readers.
type Store interface {
	// Load returns the current record, or ErrNoCredentials if none exists.
	Load(ctx context.Context) (*Credentials, error)

	// Save overwrites the persisted record.
	Save(ctx context.Context, creds *Credentials) error

	// RefreshIfNeeded refreshes the record against the provider when its
	// expiry has passed, persists the result and returns it. A record that is
	// still valid is returned unchanged. Returns ErrAuthExpired when the
	// record is expired and holds no refresh token.
	RefreshIfNeeded(ctx context.Context, creds *Credentials) (*Credentials, error)
}
