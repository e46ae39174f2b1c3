package token

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brizzai/calbook/internal/auth"
	"github.com/brizzai/calbook/internal/config"
	"github.com/brizzai/calbook/internal/logger"
	"golang.org/x/oauth2"
)

// FileStore keeps the credential record in a single JSON file. Writes go
// through a temp file and rename so readers never observe a partial record.
type FileStore struct {
	path  string
	oauth *oauth2.Config
}

// NewFileStore creates a FileStore at the configured token file path.
func NewFileStore(cfg *config.Config, flow *auth.Flow) *FileStore {
	return &FileStore{
		path:  cfg.OAuth.TokenFile,
		oauth: flow.OAuth2Config(),
	}
}

func (s *FileStore) Load(_ context.Context) (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &creds, nil
}

func (s *FileStore) Save(_ context.Context, creds *Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	defer func() {
		// No-op once the rename has happened.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close token file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

func (s *FileStore) RefreshIfNeeded(ctx context.Context, creds *Credentials) (*Credentials, error) {
	if !creds.Expired() {
		return creds, nil
	}
	if creds.RefreshToken == "" {
		return nil, ErrAuthExpired
	}

	newTok, err := s.oauth.TokenSource(ctx, creds.Token()).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	refreshed := FromToken(newTok, creds.Scopes)
	// The refresh grant may not echo the refresh token back.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = creds.RefreshToken
	}

	if err := s.Save(ctx, refreshed); err != nil {
		return nil, err
	}
	logger.Info("refreshed OAuth token")
	return refreshed, nil
}
