package token

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestFileStore(t *testing.T, oauthCfg *oauth2.Config) *FileStore {
	t.Helper()
	if oauthCfg == nil {
		oauthCfg = &oauth2.Config{ClientID: "client", ClientSecret: "secret"}
	}
	return &FileStore{
		path:  filepath.Join(t.TempDir(), "token.json"),
		oauth: oauthCfg,
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := newTestFileStore(t, nil)
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t, nil)

	creds := &Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
		Scopes:       []string{"https://www.googleapis.com/auth/calendar"},
	}
	require.NoError(t, store.Save(context.Background(), creds))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(creds, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store := newTestFileStore(t, nil)

	require.NoError(t, store.Save(context.Background(), &Credentials{AccessToken: "first"}))
	require.NoError(t, store.Save(context.Background(), &Credentials{AccessToken: "second"}))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.AccessToken)

	// Only the token file itself may remain; no temp leftovers.
	entries, err := os.ReadDir(filepath.Dir(store.path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.path), entries[0].Name())
}

func TestRefreshIfNeededNotExpired(t *testing.T) {
	store := newTestFileStore(t, nil)

	creds := &Credentials{
		AccessToken:  "still-good",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
	got, err := store.RefreshIfNeeded(context.Background(), creds)
	require.NoError(t, err)
	assert.Same(t, creds, got, "a valid record is returned unchanged")
}

func TestRefreshIfNeededNoRefreshToken(t *testing.T) {
	store := newTestFileStore(t, nil)

	creds := &Credentials{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Hour),
	}
	_, err := store.RefreshIfNeeded(context.Background(), creds)
	require.ErrorIs(t, err, ErrAuthExpired)
}

func TestRefreshIfNeededExchangesAndPersists(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.FormValue("grant_type"))
		assert.Equal(t, "old-refresh", r.FormValue("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"fresh-access","token_type":"Bearer","expires_in":3600}`)
	}))
	defer ts.Close()

	store := newTestFileStore(t, &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: ts.URL},
	})

	creds := &Credentials{
		AccessToken:  "stale",
		RefreshToken: "old-refresh",
		Expiry:       time.Now().Add(-time.Hour),
		Scopes:       []string{"https://www.googleapis.com/auth/calendar"},
	}

	refreshed, err := store.RefreshIfNeeded(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", refreshed.AccessToken)
	assert.Equal(t, "old-refresh", refreshed.RefreshToken, "refresh token is kept when the grant omits it")
	assert.Equal(t, creds.Scopes, refreshed.Scopes)
	assert.True(t, refreshed.Expiry.After(time.Now()))

	// The refreshed record must be persisted.
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", loaded.AccessToken)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNoCredentials)

	creds := &Credentials{AccessToken: "a", Expiry: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, creds))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.AccessToken)

	got, err := store.RefreshIfNeeded(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, loaded, got)
}

func TestCredentialsExpired(t *testing.T) {
	assert.False(t, (&Credentials{}).Expired(), "zero expiry never expires")
	assert.False(t, (&Credentials{Expiry: time.Now().Add(time.Minute)}).Expired())
	assert.True(t, (&Credentials{Expiry: time.Now().Add(-time.Minute)}).Expired())
}
