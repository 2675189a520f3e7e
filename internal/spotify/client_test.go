package spotify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/spotify"
)

func newClient(accountsURL, apiURL string) *spotify.Client {
	return spotify.NewClient(spotify.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/auth/spotify/callback",
		AccountsURL:  accountsURL,
		APIURL:       apiURL,
	}, nil)
}

func TestAuthorizeURLCarriesStateAndRedirect(t *testing.T) {
	client := newClient("https://accounts.example", "https://api.example")

	url := client.AuthorizeURL("nonce-123")

	assert.Contains(t, url, "https://accounts.example/authorize?")
	assert.Contains(t, url, "state=nonce-123")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "response_type=code")
}

func TestExchangeSendsCodeWithBasicAuth(t *testing.T) {
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/token", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"expires_in":    3600,
		})
	}))
	defer accounts.Close()

	client := newClient(accounts.URL, "http://unused")
	pair, err := client.Exchange(context.Background(), "the-code")
	require.NoError(t, err)

	assert.Equal(t, "access-1", pair.AccessToken)
	assert.Equal(t, "refresh-1", pair.RefreshToken)
}

func TestExchangeRejectedCodeMapsToUnauthorized(t *testing.T) {
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer accounts.Close()

	client := newClient(accounts.URL, "http://unused")
	_, err := client.Exchange(context.Background(), "bad-code")
	assert.ErrorIs(t, err, spotify.ErrUnauthorized)
}

func TestRefreshKeepsOldRefreshTokenWhenOmitted(t *testing.T) {
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		json.NewEncoder(w).Encode(map[string]any{"access_token": "access-2", "expires_in": 3600})
	}))
	defer accounts.Close()

	client := newClient(accounts.URL, "http://unused")
	pair, err := client.Refresh(context.Background(), "refresh-old")
	require.NoError(t, err)

	assert.Equal(t, "access-2", pair.AccessToken)
	assert.Equal(t, "refresh-old", pair.RefreshToken)
}

func TestProfileParsesResponse(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/me", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{
			"id": "sp-1", "email": "listener@example.com", "display_name": "Road Runner",
		})
	}))
	defer api.Close()

	client := newClient("http://unused", api.URL)
	profile, err := client.Profile(context.Background(), "access-1")
	require.NoError(t, err)

	assert.Equal(t, "sp-1", profile.ID)
	assert.Equal(t, "listener@example.com", profile.Email)
	assert.Equal(t, "Road Runner", profile.DisplayName)
}

func TestAPIMapsStatuses(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/me/playlists":
			w.WriteHeader(http.StatusUnauthorized)
		case "/v1/me/player":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer api.Close()

	client := newClient("http://unused", api.URL)

	_, err := client.Playlists(context.Background(), "stale")
	assert.ErrorIs(t, err, spotify.ErrUnauthorized)

	payload, err := client.Player(context.Background(), "ok")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(payload))

	_, err = client.Profile(context.Background(), "ok")
	assert.ErrorIs(t, err, spotify.ErrUpstream)
}
