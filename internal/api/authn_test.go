package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/auth"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/recommend"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/spotify"
)

func fakeSpotify(t *testing.T, apiHandler http.HandlerFunc) (*spotify.Client, *httptest.Server, *httptest.Server) {
	t.Helper()
	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "access-fresh", "refresh_token": "refresh-fresh", "expires_in": 3600,
			})
		case "refresh_token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "access-refreshed", "expires_in": 3600,
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	api := httptest.NewServer(apiHandler)
	t.Cleanup(accounts.Close)
	t.Cleanup(api.Close)

	client := spotify.NewClient(spotify.Config{
		ClientID:     "cid",
		ClientSecret: "csec",
		RedirectURL:  "http://localhost/auth/spotify/callback",
		AccountsURL:  accounts.URL,
		APIURL:       api.URL,
	}, nil)
	return client, accounts, api
}

func TestSpotifyLoginRedirectsWithState(t *testing.T) {
	client, _, _ := fakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {})
	f := newFixture(t, withSpotify(client))

	rec := f.do(t, http.MethodGet, "/auth/spotify", nil)
	require.Equal(t, http.StatusFound, rec.Code)

	location := rec.Header().Get("Location")
	assert.Contains(t, location, "/authorize?")
	assert.Contains(t, location, "state=")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "oauth_state", cookies[0].Name)
	assert.Contains(t, location, "state="+cookies[0].Value)
}

func TestSpotifyCallbackRejectsStateMismatch(t *testing.T) {
	client, _, _ := fakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {})
	f := newFixture(t, withSpotify(client))

	req := httptest.NewRequest(http.MethodGet, "/auth/spotify/callback?code=abc&state=wrong", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "right"})
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "oauth_state_mismatch")
}

func TestSpotifyCallbackRegistersUserAndIssuesToken(t *testing.T) {
	client, _, _ := fakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"id": "sp-77", "email": "new@example.com", "display_name": "New Listener",
		})
	})
	f := newFixture(t, withSpotify(client))

	req := httptest.NewRequest(http.MethodGet, "/auth/spotify/callback?code=abc&state=nonce", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "nonce"})
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	decodeBody(t, rec, &session)

	require.NotNil(t, session.User)
	assert.Equal(t, "new@example.com", session.User.Email)
	assert.Equal(t, "spotify:sp-77", session.User.AuthUID)

	claims, err := auth.Parse(session.Token, testAuthCfg)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)

	account, err := f.musicAccounts.GetByUser(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "access-fresh", account.AccessToken)
	assert.Equal(t, "refresh-fresh", account.RefreshToken)
}

func TestSpotifyCallbackMatchesExistingUserByAuthUID(t *testing.T) {
	client, _, _ := fakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id": "sp-known", "email": "known@example.com", "display_name": "Known",
		})
	})
	f := newFixture(t, withSpotify(client))
	existing := f.seedUser(t, "known@example.com", "spotify:sp-known")

	req := httptest.NewRequest(http.MethodGet, "/auth/spotify/callback?code=abc&state=nonce", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "nonce"})
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		User *domain.User `json:"user"`
	}
	decodeBody(t, rec, &session)
	assert.Equal(t, existing.ID, session.User.ID)
}

func TestMusicProxyWithoutLinkedAccount(t *testing.T) {
	client, _, _ := fakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {})
	f := newFixture(t, withSpotify(client))
	user := f.seedUser(t, "m@example.com", "uid-m")

	rec := f.doAs(t, user.ID, http.MethodGet, "/api/music/playlists", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "music_not_linked")
}

func TestMusicProxyRefreshesAndRetriesOnce(t *testing.T) {
	client, _, _ := fakeSpotify(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-refreshed" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"items": []string{"playlist-1"}})
	})
	f := newFixture(t, withSpotify(client))
	user := f.seedUser(t, "m@example.com", "uid-m")
	require.NoError(t, f.musicAccounts.Upsert(context.Background(), &domain.MusicAccount{
		UserID:       user.ID,
		AccessToken:  "access-stale",
		RefreshToken: "refresh-old",
	}))

	rec := f.doAs(t, user.ID, http.MethodGet, "/api/music/playlists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "playlist-1")

	// The refreshed pair replaced the stale one.
	account, err := f.musicAccounts.GetByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "access-refreshed", account.AccessToken)
	assert.Equal(t, "refresh-old", account.RefreshToken)
}

func TestGenerateTrainingRecommendationPersistsPlan(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"description": "Base building block",
			"difficulty":  3,
			"exercises":   []string{"intervals", "long run"},
		})
	}))
	defer model.Close()

	f := newFixture(t, withRecommend(recommend.NewClient(model.URL, "", nil)))
	user := f.seedUser(t, "r@example.com", "uid-r")

	rec := f.do(t, http.MethodPost, "/api/users/1/training-recommendations", map[string]any{})
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved domain.TrainingRecommendation
	decodeBody(t, rec, &saved)
	assert.Equal(t, user.ID, saved.UserID)
	assert.Equal(t, "Base building block", saved.Description)
	assert.Equal(t, 3, saved.Difficulty)

	list := f.do(t, http.MethodGet, "/api/users/1/training-recommendations", nil)
	require.Equal(t, http.StatusOK, list.Code)

	var recs []domain.TrainingRecommendation
	decodeBody(t, list, &recs)
	assert.Len(t, recs, 1)
}

func TestGenerateTrainingRecommendationUpstreamFailure(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer model.Close()

	f := newFixture(t, withRecommend(recommend.NewClient(model.URL, "", nil)))
	f.seedUser(t, "r@example.com", "uid-r")

	rec := f.do(t, http.MethodPost, "/api/users/1/training-recommendations", map[string]any{})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
