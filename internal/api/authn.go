package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/auth"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/spotify"
)

const stateCookie = "oauth_state"

// spotifyLogin starts the authorization-code flow. The state nonce is
// persisted in a short-lived cookie and checked on callback.
func (a *API) spotifyLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/spotify",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.d.Spotify.AuthorizeURL(state), http.StatusFound)
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (a *API) spotifyCallback(w http.ResponseWriter, r *http.Request) {
	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		writeError(w, http.StatusUnauthorized, "oauth_denied", "authorization was denied")
		return
	}
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if code == "" || state == "" || err != nil || cookie.Value != state {
		writeError(w, http.StatusBadRequest, "oauth_state_mismatch", "missing or mismatched oauth state")
		return
	}

	pair, err := a.d.Spotify.Exchange(r.Context(), code)
	if err != nil {
		a.fail(w, err)
		return
	}
	profile, err := a.d.Spotify.Profile(r.Context(), pair.AccessToken)
	if err != nil {
		a.fail(w, err)
		return
	}

	user, err := a.findOrCreateUser(r.Context(), profile)
	if err != nil {
		a.fail(w, err)
		return
	}

	account := &domain.MusicAccount{
		UserID:       user.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
	if err := a.d.MusicAccounts.Upsert(r.Context(), account); err != nil {
		a.fail(w, err)
		return
	}

	token, err := auth.Issue(user.ID, user.Email, a.d.AuthCfg)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// findOrCreateUser resolves the account for an external profile, matching
// first on the provider uid, then on email, and registering a fresh user
// when neither exists.
func (a *API) findOrCreateUser(ctx context.Context, profile *spotify.Profile) (*domain.User, error) {
	authUID := "spotify:" + profile.ID

	user, err := a.d.Users.GetByAuthUID(ctx, authUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if profile.Email != "" {
		user, err = a.d.Users.GetByEmail(ctx, profile.Email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	first, last := splitName(profile.DisplayName)
	user = &domain.User{
		FirstName: first,
		LastName:  last,
		Email:     profile.Email,
		AuthUID:   authUID,
		Status:    domain.UserStatusActive,
	}
	if err := a.d.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func splitName(display string) (string, string) {
	for i := len(display) - 1; i > 0; i-- {
		if display[i] == ' ' {
			return display[:i], display[i+1:]
		}
	}
	if display == "" {
		return "Listener", ""
	}
	return display, ""
}

// musicPlaylists proxies the linked account's playlists.
func (a *API) musicPlaylists(w http.ResponseWriter, r *http.Request) {
	a.musicProxy(w, r, a.d.Spotify.Playlists)
}

// musicPlayer proxies the linked account's playback state.
func (a *API) musicPlayer(w http.ResponseWriter, r *http.Request) {
	a.musicProxy(w, r, a.d.Spotify.Player)
}

// musicProxy runs a read call against the upstream with the stored access
// token, refreshing and retrying once on rejection.
func (a *API) musicProxy(w http.ResponseWriter, r *http.Request, call func(context.Context, string) (json.RawMessage, error)) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}

	account, err := a.d.MusicAccounts.GetByUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusConflict, "music_not_linked", "no music account linked")
			return
		}
		a.fail(w, err)
		return
	}

	payload, err := call(r.Context(), account.AccessToken)
	if errors.Is(err, spotify.ErrUnauthorized) {
		pair, refreshErr := a.d.Spotify.Refresh(r.Context(), account.RefreshToken)
		if refreshErr != nil {
			a.fail(w, refreshErr)
			return
		}
		account.AccessToken = pair.AccessToken
		account.RefreshToken = pair.RefreshToken
		if err := a.d.MusicAccounts.Upsert(r.Context(), account); err != nil {
			a.fail(w, err)
			return
		}
		payload, err = call(r.Context(), account.AccessToken)
	}
	if err != nil {
		a.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
