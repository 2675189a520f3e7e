package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/api"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/auth"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/persistence/memory"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/recommend"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/spotify"
)

var testAuthCfg = auth.Config{Secret: "test-secret", Issuer: "gorun.test", TTL: time.Hour}

type fixture struct {
	mux *http.ServeMux

	users          *memory.UserStore
	activities     *memory.ActivityStore
	habits         *memory.EatingHabitStore
	catalog        *memory.Catalog
	participations *memory.ParticipationStore
	challenges     *memory.ChallengeStore
	injuries       *memory.InjuryStore
	musicAccounts  *memory.MusicAccountStore
	trainingRecs   *memory.TrainingRecommendationStore
}

// option tweaks the Deps before the API is constructed.
type option func(*api.Deps)

func withSpotify(client *spotify.Client) option {
	return func(d *api.Deps) { d.Spotify = client }
}

func withRecommend(client *recommend.Client) option {
	return func(d *api.Deps) { d.Recommend = client }
}

func newFixture(t *testing.T, opts ...option) *fixture {
	t.Helper()

	f := &fixture{
		users:          memory.NewUserStore(),
		activities:     memory.NewActivityStore(),
		habits:         memory.NewEatingHabitStore(),
		catalog:        memory.NewCatalog(),
		participations: memory.NewParticipationStore(),
		challenges:     memory.NewChallengeStore(),
		injuries:       memory.NewInjuryStore(),
		musicAccounts:  memory.NewMusicAccountStore(),
		trainingRecs:   memory.NewTrainingRecommendationStore(),
	}
	f.users.Cascade(f.activities, f.habits, f.participations, f.challenges,
		f.injuries, f.musicAccounts, f.trainingRecs)

	deps := api.Deps{
		Log: zerolog.Nop(),

		Users:          f.users,
		Activities:     f.activities,
		Details:        memory.NewActivityDetailStore(),
		Foods:          memory.NewFoodStore(),
		Habits:         f.habits,
		Challenges:     f.challenges,
		Interactions:   memory.NewInteractionStore(),
		Events:         memory.NewEventStore(),
		SportGoals:     f.catalog.Sport,
		HydrationGoals: f.catalog.Hydration,
		NutritionGoals: f.catalog.Nutrition,
		SleepGoals:     f.catalog.Sleep,
		GoalProgress:   memory.NewGoalProgressStore(),
		Participations: f.participations,
		Injuries:       f.injuries,
		TrainingRecs:   f.trainingRecs,
		RecoveryRecs:   memory.NewRecoveryRecommendationStore(),
		Benefits:       memory.NewBenefitStore(),
		MusicAccounts:  f.musicAccounts,

		ParticipationSvc: domain.NewParticipationService(f.participations, f.catalog, f.users),

		AuthCfg: testAuthCfg,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	f.mux = http.NewServeMux()
	api.New(deps).RegisterRoutes(f.mux)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) doAs(t *testing.T, userID int64, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req = req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{UserID: userID}))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func (f *fixture) seedUser(t *testing.T, email, authUID string) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName: "Test",
		LastName:  "Rider",
		Email:     email,
		AuthUID:   authUID,
		Status:    domain.UserStatusActive,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}
