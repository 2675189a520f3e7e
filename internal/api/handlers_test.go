package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
)

func TestCreateUserReturnsCreatedRecord(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/users", map[string]any{
		"first_name": "Lina",
		"last_name":  "Mansour",
		"email":      "lina@example.com",
		"auth_uid":   "uid-lina",
		"height_cm":  168,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user domain.User
	decodeBody(t, rec, &user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "lina@example.com", user.Email)
	assert.Equal(t, domain.UserStatusActive, user.Status)
}

func TestCreateUserValidationFailureListsFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/users", map[string]any{
		"first_name": "Lina",
		"email":      "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Type   string `json:"type"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "validation_failed", body.Type)

	var names []string
	for _, fe := range body.Fields {
		names = append(names, fe.Field)
	}
	assert.Contains(t, names, "last_name")
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "auth_uid")
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "dup@example.com", "uid-dup")

	rec := f.do(t, http.MethodPost, "/api/users", map[string]any{
		"first_name": "Other",
		"last_name":  "Person",
		"email":      "dup@example.com",
		"auth_uid":   "uid-other",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateUserMergesOnlyProvidedFields(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "patch@example.com", "uid-patch")

	rec := f.do(t, http.MethodPatch, "/api/users/1", map[string]any{
		"weight_kg": 72,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.User
	decodeBody(t, rec, &updated)
	assert.Equal(t, user.FirstName, updated.FirstName)
	assert.Equal(t, user.Email, updated.Email)
	require.NotNil(t, updated.WeightKg)
	assert.Equal(t, 72, *updated.WeightKg)
}

func TestGetUnknownUserReturnsNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/users/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPathIDMustBePositiveInteger(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateActivityRejectsFutureDate(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "runner@example.com", "uid-runner")

	rec := f.do(t, http.MethodPost, "/api/activities", map[string]any{
		"user_id":          user.ID,
		"activity_type":    "running",
		"activity_date":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"duration_seconds": 1800,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "activity_date")
}

func TestCreateActivityRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "runner@example.com", "uid-runner")

	rec := f.do(t, http.MethodPost, "/api/activities", map[string]any{
		"user_id":          user.ID,
		"activity_type":    "swimming",
		"activity_date":    time.Now().Add(-time.Hour).Format(time.RFC3339),
		"duration_seconds": 1800,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAndListUserActivities(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "runner@example.com", "uid-runner")

	rec := f.do(t, http.MethodPost, "/api/activities", map[string]any{
		"user_id":          user.ID,
		"activity_type":    "cycling",
		"activity_date":    time.Now().Add(-2 * time.Hour).Format(time.RFC3339),
		"duration_seconds": 3600,
		"distance_km":      42.5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/users/1/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var activities []domain.SportActivity
	decodeBody(t, rec, &activities)
	require.Len(t, activities, 1)
	assert.Equal(t, domain.ActivityCycling, activities[0].Type)
}

func TestChallengeRejectsEndBeforeStart(t *testing.T) {
	f := newFixture(t)

	now := time.Now()
	rec := f.do(t, http.MethodPost, "/api/challenges", map[string]any{
		"name":             "Backwards",
		"starts_at":        now.Format(time.RFC3339),
		"ends_at":          now.Add(-time.Hour).Format(time.RFC3339),
		"max_participants": 10,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ends_at")
}

func TestChallengeParticipantLimitEnforced(t *testing.T) {
	f := newFixture(t)
	first := f.seedUser(t, "a@example.com", "uid-a")
	second := f.seedUser(t, "b@example.com", "uid-b")

	now := time.Now()
	challenge := &domain.CommunityChallenge{
		Name:            "Tiny",
		StartsAt:        now,
		EndsAt:          now.Add(24 * time.Hour),
		MaxParticipants: 1,
	}
	require.NoError(t, f.challenges.Create(context.Background(), challenge))

	rec := f.do(t, http.MethodPost, "/api/challenges/1/participants", map[string]any{"user_id": first.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/challenges/1/participants", map[string]any{"user_id": second.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "challenge_full")
}

func TestChallengeDuplicateParticipantConflicts(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "a@example.com", "uid-a")

	now := time.Now()
	challenge := &domain.CommunityChallenge{
		Name:            "Weekly",
		StartsAt:        now,
		EndsAt:          now.Add(24 * time.Hour),
		MaxParticipants: 10,
	}
	require.NoError(t, f.challenges.Create(context.Background(), challenge))

	rec := f.do(t, http.MethodPost, "/api/challenges/1/participants", map[string]any{"user_id": user.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/challenges/1/participants", map[string]any{"user_id": user.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCommentInteractionRequiresComment(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "a@example.com", "uid-a")

	rec := f.do(t, http.MethodPost, "/api/interactions", map[string]any{
		"user_id":          user.ID,
		"interaction_type": "comment",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "comment")
}

func TestListUsersFiltersByAuthUID(t *testing.T) {
	f := newFixture(t)
	seeded := f.seedUser(t, "a@example.com", "uid-a")
	f.seedUser(t, "b@example.com", "uid-b")

	rec := f.do(t, http.MethodGet, "/api/users?auth_uid=uid-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []domain.User
	decodeBody(t, rec, &users)
	require.Len(t, users, 1)
	assert.Equal(t, seeded.ID, users[0].ID)

	rec = f.do(t, http.MethodGet, "/api/users?auth_uid=unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUserRemovesOwnedRows(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "a@example.com", "uid-a")
	ctx := context.Background()

	require.NoError(t, f.activities.Create(ctx, &domain.SportActivity{
		UserID:          user.ID,
		Type:            domain.ActivityRunning,
		ActivityDate:    time.Now().Add(-time.Hour),
		DurationSeconds: 1800,
	}))
	require.NoError(t, f.habits.Create(ctx, &domain.EatingHabit{
		UserID: user.ID, FoodID: 1, FoodType: "breakfast", Quantity: 1,
	}))
	require.NoError(t, f.participations.Create(ctx, &domain.GoalParticipation{
		UserID: user.ID, Kind: domain.GoalKindHydration, GoalID: 1,
		Status: domain.ParticipationInProgress, IsActive: true,
	}))
	require.NoError(t, f.musicAccounts.Upsert(ctx, &domain.MusicAccount{
		UserID: user.ID, AccessToken: "tok", RefreshToken: "ref",
	}))

	rec := f.do(t, http.MethodDelete, "/api/users/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	activities, err := f.activities.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, activities)

	habits, err := f.habits.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, habits)

	participations, err := f.participations.ListByUser(ctx, user.ID, "", false)
	require.NoError(t, err)
	assert.Empty(t, participations)

	_, err = f.musicAccounts.GetByUser(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateUserDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "a@example.com", "uid-a")
	f.seedUser(t, "b@example.com", "uid-b")

	rec := f.do(t, http.MethodPatch, "/api/users/2", map[string]any{"email": "a@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
