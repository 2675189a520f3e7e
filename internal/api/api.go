// Package api exposes the HTTP surface of the backend.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/auth"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/notify"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/observability"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/recommend"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/spotify"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

// Deps bundles everything the handlers touch.
type Deps struct {
	Log zerolog.Logger

	Users          domain.UserRepository
	Activities     domain.ActivityRepository
	Details        domain.ActivityDetailRepository
	Foods          domain.FoodRepository
	Habits         domain.EatingHabitRepository
	Challenges     domain.ChallengeRepository
	Interactions   domain.InteractionRepository
	Events         domain.EventRepository
	SportGoals     domain.SportGoalRepository
	HydrationGoals domain.HydrationGoalRepository
	NutritionGoals domain.NutritionGoalRepository
	SleepGoals     domain.SleepGoalRepository
	GoalProgress   domain.GoalProgressRepository
	Participations domain.ParticipationRepository
	Injuries       domain.InjuryRepository
	TrainingRecs   domain.TrainingRecommendationRepository
	RecoveryRecs   domain.RecoveryRecommendationRepository
	Benefits       domain.BenefitRepository
	MusicAccounts  domain.MusicAccountRepository

	ParticipationSvc *domain.ParticipationService

	Spotify   *spotify.Client
	Recommend *recommend.Client
	Hub       *notify.Hub
	AuthCfg   auth.Config
}

// API coordinates HTTP requests with the domain layer.
type API struct {
	d Deps
}

// New builds an API over the given dependencies.
func New(d Deps) *API {
	return &API{d: d}
}

// RegisterRoutes wires every endpoint to the mux.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", healthz)

	mux.HandleFunc("GET /auth/spotify", a.spotifyLogin)
	mux.HandleFunc("GET /auth/spotify/callback", a.spotifyCallback)

	mux.HandleFunc("POST /api/users", a.createUser)
	mux.HandleFunc("GET /api/users", a.listUsers)
	mux.HandleFunc("GET /api/users/{id}", a.getUser)
	mux.HandleFunc("PATCH /api/users/{id}", a.updateUser)
	mux.HandleFunc("DELETE /api/users/{id}", a.deleteUser)
	mux.HandleFunc("GET /api/users/{id}/activities", a.listUserActivities)
	mux.HandleFunc("GET /api/users/{id}/eating-habits", a.listUserHabits)
	mux.HandleFunc("GET /api/users/{id}/injuries", a.listUserInjuries)
	mux.HandleFunc("GET /api/users/{id}/goal-participations", a.listUserParticipations)
	mux.HandleFunc("GET /api/users/{id}/training-recommendations", a.listTrainingRecs)
	mux.HandleFunc("POST /api/users/{id}/training-recommendations", a.generateTrainingRec)

	mux.HandleFunc("POST /api/activities", a.createActivity)
	mux.HandleFunc("GET /api/activities", a.listActivities)
	mux.HandleFunc("GET /api/activities/{id}", a.getActivity)
	mux.HandleFunc("PATCH /api/activities/{id}", a.updateActivity)
	mux.HandleFunc("DELETE /api/activities/{id}", a.deleteActivity)
	mux.HandleFunc("POST /api/activities/{id}/details", a.createDetail)
	mux.HandleFunc("GET /api/activities/{id}/details", a.listDetails)
	mux.HandleFunc("GET /api/activity-details/{id}", a.getDetail)
	mux.HandleFunc("PATCH /api/activity-details/{id}", a.updateDetail)
	mux.HandleFunc("DELETE /api/activity-details/{id}", a.deleteDetail)

	mux.HandleFunc("POST /api/foods", a.createFood)
	mux.HandleFunc("GET /api/foods", a.listFoods)
	mux.HandleFunc("GET /api/foods/{id}", a.getFood)
	mux.HandleFunc("PATCH /api/foods/{id}", a.updateFood)
	mux.HandleFunc("DELETE /api/foods/{id}", a.deleteFood)

	mux.HandleFunc("POST /api/eating-habits", a.createHabit)
	mux.HandleFunc("GET /api/eating-habits", a.listHabits)
	mux.HandleFunc("GET /api/eating-habits/{id}", a.getHabit)
	mux.HandleFunc("PATCH /api/eating-habits/{id}", a.updateHabit)
	mux.HandleFunc("DELETE /api/eating-habits/{id}", a.deleteHabit)

	mux.HandleFunc("POST /api/challenges", a.createChallenge)
	mux.HandleFunc("GET /api/challenges", a.listChallenges)
	mux.HandleFunc("GET /api/challenges/{id}", a.getChallenge)
	mux.HandleFunc("PATCH /api/challenges/{id}", a.updateChallenge)
	mux.HandleFunc("DELETE /api/challenges/{id}", a.deleteChallenge)
	mux.HandleFunc("POST /api/challenges/{id}/participants", a.addParticipant)
	mux.HandleFunc("GET /api/challenges/{id}/participants", a.listParticipants)
	mux.HandleFunc("DELETE /api/challenges/{id}/participants/{userID}", a.removeParticipant)
	mux.HandleFunc("POST /api/challenges/{id}/progress", a.addChallengeProgress)
	mux.HandleFunc("GET /api/challenges/{id}/progress", a.listChallengeProgress)
	mux.HandleFunc("GET /api/challenges/{id}/interactions", a.listChallengeInteractions)

	mux.HandleFunc("POST /api/interactions", a.createInteraction)
	mux.HandleFunc("GET /api/interactions", a.listInteractions)
	mux.HandleFunc("GET /api/interactions/{id}", a.getInteraction)
	mux.HandleFunc("PATCH /api/interactions/{id}", a.updateInteraction)
	mux.HandleFunc("DELETE /api/interactions/{id}", a.deleteInteraction)

	mux.HandleFunc("POST /api/events", a.createEvent)
	mux.HandleFunc("GET /api/events", a.listEvents)
	mux.HandleFunc("GET /api/events/{id}", a.getEvent)
	mux.HandleFunc("PATCH /api/events/{id}", a.updateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", a.deleteEvent)

	a.registerGoalRoutes(mux)

	mux.HandleFunc("POST /api/injuries", a.createInjury)
	mux.HandleFunc("GET /api/injuries", a.listInjuries)
	mux.HandleFunc("GET /api/injuries/{id}", a.getInjury)
	mux.HandleFunc("PATCH /api/injuries/{id}", a.updateInjury)
	mux.HandleFunc("DELETE /api/injuries/{id}", a.deleteInjury)
	mux.HandleFunc("POST /api/injuries/{id}/recommendations", a.createRecoveryRec)
	mux.HandleFunc("GET /api/injuries/{id}/recommendations", a.listRecoveryRecs)
	mux.HandleFunc("DELETE /api/recovery-recommendations/{id}", a.deleteRecoveryRec)

	mux.HandleFunc("POST /api/benefits", a.createBenefit)
	mux.HandleFunc("GET /api/benefits", a.listBenefits)
	mux.HandleFunc("GET /api/benefits/{id}", a.getBenefit)
	mux.HandleFunc("PATCH /api/benefits/{id}", a.updateBenefit)
	mux.HandleFunc("DELETE /api/benefits/{id}", a.deleteBenefit)

	mux.HandleFunc("GET /api/music/playlists", a.musicPlaylists)
	mux.HandleFunc("GET /api/music/player", a.musicPlayer)

	if a.d.Hub != nil {
		mux.Handle("GET /ws", a.d.Hub)
	}
}

// AuthSkipper exempts the public endpoints from bearer-token checks.
func AuthSkipper(r *http.Request) bool {
	switch {
	case r.URL.Path == "/healthz" || r.URL.Path == "/metrics":
		return true
	case r.URL.Path == "/ws":
		return true
	case r.URL.Path == "/api/users" && r.Method == http.MethodPost:
		return true
	case len(r.URL.Path) >= 6 && r.URL.Path[:6] == "/auth/":
		return true
	}
	return false
}

// MetricsMiddleware records request counts and latency.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &observability.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(rec, r)
		observability.RecordRequest(r.Method, rec.Status, time.Since(start))
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type errorBody struct {
	Type   string                  `json:"type"`
	Detail string                  `json:"detail"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorBody{Type: code, Detail: detail})
}

// fail maps domain and upstream errors onto HTTP responses.
func (a *API) fail(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Type: "validation_failed", Detail: "request validation failed", Fields: verrs,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "record not found")
	case errors.Is(err, domain.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "invalid_reference", "referenced record not found")
	case errors.Is(err, domain.ErrActiveParticipationExists):
		writeError(w, http.StatusConflict, "active_goal_exists", "user already has an active goal of this kind")
	case errors.Is(err, domain.ErrParticipationCompleted):
		writeError(w, http.StatusConflict, "participation_completed", "participation already completed")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "record already exists")
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid bearer token")
	case errors.Is(err, spotify.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "music_unauthorized", "music service rejected the linked account")
	case errors.Is(err, spotify.ErrUpstream):
		writeError(w, http.StatusBadGateway, "music_unavailable", "music service unavailable")
	case errors.Is(err, recommend.ErrUpstream):
		writeError(w, http.StatusBadGateway, "recommendation_unavailable", "recommendation service unavailable")
	default:
		a.d.Log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

func decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validation.Errors{{Field: "_", Message: "unable to parse body"}}
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.Errors{{Field: name, Message: "must be a positive integer"}}
	}
	return id, nil
}
