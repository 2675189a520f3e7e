package api

import (
	"net/http"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

func (a *API) registerGoalRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sport-goals", a.createSportGoal)
	mux.HandleFunc("GET /api/sport-goals", a.listSportGoals)
	mux.HandleFunc("GET /api/sport-goals/{id}", a.getSportGoal)
	mux.HandleFunc("PATCH /api/sport-goals/{id}", a.updateSportGoal)
	mux.HandleFunc("DELETE /api/sport-goals/{id}", a.deleteSportGoal)
	mux.HandleFunc("POST /api/sport-goals/{id}/progress", a.createGoalProgress)
	mux.HandleFunc("GET /api/sport-goals/{id}/progress", a.listGoalProgress)
	mux.HandleFunc("DELETE /api/goal-progress/{id}", a.deleteGoalProgress)

	mux.HandleFunc("POST /api/hydration-goals", a.createHydrationGoal)
	mux.HandleFunc("GET /api/hydration-goals", a.listHydrationGoals)
	mux.HandleFunc("GET /api/hydration-goals/{id}", a.getHydrationGoal)
	mux.HandleFunc("PATCH /api/hydration-goals/{id}", a.updateHydrationGoal)
	mux.HandleFunc("DELETE /api/hydration-goals/{id}", a.deleteHydrationGoal)

	mux.HandleFunc("POST /api/nutrition-goals", a.createNutritionGoal)
	mux.HandleFunc("GET /api/nutrition-goals", a.listNutritionGoals)
	mux.HandleFunc("GET /api/nutrition-goals/{id}", a.getNutritionGoal)
	mux.HandleFunc("PATCH /api/nutrition-goals/{id}", a.updateNutritionGoal)
	mux.HandleFunc("DELETE /api/nutrition-goals/{id}", a.deleteNutritionGoal)

	mux.HandleFunc("POST /api/sleep-goals", a.createSleepGoal)
	mux.HandleFunc("GET /api/sleep-goals", a.listSleepGoals)
	mux.HandleFunc("GET /api/sleep-goals/{id}", a.getSleepGoal)
	mux.HandleFunc("PATCH /api/sleep-goals/{id}", a.updateSleepGoal)
	mux.HandleFunc("DELETE /api/sleep-goals/{id}", a.deleteSleepGoal)

	mux.HandleFunc("POST /api/goal-participations", a.joinGoal)
	mux.HandleFunc("GET /api/goal-participations/{id}", a.getParticipation)
	mux.HandleFunc("PUT /api/goal-participations/{id}/progress", a.updateParticipationProgress)
	mux.HandleFunc("POST /api/goal-participations/{id}/complete", a.completeParticipation)
	mux.HandleFunc("DELETE /api/goal-participations/{id}", a.deleteParticipation)
}

type createSportGoalRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	TargetValue float64    `json:"target_value" validate:"required,gt=0"`
	Unit        string     `json:"unit" validate:"required,max=50"`
}

func (a *API) createSportGoal(w http.ResponseWriter, r *http.Request) {
	var req createSportGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	goal := &domain.SportGoal{
		Name:        req.Name,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
	}
	if err := a.d.SportGoals.Create(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (a *API) listSportGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := a.d.SportGoals.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (a *API) getSportGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	goal, err := a.d.SportGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

type updateSportGoalRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=200"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	TargetValue *float64   `json:"target_value" validate:"omitempty,gt=0"`
	Unit        *string    `json:"unit" validate:"omitempty,max=50"`
}

func (a *API) updateSportGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateSportGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	goal, err := a.d.SportGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.StartsAt != nil {
		goal.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		goal.EndsAt = req.EndsAt
	}
	if req.TargetValue != nil {
		goal.TargetValue = *req.TargetValue
	}
	if req.Unit != nil {
		goal.Unit = *req.Unit
	}
	if err := a.d.SportGoals.Update(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) deleteSportGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.SportGoals.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createHydrationGoalRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Icon            string `json:"icon" validate:"required,max=200"`
	Description     string `json:"description" validate:"required"`
	RequiredGlasses int    `json:"required_glasses" validate:"required,gte=1,lte=20"`
}

func (a *API) createHydrationGoal(w http.ResponseWriter, r *http.Request) {
	var req createHydrationGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	goal := &domain.HydrationGoal{
		Name:            req.Name,
		Icon:            req.Icon,
		Description:     req.Description,
		RequiredGlasses: req.RequiredGlasses,
	}
	if err := a.d.HydrationGoals.Create(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (a *API) listHydrationGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := a.d.HydrationGoals.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (a *API) getHydrationGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	goal, err := a.d.HydrationGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

type updateHydrationGoalRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=200"`
	Icon            *string `json:"icon" validate:"omitempty,max=200"`
	Description     *string `json:"description"`
	RequiredGlasses *int    `json:"required_glasses" validate:"omitempty,gte=1,lte=20"`
}

func (a *API) updateHydrationGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateHydrationGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	goal, err := a.d.HydrationGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Icon != nil {
		goal.Icon = *req.Icon
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.RequiredGlasses != nil {
		goal.RequiredGlasses = *req.RequiredGlasses
	}
	if err := a.d.HydrationGoals.Update(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) deleteHydrationGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.HydrationGoals.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createNutritionGoalRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Icon          string `json:"icon" validate:"required,max=200"`
	Description   string `json:"description" validate:"required"`
	RequiredMeals int    `json:"required_meals" validate:"required,gte=1"`
}

func (a *API) createNutritionGoal(w http.ResponseWriter, r *http.Request) {
	var req createNutritionGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	goal := &domain.NutritionGoal{
		Name:          req.Name,
		Icon:          req.Icon,
		Description:   req.Description,
		RequiredMeals: req.RequiredMeals,
	}
	if err := a.d.NutritionGoals.Create(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (a *API) listNutritionGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := a.d.NutritionGoals.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (a *API) getNutritionGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	goal, err := a.d.NutritionGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

type updateNutritionGoalRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=200"`
	Icon          *string `json:"icon" validate:"omitempty,max=200"`
	Description   *string `json:"description"`
	RequiredMeals *int    `json:"required_meals" validate:"omitempty,gte=1"`
}

func (a *API) updateNutritionGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateNutritionGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	goal, err := a.d.NutritionGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Icon != nil {
		goal.Icon = *req.Icon
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.RequiredMeals != nil {
		goal.RequiredMeals = *req.RequiredMeals
	}
	if err := a.d.NutritionGoals.Update(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) deleteNutritionGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.NutritionGoals.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createSleepGoalRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Icon          string  `json:"icon" validate:"required,max=200"`
	Description   string  `json:"description" validate:"required"`
	RequiredHours int     `json:"required_hours" validate:"required,gte=1,lte=24"`
	QualityGoal   *int    `json:"quality_goal" validate:"omitempty,gte=0,lte=100"`
	SportType     *string `json:"sport_type"`
}

func (a *API) createSleepGoal(w http.ResponseWriter, r *http.Request) {
	var req createSleepGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	goal := &domain.SleepGoal{
		Name:          req.Name,
		Icon:          req.Icon,
		Description:   req.Description,
		RequiredHours: req.RequiredHours,
		QualityGoal:   req.QualityGoal,
		SportType:     req.SportType,
	}
	if err := a.d.SleepGoals.Create(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (a *API) listSleepGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := a.d.SleepGoals.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (a *API) getSleepGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	goal, err := a.d.SleepGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

type updateSleepGoalRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=200"`
	Icon          *string `json:"icon" validate:"omitempty,max=200"`
	Description   *string `json:"description"`
	RequiredHours *int    `json:"required_hours" validate:"omitempty,gte=1,lte=24"`
	QualityGoal   *int    `json:"quality_goal" validate:"omitempty,gte=0,lte=100"`
	SportType     *string `json:"sport_type"`
}

func (a *API) updateSleepGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateSleepGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	goal, err := a.d.SleepGoals.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Icon != nil {
		goal.Icon = *req.Icon
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.RequiredHours != nil {
		goal.RequiredHours = *req.RequiredHours
	}
	if req.QualityGoal != nil {
		goal.QualityGoal = req.QualityGoal
	}
	if req.SportType != nil {
		goal.SportType = req.SportType
	}
	if err := a.d.SleepGoals.Update(r.Context(), goal); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (a *API) deleteSleepGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.SleepGoals.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type joinGoalRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	GoalKind string `json:"goal_kind" validate:"required,oneof=sport hydration nutrition sleep"`
	GoalID   int64  `json:"goal_id" validate:"required,gt=0"`
}

func (a *API) joinGoal(w http.ResponseWriter, r *http.Request) {
	var req joinGoalRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	p, err := a.d.ParticipationSvc.Join(r.Context(), domain.JoinGoalInput{
		UserID: req.UserID,
		Kind:   domain.GoalKind(req.GoalKind),
		GoalID: req.GoalID,
	})
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) getParticipation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	p, err := a.d.Participations.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type updateProgressRequest struct {
	Progress float64 `json:"progress" validate:"gte=0"`
}

func (a *API) updateParticipationProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateProgressRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	p, err := a.d.ParticipationSvc.UpdateProgress(r.Context(), id, req.Progress)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) completeParticipation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	p, err := a.d.ParticipationSvc.Complete(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) deleteParticipation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Participations.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listUserParticipations(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Users.Get(r.Context(), userID); err != nil {
		a.fail(w, err)
		return
	}

	kind := domain.GoalKind(r.URL.Query().Get("kind"))
	if kind != "" && !domain.ValidGoalKind(kind) {
		a.fail(w, validation.Errors{{Field: "kind", Message: "must be one of: sport hydration nutrition sleep"}})
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"

	participations, err := a.d.Participations.ListByUser(r.Context(), userID, kind, activeOnly)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participations)
}

type createGoalProgressRequest struct {
	ActivityID  int64   `json:"activity_id" validate:"required,gt=0"`
	Progression float64 `json:"progression" validate:"gte=0,lte=100"`
}

func (a *API) createGoalProgress(w http.ResponseWriter, r *http.Request) {
	goalID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req createGoalProgressRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	if _, err := a.d.SportGoals.Get(r.Context(), goalID); err != nil {
		a.fail(w, err)
		return
	}

	progress := &domain.GoalProgress{
		SportGoalID: goalID,
		ActivityID:  req.ActivityID,
		Progression: req.Progression,
	}
	if err := a.d.GoalProgress.Create(r.Context(), progress); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, progress)
}

func (a *API) listGoalProgress(w http.ResponseWriter, r *http.Request) {
	goalID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.SportGoals.Get(r.Context(), goalID); err != nil {
		a.fail(w, err)
		return
	}
	progress, err := a.d.GoalProgress.ListBySportGoal(r.Context(), goalID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (a *API) deleteGoalProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.GoalProgress.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
