package api

import (
	"net/http"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/recommend"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

type createInjuryRequest struct {
	UserID     int64     `json:"user_id" validate:"required,gt=0"`
	InjuryType string    `json:"injury_type" validate:"required,max=200"`
	InjuredAt  time.Time `json:"injured_at" validate:"required"`
	Severity   int       `json:"severity" validate:"required,gte=1,lte=5"`
}

func (req createInjuryRequest) check() validation.Errors {
	errs := validation.Struct(req)
	if !req.InjuredAt.IsZero() && req.InjuredAt.After(time.Now()) {
		errs = errs.Add("injured_at", "must not be in the future")
	}
	return errs
}

func (a *API) createInjury(w http.ResponseWriter, r *http.Request) {
	var req createInjuryRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := req.check(); errs != nil {
		a.fail(w, errs)
		return
	}

	injury := &domain.InjuryRecovery{
		UserID:     req.UserID,
		InjuryType: req.InjuryType,
		InjuredAt:  req.InjuredAt,
		Severity:   req.Severity,
	}
	if err := a.d.Injuries.Create(r.Context(), injury); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, injury)
}

func (a *API) listInjuries(w http.ResponseWriter, r *http.Request) {
	injuries, err := a.d.Injuries.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, injuries)
}

func (a *API) getInjury(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	injury, err := a.d.Injuries.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, injury)
}

type updateInjuryRequest struct {
	InjuryType *string `json:"injury_type" validate:"omitempty,max=200"`
	Severity   *int    `json:"severity" validate:"omitempty,gte=1,lte=5"`
	Status     *int    `json:"status" validate:"omitempty,gte=0,lte=100"`
}

func (a *API) updateInjury(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateInjuryRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	injury, err := a.d.Injuries.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.InjuryType != nil {
		injury.InjuryType = *req.InjuryType
	}
	if req.Severity != nil {
		injury.Severity = *req.Severity
	}
	if req.Status != nil {
		injury.Status = *req.Status
	}
	if err := a.d.Injuries.Update(r.Context(), injury); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, injury)
}

func (a *API) deleteInjury(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Injuries.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createRecoveryRecRequest struct {
	Description string `json:"description" validate:"required"`
}

func (a *API) createRecoveryRec(w http.ResponseWriter, r *http.Request) {
	injuryID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req createRecoveryRecRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	if _, err := a.d.Injuries.Get(r.Context(), injuryID); err != nil {
		a.fail(w, err)
		return
	}

	rec := &domain.RecoveryRecommendation{InjuryID: injuryID, Description: req.Description}
	if err := a.d.RecoveryRecs.Create(r.Context(), rec); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) listRecoveryRecs(w http.ResponseWriter, r *http.Request) {
	injuryID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Injuries.Get(r.Context(), injuryID); err != nil {
		a.fail(w, err)
		return
	}
	recs, err := a.d.RecoveryRecs.ListByInjury(r.Context(), injuryID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (a *API) deleteRecoveryRec(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.RecoveryRecs.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listTrainingRecs(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Users.Get(r.Context(), userID); err != nil {
		a.fail(w, err)
		return
	}
	recs, err := a.d.TrainingRecs.ListByUser(r.Context(), userID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

type generateTrainingRecRequest struct {
	SportGoalID *int64 `json:"sport_goal_id" validate:"omitempty,gt=0"`
}

// generateTrainingRec sends the user's profile to the model endpoint and
// persists the returned plan.
func (a *API) generateTrainingRec(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req generateTrainingRecRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	user, err := a.d.Users.Get(r.Context(), userID)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.SportGoalID != nil {
		if _, err := a.d.SportGoals.Get(r.Context(), *req.SportGoalID); err != nil {
			a.fail(w, err)
			return
		}
	}

	plan, err := a.d.Recommend.Generate(r.Context(), recommend.ProfileInput{
		Age:               user.Age,
		HeightCm:          user.HeightCm,
		WeightKg:          user.WeightKg,
		Sex:               user.Sex,
		SelectedSports:    user.SelectedSports,
		TrainingFrequency: user.TrainingFrequency,
		HealthConditions:  user.HealthConditions,
		ImprovementTarget: user.ImprovementTargets,
	})
	if err != nil {
		a.fail(w, err)
		return
	}

	rec := &domain.TrainingRecommendation{
		UserID:      userID,
		SportGoalID: req.SportGoalID,
		Description: plan.Description,
		Difficulty:  plan.Difficulty,
		Schedule:    plan.Schedule,
		Exercises:   plan.Exercises,
	}
	if err := a.d.TrainingRecs.Create(r.Context(), rec); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type createBenefitRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Icon string `json:"icon" validate:"required,max=200"`
}

func (a *API) createBenefit(w http.ResponseWriter, r *http.Request) {
	var req createBenefitRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	benefit := &domain.Benefit{Name: req.Name, Icon: req.Icon}
	if err := a.d.Benefits.Create(r.Context(), benefit); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, benefit)
}

func (a *API) listBenefits(w http.ResponseWriter, r *http.Request) {
	benefits, err := a.d.Benefits.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, benefits)
}

func (a *API) getBenefit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	benefit, err := a.d.Benefits.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, benefit)
}

type updateBenefitRequest struct {
	Name *string `json:"name" validate:"omitempty,max=200"`
	Icon *string `json:"icon" validate:"omitempty,max=200"`
}

func (a *API) updateBenefit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateBenefitRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	benefit, err := a.d.Benefits.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		benefit.Name = *req.Name
	}
	if req.Icon != nil {
		benefit.Icon = *req.Icon
	}
	if err := a.d.Benefits.Update(r.Context(), benefit); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, benefit)
}

func (a *API) deleteBenefit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Benefits.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
