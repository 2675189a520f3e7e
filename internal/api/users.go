package api

import (
	"net/http"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

type createUserRequest struct {
	FirstName          string     `json:"first_name" validate:"required,max=100"`
	LastName           string     `json:"last_name" validate:"required,max=100"`
	Email              string     `json:"email" validate:"required,email"`
	AuthUID            string     `json:"auth_uid" validate:"required"`
	HeightCm           *int       `json:"height_cm" validate:"omitempty,gte=0,lte=300"`
	WeightKg           *int       `json:"weight_kg" validate:"omitempty,gte=0,lte=500"`
	Age                *int       `json:"age" validate:"omitempty,gte=0,lte=150"`
	BirthDate          *time.Time `json:"birth_date"`
	Phone              *string    `json:"phone"`
	Sex                *string    `json:"sex" validate:"omitempty,oneof=male female other"`
	Role               *string    `json:"role"`
	SelectedSports     []string   `json:"selected_sports"`
	SportPreferences   []string   `json:"sport_preferences"`
	TrainingLocations  []string   `json:"training_locations"`
	HealthConditions   []string   `json:"health_conditions"`
	ImprovementTargets []string   `json:"improvement_targets"`
	TrainingFrequency  *string    `json:"training_frequency"`
	Diet               *string    `json:"diet"`
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	user := &domain.User{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		AuthUID:            req.AuthUID,
		Status:             domain.UserStatusActive,
		HeightCm:           req.HeightCm,
		WeightKg:           req.WeightKg,
		Age:                req.Age,
		BirthDate:          req.BirthDate,
		Phone:              req.Phone,
		Sex:                req.Sex,
		Role:               req.Role,
		SelectedSports:     req.SelectedSports,
		SportPreferences:   req.SportPreferences,
		TrainingLocations:  req.TrainingLocations,
		HealthConditions:   req.HealthConditions,
		ImprovementTargets: req.ImprovementTargets,
		TrainingFrequency:  req.TrainingFrequency,
		Diet:               req.Diet,
	}
	if err := a.d.Users.Create(r.Context(), user); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	if uid := r.URL.Query().Get("auth_uid"); uid != "" {
		user, err := a.d.Users.GetByAuthUID(r.Context(), uid)
		if err != nil {
			a.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []domain.User{*user})
		return
	}
	users, err := a.d.Users.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	user, err := a.d.Users.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName          *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName           *string    `json:"last_name" validate:"omitempty,max=100"`
	Email              *string    `json:"email" validate:"omitempty,email"`
	Status             *string    `json:"status" validate:"omitempty,oneof=active inactive"`
	HeightCm           *int       `json:"height_cm" validate:"omitempty,gte=0,lte=300"`
	WeightKg           *int       `json:"weight_kg" validate:"omitempty,gte=0,lte=500"`
	Age                *int       `json:"age" validate:"omitempty,gte=0,lte=150"`
	BirthDate          *time.Time `json:"birth_date"`
	Phone              *string    `json:"phone"`
	Sex                *string    `json:"sex" validate:"omitempty,oneof=male female other"`
	Role               *string    `json:"role"`
	SelectedSports     []string   `json:"selected_sports"`
	SportPreferences   []string   `json:"sport_preferences"`
	TrainingLocations  []string   `json:"training_locations"`
	HealthConditions   []string   `json:"health_conditions"`
	ImprovementTargets []string   `json:"improvement_targets"`
	TrainingFrequency  *string    `json:"training_frequency"`
	Diet               *string    `json:"diet"`
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateUserRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	user, err := a.d.Users.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Status != nil {
		user.Status = domain.UserStatus(*req.Status)
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Sex != nil {
		user.Sex = req.Sex
	}
	if req.Role != nil {
		user.Role = req.Role
	}
	if req.SelectedSports != nil {
		user.SelectedSports = req.SelectedSports
	}
	if req.SportPreferences != nil {
		user.SportPreferences = req.SportPreferences
	}
	if req.TrainingLocations != nil {
		user.TrainingLocations = req.TrainingLocations
	}
	if req.HealthConditions != nil {
		user.HealthConditions = req.HealthConditions
	}
	if req.ImprovementTargets != nil {
		user.ImprovementTargets = req.ImprovementTargets
	}
	if req.TrainingFrequency != nil {
		user.TrainingFrequency = req.TrainingFrequency
	}
	if req.Diet != nil {
		user.Diet = req.Diet
	}

	if err := a.d.Users.Update(r.Context(), user); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Users.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listUserActivities(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Users.Get(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	activities, err := a.d.Activities.ListByUser(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (a *API) listUserHabits(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Users.Get(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	habits, err := a.d.Habits.ListByUser(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (a *API) listUserInjuries(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Users.Get(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	injuries, err := a.d.Injuries.ListByUser(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, injuries)
}
