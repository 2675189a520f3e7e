package api

import (
	"net/http"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

type createFoodRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Calories float64 `json:"calories" validate:"gte=0"`
	ProteinG float64 `json:"protein_g" validate:"gte=0"`
	CarbsG   float64 `json:"carbs_g" validate:"gte=0"`
	FatG     float64 `json:"fat_g" validate:"gte=0"`
}

func (a *API) createFood(w http.ResponseWriter, r *http.Request) {
	var req createFoodRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	food := &domain.Food{
		Name:     req.Name,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
	}
	if err := a.d.Foods.Create(r.Context(), food); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, food)
}

func (a *API) listFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := a.d.Foods.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (a *API) getFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	food, err := a.d.Foods.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

type updateFoodRequest struct {
	Name     *string  `json:"name" validate:"omitempty,max=200"`
	Calories *float64 `json:"calories" validate:"omitempty,gte=0"`
	ProteinG *float64 `json:"protein_g" validate:"omitempty,gte=0"`
	CarbsG   *float64 `json:"carbs_g" validate:"omitempty,gte=0"`
	FatG     *float64 `json:"fat_g" validate:"omitempty,gte=0"`
}

func (a *API) updateFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateFoodRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	food, err := a.d.Foods.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		food.Name = *req.Name
	}
	if req.Calories != nil {
		food.Calories = *req.Calories
	}
	if req.ProteinG != nil {
		food.ProteinG = *req.ProteinG
	}
	if req.CarbsG != nil {
		food.CarbsG = *req.CarbsG
	}
	if req.FatG != nil {
		food.FatG = *req.FatG
	}
	if err := a.d.Foods.Update(r.Context(), food); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (a *API) deleteFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Foods.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createHabitRequest struct {
	UserID   int64      `json:"user_id" validate:"required,gt=0"`
	FoodID   int64      `json:"food_id" validate:"required,gt=0"`
	FoodType string     `json:"food_type" validate:"required,max=100"`
	Quantity float64    `json:"quantity" validate:"required,gt=0"`
	EatenAt  *time.Time `json:"eaten_at"`
}

func (a *API) createHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	eatenAt := time.Now().UTC()
	if req.EatenAt != nil {
		eatenAt = *req.EatenAt
	}
	habit := &domain.EatingHabit{
		UserID:   req.UserID,
		FoodID:   req.FoodID,
		FoodType: req.FoodType,
		Quantity: req.Quantity,
		EatenAt:  eatenAt,
	}
	if err := a.d.Habits.Create(r.Context(), habit); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (a *API) listHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := a.d.Habits.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (a *API) getHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	habit, err := a.d.Habits.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

type updateHabitRequest struct {
	FoodID   *int64     `json:"food_id" validate:"omitempty,gt=0"`
	FoodType *string    `json:"food_type" validate:"omitempty,max=100"`
	Quantity *float64   `json:"quantity" validate:"omitempty,gt=0"`
	EatenAt  *time.Time `json:"eaten_at"`
}

func (a *API) updateHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateHabitRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	habit, err := a.d.Habits.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.FoodID != nil {
		habit.FoodID = *req.FoodID
	}
	if req.FoodType != nil {
		habit.FoodType = *req.FoodType
	}
	if req.Quantity != nil {
		habit.Quantity = *req.Quantity
	}
	if req.EatenAt != nil {
		habit.EatenAt = *req.EatenAt
	}
	if err := a.d.Habits.Update(r.Context(), habit); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (a *API) deleteHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Habits.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
