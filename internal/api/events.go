package api

import (
	"net/http"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

type createEventRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	Description *string   `json:"description"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	CreatorID   int64     `json:"creator_id" validate:"required,gt=0"`
}

func (req createEventRequest) check() validation.Errors {
	errs := validation.Struct(req)
	if !req.StartsAt.IsZero() && !req.EndsAt.IsZero() && !req.EndsAt.After(req.StartsAt) {
		errs = errs.Add("ends_at", "must be after starts_at")
	}
	return errs
}

func (a *API) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := req.check(); errs != nil {
		a.fail(w, errs)
		return
	}

	event := &domain.Event{
		Name:        req.Name,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CreatorID:   req.CreatorID,
	}
	if err := a.d.Events.Create(r.Context(), event); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (a *API) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.d.Events.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (a *API) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	event, err := a.d.Events.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

type updateEventRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

func (a *API) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateEventRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	event, err := a.d.Events.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = *req.EndsAt
	}
	if !event.EndsAt.After(event.StartsAt) {
		a.fail(w, validation.Errors{{Field: "ends_at", Message: "must be after starts_at"}})
		return
	}
	if err := a.d.Events.Update(r.Context(), event); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (a *API) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Events.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
