package api

import (
	"net/http"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

type createChallengeRequest struct {
	Name            string    `json:"name" validate:"required,max=200"`
	Description     *string   `json:"description"`
	StartsAt        time.Time `json:"starts_at" validate:"required"`
	EndsAt          time.Time `json:"ends_at" validate:"required"`
	MaxParticipants int       `json:"max_participants" validate:"required,gt=0"`
	Reward          *string   `json:"reward"`
	Icon            *string   `json:"icon"`
}

func (req createChallengeRequest) check() validation.Errors {
	errs := validation.Struct(req)
	if !req.StartsAt.IsZero() && !req.EndsAt.IsZero() && !req.EndsAt.After(req.StartsAt) {
		errs = errs.Add("ends_at", "must be after starts_at")
	}
	return errs
}

func (a *API) createChallenge(w http.ResponseWriter, r *http.Request) {
	var req createChallengeRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := req.check(); errs != nil {
		a.fail(w, errs)
		return
	}

	challenge := &domain.CommunityChallenge{
		Name:            req.Name,
		Description:     req.Description,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		MaxParticipants: req.MaxParticipants,
		Reward:          req.Reward,
		Icon:            req.Icon,
	}
	if err := a.d.Challenges.Create(r.Context(), challenge); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, challenge)
}

func (a *API) listChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := a.d.Challenges.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

func (a *API) getChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	challenge, err := a.d.Challenges.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

type updateChallengeRequest struct {
	Name            *string    `json:"name" validate:"omitempty,max=200"`
	Description     *string    `json:"description"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	MaxParticipants *int       `json:"max_participants" validate:"omitempty,gt=0"`
	Reward          *string    `json:"reward"`
	Icon            *string    `json:"icon"`
	Progress        *float64   `json:"progress" validate:"omitempty,gte=0,lte=1"`
}

func (a *API) updateChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateChallengeRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	challenge, err := a.d.Challenges.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Name != nil {
		challenge.Name = *req.Name
	}
	if req.Description != nil {
		challenge.Description = req.Description
	}
	if req.StartsAt != nil {
		challenge.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		challenge.EndsAt = *req.EndsAt
	}
	if req.MaxParticipants != nil {
		challenge.MaxParticipants = *req.MaxParticipants
	}
	if req.Reward != nil {
		challenge.Reward = req.Reward
	}
	if req.Icon != nil {
		challenge.Icon = req.Icon
	}
	if req.Progress != nil {
		challenge.Progress = req.Progress
	}

	if !challenge.EndsAt.After(challenge.StartsAt) {
		a.fail(w, validation.Errors{{Field: "ends_at", Message: "must be after starts_at"}})
		return
	}
	if err := a.d.Challenges.Update(r.Context(), challenge); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

func (a *API) deleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Challenges.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addParticipantRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

func (a *API) addParticipant(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req addParticipantRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	challenge, err := a.d.Challenges.Get(r.Context(), challengeID)
	if err != nil {
		a.fail(w, err)
		return
	}
	participants, err := a.d.Challenges.ListParticipants(r.Context(), challengeID)
	if err != nil {
		a.fail(w, err)
		return
	}
	if len(participants) >= challenge.MaxParticipants {
		writeError(w, http.StatusConflict, "challenge_full", "challenge reached its participant limit")
		return
	}

	participant, err := a.d.Challenges.AddParticipant(r.Context(), challengeID, req.UserID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, participant)
}

func (a *API) listParticipants(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Challenges.Get(r.Context(), challengeID); err != nil {
		a.fail(w, err)
		return
	}
	participants, err := a.d.Challenges.ListParticipants(r.Context(), challengeID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

func (a *API) removeParticipant(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Challenges.RemoveParticipant(r.Context(), challengeID, userID); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addChallengeProgressRequest struct {
	UserID   int64   `json:"user_id" validate:"required,gt=0"`
	Progress float64 `json:"progress" validate:"gte=0"`
}

func (a *API) addChallengeProgress(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req addChallengeProgressRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	progress := &domain.ChallengeProgress{
		ChallengeID: challengeID,
		UserID:      req.UserID,
		Progress:    req.Progress,
		RecordedAt:  time.Now().UTC(),
	}
	if err := a.d.Challenges.AddProgress(r.Context(), progress); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, progress)
}

func (a *API) listChallengeProgress(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Challenges.Get(r.Context(), challengeID); err != nil {
		a.fail(w, err)
		return
	}
	progress, err := a.d.Challenges.ListProgress(r.Context(), challengeID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (a *API) listChallengeInteractions(w http.ResponseWriter, r *http.Request) {
	challengeID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Challenges.Get(r.Context(), challengeID); err != nil {
		a.fail(w, err)
		return
	}
	interactions, err := a.d.Interactions.ListByChallenge(r.Context(), challengeID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

type createInteractionRequest struct {
	UserID          int64   `json:"user_id" validate:"required,gt=0"`
	InteractionType string  `json:"interaction_type" validate:"required,oneof=like comment"`
	ChallengeID     *int64  `json:"challenge_id" validate:"omitempty,gt=0"`
	Comment         *string `json:"comment" validate:"omitempty,max=2000"`
}

func (req createInteractionRequest) check() validation.Errors {
	errs := validation.Struct(req)
	if req.InteractionType == string(domain.InteractionComment) && (req.Comment == nil || *req.Comment == "") {
		errs = errs.Add("comment", "is required for comment interactions")
	}
	return errs
}

func (a *API) createInteraction(w http.ResponseWriter, r *http.Request) {
	var req createInteractionRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := req.check(); errs != nil {
		a.fail(w, errs)
		return
	}

	interaction := &domain.Interaction{
		UserID:      req.UserID,
		Type:        domain.InteractionType(req.InteractionType),
		ChallengeID: req.ChallengeID,
		Comment:     req.Comment,
		OccurredAt:  time.Now().UTC(),
	}
	if err := a.d.Interactions.Create(r.Context(), interaction); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, interaction)
}

func (a *API) listInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := a.d.Interactions.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (a *API) getInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	interaction, err := a.d.Interactions.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

type updateInteractionRequest struct {
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

func (a *API) updateInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateInteractionRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	interaction, err := a.d.Interactions.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if interaction.Type != domain.InteractionComment {
		a.fail(w, validation.Errors{{Field: "comment", Message: "only comment interactions can be edited"}})
		return
	}
	if req.Comment != nil {
		interaction.Comment = req.Comment
	}
	if err := a.d.Interactions.Update(r.Context(), interaction); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

func (a *API) deleteInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Interactions.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
