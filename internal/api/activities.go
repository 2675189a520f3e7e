package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ahmed-Chaabane/backend-gorun/internal/domain"
	"github.com/Ahmed-Chaabane/backend-gorun/internal/validation"
)

type createActivityRequest struct {
	UserID          int64           `json:"user_id" validate:"required,gt=0"`
	ActivityType    string          `json:"activity_type" validate:"required,oneof=running cycling"`
	ActivityDate    time.Time       `json:"activity_date" validate:"required"`
	DurationSeconds int             `json:"duration_seconds" validate:"required,gt=0"`
	DistanceKm      *float64        `json:"distance_km" validate:"omitempty,gte=0"`
	CaloriesBurned  *int            `json:"calories_burned" validate:"omitempty,gte=0"`
	AvgHeartRate    *int            `json:"avg_heart_rate" validate:"omitempty,gt=0,lte=250"`
	AvgSpeedKmh     *float64        `json:"avg_speed_kmh" validate:"omitempty,gte=0"`
	MaxAltitudeM    *float64        `json:"max_altitude_m"`
	ElevationGainM  *float64        `json:"elevation_gain_m" validate:"omitempty,gte=0"`
	Route           json.RawMessage `json:"route"`
	Extra           json.RawMessage `json:"extra"`
	RecordedAt      *time.Time      `json:"recorded_at"`
}

func (req createActivityRequest) check() validation.Errors {
	errs := validation.Struct(req)
	if !req.ActivityDate.IsZero() && req.ActivityDate.After(time.Now()) {
		errs = errs.Add("activity_date", "must not be in the future")
	}
	return errs
}

func (a *API) createActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := req.check(); errs != nil {
		a.fail(w, errs)
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	activity := &domain.SportActivity{
		UserID:          req.UserID,
		Type:            domain.ActivityType(req.ActivityType),
		ActivityDate:    req.ActivityDate,
		DurationSeconds: req.DurationSeconds,
		DistanceKm:      req.DistanceKm,
		CaloriesBurned:  req.CaloriesBurned,
		AvgHeartRate:    req.AvgHeartRate,
		AvgSpeedKmh:     req.AvgSpeedKmh,
		MaxAltitudeM:    req.MaxAltitudeM,
		ElevationGainM:  req.ElevationGainM,
		Route:           req.Route,
		Extra:           req.Extra,
		RecordedAt:      recordedAt,
	}
	if err := a.d.Activities.Create(r.Context(), activity); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (a *API) listActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := a.d.Activities.List(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (a *API) getActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	activity, err := a.d.Activities.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

type updateActivityRequest struct {
	ActivityType    *string         `json:"activity_type" validate:"omitempty,oneof=running cycling"`
	ActivityDate    *time.Time      `json:"activity_date"`
	DurationSeconds *int            `json:"duration_seconds" validate:"omitempty,gt=0"`
	DistanceKm      *float64        `json:"distance_km" validate:"omitempty,gte=0"`
	CaloriesBurned  *int            `json:"calories_burned" validate:"omitempty,gte=0"`
	AvgHeartRate    *int            `json:"avg_heart_rate" validate:"omitempty,gt=0,lte=250"`
	AvgSpeedKmh     *float64        `json:"avg_speed_kmh" validate:"omitempty,gte=0"`
	MaxAltitudeM    *float64        `json:"max_altitude_m"`
	ElevationGainM  *float64        `json:"elevation_gain_m" validate:"omitempty,gte=0"`
	Route           json.RawMessage `json:"route"`
	Extra           json.RawMessage `json:"extra"`
}

func (a *API) updateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateActivityRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	errs := validation.Struct(req)
	if req.ActivityDate != nil && req.ActivityDate.After(time.Now()) {
		errs = errs.Add("activity_date", "must not be in the future")
	}
	if errs != nil {
		a.fail(w, errs)
		return
	}

	activity, err := a.d.Activities.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}

	if req.ActivityType != nil {
		activity.Type = domain.ActivityType(*req.ActivityType)
	}
	if req.ActivityDate != nil {
		activity.ActivityDate = *req.ActivityDate
	}
	if req.DurationSeconds != nil {
		activity.DurationSeconds = *req.DurationSeconds
	}
	if req.DistanceKm != nil {
		activity.DistanceKm = req.DistanceKm
	}
	if req.CaloriesBurned != nil {
		activity.CaloriesBurned = req.CaloriesBurned
	}
	if req.AvgHeartRate != nil {
		activity.AvgHeartRate = req.AvgHeartRate
	}
	if req.AvgSpeedKmh != nil {
		activity.AvgSpeedKmh = req.AvgSpeedKmh
	}
	if req.MaxAltitudeM != nil {
		activity.MaxAltitudeM = req.MaxAltitudeM
	}
	if req.ElevationGainM != nil {
		activity.ElevationGainM = req.ElevationGainM
	}
	if req.Route != nil {
		activity.Route = req.Route
	}
	if req.Extra != nil {
		activity.Extra = req.Extra
	}

	if err := a.d.Activities.Update(r.Context(), activity); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activity)
}

func (a *API) deleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Activities.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createDetailRequest struct {
	Moment    time.Time       `json:"moment" validate:"required"`
	Intensity float64         `json:"intensity" validate:"gte=0,lte=10"`
	Location  json.RawMessage `json:"location"`
}

func (a *API) createDetail(w http.ResponseWriter, r *http.Request) {
	activityID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req createDetailRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}
	if _, err := a.d.Activities.Get(r.Context(), activityID); err != nil {
		a.fail(w, err)
		return
	}

	detail := &domain.ActivityDetail{
		ActivityID: activityID,
		Moment:     req.Moment,
		Intensity:  req.Intensity,
		Location:   req.Location,
	}
	if err := a.d.Details.Create(r.Context(), detail); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

func (a *API) listDetails(w http.ResponseWriter, r *http.Request) {
	activityID, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if _, err := a.d.Activities.Get(r.Context(), activityID); err != nil {
		a.fail(w, err)
		return
	}
	details, err := a.d.Details.ListByActivity(r.Context(), activityID)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (a *API) getDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	detail, err := a.d.Details.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type updateDetailRequest struct {
	Moment    *time.Time      `json:"moment"`
	Intensity *float64        `json:"intensity" validate:"omitempty,gte=0,lte=10"`
	Location  json.RawMessage `json:"location"`
}

func (a *API) updateDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	var req updateDetailRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, err)
		return
	}
	if errs := validation.Struct(req); errs != nil {
		a.fail(w, errs)
		return
	}

	detail, err := a.d.Details.Get(r.Context(), id)
	if err != nil {
		a.fail(w, err)
		return
	}
	if req.Moment != nil {
		detail.Moment = *req.Moment
	}
	if req.Intensity != nil {
		detail.Intensity = *req.Intensity
	}
	if req.Location != nil {
		detail.Location = req.Location
	}
	if err := a.d.Details.Update(r.Context(), detail); err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (a *API) deleteDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		a.fail(w, err)
		return
	}
	if err := a.d.Details.Delete(r.Context(), id); err != nil {
		a.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
