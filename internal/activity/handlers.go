// internal/activity/handlers.go

package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/linkupapp/linkup-backend/internal/auth"
	"github.com/linkupapp/linkup-backend/internal/common/utils"
	"github.com/linkupapp/linkup-backend/internal/geo"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func activityID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		utils.RespondWithError(w, http.StatusNotFound, utils.StatusNotFound, "Activity does not exist")
	case errors.Is(err, ErrRequestNotFound):
		utils.RespondWithError(w, http.StatusNotFound, utils.StatusNotFound, "Request does not exist")
	case errors.Is(err, ErrNotOwner):
		utils.RespondWithError(w, http.StatusForbidden, utils.StatusForbidden, "Unauthorized")
	case errors.Is(err, ErrOwnerCannotJoin):
		utils.RespondWithError(w, http.StatusConflict, utils.StatusConflict, "You are the owner of this activity and cannot join as a participant")
	case errors.Is(err, ErrAlreadyRequested):
		utils.RespondWithError(w, http.StatusConflict, utils.StatusConflict, "You have already requested")
	case errors.Is(err, ErrUserRequired):
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "User ID is required")
	case errors.Is(err, ErrNoStoredLocation):
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "No location on record; supply latitude and longitude")
	case errors.Is(err, geo.ErrInvalidLocation):
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
	default:
		utils.RespondInternalError(w)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	var dto CreateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
		return
	}

	a, err := h.service.CreateActivity(r.Context(), actor.ID, &dto)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, a)
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	var dto EditActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
		return
	}

	a, err := h.service.EditActivity(r.Context(), actor.ID, &dto)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	id, err := activityID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid Activity ID")
		return
	}

	if err := h.service.DeleteActivity(r.Context(), actor.ID, id); err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Activity deleted successfully.")
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	id, err := activityID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid Activity ID")
		return
	}

	var dto JoinDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
		return
	}

	if err := h.service.Join(r.Context(), actor.ID, id, dto.Message); err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Request sent successfully.")
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Accept, true, "Request accepted successfully.")
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reject, true, "Request rejected successfully.")
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel, false, "Request cancelled successfully.")
}

// transition covers the owner-driven request mutations, which all share the
// same body shape and error surface. userRequired distinguishes accept/reject
// from cancel, where the participant path needs no target user.
func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, actorID, activityID, userID int64, message string) error,
	userRequired bool,
	message string,
) {
	actor, _ := auth.ActorFrom(r.Context())

	id, err := activityID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid Activity ID")
		return
	}

	var dto RespondDTO
	_ = json.NewDecoder(r.Body).Decode(&dto)
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
		return
	}
	if userRequired && dto.UserID == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid User ID")
		return
	}

	if err := op(r.Context(), actor.ID, id, dto.UserID, dto.Message); err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, message)
}

func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	id, err := activityID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid Activity ID")
		return
	}
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid User ID")
		return
	}

	if err := h.service.DeleteRequest(r.Context(), actor.ID, id, userID); err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Request deleted successfully.")
}

func (h *Handler) Requests(w http.ResponseWriter, r *http.Request) {
	id, err := activityID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid Activity ID")
		return
	}

	buckets, err := h.service.Requests(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, buckets)
}

func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	var actorID int64
	if actor, ok := auth.ActorFrom(r.Context()); ok {
		actorID = actor.ID
	}

	q := r.URL.Query()
	params := NearbyParams{
		Date:       q.Get("date"),
		Time:       q.Get("time"),
		CategoryID: parseInt64(q.Get("categoryId")),
		Limit:      int(parseInt64(q.Get("limit"))),
		Page:       int(parseInt64(q.Get("page"))),
	}
	params.Latitude, _ = strconv.ParseFloat(q.Get("latitude"), 64)
	params.Longitude, _ = strconv.ParseFloat(q.Get("longitude"), 64)
	params.DistanceKm, _ = strconv.ParseFloat(q.Get("distance"), 64)

	items, err := h.service.Nearby(r.Context(), actorID, params)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, items)
}

func (h *Handler) UserActivities(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	q := r.URL.Query()
	params := UserActivitiesParams{
		UserID:     actor.ID,
		CategoryID: parseInt64(q.Get("categoryId")),
		Date:       q.Get("date"),
		Time:       q.Get("time"),
		Page:       int(parseInt64(q.Get("page"))),
		Limit:      int(parseInt64(q.Get("limit"))),
	}
	if userID := parseInt64(q.Get("userId")); userID != 0 {
		params.UserID = userID
	}

	page, err := h.service.UserActivities(r.Context(), params)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, page)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	q := r.URL.Query()
	params := MineParams{
		Date:      q.Get("date"),
		Time:      q.Get("time"),
		Type:      q.Get("type"),
		ShowCount: q.Get("showCount") == "true",
	}
	if params.Type != "" && !validBucket(params.Type) {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid bucket type")
		return
	}

	buckets, err := h.service.Mine(r.Context(), actor.ID, params)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if params.Type != "" {
		value, _ := buckets.Bucket(params.Type)
		utils.RespondWithData(w, http.StatusOK, value)
		return
	}
	utils.RespondWithData(w, http.StatusOK, buckets)
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	var actorID int64
	if actor, ok := auth.ActorFrom(r.Context()); ok {
		actorID = actor.ID
	}

	id, err := activityID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid Activity ID")
		return
	}

	view, err := h.service.Detail(r.Context(), actorID, id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, view)
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
