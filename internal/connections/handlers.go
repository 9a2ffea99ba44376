// internal/connections/handlers.go

package connections

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/linkupapp/linkup-backend/internal/auth"
	"github.com/linkupapp/linkup-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	friendID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid User ID")
		return
	}

	if err := h.service.Follow(r.Context(), actor.ID, friendID); err != nil {
		switch err {
		case ErrCannotFollowSelf:
			utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
		case ErrAlreadyFollowing:
			utils.RespondWithError(w, http.StatusConflict, utils.StatusConflict, err.Error())
		default:
			utils.RespondInternalError(w)
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "You are now following this user.")
}

func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	friendID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid User ID")
		return
	}

	if err := h.service.Unfollow(r.Context(), actor.ID, friendID); err != nil {
		switch err {
		case ErrNotFollowing:
			utils.RespondWithError(w, http.StatusConflict, utils.StatusConflict, err.Error())
		default:
			utils.RespondInternalError(w)
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "You are no longer following this user.")
}

func (h *Handler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	userID := h.targetUser(r)

	followers, err := h.service.Followers(r.Context(), userID)
	if err != nil {
		utils.RespondInternalError(w)
		return
	}

	utils.RespondWithData(w, http.StatusOK, followers)
}

func (h *Handler) GetFollowings(w http.ResponseWriter, r *http.Request) {
	userID := h.targetUser(r)

	followings, err := h.service.Followings(r.Context(), userID)
	if err != nil {
		utils.RespondInternalError(w)
		return
	}

	utils.RespondWithData(w, http.StatusOK, followings)
}

// targetUser resolves the ?userId= query parameter, defaulting to the caller
func (h *Handler) targetUser(r *http.Request) int64 {
	actor, _ := auth.ActorFrom(r.Context())
	if idStr := r.URL.Query().Get("userId"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			return id
		}
	}
	return actor.ID
}
