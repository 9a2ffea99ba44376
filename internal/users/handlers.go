// internal/users/handlers.go

package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

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

// GetProfileStats returns upcoming-activity and follow counts for a user.
// With no {id} route variable the stats are the caller's own.
func (h *Handler) GetProfileStats(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	userID := actor.ID
	if idStr, ok := mux.Vars(r)["id"]; ok && idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid User ID")
			return
		}
		userID = id
	}

	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("categoryId"), 10, 64)

	cutoff, err := utils.CutoffOrNow(r.URL.Query().Get("date"), r.URL.Query().Get("time"), time.Now())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
		return
	}

	stats, err := h.service.ProfileStats(r.Context(), userID, cutoff, categoryID)
	if err != nil {
		if err == ErrUserNotFound {
			utils.RespondWithError(w, http.StatusNotFound, utils.StatusNotFound, "User not found.")
			return
		}
		utils.RespondInternalError(w)
		return
	}

	utils.RespondWithData(w, http.StatusOK, stats)
}

type UpdateLocationDTO struct {
	Latitude         float64 `json:"latitude" validate:"required,latitude"`
	Longitude        float64 `json:"longitude" validate:"required,longitude"`
	Name             string  `json:"location,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Country          string  `json:"country,omitempty"`
	State            string  `json:"state,omitempty"`
	City             string  `json:"city,omitempty"`
	Zipcode          string  `json:"zipcode,omitempty"`
	Address          string  `json:"address,omitempty"`
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	var dto UpdateLocationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
		return
	}

	loc := &geo.Location{
		Latitude:         dto.Latitude,
		Longitude:        dto.Longitude,
		Name:             dto.Name,
		FormattedAddress: dto.FormattedAddress,
		Country:          dto.Country,
		State:            dto.State,
		City:             dto.City,
		Zipcode:          dto.Zipcode,
		Address:          dto.Address,
	}
	if err := h.service.UpdateLocation(r.Context(), actor.ID, loc); err != nil {
		if errors.Is(err, geo.ErrInvalidLocation) {
			utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, err.Error())
			return
		}
		utils.RespondInternalError(w)
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "Location updated successfully.")
}

func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid User ID")
		return
	}

	if err := h.service.BlockUser(r.Context(), actor.ID, userID); err != nil {
		switch err {
		case ErrUserNotFound:
			utils.RespondWithError(w, http.StatusNotFound, utils.StatusNotFound, "User Not Found")
		case ErrAlreadyBlocked:
			utils.RespondWithError(w, http.StatusConflict, utils.StatusConflict, err.Error())
		default:
			utils.RespondInternalError(w)
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "User blocked successfully.")
}

func (h *Handler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFrom(r.Context())

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, utils.StatusInvalid, "Invalid User ID")
		return
	}

	if err := h.service.UnblockUser(r.Context(), actor.ID, userID); err != nil {
		switch err {
		case ErrNotBlocked:
			utils.RespondWithError(w, http.StatusConflict, utils.StatusConflict, err.Error())
		default:
			utils.RespondInternalError(w)
		}
		return
	}

	utils.RespondWithMessage(w, http.StatusOK, "User unblocked successfully.")
}
