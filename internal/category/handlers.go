package category

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linkupapp/linkup-backend/internal/common/utils"
)

type Handler struct {
	repo   Repository
	images *ImageResolver
}

func NewHandler(repo Repository, images *ImageResolver) *Handler {
	return &Handler{repo: repo, images: images}
}

type categoryItem struct {
	Category
	Image string `json:"image"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.repo.List(r.Context())
	if err != nil {
		utils.RespondInternalError(w)
		return
	}

	items := make([]categoryItem, 0, len(cats))
	for _, cat := range cats {
		items = append(items, categoryItem{Category: cat, Image: h.images.URL(cat.CategoryID)})
	}

	utils.RespondWithData(w, http.StatusOK, items)
}

func RegisterRoutes(router *mux.Router, handler *Handler) {
	router.HandleFunc("/api/v1/categories", handler.ListCategories).Methods("GET")
}
