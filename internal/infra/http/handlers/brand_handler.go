package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/creator-deals/internal/usecase"
)

type BrandHandler struct {
	UC *usecase.BrandUseCase
}

func NewBrandHandler(uc *usecase.BrandUseCase) *BrandHandler {
	return &BrandHandler{UC: uc}
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.BrandInput
	if !decodeJSON(w, r, &input) {
		return
	}
	b, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// List (GET /brands?creator_id=&stage=)
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	brands, err := h.UC.List(r.Context(), q.Get("creator_id"), q.Get("stage"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.UC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.BrandInput
	if !decodeJSON(w, r, &input) {
		return
	}
	b, err := h.UC.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveStage (PATCH /brands/{id}/stage)
func (h *BrandHandler) MoveStage(w http.ResponseWriter, r *http.Request) {
	var input usecase.MoveBrandStageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	b, err := h.UC.MoveStage(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
