package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/creator-deals/internal/usecase"
)

type CreatorHandler struct {
	UC *usecase.CreatorProfileUseCase
}

func NewCreatorHandler(uc *usecase.CreatorProfileUseCase) *CreatorHandler {
	return &CreatorHandler{UC: uc}
}

// SaveProfile (PUT /creators/{id}/profile) conclui ou edita o onboarding.
func (h *CreatorHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreatorProfileInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	out, err := h.UC.Save(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CreatorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	out, err := h.UC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
