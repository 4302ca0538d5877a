package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/creator-deals/internal/usecase"
)

type CampaignHandler struct {
	UC *usecase.CampaignUseCase
}

func NewCampaignHandler(uc *usecase.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{UC: uc}
}

type statusRequest struct {
	Status string `json:"status"`
}

type postedRequest struct {
	URL string `json:"url"`
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCampaignInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.UC.List(r.Context(), r.URL.Query().Get("creator_id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.UC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CampaignHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.UC.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CampaignHandler) AddDeliverable(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddDeliverableInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.CampaignID = chi.URLParam(r, "id")

	d, err := h.UC.AddDeliverable(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *CampaignHandler) UpdateDeliverableStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.UC.UpdateDeliverableStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *CampaignHandler) MarkPosted(w http.ResponseWriter, r *http.Request) {
	var req postedRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.UC.MarkDeliverablePosted(r.Context(), chi.URLParam(r, "id"), req.URL)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
