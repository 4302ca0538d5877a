package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/creator-deals/internal/infra/http/middleware"
	"github.com/xavierca1/creator-deals/internal/usecase"
)

type OutreachHandler struct {
	StartUC       *usecase.StartOutreachUseCase
	QueryUC       *usecase.OutreachQueryUseCase
	DraftsUC      *usecase.UpdateDraftsUseCase
	TransitionUC  *usecase.TransitionOutreachUseCase
	AutoSendUC    *usecase.SetAutoSendUseCase
	SendEmailUC   *usecase.SendEmailUseCase
	SendPropUC    *usecase.SendProposalUseCase
	GenEmailsUC   *usecase.GenerateEmailsUseCase
	GenProposalUC *usecase.GenerateProposalUseCase
}

func (h *OutreachHandler) Start(w http.ResponseWriter, r *http.Request) {
	var input usecase.StartOutreachInput
	if !decodeJSON(w, r, &input) {
		return
	}

	o, err := h.StartUC.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// List (GET /outreaches?creator_id=&status=&include_archived=)
func (h *OutreachHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includeArchived, _ := strconv.ParseBool(q.Get("include_archived"))

	list, err := h.QueryUC.List(r.Context(), usecase.ListOutreachesInput{
		CreatorID:       q.Get("creator_id"),
		Status:          q.Get("status"),
		IncludeArchived: includeArchived,
	})
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OutreachHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.QueryUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OutreachHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.QueryUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OutreachHandler) UpdateDrafts(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateDraftsInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	o, err := h.DraftsUC.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// SendEmail (POST /outreaches/{id}/emails/{number}/send)
func (h *OutreachHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "email number must be 1 or 2")
		return
	}

	out, err := h.SendEmailUC.Execute(r.Context(), usecase.SendEmailInput{ID: chi.URLParam(r, "id"), Number: number})
	if err != nil {
		if usecase.ErrorCode(err) == usecase.CodeDelivery {
			middleware.RecordIntegrationError("smtp")
		}
		writeUsecaseError(w, r, err)
		return
	}

	if number == 1 {
		middleware.RecordTransition("send-email1")
	} else {
		middleware.RecordTransition("send-email2")
	}
	writeJSON(w, http.StatusOK, out)
}

// Transition (POST /outreaches/{id}/actions/{action})
func (h *OutreachHandler) Transition(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	o, err := h.TransitionUC.Execute(r.Context(), usecase.TransitionInput{ID: chi.URLParam(r, "id"), Action: action})
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	middleware.RecordTransition(action)
	writeJSON(w, http.StatusOK, o)
}

func (h *OutreachHandler) SetAutoSend(w http.ResponseWriter, r *http.Request) {
	var input usecase.SetAutoSendInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	o, err := h.AutoSendUC.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OutreachHandler) GenerateEmails(w http.ResponseWriter, r *http.Request) {
	o, err := h.GenEmailsUC.Execute(r.Context(), chi.URLParam(r, "id"))
	recordGeneration("emails", err)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OutreachHandler) GenerateProposal(w http.ResponseWriter, r *http.Request) {
	o, err := h.GenProposalUC.Execute(r.Context(), chi.URLParam(r, "id"))
	recordGeneration("proposal", err)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// SendProposal aceita corpo vazio; a nota é opcional.
func (h *OutreachHandler) SendProposal(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendProposalInput
	if r.ContentLength != 0 && !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")

	o, err := h.SendPropUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.ErrorCode(err) == usecase.CodeDelivery {
			middleware.RecordIntegrationError("smtp")
		}
		writeUsecaseError(w, r, err)
		return
	}
	middleware.RecordTransition("send-proposal")
	writeJSON(w, http.StatusOK, o)
}

func recordGeneration(kind string, err error) {
	switch usecase.ErrorCode(err) {
	case "":
		if err == nil {
			middleware.RecordGeneration(kind, "ok")
			return
		}
		middleware.RecordGeneration(kind, "error")
	case usecase.CodeMalformed:
		middleware.RecordGeneration(kind, "malformed")
		middleware.RecordIntegrationError("openai")
	case usecase.CodeGeneration:
		middleware.RecordGeneration(kind, "failed")
		middleware.RecordIntegrationError("openai")
	default:
		middleware.RecordGeneration(kind, "rejected")
	}
}
