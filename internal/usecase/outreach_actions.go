package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/logger"
)

var errStaleRecord = errors.New("outreach was modified concurrently")

func conflictError() error {
	return &DomainError{Code: CodeConflict, Message: "outreach changed since it was loaded, reload and retry", Err: errStaleRecord}
}

// saveTransition grava o registro só se o status no banco ainda for o anterior.
func saveTransition(ctx context.Context, repo entity.OutreachRepositoryInterface, o *entity.Outreach, from entity.OutreachStatus) error {
	ok, err := repo.UpdateIfStatus(ctx, o, from)
	if err != nil {
		return dbError("failed to save outreach", err)
	}
	if !ok {
		return conflictError()
	}
	return nil
}

// TransitionOutreachUseCase aplica as ações que só registram o fato
// (email enviado fora do sistema, resposta recebida, archive/unarchive).
type TransitionOutreachUseCase struct {
	Repo entity.OutreachRepositoryInterface
	Now  Clock
}

func NewTransitionOutreachUseCase(repo entity.OutreachRepositoryInterface) *TransitionOutreachUseCase {
	return &TransitionOutreachUseCase{Repo: repo, Now: systemClock}
}

func (uc *TransitionOutreachUseCase) Execute(ctx context.Context, input TransitionInput) (*entity.Outreach, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	o, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, loadError("outreach", err)
	}

	from := o.Status
	if err := o.Apply(input.Action, uc.Now()); err != nil {
		return nil, transitionError(err)
	}

	if err := saveTransition(ctx, uc.Repo, o, from); err != nil {
		return nil, err
	}

	logger.WithOutreach(o.ID).WithFields(logrus.Fields{
		"action": input.Action,
		"from":   from,
		"to":     o.Status,
	}).Info("🔁 status do outreach alterado")
	return o, nil
}

type SetAutoSendUseCase struct {
	Repo entity.OutreachRepositoryInterface
	Now  Clock
}

func NewSetAutoSendUseCase(repo entity.OutreachRepositoryInterface) *SetAutoSendUseCase {
	return &SetAutoSendUseCase{Repo: repo, Now: systemClock}
}

func (uc *SetAutoSendUseCase) Execute(ctx context.Context, input SetAutoSendInput) (*entity.Outreach, error) {
	o, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, loadError("outreach", err)
	}

	o.SetAutoSendFollowUp(input.Enabled, uc.Now())
	if err := saveTransition(ctx, uc.Repo, o, o.Status); err != nil {
		return nil, err
	}
	return o, nil
}

type UpdateDraftsUseCase struct {
	Repo entity.OutreachRepositoryInterface
	Now  Clock
}

func NewUpdateDraftsUseCase(repo entity.OutreachRepositoryInterface) *UpdateDraftsUseCase {
	return &UpdateDraftsUseCase{Repo: repo, Now: systemClock}
}

// Execute edita os rascunhos. Um email já enviado não pode mais ser editado.
func (uc *UpdateDraftsUseCase) Execute(ctx context.Context, input UpdateDraftsInput) (*entity.Outreach, error) {
	o, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, loadError("outreach", err)
	}
	if o.Status == entity.StatusArchived {
		return nil, transitionError(&entity.TransitionError{Action: "edit drafts", From: o.Status})
	}

	if input.Email1 != nil {
		if o.Email1SentAt != nil {
			return nil, transitionError(&entity.TransitionError{Action: "edit email 1", From: o.Status})
		}
		o.Email1 = *input.Email1
	}
	if input.Email2 != nil {
		if o.Email2SentAt != nil {
			return nil, transitionError(&entity.TransitionError{Action: "edit email 2", From: o.Status})
		}
		o.Email2 = *input.Email2
	}
	if input.FitJustification != nil {
		o.FitJustification = *input.FitJustification
	}
	o.UpdatedAt = uc.Now()

	if err := saveTransition(ctx, uc.Repo, o, o.Status); err != nil {
		return nil, err
	}
	return o, nil
}
