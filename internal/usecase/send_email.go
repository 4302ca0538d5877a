package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/infra/mail"
	"github.com/xavierca1/creator-deals/internal/logger"
)

// SendEmailUseCase envia o email 1 ou o follow-up e registra o envio.
//
// Ordem: primeiro grava a transição com update condicional (quem ganhar o
// update é quem envia), depois entrega. Se a entrega falhar, a compensação
// restaura o registro anterior.
type SendEmailUseCase struct {
	Repo   entity.OutreachRepositoryInterface
	Sender EmailSender
	Now    Clock
}

func NewSendEmailUseCase(repo entity.OutreachRepositoryInterface, sender EmailSender) *SendEmailUseCase {
	return &SendEmailUseCase{Repo: repo, Sender: sender, Now: systemClock}
}

func (uc *SendEmailUseCase) Execute(ctx context.Context, input SendEmailInput) (*SendEmailOutput, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	o, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, loadError("outreach", err)
	}

	if err := uc.send(ctx, o, input.Number); err != nil {
		return nil, err
	}
	return newSendEmailOutput(o), nil
}

func (uc *SendEmailUseCase) send(ctx context.Context, o *entity.Outreach, number int) error {
	prev := o.Clone()

	draft := o.Email1
	if number == 2 {
		draft = o.Email2
	}
	if draft.IsEmpty() {
		return validationError(fmt.Sprintf("email %d draft is empty", number))
	}

	now := uc.Now()
	var err error
	if number == 1 {
		err = o.MarkEmail1Sent(now)
	} else {
		err = o.MarkEmail2Sent(now)
	}
	if err != nil {
		return transitionError(err)
	}

	msg := mail.OutreachMessage{
		OutreachID: o.ID,
		To:         o.ContactEmail,
		Subject:    draft.Subject,
		Body:       draft.Body,
		Number:     number,
	}

	if err := claimThenDeliver(ctx, uc.Repo, o, prev, "deliver_email", func(ctx context.Context) error {
		return uc.Sender.SendOutreach(ctx, msg)
	}); err != nil {
		return err
	}

	logger.WithOutreach(o.ID).WithField("number", number).Info("📧 email do outreach enviado")
	return nil
}

// sagaError: falha no claim já vem classificada; falha na entrega vira DELIVERY_FAILED.
func sagaError(err error) error {
	var step *StepError
	if errors.As(err, &step) && step.Step == "claim_transition" {
		return step.Err
	}
	return &TechnicalError{Code: CodeDelivery, Message: "email delivery failed: " + err.Error(), Err: err}
}

// SendFollowUpUseCase é chamado pelo consumidor da fila de follow-ups.
type SendFollowUpUseCase struct {
	Send *SendEmailUseCase
}

func NewSendFollowUpUseCase(send *SendEmailUseCase) *SendFollowUpUseCase {
	return &SendFollowUpUseCase{Send: send}
}

// Execute devolve sent=false quando o follow-up não está mais devido
// (respondido, desligado, já enviado ou job duplicado).
func (uc *SendFollowUpUseCase) Execute(ctx context.Context, outreachID string) (bool, error) {
	o, err := uc.Send.Repo.FindByID(ctx, outreachID)
	if errors.Is(err, entity.ErrNotFound) {
		logger.WithOutreach(outreachID).Info("⏭️ outreach removido, descartando follow-up")
		return false, nil
	}
	if err != nil {
		return false, loadError("outreach", err)
	}

	if !o.FollowUpDue(uc.Send.Now()) {
		logger.WithOutreach(o.ID).WithField("status", o.Status).Info("⏭️ follow-up não é mais devido, ignorando")
		return false, nil
	}

	// sem rascunho o job falharia para sempre: desliga o auto-send e segue
	if o.Email2.IsEmpty() {
		logger.WithOutreach(o.ID).Warn("⚠️ rascunho do email 2 vazio, desligando follow-up automático")
		o.SetAutoSendFollowUp(false, uc.Send.Now())
		if _, err := uc.Send.Repo.UpdateIfStatus(ctx, o, o.Status); err != nil {
			return false, dbError("failed to disable auto-send", err)
		}
		return false, nil
	}

	if err := uc.Send.send(ctx, o, 2); err != nil {
		// outro envio ganhou a corrida
		if ErrorCode(err) == CodeConflict {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type SendProposalUseCase struct {
	Repo   entity.OutreachRepositoryInterface
	Sender EmailSender
	Now    Clock
}

func NewSendProposalUseCase(repo entity.OutreachRepositoryInterface, sender EmailSender) *SendProposalUseCase {
	return &SendProposalUseCase{Repo: repo, Sender: sender, Now: systemClock}
}

func (uc *SendProposalUseCase) Execute(ctx context.Context, input SendProposalInput) (*entity.Outreach, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	o, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, loadError("outreach", err)
	}
	prev := o.Clone()

	if err := o.MarkProposalSent(uc.Now()); err != nil {
		return nil, transitionError(err)
	}

	msg := mail.ProposalMessage{
		OutreachID: o.ID,
		To:         o.ContactEmail,
		BrandName:  o.BrandName,
		Proposal:   *o.Proposal,
		Note:       input.Note,
	}

	if err := claimThenDeliver(ctx, uc.Repo, o, prev, "deliver_proposal", func(ctx context.Context) error {
		return uc.Sender.SendProposal(ctx, msg)
	}); err != nil {
		return nil, err
	}

	logger.WithOutreach(o.ID).Info("📨 proposta enviada")
	return o, nil
}
