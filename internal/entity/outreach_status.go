package entity

import (
	"fmt"
	"time"
)

type OutreachStatus string

const (
	StatusDraft        OutreachStatus = "draft"
	StatusSent         OutreachStatus = "sent"
	StatusFollowedUp   OutreachStatus = "followed_up"
	StatusReplied      OutreachStatus = "replied"
	StatusProposalSent OutreachStatus = "proposal_sent"
	StatusArchived     OutreachStatus = "archived"
)

var outreachStatuses = []OutreachStatus{
	StatusDraft, StatusSent, StatusFollowedUp, StatusReplied, StatusProposalSent, StatusArchived,
}

func OutreachStatuses() []OutreachStatus {
	out := make([]OutreachStatus, len(outreachStatuses))
	copy(out, outreachStatuses)
	return out
}

func ParseOutreachStatus(s string) (OutreachStatus, error) {
	st := OutreachStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown outreach status %q", s)
	}
	return st, nil
}

func (s OutreachStatus) IsValid() bool {
	for _, v := range outreachStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Email1Sent indica os status em que email1SentAt precisa estar preenchido.
func (s OutreachStatus) Email1Sent() bool {
	switch s {
	case StatusSent, StatusFollowedUp, StatusReplied, StatusProposalSent:
		return true
	}
	return false
}

// Actions aceitas pela política. Os nomes são os mesmos usados na rota
// POST /outreaches/{id}/actions/{action}.
const (
	ActionMarkEmail1Sent   = "mark-email1-sent"
	ActionMarkEmail2Sent   = "mark-email2-sent"
	ActionMarkReplied      = "mark-replied"
	ActionMarkProposalSent = "mark-proposal-sent"
	ActionArchive          = "archive"
	ActionUnarchive        = "unarchive"
)

func reject(action string, from OutreachStatus) error {
	return &TransitionError{Action: action, From: from}
}

// MarkEmail1Sent: draft -> sent. Não é idempotente, quem chama verifica o status.
func (o *Outreach) MarkEmail1Sent(now time.Time) error {
	if o.Status != StatusDraft {
		return reject(ActionMarkEmail1Sent, o.Status)
	}
	sent := now
	o.Email1SentAt = &sent
	if o.AutoSendFollowUp {
		due := now.Add(FollowUpDelay)
		o.Email2DueAt = &due
	} else {
		o.Email2DueAt = nil
	}
	o.Status = StatusSent
	o.UpdatedAt = now
	return nil
}

// MarkEmail2Sent: sent -> followed_up.
func (o *Outreach) MarkEmail2Sent(now time.Time) error {
	if o.Status != StatusSent {
		return reject(ActionMarkEmail2Sent, o.Status)
	}
	sent := now
	o.Email2SentAt = &sent
	o.Status = StatusFollowedUp
	o.UpdatedAt = now
	return nil
}

// MarkReplied: sent|followed_up -> replied.
func (o *Outreach) MarkReplied(now time.Time) error {
	if o.Status != StatusSent && o.Status != StatusFollowedUp {
		return reject(ActionMarkReplied, o.Status)
	}
	replied := now
	o.RepliedAt = &replied
	o.Status = StatusReplied
	o.UpdatedAt = now
	return nil
}

// MarkProposalSent: replied -> proposal_sent. Reentrante em proposal_sent (reenvio).
func (o *Outreach) MarkProposalSent(now time.Time) error {
	if o.Status != StatusReplied && o.Status != StatusProposalSent {
		return reject(ActionMarkProposalSent, o.Status)
	}
	if o.Proposal == nil {
		return reject(ActionMarkProposalSent, o.Status)
	}
	sent := now
	o.ProposalSentAt = &sent
	o.Status = StatusProposalSent
	o.UpdatedAt = now
	return nil
}

// Archive guarda só archivedAt. O status anterior não é persistido,
// ele é reconstruído por PriorStatus.
func (o *Outreach) Archive(now time.Time) error {
	if o.Status == StatusArchived {
		return reject(ActionArchive, o.Status)
	}
	archived := now
	o.ArchivedAt = &archived
	o.Status = StatusArchived
	o.UpdatedAt = now
	return nil
}

// Unarchive restaura o status derivado dos timestamps. archivedAt fica
// como marca histórica.
func (o *Outreach) Unarchive(now time.Time) error {
	if o.Status != StatusArchived {
		return reject(ActionUnarchive, o.Status)
	}
	o.Status = o.PriorStatus()
	o.UpdatedAt = now
	return nil
}

// PriorStatus deriva o status a partir dos timestamps preenchidos.
// Precedência: proposalSentAt > repliedAt > email2SentAt > email1SentAt > draft.
func (o *Outreach) PriorStatus() OutreachStatus {
	switch {
	case o.ProposalSentAt != nil:
		return StatusProposalSent
	case o.RepliedAt != nil:
		return StatusReplied
	case o.Email2SentAt != nil:
		return StatusFollowedUp
	case o.Email1SentAt != nil:
		return StatusSent
	default:
		return StatusDraft
	}
}

// SetAutoSendFollowUp liga/desliga o follow-up automático. Ao ligar depois
// do email 1, agenda o vencimento se ainda não houver um.
func (o *Outreach) SetAutoSendFollowUp(enabled bool, now time.Time) {
	o.AutoSendFollowUp = enabled
	if enabled && o.Email1SentAt != nil && o.Email2DueAt == nil {
		due := o.Email1SentAt.Add(FollowUpDelay)
		o.Email2DueAt = &due
	}
	o.UpdatedAt = now
}

// FollowUpDue diz se o job externo deve disparar o email 2 agora.
func (o *Outreach) FollowUpDue(now time.Time) bool {
	return o.Status == StatusSent &&
		o.AutoSendFollowUp &&
		o.Email2SentAt == nil &&
		o.Email2DueAt != nil &&
		!o.Email2DueAt.After(now)
}

// Apply despacha uma ação nomeada para a transição correspondente.
func (o *Outreach) Apply(action string, now time.Time) error {
	switch action {
	case ActionMarkEmail1Sent:
		return o.MarkEmail1Sent(now)
	case ActionMarkEmail2Sent:
		return o.MarkEmail2Sent(now)
	case ActionMarkReplied:
		return o.MarkReplied(now)
	case ActionMarkProposalSent:
		return o.MarkProposalSent(now)
	case ActionArchive:
		return o.Archive(now)
	case ActionUnarchive:
		return o.Unarchive(now)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
