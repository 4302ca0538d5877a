package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FollowUpDelay é o intervalo entre o email 1 e o follow-up automático.
// Soma ingênua de 168h, sem ajuste de horário de verão.
const FollowUpDelay = 7 * 24 * time.Hour

type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (d EmailDraft) IsEmpty() bool {
	return strings.TrimSpace(d.Subject) == "" && strings.TrimSpace(d.Body) == ""
}

// Outreach representa uma thread de pitch para uma marca.
type Outreach struct {
	ID                 string     `json:"id"`
	CreatorID          string     `json:"creator_id"`
	BrandID            string     `json:"brand_id,omitempty"`
	BrandName          string     `json:"brand_name"`
	ContactEmail       string     `json:"contact_email"`
	ProductDescription string     `json:"product_description"`
	FitJustification   string     `json:"fit_justification"`
	Email1             EmailDraft `json:"email1"`
	Email2             EmailDraft `json:"email2"`
	Email1SentAt       *time.Time `json:"email1_sent_at,omitempty"`
	Email2SentAt       *time.Time `json:"email2_sent_at,omitempty"`
	Email2DueAt        *time.Time `json:"email2_due_at,omitempty"`
	AutoSendFollowUp   bool       `json:"auto_send_follow_up"`
	Proposal           *Proposal  `json:"proposal,omitempty"`

	RepliedAt      *time.Time     `json:"replied_at,omitempty"`
	ArchivedAt     *time.Time     `json:"archived_at,omitempty"`
	ProposalSentAt *time.Time     `json:"proposal_sent_at,omitempty"`
	Status         OutreachStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewOutreach cria o registro da ação "start outreach": só marca, contato e produto.
func NewOutreach(creatorID, brandName, contactEmail, product string) (*Outreach, error) {
	now := time.Now().UTC()
	o := &Outreach{
		ID:                 uuid.New().String(),
		CreatorID:          creatorID,
		BrandName:          strings.TrimSpace(brandName),
		ContactEmail:       strings.TrimSpace(contactEmail),
		ProductDescription: strings.TrimSpace(product),
		Status:             StatusDraft,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Outreach) Validate() error {
	if o.CreatorID == "" {
		return errors.New("creator_id is required")
	}
	if o.BrandName == "" {
		return errors.New("brand_name is required")
	}
	if o.ContactEmail == "" {
		return errors.New("contact_email is required")
	}
	if !o.Status.IsValid() {
		return errors.New("status is invalid")
	}
	return nil
}

// Clone devolve uma cópia profunda, usada como snapshot para compensação.
func (o *Outreach) Clone() *Outreach {
	c := *o
	c.Email1SentAt = cloneTime(o.Email1SentAt)
	c.Email2SentAt = cloneTime(o.Email2SentAt)
	c.Email2DueAt = cloneTime(o.Email2DueAt)
	c.RepliedAt = cloneTime(o.RepliedAt)
	c.ArchivedAt = cloneTime(o.ArchivedAt)
	c.ProposalSentAt = cloneTime(o.ProposalSentAt)
	if o.Proposal != nil {
		p := o.Proposal.Clone()
		c.Proposal = &p
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

type OutreachFilter struct {
	CreatorID       string
	Status          OutreachStatus
	IncludeArchived bool
}

type OutreachRepositoryInterface interface {
	Create(ctx context.Context, o *Outreach) error
	FindByID(ctx context.Context, id string) (*Outreach, error)
	List(ctx context.Context, filter OutreachFilter) ([]*Outreach, error)
	Update(ctx context.Context, o *Outreach) error
	// UpdateIfStatus persiste o registro apenas se o status no banco ainda for expected.
	// Retorna false quando outra escrita chegou antes.
	UpdateIfStatus(ctx context.Context, o *Outreach, expected OutreachStatus) (bool, error)
	FindDueFollowUps(ctx context.Context, now time.Time, limit int) ([]*Outreach, error)
	Delete(ctx context.Context, id string) error
}
