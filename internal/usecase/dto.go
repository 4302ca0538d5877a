package usecase

import (
	"time"

	"github.com/xavierca1/creator-deals/internal/entity"
)

type StartOutreachInput struct {
	CreatorID          string `json:"creator_id" validate:"required"`
	BrandID            string `json:"brand_id" validate:"omitempty,uuid"`
	BrandName          string `json:"brand_name" validate:"required_without=BrandID,max=200"`
	ContactEmail       string `json:"contact_email" validate:"omitempty,email"`
	ProductDescription string `json:"product_description" validate:"max=4000"`
	AutoSendFollowUp   bool   `json:"auto_send_follow_up"`
}

type UpdateDraftsInput struct {
	ID               string             `json:"-" validate:"required"`
	Email1           *entity.EmailDraft `json:"email1,omitempty"`
	Email2           *entity.EmailDraft `json:"email2,omitempty"`
	FitJustification *string            `json:"fit_justification,omitempty"`
}

type TransitionInput struct {
	ID     string `json:"-" validate:"required"`
	Action string `json:"action" validate:"required"`
}

type SetAutoSendInput struct {
	ID      string `json:"-" validate:"required"`
	Enabled bool   `json:"enabled"`
}

type SendEmailInput struct {
	ID     string `json:"-" validate:"required"`
	Number int    `json:"number" validate:"email_number"`
}

// SendEmailOutput é o que o endpoint de envio devolve: os timestamps atualizados.
type SendEmailOutput struct {
	ID           string                `json:"id"`
	Status       entity.OutreachStatus `json:"status"`
	Email1SentAt *time.Time            `json:"email1_sent_at,omitempty"`
	Email2SentAt *time.Time            `json:"email2_sent_at,omitempty"`
	Email2DueAt  *time.Time            `json:"email2_due_at,omitempty"`
}

func newSendEmailOutput(o *entity.Outreach) *SendEmailOutput {
	return &SendEmailOutput{
		ID:           o.ID,
		Status:       o.Status,
		Email1SentAt: o.Email1SentAt,
		Email2SentAt: o.Email2SentAt,
		Email2DueAt:  o.Email2DueAt,
	}
}

type SendProposalInput struct {
	ID   string `json:"-" validate:"required"`
	Note string `json:"note" validate:"max=2000"`
}

type BrandInput struct {
	CreatorID      string   `json:"creator_id" validate:"required"`
	Name           string   `json:"name" validate:"required,max=200"`
	Website        string   `json:"website" validate:"omitempty,url"`
	ContactName    string   `json:"contact_name" validate:"max=200"`
	ContactEmail   string   `json:"contact_email" validate:"omitempty,email"`
	Category       string   `json:"category" validate:"max=100"`
	Tags           []string `json:"tags" validate:"max=20,dive,max=40"`
	Notes          string   `json:"notes" validate:"max=4000"`
	DealValueCents int64    `json:"deal_value_cents" validate:"gte=0"`
}

type MoveBrandStageInput struct {
	ID       string `json:"-" validate:"required"`
	Stage    string `json:"stage" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

type CreateCampaignInput struct {
	CreatorID string               `json:"creator_id" validate:"required"`
	BrandID   string               `json:"brand_id" validate:"required,uuid"`
	Name      string               `json:"name" validate:"required,max=200"`
	FeeCents  int64                `json:"fee_cents" validate:"gte=0"`
	StartDate *time.Time           `json:"start_date,omitempty"`
	EndDate   *time.Time           `json:"end_date,omitempty"`
	Brief     entity.CampaignBrief `json:"brief"`
}

type AddDeliverableInput struct {
	CampaignID  string     `json:"-" validate:"required"`
	Type        string     `json:"type" validate:"required,max=100"`
	Description string     `json:"description" validate:"max=2000"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

type CreatorProfileInput struct {
	ID           string          `json:"-" validate:"required"`
	DisplayName  string          `json:"display_name" validate:"required,max=120"`
	Handle       string          `json:"handle" validate:"required,max=60"`
	Niche        string          `json:"niche" validate:"max=120"`
	Platforms    []string        `json:"platforms" validate:"max=10,dive,max=40"`
	AudienceSize int64           `json:"audience_size" validate:"gte=0"`
	RateCard     entity.RateCard `json:"rate_card"`
	Bio          string          `json:"bio" validate:"max=2000"`
}

type CreatorProfileOutput struct {
	*entity.CreatorProfile
	ParsedRateCard entity.RateCard `json:"parsed_rate_card"`
}
