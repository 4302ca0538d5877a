package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PipelineStage é o estágio do deal no kanban de marcas. Independente do
// status de Outreach: os dois não são sincronizados.
type PipelineStage string

const (
	StageResearch         PipelineStage = "research"
	StageContacted        PipelineStage = "contacted"
	StageReplied          PipelineStage = "replied"
	StageNegotiating      PipelineStage = "negotiating"
	StageProposalSent     PipelineStage = "proposal_sent"
	StageContractSigned   PipelineStage = "contract_signed"
	StageInProduction     PipelineStage = "in_production"
	StageContentSubmitted PipelineStage = "content_submitted"
	StageApproved         PipelineStage = "approved"
	StagePosted           PipelineStage = "posted"
	StageInvoiced         PipelineStage = "invoiced"
	StagePaid             PipelineStage = "paid"
	StageLost             PipelineStage = "lost"
)

var pipelineStages = []PipelineStage{
	StageResearch, StageContacted, StageReplied, StageNegotiating, StageProposalSent,
	StageContractSigned, StageInProduction, StageContentSubmitted, StageApproved,
	StagePosted, StageInvoiced, StagePaid, StageLost,
}

// PipelineStages retorna as colunas do kanban na ordem de exibição.
func PipelineStages() []PipelineStage {
	out := make([]PipelineStage, len(pipelineStages))
	copy(out, pipelineStages)
	return out
}

func ParsePipelineStage(s string) (PipelineStage, error) {
	st := PipelineStage(strings.TrimSpace(s))
	if !st.IsValid() {
		return "", fmt.Errorf("unknown pipeline stage %q", s)
	}
	return st, nil
}

func (s PipelineStage) IsValid() bool {
	for _, v := range pipelineStages {
		if v == s {
			return true
		}
	}
	return false
}

func (s PipelineStage) IsClosed() bool {
	return s == StagePaid || s == StageLost
}

type Brand struct {
	ID             string        `json:"id"`
	CreatorID      string        `json:"creator_id"`
	Name           string        `json:"name"`
	Website        string        `json:"website,omitempty"`
	ContactName    string        `json:"contact_name,omitempty"`
	ContactEmail   string        `json:"contact_email,omitempty"`
	Category       string        `json:"category,omitempty"`
	Tags           []string      `json:"tags"`
	Notes          string        `json:"notes,omitempty"`
	Stage          PipelineStage `json:"stage"`
	DealValueCents int64         `json:"deal_value_cents"`
	Position       int           `json:"position"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewBrand(creatorID, name string) (*Brand, error) {
	now := time.Now().UTC()
	b := &Brand{
		ID:        uuid.New().String(),
		CreatorID: creatorID,
		Name:      strings.TrimSpace(name),
		Tags:      []string{},
		Stage:     StageResearch,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Brand) Validate() error {
	if b.CreatorID == "" {
		return errors.New("creator_id is required")
	}
	if b.Name == "" {
		return errors.New("name is required")
	}
	if !b.Stage.IsValid() {
		return errors.New("stage is invalid")
	}
	if b.DealValueCents < 0 {
		return errors.New("deal_value_cents must not be negative")
	}
	return nil
}

// MoveTo é a ação de drag-and-drop do kanban.
func (b *Brand) MoveTo(stage PipelineStage, position int, now time.Time) error {
	if !stage.IsValid() {
		return fmt.Errorf("unknown pipeline stage %q", stage)
	}
	if position < 0 {
		position = 0
	}
	b.Stage = stage
	b.Position = position
	b.UpdatedAt = now
	return nil
}

type BrandRepositoryInterface interface {
	Create(ctx context.Context, b *Brand) error
	FindByID(ctx context.Context, id string) (*Brand, error)
	ListByCreator(ctx context.Context, creatorID string, stage PipelineStage) ([]*Brand, error)
	Update(ctx context.Context, b *Brand) error
	Delete(ctx context.Context, id string) error
}
