package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/infra/integration/openai"
	"github.com/xavierca1/creator-deals/internal/infra/mail"
	"github.com/xavierca1/creator-deals/internal/infra/queue"
)

// MockOutreachRepository
type MockOutreachRepository struct {
	mock.Mock
}

func (m *MockOutreachRepository) Create(ctx context.Context, o *entity.Outreach) error {
	return m.Called(ctx, o).Error(0)
}

// FindByID devolve uma cópia para o usecase não mexer no objeto do teste.
func (m *MockOutreachRepository) FindByID(ctx context.Context, id string) (*entity.Outreach, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Outreach).Clone(), args.Error(1)
}

func (m *MockOutreachRepository) List(ctx context.Context, f entity.OutreachFilter) ([]*entity.Outreach, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Outreach), args.Error(1)
}

func (m *MockOutreachRepository) Update(ctx context.Context, o *entity.Outreach) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOutreachRepository) UpdateIfStatus(ctx context.Context, o *entity.Outreach, expected entity.OutreachStatus) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOutreachRepository) FindDueFollowUps(ctx context.Context, now time.Time, limit int) ([]*entity.Outreach, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Outreach), args.Error(1)
}

func (m *MockOutreachRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockBrandRepository
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) Create(ctx context.Context, b *entity.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBrandRepository) FindByID(ctx context.Context, id string) (*entity.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	b := *args.Get(0).(*entity.Brand)
	return &b, args.Error(1)
}

func (m *MockBrandRepository) ListByCreator(ctx context.Context, creatorID string, stage entity.PipelineStage) ([]*entity.Brand, error) {
	args := m.Called(ctx, creatorID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Brand), args.Error(1)
}

func (m *MockBrandRepository) Update(ctx context.Context, b *entity.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockCampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Campaign, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignRepository) CreateDeliverable(ctx context.Context, d *entity.Deliverable) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockCampaignRepository) FindDeliverableByID(ctx context.Context, id string) (*entity.Deliverable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deliverable), args.Error(1)
}

func (m *MockCampaignRepository) ListDeliverables(ctx context.Context, campaignID string) ([]*entity.Deliverable, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Deliverable), args.Error(1)
}

func (m *MockCampaignRepository) UpdateDeliverable(ctx context.Context, d *entity.Deliverable) error {
	return m.Called(ctx, d).Error(0)
}

// MockCreatorRepository
type MockCreatorRepository struct {
	mock.Mock
}

func (m *MockCreatorRepository) Upsert(ctx context.Context, p *entity.CreatorProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCreatorRepository) FindByID(ctx context.Context, id string) (*entity.CreatorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

// MockEmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendOutreach(ctx context.Context, msg mail.OutreachMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockEmailSender) SendProposal(ctx context.Context, msg mail.ProposalMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// MockGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateOutreachEmails(ctx context.Context, in openai.PitchContext) (*entity.EmailPair, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.EmailPair), args.Error(1)
}

func (m *MockGenerator) GenerateProposal(ctx context.Context, in openai.PitchContext) (*entity.Proposal, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Proposal), args.Error(1)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishFollowUp(ctx context.Context, job queue.FollowUpJob) error {
	return m.Called(ctx, job).Error(0)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func draftOutreach() *entity.Outreach {
	return &entity.Outreach{
		ID:           "o-1",
		CreatorID:    "c-1",
		BrandName:    "Glow",
		ContactEmail: "partners@glow.co",
		Email1:       entity.EmailDraft{Subject: "Hi Glow", Body: "Pitch"},
		Email2:       entity.EmailDraft{Subject: "Re: Hi Glow", Body: "Bump"},
		Status:       entity.StatusDraft,
		CreatedAt:    fixedNow.Add(-time.Hour),
		UpdatedAt:    fixedNow.Add(-time.Hour),
	}
}

func sentOutreach(autoSend bool, sentAt time.Time) *entity.Outreach {
	o := draftOutreach()
	o.AutoSendFollowUp = autoSend
	_ = o.MarkEmail1Sent(sentAt)
	return o
}

func validProposal() *entity.Proposal {
	return &entity.Proposal{
		Title:        "Glow x Maya",
		Summary:      "Summer launch",
		Concept:      "Morning routine",
		Deliverables: []entity.ProposalDeliverable{{Type: "reel", Quantity: 2}},
	}
}
