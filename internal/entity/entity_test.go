package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutreachValidation(t *testing.T) {
	_, err := NewOutreach("", "Brand", "a@b.com", "")
	assert.EqualError(t, err, "creator_id is required")

	_, err = NewOutreach("c1", "  ", "a@b.com", "")
	assert.EqualError(t, err, "brand_name is required")

	o, err := NewOutreach("c1", " Brand ", " a@b.com ", "Product")
	require.NoError(t, err)
	assert.Equal(t, "Brand", o.BrandName)
	assert.Equal(t, StatusDraft, o.Status)
	assert.Nil(t, o.Email1SentAt)
	assert.NotEmpty(t, o.ID)
}

func TestProposalValidateRejectsWholesale(t *testing.T) {
	p := &Proposal{Title: "Summer drop", Concept: "GRWM", Deliverables: []ProposalDeliverable{{Quantity: 2}}}

	err := p.Validate()
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "summary")
	assert.Contains(t, err.Error(), "deliverables[0].type")

	p.Summary = "x"
	p.Deliverables[0].Type = "Reel"
	assert.NoError(t, p.Validate())
}

func TestEmailPairValidate(t *testing.T) {
	e := &EmailPair{Email1: EmailDraft{Subject: "Hi", Body: "..."}}
	assert.ErrorIs(t, e.Validate(), ErrMalformedResponse)
}

func TestBrandMoveTo(t *testing.T) {
	b, err := NewBrand("c1", "Oatly")
	require.NoError(t, err)
	assert.Equal(t, StageResearch, b.Stage)
	assert.Len(t, PipelineStages(), 13)

	now := time.Now()
	require.NoError(t, b.MoveTo(StageNegotiating, -3, now))
	assert.Equal(t, StageNegotiating, b.Stage)
	assert.Equal(t, 0, b.Position)

	assert.Error(t, b.MoveTo("done", 1, now))
	assert.Equal(t, StageNegotiating, b.Stage)
	assert.True(t, StageLost.IsClosed())
	assert.False(t, StageInvoiced.IsClosed())
}

func TestDeliverablePostedAndOverdue(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	d, err := NewDeliverable("camp-1", "Instagram Reel", "", &due)
	require.NoError(t, err)

	assert.True(t, d.Overdue(due.Add(time.Hour)))
	assert.Error(t, d.SetStatus(DeliverablePosted, due))
	assert.Error(t, d.MarkPosted("  ", due))

	require.NoError(t, d.MarkPosted("https://instagram.com/p/abc", due.Add(time.Hour)))
	assert.Equal(t, DeliverablePosted, d.Status)
	assert.False(t, d.Overdue(due.Add(48*time.Hour)))
}

func TestCampaignValidateDates(t *testing.T) {
	c, err := NewCampaign("c1", "b1", "Launch", 150000)
	require.NoError(t, err)

	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	c.StartDate, c.EndDate = &start, &end
	assert.Error(t, c.Validate())
}

func TestSentinelMessages(t *testing.T) {
	assert.EqualError(t, ErrNotFound, "record not found")
	assert.EqualError(t, ErrInvalidTransition, "invalid status transition")

	err := &TransitionError{Action: ActionMarkReplied, From: StatusDraft}
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), `from status "draft"`)
}
