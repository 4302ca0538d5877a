package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/infra/integration/openai"
)

func TestGenerateEmails(t *testing.T) {
	pair := &entity.EmailPair{
		Email1: entity.EmailDraft{Subject: "AI subject", Body: "AI body"},
		Email2: entity.EmailDraft{Subject: "AI follow", Body: "AI bump"},
	}
	profile := &entity.CreatorProfile{ID: "c-1", DisplayName: "Maya", Handle: "maya", Niche: "skincare", RateCard: "Reel: $500"}

	repo := new(MockOutreachRepository)
	creators := new(MockCreatorRepository)
	gen := new(MockGenerator)
	repo.On("FindByID", mock.Anything, "o-1").Return(draftOutreach(), nil)
	creators.On("FindByID", mock.Anything, "c-1").Return(profile, nil)
	gen.On("GenerateOutreachEmails", mock.Anything, mock.MatchedBy(func(pc openai.PitchContext) bool {
		return pc.BrandName == "Glow" && pc.CreatorHandle == "maya" && len(pc.RateCard.Rates) == 1
	})).Return(pair, nil)
	repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusDraft).Return(true, nil)

	o, err := NewGenerateEmailsUseCase(repo, creators, gen).Execute(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, "AI subject", o.Email1.Subject)
	assert.Equal(t, "AI bump", o.Email2.Body)
	gen.AssertExpectations(t)
}

func TestGenerateEmailsOnlyInDraft(t *testing.T) {
	repo := new(MockOutreachRepository)
	gen := new(MockGenerator)
	repo.On("FindByID", mock.Anything, "o-1").Return(sentOutreach(false, fixedNow), nil)

	_, err := NewGenerateEmailsUseCase(repo, nil, gen).Execute(context.Background(), "o-1")
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
	gen.AssertNotCalled(t, "GenerateOutreachEmails", mock.Anything, mock.Anything)
}

func TestGenerateProposalReplacesWholesale(t *testing.T) {
	existing := draftOutreach()
	existing.Proposal = &entity.Proposal{Title: "Old", Summary: "s", Concept: "c",
		Deliverables: []entity.ProposalDeliverable{{Type: "story"}}}
	fresh := validProposal()

	repo := new(MockOutreachRepository)
	creators := new(MockCreatorRepository)
	gen := new(MockGenerator)
	repo.On("FindByID", mock.Anything, "o-1").Return(existing, nil)
	creators.On("FindByID", mock.Anything, "c-1").Return(nil, entity.ErrNotFound)
	gen.On("GenerateProposal", mock.Anything, mock.Anything).Return(fresh, nil)
	repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusDraft).Return(true, nil)

	o, err := NewGenerateProposalUseCase(repo, creators, gen).Execute(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, "Glow x Maya", o.Proposal.Title)
	require.Len(t, o.Proposal.Deliverables, 1)
	assert.Equal(t, "reel", o.Proposal.Deliverables[0].Type)
}

func TestGenerateProposalFailuresKeepRecord(t *testing.T) {
	cases := map[string]struct {
		proposal *entity.Proposal
		err      error
		code     string
	}{
		"provider down":       {nil, errors.New("503"), CodeGeneration},
		"malformed":           {nil, fmt.Errorf("%w: not json", entity.ErrMalformedResponse), CodeMalformed},
		"missing deliverable": {&entity.Proposal{Title: "t", Summary: "s", Concept: "c"}, nil, CodeMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockOutreachRepository)
			gen := new(MockGenerator)
			repo.On("FindByID", mock.Anything, "o-1").Return(draftOutreach(), nil)
			if tc.proposal != nil {
				gen.On("GenerateProposal", mock.Anything, mock.Anything).Return(tc.proposal, nil)
			} else {
				gen.On("GenerateProposal", mock.Anything, mock.Anything).Return(nil, tc.err)
			}

			o, err := NewGenerateProposalUseCase(repo, nil, gen).Execute(context.Background(), "o-1")
			assert.Nil(t, o)
			assert.Equal(t, tc.code, ErrorCode(err))
			repo.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateProposalArchivedRejected(t *testing.T) {
	archived := draftOutreach()
	require.NoError(t, archived.Archive(fixedNow))
	repo := new(MockOutreachRepository)
	repo.On("FindByID", mock.Anything, "o-1").Return(archived, nil)

	_, err := NewGenerateProposalUseCase(repo, nil, new(MockGenerator)).Execute(context.Background(), "o-1")
	assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
}
