package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/infra/mail"
)

func newSendUC(repo *MockOutreachRepository, sender *MockEmailSender) *SendEmailUseCase {
	uc := NewSendEmailUseCase(repo, sender)
	uc.Now = fixedClock
	return uc
}

func TestSendEmail1Success(t *testing.T) {
	repo := new(MockOutreachRepository)
	sender := new(MockEmailSender)
	o := draftOutreach()
	o.AutoSendFollowUp = true

	repo.On("FindByID", mock.Anything, "o-1").Return(o, nil)
	repo.On("UpdateIfStatus", mock.Anything, mock.MatchedBy(func(x *entity.Outreach) bool {
		return x.Status == entity.StatusSent
	}), entity.StatusDraft).Return(true, nil).Once()
	sender.On("SendOutreach", mock.Anything, mock.MatchedBy(func(m mail.OutreachMessage) bool {
		return m.To == "partners@glow.co" && m.Subject == "Hi Glow" && m.Number == 1
	})).Return(nil)

	out, err := newSendUC(repo, sender).Execute(context.Background(), SendEmailInput{ID: "o-1", Number: 1})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSent, out.Status)
	require.NotNil(t, out.Email1SentAt)
	assert.True(t, fixedNow.Equal(*out.Email1SentAt))
	require.NotNil(t, out.Email2DueAt)
	assert.True(t, fixedNow.Add(7*24*time.Hour).Equal(*out.Email2DueAt))
	repo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestSendEmailDeliveryFailureCompensates(t *testing.T) {
	repo := new(MockOutreachRepository)
	sender := new(MockEmailSender)

	repo.On("FindByID", mock.Anything, "o-1").Return(draftOutreach(), nil)
	repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusDraft).Return(true, nil).Once()
	sender.On("SendOutreach", mock.Anything, mock.Anything).Return(errors.New("smtp: 421 try later"))

	// compensação: grava de volta o draft esperando o status sent
	var restored *entity.Outreach
	repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusSent).
		Run(func(args mock.Arguments) { restored = args.Get(1).(*entity.Outreach) }).
		Return(true, nil).Once()

	out, err := newSendUC(repo, sender).Execute(context.Background(), SendEmailInput{ID: "o-1", Number: 1})
	assert.Nil(t, out)
	assert.Equal(t, CodeDelivery, ErrorCode(err))
	assert.True(t, IsTechnicalError(err))

	require.NotNil(t, restored)
	assert.Equal(t, entity.StatusDraft, restored.Status)
	assert.Nil(t, restored.Email1SentAt)
	repo.AssertExpectations(t)
}

func TestSendEmailClaimLostDoesNotDeliver(t *testing.T) {
	repo := new(MockOutreachRepository)
	sender := new(MockEmailSender)

	repo.On("FindByID", mock.Anything, "o-1").Return(draftOutreach(), nil)
	repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusDraft).Return(false, nil)

	_, err := newSendUC(repo, sender).Execute(context.Background(), SendEmailInput{ID: "o-1", Number: 1})
	assert.Equal(t, CodeConflict, ErrorCode(err))
	sender.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything)
}

func TestSendEmailRejectedLocally(t *testing.T) {
	cases := []struct {
		name   string
		o      *entity.Outreach
		number int
		code   string
	}{
		{"email 2 from draft", draftOutreach(), 2, CodeInvalidTransition},
		{"email 1 twice", sentOutreach(false, fixedNow), 1, CodeInvalidTransition},
		{"empty draft", func() *entity.Outreach { o := draftOutreach(); o.Email1 = entity.EmailDraft{}; return o }(), 1, CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockOutreachRepository)
			sender := new(MockEmailSender)
			repo.On("FindByID", mock.Anything, "o-1").Return(tc.o, nil)

			_, err := newSendUC(repo, sender).Execute(context.Background(), SendEmailInput{ID: "o-1", Number: tc.number})
			assert.Equal(t, tc.code, ErrorCode(err))
			repo.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything)
			sender.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything)
		})
	}
}

func TestSendEmailInvalidNumber(t *testing.T) {
	_, err := newSendUC(new(MockOutreachRepository), new(MockEmailSender)).
		Execute(context.Background(), SendEmailInput{ID: "o-1", Number: 3})
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestSendEmailNotFound(t *testing.T) {
	repo := new(MockOutreachRepository)
	repo.On("FindByID", mock.Anything, "o-1").Return(nil, entity.ErrNotFound)

	_, err := newSendUC(repo, new(MockEmailSender)).Execute(context.Background(), SendEmailInput{ID: "o-1", Number: 1})
	assert.Equal(t, CodeNotFound, ErrorCode(err))
	assert.True(t, IsDomainError(err))
}

func TestSendFollowUp(t *testing.T) {
	due := sentOutreach(true, fixedNow.Add(-8*24*time.Hour))

	t.Run("due sends email 2", func(t *testing.T) {
		repo := new(MockOutreachRepository)
		sender := new(MockEmailSender)
		repo.On("FindByID", mock.Anything, "o-1").Return(due, nil)
		repo.On("UpdateIfStatus", mock.Anything, mock.MatchedBy(func(x *entity.Outreach) bool {
			return x.Status == entity.StatusFollowedUp && x.Email2SentAt != nil
		}), entity.StatusSent).Return(true, nil)
		sender.On("SendOutreach", mock.Anything, mock.MatchedBy(func(m mail.OutreachMessage) bool {
			return m.Number == 2 && m.Subject == "Re: Hi Glow"
		})).Return(nil)

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, sender)).Execute(context.Background(), "o-1")
		require.NoError(t, err)
		assert.True(t, sent)
	})

	t.Run("replied in the meantime is skipped", func(t *testing.T) {
		replied := due.Clone()
		require.NoError(t, replied.MarkReplied(fixedNow.Add(-time.Hour)))

		repo := new(MockOutreachRepository)
		sender := new(MockEmailSender)
		repo.On("FindByID", mock.Anything, "o-1").Return(replied, nil)

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, sender)).Execute(context.Background(), "o-1")
		require.NoError(t, err)
		assert.False(t, sent)
		sender.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything)
	})

	t.Run("not yet due is skipped", func(t *testing.T) {
		repo := new(MockOutreachRepository)
		repo.On("FindByID", mock.Anything, "o-1").Return(sentOutreach(true, fixedNow.Add(-24*time.Hour)), nil)

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, new(MockEmailSender))).Execute(context.Background(), "o-1")
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("deleted is skipped", func(t *testing.T) {
		repo := new(MockOutreachRepository)
		repo.On("FindByID", mock.Anything, "o-1").Return(nil, entity.ErrNotFound)

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, new(MockEmailSender))).Execute(context.Background(), "o-1")
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("empty email 2 turns auto-send off instead of failing", func(t *testing.T) {
		blank := due.Clone()
		blank.Email2 = entity.EmailDraft{}

		repo := new(MockOutreachRepository)
		sender := new(MockEmailSender)
		repo.On("FindByID", mock.Anything, "o-1").Return(blank, nil)
		repo.On("UpdateIfStatus", mock.Anything, mock.MatchedBy(func(x *entity.Outreach) bool {
			return !x.AutoSendFollowUp && x.Status == entity.StatusSent && x.Email2SentAt == nil
		}), entity.StatusSent).Return(true, nil)

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, sender)).Execute(context.Background(), "o-1")
		require.NoError(t, err)
		assert.False(t, sent)
		sender.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("empty email 2 with database down is reported", func(t *testing.T) {
		blank := due.Clone()
		blank.Email2 = entity.EmailDraft{Subject: "  "}

		repo := new(MockOutreachRepository)
		repo.On("FindByID", mock.Anything, "o-1").Return(blank, nil)
		repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusSent).Return(false, errors.New("down"))

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, new(MockEmailSender))).Execute(context.Background(), "o-1")
		assert.False(t, sent)
		assert.Equal(t, CodeDatabase, ErrorCode(err))
	})

	t.Run("duplicate job loses the claim", func(t *testing.T) {
		repo := new(MockOutreachRepository)
		sender := new(MockEmailSender)
		repo.On("FindByID", mock.Anything, "o-1").Return(due, nil)
		repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusSent).Return(false, nil)

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, sender)).Execute(context.Background(), "o-1")
		require.NoError(t, err)
		assert.False(t, sent)
		sender.AssertNotCalled(t, "SendOutreach", mock.Anything, mock.Anything)
	})

	t.Run("delivery failure is reported", func(t *testing.T) {
		repo := new(MockOutreachRepository)
		sender := new(MockEmailSender)
		repo.On("FindByID", mock.Anything, "o-1").Return(due, nil)
		repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusSent).Return(true, nil).Once()
		repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusFollowedUp).Return(true, nil).Once()
		sender.On("SendOutreach", mock.Anything, mock.Anything).Return(errors.New("timeout"))

		sent, err := NewSendFollowUpUseCase(newSendUC(repo, sender)).Execute(context.Background(), "o-1")
		assert.False(t, sent)
		assert.Equal(t, CodeDelivery, ErrorCode(err))
		repo.AssertExpectations(t)
	})
}

func TestSendProposal(t *testing.T) {
	replied := sentOutreach(false, fixedNow.Add(-48*time.Hour))
	require.NoError(t, replied.MarkReplied(fixedNow.Add(-24*time.Hour)))
	replied.Proposal = validProposal()

	t.Run("success", func(t *testing.T) {
		repo := new(MockOutreachRepository)
		sender := new(MockEmailSender)
		repo.On("FindByID", mock.Anything, "o-1").Return(replied, nil)
		repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusReplied).Return(true, nil)
		sender.On("SendProposal", mock.Anything, mock.MatchedBy(func(m mail.ProposalMessage) bool {
			return m.Proposal.Title == "Glow x Maya" && m.Note == "see attached"
		})).Return(nil)

		uc := NewSendProposalUseCase(repo, sender)
		uc.Now = fixedClock
		o, err := uc.Execute(context.Background(), SendProposalInput{ID: "o-1", Note: "see attached"})
		require.NoError(t, err)
		assert.Equal(t, entity.StatusProposalSent, o.Status)
		assert.True(t, fixedNow.Equal(*o.ProposalSentAt))
	})

	t.Run("no proposal yet", func(t *testing.T) {
		noProposal := replied.Clone()
		noProposal.Proposal = nil
		repo := new(MockOutreachRepository)
		repo.On("FindByID", mock.Anything, "o-1").Return(noProposal, nil)

		_, err := NewSendProposalUseCase(repo, new(MockEmailSender)).Execute(context.Background(), SendProposalInput{ID: "o-1"})
		assert.Equal(t, CodeInvalidTransition, ErrorCode(err))
	})

	t.Run("delivery failure restores replied", func(t *testing.T) {
		repo := new(MockOutreachRepository)
		sender := new(MockEmailSender)
		repo.On("FindByID", mock.Anything, "o-1").Return(replied, nil)
		repo.On("UpdateIfStatus", mock.Anything, mock.Anything, entity.StatusReplied).Return(true, nil).Once()
		repo.On("UpdateIfStatus", mock.Anything, mock.MatchedBy(func(x *entity.Outreach) bool {
			return x.Status == entity.StatusReplied && x.ProposalSentAt == nil
		}), entity.StatusProposalSent).Return(true, nil).Once()
		sender.On("SendProposal", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		_, err := NewSendProposalUseCase(repo, sender).Execute(context.Background(), SendProposalInput{ID: "o-1"})
		assert.Equal(t, CodeDelivery, ErrorCode(err))
		repo.AssertExpectations(t)
	})
}
