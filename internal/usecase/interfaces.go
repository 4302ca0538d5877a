package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/infra/integration/openai"
	"github.com/xavierca1/creator-deals/internal/infra/mail"
	"github.com/xavierca1/creator-deals/internal/infra/queue"
)

type EmailSender interface {
	SendOutreach(ctx context.Context, msg mail.OutreachMessage) error
	SendProposal(ctx context.Context, msg mail.ProposalMessage) error
}

// ContentGenerator é o provedor de IA. As duas chamadas são seguras para
// repetir e devolvem o documento completo ou erro.
type ContentGenerator interface {
	GenerateOutreachEmails(ctx context.Context, in openai.PitchContext) (*entity.EmailPair, error)
	GenerateProposal(ctx context.Context, in openai.PitchContext) (*entity.Proposal, error)
}

type FollowUpPublisher interface {
	PublishFollowUp(ctx context.Context, job queue.FollowUpJob) error
}

type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
