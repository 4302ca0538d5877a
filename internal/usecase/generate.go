package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/infra/integration/openai"
	"github.com/xavierca1/creator-deals/internal/logger"
)

// buildPitchContext junta o contexto do outreach com o perfil do creator.
// Perfil ausente não impede a geração.
func buildPitchContext(ctx context.Context, creators entity.CreatorRepositoryInterface, o *entity.Outreach) openai.PitchContext {
	pc := openai.PitchContext{
		BrandName:          o.BrandName,
		ContactEmail:       o.ContactEmail,
		ProductDescription: o.ProductDescription,
		FitJustification:   o.FitJustification,
	}
	if creators == nil {
		return pc
	}

	profile, err := creators.FindByID(ctx, o.CreatorID)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			logger.WithOutreach(o.ID).WithError(err).Warn("⚠️ perfil do criador indisponível para geração")
		}
		return pc
	}
	pc.CreatorName = profile.DisplayName
	pc.CreatorHandle = profile.Handle
	pc.Niche = profile.Niche
	pc.Platforms = profile.Platforms
	pc.AudienceSize = profile.AudienceSize
	pc.RateCard = profile.ParsedRateCard()
	return pc
}

type GenerateEmailsUseCase struct {
	Repo        entity.OutreachRepositoryInterface
	CreatorRepo entity.CreatorRepositoryInterface
	Generator   ContentGenerator
	Now         Clock
}

func NewGenerateEmailsUseCase(repo entity.OutreachRepositoryInterface, creators entity.CreatorRepositoryInterface, gen ContentGenerator) *GenerateEmailsUseCase {
	return &GenerateEmailsUseCase{Repo: repo, CreatorRepo: creators, Generator: gen, Now: systemClock}
}

// Execute gera os dois rascunhos. Só em draft: depois do envio o email 1 é fixo.
func (uc *GenerateEmailsUseCase) Execute(ctx context.Context, id string) (*entity.Outreach, error) {
	o, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("outreach", err)
	}
	if o.Status != entity.StatusDraft {
		return nil, transitionError(&entity.TransitionError{Action: "generate emails", From: o.Status})
	}

	pair, err := uc.Generator.GenerateOutreachEmails(ctx, buildPitchContext(ctx, uc.CreatorRepo, o))
	if err != nil {
		return nil, generationError(err)
	}
	if err := pair.Validate(); err != nil {
		return nil, generationError(err)
	}

	o.Email1 = pair.Email1
	o.Email2 = pair.Email2
	o.UpdatedAt = uc.Now()

	if err := saveTransition(ctx, uc.Repo, o, entity.StatusDraft); err != nil {
		return nil, err
	}

	logger.WithOutreach(o.ID).Info("🤖 emails do outreach gerados")
	return o, nil
}

type GenerateProposalUseCase struct {
	Repo        entity.OutreachRepositoryInterface
	CreatorRepo entity.CreatorRepositoryInterface
	Generator   ContentGenerator
	Now         Clock
}

func NewGenerateProposalUseCase(repo entity.OutreachRepositoryInterface, creators entity.CreatorRepositoryInterface, gen ContentGenerator) *GenerateProposalUseCase {
	return &GenerateProposalUseCase{Repo: repo, CreatorRepo: creators, Generator: gen, Now: systemClock}
}

// Execute pode ser repetido: cada chamada substitui a proposta inteira.
// Um documento incompleto é descartado, a proposta anterior fica.
func (uc *GenerateProposalUseCase) Execute(ctx context.Context, id string) (*entity.Outreach, error) {
	o, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("outreach", err)
	}
	if o.Status == entity.StatusArchived {
		return nil, transitionError(&entity.TransitionError{Action: "generate proposal", From: o.Status})
	}

	proposal, err := uc.Generator.GenerateProposal(ctx, buildPitchContext(ctx, uc.CreatorRepo, o))
	if err != nil {
		return nil, generationError(err)
	}
	if err := proposal.Validate(); err != nil {
		return nil, generationError(err)
	}

	o.Proposal = proposal
	o.UpdatedAt = uc.Now()

	if err := saveTransition(ctx, uc.Repo, o, o.Status); err != nil {
		return nil, err
	}

	logger.WithOutreach(o.ID).WithField("deliverables", len(proposal.Deliverables)).Info("🤖 proposta gerada")
	return o, nil
}
