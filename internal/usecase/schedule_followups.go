package usecase

import (
	"context"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/infra/queue"
	"github.com/xavierca1/creator-deals/internal/logger"
)

// ScheduleFollowUpsUseCase publica um job para cada follow-up vencido.
// Não altera o registro: quem marca o envio é o consumidor.
type ScheduleFollowUpsUseCase struct {
	Repo      entity.OutreachRepositoryInterface
	Publisher FollowUpPublisher
	BatchSize int
	Now       Clock
}

func NewScheduleFollowUpsUseCase(repo entity.OutreachRepositoryInterface, publisher FollowUpPublisher, batchSize int) *ScheduleFollowUpsUseCase {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ScheduleFollowUpsUseCase{Repo: repo, Publisher: publisher, BatchSize: batchSize, Now: systemClock}
}

// Execute devolve quantos jobs foram publicados.
func (uc *ScheduleFollowUpsUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.Now()
	due, err := uc.Repo.FindDueFollowUps(ctx, now, uc.BatchSize)
	if err != nil {
		return 0, dbError("failed to find due follow-ups", err)
	}

	published := 0
	for _, o := range due {
		if !o.FollowUpDue(now) {
			continue
		}
		if o.Email2.IsEmpty() {
			logger.WithOutreach(o.ID).Warn("⚠️ follow-up vencido sem rascunho do email 2, ignorando")
			continue
		}
		job := queue.FollowUpJob{
			OutreachID: o.ID,
			DueAt:      *o.Email2DueAt,
			Origin:     queue.OriginScheduler,
		}
		if err := uc.Publisher.PublishFollowUp(ctx, job); err != nil {
			logger.WithOutreach(o.ID).WithError(err).Error("❌ falha ao publicar job de follow-up")
			continue
		}
		published++
	}
	return published, nil
}
