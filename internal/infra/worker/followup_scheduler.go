package worker

import (
	"context"
	"time"

	"github.com/xavierca1/creator-deals/internal/logger"
)

// FollowUpScanner é o ScheduleFollowUpsUseCase.
type FollowUpScanner interface {
	Execute(ctx context.Context) (int, error)
}

// FollowUpScheduler varre os follow-ups vencidos a cada tick e publica
// um job por registro. Quem envia é o consumidor da fila.
type FollowUpScheduler struct {
	scanner      FollowUpScanner
	tickInterval time.Duration
}

func NewFollowUpScheduler(scanner FollowUpScanner, interval time.Duration) *FollowUpScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &FollowUpScheduler{scanner: scanner, tickInterval: interval}
}

func (w *FollowUpScheduler) Start(ctx context.Context) {
	logger.L().WithField("interval", w.tickInterval.String()).Info("🕒 Follow-up scheduler iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.L().Info("⚠️ Follow-up scheduler encerrado")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *FollowUpScheduler) scan(ctx context.Context) {
	published, err := w.scanner.Execute(ctx)
	if err != nil {
		logger.L().WithError(err).Error("❌ Erro ao buscar follow-ups vencidos")
		return
	}
	if published > 0 {
		logger.L().Infof("✅ %d follow-up(s) enfileirados", published)
	}
}
