package queue

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/creator-deals/internal/infra/http/middleware"
	"github.com/xavierca1/creator-deals/internal/logger"
)

// FollowUpSender envia o follow-up se ainda for devido. sent=false
// significa que não havia nada a fazer.
type FollowUpSender interface {
	Execute(ctx context.Context, outreachID string) (sent bool, err error)
}

type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Sender  FollowUpSender
}

func NewWorker(ch Consumer, sender FollowUpSender) *Worker {
	return &Worker{Channel: ch, Sender: sender}
}

// Start consome até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"followup-worker",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register RabbitMQ consumer: %w", err)
	}

	logger.L().Infof(" [*] Worker aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			logger.L().Info("⚠️ Follow-up worker encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("canal de consumo fechado")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	job, err := DecodeFollowUpJob(d.Body)
	if err != nil {
		logger.L().WithError(err).Error("❌ [WORKER] payload inválido")
		// mensagem podre vai direto pra DLQ
		_ = d.Nack(false, false)
		middleware.RecordFollowUp("invalid")
		return
	}

	log := logger.WithOutreach(job.OutreachID).WithFields(logrus.Fields{
		"origin": job.Origin,
		"due_at": job.DueAt,
	})
	log.Info("📥 [WORKER] follow-up recebido")

	sent, err := w.Sender.Execute(ctx, job.OutreachID)
	switch {
	case err != nil:
		log.WithError(err).Error("❌ [WORKER] falha no envio do follow-up")
		// o scheduler republica no próximo ciclo enquanto continuar devido
		_ = d.Nack(false, false)
		middleware.RecordFollowUp("failed")
	case !sent:
		log.Info("⏭️ [WORKER] follow-up não é mais devido")
		_ = d.Ack(false)
		middleware.RecordFollowUp("skipped")
	default:
		log.Info("✅ [WORKER] follow-up enviado")
		_ = d.Ack(false)
		middleware.RecordFollowUp("sent")
	}
}
