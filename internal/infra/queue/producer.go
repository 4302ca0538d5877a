package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OriginScheduler marca jobs publicados pela varredura periódica.
const OriginScheduler = "scheduler"

var ErrInvalidJob = errors.New("invalid follow-up job")

// FollowUpJob pede o envio do email 2 de um outreach. O consumidor
// revalida o registro, então jobs repetidos são inofensivos.
type FollowUpJob struct {
	OutreachID string    `json:"outreach_id"`
	DueAt      time.Time `json:"due_at"`
	Origin     string    `json:"origin"`
}

func (j FollowUpJob) Validate() error {
	if j.OutreachID == "" {
		return fmt.Errorf("%w: outreach_id is required", ErrInvalidJob)
	}
	return nil
}

func DecodeFollowUpJob(body []byte) (FollowUpJob, error) {
	var job FollowUpJob
	if err := json.Unmarshal(body, &job); err != nil {
		return job, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	return job, job.Validate()
}

// Publisher é o que o produtor precisa do canal AMQP.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishFollowUp(ctx context.Context, job FollowUpJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    job.OutreachID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to RabbitMQ: %w", err)
	}
	return nil
}
