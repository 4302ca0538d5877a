package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.outreach"
	QueueName    = "q.followups"
	DLQName      = "q.followups.dlq"
	DLXName      = "ex.dlx"
	RoutingKey   = "k.followup"
)

// binding é uma fila durável ligada a um exchange direct.
type binding struct {
	exchange string
	queue    string
	args     amqp.Table
}

// topology: a DLX vem primeiro porque a fila principal aponta para ela.
// Nack sem requeue em q.followups cai em q.followups.dlq.
var topology = []binding{
	{exchange: DLXName, queue: DLQName},
	{exchange: ExchangeName, queue: QueueName, args: amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKey,
	}},
}

// Declarer é a parte do *amqp.Channel usada para declarar a topologia.
type Declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

func declareTopology(ch Declarer) error {
	for _, b := range topology {
		if err := ch.ExchangeDeclare(b.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
			return fmt.Errorf("exchange %s: %w", b.exchange, err)
		}
		if _, err := ch.QueueDeclare(b.queue, true, false, false, false, b.args); err != nil {
			return fmt.Errorf("queue %s: %w", b.queue, err)
		}
		if err := ch.QueueBind(b.queue, RoutingKey, b.exchange, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", b.queue, err)
		}
	}
	return nil
}

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	r := &RabbitMQ{Conn: conn}
	if r.Ch, err = conn.Channel(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareTopology(r.Ch); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("declare topology: %w", err)
	}
	// um follow-up por vez por consumidor
	if err := r.Ch.Qos(1, 0, false); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("qos: %w", err)
	}
	return r, nil
}

// Healthy é usado pelo /healthz.
func (r *RabbitMQ) Healthy() bool {
	return r != nil && r.Conn != nil && !r.Conn.IsClosed() && r.Ch != nil && !r.Ch.IsClosed()
}

func (r *RabbitMQ) Close() error {
	if r.Ch != nil {
		_ = r.Ch.Close()
	}
	if r.Conn != nil {
		return r.Conn.Close()
	}
	return nil
}
