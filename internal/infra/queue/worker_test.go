package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct{ mock.Mock }

func (m *MockSender) Execute(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// fakeAck registra o que o worker fez com a mensagem.
type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(tag uint64, multiple bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}
func (f *fakeAck) Reject(tag uint64, requeue bool) error { return f.Nack(tag, false, requeue) }

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (p *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func TestProducerPublishFollowUp(t *testing.T) {
	pub := &fakePublisher{}
	due := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)

	err := NewProducer(pub).PublishFollowUp(context.Background(), FollowUpJob{OutreachID: "o-1", DueAt: due, Origin: OriginScheduler})
	require.NoError(t, err)

	assert.Equal(t, ExchangeName, pub.exchange)
	assert.Equal(t, RoutingKey, pub.key)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, "o-1", pub.msg.MessageId)

	job, err := DecodeFollowUpJob(pub.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "o-1", job.OutreachID)
	assert.True(t, due.Equal(job.DueAt))
}

func TestProducerRejectsEmptyJob(t *testing.T) {
	pub := &fakePublisher{}
	err := NewProducer(pub).PublishFollowUp(context.Background(), FollowUpJob{})
	assert.ErrorIs(t, err, ErrInvalidJob)
	assert.Empty(t, pub.exchange)
}

func delivery(body string) (amqp.Delivery, *fakeAck) {
	ack := &fakeAck{}
	return amqp.Delivery{Acknowledger: ack, Body: []byte(body)}, ack
}

func TestWorkerHandle(t *testing.T) {
	t.Run("sent acks", func(t *testing.T) {
		s := new(MockSender)
		s.On("Execute", mock.Anything, "o-1").Return(true, nil)
		d, ack := delivery(`{"outreach_id":"o-1","origin":"scheduler"}`)

		NewWorker(nil, s).handle(context.Background(), d)

		assert.True(t, ack.acked)
		assert.False(t, ack.nacked)
		s.AssertExpectations(t)
	})

	t.Run("not due acks", func(t *testing.T) {
		s := new(MockSender)
		s.On("Execute", mock.Anything, "o-1").Return(false, nil)
		d, ack := delivery(`{"outreach_id":"o-1"}`)

		NewWorker(nil, s).handle(context.Background(), d)

		assert.True(t, ack.acked)
	})

	t.Run("failure goes to dlq", func(t *testing.T) {
		s := new(MockSender)
		s.On("Execute", mock.Anything, "o-1").Return(false, errors.New("smtp down"))
		d, ack := delivery(`{"outreach_id":"o-1"}`)

		NewWorker(nil, s).handle(context.Background(), d)

		assert.True(t, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("malformed payload never reaches sender", func(t *testing.T) {
		s := new(MockSender)
		for _, body := range []string{`not json`, `{}`} {
			d, ack := delivery(body)
			NewWorker(nil, s).handle(context.Background(), d)
			assert.True(t, ack.nacked, body)
		}
		s.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})
}

type fakeConsumer struct{ ch chan amqp.Delivery }

func (f *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return f.ch, nil
}

func TestWorkerStartStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := NewWorker(&fakeConsumer{ch: make(chan amqp.Delivery)}, new(MockSender))

	go func() { done <- w.Start(ctx, QueueName) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerStartClosedChannel(t *testing.T) {
	ch := make(chan amqp.Delivery)
	close(ch)
	err := NewWorker(&fakeConsumer{ch: ch}, new(MockSender)).Start(context.Background(), QueueName)
	assert.Error(t, err)
}
