package queue

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDeclarer struct {
	calls     []string
	queueArgs map[string]amqp.Table
	failOn    string
}

func (d *recordingDeclarer) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	d.calls = append(d.calls, "exchange:"+name)
	if d.failOn == name {
		return errors.New("access refused")
	}
	return nil
}

func (d *recordingDeclarer) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	d.calls = append(d.calls, "queue:"+name)
	if d.queueArgs == nil {
		d.queueArgs = map[string]amqp.Table{}
	}
	d.queueArgs[name] = args
	return amqp.Queue{Name: name}, nil
}

func (d *recordingDeclarer) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	d.calls = append(d.calls, "bind:"+name+"->"+exchange)
	return nil
}

func TestDeclareTopologyOrder(t *testing.T) {
	d := &recordingDeclarer{}
	require.NoError(t, declareTopology(d))

	assert.Equal(t, []string{
		"exchange:ex.dlx", "queue:q.followups.dlq", "bind:q.followups.dlq->ex.dlx",
		"exchange:ex.outreach", "queue:q.followups", "bind:q.followups->ex.outreach",
	}, d.calls)
	assert.Equal(t, DLXName, d.queueArgs[QueueName]["x-dead-letter-exchange"])
	assert.Nil(t, d.queueArgs[DLQName])
}

func TestDeclareTopologyStopsOnError(t *testing.T) {
	d := &recordingDeclarer{failOn: ExchangeName}
	err := declareTopology(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange ex.outreach")
	assert.NotContains(t, d.calls, "queue:q.followups")
}

func TestHealthyNil(t *testing.T) {
	var r *RabbitMQ
	assert.False(t, r.Healthy())
}
