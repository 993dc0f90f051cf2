package events

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisherPublish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch, exchangeName: "walletwise", routingPrefix: "ledger"}

	event := New(TypeShareSettled, 2, 10)
	event.ShareID = 7
	event.Amount = decimal.RequireFromString("30.00")
	event.Currency = "INR"

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "walletwise", sent.exchange)
	assert.Equal(t, "ledger.share.settled", sent.key)
	assert.Equal(t, event.ID, sent.msg.MessageId)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, sent.msg.DeliveryMode)

	decoded, err := FromJSON(sent.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, int64(7), decoded.ShareID)
	assert.True(t, decoded.Amount.Equal(event.Amount))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisherError(t *testing.T) {
	p := &AMQPPublisher{channel: &fakeChannel{err: errors.New("channel closed")}, exchangeName: "x"}
	err := p.Publish(context.Background(), New(TypeExpenseCreated, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestRoutingKeyWithoutPrefix(t *testing.T) {
	p := &AMQPPublisher{}
	assert.Equal(t, "expense.deleted", p.routingKey(TypeExpenseDeleted))
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New(TypeExpenseCreated, 1, 1)
	b := New(TypeExpenseCreated, 1, 1)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), New(TypeExpenseSettled, 1, 1)))
	assert.NoError(t, p.Close())
}
