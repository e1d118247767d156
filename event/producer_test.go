package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	json "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func TestSessionPublisherSendsKeyedMessage(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	var got SessionMessage
	mp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != SessionTopic {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "evt1" {
			return errors.New("unexpected key " + string(key))
		}
		val, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		return json.Unmarshal(val, &got)
	})

	p := NewSessionPublisher(NewSaramaSyncProducer(mp), "", loggerv2.NewZapLogger(zap.NewNop()))
	fixed := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	p.Publish(context.Background(), &SessionMessage{
		Type:      SessionSubmit,
		EventID:   "evt1",
		ProblemID: "p1",
		Status:    "ACCEPTED",
		Passed:    3,
		Total:     3,
	})
	require.NoError(t, mp.Close())

	assert.Equal(t, SessionSubmit, got.Type)
	assert.Equal(t, "p1", got.ProblemID)
	assert.Equal(t, 3, got.Passed)
	assert.True(t, fixed.Equal(got.Timestamp))
}

func TestSessionPublisherSwallowsErrors(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewSessionPublisher(NewSaramaSyncProducer(mp), "custom_topic", loggerv2.NewZapLogger(zap.NewNop()))
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), &SessionMessage{Type: SessionRun, EventID: "evt1"})
	})
	require.NoError(t, mp.Close())
}

func TestNilProducerIsNoop(t *testing.T) {
	p := NewSessionPublisher(nil, "", loggerv2.NewZapLogger(zap.NewNop()))
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), &SessionMessage{Type: SessionOpened, EventID: "evt1"})
	})

	var nilPublisher *SessionPublisher
	assert.NotPanics(t, func() {
		nilPublisher.Publish(context.Background(), &SessionMessage{Type: SessionOpened, EventID: "evt1"})
	})
}
