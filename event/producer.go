package event

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type Producer interface {
	Produce(ctx context.Context, msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}

type SaramaSyncProducer struct {
	producer sarama.SyncProducer
}

var _ Producer = (*SaramaSyncProducer)(nil)

func NewSaramaSyncProducer(producer sarama.SyncProducer) *SaramaSyncProducer {
	return &SaramaSyncProducer{producer: producer}
}

func (p *SaramaSyncProducer) Produce(_ context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	return p.producer.SendMessage(msg)
}

func (p *SaramaSyncProducer) Close() error {
	return p.producer.Close()
}

// SessionPublisher 发布会话审计事件; producer 为 nil 时(未启用 kafka)直接丢弃
type SessionPublisher struct {
	producer Producer
	topic    string
	log      loggerv2.Logger
	now      func() time.Time
}

func NewSessionPublisher(producer Producer, topic string, log loggerv2.Logger) *SessionPublisher {
	if topic == "" {
		topic = SessionTopic
	}
	return &SessionPublisher{
		producer: producer,
		topic:    topic,
		log:      log,
		now:      time.Now,
	}
}

// Publish 审计事件发送失败只记录日志, 不影响会话操作
func (p *SessionPublisher) Publish(ctx context.Context, msg *SessionMessage) {
	if p == nil || p.producer == nil {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = p.now()
	}
	if err := p.publish(ctx, msg); err != nil {
		p.log.WarnContext(ctx, "publish session event failed",
			logger.String("type", string(msg.Type)),
			logger.Error(err))
	}
}

func (p *SessionPublisher) publish(ctx context.Context, msg *SessionMessage) error {
	val, err := msg.Marshal()
	if err != nil {
		return fmt.Errorf("Publish failed at marshal message: %w", err)
	}
	_, _, err = p.producer.Produce(ctx, &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.EventID),
		Value: sarama.ByteEncoder(val),
	})
	if err != nil {
		return fmt.Errorf("Publish failed at produce message: %w", err)
	}
	return nil
}
