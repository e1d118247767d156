package ioc

import (
	"log"

	"github.com/IBM/sarama"
	"github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/event"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// InitKafkaProducer 未启用时返回 nil, 会话事件直接丢弃
func InitKafkaProducer() event.Producer {
	var cfg config.KafkaConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load kafka config failed: %v", err)
	}
	if !cfg.Enabled {
		return nil
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal
	producer, err := sarama.NewSyncProducer(cfg.Addrs, saramaCfg)
	if err != nil {
		log.Panicf("init kafka producer failed: %v", err)
	}
	return event.NewSaramaSyncProducer(producer)
}

func InitSessionPublisher(producer event.Producer, l loggerv2.Logger) *event.SessionPublisher {
	var cfg config.KafkaConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load kafka config failed: %v", err)
	}
	return event.NewSessionPublisher(producer, cfg.Topic, l)
}
