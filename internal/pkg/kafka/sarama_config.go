package kafka

import (
	"Redwatch/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 负责统一初始化 sarama.Config，同步生产者需要 Return.Successes
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Retry.Max = 3
	c.Producer.Retry.Backoff = 500 * time.Millisecond
	c.Producer.Timeout = 10 * time.Second
	c.Net.DialTimeout = 10 * time.Second

	return c
}

// NewSyncProducer 创建通知事件的同步生产者
func NewSyncProducer(kafkaCfg config.KafkaConfig) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(kafkaCfg.Brokers, newSaramaConfig(kafkaCfg))
}
