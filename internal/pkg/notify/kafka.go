package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// KafkaEvent 推送到 Kafka 的通知事件
type KafkaEvent struct {
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// Kafka 将通知作为事件投递到 topic，供下游系统消费
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafka(producer sarama.SyncProducer, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic}
}

func (s *Kafka) Name() string {
	return "kafka"
}

func (s *Kafka) Send(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(KafkaEvent{Title: title, Body: body, SentAt: time.Now()})
	if err != nil {
		return err
	}
	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("%w: kafka: %v", ErrDeliveryFailure, err)
	}
	return nil
}

func (s *Kafka) Close() error {
	return s.producer.Close()
}
