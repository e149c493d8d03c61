package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestKafka_Send(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var evt KafkaEvent
		if err := json.Unmarshal(val, &evt); err != nil {
			return err
		}
		if evt.Title != "t" || evt.Body != "b" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	ch := NewKafka(producer, "redwatch.notes")
	assert.NoError(t, ch.Send(context.Background(), "t", "b"))
	assert.NoError(t, ch.Close())
}

func TestKafka_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	ch := NewKafka(producer, "redwatch.notes")
	err := ch.Send(context.Background(), "t", "b")

	assert.ErrorIs(t, err, ErrDeliveryFailure)
	assert.NoError(t, ch.Close())
}
