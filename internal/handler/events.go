package handler

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"github.com/openshelf/library-service/pkg/breaker"
	"github.com/openshelf/library-service/pkg/kafka"
)

type loanEvents struct {
	producer sarama.SyncProducer
	topic    string
	cb       breaker.CircuitBreaker
}

// NewLoanEvents wraps the producer in a circuit breaker so a dead
// broker degrades to dropped audit events instead of slow requests.
func NewLoanEvents(producer sarama.SyncProducer, topic string) *loanEvents {
	return &loanEvents{
		producer: producer,
		topic:    topic,
		cb:       breaker.New(20, 30*time.Second, 0.5, 3),
	}
}

func (l *loanEvents) Log(event kafka.LoanEvent) error {
	if l == nil || l.producer == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return l.cb.Call(func() error {
		msg := &sarama.ProducerMessage{Topic: l.topic, Value: sarama.StringEncoder(data)}
		_, _, err := l.producer.SendMessage(msg)
		return err
	})
}
