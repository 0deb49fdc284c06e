package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// Routing keys published by the service.
const (
	QuizCreated      = "quiz.created"
	QuizUpdated      = "quiz.updated"
	QuizDeleted      = "quiz.deleted"
	SessionStarted   = "quiz.session.started"
	AttemptSubmitted = "quiz.attempt.submitted"
	LectureViewed    = "progress.lecture.viewed"
)

type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends an event to the topic exchange with the event type as routing
// key. Safe to call on a nil publisher so callers don't have to guard for the
// events-disabled configuration.
func (p *Publisher) Publish(eventType string, payload any) {
	if p == nil {
		return
	}
	body, err := json.Marshal(map[string]any{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[EVENT] marshal %s: %v", eventType, err)
		return
	}

	err = p.channel.Publish(
		p.exchange,
		eventType,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Printf("[EVENT] publish %s: %v", eventType, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
