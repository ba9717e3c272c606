package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes post events to a single topic, keyed by post id
// so events for one post stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafka(brokers, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   topic,
		}),
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, ev PostEvent) {
	value, err := json.Marshal(ev)
	if err != nil {
		log.Printf("events: marshal %s: %v", ev.Type, err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.PostID, 10)),
		Value: value,
	})
	if err != nil {
		log.Printf("events: publish %s for post %d: %v", ev.Type, ev.PostID, err)
	}
}

func (p *KafkaPublisher) PostCreated(ctx context.Context, postID, authorID int64, groupID *int64) {
	p.publish(ctx, newEvent(TypePostCreated, postID, authorID, groupID))
}

func (p *KafkaPublisher) PostUpdated(ctx context.Context, postID, authorID int64, groupID *int64) {
	p.publish(ctx, newEvent(TypePostUpdated, postID, authorID, groupID))
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
