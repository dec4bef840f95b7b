package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"github.com/alexanderjulianmartinez/tablekit/internal/cdc"
	"github.com/alexanderjulianmartinez/tablekit/internal/config"
)

// Publisher writes change events to a Kafka topic, keyed by table name so
// events of one table stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func New(cfg config.EventsConfig, logger *slog.Logger) (*Publisher, error) {
	var brokers []string
	for _, b := range cfg.Brokers {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers provided")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("no kafka topic provided")
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}, nil
}

func (p *Publisher) Name() string {
	return "kafka"
}

func (p *Publisher) Publish(ctx context.Context, events ...cdc.Event) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		msg, err := encodeMessage(ev)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write to topic %s: %w", p.writer.Topic, err)
	}
	p.logger.Debug("published change events", "topic", p.writer.Topic, "count", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encodeMessage(ev cdc.Event) (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event %s: %w", ev.ID, err)
	}
	return kafka.Message{
		Key:   []byte(ev.Table),
		Value: value,
		Time:  ev.Time,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(ev.ID)},
			{Key: "op", Value: []byte(ev.Op)},
		},
	}, nil
}
