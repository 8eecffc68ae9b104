package kafka

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/owennam/JSHA-master-sub000/internal/config"
	"github.com/owennam/JSHA-master-sub000/internal/domain/order"
	"github.com/owennam/JSHA-master-sub000/internal/infrastructure/encoding/avro"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

// DiagnosticsProducer streams reconciliation diagnostics to Kafka.
// Everything here is best-effort: publish failures are logged and the
// event is lost, never the response.
type DiagnosticsProducer struct {
	client  *kgo.Client
	topic   string
	encoder *avro.Encoder
	log     logger.Logger
}

func NewDiagnosticsProducer(cfg config.KafkaConfig, log logger.Logger) (*DiagnosticsProducer, error) {
	encoder, err := avro.NewEncoder(avro.DiagnosticEventSchema)
	if err != nil {
		return nil, err
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.DiagnosticsTopic),
		// Diagnostics are advisory; leader ack is enough.
		kgo.RequiredAcks(kgo.LeaderAck()),
		kgo.DisableIdempotentWrite(),
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create diagnostics producer: %w", err)
	}

	return &DiagnosticsProducer{
		client:  client,
		topic:   cfg.DiagnosticsTopic,
		encoder: encoder,
		log:     log,
	}, nil
}

// Publish encodes and produces one event asynchronously.
func (p *DiagnosticsProducer) Publish(ctx context.Context, d order.Diagnostic) {
	payload, err := p.encoder.EncodeNative(map[string]interface{}{
		"event_type":  d.EventType,
		"order_id":    d.OrderID,
		"source":      string(d.Source),
		"detail":      d.Detail,
		"observed_at": d.ObservedAt.UnixMilli(),
	})
	if err != nil {
		p.log.Error("encode diagnostic event", logger.Error(err))
		return
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(uuid.NewString()),
		Value:     payload,
		Timestamp: d.ObservedAt,
	}
	p.client.Produce(ctx, rec, func(_ *kgo.Record, err error) {
		if err != nil {
			p.log.Warn("publish diagnostic event failed",
				logger.String("topic", p.topic),
				logger.Error(err))
		}
	})
}

func (p *DiagnosticsProducer) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		p.log.Warn("flush diagnostics producer", logger.Error(err))
	}
	p.client.Close()
	return nil
}
