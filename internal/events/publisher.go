// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/metrics"
	"github.com/tomtom215/coursepath/internal/recommend"
)

// Publisher publishes engine runs. It implements recommend.RunObserver.
type Publisher struct {
	pub    message.Publisher
	logger zerolog.Logger
}

var _ recommend.RunObserver = (*Publisher)(nil)

// NewPublisher wraps a Watermill publisher.
func NewPublisher(pub message.Publisher) *Publisher {
	return &Publisher{pub: pub, logger: logging.WithComponent("events")}
}

// ObserveRun publishes rec. Failures are logged and counted; they never
// fail the run that produced the record.
func (p *Publisher) ObserveRun(ctx context.Context, rec *recommend.RunRecord) {
	if err := p.Publish(ctx, rec); err != nil {
		p.logger.Warn().Err(err).Str("run_id", rec.RunID).Msg("Failed to publish run event")
	}
}

// Publish encodes rec as a RunEvent and publishes it on its topic.
func (p *Publisher) Publish(ctx context.Context, rec *recommend.RunRecord) error {
	event, err := NewRunEvent(rec)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.RunID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set(MetaOperation, event.Operation)
	if event.RequestID != "" {
		msg.Metadata.Set(MetaRequestID, event.RequestID)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetaCorrelationID, id)
	}

	topic := event.Topic()
	err = p.pub.Publish(topic, msg)
	metrics.RecordEventPublished(topic, err)
	return err
}
