// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/coursepath/internal/database"
	"github.com/tomtom215/coursepath/internal/metrics"
	"github.com/tomtom215/coursepath/internal/recommend"
	"github.com/tomtom215/coursepath/internal/reports"
)

// RunLogStore persists run log rows.
type RunLogStore interface {
	InsertRunLog(ctx context.Context, entry *database.RunLogEntry) error
}

// ReportStore keeps the latest payload per student.
type ReportStore interface {
	Save(ctx context.Context, report *reports.Report) error
}

// RunLogHandler writes every run event to store.
func RunLogHandler(store RunLogStore) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		topic := message.SubscribeTopicFromCtx(msg.Context())
		event, err := decodeRunEvent(msg.Payload)
		if err == nil {
			err = store.InsertRunLog(msg.Context(), event.RunLogEntry())
		}
		metrics.RecordEventHandled(topic, err)
		return err
	}
}

// ReportHandler stores successful recommend payloads. Other operations
// are acknowledged without side effects.
func ReportHandler(store ReportStore) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		topic := message.SubscribeTopicFromCtx(msg.Context())
		event, err := decodeRunEvent(msg.Payload)
		if err != nil {
			metrics.RecordEventHandled(topic, err)
			return err
		}
		if event.Operation != recommend.OperationRecommend || event.Status != string(recommend.RunSuccess) {
			return nil
		}
		if len(event.Output) == 0 {
			err = fmt.Errorf("run %s: completed recommend event without output", event.RunID)
		} else {
			err = store.Save(msg.Context(), &reports.Report{
				StudentID:   event.StudentID,
				RunID:       event.RunID,
				RequestID:   event.RequestID,
				GeneratedAt: event.FinishedAt,
				Payload:     event.Output,
			})
		}
		metrics.RecordEventHandled(topic, err)
		return err
	}
}
