// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package events

import (
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/coursepath/internal/logging"
)

// busBuffer is the per-subscriber channel buffer.
const busBuffer = 256

// NewBus creates the in-process pub/sub used for run events. It serves as
// both publisher and subscriber.
func NewBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: busBuffer},
		logging.NewWatermillLogger(),
	)
}
