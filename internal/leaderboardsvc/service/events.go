package service

import (
	"time"

	"github.com/avvvet/leaderboard-services/internal/comm"
)

// EventPublisher receives an event after the transaction that produced it
// has committed.
type EventPublisher interface {
	PublishEvent(evt comm.Event)
}

type noopPublisher struct{}

func (noopPublisher) PublishEvent(comm.Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func utcNow() time.Time {
	return time.Now().UTC()
}
