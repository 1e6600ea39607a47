package broker

import (
	"encoding/json"
	"time"

	"github.com/avvvet/leaderboard-services/internal/comm"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Publisher is the subset of *nats.Conn the broker uses.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type Broker struct {
	Conn    Publisher
	Subject string
	Source  string
}

// NewBroker returns a broker publishing on subject. A nil conn gives a
// broker that drops every event.
func NewBroker(conn Publisher, subject, source string) *Broker {
	return &Broker{
		Conn:    conn,
		Subject: subject,
		Source:  source,
	}
}

// PublishEvent stamps and publishes evt. Failures are logged and never
// returned; events are notifications only.
func (b *Broker) PublishEvent(evt comm.Event) {
	if b == nil || b.Conn == nil {
		return
	}

	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.Source == "" {
		evt.Source = b.Source
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Errorf("[PublishEvent] unable to marshal %s event for game %d: %s", evt.Type, evt.GameID, err)
		return
	}

	b.Publish(b.Subject, payload)
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
