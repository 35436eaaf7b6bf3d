package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/analytics"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/metrics"
)

const (
	// changeTopic carries one event per record write; the collection name
	// is the last topic segment.
	changeTopicPrefix = "fleet/records/"
	changeTopicFilter = "fleet/records/+"

	// snapshotTopic carries the freshly recomputed analytics snapshot.
	snapshotTopic = "fleet/analytics/snapshot"

	connectTimeout = 10 * time.Second
)

// ChangeEvent is published after every successful record write.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	At         time.Time `json:"at"`
}

// Connect dials the broker and waits for the session to come up.
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	return client, nil
}

// Publisher announces record changes on the broker so observers (the
// watcher below, external dashboards) know the analytics are stale.
type Publisher struct {
	client mqtt.Client
}

// NewPublisher wraps a connected client.
func NewPublisher(client mqtt.Client) *Publisher {
	return &Publisher{client: client}
}

// RecordsChanged publishes one change event for the given collection.
func (p *Publisher) RecordsChanged(collection, action string) {
	event := ChangeEvent{Collection: collection, Action: action, At: time.Now().UTC()}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("failed to marshal change event")
		return
	}
	metrics.RecordChangesTotal.WithLabelValues(collection).Inc()
	p.client.Publish(changeTopicPrefix+collection, 1, false, payload)
}

// Watcher recomputes the analytics snapshot whenever a change event
// arrives and republishes the result. The engine itself stays pure; all
// trigger wiring lives here.
type Watcher struct {
	client  mqtt.Client
	reader  db.FleetReader
	engine  *analytics.Engine
	publish func(topic string, payload []byte)
}

// NewWatcher builds a watcher over a connected client and a read-only
// fleet store.
func NewWatcher(client mqtt.Client, reader db.FleetReader) *Watcher {
	w := &Watcher{
		client: client,
		reader: reader,
		engine: analytics.NewEngine(),
	}
	w.publish = func(topic string, payload []byte) {
		client.Publish(topic, 1, true, payload)
	}
	return w
}

// Start subscribes to record-change events.
func (w *Watcher) Start() error {
	token := w.client.Subscribe(changeTopicFilter, 1, func(_ mqtt.Client, msg mqtt.Message) {
		var event ChangeEvent
		if err := json.Unmarshal(msg.Payload(), &event); err != nil {
			log.WithError(err).WithField("topic", msg.Topic()).Warn("ignoring malformed change event")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := w.Recompute(ctx); err != nil {
			log.WithError(err).Error("snapshot recompute failed")
		}
	})
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt subscribe timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt subscribe error: %w", err)
	}
	log.WithField("topic", changeTopicFilter).Info("watching for record changes")
	return nil
}

// Recompute loads a fresh snapshot of the three collections, runs the
// engine once, and publishes the result retained so late subscribers get
// the latest state immediately.
func (w *Watcher) Recompute(ctx context.Context) error {
	start := time.Now()

	vehicles, err := w.reader.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("list vehicles: %w", err)
	}
	records, err := w.reader.ListMaintenance(ctx)
	if err != nil {
		return fmt.Errorf("list maintenance: %w", err)
	}
	downtime, err := w.reader.ListDowntime(ctx)
	if err != nil {
		return fmt.Errorf("list downtime: %w", err)
	}

	snapshot, dropped := w.engine.ComputeWithStats(vehicles, records, downtime)

	metrics.SnapshotsComputedTotal.Inc()
	metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	metrics.RecordsDroppedTotal.Add(float64(dropped))

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	w.publish(snapshotTopic, payload)

	log.WithFields(log.Fields{
		"vehicles":        len(vehicles),
		"records":         len(records),
		"records_dropped": dropped,
		"elapsed":         time.Since(start),
	}).Info("analytics snapshot recomputed")
	return nil
}

// Stop disconnects from the broker.
func (w *Watcher) Stop() {
	w.client.Unsubscribe(changeTopicFilter)
	w.client.Disconnect(250)
}
