package patterns

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

const (
	DefaultHistorySize = 1000
	WildcardEvent      = "*"
)

// EventHandler reacts to a published event. A returned error is logged and
// the handler is not counted as notified.
type EventHandler func(event *models.Event) error

type subscription struct {
	id        uuid.UUID
	eventType string
	name      string
	handler   EventHandler
}

// matches reports whether the subscription receives eventType. Patterns are
// an exact type, "*" for everything, or "prefix.*" for every type under
// prefix.
func (s *subscription) matches(eventType string) bool {
	if s.eventType == WildcardEvent || s.eventType == eventType {
		return true
	}
	if prefix, ok := strings.CutSuffix(s.eventType, ".*"); ok {
		return strings.HasPrefix(eventType, prefix+".")
	}
	return false
}

// EventBus delivers published events to subscribers synchronously and
// keeps the most recent events in a ring buffer.
type EventBus struct {
	mu            sync.RWMutex
	subscriptions []*subscription

	// Ring buffer for storing events
	history    []*models.Event
	maxSize    int
	currentPos int
	isFull     bool
}

func NewEventBus(historySize int) *EventBus {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	return &EventBus{
		history: make([]*models.Event, historySize),
		maxSize: historySize,
	}
}

// Subscribe registers handler for eventType and returns an id for
// Unsubscribe.
func (b *EventBus) Subscribe(eventType string, name string, handler EventHandler) uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{
		id:        uuid.New(),
		eventType: eventType,
		name:      name,
		handler:   handler,
	}
	b.subscriptions = append(b.subscriptions, sub)

	logrus.WithFields(logrus.Fields{
		"event":      eventType,
		"subscriber": name,
	}).Debugln("Subscribed")

	return sub.id
}

// Unsubscribe removes the subscription with id and reports whether it
// existed.
func (b *EventBus) Unsubscribe(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscriptions {
		if sub.id == id {
			b.subscriptions = append(b.subscriptions[:i], b.subscriptions[i+1:]...)
			return true
		}
	}
	return false
}

// Publish records the event and calls every matching subscriber in
// subscription order. It returns how many handlers succeeded.
func (b *EventBus) Publish(eventType string, data map[string]any) int {

	event := models.NewEvent(eventType, data)

	b.mu.Lock()
	b.history[b.currentPos] = event
	b.currentPos = (b.currentPos + 1) % b.maxSize
	if b.currentPos == 0 {
		b.isFull = true
	}

	var matching []*subscription
	for _, sub := range b.subscriptions {
		if sub.matches(eventType) {
			matching = append(matching, sub)
		}
	}
	b.mu.Unlock()

	if len(matching) == 0 {
		logrus.Debugf("No subscribers for event '%s'", eventType)
		return 0
	}

	notified := 0
	for _, sub := range matching {
		if err := b.notify(sub, event); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"event":      eventType,
				"subscriber": sub.name,
			}).Errorln("Subscriber failed")
			continue
		}
		notified++
	}

	return notified
}

func (b *EventBus) notify(sub *subscription, event *models.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}
	}()
	return sub.handler(event)
}

// History returns the retained events oldest first, limited to eventType
// when it is not empty.
func (b *EventBus) History(eventType string) []*models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ordered []*models.Event
	if b.isFull {
		ordered = append(ordered, b.history[b.currentPos:]...)
	}
	ordered = append(ordered, b.history[:b.currentPos]...)

	if len(eventType) == 0 {
		return ordered
	}

	filtered := make([]*models.Event, 0, len(ordered))
	for _, event := range ordered {
		if event.Type == eventType {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// NewMonitoringEventBus wires alert and deployment events to the
// notification channels and audits every event.
func NewMonitoringEventBus() *EventBus {
	bus := NewEventBus(DefaultHistorySize)

	bus.Subscribe("alert.critical", "slack_notifier", slackNotifier)
	bus.Subscribe("alert.critical", "pagerduty_handler", pagerDutyHandler)
	bus.Subscribe("alert.warning", "slack_notifier", slackNotifier)
	bus.Subscribe("deployment.*", "slack_notifier", slackNotifier)
	bus.Subscribe(WildcardEvent, "audit_logger", auditLogger)

	return bus
}

func eventSeverity(event *models.Event) models.Severity {
	severity, err := models.ParseSeverity(event.GetString("severity", string(models.SeverityInfo)))
	if err != nil {
		return models.SeverityInfo
	}
	return severity
}

func slackNotifier(event *models.Event) error {
	severity := eventSeverity(event)
	message := fmt.Sprintf("[%s] %s", strings.ToUpper(string(severity)), event.GetString("message", "No message"))
	if !SendNotification("slack", message, map[string]string{"severity": string(severity)}) {
		return fmt.Errorf("slack notification was not delivered")
	}
	return nil
}

// pagerDutyHandler only opens incidents for critical events.
func pagerDutyHandler(event *models.Event) error {
	severity := eventSeverity(event)
	if !severity.AtLeast(models.SeverityCritical) {
		return nil
	}
	message := "Incident created: " + event.GetString("message", "No message")
	if !SendNotification("pagerduty", message, map[string]string{"severity": string(severity)}) {
		return fmt.Errorf("pagerduty notification was not delivered")
	}
	return nil
}

func auditLogger(event *models.Event) error {
	logrus.WithFields(logrus.Fields{
		"event_id": event.ID,
		"event":    event.Type,
		"at":       event.Timestamp,
	}).Infoln("Audit")
	return nil
}
