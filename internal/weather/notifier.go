package weather

import (
	"github.com/zeusync/weather/internal/core/events/bus"
	"github.com/zeusync/weather/internal/core/observability/log"
	"github.com/zeusync/weather/internal/core/scheduler"
)

// EventNotification is the bus event type carrying a Notification.
const EventNotification = "weather.notification"

type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityNotice
	SeverityWarning
	SeverityAlert
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityNotice:
		return "notice"
	case SeverityWarning:
		return "warning"
	default:
		return "alert"
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Notification is an advisory message about a weather change. Nothing in the
// simulation depends on it being delivered.
type Notification struct {
	Phenomenon string          `json:"phenomenon"`
	Message    string          `json:"message"`
	Severity   Severity        `json:"severity"`
	Tick       scheduler.Ticks `json:"tick"`
	ActorID    string          `json:"actor_id,omitempty"`
	EventID    string          `json:"event_id,omitempty"`
}

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// BusNotifier logs each notification and publishes it on an event bus.
type BusNotifier struct {
	bus    bus.EventBus
	logger log.Log
}

func NewBusNotifier(b bus.EventBus, logger log.Log) *BusNotifier {
	if logger == nil {
		logger = log.NewNop()
	}
	return &BusNotifier{bus: b, logger: logger}
}

func (n *BusNotifier) Notify(note Notification) {
	fields := []log.Field{
		log.String("phenomenon", note.Phenomenon),
		log.String("severity", note.Severity.String()),
		log.Uint64("tick", uint64(note.Tick)),
	}
	if note.ActorID != "" {
		fields = append(fields, log.String("actor", note.ActorID))
	}
	if note.EventID != "" {
		fields = append(fields, log.String("event", note.EventID))
	}
	if note.Severity >= SeverityWarning {
		n.logger.Warn(note.Message, fields...)
	} else {
		n.logger.Info(note.Message, fields...)
	}

	if n.bus == nil {
		return
	}
	ev := bus.NewEvent(EventNotification, note.Phenomenon, note, int(note.Severity), nil)
	if err := n.bus.Publish(ev); err != nil {
		n.logger.Warn("notification delivery failed", log.Error(err))
	}
}
