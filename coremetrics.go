package heytaco

import (
	"context"

	"go.opentelemetry.io/otel/api/key"
	"go.opentelemetry.io/otel/api/metric"
)

// instrumenter holds data for core instrumentation
type instrumenter struct {
	metrics coreMetrics
}

// coreMetrics holds the core heytaco metrics
type coreMetrics struct {
	eventsSeen     metric.BoundInt64Counter
	eventsHandled  map[string]metric.BoundInt64Counter
	eventsRejected metric.BoundInt64Counter
	pointsAwarded  metric.BoundInt64Counter
}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter) {
	ins = new(instrumenter)

	defaultLabels := meter.Labels(key.New("name").String(appName))

	eventsSeen := meter.NewInt64Counter("eventSeen", metric.WithKeys(key.New("name")))
	eventsRejected := meter.NewInt64Counter("eventRejected", metric.WithKeys(key.New("name")))
	pointsAwarded := meter.NewInt64Counter("pointAwarded", metric.WithKeys(key.New("name")))

	ins.metrics = coreMetrics{
		eventsSeen:     eventsSeen.Bind(defaultLabels),
		eventsHandled:  newBoundCounterByEventType("eventHandled", appName, meter),
		eventsRejected: eventsRejected.Bind(defaultLabels),
		pointsAwarded:  pointsAwarded.Bind(defaultLabels)}

	return ins
}

// newBoundCounterByEventType creates a set of BoundInt64Counter by event type
func newBoundCounterByEventType(counterName string, appName string, meter metric.Meter) (boundCounter map[string]metric.BoundInt64Counter) {
	boundCounter = make(map[string]metric.BoundInt64Counter)

	c := meter.NewInt64Counter(counterName, metric.WithKeys(key.New("name"), key.New("eventType")))
	boundCounter[messageEventType] = c.Bind(meter.Labels(key.New("name").String(appName), key.New("eventType").String(messageEventType)))
	boundCounter[appMentionEventType] = c.Bind(meter.Labels(key.New("name").String(appName), key.New("eventType").String(appMentionEventType)))

	return boundCounter
}

func (ins *instrumenter) eventSeen() {
	ins.metrics.eventsSeen.Add(context.Background(), 1)
}

func (ins *instrumenter) eventRejected() {
	ins.metrics.eventsRejected.Add(context.Background(), 1)
}

func (ins *instrumenter) eventHandled(eventType string) {
	if c, ok := ins.metrics.eventsHandled[eventType]; ok {
		c.Add(context.Background(), 1)
	}
}

func (ins *instrumenter) pointAwarded() {
	ins.metrics.pointsAwarded.Add(context.Background(), 1)
}
