package service

// Routing keys for the real-time fan-out exchange. Delivery is best-effort;
// the state machines never depend on it.
const (
	EventOrderCreated  = "order.created"
	EventOrderUpdated  = "order.updated"
	EventTicketCreated = "ticket.created"
	EventTicketStarted = "ticket.started"
	EventTicketReady   = "ticket.ready"
)

// EventPublisher is satisfied by rabbitmq.Publisher. Services accept nil to
// run without a broker.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}
