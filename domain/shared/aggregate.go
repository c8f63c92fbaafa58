package shared

// AggregateRoot entry point of a consistency boundary
type AggregateRoot interface {
	ID() string
	PullEvents() []DomainEvent
}

// Entity object with identity
type Entity interface {
	ID() string
}
