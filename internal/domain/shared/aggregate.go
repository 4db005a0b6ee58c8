package shared

// BaseAggregateRoot extends BaseEntity with a version counter and a buffer
// of domain events recorded since the aggregate was loaded. Categories,
// option groups, products, designs and assets all embed it.
//
// The event buffer is in-memory only; events not pulled before the aggregate
// goes out of scope are dropped, which is the intended behavior when a save
// fails.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot mints an aggregate at version 1 with no pending events.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// IncrementVersion marks a state change. Every mutating operation on an
// aggregate bumps the version alongside recording its event.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent records an event for publication after the next save.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the pending events without consuming them.
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// PullDomainEvents returns the pending events and empties the buffer.
// Services call this once per save so a retried save cannot publish the
// same event twice.
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.domainEvents
	a.domainEvents = nil
	return events
}

// ClearDomainEvents drops pending events without publishing them.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
