// Package service holds the pieces of business logic that are shared
// between handlers or need to run as post-commit side effects
package service

import "eventify/event-api/internal/model"

// Bus is a synchronous callback dispatcher for lifecycle events.
// Handlers run in registration order, immediately after the owning
// mutation commits and on the same goroutine, so side effects stay
// co-located with the writes that cause them and tests can observe
// them without any waiting. Handlers are expected to swallow their
// own failures; the bus never unwinds a committed mutation.
type Bus struct {
	userCreated []func(*model.User)
	rsvpAdded   []func(*model.User, *model.Event)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) OnUserCreated(fn func(*model.User)) {
	b.userCreated = append(b.userCreated, fn)
}

func (b *Bus) OnRSVPAdded(fn func(*model.User, *model.Event)) {
	b.rsvpAdded = append(b.rsvpAdded, fn)
}

// UserCreated announces a freshly persisted user record.
func (b *Bus) UserCreated(u *model.User) {
	for _, fn := range b.userCreated {
		fn(u)
	}
}

// RSVPAdded announces a newly inserted RSVP relation. It is fired
// once per new row, never for duplicate adds.
func (b *Bus) RSVPAdded(u *model.User, e *model.Event) {
	for _, fn := range b.rsvpAdded {
		fn(u, e)
	}
}
