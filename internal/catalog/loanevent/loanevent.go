/*
Package loanevent keeps the audit trail of a book copy's loan history.

Every scripted workflow (renew, lend, return, reserve) and every
administrative status edit appends one [Event]. Events are never updated or
deleted by the service; they disappear only with the copy they describe.
*/
package loanevent

import "time"

// Type names what happened to the copy.
type Type string

const (
	TypeCreated       Type = "created"
	TypeUpdated       Type = "updated"
	TypeStatusChanged Type = "status_changed"
	TypeRenewed       Type = "renewed"
	TypeLent          Type = "lent"
	TypeReturned      Type = "returned"
	TypeReserved      Type = "reserved"
)

// Payload carries the before/after values relevant to the event type.
type Payload map[string]any

// Event is one entry in a copy's loan history.
type Event struct {
	ID         int64     `json:"id"`
	InstanceID string    `json:"instance_id"`
	Type       Type      `json:"type"`
	ActorID    *string   `json:"actor_id"`
	Payload    Payload   `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event stamped at occurredAt. An empty actorID records a
// system action.
func New(instanceID string, eventType Type, actorID string, occurredAt time.Time, payload Payload) *Event {
	event := &Event{
		InstanceID: instanceID,
		Type:       eventType,
		Payload:    payload,
		OccurredAt: occurredAt.UTC(),
	}
	if actorID != "" {
		event.ActorID = &actorID
	}
	if event.Payload == nil {
		event.Payload = Payload{}
	}
	return event
}
