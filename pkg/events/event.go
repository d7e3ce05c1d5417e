package events

import "time"

// Topics for the process-wide failure signals. The gateway is the only
// publisher; UI-level listeners subscribe at startup and must be idempotent
// (a failure may be observed more than once).
const (
	TopicSessionExpired = "session.expired"
	TopicForbidden      = "api.forbidden"
	TopicServerFault    = "api.server_fault"
)

// Event defines the contract for all client-side signals.
type Event interface {
	// Topic returns the signal channel this event belongs to.
	Topic() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// SessionExpired is broadcast when any request is rejected as unauthorized.
// By the time listeners observe it, the stored credential is already cleared.
type SessionExpired struct {
	OccurredAt time.Time
}

func (e SessionExpired) Topic() string                   { return TopicSessionExpired }
func (e SessionExpired) Payload() map[string]interface{} { return nil }
func (e SessionExpired) Timestamp() time.Time            { return e.OccurredAt }

// Forbidden is broadcast on access-denied responses. Advisory only: the
// caller still receives the rejection, listeners show a transient notice.
type Forbidden struct {
	Body       map[string]interface{}
	OccurredAt time.Time
}

func (e Forbidden) Topic() string                   { return TopicForbidden }
func (e Forbidden) Payload() map[string]interface{} { return e.Body }
func (e Forbidden) Timestamp() time.Time            { return e.OccurredAt }

// ServerFault is broadcast on 5xx responses, for display as a blocking modal.
type ServerFault struct {
	Status     int
	Body       map[string]interface{}
	OccurredAt time.Time
}

func (e ServerFault) Topic() string { return TopicServerFault }

func (e ServerFault) Payload() map[string]interface{} {
	return map[string]interface{}{
		"status": e.Status,
		"body":   e.Body,
	}
}

func (e ServerFault) Timestamp() time.Time { return e.OccurredAt }
