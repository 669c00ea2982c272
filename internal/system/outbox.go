package system

// Outbox delivers single-connection messages (effects, deaths) without
// blocking the tick. Implemented by net.SessionStore.
type Outbox interface {
	SendTo(id string, v any)
	Connected(id string) bool
}
