package packet

import (
	"fmt"

	"go.uber.org/zap"
)

// HandlerFunc is the callback signature for message handlers.
// The session pointer is passed as an opaque interface to avoid import cycles.
type HandlerFunc func(sess any, msg *Inbound)

// Registry maps message types to handlers.
type Registry struct {
	handlers map[string]HandlerFunc
	log      *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]HandlerFunc),
		log:      log,
	}
}

// Register maps a message type to a handler. A later registration replaces an earlier one.
func (reg *Registry) Register(typ string, fn HandlerFunc) {
	reg.handlers[typ] = fn
}

// Has reports whether a handler exists for typ.
func (reg *Registry) Has(typ string) bool {
	_, ok := reg.handlers[typ]
	return ok
}

// Dispatch decodes one frame with codec and calls the handler for its type.
// Unknown types are ignored. Decode failures and handler panics are returned
// so the caller can drop the message.
func (reg *Registry) Dispatch(sess any, codec Codec, data []byte) error {
	msg, err := codec.Decode(data)
	if err != nil {
		return err
	}

	fn, ok := reg.handlers[msg.Type]
	if !ok {
		reg.log.Debug("unknown message type", zap.String("type", msg.Type))
		return nil
	}
	reg.log.Debug("message received",
		zap.String("type", msg.Type),
		zap.Int("size", len(data)),
	)
	return reg.safeCall(fn, sess, msg)
}

// safeCall executes a handler with panic recovery to prevent a single
// bad message from crashing the entire game loop.
func (reg *Registry) safeCall(fn HandlerFunc, sess any, msg *Inbound) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("handler panic recovered",
				zap.String("type", msg.Type),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("handler panic for %s: %v", msg.Type, rec)
		}
	}()
	fn(sess, msg)
	return nil
}
