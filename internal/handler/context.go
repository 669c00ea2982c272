package handler

import (
	"github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
	"github.com/growarena/server/internal/world"
	"go.uber.org/zap"
)

// Deps holds the dependencies message handlers may use. Handlers never see
// the world's collections, only the Controls surface.
type Deps struct {
	Log      *zap.Logger
	Controls world.Controls
}

// RegisterAll registers all message handlers into the registry.
func RegisterAll(reg *packet.Registry, deps *Deps) {
	reg.Register(packet.TypeMove, func(sess any, msg *packet.Inbound) {
		HandleMove(sess.(*net.Session), msg, deps)
	})
	reg.Register(packet.TypeSetName, func(sess any, msg *packet.Inbound) {
		HandleSetName(sess.(*net.Session), msg, deps)
	})
	reg.Register(packet.TypeBoost, func(sess any, msg *packet.Inbound) {
		HandleBoost(sess.(*net.Session), msg, deps)
	})
	reg.Register(packet.TypeShoot, func(sess any, msg *packet.Inbound) {
		HandleShoot(sess.(*net.Session), msg, deps)
	})
}
