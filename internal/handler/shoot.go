package handler

import (
	"github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleShoot fires an arrow at (x, y). A missing coordinate falls back to
// the shooter's own position on that axis.
func HandleShoot(sess *net.Session, msg *packet.Inbound, deps *Deps) {
	pos, ok := deps.Controls.Position(sess.ID)
	if !ok {
		return
	}
	target := pos
	if msg.X != nil {
		target[0] = *msg.X
	}
	if msg.Y != nil {
		target[1] = *msg.Y
	}
	if deps.Controls.Shoot(sess.ID, target) {
		deps.Log.Debug("arrow fired", zap.String("session", sess.ID))
	}
}
