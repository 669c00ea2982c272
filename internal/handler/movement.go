package handler

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
	"go.uber.org/zap"
)

// HandleMove sets the movement target. Both coordinates are required; the
// target is written as one vector.
func HandleMove(sess *net.Session, msg *packet.Inbound, deps *Deps) {
	if msg.X == nil || msg.Y == nil {
		deps.Log.Debug("move without coordinates", zap.String("session", sess.ID))
		return
	}
	deps.Controls.SetTarget(sess.ID, mgl64.Vec2{*msg.X, *msg.Y})
}

// HandleBoost toggles boosting. A missing flag means off.
func HandleBoost(sess *net.Session, msg *packet.Inbound, deps *Deps) {
	active := msg.Active != nil && *msg.Active
	deps.Controls.SetBoosting(sess.ID, active)
}
