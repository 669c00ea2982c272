package handler

import (
	"github.com/growarena/server/internal/net"
	"github.com/growarena/server/internal/net/packet"
)

// HandleSetName renames the player. Sanitizing happens in Controls.
func HandleSetName(sess *net.Session, msg *packet.Inbound, deps *Deps) {
	name := ""
	if msg.Name != nil {
		name = *msg.Name
	}
	deps.Controls.SetName(sess.ID, name)
}
