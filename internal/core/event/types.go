package event

// Elimination causes.
const (
	CauseCollision  = "collision"
	CauseProjectile = "projectile"
)

// PlayerEliminated is emitted the moment a player record is removed by a kill.
type PlayerEliminated struct {
	VictimID   string
	VictimName string
	KillerID   string
	KillerName string
	Cause      string
	VictimMass float64
}

// PlayerJoined is emitted when a connection gets its first player or a respawn.
type PlayerJoined struct {
	PlayerID string
	Name     string
	Respawn  bool
}

// PlayerDisconnected is emitted after a connection is torn down.
type PlayerDisconnected struct {
	PlayerID string
	Alive    bool // had a live player at disconnect
}
