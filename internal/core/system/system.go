package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: accept/tear down sessions, drain inbound queues
	PhasePreUpdate               // 1: process last tick's events, expire effects
	PhaseUpdate                  // 2: motion, projectiles, collisions
	PhasePostUpdate              // 3: respawns
	PhaseOutput                  // 4: build + send snapshot
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseOutput:
		return "output"
	}
	return "unknown"
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
