package world

import "time"

// PendingRespawn is the minimal data carried across an elimination.
type PendingRespawn struct {
	ID   string
	Name string
	Due  time.Time
}

// RespawnQueue holds scheduled respawns until they fall due. Whoever pops an
// entry must re-check that the connection is still live and that no player
// record exists before inserting one.
type RespawnQueue struct {
	pending []PendingRespawn
}

func NewRespawnQueue() *RespawnQueue {
	return &RespawnQueue{}
}

func (q *RespawnQueue) Schedule(id, name string, due time.Time) {
	q.pending = append(q.pending, PendingRespawn{ID: id, Name: name, Due: due})
}

// PopDue removes and returns every entry due at or before now, in schedule order.
func (q *RespawnQueue) PopDue(now time.Time) []PendingRespawn {
	var due []PendingRespawn
	kept := q.pending[:0]
	for _, r := range q.pending {
		if r.Due.After(now) {
			kept = append(kept, r)
			continue
		}
		due = append(due, r)
	}
	q.pending = kept
	return due
}

func (q *RespawnQueue) Len() int {
	return len(q.pending)
}
