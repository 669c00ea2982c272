package system

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r *recorder) Phase() Phase { return r.phase }

func (r *recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(&recorder{"output", PhaseOutput, &got})
	r.Register(&recorder{"motion", PhaseUpdate, &got})
	r.Register(&recorder{"input", PhaseInput, &got})
	r.Register(&recorder{"projectile", PhaseUpdate, &got})
	r.Register(&recorder{"respawn", PhasePostUpdate, &got})
	r.Register(&recorder{"food", PhaseUpdate, &got})
	r.Register(&recorder{"expiry", PhasePreUpdate, &got})

	r.Tick(time.Millisecond)

	want := []string{"input", "expiry", "motion", "projectile", "food", "respawn", "output"}
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestLoopStepSetsClockFirst(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(&recorder{"sys", PhaseUpdate, &got})
	l := NewLoop(r, time.Millisecond, zap.NewNop())
	at := time.Unix(50, 0)
	l.OnTick = func(now time.Time) {
		if !now.Equal(at) {
			t.Fatalf("now = %v", now)
		}
		got = append(got, "clock")
	}
	l.Step(at, time.Millisecond)
	if len(got) != 2 || got[0] != "clock" || got[1] != "sys" {
		t.Fatalf("order = %v", got)
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	ticks := make(chan time.Duration, 100)
	r := NewRunner()
	r.Register(systemFunc(func(dt time.Duration) {
		select {
		case ticks <- dt:
		default:
		}
	}))
	l := NewLoop(r, time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	select {
	case dt := <-ticks:
		if dt <= 0 {
			t.Fatalf("dt = %v", dt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no tick")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

type systemFunc func(dt time.Duration)

func (f systemFunc) Phase() Phase { return PhaseUpdate }

func (f systemFunc) Update(dt time.Duration) { f(dt) }
