package packet

import (
	"testing"

	"go.uber.org/zap"
)

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	var got []string
	reg.Register(TypeMove, func(sess any, msg *Inbound) {
		got = append(got, sess.(string)+":"+msg.Type)
	})

	if err := reg.Dispatch("s1", JSONCodec{}, []byte(`{"type":"move","x":1,"y":2}`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := reg.Dispatch("s1", JSONCodec{}, []byte(`{"type":"dance"}`)); err != nil {
		t.Fatalf("unknown type returned %v", err)
	}
	if len(got) != 1 || got[0] != "s1:move" {
		t.Fatalf("got %v", got)
	}
}

func TestRegistryRecoversPanic(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	reg.Register(TypeShoot, func(any, *Inbound) { panic("boom") })

	if err := reg.Dispatch(nil, JSONCodec{}, []byte(`{"type":"shoot"}`)); err == nil {
		t.Fatal("expected error from panicking handler")
	}
}

func TestRegistryMalformed(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	called := false
	reg.Register(TypeMove, func(any, *Inbound) { called = true })
	if err := reg.Dispatch(nil, JSONCodec{}, []byte(`{"type":`)); err == nil {
		t.Fatal("expected decode error")
	}
	if called {
		t.Fatal("handler called for malformed frame")
	}
}
