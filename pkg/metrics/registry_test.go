package metrics

import "testing"

func TestInitRegistry(t *testing.T) {
	if IsEnabled() {
		t.Fatal("registry should start disabled")
	}
	if GetRegistry() != nil {
		t.Fatal("expected nil registry before init")
	}

	InitRegistry()
	if !IsEnabled() {
		t.Fatal("expected registry enabled after init")
	}

	reg := GetRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry after init")
	}

	// A second init keeps the same registry.
	InitRegistry()
	if GetRegistry() != reg {
		t.Error("InitRegistry must be idempotent")
	}

	// The default collectors are registered.
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected runtime collectors to expose metrics")
	}
}
