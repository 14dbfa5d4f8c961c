package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestRunner_PhaseOrderStable(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"finalize", PhaseFinalize, &log})
	r.Register(recorder{"collide-a", PhaseCollide, &log})
	r.Register(recorder{"spawn", PhaseSpawn, &log})
	r.Register(recorder{"collide-b", PhaseCollide, &log})

	r.Tick(time.Millisecond)

	want := []string{"spawn", "collide-a", "collide-b", "finalize"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, log[i], want[i])
		}
	}
}

func TestRunner_TickPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{"spawn", PhaseSpawn, &log})
	r.Register(recorder{"status", PhaseStatus, &log})
	r.TickPhase(PhaseStatus, time.Millisecond)
	if len(log) != 1 || log[0] != "status" {
		t.Errorf("log = %v, want [status]", log)
	}
}
