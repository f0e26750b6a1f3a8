package health

import (
	"sync"
	"testing"
)

func TestTrackerLifecycle(t *testing.T) {
	tr := NewTracker(3)
	tr.Register("elevenlabs")

	if !tr.Usable("elevenlabs") {
		t.Fatal("fresh provider not usable")
	}
	if got := tr.Status("elevenlabs").State; got != StateAvailable {
		t.Errorf("State = %v, want available", got)
	}

	tr.MarkFailure("elevenlabs", "timeout")
	if got := tr.Status("elevenlabs").State; got != StateDegraded {
		t.Errorf("after 1 failure State = %v, want degraded", got)
	}
	if !tr.Usable("elevenlabs") {
		t.Error("degraded provider should still be usable")
	}

	tr.MarkFailure("elevenlabs", "timeout")
	tr.MarkFailure("elevenlabs", "timeout")
	if got := tr.Status("elevenlabs").State; got != StateDisabled {
		t.Errorf("after 3 failures State = %v, want disabled", got)
	}
	if tr.Usable("elevenlabs") {
		t.Error("disabled provider reported usable")
	}
}

func TestSuccessResetsFailures(t *testing.T) {
	tr := NewTracker(3)
	tr.Register("piper")

	tr.MarkFailure("piper", "binary crashed")
	tr.MarkFailure("piper", "binary crashed")
	tr.MarkSuccess("piper")

	st := tr.Status("piper")
	if st.State != StateAvailable || st.Failures != 0 {
		t.Errorf("after success Status = %+v, want available with 0 failures", st)
	}

	// The counter restarted: two more failures only degrade.
	tr.MarkFailure("piper", "x")
	tr.MarkFailure("piper", "x")
	if got := tr.Status("piper").State; got != StateDegraded {
		t.Errorf("State = %v, want degraded", got)
	}
}

// TestMarkDisabledIsSticky pins the quota behavior: an explicit disable
// jumps straight past the threshold and stays until restart.
func TestMarkDisabledIsSticky(t *testing.T) {
	tr := NewTracker(3)
	tr.Register("elevenlabs")

	tr.MarkDisabled("elevenlabs", "quota exceeded")
	if tr.Usable("elevenlabs") {
		t.Fatal("disabled provider reported usable")
	}

	st := tr.Status("elevenlabs")
	if st.State != StateDisabled || st.Failures != 3 {
		t.Errorf("Status = %+v, want disabled at threshold", st)
	}
	if st.LastError != "quota exceeded" {
		t.Errorf("LastError = %q", st.LastError)
	}
}

func TestUnknownProviderAssumedUsable(t *testing.T) {
	tr := NewTracker(3)
	if !tr.Usable("never-registered") {
		t.Error("unknown provider should be assumed usable")
	}
}

func TestDefaultThreshold(t *testing.T) {
	tr := NewTracker(0)
	tr.MarkFailure("p", "x")
	tr.MarkFailure("p", "x")
	if got := tr.Status("p").State; got != StateDegraded {
		t.Errorf("State = %v, want degraded below default threshold", got)
	}
	tr.MarkFailure("p", "x")
	if got := tr.Status("p").State; got != StateDisabled {
		t.Errorf("State = %v, want disabled at default threshold", got)
	}
}

func TestSnapshot(t *testing.T) {
	tr := NewTracker(3)
	tr.Register("a")
	tr.Register("b")
	tr.MarkDisabled("b", "quota")

	snap := tr.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Snapshot len = %d, want 2", len(snap))
	}
	states := map[string]State{}
	for _, s := range snap {
		states[s.Name] = s.State
	}
	if states["a"] != StateAvailable || states["b"] != StateDisabled {
		t.Errorf("Snapshot states = %v", states)
	}
}

func TestTrackerConcurrency(t *testing.T) {
	tr := NewTracker(1000)
	tr.Register("p")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.MarkFailure("p", "x")
			tr.Usable("p")
		}()
	}
	wg.Wait()

	if got := tr.Status("p").Failures; got != 50 {
		t.Errorf("Failures = %d, want 50", got)
	}
}
