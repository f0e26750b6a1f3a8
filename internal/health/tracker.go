package health

import (
	"log"
	"sync"
	"time"
)

// State is the availability state of a synthesis provider.
type State string

const (
	// StateAvailable: the provider can be attempted.
	StateAvailable State = "available"
	// StateDegraded: recent failures, but still worth attempting.
	StateDegraded State = "degraded"
	// StateDisabled: sticky failure; skipped for the remaining process
	// lifetime (quota exhaustion or too many consecutive failures).
	StateDisabled State = "disabled"
)

const defaultFailureThreshold = 3

// ProviderStatus is a snapshot of one provider's health.
type ProviderStatus struct {
	Name          string    `json:"name"`
	State         State     `json:"state"`
	Failures      int       `json:"consecutive_failures"`
	LastError     string    `json:"last_error,omitempty"`
	LastSuccessAt time.Time `json:"last_success_at,omitempty"`
}

// Tracker tracks per-provider availability across requests. All methods
// are safe for concurrent use; increment-then-compare on the failure
// counter is atomic per provider.
type Tracker struct {
	mu               sync.Mutex
	providers        map[string]*ProviderStatus
	failureThreshold int
}

// NewTracker creates a tracker. A threshold <= 0 uses the default.
func NewTracker(failureThreshold int) *Tracker {
	if failureThreshold <= 0 {
		failureThreshold = defaultFailureThreshold
	}
	return &Tracker{
		providers:        make(map[string]*ProviderStatus),
		failureThreshold: failureThreshold,
	}
}

// Register adds a provider in the available state. Re-registering an
// existing provider is a no-op.
func (t *Tracker) Register(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.providers[name]; !ok {
		t.providers[name] = &ProviderStatus{Name: name, State: StateAvailable}
		log.Printf("[HEALTH] Registered TTS provider %s", name)
	}
}

// Usable reports whether the provider may be attempted. Unknown
// providers are assumed usable.
func (t *Tracker) Usable(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.providers[name]
	if !ok {
		return true
	}
	return p.State != StateDisabled
}

// MarkSuccess resets the provider to available and clears its failures.
func (t *Tracker) MarkSuccess(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.get(name)
	p.State = StateAvailable
	p.Failures = 0
	p.LastError = ""
	p.LastSuccessAt = time.Now()
}

// MarkFailure records a transient failure. The provider degrades, and
// reaching the consecutive-failure threshold disables it for the rest
// of the process lifetime.
func (t *Tracker) MarkFailure(name, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.get(name)
	p.Failures++
	p.LastError = errMsg
	if p.Failures >= t.failureThreshold {
		p.State = StateDisabled
		log.Printf("❌ [HEALTH] Provider %s disabled after %d consecutive failures: %s", name, p.Failures, errMsg)
		return
	}
	p.State = StateDegraded
	log.Printf("⚠️  [HEALTH] Provider %s degraded (%d/%d): %s", name, p.Failures, t.failureThreshold, errMsg)
}

// MarkDisabled drives the failure counter straight to the threshold.
// Used for quota and rate-limit signals, which will not clear on retry.
func (t *Tracker) MarkDisabled(name, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.get(name)
	p.Failures = t.failureThreshold
	p.State = StateDisabled
	p.LastError = errMsg
	log.Printf("❌ [HEALTH] Provider %s disabled until restart: %s", name, errMsg)
}

// Status returns a copy of the provider's current status.
func (t *Tracker) Status(name string) ProviderStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p, ok := t.providers[name]; ok {
		return *p
	}
	return ProviderStatus{Name: name, State: StateAvailable}
}

// Snapshot returns the status of every registered provider.
func (t *Tracker) Snapshot() []ProviderStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ProviderStatus, 0, len(t.providers))
	for _, p := range t.providers {
		out = append(out, *p)
	}
	return out
}

func (t *Tracker) get(name string) *ProviderStatus {
	p, ok := t.providers[name]
	if !ok {
		p = &ProviderStatus{Name: name, State: StateAvailable}
		t.providers[name] = p
	}
	return p
}
